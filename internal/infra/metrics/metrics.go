// Package metrics collects per-run counters and writes them in the
// Prometheus text format for a node_exporter textfile collector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Run struct {
	reg *prometheus.Registry

	rows     prometheus.Gauge
	cards    *prometheus.CounterVec
	weight   prometheus.Counter
	mail     *prometheus.GaugeVec
	duration prometheus.Gauge
	finished prometheus.Gauge
}

func New(mode string) *Run {
	labels := prometheus.Labels{"mode": mode}
	r := &Run{
		reg: prometheus.NewRegistry(),
		rows: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "restock_eligible_rows",
			Help:        "Spreadsheet rows with suggested quantity > 0.",
			ConstLabels: labels,
		}),
		cards: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "restock_cards_total",
			Help:        "Cards submitted to the WMS by outcome.",
			ConstLabels: labels,
		}, []string{"result"}),
		weight: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "restock_card_weight_kg_total",
			Help:        "Weight of successfully submitted cards.",
			ConstLabels: labels,
		}),
		mail: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "restock_report_mail",
			Help:        "1 when the report mail ended in the given state.",
			ConstLabels: labels,
		}, []string{"state"}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "restock_run_duration_seconds",
			Help:        "Wall time of the last run.",
			ConstLabels: labels,
		}),
		finished: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "restock_run_finished_timestamp_seconds",
			Help:        "Unix time the last run finished.",
			ConstLabels: labels,
		}),
	}
	r.reg.MustRegister(r.rows, r.cards, r.weight, r.mail, r.duration, r.finished)
	return r
}

func (r *Run) Rows(n int) { r.rows.Set(float64(n)) }

func (r *Run) Card(success bool, weightKg float64) {
	if success {
		r.cards.WithLabelValues("success").Inc()
		r.weight.Add(weightKg)
		return
	}
	r.cards.WithLabelValues("failure").Inc()
}

// Mail records the report mail outcome: "sent", "failed" or "skipped".
func (r *Run) Mail(state string) {
	for _, s := range []string{"sent", "failed", "skipped"} {
		v := 0.0
		if s == state {
			v = 1
		}
		r.mail.WithLabelValues(s).Set(v)
	}
}

// MailState exposes one state of the mail gauge.
func (r *Run) MailState(state string) prometheus.Gauge { return r.mail.WithLabelValues(state) }

func (r *Run) Finish(started, now time.Time) {
	r.duration.Set(now.Sub(started).Seconds())
	r.finished.Set(float64(now.Unix()))
}

// WriteTextfile atomically replaces path with the current values.
func (r *Run) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.reg)
}
