package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Spok95/restock/internal/domain/backlog"
	"github.com/Spok95/restock/internal/report"
)

// Report mails the D+1 and weekly views of the saved backlog. A missing or
// empty backlog sends nothing; a mail failure is logged and not returned.
func (r *Runner) Report(ctx context.Context, token string) error {
	path := r.cfg.BacklogPath()
	entries, err := backlog.Load(path)
	if soft(err) {
		r.d.Log.Info("nothing to send", "path", path, "err", err)
		r.d.Metrics.Mail("skipped")
		if errors.Is(err, backlog.ErrBacklogNotFound) {
			r.printf("Backlog %s not found. Run CREATE first to build the week's cards.\n", path)
		} else {
			r.printf("Backlog %s is empty. Nothing to send.\n", path)
		}
		return nil
	}
	if err != nil {
		return err
	}

	now := r.d.Now().In(r.cfg.Location())
	rep := report.Build(entries, now, r.days)
	r.printf("\n%s\n\n", rep.Weekly.Console())

	html, err := rep.HTML()
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	subject := strings.TrimSpace(r.cfg.Messaging.SubjectPrefix + " " + rep.Date)
	to, err := r.d.Mail.Send(ctx, token, subject, html, r.cfg.Messaging.Recipients)
	if err != nil {
		r.d.Log.Error("report mail failed", "err", err)
		r.d.Metrics.Mail("failed")
		r.printf("Report mail failed: %v\n", err)
		r.notify(ctx, "Replenishment report mail FAILED: "+err.Error())
		return nil
	}
	r.d.Log.Info("report mail sent", "recipients", len(to), "subject", subject)
	r.d.Metrics.Mail("sent")
	r.printf("Report sent to %s.\n", strings.Join(to, ", "))

	day := rep.Daily.Label
	if rep.Daily.Empty() {
		r.notify(ctx, fmt.Sprintf("Replenishment report sent: no cards for %s.", day))
	} else {
		r.notify(ctx, fmt.Sprintf("Replenishment report sent: %s %s.", day, rep.Daily.Totals.Summary()))
	}
	return nil
}

func backlogWeight(entries []backlog.Entry) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.Weight)
	}
	return sum
}
