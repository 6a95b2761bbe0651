// Package runner drives one execution: authenticate, then either create the
// week's cards or mail the D+1 report from the backlog.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Spok95/restock/internal/config"
	"github.com/Spok95/restock/internal/dialog"
	"github.com/Spok95/restock/internal/domain/backlog"
	"github.com/Spok95/restock/internal/domain/cards"
	"github.com/Spok95/restock/internal/domain/replenishment"
	"github.com/Spok95/restock/internal/infra/metrics"
	"github.com/Spok95/restock/internal/report"
)

type Authenticator interface {
	Token(ctx context.Context) (string, error)
}

type CardSubmitter interface {
	SubmitAll(ctx context.Context, token string, cs []replenishment.Card, onResult func(cards.Result)) []cards.Result
}

type Mailer interface {
	Send(ctx context.Context, token, subject, html string, recipients []string) ([]string, error)
}

// Archive stores card results outside the workbook. Optional.
type Archive interface {
	SaveRun(ctx context.Context, runID uuid.UUID, mode string, results []cards.Result) error
}

// Notifier pushes a one-line summary to the operator. Optional.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

type Deps struct {
	Auth     Authenticator
	Cards    CardSubmitter
	Mail     Mailer
	Archive  Archive
	Notifier Notifier
	Metrics  *metrics.Run
	Log      *slog.Logger
	// Out receives operator-facing text.
	Out io.Writer
	Now func() time.Time
}

type Runner struct {
	cfg  config.Config
	days report.Days
	d    Deps
}

func New(cfg config.Config, d Deps) (*Runner, error) {
	days, err := report.NewDays(cfg.Report.DayLabels)
	if err != nil {
		return nil, err
	}
	if d.Log == nil {
		d.Log = slog.Default()
	}
	if d.Out == nil {
		d.Out = io.Discard
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Metrics == nil {
		d.Metrics = metrics.New(cfg.App.Mode)
	}
	return &Runner{cfg: cfg, days: days, d: d}, nil
}

// Run authenticates and executes mode. A nil error means the run completed,
// possibly with nothing to do; anything else is fatal.
func (r *Runner) Run(ctx context.Context, mode dialog.Mode) error {
	started := r.d.Now()
	defer func() { r.d.Metrics.Finish(started, r.d.Now()) }()

	r.d.Log.Info("run started", "mode", mode)
	r.printf("Authenticating...\n")
	token, err := r.d.Auth.Token(ctx)
	if err != nil {
		return fmt.Errorf("authenticate: %w", err)
	}
	r.d.Log.Info("authenticated")

	switch mode {
	case dialog.ModeCreate:
		err = r.Create(ctx, token)
	case dialog.ModeReport:
		err = r.Report(ctx, token)
	default:
		err = fmt.Errorf("unknown mode %q", mode)
	}
	if err != nil {
		return err
	}
	r.d.Log.Info("run finished", "mode", mode)
	return nil
}

func (r *Runner) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.d.Out, format, args...)
}

func (r *Runner) notify(ctx context.Context, text string) {
	if r.d.Notifier == nil {
		return
	}
	if err := r.d.Notifier.Notify(ctx, text); err != nil {
		r.d.Log.Warn("operator notice failed", "err", err)
	}
}

// soft reports whether err only means there was nothing to do.
func soft(err error) bool {
	return errors.Is(err, replenishment.ErrNoEligibleRows) ||
		errors.Is(err, backlog.ErrNothingToSave) ||
		errors.Is(err, backlog.ErrBacklogNotFound) ||
		errors.Is(err, backlog.ErrEmptyBacklog)
}
