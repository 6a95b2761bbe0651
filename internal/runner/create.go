package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Spok95/restock/internal/dialog"
	"github.com/Spok95/restock/internal/domain/backlog"
	"github.com/Spok95/restock/internal/domain/cards"
	"github.com/Spok95/restock/internal/domain/replenishment"
	"github.com/Spok95/restock/internal/report"
)

// Create submits every card built from the input sheet, writes the detail
// report and the weekly backlog, then mails the report when any card succeeded.
func (r *Runner) Create(ctx context.Context, token string) error {
	path := r.cfg.InputPath()
	rows, err := replenishment.LoadEligible(path, r.d.Log)
	if errors.Is(err, replenishment.ErrNoEligibleRows) {
		r.d.Log.Info("no eligible rows", "path", path)
		r.printf("No rows with a positive suggested quantity in %s. Nothing to send.\n", path)
		return nil
	}
	if err != nil {
		return err
	}
	r.d.Metrics.Rows(len(rows))

	cs, err := replenishment.Batch(rows, r.cfg.Batch.MaxItems)
	if err != nil {
		return err
	}
	r.d.Log.Info("cards built", "rows", len(rows), "cards", len(cs))
	r.printf("%d eligible rows, %d cards to send.\n", len(rows), len(cs))

	n := 0
	results := r.d.Cards.SubmitAll(ctx, token, cs, func(res cards.Result) {
		n++
		r.d.Metrics.Card(res.Success, res.Weight.InexactFloat64())
		c := res.Card
		if res.Success {
			r.printf("[%d/%d] %s -> %s (%d/%d): order %s\n", n, len(cs), c.CenterName, c.BranchName, c.Index, c.Of, res.OrderID)
			return
		}
		r.printf("[%d/%d] %s -> %s (%d/%d): FAILED\n", n, len(cs), c.CenterName, c.BranchName, c.Index, c.Of)
	})

	r.archive(ctx, results)
	r.printFailures(results)

	ok := cards.Successes(results)
	if len(ok) == 0 {
		r.d.Log.Info("nothing to save", "err", backlog.ErrNothingToSave)
		r.printf("No card was created. Nothing to save.\n")
		r.notify(ctx, fmt.Sprintf("Replenishment: 0 of %d cards created.", len(cs)))
		return nil
	}

	now := r.d.Now().In(r.cfg.Location())
	detail := backlog.DetailPath(r.cfg.Files.BaseDir, r.cfg.Files.DetailPrefix, now)
	if lines, err := backlog.WriteDetail(detail, results); err != nil {
		r.d.Log.Error("detail report failed", "path", detail, "err", err)
		r.printf("Could not write the detail report: %v\n", err)
	} else {
		r.d.Log.Info("detail report written", "path", detail, "lines", lines)
		r.printf("Detail report saved to %s (%d lines).\n", detail, lines)
	}

	entries := backlog.FromResults(results)
	if err := backlog.Save(r.cfg.BacklogPath(), entries); err != nil {
		r.d.Log.Error("backlog save failed", "path", r.cfg.BacklogPath(), "err", err)
		r.printf("Could not save the weekly backlog: %v\n", err)
		r.notify(ctx, fmt.Sprintf("Replenishment: %d of %d cards created, backlog NOT saved.", len(ok), len(cs)))
		return nil
	}
	r.d.Log.Info("backlog saved", "path", r.cfg.BacklogPath(), "entries", len(entries))
	r.printf("Weekly backlog saved to %s (%d cards).\n", r.cfg.BacklogPath(), len(entries))

	r.notify(ctx, fmt.Sprintf("Replenishment: %d of %d cards created, %s.",
		len(ok), len(cs), report.FormatKg(backlogWeight(entries))))

	return r.Report(ctx, token)
}

func (r *Runner) archive(ctx context.Context, results []cards.Result) {
	if r.d.Archive == nil || len(results) == 0 {
		return
	}
	id := uuid.New()
	if err := r.d.Archive.SaveRun(ctx, id, string(dialog.ModeCreate), results); err != nil {
		r.d.Log.Error("archive failed", "run_id", id, "err", err)
		return
	}
	r.d.Log.Info("results archived", "run_id", id, "results", len(results))
}

func (r *Runner) printFailures(results []cards.Result) {
	failed := cards.Failures(results)
	if len(failed) == 0 {
		r.printf("All %d cards created.\n", len(results))
		return
	}
	r.printf("%d of %d cards failed:\n", len(failed), len(results))
	for _, f := range failed {
		r.printf("  - %s -> %s: %s\n", f.Card.CenterName, f.Card.BranchName, f.Err)
	}
}
