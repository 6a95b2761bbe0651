package backlog

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Spok95/restock/internal/domain/cards"
)

// Repo archives card results in Postgres next to the weekly workbook.
type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

// SaveRun stores one run and all of its results, failures included.
func (r *Repo) SaveRun(ctx context.Context, runID uuid.UUID, mode string, results []cards.Result) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err = tx.Exec(ctx, `
		INSERT INTO card_runs (id, mode) VALUES ($1, $2)
	`, runID, mode); err != nil {
		return err
	}

	batch := &pgx.Batch{}
	for _, res := range results {
		c := res.Card
		batch.Queue(`
			INSERT INTO card_results (run_id, center_id, center_name, branch_id, branch_name,
				day_label, card_index, card_of, success, order_id, error, skus, units, weight_kg)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,NULLIF($10,''),NULLIF($11,''),$12,$13::numeric,$14::numeric)
		`, runID, c.CenterID, c.CenterName, c.BranchID, c.BranchName,
			c.DayLabel(), c.Index, c.Of, res.Success, res.OrderID, res.Err, res.SKUs,
			res.Units.String(), res.Weight.String())
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// CountRun returns how many results were stored for runID.
func (r *Repo) CountRun(ctx context.Context, runID uuid.UUID) (total, succeeded int, err error) {
	err = r.pool.QueryRow(ctx, `
		SELECT count(*), count(*) FILTER (WHERE success)
		FROM card_results
		WHERE run_id = $1
	`, runID).Scan(&total, &succeeded)
	return total, succeeded, err
}
