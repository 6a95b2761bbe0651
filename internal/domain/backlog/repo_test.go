package backlog

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"

	"github.com/Spok95/restock/internal/domain/cards"
	"github.com/Spok95/restock/internal/infra/db"
)

// Set RESTOCK_TEST_POSTGRES_DSN to run against a disposable database.
func testRepo(t *testing.T) *Repo {
	t.Helper()
	dsn := os.Getenv("RESTOCK_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("RESTOCK_TEST_POSTGRES_DSN not set")
	}
	if err := db.Migrate(dsn); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	// Up is idempotent.
	if err := db.Migrate(dsn); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
	pool, err := db.Connect(context.Background(), dsn)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	t.Cleanup(pool.Close)
	return NewRepo(pool)
}

func TestRepoSaveRun(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	failed := result(false, "", row("A", "2", nil))
	failed.Err = "send card to branch 2: unexpected status 400"
	results := []cards.Result{
		result(true, "1001", row("A", "1,25", nil), row("B", "0,5", nil)),
		failed,
	}

	runID := uuid.New()
	if err := repo.SaveRun(ctx, runID, "create", results); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	total, ok, err := repo.CountRun(ctx, runID)
	if err != nil {
		t.Fatalf("CountRun: %v", err)
	}
	if total != 2 || ok != 1 {
		t.Errorf("Expected 2 results with 1 success, got %d/%d", total, ok)
	}

	rows, err := repo.pool.Query(ctx, `
		SELECT order_id, error, skus, units::text, weight_kg::text, day_label
		FROM card_results WHERE run_id = $1 ORDER BY id
	`, runID)
	if err != nil {
		t.Fatal(err)
	}
	defer rows.Close()

	type stored struct {
		orderID, errText *string
		skus             int
		units, weight    string
		day              string
	}
	var got []stored
	for rows.Next() {
		var s stored
		if err := rows.Scan(&s.orderID, &s.errText, &s.skus, &s.units, &s.weight, &s.day); err != nil {
			t.Fatal(err)
		}
		got = append(got, s)
	}
	if err := rows.Err(); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 stored rows, got %d", len(got))
	}

	first := got[0]
	if first.orderID == nil || *first.orderID != "1001" || first.errText != nil {
		t.Errorf("Expected order 1001 and no error, got %v / %v", first.orderID, first.errText)
	}
	if first.skus != 2 || first.units != "4" || first.weight != "1.75" || first.day != "MONDAY" {
		t.Errorf("Unexpected success row %+v", first)
	}

	second := got[1]
	if second.orderID != nil {
		t.Errorf("Expected empty order id stored as NULL, got %q", *second.orderID)
	}
	if second.errText == nil || *second.errText != failed.Err {
		t.Errorf("Expected failure text, got %v", second.errText)
	}
}

func TestRepoCountUnknownRun(t *testing.T) {
	repo := testRepo(t)
	total, ok, err := repo.CountRun(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("CountRun: %v", err)
	}
	if total != 0 || ok != 0 {
		t.Errorf("Expected nothing for an unknown run, got %d/%d", total, ok)
	}
}
