package cards

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Spok95/restock/internal/domain/replenishment"
	"github.com/Spok95/restock/internal/infra/logger"
	"github.com/Spok95/restock/internal/infra/sheet"
	"github.com/Spok95/restock/internal/infra/wms"
)

type fakeOrders struct {
	calls  []wms.Upload
	tables []*sheet.Table
	fail   map[string]error
	nextID int
}

func (f *fakeOrders) CreateOrder(_ context.Context, token string, up wms.Upload) (wms.Result, error) {
	if token != "tok" {
		return wms.Result{}, fmt.Errorf("bad token %q", token)
	}
	tbl, err := sheet.Read(up.File)
	if err != nil {
		return wms.Result{}, err
	}
	f.calls = append(f.calls, up)
	f.tables = append(f.tables, tbl)
	if err := f.fail[up.DestinyID]; err != nil {
		return wms.Result{}, err
	}
	f.nextID++
	return wms.Result{OrderID: fmt.Sprintf("ORD-%d", f.nextID)}, nil
}

func card(center, branch string, n int) replenishment.Card {
	rows := make([]replenishment.Row, n)
	for i := range rows {
		rows[i] = replenishment.Row{
			CenterID: center,
			BranchID: branch,
			Code:     fmt.Sprintf("00%02d", i%3),
			Quantity: decimal.NewFromInt(int64(i + 1)),
			Weight:   decimal.RequireFromString("1.25"),
		}
	}
	return replenishment.Card{CenterID: center, BranchID: branch, Index: 1, Of: 1, Rows: rows}
}

func tempFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestSubmitUploadsCodeQuantitySheet(t *testing.T) {
	dir := t.TempDir()
	orders := &fakeOrders{}
	s := NewSubmitter(orders, dir, logger.Discard())

	res := s.Submit(context.Background(), "tok", card("5", "8", 4))
	if !res.Success || res.OrderID != "ORD-1" {
		t.Fatalf("Expected success ORD-1, got %+v", res)
	}
	if res.SKUs != 3 {
		t.Errorf("Expected 3 distinct SKUs, got %d", res.SKUs)
	}
	if !res.Units.Equal(decimal.NewFromInt(10)) || !res.Weight.Equal(decimal.NewFromInt(5)) {
		t.Errorf("Unexpected aggregates units=%s weight=%s", res.Units, res.Weight)
	}

	up := orders.calls[0]
	if up.OriginID != "5" || up.DestinyID != "8" {
		t.Errorf("Unexpected warehouses %s -> %s", up.OriginID, up.DestinyID)
	}
	tbl := orders.tables[0]
	if strings.Join(tbl.Header, ",") != "Code,Quantity" {
		t.Errorf("Unexpected header %v", tbl.Header)
	}
	if len(tbl.Rows) != 4 || tbl.Rows[0][0] != "0000" || tbl.Rows[3][1] != "4" {
		t.Errorf("Unexpected rows %v", tbl.Rows)
	}
	if left := tempFiles(t, dir); len(left) != 0 {
		t.Errorf("Expected temp file removed, found %v", left)
	}
}

func TestSubmitAllContinuesAfterFailure(t *testing.T) {
	dir := t.TempDir()
	orders := &fakeOrders{fail: map[string]error{
		"2": &wms.HTTPError{Status: 500, Body: "warehouse closed"},
		"3": errors.New("connection reset"),
	}}
	s := NewSubmitter(orders, dir, logger.Discard())

	var seen int
	results := s.SubmitAll(context.Background(), "tok",
		[]replenishment.Card{card("1", "1", 2), card("1", "2", 2), card("1", "3", 2), card("1", "4", 2)},
		func(Result) { seen++ },
	)
	if seen != 4 || len(results) != 4 {
		t.Fatalf("Expected 4 results, got %d (callback %d)", len(results), seen)
	}
	if got := len(Successes(results)); got != 2 {
		t.Errorf("Expected 2 successes, got %d", got)
	}
	fails := Failures(results)
	if len(fails) != 2 {
		t.Fatalf("Expected 2 failures, got %d", len(fails))
	}
	want := "send card to branch 2: unexpected status 500 - response: warehouse closed"
	if fails[0].Err != want {
		t.Errorf("Expected %q, got %q", want, fails[0].Err)
	}
	if fails[1].Err != "send card to branch 3: connection reset" {
		t.Errorf("Unexpected error %q", fails[1].Err)
	}
	if fails[0].OrderID != "" {
		t.Errorf("Expected no order id on failure, got %q", fails[0].OrderID)
	}
	if results[3].OrderID != "ORD-2" {
		t.Errorf("Expected last card ORD-2, got %q", results[3].OrderID)
	}
	if left := tempFiles(t, dir); len(left) != 0 {
		t.Errorf("Expected every temp file removed, found %v", left)
	}
}

func TestSubmitFileErrorIsCardFailure(t *testing.T) {
	s := NewSubmitter(&fakeOrders{}, "/nonexistent/dir/for/cards", logger.Discard())
	res := s.Submit(context.Background(), "tok", card("1", "9", 1))
	if res.Success {
		t.Fatal("Expected failure when the temp dir is missing")
	}
	if !strings.HasPrefix(res.Err, "send card to branch 9: write card file") {
		t.Errorf("Unexpected error %q", res.Err)
	}
}
