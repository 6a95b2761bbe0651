package cards

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/Spok95/restock/internal/domain/replenishment"
	"github.com/Spok95/restock/internal/infra/sheet"
	"github.com/Spok95/restock/internal/infra/wms"
)

// OrderCreator is the part of the WMS client the submitter needs.
type OrderCreator interface {
	CreateOrder(ctx context.Context, token string, up wms.Upload) (wms.Result, error)
}

// Submitter uploads cards one at a time. A failed card never stops the loop.
type Submitter struct {
	orders  OrderCreator
	tempDir string
	log     *slog.Logger
}

func NewSubmitter(orders OrderCreator, tempDir string, log *slog.Logger) *Submitter {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &Submitter{orders: orders, tempDir: tempDir, log: log}
}

// SubmitAll submits cards in order. onResult, when set, sees each result as
// soon as it is known.
func (s *Submitter) SubmitAll(ctx context.Context, token string, cs []replenishment.Card, onResult func(Result)) []Result {
	results := make([]Result, 0, len(cs))
	for _, c := range cs {
		r := s.Submit(ctx, token, c)
		if onResult != nil {
			onResult(r)
		}
		results = append(results, r)
	}
	return results
}

// Submit writes the card as a Code/Quantity workbook, uploads it and removes
// the temporary file whatever happens.
func (s *Submitter) Submit(ctx context.Context, token string, card replenishment.Card) Result {
	res := newResult(card)
	path := filepath.Join(s.tempDir, "card_"+uuid.NewString()+".xlsx")
	defer s.remove(path)

	s.log.Info("sending card",
		"center_id", card.CenterID,
		"branch_id", card.BranchID,
		"card", fmt.Sprintf("%d/%d", card.Index, card.Of),
		"items", len(card.Rows),
	)

	out, err := s.upload(ctx, token, card, path)
	if err != nil {
		res.Err = fmt.Sprintf("send card to branch %s: %v", card.BranchID, err)
		var he *wms.HTTPError
		if errors.As(err, &he) && he.Body != "" {
			res.Err += " - response: " + he.Body
		}
		s.log.Error("card failed", "branch_id", card.BranchID, "err", res.Err)
		return res
	}
	if out.JSONError {
		s.log.Warn("order response is not valid JSON", "branch_id", card.BranchID)
	}

	res.Success = true
	res.OrderID = out.OrderID
	s.log.Info("card created", "branch_id", card.BranchID, "order_id", out.OrderID)
	return res
}

func (s *Submitter) upload(ctx context.Context, token string, card replenishment.Card, path string) (wms.Result, error) {
	rows := make([][]any, 0, len(card.Rows))
	for _, r := range card.Rows {
		var qty any = r.Quantity.InexactFloat64()
		if r.Quantity.IsInteger() {
			qty = r.Quantity.IntPart()
		}
		rows = append(rows, []any{r.Code, qty})
	}
	if err := sheet.WriteFile(path, []string{"Code", "Quantity"}, rows); err != nil {
		return wms.Result{}, fmt.Errorf("write card file: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return wms.Result{}, fmt.Errorf("open card file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return s.orders.CreateOrder(ctx, token, wms.Upload{
		OriginID:  card.CenterID,
		DestinyID: card.BranchID,
		FileName:  filepath.Base(path),
		File:      f,
	})
}

func (s *Submitter) remove(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.log.Warn("could not remove temporary card file", "path", path, "err", err)
	}
}
