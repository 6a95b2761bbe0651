package cards

import (
	"github.com/shopspring/decimal"

	"github.com/Spok95/restock/internal/domain/replenishment"
)

// Result is the outcome of one card submission.
type Result struct {
	Card    replenishment.Card
	Success bool
	OrderID string
	Err     string

	SKUs   int
	Units  decimal.Decimal
	Weight decimal.Decimal
}

func newResult(card replenishment.Card) Result {
	return Result{
		Card:   card,
		SKUs:   card.DistinctCodes(),
		Units:  card.Units(),
		Weight: card.Weight(),
	}
}

// Successes filters results to accepted cards, keeping order.
func Successes(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.Success {
			out = append(out, r)
		}
	}
	return out
}

// Failures filters results to rejected cards, keeping order.
func Failures(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.Success {
			out = append(out, r)
		}
	}
	return out
}
