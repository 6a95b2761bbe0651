package backlog

import (
	"github.com/shopspring/decimal"

	"github.com/Spok95/restock/internal/domain/cards"
)

// Backlog workbook columns.
const (
	ColCenter  = "abastecimento_cd"
	ColBranch  = "filial_nome"
	ColDay     = "dia_separacao_nome"
	ColOrderID = "card_id"
	ColSKUs    = "qtd_skus"
	ColUnits   = "qtd_unidades"
	ColWeight  = "peso_total"
)

var Columns = []string{ColCenter, ColBranch, ColDay, ColOrderID, ColSKUs, ColUnits, ColWeight}

// Entry is one successfully submitted card.
type Entry struct {
	CenterName string
	BranchName string
	DayLabel   string
	OrderID    string
	SKUs       int
	Units      decimal.Decimal
	Weight     decimal.Decimal
}

// FromResults keeps successful results only, in submission order.
func FromResults(results []cards.Result) []Entry {
	var out []Entry
	for _, r := range cards.Successes(results) {
		out = append(out, Entry{
			CenterName: r.Card.CenterName,
			BranchName: r.Card.BranchName,
			DayLabel:   r.Card.DayLabel(),
			OrderID:    r.OrderID,
			SKUs:       r.SKUs,
			Units:      r.Units,
			Weight:     r.Weight,
		})
	}
	return out
}
