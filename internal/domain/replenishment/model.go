package replenishment

import "github.com/shopspring/decimal"

// Column names of the replenishment spreadsheet.
const (
	ColCenterID   = "cdAbastecimentoId"
	ColBranchID   = "filialOperacaoId"
	ColCode       = "originalCode"
	ColQuantity   = "sugestaoAbastecimento"
	ColBranchName = "filial"
	ColCenterName = "abastecimento_cd"
	ColWeight     = "PesoTotal"
	ColDayLabel   = "DiasParaSeparacaoConvertido"
)

// RequiredColumns must all be present in the header.
var RequiredColumns = []string{
	ColCenterID,
	ColBranchID,
	ColCode,
	ColQuantity,
	ColBranchName,
	ColCenterName,
	ColWeight,
}

// Row is one spreadsheet record. Fields holds every column as read, so
// descriptive data (model, demand, stock levels) travels with the row.
type Row struct {
	CenterID   string
	BranchID   string
	CenterName string
	BranchName string
	Code       string
	DayLabel   string
	Quantity   decimal.Decimal
	Weight     decimal.Decimal
	Fields     map[string]string
}

// Eligible reports whether the row can go on a card.
func (r Row) Eligible() bool { return r.Quantity.IsPositive() }

// Card is at most MaxItems rows for one (center, branch) pair.
type Card struct {
	CenterID   string
	BranchID   string
	CenterName string
	BranchName string
	Index      int // 1-based within the group
	Of         int
	Rows       []Row
}

// DayLabel is the separation day of the card's first row.
func (c Card) DayLabel() string {
	if len(c.Rows) == 0 {
		return ""
	}
	return c.Rows[0].DayLabel
}

// DistinctCodes counts unique item codes on the card.
func (c Card) DistinctCodes() int {
	seen := make(map[string]struct{}, len(c.Rows))
	for _, r := range c.Rows {
		seen[r.Code] = struct{}{}
	}
	return len(seen)
}

// Units sums the suggested quantities.
func (c Card) Units() decimal.Decimal {
	sum := decimal.Zero
	for _, r := range c.Rows {
		sum = sum.Add(r.Quantity)
	}
	return sum
}

// Weight sums the row weights.
func (c Card) Weight() decimal.Decimal {
	sum := decimal.Zero
	for _, r := range c.Rows {
		sum = sum.Add(r.Weight)
	}
	return sum
}
