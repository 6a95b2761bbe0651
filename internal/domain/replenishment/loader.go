package replenishment

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Spok95/restock/internal/infra/sheet"
)

var (
	ErrInputNotFound  = errors.New("replenishment spreadsheet not found")
	ErrNoEligibleRows = errors.New("no rows with suggested quantity > 0")
)

// MissingColumnsError lists required columns absent from the header,
// in RequiredColumns order.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return "required columns not found in spreadsheet: " + strings.Join(e.Columns, ", ")
}

// Validate checks the header against RequiredColumns.
func Validate(header []string) error {
	have := make(map[string]bool, len(header))
	for _, h := range header {
		have[h] = true
	}
	var missing []string
	for _, c := range RequiredColumns {
		if !have[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnsError{Columns: missing}
	}
	return nil
}

// ParseNumber reads a spreadsheet number. A comma decimal separator is
// accepted; anything unparseable is zero.
func ParseNumber(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return d
	}
	if d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ".")); err == nil {
		return d
	}
	return decimal.Zero
}

// Load reads, validates and coerces every row of the spreadsheet at path.
func Load(path string, log *slog.Logger) ([]Row, error) {
	t, err := sheet.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if err := Validate(t.Header); err != nil {
		return nil, err
	}
	if !t.Has(ColDayLabel) {
		log.Warn("separation day column missing, day labels left empty", "column", ColDayLabel)
	}

	rows := make([]Row, 0, len(t.Rows))
	for _, raw := range t.Rows {
		fields := make(map[string]string, len(t.Header))
		for i, h := range t.Header {
			if h == "" {
				continue
			}
			if _, dup := fields[h]; !dup {
				fields[h] = raw[i]
			}
		}
		rows = append(rows, Row{
			CenterID:   t.Value(raw, ColCenterID),
			BranchID:   t.Value(raw, ColBranchID),
			CenterName: t.Value(raw, ColCenterName),
			BranchName: t.Value(raw, ColBranchName),
			Code:       t.Value(raw, ColCode),
			DayLabel:   t.Value(raw, ColDayLabel),
			Quantity:   ParseNumber(t.Value(raw, ColQuantity)),
			Weight:     ParseNumber(t.Value(raw, ColWeight)),
			Fields:     fields,
		})
	}
	log.Info("spreadsheet loaded", "path", path, "rows", len(rows))
	return rows, nil
}

// LoadEligible is Load filtered to rows with quantity > 0.
// It returns ErrNoEligibleRows when nothing is left.
func LoadEligible(path string, log *slog.Logger) ([]Row, error) {
	rows, err := Load(path, log)
	if err != nil {
		return nil, err
	}
	eligible := rows[:0:0]
	for _, r := range rows {
		if r.Eligible() {
			eligible = append(eligible, r)
		}
	}
	if len(eligible) == 0 {
		return nil, ErrNoEligibleRows
	}
	return eligible, nil
}
