package backlog

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Spok95/restock/internal/domain/replenishment"
	"github.com/Spok95/restock/internal/infra/sheet"
)

var (
	ErrNothingToSave   = errors.New("no successful cards to save")
	ErrBacklogNotFound = errors.New("backlog file not found")
	ErrEmptyBacklog    = errors.New("backlog file is empty")
)

// Save overwrites the weekly backlog at path.
func Save(path string, entries []Entry) error {
	if len(entries) == 0 {
		return ErrNothingToSave
	}
	rows := make([][]any, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []any{
			e.CenterName,
			e.BranchName,
			e.DayLabel,
			e.OrderID,
			e.SKUs,
			number(e.Units),
			number(e.Weight),
		})
	}
	if err := sheet.WriteFile(path, Columns, rows); err != nil {
		return fmt.Errorf("write backlog %s: %w", path, err)
	}
	return nil
}

// Load reads the weekly backlog at path.
func Load(path string) ([]Entry, error) {
	t, err := sheet.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrBacklogNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read backlog %s: %w", path, err)
	}
	if len(t.Header) == 0 && len(t.Rows) == 0 {
		return nil, ErrEmptyBacklog
	}

	var missing []string
	for _, c := range Columns {
		if !t.Has(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("backlog %s lacks columns: %s", path, strings.Join(missing, ", "))
	}
	if len(t.Rows) == 0 {
		return nil, ErrEmptyBacklog
	}

	entries := make([]Entry, 0, len(t.Rows))
	for _, row := range t.Rows {
		skus := replenishment.ParseNumber(t.Value(row, ColSKUs))
		entries = append(entries, Entry{
			CenterName: t.Value(row, ColCenter),
			BranchName: t.Value(row, ColBranch),
			DayLabel:   t.Value(row, ColDay),
			OrderID:    t.Value(row, ColOrderID),
			SKUs:       int(skus.IntPart()),
			Units:      replenishment.ParseNumber(t.Value(row, ColUnits)),
			Weight:     replenishment.ParseNumber(t.Value(row, ColWeight)),
		})
	}
	return entries, nil
}

// number turns a decimal into an Excel number, integral when possible.
func number(d decimal.Decimal) any {
	if d.IsInteger() {
		return d.IntPart()
	}
	return d.InexactFloat64()
}

// cellValue writes numeric-looking text as a number. Text with leading
// zeros stays text so item codes survive.
func cellValue(s string) any {
	if s == "" {
		return ""
	}
	if len(s) > 1 && s[0] == '0' && s[1] != '.' {
		return s
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i
		}
		return f
	}
	return s
}
