package report

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Spok95/restock/internal/domain/backlog"
)

// EmptyCell marks a (center, day) without cards.
const EmptyCell = "-"

// Totals aggregates a set of backlog entries.
type Totals struct {
	Cards    int
	Branches int
	SKUs     int
	Units    decimal.Decimal
	Weight   decimal.Decimal
}

// Summary is the pivot cell text.
func (t Totals) Summary() string {
	return fmt.Sprintf("%d Cards / %d Branches / %d SKUs / %s Units / %s",
		t.Cards, t.Branches, t.SKUs, FormatUnits(t.Units), FormatKg(t.Weight))
}

func totals(entries []backlog.Entry) Totals {
	t := Totals{Units: decimal.Zero, Weight: decimal.Zero}
	orders := make(map[string]struct{})
	branches := make(map[string]struct{})
	for _, e := range entries {
		orders[e.OrderID] = struct{}{}
		branches[e.BranchName] = struct{}{}
		t.SKUs += e.SKUs
		t.Units = t.Units.Add(e.Units)
		t.Weight = t.Weight.Add(e.Weight)
	}
	t.Cards = len(orders)
	t.Branches = len(branches)
	return t
}

// WeeklyRow is one distribution center of the pivot.
type WeeklyRow struct {
	Center     string
	Cells      []string // one per Weekly.Days entry
	WeekWeight decimal.Decimal
}

// Weekly is the center x workday pivot of the whole backlog.
type Weekly struct {
	Days []string
	Rows []WeeklyRow
}

// BuildWeekly groups entries by (center, day) and pivots the first five day
// labels into columns. The week weight sums every entry of the center,
// weekend and unknown days included.
func BuildWeekly(entries []backlog.Entry, days Days) Weekly {
	w := Weekly{Days: days.Workdays()}
	if len(entries) == 0 {
		return w
	}

	byCenter := make(map[string][]backlog.Entry)
	for _, e := range entries {
		byCenter[e.CenterName] = append(byCenter[e.CenterName], e)
	}
	centers := make([]string, 0, len(byCenter))
	for c := range byCenter {
		centers = append(centers, c)
	}
	sort.Strings(centers)

	for _, c := range centers {
		perDay := make(map[int][]backlog.Entry)
		for _, e := range byCenter[c] {
			if i, ok := days.IndexOf(e.DayLabel); ok && i < 5 {
				perDay[i] = append(perDay[i], e)
			}
		}
		row := WeeklyRow{Center: c, Cells: make([]string, 5)}
		for i := range row.Cells {
			if es, ok := perDay[i]; ok {
				row.Cells[i] = totals(es).Summary()
			} else {
				row.Cells[i] = EmptyCell
			}
		}
		row.WeekWeight = totals(byCenter[c]).Weight
		w.Rows = append(w.Rows, row)
	}
	return w
}
