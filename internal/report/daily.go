package report

import (
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Spok95/restock/internal/domain/backlog"
)

type BranchDay struct {
	Branch   string
	SKUs     int
	Units    decimal.Decimal
	Weight   decimal.Decimal
	Cards    int
	OrderIDs []string
}

type CenterDay struct {
	Center   string
	Branches []BranchDay
	Totals   Totals
}

// Daily is the D+1 view: the backlog filtered to one day label.
type Daily struct {
	Label   string
	Centers []CenterDay
	Totals  Totals
}

// Empty reports whether nothing is scheduled for the day.
func (d Daily) Empty() bool { return len(d.Centers) == 0 }

// BuildDaily keeps entries whose label matches label (case-insensitive) and
// aggregates them per center and branch, both sorted by name.
func BuildDaily(entries []backlog.Entry, label string) Daily {
	d := Daily{Label: label}
	var day []backlog.Entry
	for _, e := range entries {
		if normalize(e.DayLabel) == normalize(label) {
			day = append(day, e)
		}
	}
	if len(day) == 0 {
		return d
	}
	d.Totals = totals(day)

	byCenter := make(map[string][]backlog.Entry)
	for _, e := range day {
		byCenter[e.CenterName] = append(byCenter[e.CenterName], e)
	}
	for _, c := range sortedKeys(byCenter) {
		ce := byCenter[c]
		cd := CenterDay{Center: c, Totals: totals(ce)}

		byBranch := make(map[string][]backlog.Entry)
		for _, e := range ce {
			byBranch[e.BranchName] = append(byBranch[e.BranchName], e)
		}
		for _, b := range sortedKeys(byBranch) {
			t := totals(byBranch[b])
			cd.Branches = append(cd.Branches, BranchDay{
				Branch:   b,
				SKUs:     t.SKUs,
				Units:    t.Units,
				Weight:   t.Weight,
				Cards:    t.Cards,
				OrderIDs: orderIDs(byBranch[b]),
			})
		}
		d.Centers = append(d.Centers, cd)
	}
	return d
}

func sortedKeys(m map[string][]backlog.Entry) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// orderIDs returns the distinct order ids, numeric ids first in numeric
// order, then the rest lexically.
func orderIDs(entries []backlog.Entry) []string {
	seen := make(map[string]struct{}, len(entries))
	var ids []string
	for _, e := range entries {
		if _, ok := seen[e.OrderID]; ok {
			continue
		}
		seen[e.OrderID] = struct{}{}
		ids = append(ids, e.OrderID)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, errA := strconv.ParseInt(ids[i], 10, 64)
		b, errB := strconv.ParseInt(ids[j], 10, 64)
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		}
		return ids[i] < ids[j]
	})
	return ids
}

// JoinIDs renders order ids as one comma separated cell.
func (b BranchDay) JoinIDs() string { return strings.Join(b.OrderIDs, ", ") }
