package replenishment

import (
	"fmt"
	"sort"
	"strconv"
)

type groupKey struct {
	center string
	branch string
}

// Batch groups rows by (center id, branch id) and splits each group into
// consecutive cards of at most size rows. Groups come out ordered by key;
// rows keep their input order.
func Batch(rows []Row, size int) ([]Card, error) {
	if size <= 0 {
		return nil, fmt.Errorf("batch size must be > 0, got %d", size)
	}

	groups := make(map[groupKey][]Row)
	var keys []groupKey
	for _, r := range rows {
		k := groupKey{center: r.CenterID, branch: r.BranchID}
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], r)
	}
	sort.SliceStable(keys, func(i, j int) bool {
		if c := compareID(keys[i].center, keys[j].center); c != 0 {
			return c < 0
		}
		return compareID(keys[i].branch, keys[j].branch) < 0
	})

	var cards []Card
	for _, k := range keys {
		g := groups[k]
		n := (len(g) + size - 1) / size
		for i := 0; i < n; i++ {
			end := (i + 1) * size
			if end > len(g) {
				end = len(g)
			}
			cards = append(cards, Card{
				CenterID:   k.center,
				BranchID:   k.branch,
				CenterName: g[0].CenterName,
				BranchName: g[0].BranchName,
				Index:      i + 1,
				Of:         n,
				Rows:       g[i*size : end],
			})
		}
	}
	return cards, nil
}

// compareID orders integer ids numerically and before any text id;
// text ids compare lexically.
func compareID(a, b string) int {
	x, errA := strconv.ParseInt(a, 10, 64)
	y, errB := strconv.ParseInt(b, 10, 64)
	switch {
	case errA == nil && errB == nil:
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
