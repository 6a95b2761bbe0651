package report

import (
	"fmt"
	"strings"
	"time"
)

// DefaultDayLabels maps index 0..6 to Monday..Sunday.
var DefaultDayLabels = []string{"MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY", "SUNDAY"}

// Days maps a Monday-based day index to the label used in the backlog.
type Days struct {
	labels [7]string
	index  map[string]int
}

// NewDays accepts exactly seven distinct labels, Monday first.
func NewDays(labels []string) (Days, error) {
	var d Days
	if len(labels) != 7 {
		return d, fmt.Errorf("need 7 day labels, got %d", len(labels))
	}
	d.index = make(map[string]int, 7)
	for i, l := range labels {
		k := normalize(l)
		if k == "" {
			return d, fmt.Errorf("day label %d is empty", i)
		}
		if _, dup := d.index[k]; dup {
			return d, fmt.Errorf("day label %q repeated", l)
		}
		d.labels[i] = k
		d.index[k] = i
	}
	return d, nil
}

func normalize(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }

// Index returns the Monday-based index of t's weekday.
func Index(t time.Time) int { return (int(t.Weekday()) + 6) % 7 }

// Label returns the label for index i (0 = Monday).
func (d Days) Label(i int) string { return d.labels[((i%7)+7)%7] }

// IndexOf finds the index of a label, ignoring case and padding.
func (d Days) IndexOf(label string) (int, bool) {
	i, ok := d.index[normalize(label)]
	return i, ok
}

// Tomorrow is the label of the day after t.
func (d Days) Tomorrow(t time.Time) string { return d.Label(Index(t) + 1) }

// Workdays are the first five labels, the weekly pivot columns.
func (d Days) Workdays() []string { return append([]string(nil), d.labels[:5]...) }
