package report

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	consoleHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")).Padding(0, 1)
	consoleCell   = lipgloss.NewStyle().Padding(0, 1)
	consoleTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
)

// Console renders the weekly pivot as a terminal table for the operator.
func (w Weekly) Console() string {
	headers := append([]string{"Distribution Center"}, w.Days...)
	headers = append(headers, "Weekly Total Weight")

	rows := make([][]string, 0, len(w.Rows))
	for _, r := range w.Rows {
		line := append([]string{r.Center}, r.Cells...)
		rows = append(rows, append(line, FormatKg(r.WeekWeight)))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return consoleHeader
			}
			return consoleCell
		}).
		Headers(headers...).
		Rows(rows...)

	return lipgloss.JoinVertical(lipgloss.Left,
		consoleTitle.Render("MANAGEMENT VIEW - EXECUTION SUMMARY BY DISTRIBUTION CENTER"),
		t.String(),
	)
}
