// Package static renders non-interactive terminal output such as the
// per-branch summary table.
package static

import (
	"slices"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Table is a borderless table whose columns size to their content.
type Table struct {
	Headers []string
	Rows    [][]string
	// Numeric lists the columns that are right-aligned.
	Numeric []int
}

// Render returns the table followed by a newline, or "" when there are no rows.
func (t Table) Render() string {
	if len(t.Rows) == 0 {
		return ""
	}

	cell := lipgloss.NewStyle().PaddingRight(2)
	header := cell.Bold(true)

	lt := table.New().
		Headers(t.Headers...).
		Rows(t.Rows...).
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := cell
			if row == table.HeaderRow {
				s = header
			}
			if slices.Contains(t.Numeric, col) {
				s = s.Align(lipgloss.Right)
			}
			return s
		})

	return lt.String() + "\n"
}
