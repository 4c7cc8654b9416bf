package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table renders left-aligned columns separated by spaces, without borders.
// Widths are measured with lipgloss so styled cells line up.
type Table struct {
	rows   [][]string
	widths []int
	gap    int
}

// NewTable creates a table with a fixed number of columns.
func NewTable(cols int) *Table {
	return &Table{widths: make([]int, cols), gap: 2}
}

// AddRow appends a row. Extra cells are dropped and missing cells are empty.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.widths))
	copy(row, cells)
	for i, cell := range row {
		if w := lipgloss.Width(cell); w > t.widths[i] {
			t.widths[i] = w
		}
	}
	t.rows = append(t.rows, row)
}

func (t *Table) String() string {
	if len(t.rows) == 0 {
		return ""
	}

	var sb strings.Builder
	sep := strings.Repeat(" ", t.gap)
	for _, row := range t.rows {
		for i, cell := range row {
			if i > 0 {
				sb.WriteString(sep)
			}
			sb.WriteString(cell)
			// The last column is never padded.
			if i < len(row)-1 {
				sb.WriteString(strings.Repeat(" ", t.widths[i]-lipgloss.Width(cell)))
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// List renders an indented bullet list.
type List struct {
	items []string
}

func NewList() *List {
	return &List{}
}

func (l *List) Add(item string) {
	l.items = append(l.items, item)
}

func (l *List) String() string {
	var sb strings.Builder
	for _, item := range l.items {
		sb.WriteString("  • ")
		sb.WriteString(item)
		sb.WriteString("\n")
	}
	return sb.String()
}
