package view

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// TableContent contains table rows and cell styles.
type TableContent struct {
	Rows       [][]string
	CellStyles [][]lipgloss.Style
}

// TableViewState holds data needed to render the slot grid.
type TableViewState struct {
	InnerW       int
	GridH        int
	Headers      []string
	HeaderStyles []lipgloss.Style
	Content      TableContent
	BorderStyle  lipgloss.Style
	VAlign       lipgloss.Position
	Bg           lipgloss.Color
}

// ColumnWidth returns the text width of each room column when the grid has
// slotW cells for the slot labels and rooms room columns.
func ColumnWidth(innerW, slotW, rooms int) int {
	if rooms <= 0 {
		return 0
	}
	// One border per column plus the outer right border, one padding cell each side.
	free := innerW - 2 - slotW - 1 - rooms*3
	return max(free/rooms, 1)
}

// RenderTable renders the grid with slots as rows and rooms as columns.
func RenderTable(state TableViewState) string {
	if state.GridH <= 0 || len(state.Headers) == 0 {
		return ""
	}

	t := table.New().
		Headers(state.Headers...).
		Width(max(state.InnerW-2, 0)).
		Border(lipgloss.RoundedBorder()).
		BorderHeader(true).
		BorderColumn(true).
		BorderRow(true).
		BorderStyle(state.BorderStyle).
		Rows(state.Content.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				if col >= 0 && col < len(state.HeaderStyles) {
					return state.HeaderStyles[col]
				}
				return lipgloss.NewStyle()
			}
			if row < 0 || row >= len(state.Content.CellStyles) || col < 0 || col >= len(state.Content.CellStyles[row]) {
				return lipgloss.NewStyle()
			}
			return state.Content.CellStyles[row][col]
		})

	return PlaceBox(state.InnerW, state.GridH, state.VAlign, t.Render(), state.Bg)
}
