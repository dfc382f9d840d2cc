package calendar

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/sandeepkv93/daygrid/internal/grid"
)

// CellWidth is the rendered width of one cell, including its padding.
const CellWidth = 4

type Styles struct {
	Day      lipgloss.Style
	Disabled lipgloss.Style
	Selected lipgloss.Style
	Focused  lipgloss.Style
	Blank    lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Day:      lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
		Disabled: lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Faint(true),
		Selected: lipgloss.NewStyle().Background(lipgloss.Color("63")).Foreground(lipgloss.Color("0")),
		Focused:  lipgloss.NewStyle().Underline(true).Bold(true),
		Blank:    lipgloss.NewStyle(),
	}
}

func (m Model) View() string {
	if len(m.cells) == 0 {
		return ""
	}
	offset := m.layout.Offset
	lastRow, _ := offset.CellPosition(len(m.cells) - 1)
	rows := make([][]string, lastRow+1)
	for r := range rows {
		rows[r] = make([]string, 0, grid.Columns)
	}
	blank := m.Styles.Blank.Render(strings.Repeat(" ", CellWidth))
	for i := 0; i < offset.LeadingBlanks(); i++ {
		rows[0] = append(rows[0], blank)
	}
	for i, c := range m.cells {
		row, _ := offset.CellPosition(i)
		rows[row] = append(rows[row], m.renderCell(c))
	}

	lines := make([]string, len(rows))
	for r, cells := range rows {
		lines[r] = strings.Join(cells, "")
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderCell(c *DayCell) string {
	label := " " + runewidth.FillLeft(strconv.Itoa(c.day), CellWidth-2) + " "
	style := m.Styles.Day
	if c.disabled {
		style = m.Styles.Disabled
	}
	if c.selected {
		style = m.Styles.Selected.Inherit(style)
	}
	if c.focused {
		style = m.Styles.Focused.Inherit(style)
	}
	return style.Render(label)
}

// CellAt maps a position relative to the grid's top-left corner to a cell
// index. Leading blanks and empty trailing slots miss.
func (m Model) CellAt(x, y int) (int, bool) {
	if x < 0 || y < 0 {
		return 0, false
	}
	return m.layout.Offset.IndexAt(y, x/CellWidth, len(m.cells))
}
