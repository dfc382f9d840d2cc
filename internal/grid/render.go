package grid

import "fmt"

// Cell describes one rendered day. OnSelect is nil for disabled cells.
type Cell struct {
	Index    int
	Day      int
	Disabled bool
	Selected bool
	OnSelect func()
}

// OffsetStyle places the first cell at a grid column. It is rebuilt only
// when the grid offset changes.
type OffsetStyle struct {
	Column int
}

func newOffsetStyle(gridOffset int) OffsetStyle {
	col := gridOffset
	if col < 1 {
		col = 1
	}
	if col > Columns {
		col = Columns
	}
	return OffsetStyle{Column: col}
}

// LeadingBlanks is the number of empty columns before the first cell.
func (o OffsetStyle) LeadingBlanks() int {
	if o.Column < 1 {
		return 0
	}
	return o.Column - 1
}

func (o OffsetStyle) String() string {
	return fmt.Sprintf("grid-column-start: %d", o.Column)
}

type Layout struct {
	Cells  []Cell
	Offset OffsetStyle
}

// Render builds the cell list for the current state. onSelect receives the
// 0-based index of a clicked enabled cell.
func (s State) Render(onSelect func(index int)) Layout {
	cells := make([]Cell, s.dayCount)
	for i := range cells {
		cells[i] = s.describe(i, onSelect)
	}
	return Layout{Cells: cells, Offset: s.offset}
}

func (s State) describe(i int, onSelect func(int)) Cell {
	c := Cell{
		Index:    i,
		Day:      i + 1,
		Disabled: !s.Enabled(i),
		Selected: i == s.selected,
	}
	if !c.Disabled && onSelect != nil {
		c.OnSelect = func() { onSelect(i) }
	}
	return c
}

// CellPosition returns the zero-based row and column of cell i once the
// leading offset is applied.
func (o OffsetStyle) CellPosition(i int) (row, col int) {
	slot := o.LeadingBlanks() + i
	return slot / Columns, slot % Columns
}

// IndexAt is the inverse of CellPosition. It reports false for leading
// blanks and slots past the last cell.
func (o OffsetStyle) IndexAt(row, col, cellCount int) (int, bool) {
	if row < 0 || col < 0 || col >= Columns {
		return 0, false
	}
	i := row*Columns + col - o.LeadingBlanks()
	if i < 0 || i >= cellCount {
		return 0, false
	}
	return i, true
}
