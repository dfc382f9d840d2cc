package calendar

import "github.com/sandeepkv93/daygrid/internal/grid"

const (
	RoleGrid     = "grid"
	RoleGridCell = "gridcell"
)

// Cell is what the grid needs from a day cell: focus signalling, the
// disabled/selected pair and a click that reports whether it was accepted.
type Cell interface {
	Focus()
	Blur()
	Focused() bool
	Disabled() bool
	Selected() bool
	Click() bool
	Role() string
}

type DayCell struct {
	index    int
	day      int
	disabled bool
	selected bool
	focused  bool
	onClick  func()
}

var _ Cell = (*DayCell)(nil)

func (c *DayCell) Focus()         { c.focused = true }
func (c *DayCell) Blur()          { c.focused = false }
func (c *DayCell) Focused() bool  { return c.focused }
func (c *DayCell) Disabled() bool { return c.disabled }
func (c *DayCell) Selected() bool { return c.selected }
func (c *DayCell) Role() string   { return RoleGridCell }
func (c *DayCell) Index() int     { return c.index }
func (c *DayCell) Day() int       { return c.day }

// Click runs the selection handler bound at render time. Disabled cells have
// none and report false.
func (c *DayCell) Click() bool {
	if c.onClick == nil {
		return false
	}
	c.onClick()
	return true
}

func (c *DayCell) apply(d grid.Cell) {
	c.index = d.Index
	c.day = d.Day
	c.disabled = d.Disabled
	c.selected = d.Selected
	c.onClick = d.OnSelect
}
