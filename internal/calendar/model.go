// Package calendar is the Bubble Tea adapter around the grid state machine.
// It owns the cell collaborators, translates terminal keys and mouse clicks,
// and keeps cell focus in step with the logical focus cursor at transition
// boundaries.
package calendar

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/daygrid/internal/grid"
)

// CellSelectedMsg is emitted when an enabled cell is clicked or the focused
// cell is activated. Day is 1-based.
type CellSelectedMsg struct {
	Day int
}

type CellClickMsg struct {
	Index int
}

type SetDayCountMsg struct{ Count int }

type SetGridOffsetMsg struct{ Offset int }

type SetMinEnabledMsg struct{ Index int }

type SetMaxEnabledMsg struct{ Index int }

type SetSelectedDayMsg struct{ Index int }

// FocusMsg and BlurMsg move keyboard focus onto or off the grid container.
type FocusMsg struct{}

type BlurMsg struct{}

type Option func(*Model)

func WithKeyMap(km KeyMap) Option {
	return func(m *Model) { m.KeyMap = km }
}

func WithStyles(s Styles) Option {
	return func(m *Model) { m.Styles = s }
}

func WithState(s grid.State) Option {
	return func(m *Model) { m.state = s }
}

// WithOrigin sets the screen position of the top-left cell, used to hit-test
// mouse presses.
func WithOrigin(x, y int) Option {
	return func(m *Model) { m.originX, m.originY = x, y }
}

type selectionQueue struct {
	indexes []int
}

func (q *selectionQueue) push(index int) { q.indexes = append(q.indexes, index) }

func (q *selectionQueue) drain() []int {
	out := q.indexes
	q.indexes = nil
	return out
}

type Model struct {
	KeyMap KeyMap
	Styles Styles

	state    grid.State
	layout   grid.Layout
	cells    []*DayCell
	pending  *selectionQueue
	attached bool
	focused  bool
	originX  int
	originY  int
}

func New(opts ...Option) Model {
	m := Model{
		KeyMap:  DefaultKeyMap(),
		Styles:  DefaultStyles(),
		state:   grid.New(),
		pending: &selectionQueue{},
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.render()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) State() grid.State { return m.state }

func (m Model) Layout() grid.Layout { return m.layout }

func (m Model) Role() string { return RoleGrid }

// TabStop reports that the container takes keyboard focus by default.
func (m Model) TabStop() bool { return true }

func (m Model) Cells() []Cell {
	out := make([]Cell, len(m.cells))
	for i, c := range m.cells {
		out[i] = c
	}
	return out
}

// FocusedCell returns the index of the cell holding focus, if any.
func (m Model) FocusedCell() (int, bool) {
	for i, c := range m.cells {
		if c.Focused() {
			return i, true
		}
	}
	return 0, false
}

func (m *Model) SetOrigin(x, y int) {
	m.originX, m.originY = x, y
}

func (m *Model) SetDayCount(n int) grid.Change {
	return m.apply(m.state.SetDayCount(n))
}

func (m *Model) SetGridOffset(v int) grid.Change {
	return m.apply(m.state.SetGridOffset(v))
}

func (m *Model) SetMinEnabledIndex(v int) grid.Change {
	return m.apply(m.state.SetMinEnabledIndex(v))
}

func (m *Model) SetMaxEnabledIndex(v int) grid.Change {
	return m.apply(m.state.SetMaxEnabledIndex(v))
}

func (m *Model) SetSelectedDayIndex(v int) grid.Change {
	return m.apply(m.state.SetSelectedDayIndex(v))
}

func (m *Model) apply(c grid.Change) grid.Change {
	if c.NeedsRender() {
		m.render()
	}
	return c
}

// Attach enables key routing and focus forwarding. It is idempotent.
func (m *Model) Attach() {
	m.attached = true
}

// Detach disables key routing and focus forwarding and drops cell focus.
func (m *Model) Detach() {
	m.attached = false
	m.Blur()
}

func (m Model) Attached() bool { return m.attached }

// Focus gives the container keyboard focus and forwards it to the cell under
// the cursor when that cell exists and the cursor is below MaxEnabledIndex.
// Otherwise the container keeps focus itself.
func (m *Model) Focus() {
	m.focused = true
	if !m.attached {
		return
	}
	m.blurCells()
	idx, ok := m.state.ForwardTarget()
	if !ok || idx < 0 || idx >= len(m.cells) {
		return
	}
	m.cells[idx].Focus()
}

func (m *Model) Blur() {
	m.focused = false
	m.blurCells()
}

func (m Model) Focused() bool { return m.focused }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		if !m.attached || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		idx, ok := m.CellAt(msg.X-m.originX, msg.Y-m.originY)
		if !ok {
			return m, nil
		}
		return m, m.click(idx)
	case CellClickMsg:
		return m, m.click(msg.Index)
	case FocusMsg:
		m.Focus()
	case BlurMsg:
		m.Blur()
	case SetDayCountMsg:
		m.SetDayCount(msg.Count)
	case SetGridOffsetMsg:
		m.SetGridOffset(msg.Offset)
	case SetMinEnabledMsg:
		m.SetMinEnabledIndex(msg.Index)
	case SetMaxEnabledMsg:
		m.SetMaxEnabledIndex(msg.Index)
	case SetSelectedDayMsg:
		m.SetSelectedDayIndex(msg.Index)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.attached || !m.focused || len(m.cells) == 0 {
		return m, nil
	}
	k := m.KeyMap.Translate(msg)
	if k == grid.KeyNone {
		return m, nil
	}
	out := m.state.Route(k, len(m.cells))
	if !out.Handled {
		return m, nil
	}
	if out.Moved() {
		m.transferFocus(out.From, out.To)
	}
	if out.Activated {
		return m, selectDayCmd(out.Day)
	}
	return m, nil
}

// Handles reports whether msg is bound to a grid key while the grid can
// route it, so a host can skip its own handling.
func (m Model) Handles(msg tea.KeyMsg) bool {
	return m.attached && m.focused && len(m.cells) > 0 && m.KeyMap.Translate(msg) != grid.KeyNone
}

// transferFocus blurs the prior cell and focuses the new one. Only one cell
// holds focus at a time, so a cell left focused by an earlier cursor
// position is blurred too.
func (m *Model) transferFocus(from, to int) {
	if from >= 0 && from < len(m.cells) {
		m.cells[from].Blur()
	}
	m.blurCells()
	if to >= 0 && to < len(m.cells) {
		m.cells[to].Focus()
	}
}

func (m *Model) blurCells() {
	for _, c := range m.cells {
		c.Blur()
	}
}

// click forwards a click to cell index. Only cells that accepted the click
// produce a selection.
func (m Model) click(index int) tea.Cmd {
	if index < 0 || index >= len(m.cells) {
		return nil
	}
	if !m.cells[index].Click() {
		return nil
	}
	picked := m.pending.drain()
	switch len(picked) {
	case 0:
		return nil
	case 1:
		return selectDayCmd(picked[0] + 1)
	}
	cmds := make([]tea.Cmd, 0, len(picked))
	for _, i := range picked {
		cmds = append(cmds, selectDayCmd(i+1))
	}
	return tea.Batch(cmds...)
}

func (m *Model) render() {
	m.layout = m.state.Render(m.pending.push)
	n := len(m.layout.Cells)
	if len(m.cells) > n {
		m.cells = m.cells[:n]
	}
	for len(m.cells) < n {
		m.cells = append(m.cells, &DayCell{})
	}
	for i, desc := range m.layout.Cells {
		m.cells[i].apply(desc)
	}
}

func selectDayCmd(day int) tea.Cmd {
	return func() tea.Msg {
		return CellSelectedMsg{Day: day}
	}
}
