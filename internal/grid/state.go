// Package grid holds the focus and selection state machine of the day grid.
//
// State tracks the enabled window [MinEnabledIndex, MaxEnabledIndex), the
// committed selection and the logical focus cursor. It knows nothing about
// terminals or cell widgets; adapters translate input into Key values and
// forward focus to whatever cell FocusIndex names.
package grid

const (
	Columns                = 7
	NoSelection            = -1
	DefaultMaxEnabledIndex = 32
	DefaultGridOffset      = 1
)

type Property string

const (
	PropDayCount         Property = "dayCount"
	PropGridOffset       Property = "gridOffset"
	PropMinEnabledIndex  Property = "minEnabledIndex"
	PropMaxEnabledIndex  Property = "maxEnabledIndex"
	PropSelectedDayIndex Property = "selectedDayIndex"
)

// Change reports what a setter did so the host can decide whether to
// re-render. Focus is the derived focus index after the write.
type Change struct {
	Property       Property
	ValueChanged   bool
	FocusChanged   bool
	EnabledChanged bool
	PrevFocus      int
	Focus          int
}

func (c Change) NeedsRender() bool {
	return c.ValueChanged || c.FocusChanged || c.EnabledChanged
}

type State struct {
	dayCount   int
	gridOffset int
	minEnabled int
	maxEnabled int
	selected   int
	focus      int
	offset     OffsetStyle
}

func New() State {
	s := State{
		gridOffset: DefaultGridOffset,
		maxEnabled: DefaultMaxEnabledIndex,
		selected:   NoSelection,
	}
	s.offset = newOffsetStyle(s.gridOffset)
	return s
}

func (s State) DayCount() int         { return s.dayCount }
func (s State) GridOffset() int       { return s.gridOffset }
func (s State) MinEnabledIndex() int  { return s.minEnabled }
func (s State) MaxEnabledIndex() int  { return s.maxEnabled }
func (s State) SelectedDayIndex() int { return s.selected }
func (s State) FocusIndex() int       { return s.focus }
func (s State) Offset() OffsetStyle   { return s.offset }

// Enabled reports whether i lies in the half-open enabled window. Bounds are
// used raw: an inverted window enables nothing.
func (s State) Enabled(i int) bool {
	return s.minEnabled <= i && i < s.maxEnabled
}

// SetSelectedDayIndex stores v and moves focus onto it, falling back to
// MinEnabledIndex when v is outside the enabled window.
func (s *State) SetSelectedDayIndex(v int) Change {
	c := s.begin(PropSelectedDayIndex, s.selected != v)
	s.selected = v
	s.focus = v
	if !s.Enabled(s.focus) {
		s.focus = s.minEnabled
	}
	return s.finish(c, false)
}

// SetMinEnabledIndex stores v and pulls focus up to it. The upper bound is
// not rechecked here.
func (s *State) SetMinEnabledIndex(v int) Change {
	c := s.begin(PropMinEnabledIndex, s.minEnabled != v)
	before := s.enabledSpan()
	s.minEnabled = v
	if s.focus < v {
		s.focus = v
	}
	return s.finish(c, before != s.enabledSpan())
}

// SetMaxEnabledIndex stores v and resets focus to MinEnabledIndex when focus
// is no longer below v. MinEnabledIndex is reused as-is, even if it is not
// itself below v.
func (s *State) SetMaxEnabledIndex(v int) Change {
	c := s.begin(PropMaxEnabledIndex, s.maxEnabled != v)
	before := s.enabledSpan()
	s.maxEnabled = v
	if s.focus >= v {
		s.focus = s.minEnabled
	}
	return s.finish(c, before != s.enabledSpan())
}

// SetDayCount stores n; negative counts are treated as zero.
func (s *State) SetDayCount(n int) Change {
	if n < 0 {
		n = 0
	}
	c := s.begin(PropDayCount, s.dayCount != n)
	before := s.enabledSpan()
	s.dayCount = n
	return s.finish(c, before != s.enabledSpan())
}

func (s *State) SetGridOffset(v int) Change {
	c := s.begin(PropGridOffset, s.gridOffset != v)
	s.gridOffset = v
	if c.ValueChanged {
		s.offset = newOffsetStyle(v)
	}
	return s.finish(c, false)
}

func (s *State) begin(p Property, valueChanged bool) Change {
	return Change{Property: p, ValueChanged: valueChanged, PrevFocus: s.focus}
}

func (s *State) finish(c Change, enabledChanged bool) Change {
	c.Focus = s.focus
	c.FocusChanged = c.PrevFocus != s.focus
	c.EnabledChanged = enabledChanged
	return c
}

type span struct{ lo, hi int }

// enabledSpan is the enabled window clipped to the rendered cells, with every
// empty window collapsed to the same value.
func (s State) enabledSpan() span {
	lo := max(s.minEnabled, 0)
	hi := min(s.maxEnabled, s.dayCount)
	if hi <= lo {
		return span{}
	}
	return span{lo: lo, hi: hi}
}
