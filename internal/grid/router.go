package grid

type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyUp
	KeyRight
	KeyDown
	KeyHome
	KeyEnd
	KeySpace
	KeyEnter
)

func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "left"
	case KeyUp:
		return "up"
	case KeyRight:
		return "right"
	case KeyDown:
		return "down"
	case KeyHome:
		return "home"
	case KeyEnd:
		return "end"
	case KeySpace:
		return "space"
	case KeyEnter:
		return "enter"
	default:
		return "none"
	}
}

// Outcome is the result of routing one key. Handled keys have their default
// action suppressed by the adapter.
type Outcome struct {
	Key       Key
	Handled   bool
	From      int
	To        int
	Activated bool
	Day       int
}

func (o Outcome) Moved() bool { return o.From != o.To }

// JumpBackward moves focus back by step when the target is not below
// max(0, MinEnabledIndex). It returns the resulting focus index.
func (s *State) JumpBackward(step int) int {
	if next := s.focus - step; next >= max(0, s.minEnabled) {
		s.focus = next
	}
	return s.focus
}

// JumpForward moves focus ahead by step when the target is below
// min(cellCount, MaxEnabledIndex). It returns the resulting focus index.
func (s *State) JumpForward(step, cellCount int) int {
	if next := s.focus + step; next < min(cellCount, s.maxEnabled) {
		s.focus = next
	}
	return s.focus
}

func (s *State) Home() int {
	s.focus = max(0, s.minEnabled)
	return s.focus
}

func (s *State) End(cellCount int) int {
	s.focus = min(cellCount, s.maxEnabled) - 1
	return s.focus
}

// Activate reports the 1-based day under the cursor without moving it.
func (s State) Activate() int {
	return s.focus + 1
}

// Route applies k to the cursor. With no rendered cells every key is
// ignored and left unhandled.
func (s *State) Route(k Key, cellCount int) Outcome {
	out := Outcome{Key: k, From: s.focus, To: s.focus}
	if cellCount <= 0 {
		return out
	}
	out.Handled = true
	switch k {
	case KeyLeft:
		out.To = s.JumpBackward(1)
	case KeyUp:
		out.To = s.JumpBackward(Columns)
	case KeyRight:
		out.To = s.JumpForward(1, cellCount)
	case KeyDown:
		out.To = s.JumpForward(Columns, cellCount)
	case KeyHome:
		out.To = s.Home()
	case KeyEnd:
		out.To = s.End(cellCount)
	case KeySpace, KeyEnter:
		out.Activated = true
		out.Day = s.Activate()
	default:
		out.Handled = false
	}
	return out
}

// ForwardTarget is the cell that should take focus when the grid container
// itself is focused. Focus is only forwarded while FocusIndex is below
// MaxEnabledIndex.
func (s State) ForwardTarget() (int, bool) {
	if s.focus < s.maxEnabled {
		return s.focus, true
	}
	return 0, false
}
