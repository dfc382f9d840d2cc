package calendar

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/daygrid/internal/grid"
)

type KeyMap struct {
	Left     key.Binding
	Up       key.Binding
	Right    key.Binding
	Down     key.Binding
	Home     key.Binding
	End      key.Binding
	Activate key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left:     key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "previous day")),
		Up:       key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous week")),
		Right:    key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next day")),
		Down:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next week")),
		Home:     key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first enabled day")),
		End:      key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last enabled day")),
		Activate: key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space/enter", "select day")),
	}
}

// VimKeyMap extends the default bindings with h/j/k/l and g/G.
func VimKeyMap() KeyMap {
	km := DefaultKeyMap()
	km.Left = key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous day"))
	km.Up = key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous week"))
	km.Right = key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next day"))
	km.Down = key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next week"))
	km.Home = key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("home/g", "first enabled day"))
	km.End = key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("end/G", "last enabled day"))
	return km
}

// Translate maps a terminal key to the abstract grid key. Unbound keys map
// to grid.KeyNone.
func (km KeyMap) Translate(msg tea.KeyMsg) grid.Key {
	switch {
	case key.Matches(msg, km.Left):
		return grid.KeyLeft
	case key.Matches(msg, km.Up):
		return grid.KeyUp
	case key.Matches(msg, km.Right):
		return grid.KeyRight
	case key.Matches(msg, km.Down):
		return grid.KeyDown
	case key.Matches(msg, km.Home):
		return grid.KeyHome
	case key.Matches(msg, km.End):
		return grid.KeyEnd
	case key.Matches(msg, km.Activate):
		if msg.Type == tea.KeyEnter {
			return grid.KeyEnter
		}
		return grid.KeySpace
	}
	return grid.KeyNone
}

func (km KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.Left, km.Right, km.Up, km.Down, km.Activate}
}

func (km KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{km.Left, km.Right, km.Up, km.Down},
		{km.Home, km.End, km.Activate},
	}
}
