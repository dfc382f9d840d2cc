package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/daygrid/internal/commands"
	"github.com/sandeepkv93/daygrid/internal/grid"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	default:
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
		return m, cmd
	}
	return m, nil
}

func (m *Model) openPalette() {
	m.Palette.Active = true
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Focus()
	m.gridHadFocus = m.Grid.Focused()
	m.Grid.Blur()
	m.Status = StatusBar{Text: "command palette active", IsError: false}
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	if m.gridHadFocus {
		m.Grid.Focus()
		m.gridHadFocus = false
	}
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.closePalette()
		return m, nil
	}

	var (
		follow  tea.Cmd
		changed bool
	)
	property := func(name string, set func(int) grid.Change) func(commands.PropertyArgs) (commands.Result, error) {
		return func(a commands.PropertyArgs) (commands.Result, error) {
			c := set(a.Value)
			if !c.NeedsRender() {
				return commands.Result{Message: fmt.Sprintf("%s unchanged", name)}, nil
			}
			changed = true
			return commands.Result{Message: fmt.Sprintf("%s set to %d", name, a.Value)}, nil
		}
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Days:   property("day-count", m.Grid.SetDayCount),
		Offset: property("grid-offset", m.Grid.SetGridOffset),
		Min:    property("min-enabled-index", m.Grid.SetMinEnabledIndex),
		Max:    property("max-enabled-index", m.Grid.SetMaxEnabledIndex),
		Select: property("selected-day-index", m.Grid.SetSelectedDayIndex),
		History: func(h commands.HistoryArgs) (commands.Result, error) {
			if m.store == nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "history requires a database (--db)"}
			}
			follow = m.loadHistoryCmd(h.Limit)
			return commands.Result{Message: fmt.Sprintf("loading last %d selection(s)", h.Limit)}, nil
		},
		Month: func(a commands.MonthArgs) (commands.Result, error) {
			target := a.Month
			if a.Step != 0 {
				if m.Month.Validate() != nil {
					return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no month shown yet: use month YYYY-MM"}
				}
				target = m.Month.Next()
				if a.Step < 0 {
					target = m.Month.Prev()
				}
			}
			if m.showMonth(target) {
				changed = true
			}
			return commands.Result{Message: fmt.Sprintf("showing %s", target.Title())}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
	} else {
		m.Status = StatusBar{Text: res.Message, IsError: false}
		m.notify("Command", res.Message, "info")
		m.logger.Debug("palette command", "raw", raw, "result", res.Message)
	}
	if changed {
		follow = m.saveSnapshotCmd()
	}

	m.closePalette()
	return m, follow
}
