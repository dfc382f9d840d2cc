package update

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/daygrid/internal/calendar"
	"github.com/sandeepkv93/daygrid/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.Recorder != nil {
		return waitForRecordCmd(m.Recorder.C())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}
		if m.Grid.Handles(typed) {
			m.lastInput = "keyboard"
			var cmd tea.Cmd
			m.Grid, cmd = m.Grid.Update(typed)
			return m, cmd
		}
		switch {
		case key.Matches(typed, m.Keys.Palette):
			m.openPalette()
		case key.Matches(typed, m.Keys.FocusGrid):
			if m.Grid.Focused() {
				m.Grid.Blur()
				m.Status = StatusBar{Text: "grid unfocused"}
			} else {
				m.Grid.Focus()
				m.Status = StatusBar{Text: "grid focused"}
			}
		case key.Matches(typed, m.Keys.Help):
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown", IsError: false}
			} else {
				m.Status = StatusBar{Text: "help hidden", IsError: false}
			}
		case key.Matches(typed, m.Keys.Copy):
			m.copyLastSelected()
		case key.Matches(typed, m.Keys.Quit):
			m.Quitting = true
			m.Grid.Detach()
			return m, tea.Quit
		}
		return m, nil
	case tea.MouseMsg:
		if m.Palette.Active {
			return m, nil
		}
		m.lastInput = "mouse"
		var cmd tea.Cmd
		m.Grid, cmd = m.Grid.Update(typed)
		return m, cmd
	case calendar.CellClickMsg:
		m.lastInput = "mouse"
		var cmd tea.Cmd
		m.Grid, cmd = m.Grid.Update(typed)
		return m, cmd
	case calendar.FocusMsg, calendar.BlurMsg:
		m.Grid, _ = m.Grid.Update(typed)
		return m, nil
	case calendar.SetDayCountMsg, calendar.SetGridOffsetMsg, calendar.SetMinEnabledMsg,
		calendar.SetMaxEnabledMsg, calendar.SetSelectedDayMsg:
		m.Grid, _ = m.Grid.Update(typed)
		return m, m.saveSnapshotCmd()
	case calendar.CellSelectedMsg:
		return m.onCellSelected(typed.Day)
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.logger.Error("app error", "err", typed.Err)
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	case RecordResultMsg:
		if typed.Result.Err != nil {
			m.Status = StatusBar{Text: fmt.Sprintf("record day %d: %v", typed.Result.Event.Day, typed.Result.Err), IsError: true}
		} else {
			m.Recorded++
		}
		if m.Recorder != nil {
			return m, waitForRecordCmd(m.Recorder.C())
		}
		return m, nil
	case HistoryLoadedMsg:
		m.History = typed.Items
		m.HistoryVisible = true
		m.Status = StatusBar{Text: fmt.Sprintf("history: %d selection(s)", len(typed.Items))}
		return m, nil
	case snapshotSavedMsg:
		m.logger.Debug("snapshot saved")
		return m, nil
	}

	return m, nil
}

// onCellSelected is the owner side of a selection: it announces the day,
// records it, and writes it back as the committed selection when configured.
func (m Model) onCellSelected(day int) (tea.Model, tea.Cmd) {
	m.LastSelected = day
	m.Status = StatusBar{Text: fmt.Sprintf("selected day %d", day)}
	n := m.notify("Day Selected", fmt.Sprintf("day %d selected via %s", day, m.lastInput), "info")
	if m.DesktopEnabled && m.notifier != nil {
		if err := m.notifier.Send(n); err != nil {
			m.logger.Warn("desktop notification", "err", err)
		}
	}
	m.logger.Info("cell selected", "day", day, "source", m.lastInput)
	m.submitSelection(day)

	if m.Config.ReflectSelection {
		if m.Grid.SetSelectedDayIndex(day - 1).NeedsRender() {
			return m, m.saveSnapshotCmd()
		}
	}
	return m, nil
}

func (m *Model) copyLastSelected() {
	if m.LastSelected <= 0 {
		m.Status = StatusBar{Text: "nothing selected yet", IsError: true}
		return
	}
	if err := m.clipboard.WriteAll(strconv.Itoa(m.LastSelected)); err != nil {
		m.logger.Warn("clipboard", "err", err)
		m.Status = StatusBar{Text: fmt.Sprintf("copy failed: %v", err), IsError: true}
		return
	}
	m.Status = StatusBar{Text: fmt.Sprintf("copied day %d", m.LastSelected)}
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	rightPane := m.renderPropertiesPane() + m.renderHistoryIfVisible() + m.renderHelpIfVisible()
	if palette := m.renderCommandPalette(); palette != "" {
		rightPane = palette + "\n\n" + rightPane
	}

	header := fmt.Sprintf("daygrid | days: %d | selected: %s", m.Grid.State().DayCount(), selectedText(m.Grid.State().SelectedDayIndex()))
	if m.Month.Validate() == nil {
		header = fmt.Sprintf("daygrid | %s | selected: %s", m.Month.Title(), selectedText(m.Grid.State().SelectedDayIndex()))
	}
	return views.RenderApp(views.AppData{
		Header:       header,
		LeftPane:     m.renderGridPane(),
		RightPane:    rightPane,
		StatusLine:   status,
		StatusError:  m.Status.IsError,
		Notification: m.renderNotificationsView(),
		Footer:       m.helpModel.ShortHelpView(m.globalBindings()),
	})
}
