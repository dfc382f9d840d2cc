package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/daygrid/internal/views"
)

const helpMarkdown = `## Palette

| command | effect |
|---|---|
| ` + "`days N`" + ` | number of day cells |
| ` + "`offset N`" + ` | column of day 1 (1-7) |
| ` + "`min N`" + ` / ` + "`max N`" + ` | enabled index window |
| ` + "`select N`" + ` / ` + "`clear`" + ` | committed selection |
| ` + "`month YYYY-MM`" + ` | days and offset of a calendar month |
| ` + "`month next`" + ` / ` + "`month prev`" + ` | step the shown month |
| ` + "`history [N]`" + ` | recent selections |
`

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return "\n\n" + m.renderHelpView()
}

func (m Model) renderHelpView() string {
	global := m.globalBindings()
	var plain []string
	for _, b := range global {
		plain = append(plain, fmt.Sprintf("- %s: %s", b.Help().Key, b.Help().Desc))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Bindings: plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: global,
			full:  append([][]key.Binding{global}, m.Grid.KeyMap.FullHelp()...),
		}),
		Markdown: helpMarkdown,
	})
}

func (m Model) globalBindings() []key.Binding {
	return []key.Binding{
		m.Keys.FocusGrid,
		m.Keys.Palette,
		m.Keys.Help,
		m.Keys.Copy,
		m.Keys.Quit,
	}
}
