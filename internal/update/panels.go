package update

import (
	"strings"
	"time"

	"github.com/sandeepkv93/daygrid/internal/views"
)

func (m Model) renderGridPane() string {
	return views.RenderGridPanel(views.GridPanelData{
		GridView: m.Grid.View(),
		Focused:  m.Grid.Focused(),
		DayCount: m.Grid.State().DayCount(),
	})
}

func (m Model) renderPropertiesPane() string {
	s := m.Grid.State()
	return views.RenderPropertiesPanel(views.PropertiesPanelData{
		DayCount:        s.DayCount(),
		GridOffset:      s.GridOffset(),
		MinEnabledIndex: s.MinEnabledIndex(),
		MaxEnabledIndex: s.MaxEnabledIndex(),
		SelectedDay:     s.SelectedDayIndex(),
		FocusIndex:      s.FocusIndex(),
		LastSelected:    m.LastSelected,
		Recording:       m.Recorder != nil,
		Dropped:         m.droppedRecords(),
	})
}

func (m Model) renderHistoryIfVisible() string {
	if !m.HistoryVisible {
		return ""
	}
	items := make([]views.HistoryItemData, 0, len(m.History))
	for _, sel := range m.History {
		items = append(items, views.HistoryItemData{
			Day:    sel.Day,
			Source: sel.Source,
			When:   sel.SelectedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	return views.RenderHistoryPanel(items)
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return strings.TrimSpace(views.RenderNotification(n.Level, n.Body))
}

// notify appends to the in-app notification log and returns the entry.
func (m *Model) notify(title, body, level string) Notification {
	n := Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    time.Now().UTC(),
	}
	if strings.TrimSpace(body) == "" {
		return n
	}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > maxNotifications {
		m.Notifications = m.Notifications[len(m.Notifications)-maxNotifications:]
	}
	return n
}

func (m Model) droppedRecords() uint64 {
	if m.Recorder == nil {
		return 0
	}
	return m.Recorder.Dropped()
}
