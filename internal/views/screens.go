package views

import (
	"fmt"
	"strings"
)

type GridPanelData struct {
	GridView string
	Focused  bool
	DayCount int
}

type PropertiesPanelData struct {
	DayCount        int
	GridOffset      int
	MinEnabledIndex int
	MaxEnabledIndex int
	SelectedDay     int
	FocusIndex      int
	LastSelected    int
	Recording       bool
	Dropped         uint64
}

type HistoryItemData struct {
	Day    int
	Source string
	When   string
}

type HelpPanelData struct {
	Bindings []string
	HelpView string
	Markdown string
}

func RenderGridPanel(data GridPanelData) string {
	var b strings.Builder
	b.WriteString(data.GridView)
	b.WriteString("\n\n")
	if data.DayCount == 0 {
		b.WriteString("(no days)\n")
	}
	if data.Focused {
		b.WriteString("grid: focused [arrows]move [space/enter]select")
	} else {
		b.WriteString("grid: [tab] to focus")
	}
	return b.String()
}

func RenderPropertiesPanel(data PropertiesPanelData) string {
	var b strings.Builder
	b.WriteString("properties:\n")
	b.WriteString(fmt.Sprintf("day-count: %d\n", data.DayCount))
	b.WriteString(fmt.Sprintf("grid-offset: %d\n", data.GridOffset))
	b.WriteString(fmt.Sprintf("min-enabled-index: %d\n", data.MinEnabledIndex))
	b.WriteString(fmt.Sprintf("max-enabled-index: %d\n", data.MaxEnabledIndex))
	b.WriteString(fmt.Sprintf("selected-day-index: %s\n", indexText(data.SelectedDay)))
	b.WriteString(fmt.Sprintf("focus-index: %d\n", data.FocusIndex))
	if data.LastSelected > 0 {
		b.WriteString(fmt.Sprintf("last-selected: day %d\n", data.LastSelected))
	} else {
		b.WriteString("last-selected: (none)\n")
	}
	if data.Recording {
		b.WriteString(fmt.Sprintf("recorder: on (dropped %d)", data.Dropped))
	} else {
		b.WriteString("recorder: off")
	}
	return b.String()
}

func RenderHistoryPanel(items []HistoryItemData) string {
	var b strings.Builder
	b.WriteString("\nhistory:\n")
	if len(items) == 0 {
		b.WriteString("(no selections recorded)")
		return b.String()
	}
	for _, item := range items {
		b.WriteString(fmt.Sprintf("- day %2d  %-8s %s\n", item.Day, item.Source, item.When))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("\nnotification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	var b strings.Builder
	b.WriteString("help:\n")
	b.WriteString(strings.Join(data.Bindings, "\n"))
	if data.HelpView != "" {
		b.WriteString("\n" + data.HelpView)
	}
	if md := RenderMarkdown(data.Markdown); md != "" {
		b.WriteString("\n" + md)
	}
	return b.String()
}

func indexText(v int) string {
	if v < 0 {
		return "none"
	}
	return fmt.Sprintf("%d", v)
}
