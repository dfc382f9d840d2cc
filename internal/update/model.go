// Package update is the host application that owns the day grid. It routes
// terminal input, applies palette property writes, and reacts to day
// selections by reflecting, recording, and announcing them.
package update

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/gen2brain/beeep"
	"github.com/sandeepkv93/daygrid/internal/calendar"
	"github.com/sandeepkv93/daygrid/internal/model"
	"github.com/sandeepkv93/daygrid/internal/recorder"
	"github.com/sandeepkv93/daygrid/internal/storage"
	"github.com/sandeepkv93/daygrid/internal/views"
)

const (
	maxNotifications = 40
	storeTimeout     = 2 * time.Second
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	FocusGrid key.Binding
	Palette   key.Binding
	Help      key.Binding
	Copy      key.Binding
	Quit      key.Binding
}

func DefaultGlobalKeyMap() GlobalKeyMap {
	return GlobalKeyMap{
		FocusGrid: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus/unfocus grid")),
		Palette:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "open command palette")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help panel")),
		Copy:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy last selected day")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit app")),
	}
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type BeeepDesktopNotifier struct{}

func (BeeepDesktopNotifier) Send(n Notification) error {
	return beeep.Notify(n.Title, n.Body, "")
}

type ClipboardWriter interface {
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// Store is the persistence the host needs. *storage.SQLiteRepository
// satisfies it.
type Store interface {
	SaveSnapshot(ctx context.Context, in storage.GridSnapshot) error
	GetSnapshot(ctx context.Context, name string) (storage.GridSnapshot, error)
	ListSelections(ctx context.Context, filter storage.SelectionListFilter) ([]storage.Selection, error)
}

// Deps wires the optional collaborators. Nil fields disable the feature.
type Deps struct {
	Store     Store
	Recorder  *recorder.Engine
	Notifier  DesktopNotifier
	Clipboard ClipboardWriter
	Logger    *slog.Logger
}

type Model struct {
	Grid           calendar.Model
	Config         RuntimeConfig
	Month          model.Month
	WeekStart      model.WeekStart
	Palette        CommandPaletteState
	HelpVisible    bool
	Notifications  []Notification
	DesktopEnabled bool
	Recorder       *recorder.Engine
	History        []storage.Selection
	HistoryVisible bool
	LastSelected   int
	Recorded       int
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error

	store        Store
	notifier     DesktopNotifier
	clipboard    ClipboardWriter
	logger       *slog.Logger
	lastInput    string
	gridHadFocus bool
	commandInput textinput.Model
	helpModel    help.Model
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type RecordResultMsg struct {
	Result recorder.Result
}

type HistoryLoadedMsg struct {
	Items []storage.Selection
}

type snapshotSavedMsg struct{}

func NewModel() Model {
	return NewModelWithConfig(DefaultRuntimeConfig(), Deps{})
}

func NewModelWithConfig(cfg RuntimeConfig, deps Deps) Model {
	keyMap := calendar.DefaultKeyMap()
	if cfg.VimKeys {
		keyMap = calendar.VimKeyMap()
	}
	insetX, insetY := views.PanelInset()

	m := Model{
		Grid:           calendar.New(calendar.WithKeyMap(keyMap), calendar.WithOrigin(insetX, 1+insetY)),
		Config:         cfg,
		DesktopEnabled: cfg.DesktopNotifications,
		Recorder:       deps.Recorder,
		Keys:           DefaultGlobalKeyMap(),
		store:          deps.Store,
		notifier:       deps.Notifier,
		clipboard:      deps.Clipboard,
		logger:         deps.Logger,
		lastInput:      "keyboard",
	}
	if m.notifier == nil {
		m.notifier = NoopDesktopNotifier{}
	}
	if m.clipboard == nil {
		m.clipboard = systemClipboard{}
	}
	if m.logger == nil {
		m.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	m.initBubbleComponents()
	m.applyConfig(cfg)
	if cfg.RestoreSnapshot {
		m.restoreSnapshot()
	}
	m.applyCalendarConfig(cfg)
	m.Grid.Attach()
	m.Grid.Focus()
	return m
}

func (m *Model) initBubbleComponents() {
	m.commandInput = textinput.New()
	m.commandInput.Prompt = ""
	m.commandInput.Placeholder = "days 30 | offset 3 | min 2 | max 20 | select 5 | month next | history"
	m.commandInput.CharLimit = 64
	m.helpModel = help.New()
	m.helpModel.ShowAll = true
}

// applyConfig writes the configured properties in an order that keeps the
// focus reset of the later writes meaningful.
func (m *Model) applyConfig(cfg RuntimeConfig) {
	m.Grid.SetDayCount(cfg.DayCount)
	m.Grid.SetGridOffset(cfg.GridOffset)
	m.Grid.SetMinEnabledIndex(cfg.MinEnabledIndex)
	m.Grid.SetMaxEnabledIndex(cfg.MaxEnabledIndex)
	m.Grid.SetSelectedDayIndex(cfg.SelectedDayIndex)
}

func (m *Model) applyCalendarConfig(cfg RuntimeConfig) {
	ws, err := model.ParseWeekStart(cfg.WeekStart)
	if err != nil {
		m.logger.Warn("week start", "err", err)
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		ws = model.WeekStartSunday
	}
	m.WeekStart = ws
	if cfg.Month == "" {
		return
	}
	mo, err := model.ParseMonth(cfg.Month)
	if err != nil {
		m.logger.Warn("month", "err", err)
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	m.showMonth(mo)
}

// showMonth maps a calendar month onto dayCount and gridOffset and reports
// whether either property changed.
func (m *Model) showMonth(mo model.Month) bool {
	m.Month = mo
	days := m.Grid.SetDayCount(mo.Days())
	offset := m.Grid.SetGridOffset(mo.GridOffset(m.WeekStart))
	return days.NeedsRender() || offset.NeedsRender()
}
