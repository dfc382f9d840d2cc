package update

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/daygrid/internal/calendar"
	"github.com/sandeepkv93/daygrid/internal/recorder"
	"github.com/sandeepkv93/daygrid/internal/storage"
)

type fakeNotifier struct {
	sent []Notification
}

func (f *fakeNotifier) Send(n Notification) error {
	f.sent = append(f.sent, n)
	return nil
}

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) WriteAll(text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

type memoryStore struct {
	snap    *storage.GridSnapshot
	saved   []storage.GridSnapshot
	history []storage.Selection
	err     error
}

func (s *memoryStore) SaveSnapshot(_ context.Context, in storage.GridSnapshot) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, in)
	return nil
}

func (s *memoryStore) GetSnapshot(_ context.Context, name string) (storage.GridSnapshot, error) {
	if s.snap == nil || s.snap.Name != name {
		return storage.GridSnapshot{}, storage.ErrNotFound
	}
	return *s.snap, nil
}

func (s *memoryStore) ListSelections(_ context.Context, filter storage.SelectionListFilter) ([]storage.Selection, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := s.history
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func keyPress(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

// step feeds msg to the model and then feeds every message produced by the
// returned command back in, one level deep.
func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, cmd := m.Update(msg)
	next := updated.(Model)
	if cmd == nil {
		return next
	}
	if out := cmd(); out != nil {
		if _, quit := out.(tea.QuitMsg); quit {
			return next
		}
		updated, _ = next.Update(out)
		next = updated.(Model)
	}
	return next
}

func typeCommand(t *testing.T, m Model, input string) Model {
	t.Helper()
	m = step(t, m, runes("/"))
	if !m.Palette.Active {
		t.Fatal("expected palette active")
	}
	m = step(t, m, runes(input))
	return step(t, m, keyPress(tea.KeyEnter))
}

func TestNewModelDefaults(t *testing.T) {
	m := NewModel()
	s := m.Grid.State()
	if s.DayCount() != 31 || s.GridOffset() != 1 || s.MaxEnabledIndex() != 32 || s.SelectedDayIndex() != -1 {
		t.Fatalf("unexpected grid defaults: %+v", s)
	}
	if !m.Grid.Attached() || !m.Grid.Focused() {
		t.Fatal("expected grid attached and focused")
	}
	if idx, ok := m.Grid.FocusedCell(); !ok || idx != 0 {
		t.Fatalf("expected first cell focused, got %d %v", idx, ok)
	}
	if m.Init() != nil {
		t.Fatal("expected nil init without recorder")
	}
}

func TestKeyboardSelectionReflectsAndAnnounces(t *testing.T) {
	notifier := &fakeNotifier{}
	cfg := DefaultRuntimeConfig()
	cfg.DesktopNotifications = true
	m := NewModelWithConfig(cfg, Deps{Notifier: notifier})

	m = step(t, m, keyPress(tea.KeyHome))
	for i := 0; i < 5; i++ {
		m = step(t, m, keyPress(tea.KeyRight))
	}
	m = step(t, m, keyPress(tea.KeyEnter))

	if m.LastSelected != 6 {
		t.Fatalf("expected day 6 selected, got %d", m.LastSelected)
	}
	if m.Grid.State().SelectedDayIndex() != 5 {
		t.Fatalf("expected selection reflected to index 5, got %d", m.Grid.State().SelectedDayIndex())
	}
	if !m.Grid.Cells()[5].Selected() {
		t.Fatal("expected cell 5 marked selected")
	}
	if len(notifier.sent) != 1 || !strings.Contains(notifier.sent[0].Body, "day 6") {
		t.Fatalf("unexpected desktop notifications: %+v", notifier.sent)
	}
	if m.Status.Text != "selected day 6" {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
}

func TestSelectionWithoutReflect(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	cfg.ReflectSelection = false
	m := NewModelWithConfig(cfg, Deps{})

	m = step(t, m, calendar.CellClickMsg{Index: 9})
	if m.LastSelected != 10 {
		t.Fatalf("expected day 10, got %d", m.LastSelected)
	}
	if m.Grid.State().SelectedDayIndex() != -1 {
		t.Fatalf("expected selection untouched, got %d", m.Grid.State().SelectedDayIndex())
	}
}

func TestTabTogglesGridFocus(t *testing.T) {
	m := NewModel()
	m = step(t, m, keyPress(tea.KeyTab))
	if m.Grid.Focused() {
		t.Fatal("expected grid blurred")
	}
	m = step(t, m, keyPress(tea.KeyRight))
	if m.Grid.State().FocusIndex() != 0 {
		t.Fatal("expected blurred grid to ignore arrows")
	}
	m = step(t, m, keyPress(tea.KeyTab))
	if !m.Grid.Focused() {
		t.Fatal("expected grid focused again")
	}
}

func TestPaletteWritesProperties(t *testing.T) {
	store := &memoryStore{}
	m := NewModelWithConfig(DefaultRuntimeConfig(), Deps{Store: store})

	m = typeCommand(t, m, "days 28")
	if m.Grid.State().DayCount() != 28 || len(m.Grid.Cells()) != 28 {
		t.Fatalf("unexpected day count: %d", m.Grid.State().DayCount())
	}
	if m.Status.IsError || m.Status.Text != "day-count set to 28" {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
	if len(store.saved) != 1 || store.saved[0].DayCount != 28 {
		t.Fatalf("expected snapshot saved, got %+v", store.saved)
	}

	m = typeCommand(t, m, "select 10")
	if m.Grid.State().SelectedDayIndex() != 10 || m.Grid.State().FocusIndex() != 10 {
		t.Fatalf("unexpected selection: %+v", m.Grid.State())
	}
	if idx, ok := m.Grid.FocusedCell(); !ok || idx != 10 {
		t.Fatalf("expected focus forwarded to 10 after palette closes, got %d %v", idx, ok)
	}

	m = typeCommand(t, m, "days 28")
	if m.Status.Text != "day-count unchanged" || len(store.saved) != 2 {
		t.Fatalf("expected idempotent write, status=%+v saved=%d", m.Status, len(store.saved))
	}

	m = typeCommand(t, m, "clear")
	if m.Grid.State().SelectedDayIndex() != -1 {
		t.Fatalf("expected selection cleared, got %d", m.Grid.State().SelectedDayIndex())
	}
}

func TestPaletteErrors(t *testing.T) {
	m := NewModel()
	m = typeCommand(t, m, "bogus")
	if !m.Status.IsError || m.Palette.Active {
		t.Fatalf("expected parse error, got %+v", m.Status)
	}

	m = typeCommand(t, m, "history")
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "database") {
		t.Fatalf("expected history to need a store, got %+v", m.Status)
	}

	m = step(t, m, runes("/"))
	m = step(t, m, keyPress(tea.KeyEsc))
	if m.Palette.Active || m.Status.Text != "command palette closed" {
		t.Fatalf("expected palette closed, got %+v", m.Status)
	}
}

func TestPaletteCapturesGridKeys(t *testing.T) {
	m := NewModel()
	m = step(t, m, runes("/"))
	if m.Grid.Focused() {
		t.Fatal("expected grid blurred while palette is open")
	}
	m = step(t, m, keyPress(tea.KeyRight))
	if m.Grid.State().FocusIndex() != 0 {
		t.Fatal("expected palette to swallow arrow keys")
	}
	m = step(t, m, runes("q"))
	if m.Quitting || m.Palette.Input != "q" {
		t.Fatalf("expected q typed into palette, got %+v", m.Palette)
	}
}

func TestHistoryCommandLoadsSelections(t *testing.T) {
	store := &memoryStore{history: []storage.Selection{
		{ID: 2, Day: 14, Source: "mouse"},
		{ID: 1, Day: 3, Source: "keyboard"},
	}}
	m := NewModelWithConfig(DefaultRuntimeConfig(), Deps{Store: store})
	m = typeCommand(t, m, "history 1")
	if !m.HistoryVisible || len(m.History) != 1 || m.History[0].Day != 14 {
		t.Fatalf("unexpected history: %+v", m.History)
	}
	if !strings.Contains(m.View(), "day 14") {
		t.Fatal("expected history rendered")
	}
}

func TestRestoreSnapshot(t *testing.T) {
	store := &memoryStore{snap: &storage.GridSnapshot{
		Name:            storage.DefaultSnapshot,
		DayCount:        30,
		GridOffset:      4,
		MinEnabledIndex: 2,
		MaxEnabledIndex: 20,
		SelectedDay:     7,
	}}
	m := NewModelWithConfig(DefaultRuntimeConfig(), Deps{Store: store})
	s := m.Grid.State()
	if s.DayCount() != 30 || s.GridOffset() != 4 || s.MinEnabledIndex() != 2 || s.MaxEnabledIndex() != 20 || s.SelectedDayIndex() != 7 {
		t.Fatalf("unexpected restored state: %+v", s)
	}

	cfg := DefaultRuntimeConfig()
	cfg.RestoreSnapshot = false
	m = NewModelWithConfig(cfg, Deps{Store: store})
	if m.Grid.State().DayCount() != 31 {
		t.Fatalf("expected config to win without restore, got %d", m.Grid.State().DayCount())
	}
}

func TestSnapshotSaveErrorSurfaces(t *testing.T) {
	store := &memoryStore{err: errors.New("disk full")}
	m := NewModelWithConfig(DefaultRuntimeConfig(), Deps{Store: store})
	m = typeCommand(t, m, "offset 3")
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "disk full") {
		t.Fatalf("expected save error in status, got %+v", m.Status)
	}
	if m.Grid.State().GridOffset() != 3 {
		t.Fatal("expected property write to survive a save error")
	}
}

func TestCopyLastSelected(t *testing.T) {
	clip := &fakeClipboard{}
	m := NewModelWithConfig(DefaultRuntimeConfig(), Deps{Clipboard: clip})

	m = step(t, m, runes("y"))
	if !m.Status.IsError {
		t.Fatal("expected error with nothing selected")
	}

	m = step(t, m, calendar.CellClickMsg{Index: 2})
	m = step(t, m, runes("y"))
	if clip.text != "3" || m.Status.IsError {
		t.Fatalf("expected day 3 copied, got %q %+v", clip.text, m.Status)
	}

	clip.err = errors.New("no display")
	m = step(t, m, runes("y"))
	if !m.Status.IsError {
		t.Fatal("expected clipboard error surfaced")
	}
}

func TestSelectionIsRecorded(t *testing.T) {
	repo, err := storage.OpenSQLite(t.TempDir() + "/host.db")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer repo.Close()
	engine := recorder.NewEngine(4, repo, nil)
	engine.Start()

	m := NewModelWithConfig(DefaultRuntimeConfig(), Deps{Store: repo, Recorder: engine})
	if m.Init() == nil {
		t.Fatal("expected init to wait on recorder results")
	}
	m = step(t, m, keyPress(tea.KeyRight))
	m = step(t, m, keyPress(tea.KeySpace))

	res := <-engine.C()
	if res.Err != nil || res.Event.Day != 2 || res.Event.Source != "keyboard" {
		t.Fatalf("unexpected record result: %+v", res)
	}
	updated, cmd := m.Update(RecordResultMsg{Result: res})
	m = updated.(Model)
	if m.Recorded != 1 || cmd == nil {
		t.Fatalf("expected recorded count and re-armed wait, got %d", m.Recorded)
	}
	engine.Stop()

	got, err := repo.ListSelections(context.Background(), storage.SelectionListFilter{})
	if err != nil || len(got) != 1 || got[0].Day != 2 {
		t.Fatalf("unexpected stored history: %+v err=%v", got, err)
	}
}

func TestMouseSelectionUsesScreenOrigin(t *testing.T) {
	m := NewModel()
	rows := strings.Split(m.View(), "\n")
	if len(rows) < 3 {
		t.Fatalf("unexpected view: %q", m.View())
	}
	x := 2 + calendar.CellWidth*2 + 1
	m = step(t, m, tea.MouseMsg{X: x, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.LastSelected != 3 {
		t.Fatalf("expected day 3 from mouse, got %d", m.LastSelected)
	}
}

func TestUpdateStatusAndError(t *testing.T) {
	m := NewModel()
	m = step(t, m, SetStatusMsg{Text: "ready", IsError: false})
	if m.Status.Text != "ready" || m.Status.IsError {
		t.Fatalf("unexpected status: %+v", m.Status)
	}

	m = step(t, m, AppErrorMsg{Err: errors.New("boom")})
	if m.Status.Text != "boom" || !m.Status.IsError || m.LastError == nil {
		t.Fatalf("unexpected error state: %+v", m.Status)
	}

	m = step(t, m, ClearStatusMsg{})
	if m.Status.Text != "" {
		t.Fatalf("expected cleared status, got %+v", m.Status)
	}
}

func TestUpdateQuitKey(t *testing.T) {
	m := NewModel()
	updated, cmd := m.Update(runes("q"))
	next := updated.(Model)
	if !next.Quitting || cmd == nil {
		t.Fatal("expected quit")
	}
	if next.Grid.Attached() || next.Grid.Focused() {
		t.Fatal("expected quit to detach the grid")
	}
	next = step(t, next, keyPress(tea.KeyRight))
	if next.Grid.State().FocusIndex() != 0 {
		t.Fatalf("expected detached grid to ignore keys, got focus %d", next.Grid.State().FocusIndex())
	}
}

func TestPaletteEditsAtCursor(t *testing.T) {
	m := NewModel()
	m = step(t, m, runes("/"))
	m = step(t, m, runes("days 3"))
	m = step(t, m, keyPress(tea.KeyLeft))
	m = step(t, m, runes("1"))
	if m.Palette.Input != "days 13" {
		t.Fatalf("expected insert at cursor, got %q", m.Palette.Input)
	}
	m = step(t, m, keyPress(tea.KeyEnter))
	if m.Grid.State().DayCount() != 13 {
		t.Fatalf("unexpected day count: %d", m.Grid.State().DayCount())
	}
}

func TestViewContainsCoreState(t *testing.T) {
	m := NewModel()
	m = step(t, m, runes("?"))
	out := m.View()
	for _, want := range []string{"daygrid", "day-count: 31", "selected-day-index: none", "help:", "31"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in view", want)
		}
	}
}

func TestVimKeysFromConfig(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	cfg.VimKeys = true
	m := NewModelWithConfig(cfg, Deps{})
	m = step(t, m, runes("l"))
	m = step(t, m, runes("j"))
	if m.Grid.State().FocusIndex() != 8 {
		t.Fatalf("expected focus 8, got %d", m.Grid.State().FocusIndex())
	}
}

func TestMonthCommandSetsDaysAndOffset(t *testing.T) {
	store := &memoryStore{}
	m := NewModelWithConfig(DefaultRuntimeConfig(), Deps{Store: store})

	m = typeCommand(t, m, "month next")
	if !m.Status.IsError {
		t.Fatal("expected relative month to need a shown month")
	}

	m = typeCommand(t, m, "month 2026-10")
	s := m.Grid.State()
	if s.DayCount() != 31 || s.GridOffset() != 5 {
		t.Fatalf("unexpected october layout: days=%d offset=%d", s.DayCount(), s.GridOffset())
	}
	if !strings.Contains(m.View(), "October 2026") {
		t.Fatal("expected month title in header")
	}

	m = typeCommand(t, m, "month next")
	s = m.Grid.State()
	if s.DayCount() != 30 || s.GridOffset() != 1 {
		t.Fatalf("unexpected november layout: days=%d offset=%d", s.DayCount(), s.GridOffset())
	}
	if len(store.saved) != 2 {
		t.Fatalf("expected two snapshots, got %d", len(store.saved))
	}
}

func TestMonthFromConfigWithMondayWeeks(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	cfg.Month = "2026-02"
	cfg.WeekStart = "monday"
	m := NewModelWithConfig(cfg, Deps{})
	s := m.Grid.State()
	if s.DayCount() != 28 || s.GridOffset() != 7 {
		t.Fatalf("unexpected february layout: days=%d offset=%d", s.DayCount(), s.GridOffset())
	}

	cfg.WeekStart = "friday"
	m = NewModelWithConfig(cfg, Deps{})
	if !m.Status.IsError || m.Grid.State().GridOffset() != 1 {
		t.Fatalf("expected sunday fallback with error, got %+v offset=%d", m.Status, m.Grid.State().GridOffset())
	}
}
