package update

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/daygrid/internal/recorder"
	"github.com/sandeepkv93/daygrid/internal/storage"
)

func (m *Model) restoreSnapshot() {
	if m.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	snap, err := m.store.GetSnapshot(ctx, storage.DefaultSnapshot)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			m.logger.Error("restore snapshot", "err", err)
			m.Status = StatusBar{Text: fmt.Sprintf("restore failed: %v", err), IsError: true}
		}
		return
	}
	m.applyConfig(RuntimeConfig{
		DayCount:         snap.DayCount,
		GridOffset:       snap.GridOffset,
		MinEnabledIndex:  snap.MinEnabledIndex,
		MaxEnabledIndex:  snap.MaxEnabledIndex,
		SelectedDayIndex: snap.SelectedDay,
	})
	m.logger.Info("restored snapshot", "name", snap.Name, "days", snap.DayCount)
	m.Status = StatusBar{Text: "restored saved grid"}
}

func (m Model) snapshot() storage.GridSnapshot {
	s := m.Grid.State()
	return storage.GridSnapshot{
		Name:            storage.DefaultSnapshot,
		DayCount:        s.DayCount(),
		GridOffset:      s.GridOffset(),
		MinEnabledIndex: s.MinEnabledIndex(),
		MaxEnabledIndex: s.MaxEnabledIndex(),
		SelectedDay:     s.SelectedDayIndex(),
	}
}

func (m Model) saveSnapshotCmd() tea.Cmd {
	if m.store == nil {
		return nil
	}
	store := m.store
	snap := m.snapshot()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		if err := store.SaveSnapshot(ctx, snap); err != nil {
			return AppErrorMsg{Err: fmt.Errorf("save snapshot: %w", err)}
		}
		return snapshotSavedMsg{}
	}
}

func (m Model) loadHistoryCmd(limit int) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		items, err := store.ListSelections(ctx, storage.SelectionListFilter{Limit: limit})
		if err != nil {
			return AppErrorMsg{Err: fmt.Errorf("load history: %w", err)}
		}
		return HistoryLoadedMsg{Items: items}
	}
}

func (m *Model) submitSelection(day int) {
	if m.Recorder == nil {
		return
	}
	err := m.Recorder.Submit(recorder.Event{Day: day, Source: m.lastInput})
	if err != nil {
		m.logger.Warn("submit selection", "day", day, "err", err)
		m.notify("Recorder", fmt.Sprintf("day %d not recorded: %v", day, err), "warn")
	}
}

func waitForRecordCmd(ch <-chan recorder.Result) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		res, ok := <-ch
		if !ok {
			return nil
		}
		return RecordResultMsg{Result: res}
	}
}
