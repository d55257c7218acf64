package update

import (
	"errors"
	"fmt"

	"github.com/rs/xid"
	"github.com/sandeepkv93/duotimer/internal/model"
	"github.com/sandeepkv93/duotimer/internal/storage"
)

// loadTimer restores the slot for key. Missing or unreadable slots yield defaults.
func (m *Model) loadTimer(key string, defaults model.Timer) model.Timer {
	if m.repo == nil {
		return defaults
	}
	ctx, cancel := m.storeContext()
	defer cancel()

	snap, err := m.repo.GetSnapshot(ctx, key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			m.logger.Warn("load timer snapshot failed", "key", key, "err", err)
		}
		return defaults
	}
	return model.DecodeSnapshotWithDefaults(snap.Payload, defaults)
}

func (m *Model) persistTimer(i int) error {
	if m.repo == nil {
		return nil
	}
	pane := m.Panes[i]
	payload, err := model.EncodeSnapshot(pane.Timer)
	if err != nil {
		return fmt.Errorf("encode %s: %w", pane.Key, err)
	}
	ctx, cancel := m.storeContext()
	defer cancel()
	if err := m.repo.PutSnapshot(ctx, storage.Snapshot{Key: pane.Key, Payload: payload, UpdatedAt: m.now()}); err != nil {
		return fmt.Errorf("save %s: %w", pane.Key, err)
	}
	return nil
}

// recordCompletion appends to the history table. Failures never touch timer state.
func (m *Model) recordCompletion(i int, tr model.Transition, durationSec int) {
	if m.repo == nil {
		return
	}
	ctx, cancel := m.storeContext()
	defer cancel()
	err := m.repo.CreateCompletion(ctx, storage.Completion{
		ID:          xid.New().String(),
		TimerKey:    m.Panes[i].Key,
		Mode:        string(tr.From),
		DurationSec: durationSec,
		CompletedAt: m.now(),
	})
	if err != nil {
		m.logger.Warn("record completion failed", "key", m.Panes[i].Key, "mode", tr.From, "err", err)
	}
}

func (m *Model) loadHistory(key string) error {
	m.history = nil
	m.historyTotals = nil
	if m.repo == nil {
		return nil
	}
	ctx, cancel := m.storeContext()
	defer cancel()

	items, err := m.repo.ListCompletions(ctx, storage.CompletionListFilter{TimerKey: key, Limit: 20})
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	totals, err := m.repo.CountCompletions(ctx, storage.CompletionListFilter{TimerKey: key})
	if err != nil {
		return fmt.Errorf("count history: %w", err)
	}
	m.history = items
	m.historyTotals = totals
	return nil
}
