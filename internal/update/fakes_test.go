package update

import (
	"context"
	"sort"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/duotimer/internal/storage"
	"github.com/sandeepkv93/duotimer/internal/ticker"
)

type fakeTicker struct {
	ch        chan ticker.Tick
	seq       uint64
	active    map[string]uint64
	starts    []string
	stops     []string
	failStart error
}

func newFakeTicker() *fakeTicker {
	return &fakeTicker{active: make(map[string]uint64)}
}

func (f *fakeTicker) Start(key string) (uint64, error) {
	if f.failStart != nil {
		return 0, f.failStart
	}
	f.seq++
	f.active[key] = f.seq
	f.starts = append(f.starts, key)
	return f.seq, nil
}

func (f *fakeTicker) Stop(key string) {
	delete(f.active, key)
	f.stops = append(f.stops, key)
}

// C returns a nil channel unless the test installs one, so tick re-arm
// commands stay out of the way.
func (f *fakeTicker) C() <-chan ticker.Tick {
	if f.ch == nil {
		return nil
	}
	return f.ch
}

type memRepo struct {
	mu          sync.Mutex
	snapshots   map[string]storage.Snapshot
	completions []storage.Completion
	putErr      error
	puts        int
}

func newMemRepo() *memRepo {
	return &memRepo{snapshots: make(map[string]storage.Snapshot)}
}

func (r *memRepo) GetSnapshot(_ context.Context, key string) (storage.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.snapshots[key]
	if !ok {
		return storage.Snapshot{}, storage.ErrNotFound
	}
	return s, nil
}

func (r *memRepo) PutSnapshot(_ context.Context, in storage.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.putErr != nil {
		return r.putErr
	}
	r.puts++
	in.Payload = append([]byte(nil), in.Payload...)
	r.snapshots[in.Key] = in
	return nil
}

func (r *memRepo) DeleteSnapshot(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.snapshots[key]; !ok {
		return storage.ErrNotFound
	}
	delete(r.snapshots, key)
	return nil
}

func (r *memRepo) ListSnapshots(_ context.Context, _ storage.SnapshotListFilter) ([]storage.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]storage.Snapshot, 0, len(r.snapshots))
	for _, s := range r.snapshots {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (r *memRepo) CreateCompletion(_ context.Context, in storage.Completion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completions = append(r.completions, in)
	return nil
}

func (r *memRepo) ListCompletions(_ context.Context, filter storage.CompletionListFilter) ([]storage.Completion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]storage.Completion, 0)
	for i := len(r.completions) - 1; i >= 0; i-- {
		c := r.completions[i]
		if filter.TimerKey != "" && c.TimerKey != filter.TimerKey {
			continue
		}
		out = append(out, c)
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *memRepo) CountCompletions(_ context.Context, filter storage.CompletionListFilter) (map[string]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]int)
	for _, c := range r.completions {
		if filter.TimerKey != "" && c.TimerKey != filter.TimerKey {
			continue
		}
		out[c.Mode]++
	}
	return out, nil
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(t interface{ Helper() }, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		updated, _ := m.Update(keyMsg(k))
		m = updated.(Model)
	}
	return m
}
