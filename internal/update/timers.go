package update

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/duotimer/internal/alert"
	"github.com/sandeepkv93/duotimer/internal/model"
)

// apply installs next as the state of pane i and runs every side effect of the
// change: tick handle sync, cues, history and persistence.
func (m *Model) apply(i int, next model.Timer, tr model.Transition) tea.Cmd {
	prev := m.Panes[i].Timer
	m.Panes[i].Timer = next

	switch {
	case !prev.Running && next.Running:
		m.startTicking(i)
	case prev.Running && !next.Running:
		m.stopTicking(i)
	}

	var cmd tea.Cmd
	if tr.Changed() {
		cmd = m.onTransition(i, prev, tr)
	}
	if err := m.persistTimer(i); err != nil {
		m.logger.Error("persist timer failed", "key", m.Panes[i].Key, "err", err)
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	}
	return cmd
}

// startTicking replaces any live handle for pane i with a fresh one.
func (m *Model) startTicking(i int) {
	if m.ticker == nil {
		return
	}
	seq, err := m.ticker.Start(m.Panes[i].Key)
	if err != nil {
		m.logger.Error("start ticker failed", "key", m.Panes[i].Key, "err", err)
		m.Panes[i].Timer = m.Panes[i].Timer.Pause()
		m.Panes[i].seq = 0
		m.Status = StatusBar{Text: fmt.Sprintf("start failed: %v", err), IsError: true}
		return
	}
	m.Panes[i].seq = seq
}

func (m *Model) stopTicking(i int) {
	m.Panes[i].seq = 0
	if m.ticker == nil {
		return
	}
	m.ticker.Stop(m.Panes[i].Key)
}

func (m *Model) onTransition(i int, prev model.Timer, tr model.Transition) tea.Cmd {
	pane := m.Panes[i]
	if cue, ok := alert.CueFor(tr); ok {
		m.player.Play(cue)
	}
	m.logger.Info("timer transition", "key", pane.Key, "kind", tr.Kind, "from", tr.From, "to", tr.To, "sessions", pane.Timer.Sessions)

	if tr.Kind != model.TransitionComplete {
		m.Status = StatusBar{Text: fmt.Sprintf("%s: switched to %s", pane.Timer.DisplayTitle(), tr.To.Label())}
		return nil
	}
	m.recordCompletion(i, tr, prev.Durations.Get(tr.From))
	body := fmt.Sprintf("%s: %s complete, %s next", pane.Timer.DisplayTitle(), tr.From.Label(), tr.To.Label())
	m.Status = StatusBar{Text: body}
	return m.notify("Session complete", body, "info")
}

// onTick advances the pane the beat belongs to. Beats from a replaced or
// cancelled handle are dropped.
func (m *Model) onTick(i int, seq uint64) tea.Cmd {
	if i < 0 || i >= len(m.Panes) {
		return nil
	}
	pane := m.Panes[i]
	if seq == 0 || seq != pane.seq || !pane.Timer.Running {
		return nil
	}
	next, tr := pane.Timer.Tick()
	return m.apply(i, next, tr)
}

func (m *Model) switchMode(i int, mode model.Mode) tea.Cmd {
	next, tr, err := m.Panes[i].Timer.SwitchMode(mode)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return nil
	}
	return m.apply(i, next, tr)
}

func (m *Model) setDuration(i int, mode model.Mode, minutes int) error {
	next, err := m.Panes[i].Timer.SetDurationMinutes(mode, minutes)
	if err != nil {
		return err
	}
	m.apply(i, next, model.Transition{Kind: model.TransitionNone})
	return nil
}

func (m *Model) handlePaneKey(msg tea.KeyMsg) tea.Cmd {
	if len(m.Panes) == 0 {
		return nil
	}
	i := m.Focused
	t := m.Panes[i].Timer

	switch keyStr := msg.String(); keyStr {
	case m.Keys.Focus:
		return m.switchMode(i, model.ModeFocus)
	case m.Keys.ShortBreak:
		return m.switchMode(i, model.ModeShortBreak)
	case m.Keys.LongBreak:
		return m.switchMode(i, model.ModeLongBreak)
	case m.Keys.Toggle:
		next := t.Toggle()
		m.Status = StatusBar{}
		cmd := m.apply(i, next, model.Transition{Kind: model.TransitionNone})
		if !m.Status.IsError {
			m.Status = StatusBar{Text: fmt.Sprintf("%s %s", next.DisplayTitle(), runLabel(m.Panes[i].Timer.Running))}
		}
		return cmd
	case m.Keys.Reset:
		m.Status = StatusBar{}
		cmd := m.apply(i, t.Reset(), model.Transition{Kind: model.TransitionNone})
		if !m.Status.IsError {
			m.Status = StatusBar{Text: fmt.Sprintf("%s reset", t.DisplayTitle())}
		}
		return cmd
	case m.Keys.EditTitle:
		m.openTitleEditor()
	case "F", "S", "L":
		mode, _ := model.ParseMode(strings.ToLower(keyStr))
		m.openDurationEditor(mode)
	case "+", "=":
		m.adjustDuration(i, 1)
	case "-", "_":
		m.adjustDuration(i, -1)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		n, _ := strconv.Atoi(keyStr)
		if n <= len(m.Panes) {
			m.Focused = n - 1
		}
	}
	return nil
}

func (m *Model) adjustDuration(i int, delta int) {
	t := m.Panes[i].Timer
	minutes := t.Durations.Get(t.Mode)/60 + delta
	m.Status = StatusBar{}
	if err := m.setDuration(i, t.Mode, minutes); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	if !m.Status.IsError {
		m.Status = StatusBar{Text: fmt.Sprintf("%s duration %d min", t.Mode.Label(), minutes)}
	}
}

func runLabel(running bool) string {
	if running {
		return "started"
	}
	return "paused"
}
