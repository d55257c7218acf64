package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/duotimer/internal/ticker"
	"github.com/sandeepkv93/duotimer/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.ticker == nil {
		return nil
	}
	return waitForTickCmd(m.ticker.C())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	m.syncBubbleData()
	return m, cmd
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case TickMsg:
		cmd := m.onTick(m.paneIndex(typed.Tick.Key), typed.Tick.Seq)
		return tea.Batch(cmd, waitForTickCmd(m.tickChan()))
	case DesktopSentMsg:
		if typed.Err != nil {
			m.logger.Warn("desktop notification failed", "err", typed.Err)
		}
		return nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			return m.notify("Error", typed.Err.Error(), "error")
		}
		return nil
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		m.Quitting = true
		return tea.Quit
	}
	if m.Palette.Active {
		return m.handlePaletteKey(msg)
	}
	if m.Editor.Kind != EditorNone {
		return m.handleEditorKey(msg)
	}

	switch msg.String() {
	case m.Keys.Quit:
		m.Quitting = true
		return tea.Quit
	case m.Keys.Palette:
		m.openPalette()
		return nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		if m.HelpVisible {
			m.Status = StatusBar{Text: "help shown"}
		} else {
			m.Status = StatusBar{Text: "help hidden"}
		}
		return nil
	case m.Keys.History:
		m.HistoryVisible = !m.HistoryVisible
		if m.HistoryVisible {
			m.refreshHistory()
		}
		return nil
	case m.Keys.NextPane:
		m.cycleFocus(1)
		return nil
	case m.Keys.PrevPane:
		m.cycleFocus(-1)
		return nil
	}
	return m.handlePaneKey(msg)
}

func (m *Model) cycleFocus(delta int) {
	if len(m.Panes) == 0 {
		return
	}
	m.Focused = (m.Focused + delta + len(m.Panes)) % len(m.Panes)
	if m.HistoryVisible {
		m.refreshHistory()
	}
}

func (m *Model) refreshHistory() {
	if len(m.Panes) == 0 {
		return
	}
	if err := m.loadHistory(m.Panes[m.Focused].Key); err != nil {
		m.logger.Warn("history unavailable", "err", err)
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	}
}

func (m Model) tickChan() <-chan ticker.Tick {
	if m.ticker == nil {
		return nil
	}
	return m.ticker.C()
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

	overlays := make([]string, 0, 2)
	if m.HistoryVisible {
		overlays = append(overlays, m.renderHistoryView())
	}
	if m.HelpVisible {
		overlays = append(overlays, m.renderHelpView())
	}

	focusedKey := ""
	if len(m.Panes) > 0 {
		focusedKey = m.Panes[m.Focused].Key
	}
	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("duotimer | timers: %d | focused: %s", len(m.Panes), focusedKey),
		Panes:        m.renderTimerPanes(),
		FocusedPane:  m.Focused,
		Overlay:      strings.Join(overlays, "\n\n"),
		StatusLine:   status,
		Palette:      m.renderCommandPalette(),
		Notification: m.renderNotificationsView(),
		Footer: fmt.Sprintf("keys: tab switch | %s/%s/%s mode | space start/pause | %s reset | %s title | / cmd | %s history | %s help | %s quit",
			m.Keys.Focus, m.Keys.ShortBreak, m.Keys.LongBreak, m.Keys.Reset, m.Keys.EditTitle, m.Keys.History, m.Keys.Help, m.Keys.Quit),
	})
}
