package update

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/duotimer/internal/alert"
	"github.com/sandeepkv93/duotimer/internal/model"
	"github.com/sandeepkv93/duotimer/internal/ticker"
	"github.com/sandeepkv93/duotimer/internal/views"
)

func (m *Model) initBubbleComponents() {
	m.titleInput = textinput.New()
	m.titleInput.Prompt = "> "
	m.titleInput.CharLimit = 64
	m.titleInput.Width = views.PaneWidth - 10

	m.durationInput = textinput.New()
	m.durationInput.CharLimit = 4
	m.durationInput.Width = 6

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.timerProgress = progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	m.timerProgress.Width = views.PaneWidth - 8

	cols := []table.Column{
		{Title: "Completed", Width: 19},
		{Title: "Mode", Width: 12},
		{Title: "Min", Width: 5},
	}
	m.historyTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithHeight(8))

	m.helpModel = help.New()
}

func (m *Model) syncBubbleData() {
	if m.Focused >= len(m.Panes) {
		m.Focused = 0
	}
	rows := make([]table.Row, 0, len(m.history))
	for _, c := range m.history {
		rows = append(rows, table.Row{
			c.CompletedAt.Local().Format("2006-01-02 15:04:05"),
			modeLabel(c.Mode),
			fmt.Sprintf("%d", c.DurationSec/60),
		})
	}
	m.historyTable.SetRows(rows)
	m.commandInput.SetValue(m.Palette.Input)
}

func (m Model) renderTimerPanes() []string {
	out := make([]string, 0, len(m.Panes))
	for i, pane := range m.Panes {
		out = append(out, m.renderTimerPane(i, pane))
	}
	return out
}

func (m Model) renderTimerPane(i int, pane TimerPane) string {
	t := pane.Timer
	data := views.TimerPanelData{
		Key:          pane.Key,
		Title:        t.DisplayTitle(),
		Clock:        t.Clock(),
		ProgressView: m.timerProgress.ViewAs(t.Progress()),
		ProgressPct:  int(math.Round(t.Progress() * 100)),
		Running:      t.Running,
		Sessions:     t.Sessions,
	}
	for _, mode := range model.Modes {
		data.Modes = append(data.Modes, views.ModeButtonData{Label: mode.Label(), Active: mode == t.Mode})
		data.Completed = append(data.Completed, views.CountData{Label: mode.Label(), Value: t.Completed.Get(mode)})
		data.Durations = append(data.Durations, views.CountData{Label: mode.Label(), Value: t.Durations.Get(mode) / 60})
	}
	if i == m.Focused {
		switch m.Editor.Kind {
		case EditorTitle:
			data.TitleEditor = m.titleInput.View()
		case EditorDuration:
			data.DurationEdit = m.durationInput.View()
		}
	}
	return views.RenderTimerPanel(data)
}

func (m Model) renderHistoryView() string {
	key := ""
	if len(m.Panes) > 0 {
		key = m.Panes[m.Focused].Key
	}
	totals := make([]views.CountData, 0, len(model.Modes))
	for _, mode := range model.Modes {
		totals = append(totals, views.CountData{Label: mode.Label(), Value: m.historyTotals[string(mode)]})
	}
	return views.RenderHistoryPanel(views.HistoryPanelData{
		TimerKey:  key,
		TableView: m.historyTable.View(),
		Totals:    totals,
		Empty:     len(m.history) == 0,
	})
}

func (m Model) renderCommandPalette() string {
	if !m.Palette.Active {
		return ""
	}
	return views.RenderCommandPalette(true, m.commandInput.View())
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Body)
}

// notify records an in-app notification and, when enabled, returns a command
// that delivers it to the desktop off the update loop.
func (m *Model) notify(title, body, level string) tea.Cmd {
	if strings.TrimSpace(body) == "" {
		return nil
	}
	n := alert.Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    m.now().UTC(),
	}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > 40 {
		m.Notifications = m.Notifications[len(m.Notifications)-40:]
	}
	if !m.DesktopEnabled || m.notifier == nil {
		return nil
	}
	notifier := m.notifier
	return func() tea.Msg {
		return DesktopSentMsg{Err: notifier.Send(n)}
	}
}

func modeLabel(raw string) string {
	return model.Mode(raw).Label()
}

func waitForTickCmd(ch <-chan ticker.Tick) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		tk, ok := <-ch
		if !ok {
			return nil
		}
		return TickMsg{Tick: tk}
	}
}
