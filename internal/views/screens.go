package views

import (
	"fmt"
	"strings"
)

type ModeButtonData struct {
	Label  string
	Active bool
}

type TimerPanelData struct {
	Key          string
	Title        string
	TitleEditor  string
	Modes        []ModeButtonData
	Clock        string
	ProgressView string
	ProgressPct  int
	Running      bool
	Sessions     int
	Completed    []CountData
	Durations    []CountData
	DurationEdit string
}

// CountData is one labelled number, used for both the scoreboard and the duration list.
type CountData struct {
	Label string
	Value int
}

type HelpPanelData struct {
	Bindings []string
	HelpView string
}

type HistoryPanelData struct {
	TimerKey  string
	TableView string
	Totals    []CountData
	Empty     bool
}

func RenderTimerPanel(data TimerPanelData) string {
	var b strings.Builder
	b.WriteString(renderCounts(data.Completed) + "\n")
	b.WriteString(fmt.Sprintf("sessions: %d\n\n", data.Sessions))

	if data.TitleEditor != "" {
		b.WriteString("title: " + data.TitleEditor + "\n")
	} else {
		b.WriteString(headerStyle.Render(data.Title) + "\n")
	}

	buttons := make([]string, 0, len(data.Modes))
	for _, m := range data.Modes {
		if m.Active {
			buttons = append(buttons, activeModeStyle.Render(m.Label))
			continue
		}
		buttons = append(buttons, modeStyle.Render(m.Label))
	}
	b.WriteString(strings.Join(buttons, "") + "\n\n")

	b.WriteString(clockStyle.Render(data.Clock) + "\n")
	b.WriteString(fmt.Sprintf("%s %d%%\n", data.ProgressView, data.ProgressPct))
	action := "Start"
	if data.Running {
		action = "Pause"
	}
	b.WriteString(fmt.Sprintf("[space] %s\n\n", action))

	b.WriteString("durations (min):\n")
	for _, d := range data.Durations {
		b.WriteString(fmt.Sprintf("  %-12s %d\n", d.Label, d.Value))
	}
	if data.DurationEdit != "" {
		b.WriteString("edit: " + data.DurationEdit + "\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s\n%s",
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func RenderHistoryPanel(data HistoryPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("history: %s\n", data.TimerKey))
	if data.Empty {
		b.WriteString("(no completed sessions yet)")
		return b.String()
	}
	b.WriteString(data.TableView + "\n")
	b.WriteString("totals: " + renderCounts(data.Totals))
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: %s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func renderCounts(items []CountData) string {
	parts := make([]string, 0, len(items))
	for _, c := range items {
		parts = append(parts, fmt.Sprintf("%s %d", c.Label, c.Value))
	}
	return strings.Join(parts, " | ")
}
