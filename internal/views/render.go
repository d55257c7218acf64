package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Header       string
	Panes        []string
	FocusedPane  int
	Overlay      string
	StatusLine   string
	Palette      string
	Footer       string
	Notification string
}

var (
	headerStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	focusedPanelStyle = panelStyle.BorderForeground(lipgloss.Color("12"))
	footerStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	activeModeStyle   = lipgloss.NewStyle().Bold(true).Reverse(true).Padding(0, 1)
	modeStyle         = lipgloss.NewStyle().Padding(0, 1)
	clockStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
)

// PaneWidth is the inner width of one timer panel.
const PaneWidth = 40

func RenderApp(data AppData) string {
	panes := make([]string, 0, len(data.Panes))
	for i, body := range data.Panes {
		style := panelStyle
		if i == data.FocusedPane {
			style = focusedPanelStyle
		}
		panes = append(panes, style.Width(PaneWidth).Render(body))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, panes...)

	status := statusStyle.Render(data.StatusLine)
	if strings.Contains(strings.ToLower(data.StatusLine), "error") {
		status = errorStyle.Render(data.StatusLine)
	}

	lines := []string{
		headerStyle.Render(data.Header),
		row,
	}
	if data.Overlay != "" {
		lines = append(lines, panelStyle.Render(data.Overlay))
	}
	lines = append(lines, status)
	if data.Palette != "" {
		lines = append(lines, data.Palette)
	}
	if data.Notification != "" {
		lines = append(lines, panelStyle.Render(data.Notification))
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
