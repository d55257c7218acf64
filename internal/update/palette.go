package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/duotimer/internal/commands"
	"github.com/sandeepkv93/duotimer/internal/model"
)

func (m *Model) openPalette() {
	m.Palette.Active = true
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Focus()
	m.Status = StatusBar{Text: "command palette active"}
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m *Model) handlePaletteKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
		return nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return nil
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
		return cmd
	}
}

// executePaletteCommand runs the palette input against the focused pane.
func (m *Model) executePaletteCommand() tea.Cmd {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()
	m.Status = StatusBar{}

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return nil
	}
	if len(m.Panes) == 0 {
		m.Status = StatusBar{Text: "no timers configured", IsError: true}
		return nil
	}

	i := m.Focused
	var out tea.Cmd
	noChange := model.Transition{Kind: model.TransitionNone}
	res, err := commands.Execute(cmd, commands.Handlers{
		Title: func(a commands.TitleArgs) (commands.Result, error) {
			next := m.Panes[i].Timer.Rename(a.Title)
			out = m.apply(i, next, noChange)
			return commands.Result{Message: fmt.Sprintf("title set: %s", next.DisplayTitle())}, nil
		},
		Set: func(a commands.SetArgs) (commands.Result, error) {
			if err := m.setDuration(i, a.Mode, a.Minutes); err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			return commands.Result{Message: fmt.Sprintf("%s duration %d min", a.Mode.Label(), a.Minutes)}, nil
		},
		Mode: func(a commands.ModeArgs) (commands.Result, error) {
			out = m.switchMode(i, a.Mode)
			return commands.Result{Message: fmt.Sprintf("switched to %s", a.Mode.Label())}, nil
		},
		Start: func() (commands.Result, error) {
			out = m.apply(i, m.Panes[i].Timer.Start(), noChange)
			return commands.Result{Message: fmt.Sprintf("%s started", m.Panes[i].Timer.DisplayTitle())}, nil
		},
		Pause: func() (commands.Result, error) {
			out = m.apply(i, m.Panes[i].Timer.Pause(), noChange)
			return commands.Result{Message: fmt.Sprintf("%s paused", m.Panes[i].Timer.DisplayTitle())}, nil
		},
		Reset: func() (commands.Result, error) {
			out = m.apply(i, m.Panes[i].Timer.Reset(), noChange)
			return commands.Result{Message: fmt.Sprintf("%s reset", m.Panes[i].Timer.DisplayTitle())}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return out
	}
	if !m.Status.IsError {
		m.Status = StatusBar{Text: res.Message}
	}
	return out
}
