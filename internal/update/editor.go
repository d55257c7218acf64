package update

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/duotimer/internal/model"
)

func (m *Model) openTitleEditor() {
	if len(m.Panes) == 0 {
		return
	}
	m.Editor = EditorState{Kind: EditorTitle}
	m.titleInput.SetValue(m.Panes[m.Focused].Timer.Title)
	m.titleInput.CursorEnd()
	m.titleInput.Focus()
	m.Status = StatusBar{Text: "editing title (enter to save, esc to cancel)"}
}

func (m *Model) openDurationEditor(mode model.Mode) {
	if len(m.Panes) == 0 || !mode.IsValid() {
		return
	}
	m.Editor = EditorState{Kind: EditorDuration, Mode: mode}
	m.durationInput.Prompt = fmt.Sprintf("%s min> ", mode.Label())
	m.durationInput.SetValue(strconv.Itoa(m.Panes[m.Focused].Timer.Durations.Get(mode) / 60))
	m.durationInput.CursorEnd()
	m.durationInput.Focus()
	m.Status = StatusBar{Text: fmt.Sprintf("editing %s duration", mode.Label())}
}

func (m *Model) closeEditor() {
	m.Editor = EditorState{}
	m.titleInput.Blur()
	m.durationInput.Blur()
}

func (m *Model) handleEditorKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.closeEditor()
		m.Status = StatusBar{Text: "edit cancelled"}
		return nil
	case "enter":
		return m.commitEditor()
	}

	var cmd tea.Cmd
	switch m.Editor.Kind {
	case EditorTitle:
		m.titleInput, cmd = m.titleInput.Update(msg)
	case EditorDuration:
		m.durationInput, cmd = m.durationInput.Update(msg)
	}
	return cmd
}

func (m *Model) commitEditor() tea.Cmd {
	i := m.Focused
	editor := m.Editor
	m.closeEditor()

	switch editor.Kind {
	case EditorTitle:
		next := m.Panes[i].Timer.Rename(m.titleInput.Value())
		m.Status = StatusBar{Text: fmt.Sprintf("title set: %s", next.DisplayTitle())}
		return m.apply(i, next, model.Transition{Kind: model.TransitionNone})
	case EditorDuration:
		raw := strings.TrimSpace(m.durationInput.Value())
		minutes, err := strconv.Atoi(raw)
		if err != nil {
			m.Status = StatusBar{Text: fmt.Sprintf("invalid minutes: %q", raw), IsError: true}
			return nil
		}
		m.Status = StatusBar{Text: fmt.Sprintf("%s duration %d min", editor.Mode.Label(), minutes)}
		if err := m.setDuration(i, editor.Mode, minutes); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
		}
	}
	return nil
}
