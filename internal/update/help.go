package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/duotimer/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

const paletteHelp = `**Commands** (open with /)

- ` + "`title <text>`" + ` rename the focused timer
- ` + "`set <mode> <minutes>`" + ` change a duration
- ` + "`mode focus|short|long`" + ` switch mode
- ` + "`start`" + `, ` + "`pause`" + `, ` + "`reset`"

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.bindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Bindings: plain,
		HelpView: views.RenderMarkdown(paletteHelp) + "\n" + m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) bindings() []KeyBinding {
	return []KeyBinding{
		{Key: "tab/shift+tab", Action: "switch timer"},
		{Key: m.Keys.Focus + "/" + m.Keys.ShortBreak + "/" + m.Keys.LongBreak, Action: "focus / short break / long break"},
		{Key: "space", Action: "start/pause"},
		{Key: m.Keys.Reset, Action: "reset current mode"},
		{Key: m.Keys.EditTitle, Action: "edit title"},
		{Key: "F/S/L", Action: "edit focus/short/long minutes"},
		{Key: "+/-", Action: "adjust current duration"},
		{Key: m.Keys.Palette, Action: "open command palette"},
		{Key: m.Keys.History, Action: "toggle history"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.bindings()))
	for _, kb := range m.bindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
