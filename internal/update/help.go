package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/ConnorXwolf/EnergyTracker/internal/views"
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

const helpGuide = `## Daily flow

1. Tick off exercises and tasks on the **Checklist**.
2. Record physical and mental energy on the **Points** screen; the score is derived for you.
3. Review the month on the **Calendar**.

Palette commands: ` + "`log <exercise> <value>`, `points <p> <m>`, `task <title>`, `event <date> <title>`, `goto <date>`, `exercise add <name> <category> <target> <unit>`, `exercise rm <name>`" + `.`

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.viewBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	guide := m.helpModel.View(helpKeyMap{
		short: bindings,
		full:  [][]key.Binding{bindings},
	})
	if md := views.RenderMarkdown(helpGuide); md != "" {
		guide += "\n\n" + md
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    plain,
		GuideView:   guide,
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Checklist, Action: "switch to Checklist"},
		{Key: m.Keys.Points, Action: "switch to Points"},
		{Key: m.Keys.Calendar, Action: "switch to Calendar"},
		{Key: "/", Action: "open command palette"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case ViewChecklist:
		return []KeyBinding{
			{Key: "j/k", Action: "move cursor"},
			{Key: "enter/space", Action: "toggle item"},
			{Key: "a", Action: "add task"},
			{Key: "d", Action: "delete task"},
			{Key: "h/l", Action: "previous/next day"},
		}
	case ViewPoints:
		return []KeyBinding{
			{Key: "tab", Action: "switch field"},
			{Key: "enter", Action: "save points"},
			{Key: "h/l", Action: "previous/next day"},
			{Key: "esc", Action: "back to checklist"},
		}
	case ViewCalendar:
		return []KeyBinding{
			{Key: "h/l", Action: "previous/next month"},
			{Key: "j/k", Action: "move agenda cursor"},
			{Key: "t", Action: "jump to today"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.viewBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.viewBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
