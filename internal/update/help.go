package update

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/tasklist/internal/views"
)

type KeyMap struct {
	Up             key.Binding
	Down           key.Binding
	Add            key.Binding
	Edit           key.Binding
	Toggle         key.Binding
	Delete         key.Binding
	CyclePriority  key.Binding
	ClearCompleted key.Binding
	FilterAll      key.Binding
	FilterActive   key.Binding
	FilterDone     key.Binding
	CycleFilter    key.Binding
	Search         key.Binding
	Theme          key.Binding
	Palette        key.Binding
	Help           key.Binding
	Quit           key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:             key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:           key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Add:            key.NewBinding(key.WithKeys("a", "i"), key.WithHelp("a", "add")),
		Edit:           key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Toggle:         key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
		Delete:         key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		CyclePriority:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "priority")),
		ClearCompleted: key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear done")),
		FilterAll:      key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
		FilterActive:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "active")),
		FilterDone:     key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "completed")),
		CycleFilter:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "next filter")),
		Search:         key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "search")),
		Theme:          key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Palette:        key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "command")),
		Help:           key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:           key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Delete, k.Search, k.Palette, k.Help, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Add, k.Edit, k.Toggle, k.Delete},
		{k.CyclePriority, k.ClearCompleted, k.Theme, k.Palette},
		{k.FilterAll, k.FilterActive, k.FilterDone, k.CycleFilter, k.Search},
		{k.Help, k.Quit},
	}
}

type inputKeys struct {
	commit key.Binding
	cancel key.Binding
}

func (k inputKeys) ShortHelp() []key.Binding  { return []key.Binding{k.commit, k.cancel} }
func (k inputKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

var inputBindings = inputKeys{
	commit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
	cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
}

func (m Model) renderHelp() string {
	if m.Mode != ModeList {
		return m.helpModel.View(inputBindings)
	}
	h := m.helpModel
	h.ShowAll = m.HelpVisible
	return views.RenderHelpPanel(views.HelpPanelData{
		Mode:     string(m.Mode),
		Expanded: m.HelpVisible,
		HelpView: h.View(m.Keys),
	})
}
