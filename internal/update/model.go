package update

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sandeepkv93/tasklist/internal/derive"
	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/theme"
	"github.com/sandeepkv93/tasklist/internal/todo"
)

type Mode string

const (
	ModeList    Mode = "list"
	ModeAdd     Mode = "add"
	ModeEdit    Mode = "edit"
	ModeSearch  Mode = "search"
	ModePalette Mode = "palette"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type Model struct {
	Mode           Mode
	Filter         model.Filter
	Query          string
	Cursor         int
	SelectedTaskID string
	HelpVisible    bool
	Status         StatusBar
	Keys           KeyMap
	Quitting       bool

	repo   *todo.Repository
	themes *theme.State
	live   *liveState
	now    func() time.Time

	// query restored when search mode is cancelled
	prevQuery string

	input     textinput.Model
	completed progress.Model
	helpModel help.Model
	width     int
}

type Option func(*Model)

func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		if now != nil {
			m.now = now
		}
	}
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

// NewModel wires the model to repo and themes. Both push their changes into
// the model's live state through listeners, so anything that mutates them
// shows up on the next render.
func NewModel(repo *todo.Repository, themes *theme.State, opts ...Option) Model {
	if repo == nil {
		repo = todo.New(nil)
	}
	if themes == nil {
		themes = theme.New(nil, nil)
	}
	m := Model{
		Mode:   ModeList,
		Filter: model.FilterAll,
		Keys:   DefaultKeyMap(),
		repo:   repo,
		themes: themes,
		live:   newLiveState(repo.Snapshot(), themes.Current()),
		now:    time.Now,
		width:  80,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.live.attach(repo, themes)
	m.initBubbleComponents()
	m.syncSelection()
	return m
}

// Close detaches the model from the repository and theme listeners.
func (m Model) Close() {
	m.live.detach()
}

func (m *Model) initBubbleComponents() {
	m.input = textinput.New()
	m.input.CharLimit = 256
	m.input.Width = 56

	m.completed = progress.New(progress.WithDefaultGradient(), progress.WithWidth(30), progress.WithoutPercentage())
	m.helpModel = help.New()
}

func (m Model) Tasks() []model.Task {
	return m.live.tasks()
}

func (m Model) Theme() model.Theme {
	return m.live.theme()
}

func (m Model) Visible() []model.Task {
	return derive.Visible(m.live.tasks(), m.Filter, m.Query)
}

func (m Model) Selected() (model.Task, bool) {
	visible := m.Visible()
	if m.Cursor < 0 || m.Cursor >= len(visible) {
		return model.Task{}, false
	}
	return visible[m.Cursor], true
}

// syncSelection keeps the cursor on the selected task when the visible list
// changes under it, and clamps it otherwise.
func (m *Model) syncSelection() {
	visible := m.Visible()
	if m.SelectedTaskID != "" {
		for i, t := range visible {
			if t.ID == m.SelectedTaskID {
				m.Cursor = i
				return
			}
		}
	}
	if m.Cursor >= len(visible) {
		m.Cursor = len(visible) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	m.SelectedTaskID = ""
	if len(visible) > 0 {
		m.SelectedTaskID = visible[m.Cursor].ID
	}
}

func (m *Model) moveCursor(delta int) {
	visible := m.Visible()
	if len(visible) == 0 {
		return
	}
	m.Cursor += delta
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	if m.Cursor >= len(visible) {
		m.Cursor = len(visible) - 1
	}
	m.SelectedTaskID = visible[m.Cursor].ID
}
