package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/tasklist/internal/commands"
	"github.com/sandeepkv93/tasklist/internal/derive"
	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/views"
)

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		if typed.Width > 0 {
			m.width = typed.Width
		}
		return m, nil
	case tea.KeyMsg:
		var cmd tea.Cmd
		m.syncSelection()
		if m.Mode == ModeList {
			m, cmd = m.handleListKey(typed)
		} else {
			m = m.handleInputKey(typed)
		}
		m.syncSelection()
		return m, cmd
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	sel, hasSel := m.Selected()
	switch {
	case key.Matches(msg, m.Keys.Quit):
		m.Quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.Keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.Keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.Keys.Add):
		m.openInput(ModeAdd, "add> ", "", "task text !high due:2026-01-31")
	case key.Matches(msg, m.Keys.Edit):
		if hasSel {
			m.SelectedTaskID = sel.ID
			m.openInput(ModeEdit, "edit> ", sel.Text, "")
		}
	case key.Matches(msg, m.Keys.Toggle):
		if hasSel {
			m.repo.Toggle(sel.ID)
		}
	case key.Matches(msg, m.Keys.Delete):
		if hasSel {
			m.repo.Delete(sel.ID)
			m.Status = StatusBar{Text: fmt.Sprintf("deleted: %s", sel.Text)}
		}
	case key.Matches(msg, m.Keys.CyclePriority):
		if hasSel {
			m.repo.SetPriority(sel.ID, sel.Priority.Next())
		}
	case key.Matches(msg, m.Keys.ClearCompleted):
		m.Status = StatusBar{Text: m.clearCompleted()}
	case key.Matches(msg, m.Keys.FilterAll):
		m.Filter = model.FilterAll
	case key.Matches(msg, m.Keys.FilterActive):
		m.Filter = model.FilterActive
	case key.Matches(msg, m.Keys.FilterDone):
		m.Filter = model.FilterCompleted
	case key.Matches(msg, m.Keys.CycleFilter):
		m.Filter = m.Filter.Next()
	case key.Matches(msg, m.Keys.Search):
		m.prevQuery = m.Query
		m.openInput(ModeSearch, "search> ", m.Query, "")
	case key.Matches(msg, m.Keys.Theme):
		m.Status = StatusBar{Text: fmt.Sprintf("theme: %s", m.themes.Toggle())}
	case key.Matches(msg, m.Keys.Palette):
		m.openInput(ModePalette, "/", "", "add|filter|search|priority|due|clear|theme")
	case key.Matches(msg, m.Keys.Help):
		m.HelpVisible = !m.HelpVisible
	}
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) Model {
	switch msg.Type {
	case tea.KeyEsc:
		if m.Mode == ModeSearch {
			m.Query = m.prevQuery
		}
		m.closeInput()
		return m
	case tea.KeyEnter:
		return m.commitInput()
	case tea.KeyCtrlC:
		m.closeInput()
		return m
	case tea.KeyRunes:
		m.input.SetValue(m.input.Value() + string(msg.Runes))
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		_ = cmd
	}
	if m.Mode == ModeSearch {
		m.Query = m.input.Value()
	}
	return m
}

func (m Model) commitInput() Model {
	value := m.input.Value()
	switch m.Mode {
	case ModeAdd:
		if strings.TrimSpace(value) == "" {
			break
		}
		args, err := commands.ParseAddLine(value)
		if err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m
		}
		m.repo.Add(args.Text, args.Priority, args.Due)
		m.Status = StatusBar{Text: fmt.Sprintf("added: %s", args.Text)}
	case ModeEdit:
		before, ok := m.repo.Find(m.SelectedTaskID)
		if !ok {
			break
		}
		m.repo.EditText(before.ID, value)
		if after, ok := m.repo.Find(before.ID); ok && after.Text != before.Text {
			m.Status = StatusBar{Text: fmt.Sprintf("edited: %s", after.Text)}
		}
	case ModeSearch:
		m.Query = value
	case ModePalette:
		if strings.TrimSpace(value) != "" {
			m = m.executePaletteCommand(value)
		}
	}
	m.closeInput()
	return m
}

func (m *Model) openInput(mode Mode, prompt, value, placeholder string) {
	m.Mode = mode
	m.input.Prompt = prompt
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.Focus()
}

func (m *Model) closeInput() {
	m.Mode = ModeList
	m.input.SetValue("")
	m.input.Blur()
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	dark := m.live.theme() == model.ThemeDark
	tasks := m.live.tasks()
	counts := derive.Tally(tasks)
	visible := m.Visible()
	now := m.now()

	rows := make([]views.TaskRowData, 0, len(visible))
	for i, t := range visible {
		row := views.TaskRowData{
			Text:      t.Text,
			Completed: t.Completed,
			Priority:  string(t.Priority),
			Selected:  i == m.Cursor,
			Overdue:   derive.IsOverdue(t, now),
		}
		if t.DueDate != nil {
			row.Due = formatDue(*t.DueDate)
		}
		rows = append(rows, row)
	}

	details := ""
	if sel, ok := m.Selected(); ok {
		details = views.RenderMarkdown(taskMarkdown(sel), dark, m.width-4)
	}

	input := ""
	if m.Mode != ModeList {
		input = m.input.View()
	}

	return views.RenderApp(views.AppData{
		Dark:   dark,
		Width:  m.width,
		Header: fmt.Sprintf("tasklist | filter: %s | search: %s | theme: %s", m.Filter, displayQuery(m.Query), m.live.theme()),
		Stats: views.StatsData{
			Total:        counts.Total,
			Active:       counts.Active,
			Completed:    counts.Completed,
			Overdue:      len(derive.Overdue(tasks, now)),
			Percentage:   counts.Percentage(),
			Remaining:    derive.Remaining(counts),
			ProgressView: m.completed.ViewAs(float64(counts.Percentage()) / 100),
		},
		List:    views.RenderTaskList(views.PaletteFor(dark), views.TaskListData{Rows: rows, Empty: emptyListText(m.Filter, m.Query, counts.Total)}),
		Details: details,
		Input:   input,
		Status:  m.Status.Text,
		IsError: m.Status.IsError,
		Footer:  m.renderHelp(),
	})
}
