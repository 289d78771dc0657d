package update

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/tasklist/internal/commands"
	"github.com/sandeepkv93/tasklist/internal/derive"
)

func (m Model) executePaletteCommand(raw string) Model {
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			m.repo.Add(a.Text, a.Priority, a.Due)
			return commands.Result{Message: fmt.Sprintf("added: %s", strings.TrimSpace(a.Text))}, nil
		},
		Filter: func(f commands.FilterArgs) (commands.Result, error) {
			m.Filter = f.Filter
			return commands.Result{Message: fmt.Sprintf("filter: %s", f.Filter)}, nil
		},
		Search: func(s commands.SearchArgs) (commands.Result, error) {
			m.Query = s.Query
			if m.Query == "" {
				return commands.Result{Message: "search cleared"}, nil
			}
			return commands.Result{Message: fmt.Sprintf("search: %s", m.Query)}, nil
		},
		Priority: func(p commands.PriorityArgs) (commands.Result, error) {
			sel, ok := m.Selected()
			if !ok {
				return commands.Result{}, noSelection()
			}
			m.repo.SetPriority(sel.ID, p.Priority)
			return commands.Result{Message: fmt.Sprintf("priority: %s", p.Priority)}, nil
		},
		Due: func(d commands.DueArgs) (commands.Result, error) {
			sel, ok := m.Selected()
			if !ok {
				return commands.Result{}, noSelection()
			}
			m.repo.SetDueDate(sel.ID, d.Due)
			if d.Due == nil {
				return commands.Result{Message: "due date cleared"}, nil
			}
			return commands.Result{Message: fmt.Sprintf("due: %s", formatDue(*d.Due))}, nil
		},
		Clear: func() (commands.Result, error) {
			return commands.Result{Message: m.clearCompleted()}, nil
		},
		Theme: func() (commands.Result, error) {
			return commands.Result{Message: fmt.Sprintf("theme: %s", m.themes.Toggle())}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.Status = StatusBar{Text: res.Message}
	return m
}

func (m Model) clearCompleted() string {
	before := derive.Tally(m.live.tasks()).Completed
	m.repo.ClearCompleted()
	return fmt.Sprintf("cleared %d completed", before)
}

func noSelection() error {
	return &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no task selected"}
}
