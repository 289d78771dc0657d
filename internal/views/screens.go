package views

import (
	"fmt"
	"strings"
)

type TaskRowData struct {
	Text      string
	Completed bool
	Priority  string
	Due       string
	Overdue   bool
	Selected  bool
}

type TaskListData struct {
	Rows  []TaskRowData
	Empty string
}

type StatsData struct {
	Total        int
	Active       int
	Completed    int
	Overdue      int
	Percentage   int
	Remaining    string
	ProgressView string
}

type HelpPanelData struct {
	Mode     string
	Expanded bool
	HelpView string
}

func RenderStats(p Palette, data StatsData) string {
	line := fmt.Sprintf("total: %d | active: %d | completed: %d", data.Total, data.Active, data.Completed)
	if data.Overdue > 0 {
		line += fmt.Sprintf(" | overdue: %d", data.Overdue)
	}
	progress := fmt.Sprintf("%s %d%%", data.ProgressView, data.Percentage)
	return strings.Join([]string{
		line,
		strings.TrimSpace(progress),
		p.Remaining.Render(data.Remaining),
	}, "\n")
}

// RenderTaskList draws one line per row: cursor, checkbox, priority badge,
// text and the due date, flagged when overdue.
func RenderTaskList(p Palette, data TaskListData) string {
	if len(data.Rows) == 0 {
		return p.Muted.Render(data.Empty)
	}
	var b strings.Builder
	for i, row := range data.Rows {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(renderTaskRow(p, row))
	}
	return b.String()
}

func renderTaskRow(p Palette, row TaskRowData) string {
	cursor := "  "
	if row.Selected {
		cursor = p.Cursor.Render("> ")
	}
	check := "[ ]"
	if row.Completed {
		check = "[x]"
	}
	text := row.Text
	if row.Completed {
		text = p.Done.Render(text)
	}
	badge := fmt.Sprintf("[%s]", strings.ToUpper(priorityLetter(row.Priority)))
	if style, ok := p.Priority[row.Priority]; ok {
		badge = style.Render(badge)
	}
	line := fmt.Sprintf("%s%s %s %s", cursor, check, badge, text)
	if row.Due != "" {
		due := "due:" + row.Due
		if row.Overdue {
			due = p.Overdue.Render(due + " OVERDUE")
		} else {
			due = p.Muted.Render(due)
		}
		line += " " + due
	}
	return line
}

func priorityLetter(priority string) string {
	if priority == "" {
		return "-"
	}
	return priority[:1]
}

func RenderHelpPanel(data HelpPanelData) string {
	if !data.Expanded {
		return data.HelpView
	}
	return fmt.Sprintf("help (%s mode):\n%s", data.Mode, data.HelpView)
}
