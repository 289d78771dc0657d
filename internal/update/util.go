package update

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/tasklist/internal/model"
)

func formatDue(d time.Time) string {
	return d.UTC().Format(model.DateLayout)
}

func displayQuery(q string) string {
	switch {
	case q == "":
		return "-"
	case strings.TrimSpace(q) != q:
		return strconv.Quote(q)
	default:
		return q
	}
}

func emptyListText(f model.Filter, query string, total int) string {
	switch {
	case total == 0:
		return "No tasks yet. Press a to add one."
	case query != "":
		return fmt.Sprintf("No %s tasks match %q.", f, query)
	default:
		return fmt.Sprintf("No %s tasks.", f)
	}
}

func taskMarkdown(t model.Task) string {
	status := "active"
	if t.Completed {
		status = "completed"
	}
	due := "none"
	if t.DueDate != nil {
		due = formatDue(*t.DueDate)
	}
	var b strings.Builder
	b.WriteString("## " + t.Text + "\n\n")
	b.WriteString(fmt.Sprintf("- **status:** %s\n", status))
	b.WriteString(fmt.Sprintf("- **priority:** %s\n", t.Priority))
	b.WriteString(fmt.Sprintf("- **due:** %s\n", due))
	if !t.CreatedAt.IsZero() {
		b.WriteString(fmt.Sprintf("- **created:** %s\n", t.CreatedAt.UTC().Format(time.RFC3339)))
	}
	return b.String()
}
