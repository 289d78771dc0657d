// Package derive computes read-only views of a task snapshot. Every function
// is pure and returns a fresh slice; inputs are never modified.
package derive

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/sandeepkv93/tasklist/internal/model"
	"golang.org/x/text/cases"
)

// ByStatus keeps tasks matching filter. Unknown filters behave like all.
func ByStatus(tasks []model.Task, filter model.Filter) []model.Task {
	switch filter {
	case model.FilterActive:
		return keep(tasks, func(t model.Task) bool { return !t.Completed })
	case model.FilterCompleted:
		return keep(tasks, func(t model.Task) bool { return t.Completed })
	default:
		return keep(tasks, func(model.Task) bool { return true })
	}
}

// BySearch keeps tasks whose text contains query, ignoring case. Only the
// empty query matches everything; whitespace is searched for like any text.
func BySearch(tasks []model.Task, query string) []model.Task {
	if query == "" {
		return keep(tasks, func(model.Task) bool { return true })
	}
	folder := cases.Fold()
	needle := folder.String(query)
	return keep(tasks, func(t model.Task) bool {
		return strings.Contains(folder.String(t.Text), needle)
	})
}

// Visible is the list shown to the user: status filter, then search.
func Visible(tasks []model.Task, filter model.Filter, query string) []model.Task {
	return BySearch(ByStatus(tasks, filter), query)
}

type Counts struct {
	Total     int
	Active    int
	Completed int
}

func Tally(tasks []model.Task) Counts {
	var c Counts
	for _, t := range tasks {
		if t.Completed {
			c.Completed++
		} else {
			c.Active++
		}
	}
	c.Total = c.Active + c.Completed
	return c
}

// Percentage is the completed share rounded to a whole percent.
func (c Counts) Percentage() int {
	if c.Completed == 0 || c.Total == 0 {
		return 0
	}
	return int(math.Round(float64(c.Completed) / float64(c.Total) * 100))
}

func Remaining(c Counts) string {
	if c.Active == 1 {
		return "1 task remaining"
	}
	return fmt.Sprintf("%d tasks remaining", c.Active)
}

// IsOverdue reports an active task whose due date is before today.
func IsOverdue(t model.Task, now time.Time) bool {
	if t.Completed || t.DueDate == nil {
		return false
	}
	return model.Day(*t.DueDate).Before(model.Day(now))
}

func Overdue(tasks []model.Task, now time.Time) []model.Task {
	return keep(tasks, func(t model.Task) bool { return IsOverdue(t, now) })
}

func keep(tasks []model.Task, pred func(model.Task) bool) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if pred(t) {
			out = append(out, t.Clone())
		}
	}
	return out
}
