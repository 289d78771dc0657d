// Package todo owns the in-memory task collection. Every mutation yields a new
// snapshot, writes it through the TaskStore and then notifies listeners.
// Invalid input is a silent no-op; nothing here returns an error.
package todo

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sandeepkv93/tasklist/internal/model"
)

// TaskStore persists whole snapshots. SaveTasks reports failure instead of
// returning an error; the repository keeps running either way.
type TaskStore interface {
	LoadTasks() []model.Task
	SaveTasks([]model.Task) bool
}

const maxIDAttempts = 8

type Listener func(snapshot []model.Task)

type Option func(*Repository)

func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		if now != nil {
			r.now = now
		}
	}
}

func WithIDGenerator(next func() string) Option {
	return func(r *Repository) {
		if next != nil {
			r.newID = next
		}
	}
}

type Repository struct {
	mu        sync.Mutex
	store     TaskStore
	tasks     []model.Task
	listeners map[int]Listener
	nextSub   int
	issued    map[string]bool
	now       func() time.Time
	newID     func() string
}

// New loads the initial collection from store. A nil store gives an
// in-memory repository.
func New(store TaskStore, opts ...Option) *Repository {
	r := &Repository{
		store:     store,
		listeners: make(map[int]Listener),
		issued:    make(map[string]bool),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	if store != nil {
		r.tasks = dedupe(store.LoadTasks())
	}
	if r.tasks == nil {
		r.tasks = []model.Task{}
	}
	for _, t := range r.tasks {
		r.issued[t.ID] = true
	}
	return r
}

func (r *Repository) Snapshot() []model.Task {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneAll(r.tasks)
}

func (r *Repository) Find(id string) (model.Task, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := r.indexOf(id); i >= 0 {
		return r.tasks[i].Clone(), true
	}
	return model.Task{}, false
}

// Subscribe registers fn to run after every successful mutation. The returned
// func removes it.
func (r *Repository) Subscribe(fn Listener) func() {
	if fn == nil {
		return func() {}
	}
	r.mu.Lock()
	id := r.nextSub
	r.nextSub++
	r.listeners[id] = fn
	r.mu.Unlock()
	return func() {
		r.mu.Lock()
		delete(r.listeners, id)
		r.mu.Unlock()
	}
}

// Add appends a task. Blank text is ignored; an invalid priority becomes
// medium. New tasks always go to the end of the collection.
func (r *Repository) Add(text string, priority model.Priority, due *time.Time) []model.Task {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return r.Snapshot()
	}
	if !priority.IsValid() {
		priority = model.PriorityMedium
	}
	return r.mutate(func(tasks []model.Task) ([]model.Task, bool) {
		task := model.Task{
			ID:        r.uniqueID(),
			Text:      trimmed,
			Priority:  priority,
			DueDate:   normalizeDue(due),
			CreatedAt: r.now().UTC(),
		}
		return append(tasks, task), true
	})
}

func (r *Repository) Toggle(id string) []model.Task {
	return r.replace(id, func(t model.Task) (model.Task, bool) {
		t.Completed = !t.Completed
		return t, true
	})
}

func (r *Repository) Delete(id string) []model.Task {
	return r.mutate(func(tasks []model.Task) ([]model.Task, bool) {
		i := indexOf(tasks, id)
		if i < 0 {
			return tasks, false
		}
		return slices.Delete(tasks, i, i+1), true
	})
}

// EditText replaces the text when the trimmed input is non-empty and differs
// from the current text.
func (r *Repository) EditText(id, text string) []model.Task {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return r.Snapshot()
	}
	return r.replace(id, func(t model.Task) (model.Task, bool) {
		if t.Text == trimmed {
			return t, false
		}
		t.Text = trimmed
		return t, true
	})
}

func (r *Repository) SetPriority(id string, priority model.Priority) []model.Task {
	if !priority.IsValid() {
		return r.Snapshot()
	}
	return r.replace(id, func(t model.Task) (model.Task, bool) {
		if t.Priority == priority {
			return t, false
		}
		t.Priority = priority
		return t, true
	})
}

// SetDueDate sets or, with nil, clears the due date. Dates are kept as UTC
// midnight of the given calendar day.
func (r *Repository) SetDueDate(id string, due *time.Time) []model.Task {
	next := normalizeDue(due)
	return r.replace(id, func(t model.Task) (model.Task, bool) {
		if sameDay(t.DueDate, next) {
			return t, false
		}
		t.DueDate = next
		return t, true
	})
}

func (r *Repository) ClearCompleted() []model.Task {
	return r.mutate(func(tasks []model.Task) ([]model.Task, bool) {
		kept := slices.DeleteFunc(tasks, func(t model.Task) bool { return t.Completed })
		return kept, len(kept) != len(tasks)
	})
}

func (r *Repository) replace(id string, fn func(model.Task) (model.Task, bool)) []model.Task {
	return r.mutate(func(tasks []model.Task) ([]model.Task, bool) {
		i := indexOf(tasks, id)
		if i < 0 {
			return tasks, false
		}
		next, changed := fn(tasks[i])
		if !changed {
			return tasks, false
		}
		tasks[i] = next
		return tasks, true
	})
}

// mutate hands fn a private copy of the collection. When fn reports a change
// the copy becomes current, is persisted, and listeners run outside the lock.
func (r *Repository) mutate(fn func([]model.Task) ([]model.Task, bool)) []model.Task {
	r.mu.Lock()
	next, changed := fn(cloneAll(r.tasks))
	if !changed {
		out := cloneAll(r.tasks)
		r.mu.Unlock()
		return out
	}
	r.tasks = next
	if r.store != nil {
		r.store.SaveTasks(cloneAll(next))
	}
	listeners := r.sortedListeners()
	out := cloneAll(next)
	r.mu.Unlock()

	for _, fn := range listeners {
		fn(cloneAll(out))
	}
	return out
}

func (r *Repository) sortedListeners() []Listener {
	ids := make([]int, 0, len(r.listeners))
	for id := range r.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]Listener, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.listeners[id])
	}
	return out
}

func (r *Repository) indexOf(id string) int {
	return indexOf(r.tasks, id)
}

// uniqueID never hands out an id seen earlier in this session, even one
// whose task has since been deleted.
func (r *Repository) uniqueID() string {
	for i := 0; i < maxIDAttempts; i++ {
		id := strings.TrimSpace(r.newID())
		if id != "" && !r.issued[id] {
			r.issued[id] = true
			return id
		}
	}
	for {
		id := uuid.NewString()
		if !r.issued[id] {
			r.issued[id] = true
			return id
		}
	}
}

func indexOf(tasks []model.Task, id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(tasks, func(t model.Task) bool { return t.ID == id })
}

func cloneAll(tasks []model.Task) []model.Task {
	out := make([]model.Task, len(tasks))
	for i, t := range tasks {
		out[i] = t.Clone()
	}
	return out
}

func dedupe(tasks []model.Task) []model.Task {
	seen := make(map[string]bool, len(tasks))
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID == "" || seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		out = append(out, t.Clone())
	}
	return out
}

func normalizeDue(due *time.Time) *time.Time {
	if due == nil || due.IsZero() {
		return nil
	}
	d := model.Day(*due)
	return &d
}

func sameDay(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
