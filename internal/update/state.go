package update

import (
	"sync"

	"github.com/sandeepkv93/tasklist/internal/model"
	"github.com/sandeepkv93/tasklist/internal/theme"
	"github.com/sandeepkv93/tasklist/internal/todo"
)

// liveState is shared by every copy of the Model. Listeners write into it,
// the update loop reads from it.
type liveState struct {
	mu          sync.Mutex
	snapshot    []model.Task
	current     model.Theme
	unsubscribe []func()
}

func newLiveState(tasks []model.Task, th model.Theme) *liveState {
	return &liveState{snapshot: tasks, current: th}
}

func (s *liveState) attach(repo *todo.Repository, themes *theme.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unsubscribe = append(s.unsubscribe,
		repo.Subscribe(s.setTasks),
		themes.Subscribe(s.setTheme),
	)
}

func (s *liveState) detach() {
	s.mu.Lock()
	subs := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

func (s *liveState) setTasks(snapshot []model.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = snapshot
}

func (s *liveState) setTheme(th model.Theme) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = th
}

func (s *liveState) tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

func (s *liveState) theme() model.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}
