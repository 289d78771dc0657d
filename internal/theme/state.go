package theme

import (
	"slices"
	"sync"

	"github.com/sandeepkv93/tasklist/internal/model"
)

type ThemeStore interface {
	LoadTheme() (model.Theme, bool)
	SaveTheme(model.Theme) bool
}

// Preference reports the host's preferred scheme, if it can be queried.
type Preference func() (model.Theme, bool)

type Listener func(model.Theme)

type State struct {
	mu        sync.Mutex
	store     ThemeStore
	current   model.Theme
	listeners map[int]Listener
	nextSub   int
}

// New resolves the starting theme: persisted value, then pref, then light.
func New(store ThemeStore, pref Preference) *State {
	s := &State{
		store:     store,
		current:   model.ThemeLight,
		listeners: make(map[int]Listener),
	}
	if th, ok := s.loadPersisted(); ok {
		s.current = th
		return s
	}
	if pref != nil {
		if th, ok := pref(); ok && th.IsValid() {
			s.current = th
		}
	}
	return s
}

func (s *State) loadPersisted() (model.Theme, bool) {
	if s.store == nil {
		return "", false
	}
	th, ok := s.store.LoadTheme()
	if !ok || !th.IsValid() {
		return "", false
	}
	return th, true
}

func (s *State) Current() model.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Toggle flips the theme and always persists the new value.
func (s *State) Toggle() model.Theme {
	s.mu.Lock()
	s.current = s.current.Toggle()
	next := s.current
	if s.store != nil {
		s.store.SaveTheme(next)
	}
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	listeners := make([]Listener, 0, len(ids))
	for _, id := range ids {
		listeners = append(listeners, s.listeners[id])
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(next)
	}
	return next
}

func (s *State) Subscribe(fn Listener) func() {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}
