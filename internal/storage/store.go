package storage

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/tasklist/internal/model"
)

const (
	KeyTasks          = "todos"
	KeyTheme          = "theme"
	KeyLegacyDarkMode = "darkMode"
)

// Store is the failure-tolerant face of a Backend. No method returns an error
// or panics: failures are logged and reported as absence or false.
type Store struct {
	backend Backend
	logger  *log.Logger
	now     func() time.Time
}

type Option func(*Store)

func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock sets the time stamped on loaded tasks that carry no usable
// creation time.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func NewStore(backend Backend, opts ...Option) *Store {
	if backend == nil {
		backend = UnavailableBackend{}
	}
	s := &Store{
		backend: backend,
		logger:  log.New(io.Discard),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Load(key string) (value string, found bool) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("storage load panicked", "key", key, "panic", r)
			value, found = "", false
		}
	}()
	v, ok, err := s.backend.Get(context.Background(), key)
	if err != nil {
		s.logger.Warn("storage load failed", "key", key, "err", err)
		return "", false
	}
	return v, ok
}

func (s *Store) Save(key, value string) (saved bool) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Warn("storage save panicked", "key", key, "panic", r)
			saved = false
		}
	}()
	if err := s.backend.Set(context.Background(), key, value); err != nil {
		s.logger.Warn("storage save failed", "key", key, "err", err)
		return false
	}
	return true
}

// LoadTasks returns the persisted collection, or an empty one when nothing
// usable is stored.
func (s *Store) LoadTasks() []model.Task {
	raw, ok := s.Load(KeyTasks)
	if !ok || strings.TrimSpace(raw) == "" {
		return []model.Task{}
	}
	tasks, stats, err := decodeTasks([]byte(raw), s.now().UTC())
	if err != nil {
		s.logger.Warn("discarding malformed task list", "key", KeyTasks, "err", err)
		return []model.Task{}
	}
	if stats.dropped > 0 {
		s.logger.Warn("skipped unusable task records", "key", KeyTasks, "count", stats.dropped)
	}
	if stats.undated > 0 {
		s.logger.Warn("task records without a creation time, using load time", "key", KeyTasks, "count", stats.undated)
	}
	s.logger.Debug("tasks loaded", "count", len(tasks))
	return tasks
}

func (s *Store) SaveTasks(tasks []model.Task) bool {
	payload, err := encodeTasks(tasks)
	if err != nil {
		s.logger.Warn("encode tasks failed", "err", err)
		return false
	}
	return s.Save(KeyTasks, string(payload))
}

// LoadTheme reads "theme", falling back to the boolean "darkMode" key.
func (s *Store) LoadTheme() (model.Theme, bool) {
	if raw, ok := s.Load(KeyTheme); ok {
		if th, ok := decodeTheme(raw); ok {
			return th, true
		}
		s.logger.Warn("ignoring malformed theme", "key", KeyTheme, "value", raw)
	}
	raw, ok := s.Load(KeyLegacyDarkMode)
	if !ok {
		return "", false
	}
	var dark bool
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &dark); err != nil {
		s.logger.Warn("ignoring malformed theme", "key", KeyLegacyDarkMode, "value", raw)
		return "", false
	}
	if dark {
		return model.ThemeDark, true
	}
	return model.ThemeLight, true
}

func (s *Store) SaveTheme(th model.Theme) bool {
	if !th.IsValid() {
		s.logger.Warn("refusing to save invalid theme", "value", th)
		return false
	}
	return s.Save(KeyTheme, string(th))
}

func decodeTheme(raw string) (model.Theme, bool) {
	trimmed := strings.TrimSpace(raw)
	if th, err := model.ParseTheme(trimmed); err == nil {
		return th, true
	}
	var quoted string
	if err := json.Unmarshal([]byte(trimmed), &quoted); err == nil {
		if th, err := model.ParseTheme(quoted); err == nil {
			return th, true
		}
		return "", false
	}
	var dark bool
	if err := json.Unmarshal([]byte(trimmed), &dark); err == nil {
		if dark {
			return model.ThemeDark, true
		}
		return model.ThemeLight, true
	}
	return "", false
}
