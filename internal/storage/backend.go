package storage

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrUnavailable = errors.New("storage: backend unavailable")
	errNilDB       = errors.New("storage: nil db")
)

// Backend is a raw string key-value capability. Implementations may fail;
// Store is the layer that turns failures into defaults.
type Backend interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// MemoryBackend keeps values for the lifetime of the process only.
type MemoryBackend struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string]string)}
}

func (m *MemoryBackend) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryBackend) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.values[key] = value
	return nil
}

// UnavailableBackend fails every call. It stands in for storage that could not
// be opened so the rest of the app runs unchanged.
type UnavailableBackend struct {
	Reason error
}

func (u UnavailableBackend) Get(context.Context, string) (string, bool, error) {
	return "", false, u.err()
}

func (u UnavailableBackend) Set(context.Context, string, string) error {
	return u.err()
}

func (u UnavailableBackend) err() error {
	if u.Reason == nil {
		return ErrUnavailable
	}
	return errors.Join(ErrUnavailable, u.Reason)
}
