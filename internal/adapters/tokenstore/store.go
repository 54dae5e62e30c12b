// Package tokenstore persists session tokens behind a small key/value
// capability so the controller never touches ambient global state.
package tokenstore

import (
	"context"
	"sync"
)

// TokenKey is the fixed key a session token is stored under.
const TokenKey = "token"

// Storage provides read/write access to persisted string values.
type Storage interface {
	// Get returns the value for key or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Len returns the number of stored keys.
	Len(ctx context.Context) int
}

// Memory is a process-local Storage.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *Memory) Len(_ context.Context) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}

// scoped prefixes every key with a namespace.
type scoped struct {
	inner  Storage
	prefix string
}

// Scoped returns a view of s where every key lives under namespace. The
// HTTP layer uses it to give each browser session its own "token" key.
func Scoped(s Storage, namespace string) Storage {
	return &scoped{inner: s, prefix: namespace + "/"}
}

func (s *scoped) Get(ctx context.Context, key string) (string, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

func (s *scoped) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	return s.inner.Set(ctx, s.prefix+key, value)
}

func (s *scoped) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

// Len reports the size of the underlying store.
func (s *scoped) Len(ctx context.Context) int {
	return s.inner.Len(ctx)
}
