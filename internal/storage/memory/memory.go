// Package memory is an in-process storage.Storage backed by a map.
// It is used by tests and by the terminal UI's --memory demo mode.
package memory

import (
	"context"
	"sync"

	"github.com/aanand-mishra/student-roster/internal/storage"
)

// Store keeps values in memory. The zero value is not usable; call New.
type Store struct {
	mu     sync.RWMutex
	values map[string]string

	// FailSet, when non-nil, is returned by every Set without storing.
	// Tests use it to simulate a failing write.
	FailSet error
}

var _ storage.Storage = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{values: make(map[string]string)}
}

// Get returns the value stored under key.
func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

// Set overwrites the value stored under key.
func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailSet != nil {
		return s.FailSet
	}
	s.values[key] = value
	return nil
}
