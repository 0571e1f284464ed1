package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/jolucode/fin-guard/internal/common"
)

// MemoryStore is the session-only fallback used when the SQLite database
// cannot be opened. Same contract as SettingsStore, nothing survives the
// process.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates an empty in-memory settings store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }

// Get returns the value for key, or common.ErrSettingNotFound.
func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", common.ErrSettingNotFound, key)
	}
	return value, nil
}

// Set writes the value for key, replacing any previous value.
func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// GetBool reads a boolean setting, returning def when the key is unset.
func (s *MemoryStore) GetBool(ctx context.Context, key string, def bool) (bool, error) {
	value, err := s.Get(ctx, key)
	if err != nil {
		return def, nil
	}
	return value == "true", nil
}

// SetBool writes a boolean setting.
func (s *MemoryStore) SetBool(ctx context.Context, key string, value bool) error {
	str := "false"
	if value {
		str = "true"
	}
	return s.Set(ctx, key, str)
}

// Delete removes a setting. Deleting an absent key is not an error.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
