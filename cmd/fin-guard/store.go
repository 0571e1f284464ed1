package main

import (
	"context"

	"github.com/jolucode/fin-guard/internal/common"
	"github.com/jolucode/fin-guard/internal/storage"
)

// settingsStore is what the commands need from either store implementation.
type settingsStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	GetBool(ctx context.Context, key string, def bool) (bool, error)
	SetBool(ctx context.Context, key string, value bool) error
	Close() error
}

// openSettingsStore opens the SQLite settings store, degrading to a
// session-only in-memory store when the database is unavailable. Capture
// keeps running either way; the capture switch just will not persist.
func openSettingsStore(dbPath string) settingsStore {
	store, err := storage.NewSettingsStore(dbPath)
	if err != nil {
		common.LogError(err, "settings database unavailable, state is in-memory for this session", common.Fields{"path": dbPath})
		return storage.NewMemoryStore()
	}
	return store
}
