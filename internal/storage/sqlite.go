// Package storage persists small pieces of client state (capture switch,
// device identifier) in a local SQLite database.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/jolucode/fin-guard/internal/common"
)

// SettingsStore is a key-value store backed by SQLite. Reads and writes are
// atomic at the statement level; concurrent writers are last-writer-wins.
type SettingsStore struct {
	db     *sql.DB
	dbPath string
}

// NewSettingsStore opens (creating if needed) the settings database.
func NewSettingsStore(dbPath string) (*SettingsStore, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("%w: dbPath cannot be empty", common.ErrInvalidConfig)
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &SettingsStore{db: db, dbPath: dbPath}
	if err := s.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

func (s *SettingsStore) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create settings table: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SettingsStore) Close() error {
	return s.db.Close()
}

// Get returns the value for key, or common.ErrSettingNotFound.
func (s *SettingsStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", common.ErrSettingNotFound, key)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read setting %s: %w", key, err)
	}
	return value, nil
}

// Set writes the value for key, replacing any previous value.
func (s *SettingsStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write setting %s: %w", key, err)
	}
	return nil
}

// GetBool reads a boolean setting, returning def when the key is unset.
func (s *SettingsStore) GetBool(ctx context.Context, key string, def bool) (bool, error) {
	value, err := s.Get(ctx, key)
	if errors.Is(err, common.ErrSettingNotFound) {
		return def, nil
	}
	if err != nil {
		return def, err
	}
	return value == "true", nil
}

// SetBool writes a boolean setting.
func (s *SettingsStore) SetBool(ctx context.Context, key string, value bool) error {
	str := "false"
	if value {
		str = "true"
	}
	return s.Set(ctx, key, str)
}

// Delete removes a setting. Deleting an absent key is not an error.
func (s *SettingsStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM settings WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("failed to delete setting %s: %w", key, err)
	}
	return nil
}
