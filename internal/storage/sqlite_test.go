package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/jolucode/fin-guard/internal/common"
)

func newTestStore(t *testing.T) *SettingsStore {
	t.Helper()
	store, err := NewSettingsStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSettingsStore() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSettingsStore_GetSet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Get(ctx, "device_id"); !errors.Is(err, common.ErrSettingNotFound) {
		t.Errorf("Get on empty store error = %v, want ErrSettingNotFound", err)
	}

	if err := store.Set(ctx, "device_id", "abc123"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := store.Get(ctx, "device_id")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "abc123" {
		t.Errorf("Get() = %q, want %q", got, "abc123")
	}

	// Overwrite is last-writer-wins
	if err := store.Set(ctx, "device_id", "def456"); err != nil {
		t.Fatalf("Set() overwrite error = %v", err)
	}
	got, _ = store.Get(ctx, "device_id")
	if got != "def456" {
		t.Errorf("Get() after overwrite = %q, want %q", got, "def456")
	}
}

func TestSettingsStore_GetBoolDefault(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	got, err := store.GetBool(ctx, "capture_enabled", true)
	if err != nil {
		t.Fatalf("GetBool() error = %v", err)
	}
	if !got {
		t.Error("GetBool() on unset key = false, want default true")
	}

	if err := store.SetBool(ctx, "capture_enabled", false); err != nil {
		t.Fatalf("SetBool() error = %v", err)
	}
	got, err = store.GetBool(ctx, "capture_enabled", true)
	if err != nil {
		t.Fatalf("GetBool() error = %v", err)
	}
	if got {
		t.Error("GetBool() after SetBool(false) = true, want false")
	}
}

func TestSettingsStore_Delete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.Get(ctx, "k"); !errors.Is(err, common.ErrSettingNotFound) {
		t.Errorf("Get after Delete error = %v, want ErrSettingNotFound", err)
	}

	// Deleting an absent key is a no-op
	if err := store.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete(missing) error = %v, want nil", err)
	}
}
