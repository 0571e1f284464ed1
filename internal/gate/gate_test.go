package gate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jolucode/fin-guard/internal/storage"
)

// memStore is an in-memory Store for tests.
type memStore struct {
	values  map[string]bool
	failSet bool
	failGet bool
}

func newMemStore() *memStore {
	return &memStore{values: make(map[string]bool)}
}

func (m *memStore) GetBool(_ context.Context, key string, def bool) (bool, error) {
	if m.failGet {
		return def, errors.New("storage unavailable")
	}
	if v, ok := m.values[key]; ok {
		return v, nil
	}
	return def, nil
}

func (m *memStore) SetBool(_ context.Context, key string, value bool) error {
	if m.failSet {
		return errors.New("storage unavailable")
	}
	m.values[key] = value
	return nil
}

func TestCaptureGate_DefaultEnabled(t *testing.T) {
	g := New(newMemStore())
	require.NoError(t, g.Initialize(context.Background()))

	assert.True(t, g.IsEnabled(), "gate should default to enabled on first run")
}

func TestCaptureGate_InitializeLoadsPersisted(t *testing.T) {
	store := newMemStore()
	store.values["capture_enabled"] = false

	g := New(store)
	require.NoError(t, g.Initialize(context.Background()))

	assert.False(t, g.IsEnabled(), "Initialize should load persisted false")
}

func TestCaptureGate_SetPersistsBeforeMirror(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	g := New(store)
	require.NoError(t, g.Initialize(ctx))

	require.NoError(t, g.SetEnabled(ctx, false))
	assert.False(t, g.IsEnabled())
	assert.False(t, store.values["capture_enabled"], "store and mirror must agree after SetEnabled returns")
}

func TestCaptureGate_ToggleTwiceRoundTrips(t *testing.T) {
	ctx := context.Background()
	g := New(newMemStore())
	require.NoError(t, g.Initialize(ctx))
	original := g.IsEnabled()

	first, err := g.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, g.IsEnabled(), "returned value must match the subsequent read")

	second, err := g.Toggle(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, g.IsEnabled())
	assert.Equal(t, original, g.IsEnabled(), "two toggles should return to the original state")
}

func TestCaptureGate_StorageFailureFallsBackInMemory(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.failSet = true
	g := New(store)
	require.NoError(t, g.Initialize(ctx))

	err := g.SetEnabled(ctx, false)
	assert.Error(t, err, "persistence failure should surface for logging")
	assert.False(t, g.IsEnabled(), "mirror should still update for the session")

	store.failGet = true
	g2 := New(store)
	assert.Error(t, g2.Initialize(ctx))
	assert.True(t, g2.IsEnabled(), "unreadable storage should leave the default in place")
}

// The session fallback store used when the database cannot open must yield a
// working, default-enabled gate.
func TestCaptureGate_OverSessionFallbackStore(t *testing.T) {
	ctx := context.Background()
	g := New(storage.NewMemoryStore())
	require.NoError(t, g.Initialize(ctx))
	assert.True(t, g.IsEnabled())

	require.NoError(t, g.SetEnabled(ctx, false))
	assert.False(t, g.IsEnabled())

	enabled, err := g.Toggle(ctx)
	require.NoError(t, err)
	assert.True(t, enabled)
}
