// Package gate implements the process-wide capture switch. When disabled,
// captured notifications are dropped before any network work happens.
package gate

import (
	"context"
	"sync"

	"github.com/jolucode/fin-guard/internal/common"
)

const captureEnabledKey = "capture_enabled"

// Store is the key-value persistence the gate writes through to.
type Store interface {
	GetBool(ctx context.Context, key string, def bool) (bool, error)
	SetBool(ctx context.Context, key string, value bool) error
}

// CaptureGate keeps an in-memory mirror of the persisted capture flag.
// Every write persists before the mirror is updated, so a reader never
// observes a mirror value that disagrees with storage at the point the
// write returns.
type CaptureGate struct {
	store Store

	mu      sync.RWMutex
	enabled bool
}

// New creates a gate over the given store. Initialize must run before the
// mirror is trusted.
func New(store Store) *CaptureGate {
	return &CaptureGate{
		store:   store,
		enabled: true, // default when never persisted
	}
}

// Initialize loads the persisted value into the mirror. A storage failure
// leaves the in-memory default in place for the session.
func (g *CaptureGate) Initialize(ctx context.Context) error {
	enabled, err := g.store.GetBool(ctx, captureEnabledKey, true)
	if err != nil {
		common.LogError(err, "capture gate falling back to in-memory default", common.Fields{"default": true})
		return err
	}

	g.mu.Lock()
	g.enabled = enabled
	g.mu.Unlock()
	return nil
}

// IsEnabled reports the current capture state.
func (g *CaptureGate) IsEnabled() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.enabled
}

// SetEnabled persists the new state and then updates the mirror. When
// persistence fails the mirror is still updated so the session keeps working;
// the error is returned for logging.
func (g *CaptureGate) SetEnabled(ctx context.Context, enabled bool) error {
	err := g.store.SetBool(ctx, captureEnabledKey, enabled)
	if err != nil {
		common.LogError(err, "failed to persist capture state, keeping in-memory only", common.Fields{"enabled": enabled})
	}

	g.mu.Lock()
	g.enabled = enabled
	g.mu.Unlock()
	return err
}

// Toggle flips the capture state and returns the new value.
func (g *CaptureGate) Toggle(ctx context.Context) (bool, error) {
	g.mu.RLock()
	newState := !g.enabled
	g.mu.RUnlock()

	err := g.SetEnabled(ctx, newState)
	return newState, err
}
