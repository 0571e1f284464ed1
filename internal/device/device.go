// Package device derives the identifier that ties captured notifications to
// this installation.
package device

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/jolucode/fin-guard/internal/common"
)

const deviceIDKey = "device_id"

// machineIDPaths are tried in order for a stable platform identifier.
var machineIDPaths = []string{
	"/etc/machine-id",
	"/var/lib/dbus/machine-id",
}

// Store is the key-value persistence used for the fallback identifier.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Identifier resolves the per-device id. When a stable platform machine id is
// readable the id is a salted one-way hash of it, so it survives reinstalls
// without exposing the raw identifier. Otherwise a random id is minted once
// and persisted.
type Identifier struct {
	store Store
	salt  string
}

// New creates an Identifier backed by the given store.
func New(store Store, salt string) *Identifier {
	return &Identifier{store: store, salt: salt}
}

// DeviceID returns the device identifier, generating and persisting it on
// first use. A persistence failure degrades to a session-only random id
// rather than failing the caller.
func (d *Identifier) DeviceID(ctx context.Context) (string, error) {
	if stable := d.stableID(); stable != "" {
		// Keep the stored copy in sync so inspection tools see the same id.
		if stored, err := d.store.Get(ctx, deviceIDKey); err != nil || stored != stable {
			if err := d.store.Set(ctx, deviceIDKey, stable); err != nil {
				common.LogDebug("could not persist stable device id", common.Fields{"error": err.Error()})
			}
		}
		return stable, nil
	}

	stored, err := d.store.Get(ctx, deviceIDKey)
	if err == nil && stored != "" {
		return stored, nil
	}
	if err != nil && !errors.Is(err, common.ErrSettingNotFound) {
		fallback := uuid.NewString()
		common.LogError(err, "device id storage unavailable, using session-only id", common.Fields{"device_id": fallback})
		return fallback, nil
	}

	generated := uuid.NewString()
	if err := d.store.Set(ctx, deviceIDKey, generated); err != nil {
		common.LogError(err, "could not persist generated device id", common.Fields{"device_id": generated})
	}
	return generated, nil
}

// stableID hashes the platform machine id with the application salt and
// truncates to 32 hex characters. Empty when no machine id is readable.
func (d *Identifier) stableID() string {
	for _, path := range machineIDPaths {
		raw, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		machineID := strings.TrimSpace(string(raw))
		if machineID == "" {
			continue
		}
		return hashID(machineID + d.salt)
	}
	return ""
}

func hashID(input string) string {
	sum := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%x", sum)[:32]
}
