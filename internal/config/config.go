// Package config provides configuration utilities for the application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jolucode/fin-guard/internal/common"
)

// Config holds the resolved application configuration.
type Config struct {
	// BaseURL is the backend root, e.g. "https://finguard.example.com".
	BaseURL string
	// Timeout bounds every backend HTTP call.
	Timeout time.Duration
	// DatabasePath locates the local settings database.
	DatabasePath string
	// DeviceSalt is mixed into the stable device identifier hash.
	DeviceSalt string
	// LogAll forwards every notification regardless of classification.
	LogAll bool
}

const (
	defaultTimeout = 15 * time.Second
	defaultSalt    = "PayControlCenter_2024"
)

// Load resolves the application configuration from Viper (config file plus
// FINGUARD_ environment variables), applying defaults where keys are unset.
func Load() (*Config, error) {
	cfg := &Config{
		BaseURL:      strings.TrimRight(viper.GetString("backend.base_url"), "/"),
		Timeout:      viper.GetDuration("backend.timeout"),
		DatabasePath: ExpandPath(viper.GetString("database.path")),
		DeviceSalt:   viper.GetString("device.salt"),
		LogAll:       viper.GetBool("capture.log_all"),
	}

	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: backend.base_url is required", common.ErrMissingConfig)
	}
	if !strings.HasPrefix(cfg.BaseURL, "http://") && !strings.HasPrefix(cfg.BaseURL, "https://") {
		return nil, fmt.Errorf("%w: backend.base_url must be an http(s) URL", common.ErrInvalidConfig)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = DefaultDatabasePath()
	}
	if cfg.DeviceSalt == "" {
		cfg.DeviceSalt = defaultSalt
	}

	return cfg, nil
}

// NotificationsEndpoint returns the full ingestion/fetch endpoint URL.
func (c *Config) NotificationsEndpoint() string {
	return c.BaseURL + "/api/notifications"
}

// DefaultDatabasePath returns the standard location for the settings database.
func DefaultDatabasePath() string {
	return ExpandPath("~/.local/share/fin-guard/fin-guard.db")
}

// ExpandPath expands ~ and environment variables in a file path.
// It handles both ~ for home directory and $VAR style environment variables.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}
