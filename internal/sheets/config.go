// Package sheets pushes the sales report to a Google Sheets spreadsheet.
package sheets

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/jolucode/fin-guard/internal/config"
)

// Config holds the configuration for the Google Sheets writer.
type Config struct {
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	ServiceAccountPath string
	SpreadsheetID      string
	SpreadsheetName    string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		SpreadsheetName: "FinGuard Ventas",
	}
}

// LoadConfig resolves the Sheets configuration from Viper (config file or
// FINGUARD_ env vars).
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()

	if v := viper.GetString("sheets.service_account_path"); v != "" {
		cfg.ServiceAccountPath = config.ExpandPath(v)
	}
	cfg.ClientID = viper.GetString("sheets.client_id")
	cfg.ClientSecret = viper.GetString("sheets.client_secret")
	cfg.RefreshToken = viper.GetString("sheets.refresh_token")
	cfg.SpreadsheetID = viper.GetString("sheets.spreadsheet_id")
	if v := viper.GetString("sheets.spreadsheet_name"); v != "" {
		cfg.SpreadsheetName = v
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that at least one authentication method is configured.
func (c Config) Validate() error {
	if c.ServiceAccountPath == "" && (c.ClientID == "" || c.ClientSecret == "" || c.RefreshToken == "") {
		return fmt.Errorf("missing Google Sheets authentication: provide either sheets.service_account_path or OAuth2 credentials")
	}
	return nil
}
