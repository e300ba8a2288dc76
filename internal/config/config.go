package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is the root configuration for ttc, stored in ~/.ttc/config.json.
// The file supports single-line // comments for documentation purposes.
// Environment variables (optionally loaded from a .env file) override the
// file: TTC_DATA_DIR, TTC_DEBOUNCE_MINUTES, TTC_TENANT_ID, TTC_CLIENT_ID,
// TTC_TIMEZONE.
type Config struct {
	// DataDir is the directory holding the per-clock *_data directories.
	// Empty means ~/.ttc.
	DataDir string `json:"data_dir"`
	// DebounceMinutes is the minimum gap between accepted clock events.
	DebounceMinutes int           `json:"debounce_minutes"`
	Outlook         OutlookConfig `json:"outlook"`
}

// OutlookConfig holds Microsoft Graph / Outlook calendar push settings.
type OutlookConfig struct {
	// TenantID is the Azure AD tenant. Use "common" for personal/multi-tenant accounts.
	TenantID string `json:"tenant_id"`
	// ClientID is the Azure app (client) ID for the OAuth2 device code flow.
	ClientID string `json:"client_id"`
	// Timezone is the IANA timezone sent with pushed events (e.g. "Europe/Berlin").
	// Empty = the machine's local timezone name.
	Timezone string `json:"timezone"`
}

const (
	// DefaultTenantID is the Microsoft "common" tenant (supports personal and
	// multi-tenant organisational accounts without additional registration).
	DefaultTenantID = "common"
	// DefaultClientID is the well-known public Azure CLI app ID. It supports
	// device code flow without a client secret and requires no app
	// registration. Replace with your own registered app ID for
	// organisational or production deployments.
	DefaultClientID = "04b07795-8542-4c4a-95af-30b2c573d5ab"
	// DefaultDebounceMinutes is the standard debounce window.
	DefaultDebounceMinutes = 5
)

// defaultConfig returns a Config pre-filled with sensible defaults.
func defaultConfig() Config {
	return Config{
		DebounceMinutes: DefaultDebounceMinutes,
		Outlook: OutlookConfig{
			TenantID: DefaultTenantID,
			ClientID: DefaultClientID,
		},
	}
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON parsing,
// allowing human-readable documentation inside the file.
const configTemplate = `// ttc configuration – ~/.ttc/config.json
//
// All settings are optional; the built-in defaults shown below work out of
// the box. Edit this file to customise ttc behaviour. Environment variables
// TTC_DATA_DIR, TTC_DEBOUNCE_MINUTES, TTC_TENANT_ID, TTC_CLIENT_ID and
// TTC_TIMEZONE override the values here.
{
  // Directory holding the per-clock event logs (<clock>_data/ directories).
  // Empty means ~/.ttc.
  "data_dir": "",

  // Toggles closer together than this many minutes are ignored. This lets
  // you toggle twice quickly just to read the report without recording a
  // session.
  "debounce_minutes": 5,

  // ── Microsoft Graph / Outlook calendar push ──────────────────────────────
  "outlook": {
    // Azure AD tenant ID.
    // • "common"  – personal Microsoft accounts and any organisation (default)
    // • Your organisation's tenant GUID, e.g. "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx"
    "tenant_id": "common",

    // Azure application (client) ID used for the OAuth2 device code flow.
    // The built-in value is the public Azure CLI app – no app registration needed.
    "client_id": "04b07795-8542-4c4a-95af-30b2c573d5ab",

    // IANA timezone attached to pushed calendar events, e.g. "Europe/Berlin".
    // Leave empty to use the machine's local timezone.
    "timezone": ""
  }
}
`

// configFilePath returns the path to ~/.ttc/config.json.
func configFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".ttc", "config.json"), nil
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load reads ~/.ttc/config.json, creating it with annotated defaults on
// first run, then applies environment overrides (a .env file in the working
// directory is honoured).
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := defaultConfig()

	path, err := configFilePath()
	if err != nil {
		return applyEnv(cfg), err
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
	case err != nil:
		return applyEnv(cfg), fmt.Errorf("reading config file %s: %w", path, err)
	default:
		cleaned := stripLineComments(data)
		if err := json.Unmarshal(cleaned, &cfg); err != nil {
			return applyEnv(defaultConfig()), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
		}
		// Fill zero-value fields with built-in defaults so callers always get
		// a usable Config even if the user only partially fills in the file.
		if cfg.DebounceMinutes <= 0 {
			cfg.DebounceMinutes = DefaultDebounceMinutes
		}
		if cfg.Outlook.TenantID == "" {
			cfg.Outlook.TenantID = DefaultTenantID
		}
		if cfg.Outlook.ClientID == "" {
			cfg.Outlook.ClientID = DefaultClientID
		}
	}

	return applyEnv(cfg), nil
}

// applyEnv layers TTC_* environment variables over cfg.
func applyEnv(cfg Config) Config {
	if v := os.Getenv("TTC_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("TTC_DEBOUNCE_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.DebounceMinutes = n
		} else {
			fmt.Fprintf(os.Stderr, "Warning: ignoring invalid TTC_DEBOUNCE_MINUTES=%q\n", v)
		}
	}
	if v := os.Getenv("TTC_TENANT_ID"); v != "" {
		cfg.Outlook.TenantID = v
	}
	if v := os.Getenv("TTC_CLIENT_ID"); v != "" {
		cfg.Outlook.ClientID = v
	}
	if v := os.Getenv("TTC_TIMEZONE"); v != "" {
		cfg.Outlook.Timezone = v
	}
	return cfg
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
