// ABOUTME: Vitral configuration management with source and backend selection.
// ABOUTME: Loads the JSON config file, overlays VITRAL_* env vars, and opens sources.

package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/google/uuid"
	"github.com/harperreed/vitral/internal/charm"
	"github.com/harperreed/vitral/internal/source"
	"github.com/harperreed/vitral/internal/storage"
)

// Source kinds.
const (
	SourcePostgres = "postgres"
	SourceREST     = "rest"
	SourceLocal    = "local"
)

// Storage backends for the local mirror.
const (
	BackendSQLite = "sqlite"
	BackendCharm  = "charm"
)

// ErrNoUser is returned when no user id is configured.
var ErrNoUser = errors.New("no user id configured (set user_id or VITRAL_USER_ID)")

// Config stores vitral configuration.
type Config struct {
	// Source selects where records come from: "postgres", "rest" or "local".
	// Defaults to "rest" when a REST URL is set, else "postgres" when a
	// database URL is set, else "local".
	Source string `json:"source,omitempty" env:"VITRAL_SOURCE"`

	DatabaseURL string `json:"database_url,omitempty" env:"VITRAL_DATABASE_URL"`
	RESTURL     string `json:"rest_url,omitempty" env:"VITRAL_REST_URL"`
	APIKey      string `json:"api_key,omitempty" env:"VITRAL_API_KEY"`

	// UserID is the account whose records are shown.
	UserID string `json:"user_id,omitempty" env:"VITRAL_USER_ID"`

	// Backend selects the local mirror: "sqlite" (default) or "charm".
	Backend string `json:"backend,omitempty" env:"VITRAL_BACKEND"`

	// CharmHost is the Charm server for the charm backend.
	CharmHost string `json:"charm_host,omitempty" env:"VITRAL_CHARM_HOST"`

	// DataDir is the root directory for the SQLite mirror.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/vitral.
	DataDir string `json:"data_dir,omitempty" env:"VITRAL_DATA_DIR"`

	WindowDays int    `json:"window_days,omitempty" env:"VITRAL_WINDOW_DAYS"`
	LogLevel   string `json:"log_level,omitempty" env:"VITRAL_LOG_LEVEL"`
}

// Keys lists the settable config keys in display order.
var Keys = []string{
	"source", "database_url", "rest_url", "api_key", "user_id",
	"backend", "charm_host", "data_dir", "window_days", "log_level",
}

// GetSource returns the configured source kind, inferring it when unset.
func (c *Config) GetSource() string {
	switch {
	case c.Source != "":
		return c.Source
	case c.RESTURL != "":
		return SourceREST
	case c.DatabaseURL != "":
		return SourcePostgres
	default:
		return SourceLocal
	}
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return BackendSQLite
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetWindowDays returns the dashboard window, defaulting to 30 days.
func (c *Config) GetWindowDays() int {
	if c.WindowDays <= 0 {
		return source.DefaultWindowDays
	}
	return c.WindowDays
}

// GetLogLevel returns the configured log level, defaulting to "info".
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return "info"
	}
	return strings.ToLower(c.LogLevel)
}

// UserUUID parses the configured user id.
func (c *Config) UserUUID() (uuid.UUID, error) {
	if c.UserID == "" {
		return uuid.Nil, ErrNoUser
	}
	id, err := uuid.Parse(c.UserID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid user id %q: %w", c.UserID, err)
	}
	return id, nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage creates a Repository implementation based on the configured backend.
func (c *Config) OpenStorage() (storage.Repository, error) {
	switch backend := c.GetBackend(); backend {
	case BackendSQLite:
		return storage.Open(filepath.Join(c.GetDataDir(), storage.DefaultDBName))
	case BackendCharm:
		client, err := charm.InitClient(c.CharmHost)
		if err != nil {
			return nil, fmt.Errorf("open charm backend: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// OpenSource creates the configured record source.
func (c *Config) OpenSource(ctx context.Context) (source.Source, error) {
	switch kind := c.GetSource(); kind {
	case SourcePostgres:
		if c.DatabaseURL == "" {
			return nil, fmt.Errorf("postgres source needs database_url")
		}
		return source.NewPostgres(ctx, c.DatabaseURL)
	case SourceREST:
		return source.NewREST(c.RESTURL, c.APIKey)
	case SourceLocal:
		repo, err := c.OpenStorage()
		if err != nil {
			return nil, err
		}
		return source.NewLocal(repo), nil
	default:
		return nil, fmt.Errorf("unknown source: %q", kind)
	}
}

// Get returns the string form of a config key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "source":
		return c.Source, nil
	case "database_url":
		return c.DatabaseURL, nil
	case "rest_url":
		return c.RESTURL, nil
	case "api_key":
		return c.APIKey, nil
	case "user_id":
		return c.UserID, nil
	case "backend":
		return c.Backend, nil
	case "charm_host":
		return c.CharmHost, nil
	case "data_dir":
		return c.DataDir, nil
	case "window_days":
		if c.WindowDays == 0 {
			return "", nil
		}
		return fmt.Sprintf("%d", c.WindowDays), nil
	case "log_level":
		return c.LogLevel, nil
	default:
		return "", fmt.Errorf("unknown config key: %q", key)
	}
}

// Set assigns a config key from its string form.
func (c *Config) Set(key, value string) error {
	switch key {
	case "source":
		switch value {
		case "", SourcePostgres, SourceREST, SourceLocal:
		default:
			return fmt.Errorf("unknown source: %q", value)
		}
		c.Source = value
	case "database_url":
		c.DatabaseURL = value
	case "rest_url":
		c.RESTURL = value
	case "api_key":
		c.APIKey = value
	case "user_id":
		if value != "" {
			if _, err := uuid.Parse(value); err != nil {
				return fmt.Errorf("invalid user id %q: %w", value, err)
			}
		}
		c.UserID = value
	case "backend":
		switch value {
		case "", BackendSQLite, BackendCharm:
		default:
			return fmt.Errorf("unknown backend: %q", value)
		}
		c.Backend = value
	case "charm_host":
		c.CharmHost = value
	case "data_dir":
		c.DataDir = value
	case "window_days":
		var days int
		if value != "" {
			if _, err := fmt.Sscanf(value, "%d", &days); err != nil || days < 0 {
				return fmt.Errorf("invalid window_days %q", value)
			}
		}
		c.WindowDays = days
	case "log_level":
		c.LogLevel = value
	default:
		return fmt.Errorf("unknown config key: %q", key)
	}
	return nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "vitral", "config.json")
}

// LoadFile reads config from disk without the environment overlay.
func LoadFile() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads config from disk and overlays any VITRAL_* environment variables.
func Load() (*Config, error) {
	cfg, err := LoadFile()
	if err != nil {
		return nil, err
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
