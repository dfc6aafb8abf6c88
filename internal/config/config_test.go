// ABOUTME: Tests for vitral configuration management.
// ABOUTME: Covers load, save, env overlay, source inference, and path expansion.
package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/harperreed/vitral/internal/source"
)

func withConfigHome(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	return tmpDir
}

func TestGetBackendDefault(t *testing.T) {
	cfg := &Config{}
	if got := cfg.GetBackend(); got != BackendSQLite {
		t.Errorf("GetBackend() = %q, want %q", got, BackendSQLite)
	}
}

func TestGetBackendExplicit(t *testing.T) {
	cfg := &Config{Backend: "charm"}
	if got := cfg.GetBackend(); got != BackendCharm {
		t.Errorf("GetBackend() = %q, want %q", got, BackendCharm)
	}
}

func TestGetSourceInference(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"empty", Config{}, SourceLocal},
		{"database url", Config{DatabaseURL: "postgres://localhost/vitral"}, SourcePostgres},
		{"rest url wins", Config{DatabaseURL: "postgres://x", RESTURL: "https://x"}, SourceREST},
		{"explicit", Config{Source: SourceLocal, RESTURL: "https://x"}, SourceLocal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.GetSource(); got != tt.want {
				t.Errorf("GetSource() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetWindowDaysDefault(t *testing.T) {
	cfg := &Config{}
	if got := cfg.GetWindowDays(); got != source.DefaultWindowDays {
		t.Errorf("GetWindowDays() = %d, want %d", got, source.DefaultWindowDays)
	}
	cfg.WindowDays = 7
	if got := cfg.GetWindowDays(); got != 7 {
		t.Errorf("GetWindowDays() = %d, want 7", got)
	}
}

func TestUserUUID(t *testing.T) {
	cfg := &Config{}
	if _, err := cfg.UserUUID(); err != ErrNoUser {
		t.Errorf("UserUUID() err = %v, want ErrNoUser", err)
	}

	cfg.UserID = "not-a-uuid"
	if _, err := cfg.UserUUID(); err == nil {
		t.Error("expected error for malformed user id")
	}

	cfg.UserID = "36f40093-9629-442d-8e9f-5a4f00a371c0"
	id, err := cfg.UserUUID()
	if err != nil {
		t.Fatalf("UserUUID() failed: %v", err)
	}
	if id.String() != cfg.UserID {
		t.Errorf("UserUUID() = %s, want %s", id, cfg.UserID)
	}
}

func TestGetDataDirDefault(t *testing.T) {
	cfg := &Config{}

	// GetDataDir with empty DataDir should return storage.DataDir()
	got := cfg.GetDataDir()
	if got == "" {
		t.Error("GetDataDir() returned empty string")
	}
}

func TestGetDataDirExpandsTilde(t *testing.T) {
	home, _ := os.UserHomeDir()

	cfg := &Config{DataDir: "~/vitral-data"}
	got := cfg.GetDataDir()
	want := filepath.Join(home, "vitral-data")
	if got != want {
		t.Errorf("GetDataDir() = %q, want %q", got, want)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := map[string]string{
		"":              "",
		"/tmp/foo":      "/tmp/foo",
		"~":             home,
		"~/data/vitral": filepath.Join(home, "data/vitral"),
		"data/vitral":   "data/vitral",
	}
	for in, want := range tests {
		if got := ExpandPath(in); got != want {
			t.Errorf("ExpandPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLoadNonExistentConfig(t *testing.T) {
	withConfigHome(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with no config file should not error: %v", err)
	}
	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}
	if cfg.Backend != "" {
		t.Errorf("Expected empty Backend, got %q", cfg.Backend)
	}
}

func TestSaveAndLoad(t *testing.T) {
	withConfigHome(t)

	cfg := &Config{
		Source:     SourceREST,
		RESTURL:    "https://project.example.co",
		UserID:     "36f40093-9629-442d-8e9f-5a4f00a371c0",
		WindowDays: 14,
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if loaded.Source != SourceREST {
		t.Errorf("Source mismatch: got %q", loaded.Source)
	}
	if loaded.RESTURL != cfg.RESTURL {
		t.Errorf("RESTURL mismatch: got %q", loaded.RESTURL)
	}
	if loaded.WindowDays != 14 {
		t.Errorf("WindowDays mismatch: got %d", loaded.WindowDays)
	}
}

func TestLoadEnvOverlay(t *testing.T) {
	withConfigHome(t)

	cfg := &Config{Source: SourceREST, RESTURL: "https://file.example.co", WindowDays: 14}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	t.Setenv("VITRAL_REST_URL", "https://env.example.co")
	t.Setenv("VITRAL_WINDOW_DAYS", "7")

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if loaded.RESTURL != "https://env.example.co" {
		t.Errorf("RESTURL = %q, want env override", loaded.RESTURL)
	}
	if loaded.WindowDays != 7 {
		t.Errorf("WindowDays = %d, want 7", loaded.WindowDays)
	}
	if loaded.Source != SourceREST {
		t.Errorf("Source = %q, want file value kept", loaded.Source)
	}

	// The file itself is untouched by the overlay.
	fileOnly, err := LoadFile()
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if fileOnly.RESTURL != "https://file.example.co" {
		t.Errorf("LoadFile RESTURL = %q", fileOnly.RESTURL)
	}
}

func TestLoadEnvInvalidInt(t *testing.T) {
	withConfigHome(t)
	t.Setenv("VITRAL_WINDOW_DAYS", "a week")

	if _, err := Load(); err == nil {
		t.Error("expected error for non-numeric VITRAL_WINDOW_DAYS")
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "nonexistent"))

	cfg := &Config{Backend: BackendSQLite}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() should create directory: %v", err)
	}

	configDir := filepath.Join(tmpDir, "nonexistent", "vitral")
	if _, err := os.Stat(configDir); os.IsNotExist(err) {
		t.Error("Expected config directory to be created")
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	tmpDir := withConfigHome(t)

	configDir := filepath.Join(tmpDir, "vitral")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.json"), []byte("invalid json"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("Expected error for invalid JSON config")
	}
}

func TestGetConfigPath(t *testing.T) {
	tmpDir := withConfigHome(t)
	want := filepath.Join(tmpDir, "vitral", "config.json")
	if got := GetConfigPath(); got != want {
		t.Errorf("GetConfigPath() = %q, want %q", got, want)
	}
}

func TestGetAndSet(t *testing.T) {
	cfg := &Config{}
	for _, key := range Keys {
		if _, err := cfg.Get(key); err != nil {
			t.Errorf("Get(%q) failed: %v", key, err)
		}
	}

	if err := cfg.Set("window_days", "14"); err != nil {
		t.Fatalf("Set window_days: %v", err)
	}
	if got, _ := cfg.Get("window_days"); got != "14" {
		t.Errorf("window_days = %q, want 14", got)
	}
	if err := cfg.Set("window_days", "-3"); err == nil {
		t.Error("expected error for negative window_days")
	}
	if err := cfg.Set("backend", "markdown"); err == nil {
		t.Error("expected error for unknown backend")
	}
	if err := cfg.Set("user_id", "bogus"); err == nil {
		t.Error("expected error for malformed user id")
	}
	if _, err := cfg.Get("nope"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestOpenSourceLocal(t *testing.T) {
	cfg := &Config{Source: SourceLocal, DataDir: t.TempDir()}
	src, err := cfg.OpenSource(context.Background())
	if err != nil {
		t.Fatalf("OpenSource() failed: %v", err)
	}
	defer src.Close()
	if src.Name() != "local" {
		t.Errorf("Name() = %q, want local", src.Name())
	}
}

func TestOpenSourcePostgresNeedsURL(t *testing.T) {
	cfg := &Config{Source: SourcePostgres}
	if _, err := cfg.OpenSource(context.Background()); err == nil {
		t.Error("expected error without database_url")
	}
}

func TestOpenStorageUnknownBackend(t *testing.T) {
	cfg := &Config{Backend: "markdown"}
	if _, err := cfg.OpenStorage(); err == nil {
		t.Error("expected error for unknown backend")
	}
}
