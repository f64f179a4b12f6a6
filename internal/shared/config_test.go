package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Storage.Driver != DriverJSON {
			t.Errorf("expected storage driver json, got %s", config.Storage.Driver)
		}

		if config.Storage.Path != "library.json" {
			t.Errorf("expected storage path library.json, got %s", config.Storage.Path)
		}

		if config.Database.Path != "./shelf.db" {
			t.Errorf("expected database path ./shelf.db, got %s", config.Database.Path)
		}

		if config.Log.Level != "warn" {
			t.Errorf("expected log level warn, got %s", config.Log.Level)
		}

		if err := config.Validate(); err != nil {
			t.Errorf("default config should be valid: %v", err)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Storage.Path != defaultConfig.Storage.Path {
			t.Errorf("created config storage path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[storage]
driver = "sqlite"
path = "books.json"

[database]
path = "/custom/path.db"
max_open_conns = 2
max_idle_conns = 1

[log]
level = "debug"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Storage.Driver != DriverSQLite {
			t.Errorf("expected driver sqlite, got %s", config.Storage.Driver)
		}

		if config.StorePath() != "/custom/path.db" {
			t.Errorf("expected store path /custom/path.db, got %s", config.StorePath())
		}

		if config.Database.MaxOpenConns != 2 {
			t.Errorf("expected max_open_conns 2, got %d", config.Database.MaxOpenConns)
		}
	})

	t.Run("LoadConfig keeps defaults for missing keys", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[log]\nlevel = \"info\"\n"), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Storage.Path != "library.json" {
			t.Errorf("expected default storage path, got %s", config.Storage.Path)
		}
		if config.Log.Level != "info" {
			t.Errorf("expected log level info, got %s", config.Log.Level)
		}
	})

	t.Run("LoadConfig rejects unknown driver", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[storage]\ndriver = \"csv\"\n"), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
		if !errors.Is(err, ErrUnknownStore) {
			t.Errorf("expected ErrUnknownStore, got %v", err)
		}
	})

	t.Run("LoadConfig missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("SetStorePath", func(t *testing.T) {
		config := DefaultConfig()
		config.SetStorePath("other.json")
		if config.Storage.Path != "other.json" {
			t.Errorf("expected json path override, got %s", config.Storage.Path)
		}

		config.Storage.Driver = DriverSQLite
		config.SetStorePath("other.db")
		if config.Database.Path != "other.db" {
			t.Errorf("expected sqlite path override, got %s", config.Database.Path)
		}
		if config.Storage.Path != "other.json" {
			t.Errorf("json path should be untouched, got %s", config.Storage.Path)
		}
	})
}
