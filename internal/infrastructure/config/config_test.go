package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeConfig writes a temporary config file and returns its path.
func writeConfig(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

// TestLoad verifies YAML parsing layered over the defaults.
func TestLoad(t *testing.T) {
	path := writeConfig(t, `
database:
  path: /var/lib/app/app.db
  wal_mode: false
  busy_timeout: 10
migrations:
  dir: ./schema
logging:
  level: debug
  format: text
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.Path != "/var/lib/app/app.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.Database.WALMode {
		t.Error("Database.WALMode = true, want false")
	}
	if cfg.Database.BusyTimeout != 10 {
		t.Errorf("Database.BusyTimeout = %d, want 10", cfg.Database.BusyTimeout)
	}
	if cfg.Migrations.Dir != "./schema" {
		t.Errorf("Migrations.Dir = %q", cfg.Migrations.Dir)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
	// Unset keys keep their defaults.
	if cfg.Logging.Output != "stdout" {
		t.Errorf("Logging.Output = %q, want stdout default", cfg.Logging.Output)
	}
}

// TestLoadDefaults verifies an empty file yields the full default set.
func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.Path != "./data/app.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if !cfg.Database.WALMode {
		t.Error("Database.WALMode = false, want true")
	}
	if cfg.Database.BusyTimeout != 5 {
		t.Errorf("Database.BusyTimeout = %d, want 5", cfg.Database.BusyTimeout)
	}
	if !cfg.Database.ForeignKeys {
		t.Error("Database.ForeignKeys = false, want true")
	}
	if cfg.Migrations.Dir != "" {
		t.Errorf("Migrations.Dir = %q, want empty (embedded migrations)", cfg.Migrations.Dir)
	}
}

// TestLoadMissingFile verifies a nonexistent config path fails.
func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() on a missing file should fail")
	}
}

// TestLoadInvalidYAML verifies parse failures surface.
func TestLoadInvalidYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "database: [not: a: mapping")); err == nil {
		t.Error("Load() on malformed YAML should fail")
	}
}

// TestEnvOverrides verifies environment variables win over file values.
func TestEnvOverrides(t *testing.T) {
	t.Setenv("SQLIFT_DATABASE_PATH", "/tmp/override.db")
	t.Setenv("SQLIFT_MIGRATIONS_DIR", "/tmp/schema")
	t.Setenv("SQLIFT_LOG_LEVEL", "error")

	cfg, err := Load(writeConfig(t, `
database:
  path: /var/lib/app/app.db
`))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.Path != "/tmp/override.db" {
		t.Errorf("Database.Path = %q, want env override", cfg.Database.Path)
	}
	if cfg.Migrations.Dir != "/tmp/schema" {
		t.Errorf("Migrations.Dir = %q, want env override", cfg.Migrations.Dir)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("Logging.Level = %q, want env override", cfg.Logging.Level)
	}
}

// TestValidate verifies each validation rule fires.
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "empty database path",
			mutate:  func(c *Config) { c.Database.Path = "" },
			wantErr: "database.path",
		},
		{
			name:    "negative busy timeout",
			mutate:  func(c *Config) { c.Database.BusyTimeout = -1 },
			wantErr: "busy_timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() should fail")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}

	t.Run("valid defaults", func(t *testing.T) {
		if err := defaultConfig().Validate(); err != nil {
			t.Errorf("Validate() error = %v", err)
		}
	})
}
