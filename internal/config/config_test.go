package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != 1 {
		t.Errorf("expected version 1, got %d", cfg.Version)
	}
	if cfg.Storage.Backend != BackendJSON {
		t.Errorf("expected json backend, got %s", cfg.Storage.Backend)
	}
	if cfg.Storage.Path != "./grades.json" {
		t.Errorf("expected ./grades.json, got %s", cfg.Storage.Path)
	}
	if cfg.Grades.Min != 0 || cfg.Grades.Max != 100 {
		t.Errorf("expected range [0, 100], got [%v, %v]", cfg.Grades.Min, cfg.Grades.Max)
	}
	if !cfg.Grades.ValidateScores() {
		t.Error("expected validation enabled by default")
	}
	if cfg.Output.Color != "auto" {
		t.Errorf("expected color auto, got %s", cfg.Output.Color)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestApplyDefaultsSQLitePath(t *testing.T) {
	cfg := &Config{Storage: StorageConfig{Backend: BackendSQLite}}
	cfg.applyDefaults()

	if cfg.Storage.Path != "./grades.db" {
		t.Errorf("expected sqlite default path ./grades.db, got %s", cfg.Storage.Path)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "redis" }, true},
		{"inverted range", func(c *Config) { c.Grades.Min = 100; c.Grades.Max = 50 }, true},
		{"bad color", func(c *Config) { c.Output.Color = "rainbow" }, true},
		{"always color", func(c *Config) { c.Output.Color = "always" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCheckScore(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.CheckScore(85); err != nil {
		t.Errorf("expected 85 to pass: %v", err)
	}
	if err := cfg.CheckScore(101); err == nil {
		t.Error("expected 101 to fail")
	}
	if err := cfg.CheckScore(-1); err == nil {
		t.Error("expected -1 to fail")
	}

	disabled := false
	cfg.Grades.Validate = &disabled
	if err := cfg.CheckScore(250); err != nil {
		t.Errorf("expected validation to be disabled: %v", err)
	}
}

func TestLoadFromPath(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		content := `version: 1
storage:
  backend: sqlite
  path: /tmp/grades.db
grades:
  min: 0
  max: 20
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, from, err := LoadFromPath(path)
		if err != nil {
			t.Fatalf("LoadFromPath: %v", err)
		}
		if from != path {
			t.Errorf("expected source path %s, got %s", path, from)
		}
		if cfg.Storage.Backend != BackendSQLite {
			t.Errorf("expected sqlite, got %s", cfg.Storage.Backend)
		}
		if cfg.Grades.Max != 20 {
			t.Errorf("expected max 20, got %v", cfg.Grades.Max)
		}
		if cfg.Output.Color != "auto" {
			t.Error("expected defaults applied to omitted sections")
		}
	})

	t.Run("malformed file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		if err := os.WriteFile(path, []byte("storage: [broken"), 0644); err != nil {
			t.Fatal(err)
		}

		if _, _, err := LoadFromPath(path); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, _, err := LoadFromPath("/nonexistent/config.yaml"); err == nil {
			t.Error("expected read error")
		}
	})
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Storage.Backend = BackendSQLite
	cfg.Storage.Path = "/tmp/x.db"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded, _, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Storage.Backend != BackendSQLite {
		t.Errorf("expected sqlite after reload, got %s", reloaded.Storage.Backend)
	}
}

func TestFindConfigPathEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("version: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvConfigPath, path)
	// Isolate from any real user config.
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)

	if got := FindConfigPath(); got != path {
		t.Errorf("expected %s, got %s", path, got)
	}
}
