package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromMissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("LoadFrom() failed on a missing file: %v", err)
	}

	defaults := DefaultConfig()
	if cfg.Port != defaults.Port {
		t.Errorf("Port = %q, want default %q", cfg.Port, defaults.Port)
	}
	if cfg.MaxConcurrent != defaults.MaxConcurrent {
		t.Errorf("MaxConcurrent = %d, want default %d", cfg.MaxConcurrent, defaults.MaxConcurrent)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := DefaultConfig()
	cfg.Port = "9090"
	cfg.MaxConcurrent = 8
	cfg.UploadsDir = "custom-uploads"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() failed: %v", err)
	}
	if loaded.Port != "9090" || loaded.MaxConcurrent != 8 || loaded.UploadsDir != "custom-uploads" {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}

func TestLoadSeedsConfigFile(t *testing.T) {
	// APPDATA redirects GetConfigPath into a scratch directory. An
	// ambient PORT would shadow the file value, so clear it.
	t.Setenv("APPDATA", t.TempDir())
	t.Setenv("PORT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Port != DefaultConfig().Port {
		t.Errorf("Port = %q, want default %q", cfg.Port, DefaultConfig().Port)
	}

	seeded := filepath.Join(os.Getenv("APPDATA"), "ResumeScreener", "config.json")
	if _, err := os.Stat(seeded); err != nil {
		t.Errorf("first run did not write a default config file: %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("MAX_CONCURRENT", "16")
	t.Setenv("USE_ORACLE", "true")
	t.Setenv("REPORTS_DIR", "archive")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("LoadFrom() failed: %v", err)
	}
	if cfg.Port != "7070" {
		t.Errorf("Port = %q, want env override %q", cfg.Port, "7070")
	}
	if cfg.MaxConcurrent != 16 {
		t.Errorf("MaxConcurrent = %d, want env override 16", cfg.MaxConcurrent)
	}
	if !cfg.UseOracle {
		t.Error("UseOracle = false, want env override true")
	}
	if cfg.ReportsDir != "archive" {
		t.Errorf("ReportsDir = %q, want env override %q", cfg.ReportsDir, "archive")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"missing uploads dir", func(c *Config) { c.UploadsDir = "" }, true},
		{"zero concurrency", func(c *Config) { c.MaxConcurrent = 0 }, true},
		{"oracle without project", func(c *Config) { c.UseOracle = true }, true},
		{"oracle with project", func(c *Config) {
			c.UseOracle = true
			c.GoogleCloudProject = "my-project"
		}, false},
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
