// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/FARLEY-PIEDRAHITA-OROZCO/rebuild-api-football/internal/issue"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.AppDir != "backend" {
		t.Errorf("AppDir = %q, want %q", cfg.AppDir, "backend")
	}
	if cfg.DefaultLimit != 5 {
		t.Errorf("DefaultLimit = %d, want 5", cfg.DefaultLimit)
	}
	if cfg.MinPython != "3.8" {
		t.Errorf("MinPython = %q, want %q", cfg.MinPython, "3.8")
	}
	if cfg.VenvActivate != "venv/bin/activate" {
		t.Errorf("VenvActivate = %q, want %q", cfg.VenvActivate, "venv/bin/activate")
	}
	if !cfg.Features.Reports || !cfg.Features.CombineActions {
		t.Error("expected both feature toggles on by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"empty app dir", func(c *Config) { c.AppDir = "  " }, "app_dir"},
		{"zero limit", func(c *Config) { c.DefaultLimit = 0 }, "default_limit"},
		{"negative limit", func(c *Config) { c.DefaultLimit = -3 }, "default_limit"},
		{"bad version", func(c *Config) { c.MinPython = "three.eight" }, "min_python"},
		{"version missing minor", func(c *Config) { c.MinPython = "3" }, "min_python"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.AppDir != "backend" || cfg.DefaultLimit != 5 {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.cue"))
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
	if !errors.Is(err, issue.ErrEnvironment) {
		t.Errorf("expected environment error, got %v", err)
	}
}

func TestLoad_LocalFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	content := "app_dir: \"srv\"\ndefault_limit: 9\nfeatures: combine_actions: false\n"
	if err := os.WriteFile(filepath.Join(dir, "apifootball.cue"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.AppDir != "srv" {
		t.Errorf("AppDir = %q, want %q", cfg.AppDir, "srv")
	}
	if cfg.DefaultLimit != 9 {
		t.Errorf("DefaultLimit = %d, want 9", cfg.DefaultLimit)
	}
	if cfg.Features.CombineActions {
		t.Error("expected combine_actions off")
	}
	// Untouched keys keep their defaults.
	if cfg.MinPython != "3.8" {
		t.Errorf("MinPython = %q, want default", cfg.MinPython)
	}
}

func TestLoad_SchemaRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"limit zero", "default_limit: 0\n"},
		{"limit wrong type", "default_limit: \"five\"\n"},
		{"unknown field", "defualt_limit: 5\n"},
		{"bad min_python", "min_python: \"3\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "apifootball.cue")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Errorf("expected schema rejection for %q", tt.content)
			}
		})
	}
}

func TestLoad_EnvOverridesPythonBin(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(EnvPythonBin, "/opt/python/bin/python3")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.PythonBin != "/opt/python/bin/python3" {
		t.Errorf("PythonBin = %q, want env override", cfg.PythonBin)
	}
}
