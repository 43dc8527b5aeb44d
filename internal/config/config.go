// SPDX-License-Identifier: MPL-2.0

// Package config loads launcher configuration from defaults, an optional
// CUE config file, and environment variables via Viper. File contents are
// validated against an embedded CUE schema before use.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/spf13/viper"

	"github.com/FARLEY-PIEDRAHITA-OROZCO/rebuild-api-football/internal/issue"
)

const (
	// AppName is the application name, used for the config directory.
	AppName = "apifootball"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// localConfigFileName is the config file looked up in the invocation
	// directory before the user-level one.
	localConfigFileName = "apifootball.cue"

	// EnvPythonBin is the environment variable that overrides interpreter
	// detection. If set it must resolve to an executable.
	EnvPythonBin = "APIFOOTBALL_PYTHON"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the launcher configuration directory,
// $XDG_CONFIG_HOME/apifootball (defaulting to ~/.config/apifootball).
func ConfigDir() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, AppName), nil
}

// Load reads configuration. When path is non-empty that file is used
// exclusively and must exist; otherwise apifootball.cue in the current
// directory is tried, then config.cue in the user config directory, then
// defaults alone.
func Load(path string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("python_bin", defaults.PythonBin)
	v.SetDefault("app_dir", defaults.AppDir)
	v.SetDefault("venv_activate", defaults.VenvActivate)
	v.SetDefault("min_python", defaults.MinPython)
	v.SetDefault("default_limit", defaults.DefaultLimit)
	v.SetDefault("reports_dir", defaults.ReportsDir)
	v.SetDefault("season", defaults.Season)
	v.SetDefault("features.reports", defaults.Features.Reports)
	v.SetDefault("features.combine_actions", defaults.Features.CombineActions)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	if err := v.BindEnv("python_bin", EnvPythonBin); err != nil {
		return nil, fmt.Errorf("failed to bind environment: %w", err)
	}

	switch {
	case path != "":
		if !fileExists(path) {
			return nil, &issue.EnvironmentError{
				Operation: "load configuration",
				Resource:  path,
				Suggestions: []string{
					"Verify the file path is correct",
					"Check that the file exists and is readable",
				},
				Cause: fmt.Errorf("config file not found"),
			}
		}
		if err := loadCUEIntoViper(v, path); err != nil {
			return nil, wrapConfigLoad(path, err)
		}
	case fileExists(localConfigFileName):
		if err := loadCUEIntoViper(v, localConfigFileName); err != nil {
			return nil, wrapConfigLoad(localConfigFileName, err)
		}
	default:
		cfgDir, err := ConfigDir()
		if err != nil {
			return nil, err
		}
		cuePath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
		if fileExists(cuePath) {
			if err := loadCUEIntoViper(v, cuePath); err != nil {
				return nil, wrapConfigLoad(cuePath, err)
			}
		}
		// No config file found: defaults plus environment.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config
// schema, and merges its contents into Viper.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return fmt.Errorf("failed to parse %s: %w", path, userValue.Err())
	}

	// Unify with the schema to validate against the #Config definition.
	// Concrete(false) because all fields are optional.
	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return fmt.Errorf("invalid config in %s: %w", path, err)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return v.MergeConfigMap(configMap)
}

func wrapConfigLoad(path string, err error) error {
	return &issue.EnvironmentError{
		Operation: "load configuration",
		Resource:  path,
		Suggestions: []string{
			"Check that the file contains valid CUE syntax",
			"Verify the configuration values match the expected schema",
		},
		Cause: err,
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
