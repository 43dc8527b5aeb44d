// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"regexp"
	"strings"
)

// versionPattern matches a major.minor version string such as "3.8".
var versionPattern = regexp.MustCompile(`^[0-9]+\.[0-9]+$`)

type (
	// Config holds all launcher settings. Values come from defaults, an
	// optional CUE config file, and environment variables, in that order
	// of precedence (lowest to highest).
	Config struct {
		// PythonBin overrides interpreter detection. Empty means probe
		// python3 then python on PATH. Bound to APIFOOTBALL_PYTHON.
		PythonBin string `mapstructure:"python_bin"`
		// AppDir is the application directory the launcher changes into
		// before anything else.
		AppDir string `mapstructure:"app_dir"`
		// VenvActivate is the virtual environment activation script,
		// relative to AppDir. Absence is not an error.
		VenvActivate string `mapstructure:"venv_activate"`
		// MinPython is the minimum interpreter version as "major.minor".
		MinPython string `mapstructure:"min_python"`
		// DefaultLimit is the league count used when --limit carries no
		// value and by the interactive limited-run option.
		DefaultLimit int `mapstructure:"default_limit"`
		// ReportsDir is where HTML test reports are written. Created on
		// demand, relative to AppDir.
		ReportsDir string `mapstructure:"reports_dir"`
		// Season is forwarded to the data extraction module.
		Season int `mapstructure:"season"`
		// Features toggles the behaviors that differed between the two
		// historical launcher variants.
		Features FeaturesConfig `mapstructure:"features"`
		// UI holds terminal output settings.
		UI UIConfig `mapstructure:"ui"`
	}

	// FeaturesConfig selects which launcher generation to behave as.
	FeaturesConfig struct {
		// Reports enables the --report flag and HTML test reports.
		Reports bool `mapstructure:"reports"`
		// CombineActions allows several action flags in one invocation,
		// executed in fixed order. When false only the first requested
		// action (in that same order) runs.
		CombineActions bool `mapstructure:"combine_actions"`
	}

	// UIConfig holds terminal output settings.
	UIConfig struct {
		// Verbose enables debug logging.
		Verbose bool `mapstructure:"verbose"`
	}
)

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		AppDir:       "backend",
		VenvActivate: "venv/bin/activate",
		MinPython:    "3.8",
		DefaultLimit: 5,
		ReportsDir:   "reports",
		Season:       2023,
		Features: FeaturesConfig{
			Reports:        true,
			CombineActions: true,
		},
	}
}

// Validate checks constraints the CUE schema cannot express for values
// that may also arrive via environment variables.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.AppDir) == "" {
		return fmt.Errorf("app_dir must not be empty")
	}
	if c.DefaultLimit <= 0 {
		return fmt.Errorf("default_limit must be positive, got %d", c.DefaultLimit)
	}
	if !versionPattern.MatchString(c.MinPython) {
		return fmt.Errorf("min_python must be major.minor, got %q", c.MinPython)
	}
	return nil
}
