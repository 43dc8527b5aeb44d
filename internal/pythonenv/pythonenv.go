// SPDX-License-Identifier: MPL-2.0

// Package pythonenv resolves the Python execution environment for the
// launcher: the application working directory, an optional virtual
// environment, the interpreter binary, and its version.
//
// Resolution is order-dependent: the directory change happens first
// (the activation marker path is relative to it), then the activation
// marker is applied, then the interpreter is located and version-gated.
package pythonenv

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/shell"

	"github.com/FARLEY-PIEDRAHITA-OROZCO/rebuild-api-football/internal/issue"
)

// probeNames are the conventional interpreter names tried in order when
// no override is set. First found wins.
var probeNames = []string{"python3", "python"}

// versionProbe prints the interpreter's major.minor version.
const versionProbe = `import sys; print("%d.%d" % sys.version_info[:2])`

type (
	// Env is the resolved execution environment. It is computed once and
	// threaded through as configuration; nothing mutates it afterwards.
	Env struct {
		// Python is the interpreter the launcher dispatches with.
		Python string
		// Version is the detected "major.minor" version string.
		Version string
		// VirtualEnv is the VIRTUAL_ENV root when activation applied,
		// empty otherwise.
		VirtualEnv string
		// Vars holds environment variables exported by the activation
		// script, overlaid onto the child process environment.
		Vars map[string]string
		// WorkDir is the application directory the launcher changed into.
		WorkDir string
	}

	// Options configures a resolution run.
	Options struct {
		// Override is an explicit interpreter path or name. If set it
		// must resolve to an executable, otherwise resolution fails
		// immediately.
		Override string
		// AppDir is the application directory to change into.
		AppDir string
		// ActivatePath is the virtual environment activation script,
		// relative to AppDir. Absence is skipped silently.
		ActivatePath string
		// MinVersion is the minimum accepted "major.minor" version.
		MinVersion string
	}

	// Resolver locates the Python environment. The function fields are
	// injection points; NewResolver fills them with production defaults
	// and tests supply fakes.
	Resolver struct {
		LookPath func(file string) (string, error)
		Chdir    func(dir string) error
		Source   func(ctx context.Context, path string) (map[string]expand.Variable, error)
		Probe    func(ctx context.Context, python string) (string, error)
	}
)

// NewResolver creates a Resolver with production defaults.
func NewResolver() *Resolver {
	return &Resolver{
		LookPath: exec.LookPath,
		Chdir:    os.Chdir,
		Source:   shell.SourceFile,
		Probe:    probeVersion,
	}
}

// Resolve performs the full environment resolution sequence.
func (r *Resolver) Resolve(ctx context.Context, opts Options) (*Env, error) {
	if err := r.Chdir(opts.AppDir); err != nil {
		return nil, &issue.EnvironmentError{
			Operation: "change into application directory",
			Resource:  opts.AppDir,
			Suggestions: []string{
				"Run the launcher from the repository root",
				"Set app_dir in the configuration file if the layout differs",
			},
			Cause: err,
		}
	}

	env := &Env{WorkDir: opts.AppDir, Vars: map[string]string{}}

	if opts.ActivatePath != "" {
		if err := r.applyActivation(ctx, opts.ActivatePath, env); err != nil {
			return nil, err
		}
	}

	python, err := r.locateInterpreter(opts.Override, env)
	if err != nil {
		return nil, err
	}
	env.Python = python

	version, err := r.Probe(ctx, env.Python)
	if err != nil {
		return nil, &issue.EnvironmentError{
			Operation: "detect python version",
			Resource:  env.Python,
			Cause:     err,
		}
	}
	env.Version = strings.TrimSpace(version)

	ok, err := versionAtLeast(env.Version, opts.MinVersion)
	if err != nil {
		return nil, &issue.EnvironmentError{
			Operation: "detect python version",
			Resource:  env.Python,
			Detected:  env.Version,
			Cause:     err,
		}
	}
	if !ok {
		return nil, &issue.EnvironmentError{
			Operation: "verify python version",
			Resource:  env.Python,
			Detected:  env.Version,
			Suggestions: []string{
				fmt.Sprintf("Install Python %s or newer", opts.MinVersion),
				"Point APIFOOTBALL_PYTHON at a newer interpreter",
			},
		}
	}

	return env, nil
}

// applyActivation sources the activation script and folds its exported
// variables into the environment. A missing marker file is not an error.
func (r *Resolver) applyActivation(ctx context.Context, path string, env *Env) error {
	if _, err := os.Stat(path); err != nil {
		return nil // no virtual environment, skip silently
	}

	vars, err := r.Source(ctx, path)
	if err != nil {
		return &issue.EnvironmentError{
			Operation: "activate virtual environment",
			Resource:  path,
			Cause:     err,
		}
	}

	for name, v := range vars {
		if !v.Exported {
			continue
		}
		env.Vars[name] = v.String()
	}
	env.VirtualEnv = env.Vars["VIRTUAL_ENV"]
	return nil
}

// locateInterpreter resolves the interpreter binary. An activated virtual
// environment reassigns the interpreter to its local one; otherwise the
// override is honored, then the conventional names are probed in order.
func (r *Resolver) locateInterpreter(override string, env *Env) (string, error) {
	var resolved string

	if override != "" {
		path, err := r.resolveExecutable(override)
		if err != nil {
			return "", &issue.EnvironmentError{
				Operation: "locate python interpreter",
				Resource:  override,
				Suggestions: []string{
					"Check the interpreter override points at an executable",
				},
				Cause: err,
			}
		}
		resolved = path
	} else {
		for _, name := range probeNames {
			if path, err := r.LookPath(name); err == nil {
				resolved = path
				break
			}
		}
		if resolved == "" {
			return "", &issue.EnvironmentError{
				Operation: "locate python interpreter",
				Resource:  strings.Join(probeNames, ", "),
				Suggestions: []string{
					"Install Python 3 and ensure it is on PATH",
					"Set APIFOOTBALL_PYTHON to the interpreter path",
				},
			}
		}
	}

	if env.VirtualEnv != "" {
		for _, name := range probeNames {
			candidate := filepath.Join(env.VirtualEnv, "bin", name)
			if isExecutable(candidate) {
				return candidate, nil
			}
		}
	}

	return resolved, nil
}

// resolveExecutable resolves an override to an executable path. Names
// without a path separator go through PATH lookup.
func (r *Resolver) resolveExecutable(override string) (string, error) {
	if !strings.ContainsRune(override, os.PathSeparator) {
		return r.LookPath(override)
	}
	if !isExecutable(override) {
		return "", fmt.Errorf("not an executable file")
	}
	return override, nil
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir() && info.Mode().Perm()&0o111 != 0
}

// probeVersion asks the interpreter for its major.minor version.
func probeVersion(ctx context.Context, python string) (string, error) {
	out, err := exec.CommandContext(ctx, python, "-c", versionProbe).Output()
	if err != nil {
		return "", fmt.Errorf("failed to run version probe: %w", err)
	}
	return string(out), nil
}

// versionAtLeast reports whether detected >= minimum, both "major.minor".
func versionAtLeast(detected, minimum string) (bool, error) {
	dMaj, dMin, err := parseVersion(detected)
	if err != nil {
		return false, err
	}
	mMaj, mMin, err := parseVersion(minimum)
	if err != nil {
		return false, err
	}
	if dMaj != mMaj {
		return dMaj > mMaj, nil
	}
	return dMin >= mMin, nil
}

func parseVersion(s string) (major, minor int, err error) {
	parts := strings.SplitN(strings.TrimSpace(s), ".", 3)
	if len(parts) < 2 {
		return 0, 0, fmt.Errorf("malformed version %q", s)
	}
	major, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed version %q", s)
	}
	minor, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed version %q", s)
	}
	return major, minor, nil
}
