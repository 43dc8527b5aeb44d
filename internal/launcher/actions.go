// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/FARLEY-PIEDRAHITA-OROZCO/rebuild-api-football/internal/issue"
)

// Report kinds for the test runner output artifact.
const (
	// ReportNone produces plain terminal output.
	ReportNone ReportKind = ""
	// ReportHTML writes an HTML report under the reports directory.
	ReportHTML ReportKind = "html"
	// ReportHTMLStandalone writes a self-contained HTML report.
	ReportHTMLStandalone ReportKind = "html-standalone"
)

// reportFileName is the HTML report written under the reports directory.
const reportFileName = "test_report.html"

// mainModule is the data extraction entry point invoked as python -m.
const mainModule = "api_football.main"

// fallbackTestScript is the alternate test entry point used when the
// pytest runner fails.
const fallbackTestScript = "test_api_football.py"

type (
	// ReportKind is the format of the test-run output artifact.
	ReportKind string

	// TestOptions configures the test runner action.
	TestOptions struct {
		// Report selects the output artifact format. Validated here, at
		// execution time, not at flag parse time.
		Report ReportKind
		// NoSugar prepends the classic-output plugin flag (-p no:sugar).
		NoSugar bool
	}

	// Dispatcher builds argument vectors for the resolved interpreter and
	// runs them through a Runner. It is the only component that launches
	// child processes.
	Dispatcher struct {
		// Runner executes the composed commands.
		Runner Runner
		// Python is the resolved interpreter binary.
		Python string
		// Env is the environment overlay from virtual env activation.
		Env map[string]string
		// Season is forwarded to the extraction module on every run.
		Season int
		// ReportsDir is created on demand before HTML report paths are used.
		ReportsDir string
		// Stdout receives rendered statistics output.
		Stdout io.Writer
		// Stderr receives captured child error output on failures.
		Stderr io.Writer
		// Logger records composed argument vectors and fallbacks.
		Logger *log.Logger
	}
)

// Validate rejects report kinds other than html and html-standalone.
// Unknown kinds are accepted at parse time and fail here.
func (k ReportKind) Validate() error {
	switch k {
	case ReportNone, ReportHTML, ReportHTMLStandalone:
		return nil
	default:
		return &issue.UnsupportedOptionError{Option: "report type", Value: string(k)}
	}
}

// RunTests invokes the pytest runner, falling back once to the quick test
// script when the runner fails.
func (d *Dispatcher) RunTests(ctx context.Context, opts TestOptions) (*Result, error) {
	if err := opts.Report.Validate(); err != nil {
		return nil, err
	}

	args := []string{"-m", "pytest"}
	if opts.NoSugar {
		args = append(args, "-p", "no:sugar")
	}
	args = append(args, "tests/", "-q")

	if opts.Report != ReportNone {
		if err := os.MkdirAll(d.ReportsDir, 0o755); err != nil {
			return nil, &issue.EnvironmentError{
				Operation: "create reports directory",
				Resource:  d.ReportsDir,
				Cause:     err,
			}
		}
		args = append(args, "--html="+filepath.Join(d.ReportsDir, reportFileName))
		if opts.Report == ReportHTMLStandalone {
			args = append(args, "--self-contained-html")
		}
	}

	result := d.run(ctx, args, false)
	if result.ExitCode.IsSuccess() && result.Error == nil {
		return result, nil
	}
	if ctx.Err() != nil {
		// Interrupted, not failed: no fallback.
		return result, nil
	}

	d.Logger.Warn("test runner failed, falling back to quick test script",
		"exit_code", result.ExitCode, "script", fallbackTestScript)
	return d.run(ctx, []string{fallbackTestScript}, false), nil
}

// RunAll processes every league. The confirmation gate lives with the
// caller; by the time this runs the action is already approved.
func (d *Dispatcher) RunAll(ctx context.Context) *Result {
	return d.run(ctx, d.mainArgs(), false)
}

// RunLimit processes at most n leagues. n is pre-validated by the caller.
func (d *Dispatcher) RunLimit(ctx context.Context, n int) *Result {
	return d.run(ctx, append(d.mainArgs(), "--limit", strconv.Itoa(n)), false)
}

// RunLeague processes one league. The ID is passed through as given; the
// flag path pre-validates it and the interactive path lets the child
// reject malformed input.
func (d *Dispatcher) RunLeague(ctx context.Context, id string) *Result {
	return d.run(ctx, append(d.mainArgs(), "--league-id", id), false)
}

// mainArgs is the base argument vector for the extraction module.
func (d *Dispatcher) mainArgs() []string {
	args := []string{"-m", mainModule}
	if d.Season > 0 {
		args = append(args, "--season", strconv.Itoa(d.Season))
	}
	return args
}

// run composes and executes one child process invocation.
func (d *Dispatcher) run(ctx context.Context, args []string, capture bool) *Result {
	d.Logger.Debug("dispatching", "python", d.Python, "args", args)
	return d.Runner.Run(ctx, CommandSpec{
		Path:    d.Python,
		Args:    args,
		Env:     d.Env,
		Capture: capture,
	})
}
