// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/FARLEY-PIEDRAHITA-OROZCO/rebuild-api-football/internal/issue"
	"github.com/FARLEY-PIEDRAHITA-OROZCO/rebuild-api-football/internal/launcher"
)

// allLeaguesPrompt is the confirmation message for the full run.
const allLeaguesPrompt = "Process ALL leagues? This consumes the API quota and may take a long time"

// executePlan runs the requested actions in fixed order: tests, all,
// limit, league, stats. A failing action does not stop the ones after it;
// the first failure decides the exit code. When flag combination is
// disabled only the first requested action runs.
func (a *App) executePlan(ctx context.Context, p *plan) error {
	type step struct {
		name string
		run  func(context.Context) error
	}

	var steps []step
	if p.tests {
		steps = append(steps, step{"tests", func(ctx context.Context) error {
			return a.runTests(ctx, p.testOpts)
		}})
	}
	if p.all {
		steps = append(steps, step{"all", func(ctx context.Context) error {
			return a.runAll(ctx, p.bypass)
		}})
	}
	if p.runLimit {
		steps = append(steps, step{"limit", func(ctx context.Context) error {
			return childErr("process leagues", a.disp.RunLimit(ctx, p.limit))
		}})
	}
	if p.league != "" {
		steps = append(steps, step{"league", func(ctx context.Context) error {
			return childErr("process league", a.disp.RunLeague(ctx, p.league))
		}})
	}
	if p.stats {
		steps = append(steps, step{"stats", func(ctx context.Context) error {
			return a.runStats(ctx)
		}})
	}

	if !a.cfg.Features.CombineActions && len(steps) > 1 {
		a.logger.Debug("flag combination disabled, running first action only",
			"action", steps[0].name)
		steps = steps[:1]
	}

	var firstErr error
	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		a.logger.Debug("running action", "action", s.name)
		if err := s.run(ctx); err != nil {
			if isFatal(err) {
				return err
			}
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// runTests executes the test runner action.
func (a *App) runTests(ctx context.Context, opts launcher.TestOptions) error {
	result, err := a.disp.RunTests(ctx, opts)
	if err != nil {
		return err
	}
	return childErr("tests", result)
}

// runAll executes the full run behind the confirmation gate. Declining
// launches no child process and surfaces a non-fatal refusal.
func (a *App) runAll(ctx context.Context, bypass bool) error {
	if !a.confirm(allLeaguesPrompt, bypass) {
		return &issue.DeclinedError{Prompt: "process all leagues"}
	}
	return childErr("process all leagues", a.disp.RunAll(ctx))
}

// runStats executes the statistics action.
func (a *App) runStats(ctx context.Context) error {
	result, err := a.disp.RunStats(ctx)
	if err != nil {
		return err
	}
	return childErr("statistics", result)
}

// childErr translates a child process result into an error carrying its
// exit code, or nil on success.
func childErr(action string, r *launcher.Result) error {
	if r.Error != nil {
		return fmt.Errorf("%s: %w", action, r.Error)
	}
	if !r.ExitCode.IsSuccess() {
		return &issue.ChildProcessError{Action: action, Code: int(r.ExitCode)}
	}
	return nil
}

// isFatal reports whether an action error must abort the remaining
// actions. Child failures and declined confirmations are not fatal;
// unsupported options and interruption are.
func isFatal(err error) bool {
	if errors.Is(err, issue.ErrUnsupportedOption) {
		return true
	}
	if errors.Is(err, context.Canceled) {
		return true
	}
	return false
}

// asExitError maps the error taxonomy onto process exit codes: validation,
// environment and declined confirmations exit 1; unsupported options exit
// 2; interruption exits 130; child failures propagate the child's code.
func asExitError(err error) error {
	if err == nil {
		return nil
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}

	var cpe *issue.ChildProcessError
	switch {
	case errors.As(err, &cpe):
		return &ExitError{Code: launcher.ExitCode(cpe.Code), Err: err}
	case errors.Is(err, issue.ErrUnsupportedOption):
		return &ExitError{Code: launcher.CodeUsage, Err: err}
	case errors.Is(err, context.Canceled):
		return &ExitError{Code: launcher.CodeInterrupt, Err: err}
	default:
		return &ExitError{Code: launcher.CodeFailure, Err: err}
	}
}
