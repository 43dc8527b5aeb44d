// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"context"
	"fmt"

	"github.com/FARLEY-PIEDRAHITA-OROZCO/rebuild-api-football/internal/launcher"
)

// runMenu presents the interactive menu: exactly one prompt cycle. An
// unrecognized choice is terminal, not re-prompted.
func (a *App) runMenu(ctx context.Context) error {
	fmt.Fprintln(a.stdout, TitleStyle.Render("api-football launcher"))
	fmt.Fprintln(a.stdout, SubtitleStyle.Render("Select what to run:"))
	options := []string{
		"Run tests",
		"Process ALL leagues",
		fmt.Sprintf("Process %d leagues", a.cfg.DefaultLimit),
		"Process a specific league",
		"Show database statistics",
	}
	for i, opt := range options {
		fmt.Fprintf(a.stdout, "  %s %s\n", OptionStyle.Render(fmt.Sprintf("%d)", i+1)), opt)
	}

	choice := a.readLine("Option [1-5]: ")
	switch choice {
	case "1":
		return a.runTests(ctx, launcher.TestOptions{Report: a.promptReportKind()})
	case "2":
		// Confirmation is required here; a decline is swallowed, the menu
		// path ends successfully without launching anything.
		if !a.confirm(allLeaguesPrompt, false) {
			return nil
		}
		return childErr("process all leagues", a.disp.RunAll(ctx))
	case "3":
		return childErr("process leagues", a.disp.RunLimit(ctx, a.cfg.DefaultLimit))
	case "4":
		// No validation here: the child rejects malformed IDs itself.
		id := a.readLine("League ID: ")
		return childErr("process league", a.disp.RunLeague(ctx, id))
	case "5":
		return a.runStats(ctx)
	default:
		fmt.Fprintln(a.stderr, ErrorStyle.Render(fmt.Sprintf("Invalid option: %q", choice)))
		return &ExitError{Code: launcher.CodeFailure}
	}
}

// promptReportKind asks for the test report format. Any unrecognized
// answer defaults to plain output.
func (a *App) promptReportKind() launcher.ReportKind {
	if !a.cfg.Features.Reports {
		return launcher.ReportNone
	}
	answer := a.readLine("Report kind (1=plain, 2=html, 3=html-standalone): ")
	switch answer {
	case "2", "html":
		return launcher.ReportHTML
	case "3", "html-standalone":
		return launcher.ReportHTMLStandalone
	default:
		return launcher.ReportNone
	}
}
