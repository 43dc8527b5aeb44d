// SPDX-License-Identifier: MPL-2.0

// Package cli contains the launcher's command-line surface: the cobra
// root command, the interactive menu, the confirmation gate, and the
// mapping from the error taxonomy to process exit codes.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/FARLEY-PIEDRAHITA-OROZCO/rebuild-api-football/internal/config"
	"github.com/FARLEY-PIEDRAHITA-OROZCO/rebuild-api-football/internal/issue"
	"github.com/FARLEY-PIEDRAHITA-OROZCO/rebuild-api-football/internal/launcher"
	"github.com/FARLEY-PIEDRAHITA-OROZCO/rebuild-api-football/internal/pythonenv"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	flagTests   bool
	flagAll     bool
	flagYes     bool
	flagLimit   string
	flagLeague  string
	flagStats   bool
	flagReport  string
	flagNoSugar bool
	flagVerbose bool
	cfgFile     string

	// rootCmd is the whole CLI: one command, no subcommands. Without any
	// action flag it drops into the interactive menu.
	rootCmd = &cobra.Command{
		Use:   "apifootball",
		Short: "Launcher for the api_football data extraction module",
		Long: TitleStyle.Render("apifootball") + SubtitleStyle.Render(" - launcher for the api_football module") + `

Resolves the Python environment (interpreter, virtual environment,
application directory) and dispatches to the api_football module:
run its tests, process all or some leagues, or print database
statistics.

Several action flags may be combined in one invocation; they always
run in the order tests, all, limit, league, stats. With no flags at
all an interactive menu is shown.

` + SubtitleStyle.Render("Examples:") + `
  apifootball --tests --report html   Run tests with an HTML report
  apifootball --all --yes             Process every league, no prompt
  apifootball --limit 3               Process the first 3 leagues
  apifootball --league 39             Process one league by ID
  apifootball --stats                 Show database statistics`,
		Args: cobra.NoArgs,
		RunE: run,
	}
)

func init() {
	rootCmd.Flags().BoolVar(&flagTests, "tests", false, "run the module's test suite")
	rootCmd.Flags().BoolVar(&flagAll, "all", false, "process all leagues (asks for confirmation)")
	rootCmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "skip the confirmation prompt for --all")
	rootCmd.Flags().StringVar(&flagLimit, "limit", "", "process at most N leagues")
	rootCmd.Flags().StringVar(&flagLeague, "league", "", "process a single league by numeric ID")
	rootCmd.Flags().BoolVar(&flagStats, "stats", false, "print database statistics")
	rootCmd.Flags().StringVar(&flagReport, "report", "", "test report kind: html or html-standalone")
	rootCmd.Flags().BoolVar(&flagNoSugar, "no-sugar", false, "classic pytest output (disables the sugar plugin)")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose output")
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default is ./apifootball.cue)")

	// A bare --limit means "use the configured default_limit", which is
	// not known until config loading runs; buildPlan resolves the
	// substitution. normalizeLimitArgs folds a following value token into
	// --limit=VALUE form.
	rootCmd.Flags().Lookup("limit").NoOptDefVal = limitUseDefault

	// Unrecognized flags exit 2, not 1.
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		fmt.Fprintln(cmd.ErrOrStderr(), cmd.UsageString())
		return &ExitError{Code: launcher.CodeUsage, Err: err}
	})
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	rootCmd.SetArgs(normalizeLimitArgs(os.Args[1:]))

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// run is the single RunE handler. Help never reaches this point, so
// --help performs no configuration loading and no environment resolution.
func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return asExitError(err)
	}

	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Prefix: "apifootball",
	})
	if flagVerbose || cfg.UI.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	p, err := buildPlan(collectFlags(cmd), cfg)
	if err != nil {
		return asExitError(err)
	}

	env, err := resolveEnvironment(cmd.Context(), cfg, logger)
	if err != nil {
		var envErr *issue.EnvironmentError
		if errors.As(err, &envErr) {
			if hint := issue.Hint(envErr); hint != "" {
				fmt.Fprint(cmd.ErrOrStderr(), hint)
			}
		}
		return asExitError(err)
	}

	runner := launcher.NewExecRunner()
	runner.Stdin = cmd.InOrStdin()
	runner.Stdout = cmd.OutOrStdout()
	runner.Stderr = cmd.ErrOrStderr()

	disp := &launcher.Dispatcher{
		Runner:     runner,
		Python:     env.Python,
		Env:        env.Vars,
		Season:     cfg.Season,
		ReportsDir: cfg.ReportsDir,
		Stdout:     cmd.OutOrStdout(),
		Stderr:     cmd.ErrOrStderr(),
		Logger:     logger,
	}
	app := NewApp(cfg, disp, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), logger)

	if p.empty() {
		err = app.runMenu(cmd.Context())
	} else {
		err = app.executePlan(cmd.Context(), p)
	}
	if errors.Is(err, context.Canceled) || errors.Is(cmd.Context().Err(), context.Canceled) {
		fmt.Fprintln(cmd.ErrOrStderr(), WarningStyle.Render("Interrupted"))
		return &ExitError{Code: launcher.CodeInterrupt, Err: context.Canceled}
	}
	return asExitError(err)
}

// collectFlags snapshots the raw flag state for plan building.
func collectFlags(cmd *cobra.Command) flagValues {
	return flagValues{
		tests:     flagTests,
		all:       flagAll,
		yes:       flagYes,
		limitSet:  cmd.Flags().Changed("limit"),
		limit:     flagLimit,
		leagueSet: cmd.Flags().Changed("league"),
		league:    flagLeague,
		stats:     flagStats,
		reportSet: cmd.Flags().Changed("report"),
		report:    flagReport,
		noSugar:   flagNoSugar,
	}
}

// resolveEnvironment performs the sequential environment resolution:
// application directory, virtual environment marker, interpreter, version.
func resolveEnvironment(ctx context.Context, cfg *config.Config, logger *log.Logger) (*pythonenv.Env, error) {
	resolver := pythonenv.NewResolver()
	env, err := resolver.Resolve(ctx, pythonenv.Options{
		Override:     cfg.PythonBin,
		AppDir:       cfg.AppDir,
		ActivatePath: cfg.VenvActivate,
		MinVersion:   cfg.MinPython,
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("environment resolved",
		"python", env.Python,
		"version", env.Version,
		"virtualenv", env.VirtualEnv,
		"workdir", env.WorkDir)
	return env, nil
}
