// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/FARLEY-PIEDRAHITA-OROZCO/rebuild-api-football/internal/config"
	"github.com/FARLEY-PIEDRAHITA-OROZCO/rebuild-api-football/internal/issue"
	"github.com/FARLEY-PIEDRAHITA-OROZCO/rebuild-api-football/internal/launcher"
)

// numericPattern is the only accepted shape for limits and league IDs.
var numericPattern = regexp.MustCompile(`^[0-9]+$`)

// limitUseDefault is what pflag substitutes for a bare --limit. The
// configured default_limit is only known after config loading, so the
// substitution is resolved in buildPlan rather than frozen at flag
// registration.
const limitUseDefault = "default"

type (
	// flagValues captures the raw flag state of one invocation, before
	// validation. Values are only meaningful when the matching set flag
	// is true.
	flagValues struct {
		tests     bool
		all       bool
		yes       bool
		limitSet  bool
		limit     string
		leagueSet bool
		league    string
		stats     bool
		reportSet bool
		report    string
		noSugar   bool
	}

	// plan is the validated set of requested actions for one run. Actions
	// execute in fixed order (tests, all, limit, league, stats) regardless
	// of the order flags appeared in.
	plan struct {
		tests    bool
		testOpts launcher.TestOptions
		all      bool
		bypass   bool
		runLimit bool
		limit    int
		league   string
		stats    bool
	}
)

// empty reports whether no action was requested, which selects the
// interactive menu.
func (p *plan) empty() bool {
	return !p.tests && !p.all && !p.runLimit && p.league == "" && !p.stats
}

// buildPlan validates raw flag values into a plan. Numeric validation
// happens here, before any child process starts; report kinds are
// deliberately passed through and validated at execution time.
func buildPlan(v flagValues, cfg *config.Config) (*plan, error) {
	p := &plan{
		tests:  v.tests,
		all:    v.all,
		bypass: v.yes,
		stats:  v.stats,
	}

	if v.reportSet && !cfg.Features.Reports {
		return nil, &issue.UnsupportedOptionError{Option: "option", Value: "--report"}
	}
	p.testOpts = launcher.TestOptions{
		Report:  launcher.ReportKind(v.report),
		NoSugar: v.noSugar,
	}

	if v.limitSet {
		if v.limit == limitUseDefault {
			p.runLimit = true
			p.limit = cfg.DefaultLimit
		} else {
			n, err := parsePositiveInt("limit", v.limit)
			if err != nil {
				return nil, err
			}
			p.runLimit = true
			p.limit = n
		}
	}

	if v.leagueSet {
		id := strings.TrimSpace(v.league)
		if !numericPattern.MatchString(id) {
			return nil, &issue.ValidationError{
				Flag:   "league",
				Value:  v.league,
				Reason: "must be a numeric league ID",
			}
		}
		p.league = id
	}

	return p, nil
}

// parsePositiveInt validates a numeric flag value per the launcher's
// contract: digits only, strictly positive.
func parsePositiveInt(flag, value string) (int, error) {
	if !numericPattern.MatchString(value) {
		return 0, &issue.ValidationError{
			Flag:   flag,
			Value:  value,
			Reason: "must be a positive integer",
		}
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, &issue.ValidationError{
			Flag:   flag,
			Value:  value,
			Reason: "must be a positive integer",
		}
	}
	return n, nil
}

// normalizeLimitArgs rewrites "--limit VALUE" into "--limit=VALUE" so the
// flag can keep its no-value default. The lookahead is explicit: a next
// token that is itself a flag (or absent) means no value was supplied and
// the default applies; any other token is consumed as the value, malformed
// or not.
func normalizeLimitArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		out = append(out, arg)
		if arg != "--limit" {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out[len(out)-1] = "--limit=" + args[i+1]
			i++
		}
	}
	return out
}
