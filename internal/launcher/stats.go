// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/FARLEY-PIEDRAHITA-OROZCO/rebuild-api-football/internal/issue"
)

// statsScript is the inline statistics program. connect() returning False
// exits without calling close(); close() runs only on the success path.
const statsScript = `import json, sys
from api_football.db_manager import DatabaseManager
db = DatabaseManager()
if not db.connect():
    sys.stderr.write("could not connect to database\n")
    sys.exit(1)
print(json.dumps(db.get_statistics(), default=str))
db.close()`

// maxLeagueRows caps the rendered per-league breakdown.
const maxLeagueRows = 10

type (
	// Statistics is the aggregate shape produced by the database manager.
	Statistics struct {
		TotalMatches int           `json:"total_partidos"`
		TotalLeagues int           `json:"total_ligas"`
		PerLeague    []LeagueCount `json:"partidos_por_liga"`
	}

	// LeagueCount is one row of the per-league breakdown, ordered by the
	// database manager (most matches first).
	LeagueCount struct {
		Name  string      `json:"liga_nombre"`
		ID    json.Number `json:"_id"`
		Count int         `json:"count"`
	}
)

// RunStats runs the inline statistics script, decodes its JSON output and
// renders the aggregate counts. On child failure the captured error
// output is surfaced and no decoding is attempted.
func (d *Dispatcher) RunStats(ctx context.Context) (*Result, error) {
	result := d.run(ctx, []string{"-c", statsScript}, true)
	if !result.ExitCode.IsSuccess() || result.Error != nil {
		if result.ErrOutput != "" {
			fmt.Fprint(d.Stderr, result.ErrOutput)
		}
		return result, nil
	}

	stats, err := decodeStatistics(result.Output)
	if err != nil {
		return nil, err
	}
	renderStatistics(d.Stdout, stats)
	return result, nil
}

// decodeStatistics parses the single JSON object printed by the inline script.
func decodeStatistics(out string) (*Statistics, error) {
	var stats Statistics
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &stats); err != nil {
		return nil, &issue.EnvironmentError{
			Operation: "decode database statistics",
			Cause:     err,
		}
	}
	return &stats, nil
}

// renderStatistics prints the totals and the first 10 per-league rows,
// 1-indexed.
func renderStatistics(w io.Writer, stats *Statistics) {
	fmt.Fprintln(w, statsHeaderStyle.Render("Database statistics"))
	fmt.Fprintf(w, "  Total matches: %s\n", statsValueStyle.Render(fmt.Sprintf("%d", stats.TotalMatches)))
	fmt.Fprintf(w, "  Total leagues: %s\n", statsValueStyle.Render(fmt.Sprintf("%d", stats.TotalLeagues)))

	if len(stats.PerLeague) == 0 {
		return
	}

	fmt.Fprintln(w, statsHeaderStyle.Render("Matches per league"))
	rows := stats.PerLeague
	if len(rows) > maxLeagueRows {
		rows = rows[:maxLeagueRows]
	}
	for i, row := range rows {
		fmt.Fprintf(w, "  %2d. %s %s: %d\n",
			i+1, row.Name, statsMutedStyle.Render("(ID "+row.ID.String()+")"), row.Count)
	}
}
