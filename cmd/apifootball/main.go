// SPDX-License-Identifier: MPL-2.0

// Command apifootball launches the api_football Python module: it
// resolves the execution environment and dispatches to test runs, league
// processing, or database statistics.
package main

import "github.com/FARLEY-PIEDRAHITA-OROZCO/rebuild-api-football/internal/cli"

func main() {
	cli.Execute()
}
