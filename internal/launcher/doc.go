// SPDX-License-Identifier: MPL-2.0

// Package launcher dispatches the five launcher actions (tests, all
// leagues, limited run, specific league, statistics) as Python child
// processes and propagates their exit status. Every action blocks on a
// single invocation; there is no retry, no timeout, and no parallelism.
package launcher
