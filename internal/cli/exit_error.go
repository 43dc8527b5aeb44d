// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"fmt"

	"github.com/FARLEY-PIEDRAHITA-OROZCO/rebuild-api-football/internal/launcher"
)

// ExitError signals a specific exit code without forcing os.Exit in RunE handlers.
type ExitError struct {
	Code launcher.ExitCode
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}
