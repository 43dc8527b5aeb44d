// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEnvironment is the sentinel wrapped by EnvironmentError.
	ErrEnvironment = errors.New("environment failure")
	// ErrValidation is the sentinel wrapped by ValidationError.
	ErrValidation = errors.New("invalid argument")
	// ErrUnsupportedOption is the sentinel wrapped by UnsupportedOptionError.
	ErrUnsupportedOption = errors.New("unsupported option")
	// ErrDeclined is the sentinel wrapped by DeclinedError.
	ErrDeclined = errors.New("confirmation declined")
	// ErrChildProcess is the sentinel wrapped by ChildProcessError.
	ErrChildProcess = errors.New("child process failed")
)

type (
	// EnvironmentError reports a failure to resolve the execution
	// environment: a missing interpreter, a version below the minimum,
	// or a missing application directory.
	EnvironmentError struct {
		// Operation describes what was being attempted (e.g., "locate python interpreter").
		Operation string
		// Resource identifies the path or entity involved (optional).
		Resource string
		// Detected carries the observed value when the failure is a
		// mismatch (e.g., the version string reported by the interpreter).
		Detected string
		// Suggestions provides hints on how to fix the issue (optional).
		Suggestions []string
		// Cause is the underlying error (optional).
		Cause error
	}

	// ValidationError reports a malformed command-line value, such as a
	// non-numeric or non-positive limit.
	ValidationError struct {
		// Flag is the option the value was supplied for (without dashes).
		Flag string
		// Value is the rejected input.
		Value string
		// Reason states the constraint that was violated.
		Reason string
	}

	// UnsupportedOptionError reports an option value the launcher does not
	// recognize, such as an unknown report kind.
	UnsupportedOptionError struct {
		Option string
		Value  string
	}

	// DeclinedError reports that the user answered a confirmation prompt
	// negatively. It is caller-visible but non-fatal: the caller decides
	// whether to abort or continue.
	DeclinedError struct {
		Prompt string
	}

	// ChildProcessError reports a non-zero exit from a delegated action.
	// The child's exit code becomes the launcher's exit code.
	ChildProcessError struct {
		Action string
		Code   int
	}
)

// Error implements the error interface.
func (e *EnvironmentError) Error() string {
	var msg strings.Builder
	msg.WriteString("failed to ")
	msg.WriteString(e.Operation)
	if e.Resource != "" {
		msg.WriteString(": ")
		msg.WriteString(e.Resource)
	}
	if e.Detected != "" {
		msg.WriteString(" (found ")
		msg.WriteString(e.Detected)
		msg.WriteString(")")
	}
	if e.Cause != nil {
		msg.WriteString(": ")
		msg.WriteString(e.Cause.Error())
	}
	return msg.String()
}

// Unwrap returns ErrEnvironment so callers can classify with errors.Is.
func (e *EnvironmentError) Unwrap() error { return ErrEnvironment }

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value %q for --%s: %s", e.Value, e.Flag, e.Reason)
}

// Unwrap returns ErrValidation so callers can classify with errors.Is.
func (e *ValidationError) Unwrap() error { return ErrValidation }

func (e *UnsupportedOptionError) Error() string {
	return fmt.Sprintf("unsupported %s: %q", e.Option, e.Value)
}

// Unwrap returns ErrUnsupportedOption so callers can classify with errors.Is.
func (e *UnsupportedOptionError) Unwrap() error { return ErrUnsupportedOption }

func (e *DeclinedError) Error() string {
	return fmt.Sprintf("declined: %s", e.Prompt)
}

// Unwrap returns ErrDeclined so callers can classify with errors.Is.
func (e *DeclinedError) Unwrap() error { return ErrDeclined }

func (e *ChildProcessError) Error() string {
	return fmt.Sprintf("%s exited with code %d", e.Action, e.Code)
}

// Unwrap returns ErrChildProcess so callers can classify with errors.Is.
func (e *ChildProcessError) Unwrap() error { return ErrChildProcess }
