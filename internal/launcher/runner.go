// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
)

type (
	// CommandSpec describes one child process invocation: the interpreter
	// binary, its argument vector, and the environment overlay from the
	// resolved Python environment.
	CommandSpec struct {
		// Path is the binary to execute.
		Path string
		// Args are the arguments, not including the binary name.
		Args []string
		// Env is overlaid onto the inherited process environment.
		Env map[string]string
		// Capture collects stdout instead of streaming it.
		Capture bool
	}

	// Result is the outcome of one child process invocation.
	Result struct {
		// ExitCode is the child's exit status.
		ExitCode ExitCode
		// Output holds captured stdout when CommandSpec.Capture was set.
		Output string
		// ErrOutput holds captured stderr when CommandSpec.Capture was set.
		ErrOutput string
		// Error is set for infrastructure failures (binary missing,
		// context canceled), not for ordinary non-zero exits.
		Error error
	}

	// Runner executes child processes. The launcher blocks on every run;
	// there is deliberately no timeout, so a hung child hangs the launcher.
	Runner interface {
		Run(ctx context.Context, spec CommandSpec) *Result
	}

	// ExecRunner runs commands with os/exec, inheriting the launcher's
	// standard streams unless capture is requested.
	ExecRunner struct {
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}
)

// NewErrorResult creates a Result with the given exit code and error.
func NewErrorResult(code ExitCode, err error) *Result {
	return &Result{ExitCode: code, Error: err}
}

// NewSuccessResult creates a Result with exit code 0 and no error.
func NewSuccessResult() *Result {
	return &Result{}
}

// NewExecRunner creates an ExecRunner wired to the process streams.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run executes the child process and blocks until it exits, translating
// its exit status into a Result.
func (r *ExecRunner) Run(ctx context.Context, spec CommandSpec) *Result {
	cmd := exec.CommandContext(ctx, spec.Path, spec.Args...)
	cmd.Env = append(os.Environ(), envToSlice(spec.Env)...)

	var stdout, stderr bytes.Buffer
	if spec.Capture {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	} else {
		cmd.Stdin = r.Stdin
		cmd.Stdout = r.Stdout
		cmd.Stderr = r.Stderr
	}

	err := cmd.Run()
	result := &Result{
		Output:    stdout.String(),
		ErrOutput: stderr.String(),
	}

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			result.ExitCode = CodeInterrupt
			result.Error = ctxErr
			return result
		}
		if exitErr, ok := err.(*exec.ExitError); ok {
			code := ExitCode(exitErr.ExitCode())
			if ok, _ := code.IsValid(); !ok {
				// Signal-terminated children report -1.
				code = CodeFailure
			}
			result.ExitCode = code
			return result
		}
		result.ExitCode = CodeFailure
		result.Error = fmt.Errorf("failed to execute command: %w", err)
	}

	return result
}

// envToSlice converts an environment map to KEY=value form.
func envToSlice(env map[string]string) []string {
	if len(env) == 0 {
		return nil
	}
	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, k+"="+v)
	}
	return out
}
