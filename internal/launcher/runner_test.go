// SPDX-License-Identifier: MPL-2.0

package launcher

import (
	"context"
	"runtime"
	"sort"
	"strings"
	"testing"
)

func TestExecRunner_ExitCodePropagation(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	r := NewExecRunner()
	result := r.Run(context.Background(), CommandSpec{
		Path:    "sh",
		Args:    []string{"-c", "exit 7"},
		Capture: true,
	})

	if result.ExitCode != 7 {
		t.Errorf("ExitCode = %v, want 7", result.ExitCode)
	}
	if result.Error != nil {
		t.Errorf("non-zero exit is not an infrastructure error, got %v", result.Error)
	}
}

func TestExecRunner_CapturesOutput(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	r := NewExecRunner()
	result := r.Run(context.Background(), CommandSpec{
		Path:    "sh",
		Args:    []string{"-c", "echo out; echo err >&2"},
		Capture: true,
	})

	if !result.ExitCode.IsSuccess() {
		t.Fatalf("ExitCode = %v, want success", result.ExitCode)
	}
	if strings.TrimSpace(result.Output) != "out" {
		t.Errorf("Output = %q, want %q", result.Output, "out")
	}
	if strings.TrimSpace(result.ErrOutput) != "err" {
		t.Errorf("ErrOutput = %q, want %q", result.ErrOutput, "err")
	}
}

func TestExecRunner_MissingBinary(t *testing.T) {
	t.Parallel()

	r := NewExecRunner()
	result := r.Run(context.Background(), CommandSpec{
		Path:    "definitely-not-a-real-binary-1b8f",
		Capture: true,
	})

	if result.Error == nil {
		t.Error("expected infrastructure error for missing binary")
	}
	if result.ExitCode.IsSuccess() {
		t.Errorf("ExitCode = %v, want failure", result.ExitCode)
	}
}

func TestExecRunner_EnvOverlay(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	r := NewExecRunner()
	result := r.Run(context.Background(), CommandSpec{
		Path:    "sh",
		Args:    []string{"-c", "printf %s \"$VIRTUAL_ENV\""},
		Env:     map[string]string{"VIRTUAL_ENV": "/srv/venv"},
		Capture: true,
	})

	if result.Output != "/srv/venv" {
		t.Errorf("Output = %q, want overlaid variable", result.Output)
	}
}

func TestEnvToSlice(t *testing.T) {
	t.Parallel()

	if got := envToSlice(nil); got != nil {
		t.Errorf("envToSlice(nil) = %v, want nil", got)
	}

	got := envToSlice(map[string]string{"A": "1", "B": "2"})
	sort.Strings(got)
	if len(got) != 2 || got[0] != "A=1" || got[1] != "B=2" {
		t.Errorf("envToSlice = %v", got)
	}
}
