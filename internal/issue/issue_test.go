// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestEnvironmentError_Message(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *EnvironmentError
		want string
	}{
		{
			name: "operation only",
			err:  &EnvironmentError{Operation: "locate python interpreter"},
			want: "failed to locate python interpreter",
		},
		{
			name: "with resource",
			err:  &EnvironmentError{Operation: "change into application directory", Resource: "backend"},
			want: "failed to change into application directory: backend",
		},
		{
			name: "with detected version",
			err:  &EnvironmentError{Operation: "verify python version", Resource: "/usr/bin/python3", Detected: "3.6"},
			want: "failed to verify python version: /usr/bin/python3 (found 3.6)",
		},
		{
			name: "with cause",
			err:  &EnvironmentError{Operation: "activate virtual environment", Cause: errors.New("parse error")},
			want: "failed to activate virtual environment: parse error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSentinelClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"environment", &EnvironmentError{Operation: "x"}, ErrEnvironment},
		{"validation", &ValidationError{Flag: "limit", Value: "abc", Reason: "must be numeric"}, ErrValidation},
		{"unsupported option", &UnsupportedOptionError{Option: "report type", Value: "bogus"}, ErrUnsupportedOption},
		{"declined", &DeclinedError{Prompt: "process all leagues"}, ErrDeclined},
		{"child process", &ChildProcessError{Action: "tests", Code: 3}, ErrChildProcess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tt.err, tt.sentinel)
			}
		})
	}
}

func TestValidationError_Message(t *testing.T) {
	t.Parallel()

	err := &ValidationError{Flag: "league", Value: "abc", Reason: "must be a numeric ID"}
	want := `invalid value "abc" for --league: must be a numeric ID`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestChildProcessError_CarriesCode(t *testing.T) {
	t.Parallel()

	err := &ChildProcessError{Action: "process all leagues", Code: 7}
	var cpe *ChildProcessError
	if !errors.As(err, &cpe) {
		t.Fatal("errors.As failed")
	}
	if cpe.Code != 7 {
		t.Errorf("Code = %d, want 7", cpe.Code)
	}
}

func TestHint(t *testing.T) {
	t.Parallel()

	if got := Hint(nil); got != "" {
		t.Errorf("Hint(nil) = %q, want empty", got)
	}
	if got := Hint(&EnvironmentError{Operation: "x"}); got != "" {
		t.Errorf("Hint with no suggestions = %q, want empty", got)
	}
}

func TestHint_RendersSuggestions(t *testing.T) {
	orig := render
	defer func() { render = orig }()

	var captured string
	render = func(in, style string) (string, error) {
		captured = in
		return in, nil
	}

	err := &EnvironmentError{
		Operation:   "locate python interpreter",
		Suggestions: []string{"Install Python 3", "Set APIFOOTBALL_PYTHON to the interpreter path"},
	}
	out := Hint(err)
	if out == "" {
		t.Fatal("expected non-empty hint")
	}
	if !strings.Contains(captured, "Install Python 3") {
		t.Errorf("hint markdown missing suggestion: %q", captured)
	}
	if !strings.Contains(captured, "APIFOOTBALL_PYTHON") {
		t.Errorf("hint markdown missing suggestion: %q", captured)
	}
}
