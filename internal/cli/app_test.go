// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/FARLEY-PIEDRAHITA-OROZCO/rebuild-api-football/internal/config"
	"github.com/FARLEY-PIEDRAHITA-OROZCO/rebuild-api-football/internal/launcher"
)

// fakeRunner records every CommandSpec and replays canned results in order.
type fakeRunner struct {
	specs   []launcher.CommandSpec
	results []*launcher.Result
}

func (f *fakeRunner) Run(ctx context.Context, spec launcher.CommandSpec) *launcher.Result {
	f.specs = append(f.specs, spec)
	if len(f.results) > 0 {
		r := f.results[0]
		f.results = f.results[1:]
		return r
	}
	return launcher.NewSuccessResult()
}

// testApp builds an App over a fake runner, with canned stdin input and
// captured output streams.
func testApp(t *testing.T, cfg *config.Config, runner *fakeRunner, input string) (*App, *strings.Builder, *strings.Builder) {
	t.Helper()

	var out, errOut strings.Builder
	disp := &launcher.Dispatcher{
		Runner:     runner,
		Python:     "/usr/bin/python3",
		Env:        map[string]string{},
		Season:     2023,
		ReportsDir: filepath.Join(t.TempDir(), "reports"),
		Stdout:     &out,
		Stderr:     &errOut,
		Logger:     log.New(io.Discard),
	}
	app := NewApp(cfg, disp, strings.NewReader(input), &out, &errOut, log.New(io.Discard))
	return app, &out, &errOut
}

func TestConfirm_TokenMatrix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		answer string
		want   bool
	}{
		{"s\n", true},
		{"S\n", true},
		{"  s  \n", true},
		{"si\n", false},
		{"y\n", false},
		{"yes\n", false},
		{"n\n", false},
		{"\n", false},
		{"", false}, // EOF
	}

	for _, tt := range tests {
		t.Run("answer="+strings.TrimSpace(tt.answer), func(t *testing.T) {
			t.Parallel()
			app, _, errOut := testApp(t, config.DefaultConfig(), &fakeRunner{}, tt.answer)

			got := app.confirm("proceed", false)
			if got != tt.want {
				t.Errorf("confirm(%q) = %v, want %v", tt.answer, got, tt.want)
			}
			if !tt.want && !strings.Contains(errOut.String(), "not confirmed") {
				t.Error("decline was not reported as a warning")
			}
		})
	}
}

func TestConfirm_BypassSkipsPrompt(t *testing.T) {
	t.Parallel()

	// Empty stdin: a prompt read would decline, bypass must not read at all.
	app, out, _ := testApp(t, config.DefaultConfig(), &fakeRunner{}, "")

	if !app.confirm("proceed", true) {
		t.Error("bypass should confirm without prompting")
	}
	if out.Len() != 0 {
		t.Errorf("bypass wrote a prompt: %q", out.String())
	}
}
