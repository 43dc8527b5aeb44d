// SPDX-License-Identifier: MPL-2.0

package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/FARLEY-PIEDRAHITA-OROZCO/rebuild-api-football/internal/config"
	"github.com/FARLEY-PIEDRAHITA-OROZCO/rebuild-api-football/internal/launcher"
)

// affirmativeToken is the only answer that confirms a prompt; the
// comparison is case-insensitive and exact.
const affirmativeToken = "s"

// App wires the launcher services for one invocation. Command handlers
// receive an App and delegate through its dispatcher; tests supply a fake
// Runner underneath it.
type App struct {
	cfg    *config.Config
	disp   *launcher.Dispatcher
	stdin  *bufio.Reader
	stdout io.Writer
	stderr io.Writer
	logger *log.Logger
}

// NewApp builds an App from its dependencies.
func NewApp(cfg *config.Config, disp *launcher.Dispatcher, stdin io.Reader, stdout, stderr io.Writer, logger *log.Logger) *App {
	return &App{
		cfg:    cfg,
		disp:   disp,
		stdin:  bufio.NewReader(stdin),
		stdout: stdout,
		stderr: stderr,
		logger: logger,
	}
}

// readLine prompts and reads exactly one line. EOF yields the empty string.
func (a *App) readLine(prompt string) string {
	fmt.Fprint(a.stdout, prompt)
	line, _ := a.stdin.ReadString('\n')
	return strings.TrimSpace(line)
}

// confirm asks a yes/no question. With bypass set it returns affirmative
// without prompting. Anything but the affirmative token, including empty
// input, declines; a decline is reported as a warning and left to the
// caller to interpret.
func (a *App) confirm(message string, bypass bool) bool {
	if bypass {
		return true
	}
	answer := a.readLine(fmt.Sprintf("%s [%s/N]: ", message, affirmativeToken))
	if strings.EqualFold(answer, affirmativeToken) {
		return true
	}
	fmt.Fprintln(a.stderr, WarningStyle.Render("Operation not confirmed"))
	return false
}
