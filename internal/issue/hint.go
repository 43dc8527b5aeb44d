// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// render is swapped out in tests.
var render = glamour.Render

// Hint formats an EnvironmentError's suggestions as a short markdown
// section rendered for the terminal. Returns the empty string when the
// error carries no suggestions or rendering fails.
func Hint(e *EnvironmentError) string {
	if e == nil || len(e.Suggestions) == 0 {
		return ""
	}

	var md strings.Builder
	md.WriteString("## Things you can try\n")
	for _, s := range e.Suggestions {
		md.WriteString("- ")
		md.WriteString(s)
		md.WriteString("\n")
	}

	out, err := render(md.String(), "auto")
	if err != nil {
		return ""
	}
	return out
}
