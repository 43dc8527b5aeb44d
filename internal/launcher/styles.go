// SPDX-License-Identifier: MPL-2.0

package launcher

import "github.com/charmbracelet/lipgloss"

// Shared palette colors. The cli package builds its styles from the same
// constants so the hex values stay single-sourced.
const (
	// ColorHighlight is blue - used for emphasized values and interactive
	// elements.
	ColorHighlight = lipgloss.Color("#3B82F6")

	// ColorMuted is gray - used for secondary text and de-emphasized
	// content.
	ColorMuted = lipgloss.Color("#6B7280")
)

var (
	statsHeaderStyle = lipgloss.NewStyle().Bold(true)
	statsValueStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorHighlight)
	statsMutedStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
)
