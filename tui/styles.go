// ABOUTME: Defines lipgloss style constants for the dashboard panels, outcome colors, and the status bar.
// ABOUTME: Provides StyleForLabel to map pie slice labels to their display styles.
package tui

import (
	"github.com/2389-research/launchdash/aggregate"
	"github.com/charmbracelet/lipgloss"
)

var (
	// Panel borders
	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	// Title styling
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))

	HeadingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)

	// Outcome colors
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	FailureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	MutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)

	// Table labels
	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(24)
	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
)

// siteColors cycles through distinct colors for per-site pie bars.
var siteColors = []lipgloss.Color{"75", "214", "42", "170", "203", "51", "227", "141"}

// StyleForLabel returns the bar style for a pie slice. Outcome slices use
// the success and failure colors; site slices cycle through siteColors by
// position.
func StyleForLabel(label string, index int) lipgloss.Style {
	switch label {
	case aggregate.LabelSuccess:
		return SuccessStyle
	case aggregate.LabelFailure:
		return FailureStyle
	default:
		return lipgloss.NewStyle().Foreground(siteColors[index%len(siteColors)])
	}
}
