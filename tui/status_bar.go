// ABOUTME: Implements a single-line status bar for the bottom of the terminal dashboard.
// ABOUTME: Displays the dataset source, the current site selection, the payload range, and the record count.
package tui

import (
	"fmt"

	"github.com/2389-research/launchdash/aggregate"
	"github.com/charmbracelet/lipgloss"
)

// StatusBarModel displays dataset and filter state in a single line.
type StatusBarModel struct {
	source  string
	records int
	filter  aggregate.FilterState
	width   int
}

// NewStatusBarModel creates a StatusBarModel for a dataset.
func NewStatusBarModel(source string, records int) StatusBarModel {
	return StatusBarModel{
		source:  source,
		records: records,
	}
}

// SetFilter updates the displayed filter state.
func (m *StatusBarModel) SetFilter(f aggregate.FilterState) {
	m.filter = f
}

// SetWidth sets the bar width for rendering.
func (m *StatusBarModel) SetWidth(w int) {
	m.width = w
}

// View renders the status bar as a single styled line.
func (m StatusBarModel) View() string {
	content := fmt.Sprintf("Source: %s | %d launches | Site: %s | Payload: %g–%g kg",
		m.source, m.records, m.filter.SiteLabel(), m.filter.Range.Low, m.filter.Range.High)

	if m.width <= 0 {
		return StatusBarStyle.Render(content)
	}
	style := StatusBarStyle.Width(m.width)
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Left, style.Render(content))
}
