// ABOUTME: Renders a PieViewModel as labelled horizontal bars, one per slice, scaled to the largest count.
// ABOUTME: Shows share percentages so the terminal view carries the same information as the pie chart.
package tui

import (
	"fmt"
	"strings"

	"github.com/2389-research/launchdash/aggregate"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultBarWidth = 30
	barGlyph        = "█"
)

// PiePanelModel displays the site summary.
type PiePanelModel struct {
	vm       aggregate.PieViewModel
	barWidth int
}

// NewPiePanelModel creates an empty pie panel.
func NewPiePanelModel() PiePanelModel {
	return PiePanelModel{barWidth: defaultBarWidth}
}

// SetViewModel replaces the displayed summary.
func (m *PiePanelModel) SetViewModel(vm aggregate.PieViewModel) {
	m.vm = vm
}

// SetBarWidth sets the length of the longest bar in cells.
func (m *PiePanelModel) SetBarWidth(w int) {
	if w < 1 {
		w = 1
	}
	m.barWidth = w
}

// barLength scales count to the panel width relative to the largest slice.
func barLength(count, largest, width int) int {
	if largest <= 0 || count <= 0 {
		return 0
	}
	n := count * width / largest
	if n == 0 {
		n = 1
	}
	return n
}

// View renders the title and one bar per slice.
func (m PiePanelModel) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(m.vm.Title))
	b.WriteString("\n")

	total := m.vm.Total()
	if total == 0 {
		b.WriteString(MutedStyle.Render("No launches match the current filters"))
		return b.String()
	}

	largest := 0
	labelWidth := 0
	for _, s := range m.vm.Slices {
		if s.Count > largest {
			largest = s.Count
		}
		if w := lipgloss.Width(s.Label); w > labelWidth {
			labelWidth = w
		}
	}

	for i, s := range m.vm.Slices {
		bar := strings.Repeat(barGlyph, barLength(s.Count, largest, m.barWidth))
		pct := float64(s.Count) * 100 / float64(total)
		fmt.Fprintf(&b, "%-*s %s %d (%.1f%%)\n",
			labelWidth, s.Label, StyleForLabel(s.Label, i).Render(bar), s.Count, pct)
	}
	return strings.TrimRight(b.String(), "\n")
}
