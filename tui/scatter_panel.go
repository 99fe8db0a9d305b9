// ABOUTME: Summarizes a ScatterViewModel as a per-booster-category table of successes and failures.
// ABOUTME: Categories appear in first-seen order, matching the series order of the SVG scatter chart.
package tui

import (
	"fmt"
	"strings"

	"github.com/2389-research/launchdash/aggregate"
)

// CategoryRow is one line of the scatter summary table.
type CategoryRow struct {
	Category string
	Success  int
	Failure  int
	MinKg    float64
	MaxKg    float64
}

// Total returns the number of launches in the row.
func (r CategoryRow) Total() int {
	return r.Success + r.Failure
}

// SummarizeScatter groups the scatter points by booster version category.
func SummarizeScatter(vm aggregate.ScatterViewModel) []CategoryRow {
	var rows []CategoryRow
	index := make(map[string]int)
	for _, p := range vm.Points {
		i, ok := index[p.BoosterVersionCategory]
		if !ok {
			i = len(rows)
			index[p.BoosterVersionCategory] = i
			rows = append(rows, CategoryRow{
				Category: p.BoosterVersionCategory,
				MinKg:    p.PayloadMassKg,
				MaxKg:    p.PayloadMassKg,
			})
		}
		r := &rows[i]
		if p.Succeeded() {
			r.Success++
		} else {
			r.Failure++
		}
		r.MinKg = min(r.MinKg, p.PayloadMassKg)
		r.MaxKg = max(r.MaxKg, p.PayloadMassKg)
	}
	return rows
}

// ScatterPanelModel displays the payload-vs-outcome subset.
type ScatterPanelModel struct {
	vm   aggregate.ScatterViewModel
	rows []CategoryRow
}

// NewScatterPanelModel creates an empty scatter panel.
func NewScatterPanelModel() ScatterPanelModel {
	return ScatterPanelModel{}
}

// SetViewModel replaces the displayed subset.
func (m *ScatterPanelModel) SetViewModel(vm aggregate.ScatterViewModel) {
	m.vm = vm
	m.rows = SummarizeScatter(vm)
}

// View renders the title, range, and the category table.
func (m ScatterPanelModel) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(m.vm.Title))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n",
		MutedStyle.Render("payload range (kg):"),
		ValueStyle.Render(fmt.Sprintf("%g – %g", m.vm.Range.Low, m.vm.Range.High)))

	if len(m.rows) == 0 {
		b.WriteString(MutedStyle.Render("No launches match the current filters"))
		return b.String()
	}

	fmt.Fprintf(&b, "%-10s %8s %8s %8s   %s\n", "category", "success", "failure", "total", "payload (kg)")
	for _, r := range m.rows {
		fmt.Fprintf(&b, "%-10s %s %s %8d   %g – %g\n",
			r.Category,
			SuccessStyle.Render(fmt.Sprintf("%8d", r.Success)),
			FailureStyle.Render(fmt.Sprintf("%8d", r.Failure)),
			r.Total(), r.MinKg, r.MaxKg)
	}
	fmt.Fprintf(&b, "%d launches", len(m.vm.Points))
	return b.String()
}
