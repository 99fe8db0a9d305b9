// ABOUTME: Tests for the pie and scatter panels, the status bar, and the label styles.
// ABOUTME: Checks bar scaling, per-category grouping, and rendered text.
package tui

import (
	"strings"
	"testing"

	"github.com/2389-research/launchdash/aggregate"
	"github.com/google/go-cmp/cmp"
)

func TestBarLength(t *testing.T) {
	tests := []struct {
		name                  string
		count, largest, width int
		want                  int
	}{
		{"largest fills", 10, 10, 30, 30},
		{"half", 5, 10, 30, 15},
		{"tiny still visible", 1, 1000, 30, 1},
		{"zero", 0, 10, 30, 0},
		{"no data", 3, 0, 30, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := barLength(tt.count, tt.largest, tt.width); got != tt.want {
				t.Errorf("barLength(%d, %d, %d) = %d, want %d", tt.count, tt.largest, tt.width, got, tt.want)
			}
		})
	}
}

func TestPiePanelView(t *testing.T) {
	p := NewPiePanelModel()
	p.SetViewModel(aggregate.ComputeSiteSummary(testDataset(), "A"))
	view := p.View()
	for _, want := range []string{"Success vs Failure for A", "Success", "Failure", "(50.0%)"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected pie panel to contain %q, got:\n%s", want, view)
		}
	}
}

func TestPiePanelEmpty(t *testing.T) {
	p := NewPiePanelModel()
	p.SetViewModel(aggregate.ComputeSiteSummary(testDataset(), "Nowhere"))
	if !strings.Contains(p.View(), "No launches match") {
		t.Errorf("expected placeholder, got %q", p.View())
	}
}

func TestSummarizeScatter(t *testing.T) {
	vm := aggregate.ComputeScatterSubset(testDataset(), aggregate.AllSites, nil)
	got := SummarizeScatter(vm)
	want := []CategoryRow{
		{Category: "v1.0", Success: 1, MinKg: 500, MaxKg: 500},
		{Category: "FT", Failure: 1, MinKg: 9000, MaxKg: 9000},
		{Category: "B5", Success: 1, MinKg: 3000, MaxKg: 3000},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SummarizeScatter mismatch (-want +got):\n%s", diff)
	}
}

func TestScatterPanelView(t *testing.T) {
	s := NewScatterPanelModel()
	s.SetViewModel(aggregate.ComputeScatterSubset(testDataset(), aggregate.AllSites, []float64{0, 5000}))
	view := s.View()
	for _, want := range []string{"Payload vs. Outcome for All Sites", "0 – 5000", "v1.0", "B5", "2 launches"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected scatter panel to contain %q, got:\n%s", want, view)
		}
	}
	if strings.Contains(view, "FT") {
		t.Error("the 9000 kg FT launch should be filtered out")
	}
}

func TestStatusBarView(t *testing.T) {
	m := NewStatusBarModel("launches.csv", 56)
	m.SetFilter(aggregate.Resolve(testDataset(), "B", []float64{1000, 2000}))
	view := m.View()
	for _, want := range []string{"launches.csv", "56 launches", "Site: B", "1000–2000 kg"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected status bar to contain %q, got %q", want, view)
		}
	}

	m.SetWidth(120)
	if !strings.Contains(m.View(), "launches.csv") {
		t.Error("sized status bar lost its content")
	}
}

func TestStyleForLabel(t *testing.T) {
	if StyleForLabel(aggregate.LabelSuccess, 3).Render("x") != SuccessStyle.Render("x") {
		t.Error("Success should use SuccessStyle")
	}
	if StyleForLabel(aggregate.LabelFailure, 0).Render("x") != FailureStyle.Render("x") {
		t.Error("Failure should use FailureStyle")
	}
	a := StyleForLabel("site", 0).Render("x")
	b := StyleForLabel("site", len(siteColors)).Render("x")
	if a != b {
		t.Error("site colors should cycle")
	}
}
