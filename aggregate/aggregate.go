// ABOUTME: The two pure view computations behind the dashboard: site success summary and scatter subset.
// ABOUTME: Both read an immutable Dataset and return freshly built view models with no side effects.
package aggregate

import (
	"github.com/2389-research/launchdash/dataset"
)

// PieMode distinguishes the two shapes a PieViewModel can take.
type PieMode string

const (
	// PieBySite has one slice per launch site counting successes.
	PieBySite PieMode = "by_site"
	// PieOutcome has exactly two slices, Success then Failure, for one site.
	PieOutcome PieMode = "outcome"
)

// Outcome slice labels.
const (
	LabelSuccess = "Success"
	LabelFailure = "Failure"
)

// PieSlice is one labelled count in a pie chart.
type PieSlice struct {
	Label string `json:"label" yaml:"label"`
	Count int    `json:"count" yaml:"count"`
}

// PieViewModel is the data behind the success pie chart.
type PieViewModel struct {
	Mode   PieMode    `json:"mode" yaml:"mode"`
	Site   string     `json:"site,omitempty" yaml:"site,omitempty"`
	Title  string     `json:"title" yaml:"title"`
	Slices []PieSlice `json:"slices" yaml:"slices"`
}

// Total returns the sum of all slice counts.
func (p PieViewModel) Total() int {
	total := 0
	for _, s := range p.Slices {
		total += s.Count
	}
	return total
}

// Count returns the count for label, or 0 when there is no such slice.
func (p PieViewModel) Count(label string) int {
	for _, s := range p.Slices {
		if s.Label == label {
			return s.Count
		}
	}
	return 0
}

// ScatterViewModel is the data behind the payload-vs-outcome scatter chart.
type ScatterViewModel struct {
	Title  string                 `json:"title" yaml:"title"`
	Site   string                 `json:"site,omitempty" yaml:"site,omitempty"`
	Range  PayloadRange           `json:"payload_range" yaml:"payload_range"`
	Points []dataset.LaunchRecord `json:"points" yaml:"points"`
}

// ComputeSiteSummary builds the pie view for selectedSite. An empty or
// sentinel selection sums successes per site in first-seen order; a specific
// site yields Success/Failure counts, both zero if the site is unknown.
func ComputeSiteSummary(d *dataset.Dataset, selectedSite string) PieViewModel {
	site, all := NormalizeSite(selectedSite)
	if all {
		return summarizeBySite(d)
	}
	return summarizeOutcome(d, site)
}

func summarizeBySite(d *dataset.Dataset) PieViewModel {
	vm := PieViewModel{
		Mode:   PieBySite,
		Title:  "Total Successful Launches by Site",
		Slices: []PieSlice{},
	}
	if d == nil {
		return vm
	}

	pos := make(map[string]int)
	d.Each(func(r dataset.LaunchRecord) bool {
		i, ok := pos[r.LaunchSite]
		if !ok {
			i = len(vm.Slices)
			pos[r.LaunchSite] = i
			vm.Slices = append(vm.Slices, PieSlice{Label: r.LaunchSite})
		}
		vm.Slices[i].Count += r.Class
		return true
	})
	return vm
}

func summarizeOutcome(d *dataset.Dataset, site string) PieViewModel {
	var success, failure int
	if d != nil {
		d.Each(func(r dataset.LaunchRecord) bool {
			if r.LaunchSite != site {
				return true
			}
			if r.Succeeded() {
				success++
			} else {
				failure++
			}
			return true
		})
	}
	return PieViewModel{
		Mode:  PieOutcome,
		Site:  site,
		Title: "Success vs Failure for " + site,
		Slices: []PieSlice{
			{Label: LabelSuccess, Count: success},
			{Label: LabelFailure, Count: failure},
		},
	}
}

// ComputeScatterSubset returns the records whose payload lies in payloadRange
// and, for a specific site, whose launch site matches. A malformed range is
// replaced by the dataset's payload bounds. The payload filter is applied
// before the site filter.
func ComputeScatterSubset(d *dataset.Dataset, selectedSite string, payloadRange []float64) ScatterViewModel {
	f := Resolve(d, selectedSite, payloadRange)
	return ScatterFor(d, f)
}

// ScatterFor computes the scatter view for an already-normalized FilterState.
func ScatterFor(d *dataset.Dataset, f FilterState) ScatterViewModel {
	vm := ScatterViewModel{
		Title:  "Payload vs. Outcome for " + f.SiteLabel(),
		Range:  f.Range,
		Points: []dataset.LaunchRecord{},
	}
	if !f.AllSites {
		vm.Site = f.Site
	}
	if d == nil {
		return vm
	}

	var inRange []dataset.LaunchRecord
	d.Each(func(r dataset.LaunchRecord) bool {
		if r.HasPayload && f.Range.Contains(r.PayloadMassKg) {
			inRange = append(inRange, r)
		}
		return true
	})

	for _, r := range inRange {
		if f.AllSites || r.LaunchSite == f.Site {
			vm.Points = append(vm.Points, r)
		}
	}
	return vm
}
