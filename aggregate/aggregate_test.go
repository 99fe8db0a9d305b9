// ABOUTME: Tests for the site summary and scatter subset computations and filter normalization.
// ABOUTME: Covers the three-record reference scenario, defensive defaults, and invariants over generated data.
package aggregate

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/2389-research/launchdash/dataset"
	"github.com/google/go-cmp/cmp"
)

func rec(site string, payload float64, class int) dataset.LaunchRecord {
	return dataset.LaunchRecord{
		LaunchSite:             site,
		PayloadMassKg:          payload,
		HasPayload:             true,
		Class:                  class,
		BoosterVersionCategory: "FT",
	}
}

// referenceDataset is the three-launch table used throughout the docs.
func referenceDataset() *dataset.Dataset {
	return dataset.New("reference", []dataset.LaunchRecord{
		rec("A", 500, 1),
		rec("A", 9000, 0),
		rec("B", 3000, 1),
	}, nil)
}

// generatedDataset builds a deterministic pseudo-random table.
func generatedDataset(seed int64, n int) *dataset.Dataset {
	rng := rand.New(rand.NewSource(seed))
	sites := []string{"CCAFS LC-40", "VAFB SLC-4E", "KSC LC-39A", "CCAFS SLC-40"}
	records := make([]dataset.LaunchRecord, n)
	for i := range records {
		records[i] = rec(sites[rng.Intn(len(sites))], math.Round(rng.Float64()*10000), rng.Intn(2))
	}
	return dataset.New(fmt.Sprintf("generated-%d", seed), records, nil)
}

func TestComputeSiteSummaryAllSites(t *testing.T) {
	got := ComputeSiteSummary(referenceDataset(), AllSites)
	want := PieViewModel{
		Mode:   PieBySite,
		Title:  "Total Successful Launches by Site",
		Slices: []PieSlice{{Label: "A", Count: 1}, {Label: "B", Count: 1}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ComputeSiteSummary(ALL) mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeSiteSummarySelectorNormalization(t *testing.T) {
	d := referenceDataset()
	want := ComputeSiteSummary(d, AllSites)
	for _, raw := range []string{"", "   ", "\tALL\n", " ALL"} {
		t.Run(fmt.Sprintf("%q", raw), func(t *testing.T) {
			if diff := cmp.Diff(want, ComputeSiteSummary(d, raw)); diff != "" {
				t.Errorf("selector %q should mean all sites (-want +got):\n%s", raw, diff)
			}
		})
	}
}

func TestComputeSiteSummarySpecificSite(t *testing.T) {
	got := ComputeSiteSummary(referenceDataset(), "A")
	want := PieViewModel{
		Mode:   PieOutcome,
		Site:   "A",
		Title:  "Success vs Failure for A",
		Slices: []PieSlice{{Label: LabelSuccess, Count: 1}, {Label: LabelFailure, Count: 1}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ComputeSiteSummary(A) mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeSiteSummaryUnknownSite(t *testing.T) {
	for _, site := range []string{"Nowhere", "a", "all"} {
		t.Run(site, func(t *testing.T) {
			got := ComputeSiteSummary(referenceDataset(), site)
			if got.Mode != PieOutcome {
				t.Fatalf("Mode = %q, want %q", got.Mode, PieOutcome)
			}
			if got.Count(LabelSuccess) != 0 || got.Count(LabelFailure) != 0 {
				t.Errorf("expected zero counts for unknown site %q, got %+v", site, got.Slices)
			}
			if len(got.Slices) != 2 {
				t.Errorf("expected exactly two slices, got %d", len(got.Slices))
			}
		})
	}
}

func TestComputeScatterSubsetReference(t *testing.T) {
	got := ComputeScatterSubset(referenceDataset(), AllSites, []float64{0, 5000})
	want := []dataset.LaunchRecord{rec("A", 500, 1), rec("B", 3000, 1)}
	if diff := cmp.Diff(want, got.Points); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}
	if got.Title != "Payload vs. Outcome for All Sites" {
		t.Errorf("Title = %q", got.Title)
	}
	if got.Range != (PayloadRange{Low: 0, High: 5000}) {
		t.Errorf("Range = %v", got.Range)
	}
}

func TestComputeScatterSubsetSpecificSite(t *testing.T) {
	got := ComputeScatterSubset(referenceDataset(), " A ", []float64{0, 10000})
	if got.Title != "Payload vs. Outcome for A" {
		t.Errorf("Title = %q", got.Title)
	}
	if got.Site != "A" {
		t.Errorf("Site = %q, want A", got.Site)
	}
	want := []dataset.LaunchRecord{rec("A", 500, 1), rec("A", 9000, 0)}
	if diff := cmp.Diff(want, got.Points); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeScatterSubsetInclusiveBounds(t *testing.T) {
	got := ComputeScatterSubset(referenceDataset(), AllSites, []float64{500, 3000})
	if len(got.Points) != 2 {
		t.Fatalf("expected both boundary payloads to be included, got %+v", got.Points)
	}
}

func TestComputeScatterSubsetMalformedRange(t *testing.T) {
	d := referenceDataset()
	want := ComputeScatterSubset(d, AllSites, []float64{500, 9000})

	tests := []struct {
		name  string
		input []float64
	}{
		{"nil", nil},
		{"empty", []float64{}},
		{"single", []float64{5}},
		{"three values", []float64{1, 2, 3}},
		{"inverted", []float64{8000, 2000}},
		{"nan", []float64{math.NaN(), 2000}},
		{"inf", []float64{0, math.Inf(1)}},
		{"both infinite", []float64{math.Inf(-1), math.Inf(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeScatterSubset(d, AllSites, tt.input)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("malformed range %v should behave like the dataset bounds (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestComputeScatterSubsetUnknownSite(t *testing.T) {
	got := ComputeScatterSubset(referenceDataset(), "Nowhere", nil)
	if got.Points == nil || len(got.Points) != 0 {
		t.Errorf("expected an empty, non-nil point list, got %#v", got.Points)
	}
}

func TestComputeScatterSubsetSkipsMissingPayload(t *testing.T) {
	records := []dataset.LaunchRecord{rec("A", 100, 1), {LaunchSite: "A", Class: 1, BoosterVersionCategory: "FT"}}
	got := ComputeScatterSubset(dataset.New("missing", records, nil), AllSites, []float64{0, 1000})
	if len(got.Points) != 1 {
		t.Errorf("expected the record without a payload to be excluded, got %+v", got.Points)
	}
}

func TestNilAndEmptyDataset(t *testing.T) {
	empty := dataset.New("empty", nil, nil)
	for name, d := range map[string]*dataset.Dataset{"nil": nil, "empty": empty} {
		t.Run(name, func(t *testing.T) {
			pie := ComputeSiteSummary(d, AllSites)
			if len(pie.Slices) != 0 {
				t.Errorf("expected no slices, got %+v", pie.Slices)
			}
			scatter := ComputeScatterSubset(d, AllSites, nil)
			if len(scatter.Points) != 0 {
				t.Errorf("expected no points, got %+v", scatter.Points)
			}
			if scatter.Range != (PayloadRange{}) {
				t.Errorf("expected zero range, got %v", scatter.Range)
			}
		})
	}
}

func TestOutcomeCountsPartitionSite(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		d := generatedDataset(seed, 200)
		for _, site := range d.Sites() {
			vm := ComputeSiteSummary(d, site)
			n := 0
			d.Each(func(r dataset.LaunchRecord) bool {
				if r.LaunchSite == site {
					n++
				}
				return true
			})
			if got := vm.Count(LabelSuccess) + vm.Count(LabelFailure); got != n {
				t.Errorf("seed %d site %q: success+failure = %d, want %d", seed, site, got, n)
			}
		}
	}
}

func TestBySiteTotalsMatchClassSum(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		d := generatedDataset(seed, 150)
		want := 0
		d.Each(func(r dataset.LaunchRecord) bool {
			want += r.Class
			return true
		})
		vm := ComputeSiteSummary(d, AllSites)
		if vm.Total() != want {
			t.Errorf("seed %d: total = %d, want %d", seed, vm.Total(), want)
		}
		var labels []string
		for _, s := range vm.Slices {
			labels = append(labels, s.Label)
		}
		if diff := cmp.Diff(d.Sites(), labels); diff != "" {
			t.Errorf("seed %d: slice order should follow first-seen site order (-want +got):\n%s", seed, diff)
		}
	}
}

func TestFullRangeIsIdentity(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		d := generatedDataset(seed, 100)
		lo, hi, err := dataset.Bounds(d)
		if err != nil {
			t.Fatalf("Bounds: %v", err)
		}
		got := ComputeScatterSubset(d, AllSites, []float64{lo, hi})
		if diff := cmp.Diff(d.Records(), got.Points); diff != "" {
			t.Errorf("seed %d: full range should return the dataset unchanged (-want +got):\n%s", seed, diff)
		}
	}
}

func TestNormalizeRange(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   PayloadRange
	}{
		{"valid", []float64{1000, 4000}, PayloadRange{1000, 4000}},
		{"degenerate", []float64{2500, 2500}, PayloadRange{2500, 2500}},
		{"negative low kept", []float64{-10, 10}, PayloadRange{-10, 10}},
		{"inverted", []float64{4000, 1000}, PayloadRange{0, 9600}},
		{"absent", nil, PayloadRange{0, 9600}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeRange(tt.values, 0, 9600); got != tt.want {
				t.Errorf("NormalizeRange(%v) = %v, want %v", tt.values, got, tt.want)
			}
		})
	}
}

func TestFilterStateKey(t *testing.T) {
	d := referenceDataset()
	a := Resolve(d, "", []float64{8000, 2000})
	b := Resolve(d, "ALL", nil)
	if a.Key() != b.Key() {
		t.Errorf("equivalent states should share a key: %q vs %q", a.Key(), b.Key())
	}
	c := Resolve(d, "A", nil)
	if a.Key() == c.Key() {
		t.Errorf("different sites should not share a key: %q", a.Key())
	}
	if c.SiteLabel() != "A" || a.SiteLabel() != AllSitesLabel {
		t.Errorf("unexpected site labels %q / %q", c.SiteLabel(), a.SiteLabel())
	}
}
