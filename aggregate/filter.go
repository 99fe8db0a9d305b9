// ABOUTME: Normalizes raw control values (site selector, payload range) into a FilterState.
// ABOUTME: Malformed input never errors; it falls back to "all sites" and the dataset's payload bounds.
package aggregate

import (
	"fmt"
	"math"
	"strings"

	"github.com/2389-research/launchdash/dataset"
)

// AllSites is the selector value meaning "no site filter".
const AllSites = "ALL"

// AllSitesLabel is the display label for the AllSites option.
const AllSitesLabel = "All Sites"

// PayloadRange is an inclusive payload-mass interval in kilograms.
type PayloadRange struct {
	Low  float64 `json:"low" yaml:"low"`
	High float64 `json:"high" yaml:"high"`
}

// Contains reports whether kg lies within the closed interval.
func (r PayloadRange) Contains(kg float64) bool {
	return kg >= r.Low && kg <= r.High
}

func (r PayloadRange) String() string {
	return fmt.Sprintf("[%g, %g]", r.Low, r.High)
}

// FilterState is the normalized view of the current control values.
type FilterState struct {
	Site     string       `json:"site" yaml:"site"`
	AllSites bool         `json:"all_sites" yaml:"all_sites"`
	Range    PayloadRange `json:"payload_range" yaml:"payload_range"`
}

// Key returns a stable string identifying the filter state.
func (f FilterState) Key() string {
	site := AllSites
	if !f.AllSites {
		site = "site:" + f.Site
	}
	return fmt.Sprintf("%s|%g|%g", site, f.Range.Low, f.Range.High)
}

// NormalizeSite trims the raw selector value. It returns allSites=true for
// an empty value or the AllSites sentinel; otherwise site is matched exactly
// and case-sensitively by the caller.
func NormalizeSite(raw string) (site string, allSites bool) {
	site = strings.TrimSpace(raw)
	if site == "" || site == AllSites {
		return "", true
	}
	return site, false
}

// NormalizeRange returns values as a PayloadRange, or [lo, hi] when values
// is absent, not exactly two numbers, contains NaN or an infinity, or is
// inverted.
func NormalizeRange(values []float64, lo, hi float64) PayloadRange {
	fallback := PayloadRange{Low: lo, High: hi}
	if len(values) != 2 {
		return fallback
	}
	low, high := values[0], values[1]
	if math.IsNaN(low) || math.IsNaN(high) || math.IsInf(low, 0) || math.IsInf(high, 0) || low > high {
		return fallback
	}
	return PayloadRange{Low: low, High: high}
}

// Resolve normalizes both controls against d. When d has no payload bounds
// the fallback range is [0, 0].
func Resolve(d *dataset.Dataset, selectedSite string, payloadRange []float64) FilterState {
	site, all := NormalizeSite(selectedSite)
	lo, hi, err := dataset.Bounds(d)
	if err != nil {
		lo, hi = 0, 0
	}
	return FilterState{
		Site:     site,
		AllSites: all,
		Range:    NormalizeRange(payloadRange, lo, hi),
	}
}

// SiteLabel returns the display name for the filter's site selection.
func (f FilterState) SiteLabel() string {
	if f.AllSites {
		return AllSitesLabel
	}
	return f.Site
}
