// ABOUTME: Immutable in-memory table of launch records loaded once at startup.
// ABOUTME: Records keep file order; distinct launch sites are tracked in first-seen order.
package dataset

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Column headers the loader requires in the source table.
const (
	ColumnLaunchSite             = "Launch Site"
	ColumnPayloadMass            = "Payload Mass (kg)"
	ColumnClass                  = "class"
	ColumnBoosterVersionCategory = "Booster Version Category"
)

// RequiredColumns lists the headers every source must provide.
var RequiredColumns = []string{
	ColumnLaunchSite,
	ColumnPayloadMass,
	ColumnClass,
	ColumnBoosterVersionCategory,
}

// LaunchRecord is one row of the launch dataset.
type LaunchRecord struct {
	LaunchSite             string            `json:"launch_site" yaml:"launch_site"`
	PayloadMassKg          float64           `json:"payload_mass_kg" yaml:"payload_mass_kg"`
	HasPayload             bool              `json:"has_payload" yaml:"has_payload"`
	Class                  int               `json:"class" yaml:"class"`
	BoosterVersionCategory string            `json:"booster_version_category" yaml:"booster_version_category"`
	Extra                  map[string]string `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// Succeeded reports whether the launch outcome was a success.
func (r LaunchRecord) Succeeded() bool {
	return r.Class == 1
}

// Dataset is the loaded table. It is never mutated after construction, so it
// can be shared across goroutines without locking.
type Dataset struct {
	id       ulid.ULID
	source   string
	loadedAt time.Time
	records  []LaunchRecord
	sites    []string
	extra    []string
}

// New builds a Dataset from already-validated records. The slice is copied.
func New(source string, records []LaunchRecord, extraColumns []string) *Dataset {
	recs := make([]LaunchRecord, len(records))
	copy(recs, records)

	seen := make(map[string]bool)
	var sites []string
	for _, r := range recs {
		if !seen[r.LaunchSite] {
			seen[r.LaunchSite] = true
			sites = append(sites, r.LaunchSite)
		}
	}

	return &Dataset{
		id:       ulid.Make(),
		source:   source,
		loadedAt: time.Now().UTC(),
		records:  recs,
		sites:    sites,
		extra:    append([]string(nil), extraColumns...),
	}
}

// ID returns the unique identifier assigned when the dataset was loaded.
func (d *Dataset) ID() string {
	return d.id.String()
}

// Source returns the path or URL the dataset was read from.
func (d *Dataset) Source() string {
	return d.source
}

// LoadedAt returns when the dataset was loaded.
func (d *Dataset) LoadedAt() time.Time {
	return d.loadedAt
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.records)
}

// Records returns a copy of all records in load order.
func (d *Dataset) Records() []LaunchRecord {
	out := make([]LaunchRecord, len(d.records))
	copy(out, d.records)
	return out
}

// Each calls fn for every record in load order without copying the table.
// Iteration stops early when fn returns false.
func (d *Dataset) Each(fn func(LaunchRecord) bool) {
	for _, r := range d.records {
		if !fn(r) {
			return
		}
	}
}

// Sites returns the distinct launch sites in first-seen order.
func (d *Dataset) Sites() []string {
	return append([]string(nil), d.sites...)
}

// HasSite reports whether any record was launched from site (exact match).
func (d *Dataset) HasSite(site string) bool {
	for _, s := range d.sites {
		if s == site {
			return true
		}
	}
	return false
}

// ExtraColumns returns the names of pass-through columns in source order.
func (d *Dataset) ExtraColumns() []string {
	return append([]string(nil), d.extra...)
}
