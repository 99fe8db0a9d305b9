// ABOUTME: Computes the global payload-mass bounds used to seed the range control.
// ABOUTME: Records with a missing payload are skipped; no known payload means ErrEmptyDataset.
package dataset

import "gonum.org/v1/gonum/floats"

// Bounds returns the minimum and maximum known payload mass.
func Bounds(d *Dataset) (lo, hi float64, err error) {
	if d == nil || d.Len() == 0 {
		return 0, 0, ErrEmptyDataset
	}

	payloads := make([]float64, 0, d.Len())
	for _, r := range d.records {
		if r.HasPayload {
			payloads = append(payloads, r.PayloadMassKg)
		}
	}
	if len(payloads) == 0 {
		return 0, 0, ErrEmptyDataset
	}
	return floats.Min(payloads), floats.Max(payloads), nil
}
