// ABOUTME: Decodes a delimited launch table into a Dataset.
// ABOUTME: Validates required headers, payload and class cells; unknown columns pass through as extras.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Parse reads CSV from r. source is only used in error messages and the
// resulting Dataset's Source.
func Parse(r io.Reader, source string) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, loadErr(source, "no header row", nil)
		}
		return nil, loadErr(source, "read header", err)
	}

	idx, extras, err := indexHeader(header)
	if err != nil {
		return nil, loadErr(source, "", err)
	}

	var records []LaunchRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, loadErr(source, "read row", err)
		}
		line, _ := cr.FieldPos(0)

		rec, err := decodeRow(row, idx, header, extras)
		if err != nil {
			return nil, loadErr(source, fmt.Sprintf("line %d", line), err)
		}
		records = append(records, rec)
	}

	extraNames := make([]string, len(extras))
	for i, col := range extras {
		extraNames[i] = cleanHeader(header[col])
	}
	return New(source, records, extraNames), nil
}

type columnIndex struct {
	site, payload, class, booster int
}

func cleanHeader(h string) string {
	return strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
}

func indexHeader(header []string) (columnIndex, []int, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		name := cleanHeader(h)
		if _, dup := pos[name]; !dup {
			pos[name] = i
		}
	}

	var missing []string
	lookup := func(name string) int {
		i, ok := pos[name]
		if !ok {
			missing = append(missing, name)
			return -1
		}
		return i
	}
	idx := columnIndex{
		site:    lookup(ColumnLaunchSite),
		payload: lookup(ColumnPayloadMass),
		class:   lookup(ColumnClass),
		booster: lookup(ColumnBoosterVersionCategory),
	}
	if len(missing) > 0 {
		return idx, nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}

	var extras []int
	for i := range header {
		if i != idx.site && i != idx.payload && i != idx.class && i != idx.booster {
			extras = append(extras, i)
		}
	}
	return idx, extras, nil
}

func decodeRow(row []string, idx columnIndex, header []string, extras []int) (LaunchRecord, error) {
	rec := LaunchRecord{
		LaunchSite:             strings.TrimSpace(row[idx.site]),
		BoosterVersionCategory: strings.TrimSpace(row[idx.booster]),
	}
	if rec.LaunchSite == "" {
		return rec, fmt.Errorf("%w: empty %q", ErrInvalidValue, ColumnLaunchSite)
	}

	payload, ok, err := parsePayload(row[idx.payload])
	if err != nil {
		return rec, err
	}
	rec.PayloadMassKg, rec.HasPayload = payload, ok

	class, err := parseClass(row[idx.class])
	if err != nil {
		return rec, err
	}
	rec.Class = class

	if len(extras) > 0 {
		rec.Extra = make(map[string]string, len(extras))
		for _, col := range extras {
			rec.Extra[cleanHeader(header[col])] = row[col]
		}
	}
	return rec, nil
}

// parsePayload returns ok=false for an empty or NaN cell.
func parsePayload(cell string) (float64, bool, error) {
	s := strings.TrimSpace(cell)
	if s == "" || strings.EqualFold(s, "nan") {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) {
		return 0, false, fmt.Errorf("%w: %q %q", ErrInvalidValue, ColumnPayloadMass, cell)
	}
	if math.IsNaN(v) {
		return 0, false, nil
	}
	if v < 0 {
		return 0, false, fmt.Errorf("%w: negative %q %q", ErrInvalidValue, ColumnPayloadMass, cell)
	}
	return v, true, nil
}

// parseClass accepts "0", "1" and their float spellings ("1.0").
func parseClass(cell string) (int, error) {
	s := strings.TrimSpace(cell)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q %q", ErrInvalidValue, ColumnClass, cell)
	}
	switch v {
	case 0:
		return 0, nil
	case 1:
		return 1, nil
	default:
		return 0, fmt.Errorf("%w: %q must be 0 or 1, got %q", ErrInvalidValue, ColumnClass, cell)
	}
}
