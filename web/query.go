// ABOUTME: Reads the dashboard's control values (site selector, payload range) from URL query parameters.
// ABOUTME: Unparseable input is passed on as "absent" so the aggregation layer applies its defaults.
package web

import (
	"net/url"
	"strconv"
	"strings"
)

// Query parameter names.
const (
	paramSite    = "site"
	paramPayload = "payload"
	paramLow     = "low"
	paramHigh    = "high"
)

// controls is the raw, unnormalized state of the dashboard inputs.
type controls struct {
	Site    string
	Payload []float64
}

// parseControls extracts controls from q. The range comes from
// payload=low,high (or two payload values), falling back to low= and
// high=. Any value that is not a number discards the whole range.
func parseControls(q url.Values) controls {
	c := controls{Site: q.Get(paramSite)}

	if raw, ok := q[paramPayload]; ok {
		var parts []string
		for _, v := range raw {
			parts = append(parts, strings.Split(v, ",")...)
		}
		c.Payload = parseFloats(parts)
		return c
	}

	low, hasLow := q[paramLow]
	high, hasHigh := q[paramHigh]
	if hasLow && hasHigh {
		c.Payload = parseFloats([]string{low[0], high[0]})
	}
	return c
}

func parseFloats(parts []string) []float64 {
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil
		}
		out = append(out, f)
	}
	return out
}
