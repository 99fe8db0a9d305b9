// ABOUTME: Turns pie and scatter view models into SVG figures using go-chart.
// ABOUTME: Empty selections render a placeholder figure instead of failing inside the chart library.
package render

import (
	"fmt"
	"html"
	"io"
	"strconv"

	"github.com/2389-research/launchdash/aggregate"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Figure kinds used in cache keys and content negotiation.
const (
	KindPie     = "pie"
	KindScatter = "scatter"
)

// Axis labels for the scatter figure.
const (
	PayloadAxisLabel = "Payload Mass (kg)"
	OutcomeAxisLabel = "Mission Outcome (1=Success, 0=Failure)"
)

// EmptyMessage is drawn when a filter selects no launches.
const EmptyMessage = "No launches match the current filters"

// Size is a figure's pixel dimensions.
type Size struct {
	Width  int
	Height int
}

// Default figure sizes.
var (
	DefaultPieSize     = Size{Width: 640, Height: 480}
	DefaultScatterSize = Size{Width: 960, Height: 480}
)

func (s Size) orDefault(def Size) Size {
	if s.Width <= 0 || s.Height <= 0 {
		return def
	}
	return s
}

// categoryPalette colors scatter points by booster version category.
var categoryPalette = []drawing.Color{
	drawing.ColorFromHex("636efa"),
	drawing.ColorFromHex("ef553b"),
	drawing.ColorFromHex("00cc96"),
	drawing.ColorFromHex("ab63fa"),
	drawing.ColorFromHex("ffa15a"),
	drawing.ColorFromHex("19d3f3"),
	drawing.ColorFromHex("ff6692"),
	drawing.ColorFromHex("b6e880"),
	drawing.ColorFromHex("ff97ff"),
	drawing.ColorFromHex("fecb52"),
}

// CategoryColor returns the color assigned to the i-th category.
func CategoryColor(i int) drawing.Color {
	return categoryPalette[i%len(categoryPalette)]
}

// PieSVG writes the pie figure for vm as SVG. go-chart emits text verbatim,
// so dataset strings are escaped before they reach it.
func PieSVG(w io.Writer, vm aggregate.PieViewModel, size Size) error {
	size = size.orDefault(DefaultPieSize)
	if vm.Total() == 0 {
		return placeholderSVG(w, vm.Title, size)
	}

	values := make([]chart.Value, 0, len(vm.Slices))
	for _, s := range vm.Slices {
		if s.Count == 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: html.EscapeString(fmt.Sprintf("%s (%d)", s.Label, s.Count)),
			Value: float64(s.Count),
		})
	}

	pie := chart.PieChart{
		Title:  html.EscapeString(vm.Title),
		Width:  size.Width,
		Height: size.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10},
		},
		Values: values,
	}
	if err := pie.Render(chart.SVG, w); err != nil {
		return fmt.Errorf("render pie %q: %w", vm.Title, err)
	}
	return nil
}

// series groups scatter points by booster version category.
type series struct {
	name string
	xs   []float64
	ys   []float64
}

// groupByCategory returns one series per category in first-seen order.
func groupByCategory(vm aggregate.ScatterViewModel) []*series {
	var out []*series
	byName := make(map[string]*series)
	for _, p := range vm.Points {
		s, ok := byName[p.BoosterVersionCategory]
		if !ok {
			s = &series{name: p.BoosterVersionCategory}
			byName[p.BoosterVersionCategory] = s
			out = append(out, s)
		}
		s.xs = append(s.xs, p.PayloadMassKg)
		s.ys = append(s.ys, float64(p.Class))
	}
	return out
}

// ScatterSVG writes the payload-vs-outcome figure for vm as SVG.
func ScatterSVG(w io.Writer, vm aggregate.ScatterViewModel, size Size) error {
	size = size.orDefault(DefaultScatterSize)
	if len(vm.Points) == 0 {
		return placeholderSVG(w, vm.Title, size)
	}

	groups := groupByCategory(vm)
	chartSeries := make([]chart.Series, 0, len(groups))
	for i, g := range groups {
		col := CategoryColor(i)
		chartSeries = append(chartSeries, chart.ContinuousSeries{
			Name:    html.EscapeString(g.name),
			XValues: g.xs,
			YValues: g.ys,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    5,
				DotColor:    col,
				StrokeColor: col,
			},
		})
	}

	low, high := vm.Range.Low, vm.Range.High
	if high <= low {
		low, high = low-1, high+1
	}

	ch := chart.Chart{
		Title:  html.EscapeString(vm.Title),
		Width:  size.Width,
		Height: size.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: chart.XAxis{
			Name:           PayloadAxisLabel,
			Range:          &chart.ContinuousRange{Min: low, Max: high},
			ValueFormatter: kgFormatter,
		},
		YAxis: chart.YAxis{
			Name:  OutcomeAxisLabel,
			Range: &chart.ContinuousRange{Min: -0.5, Max: 1.5},
			Ticks: []chart.Tick{
				{Value: -0.5, Label: ""},
				{Value: 0, Label: "0"},
				{Value: 1, Label: "1"},
				{Value: 1.5, Label: ""},
			},
		},
		Series: chartSeries,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	if err := ch.Render(chart.SVG, w); err != nil {
		return fmt.Errorf("render scatter %q: %w", vm.Title, err)
	}
	return nil
}

func kgFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return strconv.FormatFloat(f, 'f', 0, 64)
	}
	return ""
}

// placeholderSVG draws a titled, empty frame with EmptyMessage.
func placeholderSVG(w io.Writer, title string, size Size) error {
	_, err := fmt.Fprintf(w, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+
		`<rect width="100%%" height="100%%" fill="#ffffff" stroke="#d0d0d0"/>`+
		`<text x="50%%" y="32" text-anchor="middle" font-family="sans-serif" font-size="16" fill="#333333">%s</text>`+
		`<text x="50%%" y="50%%" text-anchor="middle" font-family="sans-serif" font-size="14" fill="#888888">%s</text>`+
		`</svg>`,
		size.Width, size.Height, size.Width, size.Height,
		html.EscapeString(title), html.EscapeString(EmptyMessage))
	if err != nil {
		return fmt.Errorf("write placeholder: %w", err)
	}
	return nil
}
