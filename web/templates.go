// ABOUTME: TemplateEngine loads embedded HTML templates and renders them with Go's html/template.
// ABOUTME: Templates are embedded at compile time via go:embed for zero runtime path issues.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strconv"
)

//go:embed templates/*.html
var templateFS embed.FS

// Slider configuration for the payload range inputs.
const (
	sliderMin  = 0
	sliderMax  = 10000
	sliderStep = 1000
)

// sliderMarks are the labelled ticks under the payload range inputs.
var sliderMarks = []float64{0, 2500, 5000, 7500, 10000}

// SiteOption is one entry of the launch site dropdown.
type SiteOption struct {
	Value    string
	Label    string
	Selected bool
}

// PageData holds all data passed to templates for rendering.
type PageData struct {
	Title      string
	Heading    string
	Sites      []SiteOption
	Low        float64
	High       float64
	SliderMin  float64
	SliderMax  float64
	SliderStep float64
	Marks      []float64
	PieSVG     template.HTML
	ScatterSVG template.HTML
	About      template.HTML
	DatasetID  string
	Records    int
}

// TemplateEngine loads and renders embedded HTML templates.
type TemplateEngine struct {
	templates map[string]*template.Template
}

// templateFuncs returns the FuncMap available to all templates.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"kg": func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) },
	}
}

// NewTemplateEngine parses all embedded templates and returns a ready-to-use engine.
// Each page template is parsed together with the layout so that the layout wraps every page.
func NewTemplateEngine() (*TemplateEngine, error) {
	funcs := templateFuncs()

	pages := []string{
		"dashboard.html",
	}

	engine := &TemplateEngine{
		templates: make(map[string]*template.Template),
	}

	for _, page := range pages {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(
			templateFS,
			"templates/layout.html",
			"templates/"+page,
		)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", page, err)
		}
		engine.templates[page] = t
	}

	return engine, nil
}

// Render executes the named template with the given data and writes the result
// to w. It sets the Content-Type header to text/html.
func (e *TemplateEngine) Render(w http.ResponseWriter, name string, data any) error {
	t, ok := e.templates[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return t.ExecuteTemplate(w, "layout.html", data)
}

// RenderTo executes the named template with the given data and writes the
// result to an arbitrary io.Writer (useful for testing without HTTP).
func (e *TemplateEngine) RenderTo(w io.Writer, name string, data any) error {
	t, ok := e.templates[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}

	return t.ExecuteTemplate(w, "layout.html", data)
}
