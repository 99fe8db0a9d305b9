// ABOUTME: HTTP handlers for the dashboard page, cached SVG figures, and JSON view-model endpoints.
// ABOUTME: Every handler resolves the raw query through aggregate.Resolve, so bad input falls back to defaults.
package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	"github.com/2389-research/launchdash/aggregate"
	"github.com/2389-research/launchdash/dataset"
	"github.com/2389-research/launchdash/render"
	"go.uber.org/zap"
)

// filterFor resolves the request's query string against the dataset.
func (s *Server) filterFor(r *http.Request) aggregate.FilterState {
	c := parseControls(r.URL.Query())
	return aggregate.Resolve(s.ds, c.Site, c.Payload)
}

// pieFigure returns the cached pie SVG for f. The pie ignores the payload range.
func (s *Server) pieFigure(f aggregate.FilterState) ([]byte, string, error) {
	siteOnly := aggregate.FilterState{Site: f.Site, AllSites: f.AllSites}
	key := render.FigureKey(render.KindPie, s.ds.ID(), siteOnly.Key())
	data, err := s.figures.Get(key, func() ([]byte, error) {
		var buf bytes.Buffer
		vm := aggregate.ComputeSiteSummary(s.ds, f.Site)
		if err := render.PieSVG(&buf, vm, render.DefaultPieSize); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	})
	return data, key, err
}

// scatterFigure returns the cached scatter SVG for f.
func (s *Server) scatterFigure(f aggregate.FilterState) ([]byte, string, error) {
	key := render.FigureKey(render.KindScatter, s.ds.ID(), f.Key())
	data, err := s.figures.Get(key, func() ([]byte, error) {
		var buf bytes.Buffer
		vm := aggregate.ScatterFor(s.ds, f)
		if err := render.ScatterSVG(&buf, vm, render.DefaultScatterSize); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	})
	return data, key, err
}

// siteOptions builds the dropdown entries: All Sites, then each site in
// first-seen order.
func (s *Server) siteOptions(f aggregate.FilterState) []SiteOption {
	sites := s.ds.Sites()
	opts := make([]SiteOption, 0, len(sites)+1)
	opts = append(opts, SiteOption{Value: aggregate.AllSites, Label: aggregate.AllSitesLabel, Selected: f.AllSites})
	for _, site := range sites {
		opts = append(opts, SiteOption{Value: site, Label: site, Selected: !f.AllSites && site == f.Site})
	}
	return opts
}

// handleDashboard renders the full page with both figures inlined.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	f := s.filterFor(r)

	pie, _, err := s.pieFigure(f)
	if err != nil {
		s.renderFailed(w, r, render.KindPie, err)
		return
	}
	scatter, _, err := s.scatterFigure(f)
	if err != nil {
		s.renderFailed(w, r, render.KindScatter, err)
		return
	}

	data := PageData{
		Title:      Heading,
		Heading:    Heading,
		Sites:      s.siteOptions(f),
		Low:        f.Range.Low,
		High:       f.Range.High,
		SliderMin:  sliderMin,
		SliderMax:  sliderMax,
		SliderStep: sliderStep,
		Marks:      sliderMarks,
		PieSVG:     template.HTML(pie),
		ScatterSVG: template.HTML(scatter),
		About:      s.about,
		DatasetID:  s.ds.ID(),
		Records:    s.ds.Len(),
	}
	if err := s.templates.Render(w, "dashboard.html", data); err != nil {
		s.logger.Error("render dashboard", zap.Error(err), zap.String("request_id", RequestID(r.Context())))
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (s *Server) handlePieSVG(w http.ResponseWriter, r *http.Request) {
	data, key, err := s.pieFigure(s.filterFor(r))
	if err != nil {
		s.renderFailed(w, r, render.KindPie, err)
		return
	}
	serveFigure(w, r, data, key)
}

func (s *Server) handleScatterSVG(w http.ResponseWriter, r *http.Request) {
	data, key, err := s.scatterFigure(s.filterFor(r))
	if err != nil {
		s.renderFailed(w, r, render.KindScatter, err)
		return
	}
	serveFigure(w, r, data, key)
}

// serveFigure writes an SVG with an ETag derived from its cache key.
func serveFigure(w http.ResponseWriter, r *http.Request, data []byte, key string) {
	etag := `"` + key + `"`
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) renderFailed(w http.ResponseWriter, r *http.Request, kind string, err error) {
	s.logger.Error("render figure",
		zap.String("kind", kind),
		zap.Error(err),
		zap.String("request_id", RequestID(r.Context())),
	)
	http.Error(w, "failed to render figure", http.StatusInternalServerError)
}

// siteOptionJSON is one dropdown entry in /api/sites.
type siteOptionJSON struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func (s *Server) handleSites(w http.ResponseWriter, r *http.Request) {
	opts := s.siteOptions(aggregate.FilterState{AllSites: true})
	out := make([]siteOptionJSON, len(opts))
	for i, o := range opts {
		out[i] = siteOptionJSON{Value: o.Value, Label: o.Label}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleBounds(w http.ResponseWriter, r *http.Request) {
	lo, hi, err := dataset.Bounds(s.ds)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"min": lo, "max": hi})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	f := s.filterFor(r)
	writeJSON(w, http.StatusOK, aggregate.ComputeSiteSummary(s.ds, f.Site))
}

func (s *Server) handleScatter(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, aggregate.ScatterFor(s.ds, s.filterFor(r)))
}

// handleHealth returns a JSON health check response.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"dataset_id": s.ds.ID(),
		"records":    s.ds.Len(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, fmt.Sprintf("encode response: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}
