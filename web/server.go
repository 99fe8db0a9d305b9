// ABOUTME: Dashboard HTTP server: one chi router serving the page, SVG figures, JSON view models, and health.
// ABOUTME: The dataset is read-only and shared by all handlers; the figure cache is the only mutable state.
package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/2389-research/launchdash/dataset"
	"github.com/2389-research/launchdash/render"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// DefaultAddr is used when ServerConfig.Addr is empty.
const DefaultAddr = "127.0.0.1:8050"

const defaultCacheTTL = 10 * time.Minute

// Heading is the dashboard's page title.
const Heading = "SpaceX Launch Records Dashboard"

// Server is the dashboard HTTP server.
type Server struct {
	ds        *dataset.Dataset
	templates *TemplateEngine
	figures   *render.FigureCache
	logger    *zap.Logger
	about     template.HTML
	router    chi.Router
	addr      string

	mu     sync.Mutex
	srv    *http.Server
	closed bool
}

// ServerConfig holds the configuration for the dashboard server.
type ServerConfig struct {
	Addr     string           // listen address (default: DefaultAddr)
	Dataset  *dataset.Dataset // required
	Logger   *zap.Logger      // default: no-op
	CacheTTL time.Duration    // figure cache TTL (default: 10m)
	About    []byte           // optional markdown shown below the charts
}

// NewServer creates a new Server with the given configuration.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Dataset == nil {
		return nil, errors.New("Dataset must not be nil")
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}

	tmpl, err := NewTemplateEngine()
	if err != nil {
		return nil, fmt.Errorf("initializing templates: %w", err)
	}
	about, err := RenderAbout(cfg.About)
	if err != nil {
		return nil, err
	}

	s := &Server{
		ds:        cfg.Dataset,
		templates: tmpl,
		figures:   render.NewFigureCache(cfg.CacheTTL, render.DefaultMaxEntries),
		logger:    cfg.Logger,
		about:     about,
		addr:      cfg.Addr,
	}
	s.router = s.buildRouter()
	return s, nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.addr
}

// ServeHTTP delegates to the chi router, satisfying http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe binds the configured address and serves until Shutdown.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln with timeouts that protect against slow
// clients. It returns nil after a graceful Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       2 * time.Minute,
		ErrorLog:          zap.NewStdLog(s.logger),
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		ln.Close()
		return nil
	}
	s.srv = srv
	s.mu.Unlock()

	s.logger.Info("dashboard listening",
		zap.String("addr", ln.Addr().String()),
		zap.String("dataset_id", s.ds.ID()),
		zap.Int("records", s.ds.Len()),
	)
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server. Calling it before Serve makes a
// later Serve return immediately.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	srv := s.srv
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// buildRouter constructs the chi router with all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleDashboard)
	r.Get("/health", s.handleHealth)
	r.Handle("/static/*", staticHandler())

	r.Route("/charts", func(r chi.Router) {
		r.Get("/pie.svg", s.handlePieSVG)
		r.Get("/scatter.svg", s.handleScatterSVG)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/sites", s.handleSites)
		r.Get("/bounds", s.handleBounds)
		r.Get("/summary", s.handleSummary)
		r.Get("/scatter", s.handleScatter)
	})

	return r
}
