// Package devhost is a local stand-in for the dashboard that embeds the
// widget. It serves a host page that frames the widget and relays fixture
// payloads to it over a websocket, the way the dashboard's local development
// mode does.
package devhost

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/fwojciec/infopanel"
	"github.com/fwojciec/infopanel/fixture"
	iphtml "github.com/fwojciec/infopanel/html"
	ipjson "github.com/fwojciec/infopanel/json"
	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
)

//go:embed assets/*
var assets embed.FS

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the structured logger. If nil or not set, logs are discarded.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithWASM sets the path of the compiled widget served at /widget.wasm.
func WithWASM(path string) Option {
	return func(s *Server) {
		s.wasmPath = path
	}
}

// WithWASMExec sets the path of Go's wasm_exec.js served at /wasm_exec.js.
func WithWASMExec(path string) Option {
	return func(s *Server) {
		s.wasmExecPath = path
	}
}

// WithOverrides sets overrides applied to every fixture on each load.
func WithOverrides(o fixture.Overrides) Option {
	return func(s *Server) {
		s.overrides = o
	}
}

// Server is the development host.
type Server struct {
	pattern      string
	overrides    fixture.Overrides
	wasmPath     string
	wasmExecPath string
	logger       *slog.Logger
	hub          *hub
	metrics      *metrics

	mu       sync.RWMutex
	fixtures []fixture.Fixture
	active   int
}

// New creates a Server over the fixtures matching pattern.
func New(pattern string, opts ...Option) (*Server, error) {
	s := &Server{
		pattern: pattern,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.hub = newHub(s.logger)
	s.metrics = newMetrics()
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Handler returns the HTTP routes of the host.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/", s.serveAsset("assets/host.html"))
	r.Get("/widget", s.serveAsset("assets/widget.html"))
	r.Get("/widget.wasm", s.serveFile(func() string { return s.wasmPath }, "application/wasm"))
	r.Get("/wasm_exec.js", s.serveFile(func() string { return s.wasmExecPath }, "text/javascript"))
	r.Get("/ws", s.handleWS)
	r.Get("/snapshot", s.handleSnapshot)
	r.Method(http.MethodGet, "/metrics", s.metrics.handler())
	r.Route("/fixtures", func(r chi.Router) {
		r.Get("/", s.handleListFixtures)
		r.Post("/{index}", s.handleSelectFixture)
	})
	return r
}

// Run serves the host on addr and reloads fixtures when they change, until
// ctx is done.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("dev host listening", "addr", addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		return fixture.Watch(ctx, s.logger, s.pattern, func(path string) {
			if err := s.Reload(); err != nil {
				s.logger.Warn("reload fixtures", "path", path, "error", err)
			}
		})
	})
	return g.Wait()
}

// Reload loads the fixtures again and pushes the active one to every
// connected host page. The active index is kept when still in range.
func (s *Server) Reload() error {
	fixtures, err := fixture.LoadAll(s.pattern)
	if err == nil {
		fixtures, err = s.overrides.ApplyAll(fixtures)
	}
	if err != nil {
		s.metrics.reloads.WithLabelValues("error").Inc()
		return err
	}
	s.metrics.reloads.WithLabelValues("ok").Inc()
	s.mu.Lock()
	s.fixtures = fixtures
	if s.active >= len(fixtures) {
		s.active = 0
	}
	s.mu.Unlock()
	s.logger.Info("fixtures loaded", "count", len(fixtures))
	s.push()
	return nil
}

// Select makes fixture i active and pushes it to every connected host page.
func (s *Server) Select(i int) error {
	s.mu.Lock()
	if i < 0 || i >= len(s.fixtures) {
		n := len(s.fixtures)
		s.mu.Unlock()
		return fmt.Errorf("fixture index %d out of range [0, %d): %w", i, n, infopanel.ErrValidation)
	}
	s.active = i
	s.mu.Unlock()
	s.push()
	return nil
}

// Active returns the active fixture.
func (s *Server) Active() fixture.Fixture {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fixtures[s.active]
}

// push broadcasts the active fixture as a data update.
func (s *Server) push() {
	data, err := s.activeEnvelope()
	if err != nil {
		s.logger.Error("encode fixture", "error", err)
		return
	}
	s.metrics.updates.Add(float64(s.hub.broadcast(data)))
}

func (s *Server) activeEnvelope() ([]byte, error) {
	return ipjson.MarshalEnvelope(s.Active().Envelope())
}

func (s *Server) serveAsset(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := assets.ReadFile(name)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(data)
	}
}

func (s *Server) serveFile(path func() string, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := path()
		if p == "" {
			http.Error(w, r.URL.Path+" is not configured", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "no-store")
		http.ServeFile(w, r, p)
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket accept", "error", err)
		return
	}
	c := s.hub.register(conn)
	s.metrics.clients.Inc()
	defer s.metrics.clients.Dec()
	s.logger.Info("host page connected", "clients", s.hub.len())

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go c.pingLoop(ctx)
	go func() {
		if err := c.writeLoop(ctx); err != nil {
			s.logger.Debug("websocket write", "error", err)
		}
		cancel()
	}()

	err = c.readLoop(ctx, s.logger, func() {
		data, err := s.activeEnvelope()
		if err != nil {
			s.logger.Error("encode fixture", "error", err)
			return
		}
		s.metrics.readySignals.Inc()
		s.logger.Debug("widget ready, sending fixture", "fixture", s.Active().Name)
		if s.hub.sendTo(c, data) {
			s.metrics.updates.Inc()
		}
	})
	s.hub.remove(c)
	_ = conn.Close(websocket.StatusNormalClosure, "")
	s.logger.Info("host page disconnected", "error", err)
}

// handleSnapshot renders the active fixture server-side. With expanded=1 the
// header is clicked once before serializing.
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	f := s.Active()
	p, err := ipjson.DecodePayload(infopanel.ObjectTransform(f.Body))
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	doc := iphtml.NewDocument()
	renderer := infopanel.NewRenderer(doc, infopanel.WithLogger(s.logger))
	if err := renderer.Render(p); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if r.URL.Query().Get("expanded") == "1" {
		if err := doc.Click("#" + infopanel.HeaderID); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := doc.Render(w); err != nil {
		s.logger.Warn("write snapshot", "error", err)
	}
}

type fixtureDTO struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Path  string `json:"path"`
}

type fixtureListDTO struct {
	Active   int          `json:"active"`
	Fixtures []fixtureDTO `json:"fixtures"`
}

func (s *Server) handleListFixtures(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	out := fixtureListDTO{Active: s.active, Fixtures: make([]fixtureDTO, len(s.fixtures))}
	for i, f := range s.fixtures {
		out.Fixtures[i] = fixtureDTO{Index: i, Name: f.Name, Path: f.Path}
	}
	s.mu.RUnlock()
	respondJSON(w, out)
}

func (s *Server) handleSelectFixture(w http.ResponseWriter, r *http.Request) {
	i, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "invalid fixture index", http.StatusBadRequest)
		return
	}
	if err := s.Select(i); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func respondJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}
