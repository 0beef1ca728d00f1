// Package server exposes a tldrviz session over HTTP.
//
// Graphs are served as JSON for interactive front ends and as SVG for
// static embedding. Successful responses are JSON objects; failures are
// {"error": {"code": ..., "message": ...}} with a status derived from the
// error code.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/tldrviz/pkg/classify"
	"github.com/matzehuels/tldrviz/pkg/render/nodelink"
	"github.com/matzehuels/tldrviz/pkg/session"
	"github.com/matzehuels/tldrviz/pkg/store"
)

// MaxUploadBytes bounds a multipart upload.
const MaxUploadBytes = 64 << 20

// Config wires a Server. Only State is required: without Classifier the
// classification endpoint reports UNSUPPORTED, without Store saving does.
type Config struct {
	State      *session.State
	Classifier *classify.Service
	Store      store.Store
	Renderer   *nodelink.Renderer
	Metrics    *Metrics
	Logger     *log.Logger
}

// Server handles the HTTP API.
type Server struct {
	state      *session.State
	classifier *classify.Service
	store      store.Store
	renderer   *nodelink.Renderer
	metrics    *Metrics
	logger     *log.Logger
}

// New creates a Server. A nil Renderer renders without a cache; a nil
// Metrics creates a fresh registry.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Renderer == nil {
		cfg.Renderer = nodelink.NewRenderer(nil, 0, cfg.Logger)
	}
	if cfg.Metrics == nil {
		cfg.Metrics = NewMetrics()
	}
	return &Server{
		state:      cfg.State,
		classifier: cfg.Classifier,
		store:      cfg.Store,
		renderer:   cfg.Renderer,
		metrics:    cfg.Metrics,
		logger:     cfg.Logger,
	}
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors)
	r.Use(s.metrics.Middleware)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/graph/{view}", s.handleGraph)
		r.Get("/render/{view}.svg", s.handleRender)
		r.Get("/stats", s.handleStats)
		r.Get("/state", s.handleGetState)
		r.Put("/state", s.handlePutState)
		r.Get("/entries", s.handleEntries)
		r.Get("/entries/*", s.handleEntry)
		r.Post("/classify-entries", s.handleClassify)
		r.Post("/save-classifications", s.handleSaveClassifications)
		r.Post("/upload", s.handleUpload)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully and waits for background saves.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	if s.classifier != nil {
		s.classifier.Wait()
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Microsecond),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
		} else {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, X-Request-Id")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
