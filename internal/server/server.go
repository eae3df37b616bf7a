package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/san-kum/radwaste/internal/config"
	"github.com/san-kum/radwaste/internal/dashboard"
	"github.com/san-kum/radwaste/internal/dataset"
	"github.com/san-kum/radwaste/internal/nuclide"
	"github.com/san-kum/radwaste/internal/render"
	"github.com/san-kum/radwaste/internal/scenario"
)

// Dashboard is what the server needs from the render pipeline.
type Dashboard interface {
	Build(sel dashboard.Selections) (*dashboard.RenderModel, error)
	Reference(mode nuclide.SortMode) (*nuclide.Table, error)
}

type Server struct {
	dash   Dashboard
	files  scenario.Files
	cfg    config.ServerConfig
	chart  config.ChartConfig
	logger *zap.Logger
}

type Option func(*Server)

func WithLogger(l *zap.Logger) Option {
	return func(s *Server) { s.logger = l }
}

func WithConfig(cfg config.ServerConfig, chart config.ChartConfig) Option {
	return func(s *Server) { s.cfg, s.chart = cfg, chart }
}

func New(d Dashboard, files scenario.Files, opts ...Option) *Server {
	def := config.DefaultConfig()
	s := &Server{
		dash:   d,
		files:  files,
		cfg:    def.Server,
		chart:  def.Chart,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	r.HandleFunc("/", s.handlePage).Methods(http.MethodGet).Name("page")
	r.HandleFunc("/charts/{chart:reference|inside|outside}.svg", s.handleChart).Methods(http.MethodGet).Name("chart")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/render", s.handleRender).Methods(http.MethodGet).Name("render")
	api.HandleFunc("/reference", s.handleReference).Methods(http.MethodGet).Name("reference")
	api.HandleFunc("/scenarios", s.handleScenarios).Methods(http.MethodGet).Name("scenarios")

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	}).Methods(http.MethodGet).Name("healthz")

	if s.cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet).Name("metrics")
	}
	return r
}

func (s *Server) Handler() http.Handler {
	return gziphandler.GzipHandler(s.Router())
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", s.cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("query", r.URL.RawQuery),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	})
}

// build runs one complete render and records it.
func (s *Server) build(route string, r *http.Request) (*dashboard.RenderModel, error) {
	m := getMetrics()
	start := time.Now()

	sel, err := selectionsFromRequest(r)
	if err == nil {
		var model *dashboard.RenderModel
		model, err = s.dash.Build(sel)
		if err == nil {
			m.renderDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
			m.scenarioTotal.WithLabelValues(sel.Key().String()).Inc()
			m.requestsTotal.WithLabelValues(route, "ok").Inc()
			return model, nil
		}
	}

	m.requestsTotal.WithLabelValues(route, result(err)).Inc()
	s.logger.Warn("render failed", zap.String("route", route), zap.Error(err))
	return nil, err
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, dataset.ErrSelectionOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusOf(err), map[string]string{"error": err.Error()})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	model, err := s.build("render", r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model)
}

func (s *Server) handleReference(w http.ResponseWriter, r *http.Request) {
	sel, err := selectionsFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	ref, err := s.dash.Reference(sel.Sort)
	getMetrics().requestsTotal.WithLabelValues("reference", result(err)).Inc()
	if err != nil {
		s.logger.Warn("reference failed", zap.Error(err))
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"sort":    sel.Sort,
		"label":   sel.Sort.Label(),
		"records": ref.Records,
	})
}

type scenarioEntry struct {
	Key        string              `json:"key"`
	Onset      scenario.Onset      `json:"onset"`
	Completion scenario.Completion `json:"completion"`
	File       string              `json:"file"`
}

func (s *Server) handleScenarios(w http.ResponseWriter, _ *http.Request) {
	entries := make([]scenarioEntry, 0, 16)
	for _, k := range scenario.All() {
		name, err := s.files.Name(k)
		if err != nil {
			writeError(w, err)
			return
		}
		entries = append(entries, scenarioEntry{Key: k.String(), Onset: k.Onset, Completion: k.Completion, File: name})
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	model, err := s.build("chart", r)
	if err != nil {
		http.Error(w, err.Error(), statusOf(err))
		return
	}

	var c *render.Chart
	switch mux.Vars(r)["chart"] {
	case "reference":
		c = model.ReferenceChart()
	case "inside":
		c = model.InsideChart()
	default:
		c = model.OutsideChart()
	}

	var buf bytes.Buffer
	if err := render.NewSVG(s.chart.Width, s.chart.Height).Render(&buf, c); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(buf.Bytes())
}
