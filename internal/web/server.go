// Package web serves the operator dashboard over HTTP. Every interactive
// control of the page maps to one route; handlers call the dashboard
// Controller and render its View.
package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sigx-cli/internal/dashboard"
)

type Options struct {
	Logger *slog.Logger
	// Registry receives the request metrics. A fresh registry is used when nil.
	Registry *prometheus.Registry
}

type Server struct {
	ctrl   *dashboard.Controller
	log    *slog.Logger
	router *mux.Router

	registry *prometheus.Registry
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewServer builds the router. Routes are registered exactly once here.
func NewServer(ctrl *dashboard.Controller, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}

	s := &Server{
		ctrl:     ctrl,
		log:      opts.Logger,
		router:   mux.NewRouter(),
		registry: opts.Registry,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sigx",
			Subsystem: "dashboard",
			Name:      "http_requests_total",
			Help:      "Dashboard HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "sigx",
			Subsystem: "dashboard",
			Name:      "http_request_duration_seconds",
			Help:      "Dashboard HTTP request latency, backend round trips included.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
	s.registry.MustRegister(s.requests, s.latency)
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router
	r.Use(s.instrument)

	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/tabs/{tab}", s.handleTab).Methods(http.MethodGet)
	r.HandleFunc("/events", s.handleEvents).Methods(http.MethodGet)
	r.HandleFunc("/events/{id:[0-9]+}/edit", s.handleEdit).Methods(http.MethodGet)
	r.HandleFunc("/events/{id:[0-9]+}/save", s.handleSave).Methods(http.MethodPost)
	r.HandleFunc("/events/{id:[0-9]+}/approve", s.handleApprove).Methods(http.MethodPost)
	r.HandleFunc("/modal/close", s.handleCloseModal).Methods(http.MethodPost)
	r.HandleFunc("/positions", s.handlePositions).Methods(http.MethodGet)
	r.HandleFunc("/positions/classify", s.handleClassify).Methods(http.MethodPost)
	r.HandleFunc("/positions/import", s.handleImport).Methods(http.MethodPost)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("dashboard listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down dashboard")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.log.Error("dashboard shutdown failed", "err", err)
		return srv.Close()
	}
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil {
			if tmpl, err := cur.GetPathTemplate(); err == nil {
				route = tmpl
			}
		}

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.requests.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
		s.latency.WithLabelValues(route).Observe(time.Since(start).Seconds())
		s.log.Debug("request", "method", r.Method, "path", r.URL.Path, "status", rec.status, "duration", time.Since(start))
	})
}
