package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/pathrouter/core/health"
	"github.com/dmitrymomot/pathrouter/core/logger"
	"github.com/dmitrymomot/pathrouter/core/router"
	"github.com/dmitrymomot/pathrouter/core/routetable"
	"github.com/dmitrymomot/pathrouter/core/server"
	"github.com/dmitrymomot/pathrouter/middleware"
)

var errNoRoutes = errors.New("route table is empty")

// matchResponse is the JSON body returned for every resolved request.
type matchResponse struct {
	Method  string            `json:"method"`
	Path    string            `json:"path"`
	Outcome string            `json:"outcome"`
	Route   string            `json:"route,omitempty"`
	Pattern string            `json:"pattern,omitempty"`
	Vars    map[string]string `json:"vars,omitempty"`
	Allowed []string          `json:"allowed,omitempty"`
}

func serve(ctx context.Context, cfg Config, table *routetable.Table, log *slog.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	handler, probe, err := newServeHandler(cfg, table, reg, log)
	if err != nil {
		return err
	}
	defer probe.Destroy()

	srv, err := server.NewFromConfig(cfg.Server, server.WithLogger(log))
	if err != nil {
		return err
	}
	return srv.Run(ctx, handler)()
}

// newServeHandler builds the probe router from the table and mounts it behind
// a Mux. Requests under /-/ are served by the tool itself and are not logged.
func newServeHandler(cfg Config, table *routetable.Table, reg *prometheus.Registry, log *slog.Logger) (http.Handler, *router.Router[string], error) {
	metrics, err := router.NewMetrics(reg, "routecheck")
	if err != nil {
		return nil, nil, err
	}

	opts := append(router.ConfigOptions[string](cfg.Router),
		router.WithLogger[string](log),
		router.WithMetrics[string](metrics),
	)
	probe, err := table.Build(opts...)
	if err != nil {
		return nil, nil, err
	}

	mux := router.NewMux(router.WithMuxLogger(log))
	mux.Get("/-/healthz", health.Liveness)
	mux.Get("/-/readyz", health.Readiness(log, func(context.Context) error {
		if len(probe.Routes()) == 0 {
			return errNoRoutes
		}
		return nil
	}))
	mux.Method(http.MethodGet, "/-/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	mux.Handle("/?*", echoHandler(probe, log))

	h := middleware.Chain(mux,
		middleware.RequestID(),
		middleware.LoggingWithConfig(middleware.LoggingConfig{
			Logger:    log,
			LogLevel:  slog.LevelDebug,
			Component: "routecheck",
			Skip: func(r *http.Request) bool {
				return strings.HasPrefix(r.URL.Path, "/-/")
			},
		}),
	)
	return h, probe, nil
}

// echoHandler resolves the request against probe and reports the match.
func echoHandler(probe *router.Router[string], log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if r.URL.RawPath != "" {
			path = r.URL.RawPath
		}

		m := probe.Find(r.Method, path)
		resp := matchResponse{
			Method:  r.Method,
			Path:    path,
			Outcome: m.Outcome.String(),
			Route:   m.Route,
			Pattern: m.Pattern,
			Vars:    m.Vars,
			Allowed: m.Allowed,
		}

		w.Header().Set("Content-Type", "application/json")
		if m.Outcome == router.OutcomeMethodNotAllowed {
			w.Header().Set("Allow", strings.Join(m.Allowed, ", "))
		}
		w.WriteHeader(m.Status())

		if err := json.NewEncoder(w).Encode(resp); err != nil {
			log.ErrorContext(r.Context(), "failed to write match response",
				logger.Method(r.Method),
				logger.Path(path),
				logger.Error(err),
			)
		}
	}
}
