// Package main is the entry point for routecheck, a tool that loads a YAML
// route table and resolves method and path probes against it.
//
// Usage:
//
//	routecheck [-table routes.yaml] [-routes] METHOD PATH [METHOD PATH ...]
//	routecheck [-table routes.yaml] -serve [-addr :8080]
//
// Every probe prints its outcome, the matched route name and the captured
// variables. The exit code is 1 when any probe does not match and 2 when the
// table cannot be loaded.
//
// With -serve the table is exposed over HTTP instead: every request is
// resolved against it and answered with the match as JSON, next to health
// and Prometheus endpoints under /-/.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"github.com/dmitrymomot/pathrouter/core/config"
	"github.com/dmitrymomot/pathrouter/core/logger"
	"github.com/dmitrymomot/pathrouter/core/router"
	"github.com/dmitrymomot/pathrouter/core/routetable"
	"github.com/dmitrymomot/pathrouter/core/server"
)

// Config holds routecheck settings loaded from the environment.
type Config struct {
	Table     string `env:"ROUTECHECK_TABLE" envDefault:"routes.yaml"`
	LogLevel  string `env:"ROUTECHECK_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"ROUTECHECK_LOG_FORMAT" envDefault:"text"`

	Router router.Config
	Server server.Config
}

var (
	errUsage       = errors.New("probes must be given as METHOD PATH pairs")
	errServeProbes = errors.New("probes cannot be combined with -serve")
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var cfg Config
	if err := config.Parse(&cfg); err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return 2
	}

	fs := flag.NewFlagSet("routecheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	tablePath := fs.String("table", cfg.Table, "Path to the YAML route table")
	listRoutes := fs.Bool("routes", false, "Print registered routes before probing")
	serveMode := fs.Bool("serve", false, "Serve the table over HTTP instead of probing")
	addr := fs.String("addr", cfg.Server.Addr, "Listen address for -serve")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	log := newLogger(cfg, stderr)

	probes := fs.Args()
	if *serveMode && len(probes) > 0 {
		log.Error("invalid arguments", logger.Error(errServeProbes))
		return 2
	}
	if len(probes)%2 != 0 {
		log.Error("invalid arguments", logger.Error(errUsage))
		return 2
	}

	table, err := routetable.Load(*tablePath)
	if err != nil {
		log.Error("failed to load route table", logger.File(*tablePath), logger.Error(err))
		return 2
	}

	if *serveMode {
		cfg.Server.Addr = *addr
		if err := serve(ctx, cfg, table, log); err != nil {
			log.Error("server failed", logger.Error(err))
			return 2
		}
		return 0
	}

	opts := append(router.ConfigOptions[string](cfg.Router), router.WithLogger[string](log))
	r, err := table.Build(opts...)
	if err != nil {
		log.Error("failed to build router", logger.File(*tablePath), logger.Error(err))
		return 2
	}
	defer r.Destroy()

	log.Info("route table loaded",
		logger.File(*tablePath),
		logger.Count("routes", len(r.Routes())),
	)

	if *listRoutes {
		for _, rt := range r.Routes() {
			fmt.Fprintf(stdout, "%-7s %s\n", rt.Method, rt.Pattern)
		}
	}

	code := 0
	for i := 0; i < len(probes); i += 2 {
		method, path := strings.ToUpper(probes[i]), probes[i+1]
		m := r.Find(method, path)
		fmt.Fprintln(stdout, formatMatch(method, path, m))

		log.Debug("probe resolved",
			logger.Method(method),
			logger.Path(path),
			logger.Result(m.Outcome.String()),
			logger.StatusCode(m.Status()),
		)
		if !m.Matched {
			code = 1
		}
	}
	return code
}

func newLogger(cfg Config, w io.Writer) *slog.Logger {
	opts := []logger.Option{
		logger.WithOutput(w),
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithAttr(logger.Component("routecheck")),
	}
	if strings.EqualFold(cfg.LogFormat, "json") {
		opts = append(opts, logger.WithJSONFormatter())
	}
	return logger.New(opts...)
}

// formatMatch renders one probe result as a single line, for example
// "GET /users/42 -> found user id=42".
func formatMatch(method, path string, m router.Match[string]) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s -> %s", method, path, m.Outcome)

	switch m.Outcome {
	case router.OutcomeFound:
		fmt.Fprintf(&b, " %s", m.Route)
		for _, k := range slices.Sorted(maps.Keys(m.Vars)) {
			fmt.Fprintf(&b, " %s=%s", k, m.Vars[k])
		}
	case router.OutcomeMethodNotAllowed:
		fmt.Fprintf(&b, " allow=%s", strings.Join(m.Allowed, ","))
	}
	return b.String()
}
