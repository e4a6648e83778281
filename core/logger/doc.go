// Package logger provides structured logging utilities built on Go's standard
// slog package: a small option-based constructor and nil-safe attribute
// helpers for the keys used across the router and its tools.
//
// # Basic Usage
//
//	import "github.com/dmitrymomot/pathrouter/core/logger"
//
//	log := logger.New(
//		logger.WithDevelopment("routecheck"),
//		logger.WithLevel(slog.LevelDebug),
//	)
//
//	log.Info("route table loaded",
//		logger.Component("routetable"),
//		logger.Count("routes", n),
//	)
//
// # Environment Configurations
//
//	// Development: text format, debug level, stderr
//	devLogger := logger.New(logger.WithDevelopment("myapp"))
//
//	// Production: JSON format, info level, stderr
//	prodLogger := logger.New(logger.WithProduction("myapp"))
//
// # Attribute Helpers
//
// Helpers that receive empty or nil input return an empty slog.Attr, which
// slog drops, so they can be passed without checks:
//
//	log.Error("registration failed",
//		logger.Error(err),
//		logger.Method("GET"),
//		logger.Pattern("/users/{id}"),
//	)
package logger
