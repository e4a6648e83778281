// Package health provides liveness and readiness probe handlers for
// net/http servers.
//
//	mux.Get("/healthz", health.Liveness)
//	mux.Get("/readyz", health.Readiness(log, func(ctx context.Context) error {
//		return db.PingContext(ctx)
//	}))
package health
