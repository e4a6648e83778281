package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/pathrouter/core/logger"
)

// Check reports whether a dependency is usable.
type Check func(ctx context.Context) error

// Liveness indicates that the process is running. It always answers
// "ALIVE" with 200 OK and checks nothing.
func Liveness(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, "ALIVE")
}

// NoContent answers 204 without a body, for high-frequency pings.
func NoContent(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// Readiness runs every check in order and answers "READY" when all pass.
// The first failure is logged and answered with 503 Service Unavailable.
func Readiness(log *slog.Logger, checks ...Check) http.HandlerFunc {
	if log == nil {
		log = logger.Discard()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				log.ErrorContext(r.Context(), "readiness check failed", logger.Error(err))
				writeText(w, http.StatusServiceUnavailable, http.StatusText(http.StatusServiceUnavailable))
				return
			}
		}
		writeText(w, http.StatusOK, "READY")
	}
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
