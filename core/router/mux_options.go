package router

import (
	"log/slog"
	"net/http"
)

// MuxOption configures a Mux during creation.
type MuxOption func(*Mux)

// WithNotFoundHandler sets the handler for unmatched requests.
func WithNotFoundHandler(h http.Handler) MuxOption {
	return func(m *Mux) {
		if h != nil {
			m.notFound = h
		}
	}
}

// WithMethodNotAllowedHandler sets the handler for requests whose path matched
// but whose method did not. The Allow header is set before it runs.
func WithMethodNotAllowedHandler(h http.Handler) MuxOption {
	return func(m *Mux) {
		if h != nil {
			m.methodNotAllowed = h
		}
	}
}

// WithFaviconHandler sets the handler for unrouted favicon.ico requests.
func WithFaviconHandler(h http.Handler) MuxOption {
	return func(m *Mux) {
		if h != nil {
			m.favicon = h
		}
	}
}

// WithMuxLogger sets a custom logger for the mux and its router.
func WithMuxLogger(logger *slog.Logger) MuxOption {
	return func(m *Mux) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithRouterOptions passes options through to the underlying Router.
func WithRouterOptions(opts ...Option[http.Handler]) MuxOption {
	return func(m *Mux) {
		m.routerOpts = append(m.routerOpts, opts...)
	}
}
