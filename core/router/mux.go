package router

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/pathrouter/core/logger"
)

// Mux binds a Router to net/http. Matched variables are exposed through
// http.Request.PathValue.
type Mux struct {
	router           *Router[http.Handler]
	notFound         http.Handler
	methodNotAllowed http.Handler
	favicon          http.Handler
	logger           *slog.Logger
	routerOpts       []Option[http.Handler]
}

// NewMux creates a new Mux instance.
func NewMux(opts ...MuxOption) *Mux {
	m := &Mux{
		notFound:         http.HandlerFunc(notFoundHandler),
		methodNotAllowed: http.HandlerFunc(methodNotAllowedHandler),
		favicon:          http.HandlerFunc(faviconHandler),
		logger:           logger.Discard(),
	}

	for _, opt := range opts {
		opt(m)
	}

	base := []Option[http.Handler]{
		WithLogger[http.Handler](m.logger),
		WithFaviconRoute(m.favicon),
	}
	m.router = New(append(base, m.routerOpts...)...)
	return m
}

// ServeHTTP implements http.Handler interface.
func (m *Mux) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Use RawPath if available to preserve URL encoding
	path := r.URL.Path
	if r.URL.RawPath != "" {
		path = r.URL.RawPath
	}
	if path == "" {
		path = "/"
	}

	match := m.router.Find(r.Method, path)

	switch match.Outcome {
	case OutcomeFound:
		for key, value := range match.Vars {
			r.SetPathValue(key, value)
		}
		match.Route.ServeHTTP(w, r)

	case OutcomeMethodNotAllowed:
		// Set Allow header per RFC 9110 before responding with 405
		w.Header().Set("Allow", strings.Join(match.Allowed, ", "))
		m.methodNotAllowed.ServeHTTP(w, r)

	case OutcomeAssetNotFound:
		match.Route.ServeHTTP(w, r)

	default:
		m.notFound.ServeHTTP(w, r)
	}
}

// Get registers a handler for GET requests.
func (m *Mux) Get(pattern string, h http.HandlerFunc) {
	m.handle(http.MethodGet, pattern, h)
}

// Post registers a handler for POST requests.
func (m *Mux) Post(pattern string, h http.HandlerFunc) {
	m.handle(http.MethodPost, pattern, h)
}

// Put registers a handler for PUT requests.
func (m *Mux) Put(pattern string, h http.HandlerFunc) {
	m.handle(http.MethodPut, pattern, h)
}

// Delete registers a handler for DELETE requests.
func (m *Mux) Delete(pattern string, h http.HandlerFunc) {
	m.handle(http.MethodDelete, pattern, h)
}

// Patch registers a handler for PATCH requests.
func (m *Mux) Patch(pattern string, h http.HandlerFunc) {
	m.handle(http.MethodPatch, pattern, h)
}

// Head registers a handler for HEAD requests.
func (m *Mux) Head(pattern string, h http.HandlerFunc) {
	m.handle(http.MethodHead, pattern, h)
}

// Options registers a handler for OPTIONS requests.
func (m *Mux) Options(pattern string, h http.HandlerFunc) {
	m.handle(http.MethodOptions, pattern, h)
}

// Handle registers a handler for all HTTP methods.
func (m *Mux) Handle(pattern string, h http.Handler) {
	m.handle(MethodAny, pattern, h)
}

// Method registers a handler for a specific HTTP method.
func (m *Mux) Method(method, pattern string, h http.Handler) {
	m.handle(method, pattern, h)
}

// Routes returns all registered routes.
func (m *Mux) Routes() []Route {
	return m.router.Routes()
}

// Router returns the underlying router, for example to probe it with Exists.
func (m *Mux) Router() *Router[http.Handler] {
	return m.router
}

// handle registers a handler in the routing tree. Registration happens at
// startup, so a malformed pattern is a programmer error and panics.
func (m *Mux) handle(method, pattern string, h http.Handler) {
	if err := m.router.Insert(method, pattern, h); err != nil {
		m.logger.Error("route registration failed",
			logger.Component("mux"),
			logger.Method(method),
			logger.Pattern(pattern),
			logger.Error(err),
		)
		panic(err)
	}
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
}

func methodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}

// faviconHandler answers unrouted favicon requests with an empty, cacheable
// 404 so browsers stop asking on every page load.
func faviconHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusNotFound)
}
