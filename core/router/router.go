package router

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"github.com/dmitrymomot/pathrouter/core/cache"
	"github.com/dmitrymomot/pathrouter/core/logger"
)

// Router is a radix-trie request router. R is the opaque route handle
// returned on a match.
//
// Routes are registered with Insert from a single goroutine before serving.
// After that the router is read-only and Find and Exists are safe for
// concurrent use without locking. Destroy needs exclusive access.
type Router[R any] struct {
	tree    *node[R]
	static  staticRoutes[R]
	regexps *cache.LRUCache[string, *regexp.Regexp]
	metrics *Metrics
	logger  *slog.Logger
	favicon R

	regexCacheSize  int
	routes          int
	staticFastPath  bool
	caseInsensitive bool
	destroyed       bool
}

// Route describes a single registered route with its HTTP method and pattern.
type Route struct {
	Method  string
	Pattern string
}

// New creates a router with the given options.
func New[R any](opts ...Option[R]) *Router[R] {
	r := &Router[R]{
		tree:           &node[R]{},
		static:         make(staticRoutes[R]),
		logger:         logger.Discard(),
		regexCacheSize: DefaultRegexCacheSize,
		staticFastPath: true,
	}

	for _, opt := range opts {
		opt(r)
	}

	r.regexps = cache.NewLRUCache[string, *regexp.Regexp](r.regexCacheSize)
	return r
}

// Insert registers route for method and pattern. Method "*" registers every
// standard method. Registering the same method and pattern twice replaces the
// earlier route.
//
// Pattern syntax:
//
//	/users            static
//	/users/{id}       named param, also written /users/:id
//	/users/{id:\d+}   regexp param, anchored automatically
//	/static/*         catch-all, also named: /static/*filepath
//	/docs/?*          both /docs and /docs/*
//
// Errors abort only this registration and leave the router unchanged.
func (r *Router[R]) Insert(method, pattern string, route R) error {
	r.mustBeAlive()

	mt, ok := parseMethod(method)
	if !ok {
		return fmt.Errorf("%w: '%s'", ErrInvalidMethod, method)
	}
	if len(pattern) == 0 || pattern[0] != '/' {
		return fmt.Errorf("%w: '%s'", ErrInvalidPattern, pattern)
	}

	patterns := expandPattern(rewriteShorthand(pattern))

	// Validate and compile everything before touching the tree.
	rexs := make(map[string]*regexp.Regexp)
	eps := make([]*endpoint[R], len(patterns))
	for i, p := range patterns {
		ep, err := r.prepare(p, route, rexs)
		if err != nil {
			return err
		}
		eps[i] = ep
	}

	compiled := func(expr string) (*regexp.Regexp, error) {
		if rex, ok := rexs[expr]; ok {
			return rex, nil
		}
		return r.compile(expr)
	}
	for i, p := range patterns {
		if err := r.insert(mt, p, eps[i], compiled); err != nil {
			return err
		}
	}
	return nil
}

// MustInsert is like Insert but panics on error.
func (r *Router[R]) MustInsert(method, pattern string, route R) {
	if err := r.Insert(method, pattern, route); err != nil {
		panic(err)
	}
}

// prepare validates pattern and compiles its regexps into rexs, once per
// expression.
func (r *Router[R]) prepare(pattern string, route R, rexs map[string]*regexp.Regexp) (*endpoint[R], error) {
	var compileErr error
	keys, err := patternSegments(pattern, func(seg segment) {
		if seg.typ != ntRegexp || compileErr != nil {
			return
		}
		if _, ok := rexs[seg.rexpat]; ok {
			return
		}
		var rex *regexp.Regexp
		if rex, compileErr = r.compile(seg.rexpat); compileErr == nil {
			rexs[seg.rexpat] = rex
		}
	})
	if err != nil {
		return nil, err
	}
	if compileErr != nil {
		return nil, compileErr
	}

	return &endpoint[R]{route: route, pattern: pattern, paramKeys: keys}, nil
}

func (r *Router[R]) insert(method methodTyp, pattern string, ep *endpoint[R], compile compileFunc) error {
	key := pattern
	if r.caseInsensitive {
		var err error
		if key, err = foldPattern(pattern); err != nil {
			return err
		}
	}

	hn, added, err := r.tree.insertRoute(method, key, ep, compile)
	if err != nil {
		return err
	}

	if isStaticPattern(key) {
		r.static.add(key, method, ep)
	}

	r.routes += added
	r.metrics.setRoutes(r.routes)

	msg := "route registered"
	if added < len(methodNames(method)) {
		msg = "route replaced"
	}
	r.logger.Debug(msg,
		logger.Component("router"),
		logger.Pattern(pattern),
		logger.Methods(methodNames(method)),
		logger.Type(hn.typ.String()),
	)
	return nil
}

// compile returns the compiled anchored expression, reusing an earlier
// compilation of the same source.
func (r *Router[R]) compile(expr string) (*regexp.Regexp, error) {
	if rex, ok := r.regexps.Get(expr); ok {
		r.metrics.observeRegexCache(true)
		return rex, nil
	}
	r.metrics.observeRegexCache(false)

	rex, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: '%s': %v", ErrInvalidRegexp, expr, err)
	}
	r.regexps.Put(expr, rex)
	return rex, nil
}

// Find returns the best route for method and path. Static routes are served
// from the exact-match table when possible; otherwise the trie is walked with
// static segments preferred over regexp params, regexp params over plain
// params, and plain params over catch-alls.
func (r *Router[R]) Find(method, path string) Match[R] {
	r.mustBeAlive()

	search := path
	if r.caseInsensitive {
		search = foldPath(path)
	}
	mt := lookupMethod(method)

	if r.staticFastPath {
		if ep := r.static.lookup(search, mt); ep != nil {
			r.metrics.observeStaticHit()
			return Match[R]{Route: ep.route, Pattern: ep.pattern, Outcome: OutcomeFound, Matched: true}
		}
	}

	var ms matchState
	ms.reset(len(search))

	ep := r.tree.findRoute(&ms, mt, search)
	if ep != nil {
		// Values come from the request path unless folding moved the offsets.
		src := path
		if r.caseInsensitive && !foldKeepsOffsets(path) {
			src = search
		}
		r.metrics.observeLookup(OutcomeFound)
		return Match[R]{
			Route:   ep.route,
			Vars:    ms.vars(ep.paramKeys, src),
			Pattern: ep.pattern,
			Outcome: OutcomeFound,
			Matched: true,
		}
	}

	if ms.methodNotAllowed {
		r.metrics.observeLookup(OutcomeMethodNotAllowed)
		return Match[R]{Allowed: methodNames(ms.allowed), Outcome: OutcomeMethodNotAllowed}
	}

	if strings.HasSuffix(search, "favicon.ico") {
		r.metrics.observeLookup(OutcomeAssetNotFound)
		return Match[R]{Route: r.favicon, Outcome: OutcomeAssetNotFound}
	}

	r.metrics.observeLookup(OutcomeNotFound)
	return Match[R]{Outcome: OutcomeNotFound}
}

// Exists reports whether a route is registered for method and path. It runs
// the same search as Find without building the variables map.
func (r *Router[R]) Exists(method, path string) bool {
	r.mustBeAlive()

	if r.caseInsensitive {
		path = foldPath(path)
	}
	mt := lookupMethod(method)

	if r.staticFastPath && r.static.lookup(path, mt) != nil {
		return true
	}

	var ms matchState
	ms.reset(len(path))
	return r.tree.findRoute(&ms, mt, path) != nil
}

// Routes returns all registered routes ordered by pattern and method.
func (r *Router[R]) Routes() []Route {
	r.mustBeAlive()

	seen := make(map[Route]struct{})
	rts := []Route{}

	r.tree.walk(func(eps endpoints[R]) bool {
		for mt, ep := range eps {
			rt := Route{Method: methodTypString(mt), Pattern: ep.pattern}
			if _, ok := seen[rt]; ok {
				continue
			}
			seen[rt] = struct{}{}
			rts = append(rts, rt)
		}
		return false
	})

	slices.SortFunc(rts, func(a, b Route) int {
		if c := cmp.Compare(a.Pattern, b.Pattern); c != 0 {
			return c
		}
		return cmp.Compare(a.Method, b.Method)
	})
	return rts
}

// Destroy releases the whole trie and the static table. The router must not
// be used afterwards; doing so panics with ErrDestroyed. It must not run
// concurrently with lookups.
func (r *Router[R]) Destroy() {
	if r.destroyed {
		return
	}

	r.tree.destroy()
	r.tree = nil
	clear(r.static)
	r.static = nil
	r.regexps.Clear()
	r.destroyed = true
	r.metrics.setRoutes(0)

	r.logger.LogAttrs(context.Background(), slog.LevelInfo, "router destroyed",
		logger.Component("router"),
		logger.Count("routes", r.routes),
	)
	r.routes = 0
}

func (r *Router[R]) mustBeAlive() {
	if r.destroyed {
		panic(ErrDestroyed)
	}
}
