package router

import "log/slog"

// Option configures a Router during creation.
type Option[R any] func(*Router[R])

// WithLogger sets a custom logger for the router.
func WithLogger[R any](logger *slog.Logger) Option[R] {
	return func(r *Router[R]) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics attaches Prometheus collectors created by NewMetrics.
func WithMetrics[R any](m *Metrics) Option[R] {
	return func(r *Router[R]) {
		r.metrics = m
	}
}

// WithFaviconRoute sets the route returned with OutcomeAssetNotFound when a
// request for favicon.ico matches nothing.
func WithFaviconRoute[R any](route R) Option[R] {
	return func(r *Router[R]) {
		r.favicon = route
	}
}

// WithCaseInsensitive folds the case of static pattern parts and request
// paths. Captured values keep the request's original case whenever folding
// does not change the path length; regexp constraints see the folded input.
func WithCaseInsensitive[R any]() Option[R] {
	return func(r *Router[R]) {
		r.caseInsensitive = true
	}
}

// WithoutStaticFastPath disables the exact-match table so every lookup walks
// the trie.
func WithoutStaticFastPath[R any]() Option[R] {
	return func(r *Router[R]) {
		r.staticFastPath = false
	}
}

// WithRegexCacheSize sets how many compiled param regexps are kept for reuse.
func WithRegexCacheSize[R any](size int) Option[R] {
	return func(r *Router[R]) {
		if size > 0 {
			r.regexCacheSize = size
		}
	}
}
