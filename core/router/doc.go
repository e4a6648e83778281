// Package router provides a radix-trie request router that maps an HTTP
// method and URL path to a registered route handle and extracts named path
// variables. It is generic over the route handle type, so it can dispatch to
// http.Handler values, names, or any other value the caller wants back.
//
// # Features
//
//   - Multi-way radix trie with static, param, regexp and catch-all segments
//   - Deterministic priority: static, then regexp, then param, then catch-all
//   - Backtracking search that drops partial captures of failed branches
//   - Exact-match table for variable-free patterns
//   - Method-not-allowed detection with the list of allowed methods
//   - Optional case-insensitive matching
//   - Prometheus metrics and structured logging
//   - Lock-free concurrent lookups once registration is done
//   - Thin net/http adapter exposing variables through Request.PathValue
//
// # Basic Usage
//
//	r := router.New[string]()
//
//	r.MustInsert("GET", "/users", "list-users")
//	r.MustInsert("GET", "/users/{id}", "show-user")
//	r.MustInsert("*", "/health", "health")
//
//	m := r.Find("GET", "/users/42")
//	if m.Matched {
//		fmt.Println(m.Route, m.Var("id")) // show-user 42
//	}
//
// # Pattern Syntax
//
//	/users                 static segment, matched byte for byte
//	/users/{id}            named param, never crosses a '/'
//	/users/:id             shorthand for {id}
//	/orders/{id:[0-9]+}    regexp param, the expression is anchored automatically
//	/files/{name}.{ext}    a param ends at the byte that follows it in the pattern
//	/static/*              catch-all, captured under "*"
//	/static/*filepath      named catch-all
//	/docs/?*               registers both /docs and /docs/*
//
// A catch-all must be the last segment. Param names must be unique within a
// pattern. Registering the same method and pattern twice replaces the route.
//
// # Outcomes
//
// Find never returns an error. The Outcome field of the returned Match tells
// the caller what happened:
//
//	switch m := r.Find(method, path); m.Outcome {
//	case router.OutcomeFound:
//		// m.Route, m.Vars
//	case router.OutcomeMethodNotAllowed:
//		// m.Allowed lists the registered methods
//	case router.OutcomeAssetNotFound:
//		// an unrouted favicon.ico request
//	default:
//		// not found
//	}
//
// # net/http
//
// Mux wraps Router[http.Handler]:
//
//	mux := router.NewMux(router.WithMuxLogger(log))
//	mux.Get("/users/{id}", func(w http.ResponseWriter, r *http.Request) {
//		id := r.PathValue("id")
//		// ...
//	})
//	http.ListenAndServe(":8080", mux)
//
// It answers 405 with an Allow header, 404 otherwise, and serves an empty
// cacheable 404 for favicon requests nobody routed.
//
// # Configuration
//
// Config carries the router settings with env tags, so it can be loaded with
// the config package and passed to NewFromConfig:
//
//	var cfg router.Config
//	config.MustLoad(&cfg)
//	r := router.NewFromConfig[string](cfg, router.WithMetrics[string](metrics))
//
// # Concurrency
//
// Insert is meant to run from a single goroutine while the application
// starts. After that Find, Exists and Routes may be called from any number
// of goroutines without locking. Destroy requires exclusive access, and any
// later call panics with ErrDestroyed.
package router
