// Package middleware provides net/http middleware for request correlation
// and structured request logging.
//
//	h := middleware.Chain(mux,
//		middleware.RequestID(),
//		middleware.Logging(log),
//	)
//
// Chain applies middleware so that the first one listed runs first.
package middleware
