package router

import "errors"

var (
	// Registration errors
	ErrInvalidMethod  = errors.New("invalid http method")
	ErrInvalidPattern = errors.New("routing pattern must begin with '/'")

	// Pattern parsing errors
	ErrInvalidRegexp    = errors.New("invalid regexp pattern in route param")
	ErrEmptyRegexp      = errors.New("route param regexp must not be empty")
	ErrEmptyParam       = errors.New("route param name must not be empty")
	ErrWildcardPosition = errors.New("wildcard '*' must be the last pattern in a route")
	ErrParamDelimiter   = errors.New("route param closing delimiter '}' is missing")
	ErrDuplicateParam   = errors.New("routing pattern contains duplicate param key")

	// Internal consistency and lifecycle faults. Both are reported by panicking.
	ErrMissingChild = errors.New("replacing missing child")
	ErrDestroyed    = errors.New("router used after destroy")
)
