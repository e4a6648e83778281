package router

import "net/http"

// Outcome classifies the result of a lookup.
type Outcome uint8

const (
	// OutcomeNotFound means no registered pattern matches the path.
	OutcomeNotFound Outcome = iota
	// OutcomeFound means a route matched both the path and the method.
	OutcomeFound
	// OutcomeMethodNotAllowed means the path matched but not for the method.
	OutcomeMethodNotAllowed
	// OutcomeAssetNotFound means an unmatched favicon request. Browsers ask
	// for it on their own, so callers usually answer it quietly.
	OutcomeAssetNotFound
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFound:
		return "found"
	case OutcomeMethodNotAllowed:
		return "method_not_allowed"
	case OutcomeAssetNotFound:
		return "asset_not_found"
	default:
		return "not_found"
	}
}

// Match is the immutable result of Router.Find.
type Match[R any] struct {
	// Route is the matched route handle. For OutcomeAssetNotFound it holds the
	// route configured with WithFaviconRoute, if any.
	Route R

	// Vars maps declared param names to captured values.
	// It is nil when nothing matched or the route declares no params.
	Vars map[string]string

	// Pattern is the registration pattern of the matched route.
	Pattern string

	// Allowed lists the methods registered for the path on a 405 outcome.
	Allowed []string

	Outcome Outcome
	Matched bool
}

// Var returns the captured value of the named param.
func (m Match[R]) Var(name string) string {
	return m.Vars[name]
}

// Status maps the outcome to an HTTP status code.
func (m Match[R]) Status() int {
	switch m.Outcome {
	case OutcomeFound:
		return http.StatusOK
	case OutcomeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusNotFound
	}
}

// matchState accumulates captured values during one lookup. Values are kept
// positionally as spans of the path and keyed by name only once a route is
// found. It lives on the caller's stack and is never shared.
type matchState struct {
	buf              [8]span
	spans            []span
	pathLen          int
	allowed          methodTyp
	methodNotAllowed bool
}

func (ms *matchState) reset(pathLen int) {
	ms.spans = ms.buf[:0]
	ms.pathLen = pathLen
}

// push records the first n bytes of the remaining path as a value.
func (ms *matchState) push(path string, n int) {
	start := ms.pathLen - len(path)
	ms.spans = append(ms.spans, span{start: start, end: start + n})
}

func (ms *matchState) pop() {
	ms.spans = ms.spans[:len(ms.spans)-1]
}

func (ms *matchState) notAllowed(methods methodTyp) {
	ms.methodNotAllowed = true
	ms.allowed |= methods
}

// vars zips the positional values with the route's declared keys.
func (ms *matchState) vars(keys []string, path string) map[string]string {
	if len(keys) == 0 {
		return nil
	}
	vars := make(map[string]string, len(keys))
	for i, key := range keys {
		if i < len(ms.spans) {
			vars[key] = ms.spans[i].in(path)
		}
	}
	return vars
}
