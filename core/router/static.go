package router

// staticRoutes is the exact-match table consulted before the trie walk. It
// holds every pattern without placeholders and mirrors what the trie returns
// for the same path and method.
type staticRoutes[R any] map[string]endpoints[R]

func (s staticRoutes[R]) add(path string, method methodTyp, ep *endpoint[R]) {
	eps, ok := s[path]
	if !ok {
		eps = make(endpoints[R], 1)
		s[path] = eps
	}
	for _, mt := range methodOrder {
		if method&mt != 0 {
			eps[mt] = ep
		}
	}
}

// lookup returns nil when the path is unknown or has no route for method, in
// which case the trie decides, since a dynamic route may still serve it.
func (s staticRoutes[R]) lookup(path string, method methodTyp) *endpoint[R] {
	return s[path][method]
}
