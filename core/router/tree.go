package router

// Radix tree implementation based on the original work by
// Armon Dadgar in https://github.com/armon/go-radix/blob/master/radix.go
// (MIT licensed). Heavily modified for use as a HTTP routing tree.

import (
	"cmp"
	"fmt"
	"regexp"
	"slices"
	"strings"
)

type nodeTyp uint8

const (
	ntStatic   nodeTyp = iota // /home
	ntRegexp                  // /{id:[0-9]+}
	ntParam                   // /{user}
	ntCatchAll                // /api/v1/*
)

func (t nodeTyp) String() string {
	switch t {
	case ntStatic:
		return "static"
	case ntRegexp:
		return "regexp"
	case ntParam:
		return "param"
	case ntCatchAll:
		return "catch-all"
	}
	return fmt.Sprintf("nodeTyp(%d)", uint8(t))
}

// compileFunc compiles an anchored param regexp.
type compileFunc func(expr string) (*regexp.Regexp, error)

type node[R any] struct {
	// regexp matcher for regexp nodes
	rex *regexp.Regexp

	// route endpoints on the leaf node
	endpoints endpoints[R]

	// prefix is the common prefix we ignore; for regexp nodes it holds the
	// anchored expression, for param and catch-all nodes the segment text.
	prefix string

	// child nodes should be stored in-order for iteration,
	// in groups of the node type.
	children [ntCatchAll + 1]nodes[R]

	// delimiter that terminates a param value
	tail byte

	// node type: static, regexp, param, catchAll
	typ nodeTyp

	// first byte of the prefix
	label byte
}

// endpoints is a mapping of http method constants to routes
// for a given node.
type endpoints[R any] map[methodTyp]*endpoint[R]

type endpoint[R any] struct {
	// opaque route handle
	route R

	// pattern is the routing pattern the route was registered with
	pattern string

	// parameter keys in declaration order
	paramKeys []string
}

// methods returns the bitmask of methods registered on the node.
func (s endpoints[R]) methods() methodTyp {
	var mask methodTyp
	for mt := range s {
		mask |= mt
	}
	return mask
}

// insertRoute places pattern in the trie and registers ep on its terminal
// node. It returns that node and the number of methods newly added there.
func (n *node[R]) insertRoute(method methodTyp, pattern string, ep *endpoint[R], compile compileFunc) (*node[R], int, error) {
	var parent *node[R]
	search := pattern

	for {
		// Handle key exhaustion
		if len(search) == 0 {
			return n, n.setEndpoint(method, ep), nil
		}

		// We're going to be searching for a wild node next,
		// in this case, we need to get the tail
		label := search[0]
		var seg segment
		if label == '{' || label == '*' {
			var err error
			if seg, err = nextSegment(search); err != nil {
				return nil, 0, err
			}
		}

		var prefix string
		if seg.typ == ntRegexp {
			prefix = seg.rexpat
		}

		// Look for the edge to attach to
		parent = n
		n = n.getEdge(seg.typ, label, seg.tail, prefix)

		// No edge, create one
		if n == nil {
			child := &node[R]{label: label, tail: seg.tail, prefix: search}
			hn, err := parent.addChild(child, search, compile)
			if err != nil {
				return nil, 0, err
			}
			return hn, hn.setEndpoint(method, ep), nil
		}

		if n.typ > ntStatic {
			// Param nodes are fully materialized by addChild when first created,
			// so just skip the segment and continue.
			search = search[seg.end:]
			continue
		}

		// Static nodes fall below here.
		// Determine longest prefix of the search key on match.
		commonPrefix := longestPrefix(search, n.prefix)
		if commonPrefix == len(n.prefix) {
			search = search[commonPrefix:]
			continue
		}

		// Split the node
		child := &node[R]{
			typ:    ntStatic,
			prefix: search[:commonPrefix],
		}
		parent.replaceChild(search[0], seg.tail, child)

		// Restore the existing node under the split point. Static prefixes never
		// hold placeholders, so re-adding it cannot fail.
		n.label = n.prefix[commonPrefix]
		n.prefix = n.prefix[commonPrefix:]
		if _, err := child.addChild(n, n.prefix, compile); err != nil {
			return nil, 0, err
		}

		// If the new key is a subset, set the endpoint on this node and finish.
		search = search[commonPrefix:]
		if len(search) == 0 {
			return child, child.setEndpoint(method, ep), nil
		}

		// Create a new edge for the node
		subchild := &node[R]{
			typ:    ntStatic,
			label:  search[0],
			prefix: search,
		}
		hn, err := child.addChild(subchild, search, compile)
		if err != nil {
			return nil, 0, err
		}
		return hn, hn.setEndpoint(method, ep), nil
	}
}

// addChild appends the new child node to the tree using prefix as the trie key.
// It returns the node the route terminates on, which is child itself or one of
// the nodes materialized below it.
func (n *node[R]) addChild(child *node[R], prefix string, compile compileFunc) (*node[R], error) {
	search := prefix

	// handler leaf node added to the tree is the child.
	// this may be overridden later down the flow
	hn := child

	seg, err := nextSegment(search)
	if err != nil {
		return nil, err
	}

	if seg.typ != ntStatic {
		// Search prefix contains a param, regexp or wildcard

		var rex *regexp.Regexp
		if seg.typ == ntRegexp {
			if rex, err = compile(seg.rexpat); err != nil {
				return nil, err
			}
		}

		if seg.start == 0 {
			// Route starts with a param
			child.typ = seg.typ
			child.tail = seg.tail
			child.prefix = search[:seg.end]
			if seg.typ == ntRegexp {
				child.prefix = seg.rexpat
				child.rex = rex
			}

			if seg.end != len(search) {
				// Adjacent params are not possible, so the remainder is a static edge.
				search = search[seg.end:]
				nn := &node[R]{
					typ:    ntStatic,
					label:  search[0],
					prefix: search,
				}
				if hn, err = child.addChild(nn, search, compile); err != nil {
					return nil, err
				}
			}
		} else {
			// Starts with a static segment followed by the param edge
			child.typ = ntStatic
			child.prefix = search[:seg.start]
			child.rex = nil

			search = search[seg.start:]
			nn := &node[R]{
				typ:   seg.typ,
				label: search[0],
				tail:  seg.tail,
			}
			if hn, err = child.addChild(nn, search, compile); err != nil {
				return nil, err
			}
		}
	}

	n.children[child.typ] = append(n.children[child.typ], child)
	n.children[child.typ].sort()
	return hn, nil
}

// replaceChild swaps the static child with the given label for child.
// A missing edge means the tree is inconsistent, which is a bug.
func (n *node[R]) replaceChild(label, tail byte, child *node[R]) {
	nds := n.children[child.typ]
	for i := range nds {
		if nds[i].label == label && nds[i].tail == tail {
			nds[i] = child
			nds[i].label = label
			nds[i].tail = tail
			return
		}
	}
	panic(fmt.Errorf("%w: label '%c'", ErrMissingChild, label))
}

func (n *node[R]) getEdge(ntyp nodeTyp, label, tail byte, prefix string) *node[R] {
	nds := n.children[ntyp]
	for i := range nds {
		if nds[i].label == label && nds[i].tail == tail {
			if ntyp == ntRegexp && nds[i].prefix != prefix {
				continue
			}
			return nds[i]
		}
	}
	return nil
}

// setEndpoint stores ep for every method in the mask and returns how many of
// them were not registered before.
func (n *node[R]) setEndpoint(method methodTyp, ep *endpoint[R]) int {
	if n.endpoints == nil {
		n.endpoints = make(endpoints[R])
	}

	added := 0
	for _, mt := range methodOrder {
		if method&mt == 0 {
			continue
		}
		if _, ok := n.endpoints[mt]; !ok {
			added++
		}
		n.endpoints[mt] = ep
	}
	return added
}

// findRoute walks the children of n in priority order: static, regexp, param,
// catch-all. Captured values are pushed on ms before descending and popped
// again when the branch fails.
func (n *node[R]) findRoute(ms *matchState, method methodTyp, path string) *endpoint[R] {
	for t, nds := range n.children {
		if len(nds) == 0 {
			continue
		}

		switch ntyp := nodeTyp(t); ntyp {
		case ntStatic:
			var label byte
			if path != "" {
				label = path[0]
			}
			xn := nds.findEdge(label)
			if xn == nil || !strings.HasPrefix(path, xn.prefix) {
				continue
			}
			if ep := xn.descend(ms, method, path[len(xn.prefix):]); ep != nil {
				return ep
			}

		case ntRegexp, ntParam:
			// short-circuit and return no matching route for empty param values
			if path == "" {
				continue
			}

			// serially loop through each node grouped by the tail delimiter
			for _, xn := range nds {
				p := strings.IndexByte(path, xn.tail)
				if p < 0 {
					if xn.tail != '/' {
						continue
					}
					p = len(path)
				} else if ntyp == ntRegexp && p == 0 {
					continue
				}

				if ntyp == ntRegexp {
					if !xn.rex.MatchString(path[:p]) {
						continue
					}
				} else if strings.IndexByte(path[:p], '/') != -1 {
					// avoid a match across path segments
					continue
				}

				ms.push(path, p)
				if ep := xn.descend(ms, method, path[p:]); ep != nil {
					return ep
				}
				ms.pop()
			}

		default:
			// catch-all nodes
			ms.push(path, len(path))
			if ep := nds[0].descend(ms, method, ""); ep != nil {
				return ep
			}
			ms.pop()
		}
	}

	return nil
}

// descend resolves n as the terminal node when path is exhausted and keeps
// searching its children otherwise, or when the method is not registered here.
func (n *node[R]) descend(ms *matchState, method methodTyp, path string) *endpoint[R] {
	if len(path) == 0 && n.isLeaf() {
		if ep := n.endpoints[method]; ep != nil {
			return ep
		}
		// The path exists but not for this method. Keep looking: another
		// branch may still produce a full match.
		ms.notAllowed(n.endpoints.methods())
	}
	return n.findRoute(ms, method, path)
}

func (n *node[R]) isLeaf() bool {
	return n.endpoints != nil
}

// walk visits every node with endpoints until fn returns true.
func (n *node[R]) walk(fn func(eps endpoints[R]) bool) bool {
	if n.endpoints != nil && fn(n.endpoints) {
		return true
	}

	for _, ns := range n.children {
		for _, cn := range ns {
			if cn.walk(fn) {
				return true
			}
		}
	}
	return false
}

// destroy recursively releases every child and endpoint below n.
func (n *node[R]) destroy() {
	for t := range n.children {
		for _, cn := range n.children[t] {
			cn.destroy()
		}
		clear(n.children[t])
		n.children[t] = nil
	}
	clear(n.endpoints)
	n.endpoints = nil
	n.rex = nil
}

type nodes[R any] []*node[R]

// sort orders the list by label. Within equal labels, param nodes with '/' as
// the tail go last so more specific delimiters are tried first; otherwise the
// registration order is kept. The list order determines the traversal order.
func (ns nodes[R]) sort() {
	slices.SortStableFunc(ns, func(a, b *node[R]) int {
		if c := cmp.Compare(a.label, b.label); c != 0 {
			return c
		}
		return cmp.Compare(a.slashTail(), b.slashTail())
	})
}

func (n *node[R]) slashTail() int {
	if n.typ > ntStatic && n.tail == '/' {
		return 1
	}
	return 0
}

func (ns nodes[R]) findEdge(label byte) *node[R] {
	i, j := 0, len(ns)-1
	for i <= j {
		idx := i + (j-i)/2
		switch {
		case label > ns[idx].label:
			i = idx + 1
		case label < ns[idx].label:
			j = idx - 1
		default:
			return ns[idx]
		}
	}
	return nil
}
