package router

import (
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// A Caser keeps state between calls and must not be shared between
// goroutines, so concurrent lookups draw one from the pool.
var foldPool = sync.Pool{
	New: func() any {
		c := cases.Fold()
		return &c
	},
}

// foldPath returns the case-folded form of path. Pure lowercase ASCII input is
// returned as is without touching the pool.
func foldPath(path string) string {
	if !needsFold(path) {
		return path
	}
	c := foldPool.Get().(*cases.Caser)
	folded := c.String(path)
	foldPool.Put(c)
	return folded
}

// foldKeepsOffsets reports whether folding maps every rune of path to a rune
// sequence of the same byte width. Only then do offsets into the folded path
// index the original path too.
func foldKeepsOffsets(path string) bool {
	if !needsFold(path) {
		return true
	}

	c := foldPool.Get().(*cases.Caser)
	defer foldPool.Put(c)

	var buf [utf8.UTFMax]byte
	for i, r := range path {
		if r < utf8.RuneSelf {
			continue
		}
		n := utf8.EncodeRune(buf[:], r)
		if len(c.String(path[i:i+n])) != n {
			return false
		}
	}
	return true
}

func needsFold(s string) bool {
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b >= utf8.RuneSelf || ('A' <= b && b <= 'Z') {
			return true
		}
	}
	return false
}

// foldPattern folds the static parts of pattern and keeps param names and
// regexp bodies verbatim.
func foldPattern(pattern string) (string, error) {
	var b strings.Builder
	b.Grow(len(pattern))

	rest := pattern
	for {
		seg, err := nextSegment(rest)
		if err != nil {
			return "", err
		}
		if seg.typ == ntStatic {
			b.WriteString(foldPath(rest))
			return b.String(), nil
		}
		b.WriteString(foldPath(rest[:seg.start]))
		b.WriteString(rest[seg.start:seg.end])
		rest = rest[seg.end:]
	}
}
