package router

import (
	"fmt"
	"strings"
)

// segment describes the next routing segment found in a pattern.
type segment struct {
	typ    nodeTyp
	key    string // param name, "*" or the catch-all name
	rexpat string // anchored regexp source for ntRegexp
	tail   byte   // delimiter that terminates a param value
	start  int    // offset of '{' or '*'
	end    int    // offset just past the segment
}

// nextSegment returns the next segment details from a pattern.
func nextSegment(pattern string) (segment, error) {
	ps := strings.IndexByte(pattern, '{')
	ws := strings.IndexByte(pattern, '*')

	// A closing brace in static text has no opening one.
	static := len(pattern)
	if ps >= 0 {
		static = ps
	}
	if ws >= 0 && ws < static {
		static = ws
	}
	if strings.IndexByte(pattern[:static], '}') >= 0 {
		return segment{}, fmt.Errorf("%w: unmatched '}' in '%s'", ErrParamDelimiter, pattern)
	}

	if ps < 0 && ws < 0 {
		return segment{typ: ntStatic, end: len(pattern)}, nil // we return the entire thing
	}

	if ps >= 0 && ws >= 0 && ws < ps {
		return segment{}, fmt.Errorf("%w: '%s'", ErrWildcardPosition, pattern)
	}

	if ps >= 0 {
		return paramSegment(pattern, ps)
	}

	// Wildcard pattern as finale, optionally named: "*" or "*filepath".
	name := pattern[ws+1:]
	for i := 0; i < len(name); i++ {
		if !isNameByte(name[i]) {
			return segment{}, fmt.Errorf("%w: '%s'", ErrWildcardPosition, pattern)
		}
	}
	if name == "" {
		name = "*"
	}
	return segment{typ: ntCatchAll, key: name, start: ws, end: len(pattern)}, nil
}

func paramSegment(pattern string, ps int) (segment, error) {
	// Read to the closing brace, counting nested braces of regexp quantifiers.
	cc := 0
	pe := ps
scan:
	for i := ps; i < len(pattern); i++ {
		switch pattern[i] {
		case '{':
			cc++
		case '}':
			cc--
			if cc == 0 {
				pe = i
				break scan
			}
		}
	}
	if pe == ps {
		return segment{}, fmt.Errorf("%w: '%s'", ErrParamDelimiter, pattern)
	}

	key, rexpat, isRegexp := strings.Cut(pattern[ps+1:pe], ":")
	pe++ // set end to next position

	var tail byte = '/' // Default endpoint tail to / byte
	if pe < len(pattern) {
		tail = pattern[pe]
	}

	if key == "" {
		return segment{}, fmt.Errorf("%w: '%s'", ErrEmptyParam, pattern)
	}

	typ := ntParam
	if isRegexp {
		if rexpat == "" {
			return segment{}, fmt.Errorf("%w: '%s'", ErrEmptyRegexp, pattern)
		}
		typ = ntRegexp
		if rexpat[0] != '^' {
			rexpat = "^" + rexpat
		}
		if rexpat[len(rexpat)-1] != '$' {
			rexpat += "$"
		}
	}

	return segment{typ: typ, key: key, rexpat: rexpat, tail: tail, start: ps, end: pe}, nil
}

// patternSegments walks every dynamic segment of pattern and reports the
// declared param keys in order.
func patternSegments(pattern string, fn func(segment)) ([]string, error) {
	pat := pattern
	var keys []string
	for {
		seg, err := nextSegment(pat)
		if err != nil {
			return nil, err
		}
		if seg.typ == ntStatic {
			return keys, nil
		}
		for _, k := range keys {
			if k == seg.key {
				return nil, fmt.Errorf("%w: '%s' has duplicate key '%s'", ErrDuplicateParam, pattern, seg.key)
			}
		}
		if fn != nil {
			fn(seg)
		}
		keys = append(keys, seg.key)
		pat = pat[seg.end:]
	}
}

// paramKeys returns the declared param names of pattern in registration order.
func paramKeys(pattern string) ([]string, error) {
	return patternSegments(pattern, nil)
}

// isStaticPattern reports whether pattern has no placeholders at all.
func isStaticPattern(pattern string) bool {
	return !strings.ContainsAny(pattern, "{*")
}

// expandPattern turns the "/prefix/?*" form into its two concrete patterns.
func expandPattern(pattern string) []string {
	base, ok := strings.CutSuffix(pattern, "/?*")
	if !ok {
		return []string{pattern}
	}
	if base == "" {
		return []string{"/", "/*"}
	}
	return []string{base, base + "/*"}
}

// rewriteShorthand converts ":name" params into "{name}". A colon only starts a
// param outside of braces and when it does not follow a name byte, so regexp
// bodies and literal colons such as "/v1/models/gpt:generate" are left alone.
func rewriteShorthand(pattern string) string {
	if strings.IndexByte(pattern, ':') < 0 {
		return pattern
	}

	var b strings.Builder
	b.Grow(len(pattern) + 4)

	depth := 0
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == '{':
			depth++
		case c == '}':
			depth--
		case c == ':' && depth == 0 && (i == 0 || !isNameByte(pattern[i-1])):
			j := i + 1
			for j < len(pattern) && isNameByte(pattern[j]) {
				j++
			}
			if j > i+1 {
				b.WriteByte('{')
				b.WriteString(pattern[i+1 : j])
				b.WriteByte('}')
				i = j - 1
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isNameByte(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}
