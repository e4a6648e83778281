package router

// span addresses a captured value by byte offsets into the path being matched.
// Offsets stay valid for any string of the same length, which lets a lookup run
// against a case-folded path and still return values sliced from the original.
type span struct {
	start int
	end   int
}

func (s span) in(str string) string {
	return str[s.start:s.end]
}

// longestPrefix finds the length of the shared prefix
// of two strings
func longestPrefix(k1, k2 string) int {
	n := min(len(k1), len(k2))
	var i int
	for i = 0; i < n; i++ {
		if k1[i] != k2[i] {
			break
		}
	}
	return i
}
