package match

import "github.com/relang/rex/internal/subset"

// Lazy runs data against the NFA wrapped by l, determinizing state-sets
// on demand and memoizing them in l so repeated matches against the same
// pattern reuse prior work (§4.4(c)). A *subset.Lazy is safe to share
// across many Lazy calls.
func Lazy(l *subset.Lazy, data []byte) bool {
	cur := l.Start()
	if l.Accepting(cur) {
		return true
	}
	for _, b := range data {
		next, ok := l.Step(cur, b)
		if !ok {
			return false
		}
		cur = next
		if l.Accepting(cur) {
			return true
		}
	}
	return false
}
