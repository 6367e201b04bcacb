package match

import "github.com/relang/rex/internal/automaton"

// Deterministic runs data against dfa (as produced by internal/subset's
// Determinize), stepping one byte at a time. Since a determinized
// automaton's outgoing transitions are pairwise disjoint, at most one edge
// ever matches a given byte, so this strategy never explores more than one
// path and runs in time linear in len(data) (§4.4(b)).
func Deterministic(dfa *automaton.Automaton, data []byte) bool {
	s := dfa.Initial()
	if dfa.IsAccepting(s) {
		return true
	}
	for _, b := range data {
		next, ok := step(dfa, s, b)
		if !ok {
			return false
		}
		s = next
		if dfa.IsAccepting(s) {
			return true
		}
	}
	return false
}

func step(dfa *automaton.Automaton, s automaton.State, b byte) (automaton.State, bool) {
	for _, e := range dfa.Edges(s) {
		if e.Trans.Matches(b) {
			return e.Target, true
		}
	}
	return 0, false
}
