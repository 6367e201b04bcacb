// Package match implements the three execution strategies of §4.4:
// backtracking NFA simulation, deterministic DFA stepping, and lazy
// on-the-fly determinization. All three are required to agree on every
// input (§8's round-trip equivalence property); only their performance
// characteristics differ.
package match

import "github.com/relang/rex/internal/automaton"

// Backtrack runs data against nfa by depth-first simulation, trying each
// state's transitions in list order and backtracking on failure. It
// returns true as soon as any reachable state, at any prefix of data, is
// accepting — matching the "search", not "fullmatch", contract (§4.4(a)).
//
// This strategy can be exponential in pathological cases (nested optional
// quantifiers): it deliberately performs no memoization across positions,
// since that memoization is exactly what distinguishes it from the
// deterministic and lazy strategies.
func Backtrack(nfa *automaton.Automaton, data []byte) bool {
	return tryState(nfa, data, nfa.Initial(), 0, make(map[automaton.State]bool))
}

// tryState explores every state epsilon-reachable from s at pos, then every
// byte-consuming transition. visiting guards against infinite recursion
// around an epsilon cycle at a fixed pos; it is local to one (starting
// state, pos) frame, so it never fires once pos advances.
func tryState(nfa *automaton.Automaton, data []byte, s automaton.State, pos int, visiting map[automaton.State]bool) bool {
	if nfa.IsAccepting(s) {
		return true
	}
	if visiting[s] {
		return false
	}
	visiting[s] = true
	defer delete(visiting, s)

	for _, e := range nfa.Edges(s) {
		if e.Trans.Kind == automaton.Epsilon {
			if tryState(nfa, data, e.Target, pos, visiting) {
				return true
			}
			continue
		}
		if pos < len(data) && e.Trans.Matches(data[pos]) {
			if tryState(nfa, data, e.Target, pos+1, make(map[automaton.State]bool)) {
				return true
			}
		}
	}
	return false
}
