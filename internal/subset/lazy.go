package subset

import "github.com/relang/rex/internal/automaton"

// atomEdge is one memoized (atom, target-set) pair for a single NFA
// state-set, computed the first time that state-set is stepped.
type atomEdge struct {
	trans     automaton.Transition
	targetKey string
}

// Lazy performs on-the-fly subset construction: unlike Determinize, it
// never builds the full DFA up front. Each state-set's outgoing atoms are
// computed and memoized only the first time that state-set is actually
// reached during matching (§4.4(c)).
type Lazy struct {
	nfa   *automaton.Automaton
	cache map[string][]atomEdge
	sets  map[string][]automaton.State
}

// NewLazy returns a Lazy determinizer over nfa. A single Lazy can be reused
// across many Step calls (and many matches); its memo table only grows.
func NewLazy(nfa *automaton.Automaton) *Lazy {
	return &Lazy{
		nfa:   nfa,
		cache: make(map[string][]atomEdge),
		sets:  make(map[string][]automaton.State),
	}
}

// Start returns the canonical key for the epsilon-closure of the NFA's
// initial state, the starting cursor for a match.
func (l *Lazy) Start() string {
	start := EpsilonClosure(l.nfa, []automaton.State{l.nfa.Initial()})
	k := key(start)
	l.sets[k] = start
	return k
}

// Accepting reports whether any NFA state in the set named by key is
// accepting.
func (l *Lazy) Accepting(k string) bool {
	return anyAccepting(l.nfa, l.sets[k])
}

// Step advances from the state-set named by k on byte b, computing and
// memoizing k's outgoing atoms on first visit. ok is false if no atom
// covers b — no underlying thread survives.
func (l *Lazy) Step(k string, b byte) (next string, ok bool) {
	edges, cached := l.cache[k]
	if !cached {
		edges = l.computeEdges(k)
		l.cache[k] = edges
	}
	for _, e := range edges {
		if e.trans.Matches(b) {
			return e.targetKey, true
		}
	}
	return "", false
}

func (l *Lazy) computeEdges(k string) []atomEdge {
	states := l.sets[k]
	alphabet := combinedAlphabet(l.nfa, states)
	var edges []atomEdge
	for _, atom := range Partition(alphabet) {
		target := targetsForAtom(l.nfa, states, atom)
		if len(target) == 0 {
			continue
		}
		tk := key(target)
		if _, ok := l.sets[tk]; !ok {
			l.sets[tk] = target
		}
		edges = append(edges, atomEdge{trans: transitionForAtom(atom), targetKey: tk})
	}
	return edges
}
