// Package automaton implements the labeled directed multigraph shared by the
// NFA builder, the subset constructor, and every matching strategy.
//
// States live in an arena owned by the Automaton; they are referenced by
// index rather than pointer, which sidesteps the cyclic-ownership problems
// that a pointer-based graph would create once loops (from Star/Plus) are
// wired up. Construction is monotonic: AddState and AddTransition only ever
// append.
package automaton

// State is an opaque handle into an Automaton's state arena.
type State int

// Kind tags the variant of a Transition.
type Kind int

const (
	// Any matches any single byte.
	Any Kind = iota
	// Character matches exactly one byte value.
	Character
	// Range matches a byte in [Lo, Hi].
	Range
	// Mask matches byte b iff b&M == M. Only ever produced by the subset
	// constructor (see internal/subset) as a Range specialization.
	Mask
	// Epsilon consumes no input. Legal only in NFAs.
	Epsilon
)

// Transition is a tagged variant over the byte-level edge kinds of §3.
// Lo/Hi are used by Character (Lo only) and Range; M is used by Mask.
type Transition struct {
	Kind   Kind
	Lo, Hi byte
	M      byte
}

// AnyTransition returns an Any transition.
func AnyTransition() Transition { return Transition{Kind: Any} }

// CharTransition returns a transition matching exactly v.
func CharTransition(v byte) Transition { return Transition{Kind: Character, Lo: v} }

// RangeTransition returns a transition matching [lo, hi]. If lo == hi this
// is equivalent to CharTransition but callers generally prefer CharTransition
// in that case for clarity.
func RangeTransition(lo, hi byte) Transition { return Transition{Kind: Range, Lo: lo, Hi: hi} }

// MaskTransition returns a transition matching byte b iff b&m == m.
func MaskTransition(m byte) Transition { return Transition{Kind: Mask, M: m} }

// EpsilonTransition returns an input-less transition.
func EpsilonTransition() Transition { return Transition{Kind: Epsilon} }

// Matches reports whether the transition accepts byte b.
func (t Transition) Matches(b byte) bool {
	switch t.Kind {
	case Any:
		return true
	case Character:
		return b == t.Lo
	case Range:
		return b >= t.Lo && b <= t.Hi
	case Mask:
		return b&t.M == t.M
	case Epsilon:
		return false
	default:
		return false
	}
}

// Edge is one (target, transition) pair in a state's outgoing edge list.
// Order is significant: for backtracking simulation and bytecode emission,
// earlier edges are tried first.
type Edge struct {
	Target State
	Trans  Transition
}

// Automaton is a labeled directed multigraph over bytes. It owns every
// state and transition it contains; states do not exist independently of
// the automaton that created them.
type Automaton struct {
	edges   [][]Edge
	accept  map[State]bool
	initial State
	hasInit bool
}

// New returns an empty automaton with no states.
func New() *Automaton {
	return &Automaton{accept: make(map[State]bool)}
}

// AddState allocates and returns a fresh state with no outgoing edges.
func (a *Automaton) AddState() State {
	a.edges = append(a.edges, nil)
	return State(len(a.edges) - 1)
}

// NumStates returns how many states have been allocated.
func (a *Automaton) NumStates() int { return len(a.edges) }

// SetInitial designates s as the automaton's single initial state.
func (a *Automaton) SetInitial(s State) {
	a.initial = s
	a.hasInit = true
}

// Initial returns the designated initial state. Panics if none was set.
func (a *Automaton) Initial() State {
	if !a.hasInit {
		panic("automaton: initial state not set")
	}
	return a.initial
}

// SetAccepting marks s as an accepting state.
func (a *Automaton) SetAccepting(s State) {
	a.accept[s] = true
}

// IsAccepting reports whether s is an accepting state.
func (a *Automaton) IsAccepting(s State) bool {
	return a.accept[s]
}

// AddTransition appends a (to, trans) edge to from's outgoing edge list.
// Appended edges are tried after every edge already present, modeling the
// "fall back" half of greedy-quantifier semantics (see §3).
func (a *Automaton) AddTransition(from State, trans Transition, to State) {
	a.edges[from] = append(a.edges[from], Edge{Target: to, Trans: trans})
}

// PrependTransition inserts a (to, trans) edge at the front of from's
// outgoing edge list, modeling the "prefer" half of greedy-quantifier
// semantics: the earlier a transition appears, the earlier backtracking
// simulation tries it.
func (a *Automaton) PrependTransition(from State, trans Transition, to State) {
	a.edges[from] = append([]Edge{{Target: to, Trans: trans}}, a.edges[from]...)
}

// Edges returns the ordered outgoing edges of s. The returned slice must
// not be mutated by the caller.
func (a *Automaton) Edges(s State) []Edge {
	return a.edges[s]
}
