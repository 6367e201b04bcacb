// Package subset implements subset construction (§4.3): determinizing an
// NFA produced by internal/nfa into a DFA, using alphabet partitioning so
// the emitted automaton's per-state transition count stays proportional to
// the number of distinct byte classes rather than 256.
package subset

import (
	"sort"
	"strconv"
	"strings"

	"github.com/relang/rex/internal/automaton"
)

// EpsilonClosure returns the least fixed point of following Epsilon
// transitions from every state in states, as a sorted, deduplicated slice.
// Sorting makes the result usable as a canonical map key for the
// determinizer's work queue (see §4.3).
func EpsilonClosure(a *automaton.Automaton, states []automaton.State) []automaton.State {
	seen := make(map[automaton.State]bool, len(states))
	var stack []automaton.State
	for _, s := range states {
		if !seen[s] {
			seen[s] = true
			stack = append(stack, s)
		}
	}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, e := range a.Edges(s) {
			if e.Trans.Kind == automaton.Epsilon && !seen[e.Target] {
				seen[e.Target] = true
				stack = append(stack, e.Target)
			}
		}
	}
	out := make([]automaton.State, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func key(states []automaton.State) string {
	var b strings.Builder
	for i, s := range states {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(int(s)))
	}
	return b.String()
}

func anyAccepting(a *automaton.Automaton, states []automaton.State) bool {
	for _, s := range states {
		if a.IsAccepting(s) {
			return true
		}
	}
	return false
}

// combinedAlphabet overlays the alphabet Set of every non-epsilon
// transition leaving any state in states, producing the atomic partition
// that every transition in this state set agrees on (§4.3).
func combinedAlphabet(a *automaton.Automaton, states []automaton.State) Set {
	acc := NoneSet()
	for _, s := range states {
		for _, e := range a.Edges(s) {
			if e.Trans.Kind == automaton.Epsilon {
				continue
			}
			acc = Overlay(acc, FromTransition(e.Trans))
		}
	}
	return acc
}

// targetsForAtom returns the epsilon-closed set of states reached from
// states by a transition whose accepted set contains atom.
func targetsForAtom(a *automaton.Automaton, states []automaton.State, atom Set) []automaton.State {
	var targets []automaton.State
	for _, s := range states {
		for _, e := range a.Edges(s) {
			if e.Trans.Kind == automaton.Epsilon {
				continue
			}
			if Matches(atom, e.Trans) {
				targets = append(targets, e.Target)
			}
		}
	}
	if len(targets) == 0 {
		return nil
	}
	return EpsilonClosure(a, targets)
}

// transitionForAtom converts an alphabet Set atom into the automaton
// Transition the DFA edge should carry, specializing a Range into a Mask
// when ((lo-1)|lo) == hi and hi == 0xFF. Only then is {b : b&lo == lo}
// exactly [lo, hi]; for a lower hi (e.g. [0x10, 0x1F]) the mask would also
// accept bytes outside the range (0x30, 0x50, ...).
func transitionForAtom(atom Set) automaton.Transition {
	switch atom.Kind {
	case KindAny:
		return automaton.RangeTransition(0, 255)
	case KindValue:
		return automaton.CharTransition(atom.Lo)
	case KindRange:
		if atom.Lo > 0 && atom.Hi == 0xFF && ((atom.Lo-1)|atom.Lo) == atom.Hi {
			return automaton.MaskTransition(atom.Lo)
		}
		return automaton.RangeTransition(atom.Lo, atom.Hi)
	default:
		panic("subset: atom is not a single range/value/any")
	}
}

// Determinize runs subset construction over nfa, returning an equivalent
// deterministic automaton: every state's outgoing transitions are on
// pairwise-disjoint byte sets, so matching never needs to try more than one
// edge per input byte.
func Determinize(nfa *automaton.Automaton) *automaton.Automaton {
	dfa := automaton.New()

	ids := make(map[string]automaton.State)
	var work []string
	setOf := make(map[string][]automaton.State)

	start := EpsilonClosure(nfa, []automaton.State{nfa.Initial()})
	startKey := key(start)
	startState := dfa.AddState()
	dfa.SetInitial(startState)
	ids[startKey] = startState
	setOf[startKey] = start
	work = append(work, startKey)

	if anyAccepting(nfa, start) {
		dfa.SetAccepting(startState)
	}

	for len(work) > 0 {
		k := work[0]
		work = work[1:]
		states := setOf[k]
		from := ids[k]

		alphabet := combinedAlphabet(nfa, states)
		for _, atom := range Partition(alphabet) {
			target := targetsForAtom(nfa, states, atom)
			if len(target) == 0 {
				continue
			}
			tk := key(target)
			to, ok := ids[tk]
			if !ok {
				to = dfa.AddState()
				ids[tk] = to
				setOf[tk] = target
				work = append(work, tk)
				if anyAccepting(nfa, target) {
					dfa.SetAccepting(to)
				}
			}
			dfa.AddTransition(from, transitionForAtom(atom), to)
		}
	}

	return dfa
}
