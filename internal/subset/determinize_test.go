package subset

import (
	"testing"

	"github.com/relang/rex/internal/automaton"
)

// buildAB builds an NFA for "ab" with an extra branch for "ac", exercising
// shared prefixes during determinization.
func buildABOrAC() *automaton.Automaton {
	a := automaton.New()
	s0 := a.AddState()
	s1 := a.AddState()
	s2 := a.AddState()
	s3 := a.AddState()
	a.SetInitial(s0)
	a.SetAccepting(s3)
	a.AddTransition(s0, automaton.CharTransition('a'), s1)
	a.AddTransition(s1, automaton.CharTransition('b'), s3)
	a.AddTransition(s1, automaton.CharTransition('c'), s2)
	a.AddTransition(s2, automaton.EpsilonTransition(), s3)
	return a
}

func TestDeterminizeIsTotalPerState(t *testing.T) {
	dfa := Determinize(buildABOrAC())
	for s := 0; s < dfa.NumStates(); s++ {
		edges := dfa.Edges(automaton.State(s))
		for i, e := range edges {
			for j, f := range edges {
				if i == j {
					continue
				}
				for b := 0; b < 256; b++ {
					if e.Trans.Matches(byte(b)) && f.Trans.Matches(byte(b)) {
						t.Fatalf("state %d: edges %d and %d both match byte %#x", s, i, j, b)
					}
				}
			}
		}
	}
}

func TestTransitionForAtomSpecializesToMask(t *testing.T) {
	// [0x80, 0xFF] == every byte with its top bit set, i.e. mask 0x80.
	tr := transitionForAtom(RangeSet(0x80, 0xFF))
	if tr.Kind != automaton.Mask || tr.M != 0x80 {
		t.Errorf("transitionForAtom(0x80-0xFF) = %+v, want Mask(0x80)", tr)
	}

	// Mask(0x10) would also accept 0x30, 0x50, ..., so [0x10, 0x1F] stays a
	// Range even though ((0x10-1)|0x10) == 0x1F.
	tr2 := transitionForAtom(RangeSet(0x10, 0x1F))
	if tr2.Kind != automaton.Range {
		t.Errorf("transitionForAtom(0x10-0x1F) = %+v, want a plain Range (a mask would overmatch)", tr2)
	}
}

func TestEpsilonClosureCanonicalOrder(t *testing.T) {
	a := automaton.New()
	s0 := a.AddState()
	s1 := a.AddState()
	s2 := a.AddState()
	a.AddTransition(s2, automaton.EpsilonTransition(), s1)
	a.AddTransition(s1, automaton.EpsilonTransition(), s0)

	got := EpsilonClosure(a, []automaton.State{s2})
	want := []automaton.State{s0, s1, s2}
	if len(got) != len(want) {
		t.Fatalf("EpsilonClosure = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("EpsilonClosure = %v, want %v", got, want)
		}
	}
}
