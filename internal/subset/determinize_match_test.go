package subset_test

import (
	"testing"

	"github.com/relang/rex/internal/automaton"
	"github.com/relang/rex/internal/match"
	"github.com/relang/rex/internal/subset"
)

func buildABOrACForMatchTest() *automaton.Automaton {
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

func TestDeterminizeAgreesWithBacktrack(t *testing.T) {
	nfa := buildABOrACForMatchTest()
	dfa := subset.Determinize(nfa)

	inputs := []string{"ab", "ac", "a", "b", "", "abc", "ad"}
	for _, in := range inputs {
		want := match.Backtrack(nfa, []byte(in))
		got := match.Deterministic(dfa, []byte(in))
		if got != want {
			t.Errorf("input %q: backtrack=%v deterministic=%v", in, want, got)
		}
	}
}
