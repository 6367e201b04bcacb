package subset

import (
	"testing"

	"github.com/relang/rex/internal/automaton"
)

func TestOverlayPartitionIsDisjointAndTotal(t *testing.T) {
	a := RangeSet(0x30, 0x39) // '0'-'9'
	b := RangeSet(0x35, 0x61) // '5'-'a'

	merged := Overlay(a, b)
	parts := Partition(merged)

	var hits [256]int
	for _, p := range parts {
		for bb := 0; bb < 256; bb++ {
			if setContainsByte(p, byte(bb)) {
				hits[bb]++
			}
		}
	}
	for bb := 0; bb < 256; bb++ {
		if hits[bb] != 1 {
			t.Fatalf("byte %#x covered by %d atoms, want exactly 1", bb, hits[bb])
		}
	}
}

func setContainsByte(s Set, b byte) bool {
	switch s.Kind {
	case KindNone:
		return false
	case KindAny:
		return true
	case KindValue:
		return s.Lo == b
	case KindRange:
		return b >= s.Lo && b <= s.Hi
	case KindMultiple:
		for _, p := range s.Parts {
			if setContainsByte(p, b) {
				return true
			}
		}
		return false
	}
	return false
}

func TestOverlayRefinesBothOperands(t *testing.T) {
	merged := Overlay(RangeSet(0, 9), RangeSet(5, 14))
	parts := Partition(merged)
	// Expect the boundary at 9/10 to survive: no atom should straddle both
	// 9 and 10, since RangeSet(0,9) ends at 9.
	for _, p := range parts {
		if setContainsByte(p, 9) && setContainsByte(p, 10) {
			t.Errorf("atom %+v straddles the boundary between the two operands", p)
		}
	}
}

func TestMatchesTable(t *testing.T) {
	if !Matches(ValueSet('a'), automaton.CharTransition('a')) {
		t.Error("ValueSet('a') should match CharTransition('a')")
	}
	if Matches(ValueSet('a'), automaton.CharTransition('b')) {
		t.Error("ValueSet('a') should not match CharTransition('b')")
	}
	if !Matches(RangeSet('a', 'c'), automaton.RangeTransition('a', 'z')) {
		t.Error("RangeSet('a','c') should be a subset of RangeTransition('a','z')")
	}
	if Matches(RangeSet('a', 'z'), automaton.RangeTransition('a', 'c')) {
		t.Error("RangeSet('a','z') is not a subset of RangeTransition('a','c')")
	}
	if Matches(NoneSet(), automaton.AnyTransition()) {
		t.Error("NoneSet should never match")
	}
	if !Matches(ValueSet(0x42), automaton.AnyTransition()) {
		t.Error("Any transition should match every atom")
	}
}

func TestFromTransitionMaskRoundtrip(t *testing.T) {
	s := FromTransition(automaton.MaskTransition(0x80))
	if s.Kind != KindRange || s.Lo != 0x80 || s.Hi != 0xFF {
		t.Errorf("FromTransition(Mask(0x80)) = %+v, want Range(0x80,0xFF)", s)
	}
}
