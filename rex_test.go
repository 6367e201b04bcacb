package rex_test

import (
	"strings"
	"testing"

	"github.com/relang/rex"
)

func TestLiteralSubstringSearch(t *testing.T) {
	m := rex.MustCompile("abc")
	if !m.Match("xxx abc yyy") {
		t.Error(`"abc" should match "xxx abc yyy"`)
	}
	if m.Match("xyz") {
		t.Error(`"abc" should not match "xyz"`)
	}
}

func TestExactRepetitionCount(t *testing.T) {
	m := rex.MustCompile("a{3}")
	if !m.Match("baaaa") {
		t.Error(`"a{3}" should match "baaaa"`)
	}
	if m.Match("aa") {
		t.Error(`"a{3}" should not match "aa"`)
	}
}

func TestPOSIXAsciiClass(t *testing.T) {
	m := rex.MustCompile("[[:ascii:]]")
	if !m.Match("q") {
		t.Error(`"[[:ascii:]]" should match an ASCII letter`)
	}
	if m.Match("é") {
		t.Error(`"[[:ascii:]]" should not match a non-ASCII letter`)
	}
}

func TestDigitEscapePlus(t *testing.T) {
	m := rex.MustCompile(`\d+`)
	if !m.Match("order 42 shipped") {
		t.Error(`"\d+" should match text containing digits`)
	}
	if m.Match("no digits here") {
		t.Error(`"\d+" should not match text with no digits`)
	}
}

func TestMultibyteLiteral(t *testing.T) {
	m := rex.MustCompile("α")
	if !m.Match("βα") {
		t.Error(`"α" should match a string containing U+03B1`)
	}
	if m.Match("β") {
		t.Error(`"α" should not match a string without it`)
	}
}

func TestPathologicalQuantifiersStayLinear(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 30; i++ {
		b.WriteString("a?")
	}
	for i := 0; i < 30; i++ {
		b.WriteString("a")
	}
	m := rex.MustCompile(b.String())

	input := strings.Repeat("a", 30)
	if !m.MatchWith(input, rex.StrategyDeterministic) {
		t.Error("deterministic strategy should match 30 a's")
	}
	if !m.MatchWith(input, rex.StrategyBytecode) {
		t.Error("bytecode strategy should match 30 a's")
	}
	if !m.MatchWith(input, rex.StrategyLazy) {
		t.Error("lazy strategy should match 30 a's")
	}
	if m.MatchWith(strings.Repeat("a", 29), rex.StrategyDeterministic) {
		t.Error("deterministic strategy should reject 29 a's (one short of the mandatory run)")
	}
}

func TestAllStrategiesAgree(t *testing.T) {
	patterns := []string{"abc", "a{3}", "[[:ascii:]]", `\d+`, "α", "a*b+c?"}
	inputs := []string{"xxx abc yyy", "baaaa", "q", "42", "βα", "aaabbbc", "", "zzz"}

	for _, p := range patterns {
		m := rex.MustCompile(p)
		for _, in := range inputs {
			det := m.MatchWith(in, rex.StrategyDeterministic)
			bt := m.MatchWith(in, rex.StrategyBacktrack)
			lz := m.MatchWith(in, rex.StrategyLazy)
			bc := m.MatchWith(in, rex.StrategyBytecode)
			if det != bt || det != lz || det != bc {
				t.Errorf("pattern %q input %q: deterministic=%v backtrack=%v lazy=%v bytecode=%v",
					p, in, det, bt, lz, bc)
			}
		}
	}
}

func TestCompileError(t *testing.T) {
	if _, err := rex.Compile("(unterminated"); err == nil {
		t.Error("expected a compile error for an unterminated group")
	}
}
