// Package rex compiles a byte-level, non-backtracking-by-default regular
// expression engine: patterns are lowered through a UTF-8-aware Thompson
// NFA, optionally determinized by subset construction, and matched by one
// of four interchangeable strategies (§4.4, §4.5, §6.4).
package rex

import (
	"fmt"
	"io"

	"github.com/relang/rex/internal/ast"
	"github.com/relang/rex/internal/automaton"
	"github.com/relang/rex/internal/bytecode"
	"github.com/relang/rex/internal/match"
	"github.com/relang/rex/internal/nfa"
	"github.com/relang/rex/internal/parser"
	"github.com/relang/rex/internal/rexlog"
	"github.com/relang/rex/internal/subset"
)

// Strategy selects which of the four execution engines Matcher.MatchWith
// uses. Matcher.Match always uses StrategyDeterministic.
type Strategy int

const (
	// StrategyDeterministic precomputes the full DFA and steps it. This is
	// the default: linear time, and the up-front determinization cost is
	// amortized across every call to Match.
	StrategyDeterministic Strategy = iota
	// StrategyBacktrack simulates the NFA directly with no determinization
	// step. Simple patterns are fast; pathological nested quantifiers are
	// exponential (§8).
	StrategyBacktrack
	// StrategyLazy determinizes state-sets on demand, memoizing them across
	// calls. Useful when a pattern is compiled once but most of its DFA is
	// never reached by the inputs actually seen.
	StrategyLazy
	// StrategyBytecode compiles the DFA to a linear instruction stream and
	// interprets it.
	StrategyBytecode
)

// Matcher is a compiled pattern. The zero Matcher is not usable; construct
// one with Compile or MustCompile.
type Matcher struct {
	nfa  *automaton.Automaton
	dfa  *automaton.Automaton // built lazily, only by strategies that need it
	prog *bytecode.Program    // built lazily
	lz   *subset.Lazy         // built lazily
	log  *rexlog.Logger
}

// Compile parses pattern and builds its NFA. The match is unanchored: per
// §6.4, pattern is implicitly prefixed with ".*" so Match reports whether
// pattern occurs anywhere in the input, not only at its start.
func Compile(pattern string) (*Matcher, error) {
	return CompileWithOptions(pattern, CompileOptions{})
}

// CompileOptions controls diagnostic output during Compile.
type CompileOptions struct {
	// Verbose logs each construction phase (parse, NFA build, state count).
	Verbose bool
	// LogOutput overrides where verbose output is written; defaults to
	// os.Stderr when left nil.
	LogOutput io.Writer
}

// CompileWithOptions is Compile with verbose diagnostics available.
func CompileWithOptions(pattern string, opts CompileOptions) (*Matcher, error) {
	log := rexlog.New(opts.Verbose)
	if opts.LogOutput != nil {
		log.SetOutput(opts.LogOutput)
	}

	log.Enter(rexlog.PhaseParse)
	log.Info("pattern = %q", pattern)
	root, err := parser.Parse(pattern)
	if err != nil {
		return nil, fmt.Errorf("rex: %w", err)
	}
	wrapped := prefixWithDotStar(root)

	log.Enter(rexlog.PhaseNFA)
	n, err := nfa.Build(wrapped)
	if err != nil {
		return nil, fmt.Errorf("rex: %w", err)
	}
	log.Info("built NFA with %d states", n.NumStates())
	return &Matcher{nfa: n, log: log}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(pattern string) *Matcher {
	m, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return m
}

// prefixWithDotStar rewrites root into (.*)(root), giving the "search
// anywhere" contract of §6.4 without requiring the matching strategies
// themselves to know about unanchored search.
func prefixWithDotStar(root ast.Node) ast.Node {
	dotStar := &ast.Quantified{
		Item:       &ast.MatchAny{},
		Quantifier: ast.Quantifier{Kind: ast.QuantStar},
	}
	return &ast.Expression{Items: []ast.Node{dotStar, root}}
}

// Match reports whether pattern occurs anywhere in s, using
// StrategyDeterministic.
func (m *Matcher) Match(s string) bool {
	return m.MatchWith(s, StrategyDeterministic)
}

// MatchWith is like Match but lets the caller pick the execution strategy.
// Every strategy is required to agree on every input (§8); the choice is
// purely a performance trade-off.
func (m *Matcher) MatchWith(s string, strategy Strategy) bool {
	data := []byte(s)
	switch strategy {
	case StrategyBacktrack:
		return match.Backtrack(m.nfa, data)
	case StrategyLazy:
		return match.Lazy(m.lazy(), data)
	case StrategyBytecode:
		return bytecode.Run(m.bytecode(), data)
	default:
		return match.Deterministic(m.deterministic(), data)
	}
}

func (m *Matcher) deterministic() *automaton.Automaton {
	if m.dfa == nil {
		if m.log != nil {
			m.log.Enter(rexlog.PhaseDeterminize)
		}
		m.dfa = subset.Determinize(m.nfa)
		if m.log != nil {
			m.log.Info("determinized to %d states", m.dfa.NumStates())
		}
	}
	return m.dfa
}

func (m *Matcher) bytecode() bytecode.Program {
	if m.prog == nil {
		dfa := m.deterministic()
		if m.log != nil {
			m.log.Enter(rexlog.PhaseBytecode)
		}
		p := bytecode.Compile(dfa)
		m.prog = &p
		if m.log != nil {
			m.log.Info("compiled %d instructions", len(p.Instrs))
		}
	}
	return *m.prog
}

func (m *Matcher) lazy() *subset.Lazy {
	if m.lz == nil {
		m.lz = subset.NewLazy(m.nfa)
	}
	return m.lz
}
