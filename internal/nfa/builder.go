// Package nfa implements Thompson-style construction of an NFA from an AST
// (§4.2).
//
// Construction is iterative over an explicit work list of
// (node, entry, exit) obligations, never recursive: a deeply nested pattern
// or a huge bounded quantifier must not exhaust the call stack.
package nfa

import (
	"errors"
	"fmt"

	"github.com/relang/rex/internal/ast"
	"github.com/relang/rex/internal/automaton"
	"github.com/relang/rex/internal/charclass"
	"github.com/relang/rex/internal/encoder"
	"github.com/relang/rex/internal/unicodeclass"
)

// ErrUnimplemented is returned (wrapped) by Build for inverted character
// sets. The unimplemented POSIX classes ([:graph:], [:print:]) are reported
// with charclass.ErrUnimplemented instead.
var ErrUnimplemented = errors.New("nfa: unimplemented construct")

// obligation is one entry on the iterative construction work list.
type obligation struct {
	node        ast.Node
	entry, exit automaton.State
}

// builder holds the in-progress automaton and work list.
type builder struct {
	a    *automaton.Automaton
	enc  *encoder.Encoder
	work []obligation
}

// Build lowers root into a fresh NFA with a single initial and accepting
// state. root is typically an *ast.Pattern.
func Build(root ast.Node) (*automaton.Automaton, error) {
	a := automaton.New()
	b := &builder{a: a, enc: encoder.New(a)}

	entry := a.AddState()
	exit := a.AddState()
	a.SetInitial(entry)
	a.SetAccepting(exit)

	b.enqueue(root, entry, exit)
	for len(b.work) > 0 {
		ob := b.work[0]
		b.work = b.work[1:]
		if err := b.process(ob); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (b *builder) enqueue(n ast.Node, entry, exit automaton.State) {
	b.work = append(b.work, obligation{node: n, entry: entry, exit: exit})
}

func (b *builder) epsilonAppend(from, to automaton.State) {
	b.a.AddTransition(from, automaton.EpsilonTransition(), to)
}

func (b *builder) process(ob obligation) error {
	entry, exit := ob.entry, ob.exit
	switch n := ob.node.(type) {

	case *ast.Pattern:
		for _, alt := range n.Alternatives {
			b.enqueue(alt, entry, exit)
		}

	case *ast.Group:
		for _, alt := range n.Alternatives {
			b.enqueue(alt, entry, exit)
		}

	case *ast.Expression:
		b.buildExpression(n, entry, exit)

	case *ast.MatchAny:
		b.enc.ConnectAny(entry, exit)

	case *ast.MatchCharacter:
		b.enc.ConnectValue(entry, exit, n.Codepoint)

	case *ast.MatchRange:
		b.enc.ConnectRange(entry, exit, n.From, n.To)

	case *ast.MatchSet:
		if n.Inverted {
			return fmt.Errorf("%w: inverted character set", ErrUnimplemented)
		}
		for _, item := range n.Items {
			b.enqueue(item, entry, exit)
		}

	case *ast.MatchClass:
		ranges, err := charclass.ClassRanges(n.Name)
		if err != nil {
			return err
		}
		b.connectRanges(entry, exit, ranges)

	case *ast.POSIXClass:
		ranges, err := charclass.POSIXRanges(n.Name)
		if err != nil {
			return err
		}
		b.connectRanges(entry, exit, ranges)

	case *ast.MatchProperty:
		ranges, err := unicodeclass.Query(n.Name)
		if err != nil {
			return err
		}
		for _, r := range ranges {
			b.enc.ConnectRange(entry, exit, r.Lo, r.Hi)
		}

	case *ast.Quantified:
		b.buildQuantified(n, entry, exit)

	default:
		return fmt.Errorf("nfa: unknown AST node %T", n)
	}
	return nil
}

func (b *builder) connectRanges(entry, exit automaton.State, ranges []unicodeclass.Range) {
	for _, r := range ranges {
		b.enc.ConnectRange(entry, exit, r.Lo, r.Hi)
	}
}

// buildExpression lowers a concatenation: n-1 fresh intermediate states are
// allocated and each item is enqueued between consecutive states.
func (b *builder) buildExpression(n *ast.Expression, entry, exit automaton.State) {
	if len(n.Items) == 0 {
		b.epsilonAppend(entry, exit)
		return
	}
	states := make([]automaton.State, len(n.Items)+1)
	states[0] = entry
	for i := 1; i < len(n.Items); i++ {
		states[i] = b.a.AddState()
	}
	states[len(n.Items)] = exit
	for i, item := range n.Items {
		b.enqueue(item, states[i], states[i+1])
	}
}

func (b *builder) buildQuantified(n *ast.Quantified, entry, exit automaton.State) {
	switch n.Kind {
	case ast.QuantOptional:
		b.enqueue(n.Item, entry, exit)
		b.epsilonAppend(entry, exit)

	case ast.QuantStar:
		b.enqueue(n.Item, entry, entry)
		b.epsilonAppend(entry, exit)

	case ast.QuantPlus:
		b.enqueue(n.Item, entry, exit)
		b.epsilonAppend(exit, entry)

	case ast.QuantRange:
		if n.Max < 0 {
			b.buildUnboundedRange(n, entry, exit)
		} else {
			b.buildBoundedRange(n, entry, exit)
		}
	}
}

// buildUnboundedRange lowers {min,} (max == -1). min == 0 degenerates to
// Star.
func (b *builder) buildUnboundedRange(n *ast.Quantified, entry, exit automaton.State) {
	min := n.Min
	if min <= 0 {
		b.enqueue(n.Item, entry, entry)
		b.epsilonAppend(entry, exit)
		return
	}
	states := make([]automaton.State, min+1)
	states[0] = entry
	for i := 1; i < min; i++ {
		states[i] = b.a.AddState()
	}
	states[min] = exit
	for i := 0; i < min; i++ {
		b.enqueue(n.Item, states[i], states[i+1])
	}
	// Unbounded tail: looping back from exit to its predecessor lets the
	// last repetition repeat indefinitely.
	b.epsilonAppend(exit, states[min-1])
}

// buildBoundedRange lowers {min,max}. max == 0 degenerates to an
// unconditional epsilon (zero repetitions required and allowed).
func (b *builder) buildBoundedRange(n *ast.Quantified, entry, exit automaton.State) {
	max := n.Max
	if max <= 0 {
		b.epsilonAppend(entry, exit)
		return
	}
	states := make([]automaton.State, max+1)
	states[0] = entry
	for i := 1; i < max; i++ {
		states[i] = b.a.AddState()
	}
	states[max] = exit
	for i := 0; i < max; i++ {
		b.enqueue(n.Item, states[i], states[i+1])
	}
	for i := n.Min; i < max; i++ {
		b.epsilonAppend(states[i], exit)
	}
}
