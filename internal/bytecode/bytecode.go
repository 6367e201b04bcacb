// Package bytecode compiles a determinized automaton into a linear
// instruction stream and interprets it (§4.5). Each DFA state becomes a
// straight-line block of conditional jumps ending in an unconditional
// failure; a label-resolution pass turns per-state blocks into absolute
// program-counter offsets.
package bytecode

import "github.com/relang/rex/internal/automaton"

// Op tags one bytecode instruction.
type Op int

const (
	// Failure unconditionally fails the current thread.
	Failure Op = iota
	// FailLength fails if no input byte remains to test.
	FailLength
	// Success accepts: the string matches.
	Success
	// Jump unconditionally consumes one byte and jumps (an Any transition).
	Jump
	// JumpByte consumes one byte and jumps if it equals Byte.
	JumpByte
	// JumpMask consumes one byte and jumps if byte&Mask == Mask.
	JumpMask
	// JumpRange consumes one byte and jumps if Lo <= byte <= Hi.
	JumpRange
)

// Instr is one instruction. Target is an absolute program-counter offset,
// already resolved by Compile; Byte/Mask/Lo/Hi are populated according to
// Op.
type Instr struct {
	Op     Op
	Byte   byte
	Mask   byte
	Lo, Hi byte
	Target int
}

// Program is a compiled, directly runnable bytecode form of a determinized
// automaton.
type Program struct {
	Instrs []Instr
	Entry  int
}

// Compile lowers dfa (as produced by internal/subset.Determinize) into a
// Program. Each state s becomes a block at a fixed offset: an optional
// Success if s is accepting, a FailLength guard, one conditional jump per
// outgoing edge in order, and a trailing Failure.
func Compile(dfa *automaton.Automaton) Program {
	n := dfa.NumStates()
	blockLen := make([]int, n)
	for s := 0; s < n; s++ {
		st := automaton.State(s)
		l := 1 + len(dfa.Edges(st)) + 1 // FailLength + edges + trailing Failure
		if dfa.IsAccepting(st) {
			l++
		}
		blockLen[s] = l
	}
	starts := make([]int, n)
	off := 0
	for s := 0; s < n; s++ {
		starts[s] = off
		off += blockLen[s]
	}

	instrs := make([]Instr, 0, off)
	for s := 0; s < n; s++ {
		st := automaton.State(s)
		if dfa.IsAccepting(st) {
			instrs = append(instrs, Instr{Op: Success})
		}
		instrs = append(instrs, Instr{Op: FailLength})
		for _, e := range dfa.Edges(st) {
			instrs = append(instrs, instrForEdge(e, starts[e.Target]))
		}
		instrs = append(instrs, Instr{Op: Failure})
	}

	return Program{Instrs: instrs, Entry: starts[dfa.Initial()]}
}

func instrForEdge(e automaton.Edge, target int) Instr {
	switch e.Trans.Kind {
	case automaton.Any:
		return Instr{Op: Jump, Target: target}
	case automaton.Character:
		return Instr{Op: JumpByte, Byte: e.Trans.Lo, Target: target}
	case automaton.Range:
		return Instr{Op: JumpRange, Lo: e.Trans.Lo, Hi: e.Trans.Hi, Target: target}
	case automaton.Mask:
		return Instr{Op: JumpMask, Mask: e.Trans.M, Target: target}
	default:
		panic("bytecode: epsilon transition in a determinized automaton")
	}
}

// Run interprets p against data. It is the bytecode analogue of
// match.Deterministic and must agree with it on every input.
func Run(p Program, data []byte) bool {
	pc := p.Entry
	pos := 0
	for {
		instr := p.Instrs[pc]
		switch instr.Op {
		case Success:
			return true
		case Failure:
			return false
		case FailLength:
			if pos >= len(data) {
				return false
			}
			pc++
		case Jump:
			pos++
			pc = instr.Target
		case JumpByte:
			if pos < len(data) && data[pos] == instr.Byte {
				pos++
				pc = instr.Target
			} else {
				pc++
			}
		case JumpMask:
			if pos < len(data) && data[pos]&instr.Mask == instr.Mask {
				pos++
				pc = instr.Target
			} else {
				pc++
			}
		case JumpRange:
			if pos < len(data) && data[pos] >= instr.Lo && data[pos] <= instr.Hi {
				pos++
				pc = instr.Target
			} else {
				pc++
			}
		}
	}
}
