// Package rexlog provides the phase-tagged diagnostic logging used during
// compilation. Unlike a flat "print if verbose" logger, it tracks which
// construction phase (parse, NFA build, determinize, bytecode) is currently
// running and tags every line with it, and distinguishes Info from Debug so
// a caller can ask for per-state detail without drowning in it by default.
package rexlog

import (
	"fmt"
	"io"
	"os"
)

// Phase names a stage of the compilation pipeline (§2's data-flow stages),
// used to tag every line a Logger prints while that phase is current.
type Phase int

const (
	// PhaseNone is the zero Phase: nothing is tagged until Enter is called.
	PhaseNone Phase = iota
	PhaseParse
	PhaseNFA
	PhaseDeterminize
	PhaseBytecode
)

func (p Phase) String() string {
	switch p {
	case PhaseParse:
		return "parse"
	case PhaseNFA:
		return "nfa"
	case PhaseDeterminize:
		return "determinize"
	case PhaseBytecode:
		return "bytecode"
	default:
		return "-"
	}
}

// Level gates how much detail a Logger prints. LevelInfo is the default;
// LevelDebug additionally prints Debug calls (e.g. per-state trace output).
type Level int

const (
	LevelInfo Level = iota
	LevelDebug
)

// Logger prints phase-tagged diagnostic lines when enabled, and is silent
// otherwise. The zero value is not usable; construct one with New.
type Logger struct {
	enabled bool
	level   Level
	phase   Phase
	out     io.Writer
}

// New creates a logger at LevelInfo. When enabled is false, no method prints
// anything; Enter still records the phase but prints no banner.
func New(enabled bool) *Logger {
	return &Logger{enabled: enabled, out: os.Stderr}
}

// SetOutput sets the output writer for the logger.
func (l *Logger) SetOutput(w io.Writer) {
	l.out = w
}

// SetLevel controls whether Debug calls are printed.
func (l *Logger) SetLevel(level Level) {
	l.level = level
}

// Enter switches the current phase and prints a banner for it. Subsequent
// Info/Debug calls are tagged with this phase until the next Enter.
func (l *Logger) Enter(phase Phase) {
	l.phase = phase
	if !l.enabled {
		return
	}
	fmt.Fprintf(l.out, "\n[rex:%s] ===\n", phase)
}

// Info prints a formatted message tagged with the current phase.
func (l *Logger) Info(format string, args ...interface{}) {
	l.printf(LevelInfo, format, args...)
}

// Debug prints a formatted message tagged with the current phase, only
// when the logger's level is LevelDebug or higher.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.printf(LevelDebug, format, args...)
}

func (l *Logger) printf(level Level, format string, args ...interface{}) {
	if !l.enabled || level > l.level {
		return
	}
	fmt.Fprintf(l.out, "[rex:%s] "+format+"\n", append([]interface{}{l.phase}, args...)...)
}

// Enabled returns whether the logger is enabled at all.
func (l *Logger) Enabled() bool {
	return l.enabled
}
