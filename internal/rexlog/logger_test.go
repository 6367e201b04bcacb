package rexlog

import (
	"bytes"
	"strings"
	"testing"
)

func TestDisabledLoggerIsSilent(t *testing.T) {
	var buf bytes.Buffer
	l := New(false)
	l.SetOutput(&buf)
	l.Enter(PhaseNFA)
	l.Info("hello %d", 1)
	l.SetLevel(LevelDebug)
	l.Debug("detail")
	if buf.Len() != 0 {
		t.Errorf("disabled logger wrote %q, want nothing", buf.String())
	}
}

func TestInfoIsTaggedWithCurrentPhase(t *testing.T) {
	var buf bytes.Buffer
	l := New(true)
	l.SetOutput(&buf)
	l.Enter(PhaseDeterminize)
	l.Info("states=%d", 7)
	if got := buf.String(); !strings.Contains(got, "[rex:determinize] states=7") {
		t.Errorf("Info output = %q, want it to contain %q", got, "[rex:determinize] states=7")
	}
}

func TestEnterPrintsBannerForPhase(t *testing.T) {
	var buf bytes.Buffer
	l := New(true)
	l.SetOutput(&buf)
	l.Enter(PhaseBytecode)
	if got := buf.String(); !strings.Contains(got, "[rex:bytecode] ===") {
		t.Errorf("Enter banner = %q, want it to contain %q", got, "[rex:bytecode] ===")
	}
}

func TestDebugRequiresDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(true)
	l.SetOutput(&buf)
	l.Enter(PhaseParse)
	buf.Reset() // drop Enter's banner; only Debug output is under test

	l.Debug("only visible at debug level")
	if buf.Len() != 0 {
		t.Errorf("Debug at LevelInfo wrote %q, want nothing", buf.String())
	}

	l.SetLevel(LevelDebug)
	l.Debug("now visible")
	if got := buf.String(); !strings.Contains(got, "now visible") {
		t.Errorf("Debug output = %q, want it to contain %q", got, "now visible")
	}
}

func TestEnabled(t *testing.T) {
	if New(false).Enabled() {
		t.Error("Enabled() = true, want false")
	}
	if !New(true).Enabled() {
		t.Error("Enabled() = false, want true")
	}
}
