// Package encoder lowers Unicode codepoint ranges into UTF-8 byte-path
// fragments inserted between two automaton states.
//
// This is the hardest piece of the engine: an arbitrary codepoint range
// must be decomposed into a minimal set of UTF-8 byte-sequence ranges so
// that the automaton's hot loop stays a single-byte dispatch regardless of
// codepoint width (see §4.1). Codepoints are encoded by hand rather than
// through unicode/utf8, which refuses to encode surrogate halves; this
// encoder is a mechanical byte-packer and has no opinion on which
// codepoints are well-formed scalar values — that filtering belongs to the
// AST/parser layer upstream.
package encoder

import "github.com/relang/rex/internal/automaton"

// Width boundaries per the UTF-8 layout table in §4.1.
const (
	max1 = 0x7F
	max2 = 0x7FF
	max3 = 0xFFFF
	max4 = 0x10FFFF
)

// Encoder inserts UTF-8 byte-path fragments into an automaton.
type Encoder struct {
	a *automaton.Automaton
}

// New returns an Encoder that inserts fragments into a.
func New(a *automaton.Automaton) *Encoder {
	return &Encoder{a: a}
}

// ConnectValue inserts a path from->to that accepts exactly the UTF-8
// encoding of cp.
func (e *Encoder) ConnectValue(from, to automaton.State, cp rune) {
	w, bytes := encodeRune(uint32(cp))
	_ = w
	e.emit(from, to, bytes, bytes)
}

// ConnectAny inserts four parallel fragments, one per UTF-8 width, that
// together accept any valid-width scalar encoding in [0, 0x10FFFF].
func (e *Encoder) ConnectAny(from, to automaton.State) {
	e.ConnectRange(from, to, 0, 0x10FFFF)
}

// ConnectRange inserts fragments from->to accepting exactly the UTF-8
// encodings of the codepoints in [lo, hi].
func (e *Encoder) ConnectRange(from, to automaton.State, lo, hi rune) {
	if lo > hi {
		return
	}
	for w := 1; w <= 4; w++ {
		wlo, whi := widthBounds(w)
		l, h := maxRune(lo, wlo), minRune(hi, whi)
		if l > h {
			continue
		}
		e.connectWidth(from, to, w, l, h)
	}
}

func widthBounds(w int) (rune, rune) {
	switch w {
	case 1:
		return 0, max1
	case 2:
		return max1 + 1, max2
	case 3:
		return max2 + 1, max3
	case 4:
		return max3 + 1, max4
	default:
		panic("encoder: invalid width")
	}
}

// connectWidth lowers [lo, hi], already clipped to a single width bucket,
// by recursively splitting at the continuation-byte boundaries named in
// §4.1 (steps of 1<<6, 1<<12, 1<<18 depending on width).
func (e *Encoder) connectWidth(from, to automaton.State, w int, lo, hi rune) {
	e.splitAtSteps(from, to, w, lo, hi, stepsForWidth(w))
}

func stepsForWidth(w int) []rune {
	switch w {
	case 1:
		return nil
	case 2:
		return []rune{1 << 6}
	case 3:
		return []rune{1 << 12, 1 << 6}
	case 4:
		return []rune{1 << 18, 1 << 12, 1 << 6}
	default:
		panic("encoder: invalid width")
	}
}

// splitAtSteps emits fragments for [lo, hi] at width w. At each recursion
// level it walks the aligned buckets of the current step size that overlap
// [lo, hi]: a bucket fully contained in [lo, hi] is emitted directly (its
// cartesian product of independent per-byte ranges exactly equals the
// bucket, so one fragment suffices); a partially-overlapping bucket is
// recursed into at the next-finer step.
func (e *Encoder) splitAtSteps(from, to automaton.State, w int, lo, hi rune, steps []rune) {
	if lo > hi {
		return
	}
	if len(steps) == 0 {
		e.emitRuneRange(from, to, lo, hi)
		return
	}
	step := steps[0]
	rest := steps[1:]
	bucketStart := (lo / step) * step
	for b := bucketStart; b <= hi; b += step {
		bucketLo, bucketHi := b, b+step-1
		l, h := maxRune(lo, bucketLo), minRune(hi, bucketHi)
		if l > h {
			continue
		}
		if l == bucketLo && h == bucketHi {
			e.emitRuneRange(from, to, l, h)
		} else {
			e.splitAtSteps(from, to, w, l, h, rest)
		}
	}
}

// emitRuneRange encodes lo and hi (already known to share a byte width)
// and emits the resulting per-byte-position fragment.
func (e *Encoder) emitRuneRange(from, to automaton.State, lo, hi rune) {
	_, loBytes := encodeRune(uint32(lo))
	_, hiBytes := encodeRune(uint32(hi))
	e.emit(from, to, loBytes, hiBytes)
}

// emit is the fragment emission contract of §4.1: minBytes and maxBytes
// have equal length w; w-1 fresh intermediate states are allocated and
// chained from->...->to, with a Character transition at byte positions
// where minBytes[i] == maxBytes[i] and a Range transition otherwise.
// Transitions are prepended, encoding greedy-match precedence.
func (e *Encoder) emit(from, to automaton.State, minBytes, maxBytes []byte) {
	w := len(minBytes)
	cur := from
	for i := 0; i < w; i++ {
		next := to
		if i < w-1 {
			next = e.a.AddState()
		}
		var tr automaton.Transition
		if minBytes[i] == maxBytes[i] {
			tr = automaton.CharTransition(minBytes[i])
		} else {
			tr = automaton.RangeTransition(minBytes[i], maxBytes[i])
		}
		e.a.PrependTransition(cur, tr, next)
		cur = next
	}
}

// encodeRune packs a codepoint into its raw UTF-8 byte sequence, following
// the bit layout table in §4.1 directly. It does not validate that cp is a
// well-formed scalar value (surrogates included) — that is an upstream
// concern.
func encodeRune(cp uint32) (width int, bytes []byte) {
	switch {
	case cp <= max1:
		return 1, []byte{byte(cp)}
	case cp <= max2:
		return 2, []byte{
			0xC0 | byte(cp>>6),
			0x80 | byte(cp&0x3F),
		}
	case cp <= max3:
		return 3, []byte{
			0xE0 | byte(cp>>12),
			0x80 | byte((cp>>6)&0x3F),
			0x80 | byte(cp&0x3F),
		}
	default:
		return 4, []byte{
			0xF0 | byte(cp>>18),
			0x80 | byte((cp>>12)&0x3F),
			0x80 | byte((cp>>6)&0x3F),
			0x80 | byte(cp&0x3F),
		}
	}
}

func maxRune(a, b rune) rune {
	if a > b {
		return a
	}
	return b
}

func minRune(a, b rune) rune {
	if a < b {
		return a
	}
	return b
}
