// Package charclass implements the normative character-class expansions of
// §6.2: the named escapes (\d, \h, \s, \w) and the POSIX bracket
// expressions. Expansions that are themselves Unicode properties delegate
// to internal/unicodeclass; the handful that are plain ASCII ranges are
// listed directly.
package charclass

import (
	"fmt"

	"github.com/relang/rex/internal/ast"
	"github.com/relang/rex/internal/unicodeclass"
)

// Range is an inclusive codepoint range.
type Range = unicodeclass.Range

// ErrUnimplemented is returned for POSIX classes §6.2 explicitly leaves
// unimplemented ([:graph:], [:print:]).
var ErrUnimplemented = fmt.Errorf("charclass: construct not implemented")

// Digit expands \d and [:digit:]: Unicode decimal-number codepoints.
func Digit() ([]Range, error) {
	return unicodeclass.Query("general_category=decimal_number")
}

// HexDigit expands \h and [:xdigit:]: 0-9, A-F, a-f.
func HexDigit() []Range {
	return []Range{{Lo: '0', Hi: '9'}, {Lo: 'A', Hi: 'F'}, {Lo: 'a', Hi: 'f'}}
}

// Space expands \s: \t through \r, plus the space character.
func Space() []Range {
	return []Range{{Lo: '\t', Hi: '\r'}, {Lo: ' ', Hi: ' '}}
}

// Word expands \w: 0-9, _, A-Z, a-z.
func Word() []Range {
	return []Range{{Lo: '0', Hi: '9'}, {Lo: '_', Hi: '_'}, {Lo: 'A', Hi: 'Z'}, {Lo: 'a', Hi: 'z'}}
}

// ClassRanges dispatches a MatchClass name to its expansion.
func ClassRanges(name ast.ClassName) ([]Range, error) {
	switch name {
	case ast.ClassDigit:
		return Digit()
	case ast.ClassHexDigit:
		return HexDigit(), nil
	case ast.ClassSpace:
		return Space(), nil
	case ast.ClassWord:
		return Word(), nil
	default:
		return nil, fmt.Errorf("charclass: unknown class %d", name)
	}
}

// POSIXRanges dispatches a POSIXClass name to its expansion, per the table
// in §6.2.
func POSIXRanges(name ast.POSIXName) ([]Range, error) {
	switch name {
	case ast.POSIXDigit:
		return Digit()
	case ast.POSIXXDigit:
		return HexDigit(), nil
	case ast.POSIXSpace:
		return unicodeclass.Query("space")
	case ast.POSIXAlnum:
		return unicodeclass.Query("alnum")
	case ast.POSIXAlpha:
		return unicodeclass.Query("alpha")
	case ast.POSIXASCII:
		return unicodeclass.Query("ascii")
	case ast.POSIXBlank:
		return unicodeclass.Query("blank")
	case ast.POSIXCntrl:
		return unicodeclass.Query("cntrl")
	case ast.POSIXLower:
		return unicodeclass.Query("lowercase_letter")
	case ast.POSIXUpper:
		return unicodeclass.Query("uppercase_letter")
	case ast.POSIXPunct:
		return unicodeclass.Query("punct")
	case ast.POSIXWord:
		return unicodeclass.Query("word")
	case ast.POSIXGraph, ast.POSIXPrint:
		return nil, ErrUnimplemented
	default:
		return nil, fmt.Errorf("charclass: unknown POSIX class %d", name)
	}
}
