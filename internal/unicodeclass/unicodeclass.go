// Package unicodeclass implements the read-only Unicode property oracle
// consumed by the NFA builder for MatchProperty nodes (§6.3).
//
// Generating and shipping Unicode data tables is explicitly out of scope
// for this engine (§1); the tables themselves are supplied by the Go
// standard library's unicode package, which already ships general
// categories, scripts, and binary properties as *unicode.RangeTable values.
// This package's job is only the query(name) -> ranges contract and its
// process-wide cache.
package unicodeclass

import (
	"fmt"
	"strings"
	"sync"
	"unicode"
)

// Range is an inclusive codepoint range, Lo == Hi for a singleton.
type Range struct {
	Lo, Hi rune
}

var (
	cache   sync.Map // string -> []Range
	cacheMu sync.Mutex
)

// categoryAliases maps the long-form names used by §6.2's expansions onto
// the short names unicode.Categories is keyed by.
var categoryAliases = map[string]string{
	"letter":                "L",
	"mark":                  "M",
	"number":                "N",
	"decimal_number":        "Nd",
	"uppercase_letter":      "Lu",
	"lowercase_letter":      "Ll",
	"titlecase_letter":      "Lt",
	"modifier_letter":       "Lm",
	"other_letter":          "Lo",
	"connector_punctuation": "Pc",
	"space_separator":       "Zs",
	"line_separator":        "Zl",
	"paragraph_separator":   "Zp",
	"control":               "Cc",
	"format":                "Cf",
	"unassigned":            "Cn",
	"private_use":           "Co",
	"surrogate":             "Cs",
}

// Query resolves name — either "key=value" or a bare "key" — into its
// codepoint ranges. It is tried in turn against core-property,
// general-category, miscellaneous, binary-property, script-extension, and
// script tables, matching the order specified in §6.3. An unknown name is
// a fatal configuration error, per §7.
func Query(name string) ([]Range, error) {
	if v, ok := cache.Load(name); ok {
		return v.([]Range), nil
	}

	tbl, err := resolveTable(name)
	if err != nil {
		return nil, err
	}
	ranges := tableToRanges(tbl)

	// Append-only cache: concurrent first-queriers may both compute the
	// same value; that's fine, the later store just wins with an
	// identical result (see §5's "monotonic, entries only added").
	cacheMu.Lock()
	cache.Store(name, ranges)
	cacheMu.Unlock()
	return ranges, nil
}

func resolveTable(name string) (*unicode.RangeTable, error) {
	key, value, hasValue := splitQuery(name)

	lookups := []func(string) (*unicode.RangeTable, bool){
		lookupCoreProperty,
		lookupGeneralCategory,
		lookupMisc,
		lookupBinaryProperty,
		lookupScriptExtension,
		lookupScript,
	}

	if hasValue {
		for _, lookup := range lookups {
			if tbl, ok := lookup(value); ok {
				return tbl, nil
			}
		}
		return nil, fmt.Errorf("unicodeclass: unknown property %q=%q", key, value)
	}

	for _, lookup := range lookups {
		if tbl, ok := lookup(key); ok {
			return tbl, nil
		}
	}
	return nil, fmt.Errorf("unicodeclass: unknown property %q", key)
}

func splitQuery(name string) (key, value string, hasValue bool) {
	if i := strings.IndexByte(name, '='); i >= 0 {
		return name[:i], name[i+1:], true
	}
	return name, "", false
}

func normalize(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, "-", "_"))
}

func lookupCoreProperty(s string) (*unicode.RangeTable, bool) {
	tbl, ok := unicode.Properties[s]
	if ok {
		return tbl, true
	}
	return nil, false
}

func lookupGeneralCategory(s string) (*unicode.RangeTable, bool) {
	if alias, ok := categoryAliases[normalize(s)]; ok {
		s = alias
	}
	tbl, ok := unicode.Categories[s]
	return tbl, ok
}

// lookupMisc covers the handful of named aggregates §6.2 needs that are
// neither a single general category nor a single script: ascii, and the
// composite classes built from several categories at once.
func lookupMisc(s string) (*unicode.RangeTable, bool) {
	switch normalize(s) {
	case "ascii":
		return asciiTable, true
	case "alnum":
		return rangeTableUnion(unicode.Letter, unicode.Mark, unicode.Categories["Nd"]), true
	case "alpha":
		return rangeTableUnion(unicode.Letter, unicode.Mark), true
	case "blank":
		return rangeTableUnion(unicode.Categories["Zs"], tabOnly), true
	case "cntrl":
		return rangeTableUnion(unicode.Categories["Cc"], unicode.Categories["Cf"], unicode.Categories["Cn"], unicode.Categories["Co"], unicode.Categories["Cs"]), true
	case "graph", "print":
		return nil, false
	case "punct":
		// Six subcategories per §6.2: Pd, Ps, Pe, Pi, Pf, Po. Pc (connector
		// punctuation, e.g. "_") is deliberately excluded — it's already
		// covered by [:word:]/\w, and POSIX-style [:punct:] classes exclude
		// it for the same reason.
		return rangeTableUnion(
			unicode.Categories["Pd"], unicode.Categories["Ps"],
			unicode.Categories["Pe"], unicode.Categories["Pi"], unicode.Categories["Pf"],
			unicode.Categories["Po"], extraPunctTable,
		), true
	case "space":
		return rangeTableUnion(unicode.Categories["Zs"], unicode.Categories["Zl"], unicode.Categories["Zp"], tabToCR, nextLineTable), true
	case "word":
		return rangeTableUnion(unicode.Letter, unicode.Mark, unicode.Categories["Nd"], unicode.Categories["Pc"]), true
	}
	return nil, false
}

func lookupBinaryProperty(s string) (*unicode.RangeTable, bool) {
	tbl, ok := unicode.Properties[s]
	if !ok {
		// Try common spelling of binary properties, e.g. "White_Space".
		tbl, ok = unicode.Properties[titleUnderscore(s)]
	}
	return tbl, ok
}

func lookupScriptExtension(s string) (*unicode.RangeTable, bool) {
	// The standard library does not ship a separate script-extensions
	// table distinct from Scripts; approximate with Scripts.
	tbl, ok := unicode.Scripts[s]
	return tbl, ok
}

func lookupScript(s string) (*unicode.RangeTable, bool) {
	tbl, ok := unicode.Scripts[s]
	if !ok {
		tbl, ok = unicode.Scripts[titleUnderscore(s)]
	}
	return tbl, ok
}

func titleUnderscore(s string) string {
	parts := strings.Split(s, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + strings.ToLower(p[1:])
	}
	return strings.Join(parts, "_")
}

// asciiTable, tabOnly, tabToCR, nextLineTable and extraPunctTable fill in
// the handful of ranges §6.2 names that aren't already modeled as a single
// stdlib unicode.RangeTable.
var (
	asciiTable      = &unicode.RangeTable{R16: []unicode.Range16{{Lo: 0x0000, Hi: 0x007F, Stride: 1}}}
	tabOnly         = &unicode.RangeTable{R16: []unicode.Range16{{Lo: 0x0009, Hi: 0x0009, Stride: 1}}}
	tabToCR         = &unicode.RangeTable{R16: []unicode.Range16{{Lo: 0x0009, Hi: 0x000D, Stride: 1}}}
	nextLineTable   = &unicode.RangeTable{R16: []unicode.Range16{{Lo: 0x0085, Hi: 0x0085, Stride: 1}}}
	extraPunctTable = &unicode.RangeTable{R16: []unicode.Range16{
		{Lo: '$', Hi: '$', Stride: 1}, {Lo: '+', Hi: '+', Stride: 1},
		{Lo: '<', Hi: '<', Stride: 1}, {Lo: '=', Hi: '=', Stride: 1},
		{Lo: '>', Hi: '>', Stride: 1}, {Lo: '^', Hi: '^', Stride: 1},
		{Lo: '`', Hi: '`', Stride: 1}, {Lo: '|', Hi: '|', Stride: 1},
		{Lo: '~', Hi: '~', Stride: 1},
	}}
)

// rangeTableUnion merges several tables into one *unicode.RangeTable whose
// ranges are sorted, non-overlapping and have stride 1; the merge itself is
// done on []Range.
func rangeTableUnion(tables ...*unicode.RangeTable) *unicode.RangeTable {
	var all []Range
	for _, t := range tables {
		if t == nil {
			continue
		}
		all = append(all, tableToRanges(t)...)
	}
	merged := mergeRanges(all)
	rt := &unicode.RangeTable{}
	for _, r := range merged {
		if r.Hi <= 0xFFFF {
			rt.R16 = append(rt.R16, unicode.Range16{Lo: uint16(r.Lo), Hi: uint16(r.Hi), Stride: 1})
		} else if r.Lo > 0xFFFF {
			rt.R32 = append(rt.R32, unicode.Range32{Lo: uint32(r.Lo), Hi: uint32(r.Hi), Stride: 1})
		} else {
			rt.R16 = append(rt.R16, unicode.Range16{Lo: uint16(r.Lo), Hi: 0xFFFF, Stride: 1})
			rt.R32 = append(rt.R32, unicode.Range32{Lo: 0x10000, Hi: uint32(r.Hi), Stride: 1})
		}
	}
	return rt
}

func tableToRanges(tbl *unicode.RangeTable) []Range {
	var out []Range
	for _, r := range tbl.R16 {
		appendStrideRanges(&out, rune(r.Lo), rune(r.Hi), rune(r.Stride))
	}
	for _, r := range tbl.R32 {
		appendStrideRanges(&out, rune(r.Lo), rune(r.Hi), rune(r.Stride))
	}
	return mergeRanges(out)
}

func appendStrideRanges(out *[]Range, lo, hi, stride rune) {
	if stride <= 1 {
		*out = append(*out, Range{Lo: lo, Hi: hi})
		return
	}
	for c := lo; c <= hi; c += stride {
		*out = append(*out, Range{Lo: c, Hi: c})
	}
}

// mergeRanges sorts and coalesces adjacent/overlapping ranges so callers
// never need to worry about an oracle result being non-canonical.
func mergeRanges(rs []Range) []Range {
	if len(rs) == 0 {
		return nil
	}
	sorted := append([]Range(nil), rs...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j-1].Lo > sorted[j].Lo; j-- {
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
		}
	}
	out := sorted[:1]
	for _, r := range sorted[1:] {
		last := &out[len(out)-1]
		if r.Lo <= last.Hi+1 {
			if r.Hi > last.Hi {
				last.Hi = r.Hi
			}
			continue
		}
		out = append(out, r)
	}
	return out
}
