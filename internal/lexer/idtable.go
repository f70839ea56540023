package lexer

import (
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// identifierStart and identifierContinue are the merged Unicode range
// tables the tokenizer treats as its character classification oracle.
// Built with golang.org/x/text/unicode/rangetable the way tdewolff/parse/v2's
// js lexer builds its own identifierStart/identifierContinue tables from the
// constituent unicode.RangeTable categories, rather than hand-rolling a
// scan over unicode.Is calls per rune.
var (
	identifierStart = rangetable.Merge(
		unicode.Lu, unicode.Ll, unicode.Lt, unicode.Lm, unicode.Lo, unicode.Nl,
		unicode.Other_ID_Start,
	)
	identifierContinue = rangetable.Merge(
		unicode.Lu, unicode.Ll, unicode.Lt, unicode.Lm, unicode.Lo, unicode.Nl,
		unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc,
		unicode.Other_ID_Start, unicode.Other_ID_Continue,
	)
)

// IsIdentifierStart reports whether r can begin an identifier, per the `$`
// and `_` special cases plus the Unicode ID_Start derived category.
func IsIdentifierStart(r rune) bool {
	if r == '$' || r == '_' {
		return true
	}
	return unicode.Is(identifierStart, r)
}

// IsIdentifierChar reports whether r can continue an identifier once begun,
// additionally admitting the zero-width non-joiner/joiner (U+200C/U+200D).
func IsIdentifierChar(r rune) bool {
	if r == '$' || r == '_' || r == 0x200C || r == 0x200D {
		return true
	}
	return unicode.Is(identifierContinue, r)
}
