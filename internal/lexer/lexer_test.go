package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vela-lang/ecma/pkg/token"
)

func allTokens(t *testing.T, src string, opts ...Option) []token.Token {
	t.Helper()
	l := New(src, opts...)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return toks
}

func TestPunctuatorsAndKeywords(t *testing.T) {
	toks := allTokens(t, "const x = 1;")
	require.Len(t, toks, 6)
	assert.Equal(t, token.CONST, toks[0].Type)
	assert.Equal(t, token.NAME, toks[1].Type)
	assert.Equal(t, "x", toks[1].Value)
	assert.Equal(t, token.EQ, toks[2].Type)
	assert.Equal(t, token.NUM, toks[3].Type)
	assert.Equal(t, token.SEMI, toks[4].Type)
	assert.Equal(t, token.EOF, toks[5].Type)
}

func TestRegexVsDivisionDisambiguation(t *testing.T) {
	// after a value-producing token (`)`), `/` is division.
	divToks := allTokens(t, "(a) / b")
	var sawDiv bool
	for _, tok := range divToks {
		if tok.Type == token.SLASH {
			sawDiv = true
		}
		assert.NotEqual(t, token.REGEXP, tok.Type)
	}
	assert.True(t, sawDiv, "expected a division slash token")

	// after `return`, a leading `/` starts a regexp literal.
	reToks := allTokens(t, "return /abc/g;")
	var sawRegexp bool
	for _, tok := range reToks {
		if tok.Type == token.REGEXP {
			sawRegexp = true
			assert.Equal(t, "/abc/g", tok.Value)
		}
	}
	assert.True(t, sawRegexp, "expected a regexp literal token")
}

func TestTemplateLiteralQuasisAndExpressions(t *testing.T) {
	toks := allTokens(t, "`a${b}c`")
	var kinds []token.Type
	for _, tok := range toks {
		kinds = append(kinds, tok.Type)
	}
	assert.Contains(t, kinds, token.TEMPLATE)
	assert.Contains(t, kinds, token.NAME)
}

func TestNumericLiteralForms(t *testing.T) {
	cases := []string{"0", "123", "0x1F", "0o17", "0b101", "1_000", "3.14", "1e10", "10n"}
	for _, src := range cases {
		t.Run(src, func(t *testing.T) {
			toks := allTokens(t, src+";")
			require.GreaterOrEqual(t, len(toks), 2)
			assert.Equal(t, token.NUM, toks[0].Type)
			assert.Equal(t, src, toks[0].Value)
		})
	}
}

func TestLineTerminatorTracking(t *testing.T) {
	toks := allTokens(t, "a\nb")
	require.Len(t, toks, 3)
	assert.False(t, toks[0].NewLine)
	assert.True(t, toks[1].NewLine)
}

func TestLocationsOption(t *testing.T) {
	toks := allTokens(t, "a\nbb", WithLocations(true))
	require.NotNil(t, toks[1].Loc)
	assert.Equal(t, 2, toks[1].Loc.Start.Line)
	assert.Equal(t, 0, toks[1].Loc.Start.Column)
}

func TestPositionOfResolvesAcrossLines(t *testing.T) {
	l := New("ab\ncd\nef")
	pos := l.PositionOf(6) // 'e' in "ef", third line
	assert.Equal(t, 3, pos.Line)
	assert.Equal(t, 0, pos.Column)
}

func TestHashBangSkipped(t *testing.T) {
	toks := allTokens(t, "#!/usr/bin/env node\nconst x = 1;")
	assert.Equal(t, token.CONST, toks[0].Type)
}

func TestEightAndNineEscapesDecodeToTheDigit(t *testing.T) {
	toks := allTokens(t, `"\8x"`)
	require.GreaterOrEqual(t, len(toks), 1)
	assert.Equal(t, "8x", toks[0].Value)
}

func TestLegacyOctalEscapeIsNotReportedByTheLexerItself(t *testing.T) {
	l := New(`"\1"`)
	tok := l.NextToken()
	assert.Equal(t, "\x01", tok.Value)
	assert.Empty(t, l.Errors(), "octal-in-strict-mode is a deferred diagnostic, not a lexer error")
	assert.Equal(t, 1, l.PendingOctalEscapeCount())
}

func TestConsumeOctalEscapesFromIsolatesNestedScopes(t *testing.T) {
	l := New(`"\1" "\2" "\3"`)
	l.NextToken()
	mark := l.PendingOctalEscapeCount()
	l.NextToken()
	inner := l.ConsumeOctalEscapesFrom(mark)
	assert.Len(t, inner, 1)
	l.NextToken()
	outer := l.ConsumeOctalEscapesFrom(0)
	assert.Len(t, outer, 2, "outer flush should see its own two escapes, not the one already consumed")
}

func TestDecimalNumericSeparatorAdjacency(t *testing.T) {
	cases := map[string]bool{
		"1_000":  true,
		"1__000": false,
		"1000_":  false,
		"1_0_0":  true,
	}
	for src, wantClean := range cases {
		t.Run(src, func(t *testing.T) {
			l := New(src + ";")
			for {
				tok := l.NextToken()
				if tok.Type == token.EOF {
					break
				}
			}
			if wantClean {
				assert.Empty(t, l.Errors(), src)
			} else {
				assert.NotEmpty(t, l.Errors(), src)
			}
		})
	}
}

func TestNumericSeparatorRejectedBelowEcmaVersion12(t *testing.T) {
	l := New("1_000;", WithEcmaVersion(11))
	l.NextToken()
	assert.NotEmpty(t, l.Errors())
}

func TestNonASCIIUnicodeWhitespaceIsSkipped(t *testing.T) {
	src := "a" + string(rune(0x3000)) + "=" + string(rune(0x2000)) + "1"
	toks := allTokens(t, src)
	require.GreaterOrEqual(t, len(toks), 4)
	assert.Equal(t, token.NAME, toks[0].Type)
	assert.Equal(t, token.EQ, toks[1].Type)
	assert.Equal(t, token.NUM, toks[2].Type)
}
