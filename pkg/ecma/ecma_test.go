package ecma

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vela-lang/ecma/pkg/ast"
)

func TestParseReturnsProgramOnSuccess(t *testing.T) {
	prog, errs := Parse("let x = 1 + 2;")
	require.Empty(t, errs)
	require.Len(t, prog.Body, 1)
	_, ok := prog.Body[0].(*ast.VariableDeclaration)
	assert.True(t, ok)
}

func TestParseAccumulatesSyntaxErrors(t *testing.T) {
	_, errs := Parse("let x = ;")
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Error(), "offset")
}

func TestParseWithLocationsPopulatesLoc(t *testing.T) {
	_, errs := Parse("let x = ;", WithLocations(true))
	require.NotEmpty(t, errs)
	require.NotNil(t, errs[0].Loc)
	assert.Equal(t, 1, errs[0].Loc.Line)
}

func TestParseExpressionAtOffset(t *testing.T) {
	src := "const ignored = 1; 2 + 3"
	expr, errs := ParseExpressionAt(src, len("const ignored = 1; "))
	require.Empty(t, errs)
	bin, ok := expr.(*ast.BinaryExpression)
	require.True(t, ok)
	assert.Equal(t, "+", bin.Operator)
}

func TestTokenizerYieldsTokensThenEOF(t *testing.T) {
	it := Tokenizer("a + 1")
	var types []string
	for {
		tok, more := it.Next()
		types = append(types, tok.Type)
		if !more {
			break
		}
	}
	assert.Equal(t, "eof", types[len(types)-1])
	assert.Contains(t, types, "name")
	assert.Contains(t, types, "num")
}

func TestExtendComposesPluginOptions(t *testing.T) {
	factory := Extend(func(o Options) Options {
		o.SourceType = "module"
		return o
	})
	_, errs := factory.Parse("import x from 'y';")
	assert.Empty(t, errs)
}

func TestSourceTypeModuleAllowsImportExport(t *testing.T) {
	_, errs := Parse("export const x = 1;", WithSourceType("module"))
	assert.Empty(t, errs)
}

func TestUnicodePropertyEscapeAcceptedAtEcmaVersion9(t *testing.T) {
	_, errs := Parse(`var re = /\p{Script=Greek}/u;`, WithEcmaVersion(9))
	assert.Empty(t, errs)
}

func TestUnicodePropertyEscapeRejectedAtEcmaVersion8(t *testing.T) {
	_, errs := Parse(`var re = /\p{Script=Greek}/u;`, WithEcmaVersion(8))
	assert.NotEmpty(t, errs)
}

func TestLegacyOctalEscapeOnlyErrorsInStrictMode(t *testing.T) {
	_, errs := Parse(`var x = "\1";`)
	assert.Empty(t, errs)

	_, strictErrs := Parse(`"use strict"; var x = "\1";`)
	assert.NotEmpty(t, strictErrs)
}
