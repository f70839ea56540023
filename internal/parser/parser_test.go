package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vela-lang/ecma/pkg/ast"
)

func parseProgram(t *testing.T, src string, opts ...func(*Options)) (*ast.Program, *Parser) {
	t.Helper()
	p := New(src, opts...)
	prog := p.ParseProgram()
	return prog, p
}

func requireNoErrors(t *testing.T, p *Parser) {
	t.Helper()
	if errs := p.Errors(); len(errs) != 0 {
		for _, e := range errs {
			t.Errorf("parser error: %s", e.Message)
		}
		t.FailNow()
	}
}

func TestParsesVariableDeclarations(t *testing.T) {
	prog, p := parseProgram(t, "let x = 1, y = 2;")
	requireNoErrors(t, p)
	require.Len(t, prog.Body, 1)
	decl, ok := prog.Body[0].(*ast.VariableDeclaration)
	require.True(t, ok)
	assert.Equal(t, "let", decl.Kind)
	assert.Len(t, decl.Declarations, 2)
}

func TestConstWithoutInitializerIsAnError(t *testing.T) {
	_, p := parseProgram(t, "const x;")
	require.NotEmpty(t, p.Errors())
}

func TestArrowFunctionCoverGrammar(t *testing.T) {
	cases := []string{
		"const f = x => x + 1;",
		"const f = (x) => x + 1;",
		"const f = (x, y) => x + y;",
		"const f = () => 1;",
		"const f = async x => x;",
	}
	for _, src := range cases {
		t.Run(src, func(t *testing.T) {
			_, p := parseProgram(t, src)
			requireNoErrors(t, p)
		})
	}
}

func TestParenthesizedExpressionVsArrowParams(t *testing.T) {
	prog, p := parseProgram(t, "(a, b);")
	requireNoErrors(t, p)
	stmt, ok := prog.Body[0].(*ast.ExpressionStatement)
	require.True(t, ok)
	_, isSeq := stmt.Expression.(*ast.SequenceExpression)
	assert.True(t, isSeq, "expected a sequence expression, got %T", stmt.Expression)
}

func TestDuplicateLexicalDeclarationIsAnError(t *testing.T) {
	_, p := parseProgram(t, "let x = 1; let x = 2;")
	assert.NotEmpty(t, p.Errors())
}

func TestDuplicateFunctionParameterAllowedInSloppyMode(t *testing.T) {
	_, p := parseProgram(t, "function f(a, a) { return a; }")
	requireNoErrors(t, p)
}

func TestDuplicateFunctionParameterRejectedInStrictMode(t *testing.T) {
	_, p := parseProgram(t, "function f(a, a) { 'use strict'; return a; }")
	assert.NotEmpty(t, p.Errors())
}

func TestDuplicateArrowParameterAlwaysRejected(t *testing.T) {
	_, p := parseProgram(t, "const f = (a, a) => a;")
	assert.NotEmpty(t, p.Errors())
}

func TestDuplicateParameterRejectedForNonSimpleList(t *testing.T) {
	_, p := parseProgram(t, "function f(a, a = 1) { return a; }")
	assert.NotEmpty(t, p.Errors())
}

func TestOptionalChainingWrapsInChainExpression(t *testing.T) {
	prog, p := parseProgram(t, "a?.b.c;")
	requireNoErrors(t, p)
	stmt := prog.Body[0].(*ast.ExpressionStatement)
	_, ok := stmt.Expression.(*ast.ChainExpression)
	assert.True(t, ok, "expected ChainExpression, got %T", stmt.Expression)
}

func TestForInForOfForAwaitDisambiguation(t *testing.T) {
	t.Run("ForStatement", func(t *testing.T) {
		prog, p := parseProgram(t, "for (let i = 0; i < 10; i++) {}")
		requireNoErrors(t, p)
		require.Len(t, prog.Body, 1)
		_, ok := prog.Body[0].(*ast.ForStatement)
		assert.True(t, ok, "got %T", prog.Body[0])
	})
	t.Run("ForInStatement", func(t *testing.T) {
		prog, p := parseProgram(t, "for (let k in obj) {}")
		requireNoErrors(t, p)
		require.Len(t, prog.Body, 1)
		_, ok := prog.Body[0].(*ast.ForInStatement)
		assert.True(t, ok, "got %T", prog.Body[0])
	})
	t.Run("ForOfStatement", func(t *testing.T) {
		prog, p := parseProgram(t, "for (let v of list) {}")
		requireNoErrors(t, p)
		require.Len(t, prog.Body, 1)
		_, ok := prog.Body[0].(*ast.ForOfStatement)
		assert.True(t, ok, "got %T", prog.Body[0])
	})
}

func TestIllegalReturnOutsideFunction(t *testing.T) {
	_, p := parseProgram(t, "return 1;")
	assert.NotEmpty(t, p.Errors())
}

func TestReturnOutsideFunctionAllowedByOption(t *testing.T) {
	_, p := parseProgram(t, "return 1;", func(o *Options) { o.AllowReturnOutsideFunction = true })
	requireNoErrors(t, p)
}

func TestAutomaticSemicolonInsertion(t *testing.T) {
	prog, p := parseProgram(t, "let x = 1\nlet y = 2\n")
	requireNoErrors(t, p)
	assert.Len(t, prog.Body, 2)
}

func TestMissingSemicolonWithoutASIIsAnError(t *testing.T) {
	_, p := parseProgram(t, "let x = 1 let y = 2")
	assert.NotEmpty(t, p.Errors())
}

func TestLocationsOptionPopulatesNodeLoc(t *testing.T) {
	prog, p := parseProgram(t, "let x = 1;\nlet y = 2;", func(o *Options) { o.Locations = true })
	requireNoErrors(t, p)
	require.NotNil(t, prog.Body[1].(ast.Node))
	loc := ast.BaseOf(prog.Body[1]).Loc
	require.NotNil(t, loc)
	assert.Equal(t, 2, loc.Start.Line)
}

func TestDeeplyNestedExpressionDoesNotPanic(t *testing.T) {
	src := "1"
	for i := 0; i < maxRecursionDepth+500; i++ {
		src = "(" + src + ")"
	}
	src += ";"
	assert.NotPanics(t, func() {
		_, p := parseProgram(t, src)
		assert.NotEmpty(t, p.Errors())
	})
}

func TestClassBodyIsImplicitlyStrict(t *testing.T) {
	_, p := parseProgram(t, "class C { m(a, a) {} }")
	assert.NotEmpty(t, p.Errors())
}

func TestArrayDestructuringBindingDeclaresEachName(t *testing.T) {
	prog, p := parseProgram(t, "let [a, b, ...rest] = list;")
	requireNoErrors(t, p)
	decl := prog.Body[0].(*ast.VariableDeclaration)
	_, ok := decl.Declarations[0].ID.(*ast.ArrayPattern)
	assert.True(t, ok)
}

func TestObjectDestructuringDuplicateNameIsAnError(t *testing.T) {
	_, p := parseProgram(t, "let {a, a: b} = obj; let {c, c} = obj2;")
	// second declaration re-binds `c` twice in one pattern.
	assert.NotEmpty(t, p.Errors())
}

func TestDuplicateClassNameDeclarationIsAnError(t *testing.T) {
	_, p := parseProgram(t, "class A {} class A {}")
	assert.NotEmpty(t, p.Errors())
}

func TestLegacyOctalEscapeAllowedInSloppyMode(t *testing.T) {
	_, p := parseProgram(t, `var x = "\1";`)
	requireNoErrors(t, p)
}

func TestLegacyOctalEscapeRejectedWhenProgramIsStrict(t *testing.T) {
	_, p := parseProgram(t, `"use strict"; var x = "\1";`)
	assert.NotEmpty(t, p.Errors())
}

func TestLegacyOctalEscapeRejectedInStrictFunctionBody(t *testing.T) {
	_, p := parseProgram(t, `function f() { "use strict"; return "\1"; }`)
	assert.NotEmpty(t, p.Errors())
}

func TestLegacyOctalEscapeInSloppyFunctionNestedInStrictProgramIsAnError(t *testing.T) {
	_, p := parseProgram(t, `"use strict"; function f() { return "\1"; }`)
	assert.NotEmpty(t, p.Errors(), "strict mode is inherited by nested functions")
}

func TestLegacyOctalEscapeInOneSloppyFunctionDoesNotLeakIntoAnother(t *testing.T) {
	_, p := parseProgram(t, `function sloppy() { return "\1"; } function strictOne() { "use strict"; return "\2"; }`)
	errs := p.Errors()
	require.Len(t, errs, 1)
}

func TestClassFieldOctalEscapeIsAlwaysAnError(t *testing.T) {
	_, p := parseProgram(t, `class C { x = "\1"; }`)
	assert.NotEmpty(t, p.Errors(), "class bodies are always strict")
}
