package ecma

import (
	"github.com/vela-lang/ecma/internal/parser"
	"github.com/vela-lang/ecma/pkg/ast"
)

// Parse parses a complete program. On success it returns the Program node
// and a nil error slice; a syntax error that left the parser unable to
// produce a sensible tree still returns the best-effort Program alongside
// the non-empty error list, an "accumulate, report, let the caller decide"
// convention rather than an exception-only contract.
func Parse(source string, opts ...Option) (*ast.Program, []*SyntaxError) {
	o := resolve(opts)
	p := newParser(source, o)
	program := p.ParseProgram()
	return program, collectErrors(p, o)
}

// ParseExpressionAt parses a single expression starting at offset, for
// callers splicing a sub-expression out of a larger document (REPLs,
// template-literal interpolation re-parsing, editor-tooling completions).
func ParseExpressionAt(source string, offset int, opts ...Option) (ast.Node, []*SyntaxError) {
	o := resolve(opts)
	p := newParser(source[offset:], o)
	expr := p.ParseExpression()
	return expr, collectErrors(p, o)
}

func newParser(source string, o Options) *parser.Parser {
	return parser.New(source, o.toParserOptions()...)
}

func collectErrors(p *parser.Parser, o Options) []*SyntaxError {
	perrs := p.Errors()
	if len(perrs) == 0 {
		return nil
	}
	out := make([]*SyntaxError, 0, len(perrs))
	for _, e := range perrs {
		se := &SyntaxError{Reason: e.Message, Pos: e.Start, RaisedAt: e.End}
		if o.Locations {
			pos := p.PositionAt(e.Start)
			se.Loc = &ast.Position{Line: pos.Line, Column: pos.Column}
		}
		out = append(out, se)
	}
	return out
}
