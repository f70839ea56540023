// Package parser implements the recursive-descent/Pratt parser over the
// tokenizer's stream: expressions (with the cover grammars for arrow
// functions and destructuring patterns), statements and declarations, and
// module import/export forms. It produces pkg/ast nodes directly rather
// than an intermediate parse tree.
package parser

import (
	"sort"

	"github.com/vela-lang/ecma/internal/context"
	"github.com/vela-lang/ecma/internal/lexer"
	"github.com/vela-lang/ecma/internal/scope"
	"github.com/vela-lang/ecma/pkg/ast"
	"github.com/vela-lang/ecma/pkg/token"
)

// precedence climbing table; higher binds tighter. Matches a
// `precedences map[lexer.TokenType]int` in internal/parser/parser.go,
// re-keyed to ECMAScript's operator set and expanded with COALESCE/EXPONENT
// tiers the source language didn't need.
const (
	lowest = iota
	comma
	assign
	conditional
	coalesce
	logicalOr
	logicalAnd
	bitOr
	bitXor
	bitAnd
	equality
	relational
	shift
	additive
	multiplicative
	exponent
	unary
	postfix
	callLevel
	member
)

// Options configures the parser; mirrors lexer.Options but is the surface
// the facade package exposes to callers (pkg/ecma).
type Options struct {
	EcmaVersion                int
	SourceType                 string // "script" | "module"
	AllowReturnOutsideFunction bool
	AllowAwaitOutsideFunction  bool
	Locations                  bool
}

func defaultOptions() Options {
	return Options{EcmaVersion: 2021, SourceType: "script"}
}

// Parser holds all mutable state for one parse. It is not reentrant and not
// safe for concurrent use: every caller must run one parse to completion on
// a goroutine before starting another.
type Parser struct {
	opts   Options
	lex    *lexer.Lexer
	cursor *Cursor
	ctx    *scope.Stack

	errors []*Error

	inFunction  bool
	inGenerator bool
	inAsync     bool
	inIteration bool
	inSwitch    bool

	// inForHeadNoIn suppresses the `in` relational operator while parsing a
	// C-style for-loop's init-expression, so `for (a in b in c)` parses as a
	// ForInStatement over `a` rather than swallowing the second `in` into
	// the init expression.
	inForHeadNoIn bool

	labels []label

	strict bool

	// builder state for the cover-grammar rewriting: when non-nil,
	// ambiguous productions record offsets instead of raising errors
	// immediately, the way acorn's DestructuringErrors record does.
	destructuring *DestructuringErrors

	lastEnd int

	// depth counts nested parseStatement/parseAssign entries. A source
	// document with thousands of nested parentheses or blocks would
	// otherwise exhaust the goroutine stack instead of producing a
	// diagnostic; enterRecursion turns that into a reported fatalParse.
	depth int
}

// maxRecursionDepth bounds nested expression/statement descent. Acorn hits
// a platform stack limit at a similar order of magnitude on pathological
// input; panicking a sentinel here turns that crash into a diagnostic.
const maxRecursionDepth = 2500

// enterRecursion increments the nesting counter, panicking fatalParse once
// the bound is exceeded; pair with a deferred exitRecursion.
func (p *Parser) enterRecursion() {
	p.depth++
	if p.depth > maxRecursionDepth {
		tok := p.cur()
		panic(fatalParse{err: NewError(tok.Start, tok.End, ErrInvalidExpression, "source too deeply nested to parse")})
	}
}

func (p *Parser) exitRecursion() { p.depth-- }

// New constructs a Parser over src.
func New(src string, opts ...func(*Options)) *Parser {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	lx := lexer.New(src, lexer.WithEcmaVersion(o.EcmaVersion), lexer.WithSourceType(o.SourceType), lexer.WithLocations(o.Locations))
	p := &Parser{
		opts:   o,
		lex:    lx,
		cursor: NewCursor(lx),
		ctx:    scope.NewStack(),
		strict: o.SourceType == "module",
	}
	return p
}

// Errors returns every diagnostic accumulated during the parse (parser and
// lexer combined), in source order.
func (p *Parser) Errors() []*Error {
	all := make([]*Error, 0, len(p.errors)+len(p.lex.Errors()))
	for _, e := range p.lex.Errors() {
		all = append(all, NewError(e.Pos, e.Pos+e.Length, e.Code, e.Message))
	}
	all = append(all, p.errors...)
	sort.SliceStable(all, func(i, j int) bool { return all[i].Start < all[j].Start })
	return all
}

func (p *Parser) addError(start, end int, code, message string) {
	p.errors = append(p.errors, NewError(start, end, code, message))
}

// flushOctalEscapes promotes every legacy-octal/`\8`/`\9` escape the lexer
// deferred since mark into a real diagnostic, but only if this lexical
// scope (the function body or program currently finishing) turned out to be
// strict. mark is the pending count observed before this scope's body was
// parsed, so only escapes belonging to this scope — not ones an inner
// function already consumed for itself — are flushed here.
func (p *Parser) flushOctalEscapes(mark int) {
	pending := p.lex.ConsumeOctalEscapesFrom(mark)
	if !p.strict {
		return
	}
	for _, e := range pending {
		p.addError(e.Pos, e.Pos+e.Length, ErrStrictModeViolation, e.Message)
	}
}

// PositionAt resolves offset to a line/column pair using the same source
// this parser was constructed over, for callers (pkg/ecma) that need to
// render a diagnostic's location without re-lexing.
func (p *Parser) PositionAt(offset int) token.Position {
	return p.lex.PositionOf(offset)
}

func (p *Parser) cur() token.Token    { return p.cursor.Current() }
func (p *Parser) curType() token.Type { return p.cursor.Current().Type }

func (p *Parser) next() token.Token {
	tok := p.cursor.Current()
	p.lastEnd = tok.End
	p.cursor = p.cursor.Advance()
	return tok
}

func (p *Parser) curIs(t token.Type) bool { return p.curType() == t }

func (p *Parser) peekIs(n int, t token.Type) bool { return p.cursor.Peek(n).Type == t }

// expect consumes the current token if it matches t, else records a
// diagnostic and leaves the cursor in place so the caller's subsequent
// parse attempts see the same offending token (accumulate-don't-abort:
// one bad token yields one error, not a cascade from a skipped token).
func (p *Parser) expect(t token.Type) token.Token {
	tok := p.cur()
	if tok.Type != t {
		p.addError(tok.Start, tok.End, ErrUnexpectedToken, "unexpected token "+tok.Type.String()+", expected "+t.String())
		return tok
	}
	return p.next()
}

// expectIdentifier consumes a NAME token and returns its text. Any other
// token, keywords included, is not consumed: it is recorded as
// ErrExpectedIdent and its text is returned.
func (p *Parser) expectIdentifier() string {
	tok := p.cur()
	if tok.Type != token.NAME {
		p.addError(tok.Start, tok.End, ErrExpectedIdent, "expected identifier")
		return tok.Value
	}
	p.next()
	return tok.Value
}

// canInsertSemicolon implements Automatic Semicolon Insertion: a semicolon
// is elided before `}`, at EOF, or when a line terminator separates the
// current token from the previous one.
func (p *Parser) canInsertSemicolon() bool {
	tok := p.cur()
	return tok.Type == token.RBRACE || tok.Type == token.EOF || tok.NewLine
}

// semicolon consumes a statement-terminating `;`, or applies ASI.
func (p *Parser) semicolon() {
	if p.curIs(token.SEMI) {
		p.next()
		return
	}
	if p.canInsertSemicolon() {
		return
	}
	tok := p.cur()
	p.addError(tok.Start, tok.End, ErrMissingSemicolon, "missing semicolon")
}

// startNode / finishNode mirror NodeBuilder (StartNode/Finish)
// adapted to ESTree's direct start/end int fields via ast.Builder.
func (p *Parser) startNode() ast.Builder {
	return ast.NewBuilder(p.cur().Start)
}

func (p *Parser) finishNode(b ast.Builder, n ast.Node) ast.Node {
	return p.attachLoc(b, b.Finish(n, p.lastEnd))
}

func (p *Parser) finishNodeAt(b ast.Builder, n ast.Node, lastChild ast.Node) ast.Node {
	return p.attachLoc(b, b.FinishWithNode(n, lastChild, p.lastEnd))
}

// attachLoc resolves n's UTF-16 offsets into line/column positions when the
// caller opted into the `locations` option; a no-op (and no allocation)
// otherwise.
func (p *Parser) attachLoc(b ast.Builder, n ast.Node) ast.Node {
	if !p.opts.Locations {
		return n
	}
	base := ast.BaseOf(n)
	startPos := p.lex.PositionOf(b.Start())
	endPos := p.lex.PositionOf(n.EndPos())
	base.Loc = &ast.SourceLocation{
		Start: ast.Position{Line: startPos.Line, Column: startPos.Column},
		End:   ast.Position{Line: endPos.Line, Column: endPos.Column},
	}
	return n
}

// context push/pop for the syntactic-context stack the tokenizer relies on
// (internal/context.Stack), kept in lockstep with function/generator entry
// the grammar alone reveals to the parser, not the token stream.
func (p *Parser) pushContextEntry(e context.Entry) { p.lex.PushContext(e) }
func (p *Parser) popContextEntry()                 { p.lex.PopContext() }
