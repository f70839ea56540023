package ecma

import (
	"github.com/vela-lang/ecma/internal/lexer"
	"github.com/vela-lang/ecma/pkg/ast"
)

// Token is the tokenizer's external vocabulary: one value per lexeme, with
// Type drawn from the closed set the lexer's token.Type.String() produces
// ("num", "string", "name", "punct" spellings like "{", operator-family
// labels like "relational", one per keyword, and "eof").
type Token struct {
	Type    string
	Value   string
	Start   int
	End     int
	NewLine bool
	Loc     *ast.SourceLocation
}

// TokenIterator yields one Token per call to Next until it returns an "eof"
// token, after which further calls keep returning that same eof token
// (matching a generator that has run to completion).
type TokenIterator struct {
	lex  *lexer.Lexer
	opts Options
	done bool
	last Token
}

// Tokenizer scans source into a stream of Tokens without building an AST,
// for callers that only need lexical information (syntax highlighters,
// formatters, linters running their own grammar pass).
func Tokenizer(source string, opts ...Option) *TokenIterator {
	o := resolve(opts)
	return &TokenIterator{
		lex:  newLexerFromOptions(source, o),
		opts: o,
	}
}

func newLexerFromOptions(source string, o Options) *lexer.Lexer {
	return lexer.New(source, o.toLexerOptions()...)
}

// Next returns the next token and true, or the final "eof" token and false
// once the stream is exhausted.
func (it *TokenIterator) Next() (Token, bool) {
	if it.done {
		return it.last, false
	}
	tok := it.lex.NextToken()
	out := Token{
		Type:    tok.Type.String(),
		Value:   tok.Value,
		Start:   tok.Start,
		End:     tok.End,
		NewLine: tok.NewLine,
	}
	if it.opts.OnToken != nil {
		it.opts.OnToken(out)
	}
	if tok.Loc != nil {
		out.Loc = &ast.SourceLocation{
			Start: ast.Position{Line: tok.Loc.Start.Line, Column: tok.Loc.Start.Column},
			End:   ast.Position{Line: tok.Loc.End.Line, Column: tok.Loc.End.Column},
		}
	}
	if tok.IsEOF() {
		it.done = true
		it.last = out
		return out, false
	}
	return out, true
}

// Errors returns every tokenizer diagnostic accumulated so far, as
// SyntaxErrors anchored at their source offset.
func (it *TokenIterator) Errors() []*SyntaxError {
	lerrs := it.lex.Errors()
	if len(lerrs) == 0 {
		return nil
	}
	out := make([]*SyntaxError, 0, len(lerrs))
	for _, e := range lerrs {
		se := &SyntaxError{Reason: e.Message, Pos: e.Pos, RaisedAt: e.Pos + e.Length}
		if it.opts.Locations {
			pos := it.lex.PositionOf(e.Pos)
			se.Loc = &ast.Position{Line: pos.Line, Column: pos.Column}
		}
		out = append(out, se)
	}
	return out
}
