package parser

import "github.com/vela-lang/ecma/pkg/token"

// Cursor is an immutable, buffered view over a lexer.Lexer's token stream,
// built to support the lookahead cover-grammar disambiguation needs:
// arrow-parameter-list vs. parenthesized-expression requires peeking past
// an entire balanced `(...)` before committing to either parse.
type Cursor struct {
	lex    tokenSource
	tokens []token.Token
	index  int
}

// tokenSource is the minimal surface Cursor needs from the lexer, kept as
// an interface so parser tests can drive a Cursor from a canned token slice
// without a real Lexer.
type tokenSource interface {
	NextToken() token.Token
}

// NewCursor buffers the first token and returns a Cursor positioned on it.
func NewCursor(lex tokenSource) *Cursor {
	c := &Cursor{lex: lex}
	c.tokens = append(c.tokens, lex.NextToken())
	return c
}

// Current returns the token the cursor sits on.
func (c *Cursor) Current() token.Token { return c.tokens[c.index] }

// Peek returns the token n positions ahead (Peek(0) == Current()), buffering
// from the underlying lexer as needed.
func (c *Cursor) Peek(n int) token.Token {
	target := c.index + n
	for len(c.tokens) <= target {
		c.tokens = append(c.tokens, c.lex.NextToken())
	}
	return c.tokens[target]
}

// Is reports whether the current token has type t.
func (c *Cursor) Is(t token.Type) bool { return c.Current().Type == t }

// IsAny reports whether the current token's type is one of types.
func (c *Cursor) IsAny(types ...token.Type) bool {
	cur := c.Current().Type
	for _, t := range types {
		if cur == t {
			return true
		}
	}
	return false
}

// PeekIs reports whether the token n positions ahead has type t.
func (c *Cursor) PeekIs(n int, t token.Type) bool { return c.Peek(n).Type == t }

// Advance returns a new Cursor moved one token forward. The token buffer is
// shared (append-only), so advancing is O(1) and never invalidates earlier
// Marks.
func (c *Cursor) Advance() *Cursor {
	next := &Cursor{lex: c.lex, tokens: c.tokens, index: c.index + 1}
	for len(next.tokens) <= next.index {
		next.tokens = append(next.tokens, next.lex.NextToken())
	}
	c.tokens = next.tokens
	return next
}

// Mark is a lightweight position marker for cheap backtracking, distinct
// from a full parser-state snapshot (no error list, no context-stack copy).
type Mark struct{ index int }

// Mark captures the current position.
func (c *Cursor) Mark() Mark { return Mark{index: c.index} }

// ResetTo rewinds the cursor to a previously captured Mark.
func (c *Cursor) ResetTo(m Mark) { c.index = m.index }

// IsEOF reports whether the current token is the end-of-input sentinel.
func (c *Cursor) IsEOF() bool { return c.Current().Type == token.EOF }

// Clone returns a shallow copy sharing the same backing token buffer.
func (c *Cursor) Clone() *Cursor {
	return &Cursor{lex: c.lex, tokens: c.tokens, index: c.index}
}
