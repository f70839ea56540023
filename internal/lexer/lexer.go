// Package lexer implements the ECMAScript tokenizer: a hand-written,
// character-code-driven scanner that turns a source string into a stream of
// token.Token values, tracking the syntactic context needed to disambiguate
// `/` (regexp literal vs. division) and `{` (block vs. object literal).
package lexer

import (
	"unicode"

	"github.com/vela-lang/ecma/internal/context"
	"github.com/vela-lang/ecma/pkg/token"
)

// Options configures a Lexer via the functional-options pattern
// (WithEcmaVersion, WithSourceType, WithLocations, WithOnComment) with
// ECMAScript-shaped knobs.
type Options struct {
	EcmaVersion   int    // 3, 5, 6..13, or a year form such as 2021; gates compare it numerically with edition numbers, so any year form enables every gated feature
	SourceType    string // "script" or "module"
	AllowHashBang bool
	Locations     bool // populate token.Token.Loc
	OnComment     func(block bool, text string, start, end int)
}

// Option mutates an Options value.
type Option func(*Options)

func WithEcmaVersion(v int) Option { return func(o *Options) { o.EcmaVersion = v } }
func WithSourceType(t string) Option {
	return func(o *Options) { o.SourceType = t }
}
func WithLocations(enabled bool) Option { return func(o *Options) { o.Locations = enabled } }
func WithOnComment(fn func(block bool, text string, start, end int)) Option {
	return func(o *Options) { o.OnComment = fn }
}

func defaultOptions() Options {
	return Options{EcmaVersion: 2021, SourceType: "script", AllowHashBang: true}
}

// Lexer scans a rune buffer into tokens. Positions are counted in UTF-16
// code units: runes beyond the Basic Multilingual Plane (astral code
// points, encoded as a surrogate pair in real JS source) advance the offset
// by two, matching what a JS engine's string indexing would see.
type Lexer struct {
	opts Options

	src   []rune
	idx   int // index into src of l.ch
	pos   int // current UTF-16 offset
	ch    rune
	atEnd bool

	line      int
	lineStart int // UTF-16 offset of the start of the current line

	ctx *context.Stack

	errors []*Error

	prevType   token.Type
	prevEnd    int
	sawNewline bool // a line terminator occurred since the previous token

	// containsEsc records whether the identifier/keyword just scanned used a
	// \u escape, which disqualifies it from being treated as a reserved word
	// in some grammar positions.
	containsEsc bool

	lastTemplate TemplateElement
	lastRegExp   RegExpLiteral

	// lineStarts caches UTF-16 offsets of each line's first code unit, built
	// lazily by PositionOf the first time a caller asks to resolve a
	// `locations` position.
	lineStarts []int

	// pendingOctal records legacy-octal and `\8`/`\9` string escapes, which
	// are only errors in strict-mode code. The lexer can't judge strictness
	// itself (a "use strict" directive may appear after the escape, or in
	// an enclosing function the lexer doesn't know about), so it defers:
	// the parser consumes these once it knows p.strict for the enclosing
	// scope, the same delayed-validation shape as yieldPos/awaitPos.
	pendingOctal []*Error
}

// New constructs a Lexer over src, ready to emit tokens from the start of
// input (after an optional hashbang line).
func New(src string, opts ...Option) *Lexer {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	l := &Lexer{
		opts: o,
		src:  []rune(src),
		line: 1,
		ctx:  context.NewStack(),
	}
	if len(l.src) == 0 {
		l.atEnd = true
	} else {
		l.ch = l.src[0]
	}
	if o.AllowHashBang {
		l.skipHashBang()
	}
	return l
}

// Errors returns the diagnostics accumulated so far.
func (l *Lexer) Errors() []*Error { return l.errors }

// PushContext and PopContext let the parser drive the syntactic-context
// stack for transitions the token stream alone can't reveal (entering a
// generator function body, for instance). Ordinary token-driven transitions
// are handled automatically by ctx.Update inside NextToken.
func (l *Lexer) PushContext(e context.Entry) { l.ctx.EnterFunction(e.Generator) }
func (l *Lexer) PopContext()                 { l.ctx.Update(token.RBRACE, l.prevType) }

// ExprAllowed exposes the context stack's current regexp-vs-division
// verdict, which the parser consults when it needs to force a re-lex (the
// `yield`-as-identifier-vs-keyword ambiguity, for example).
func (l *Lexer) ExprAllowed() bool     { return l.ctx.ExprAllowed() }
func (l *Lexer) SetExprAllowed(v bool) { l.ctx.SetExprAllowed(v) }

func (l *Lexer) addError(pos, length int, code, message string) {
	l.errors = append(l.errors, NewError(pos, length, code, message))
}

// recordOctalEscape defers a strict-mode-only escape diagnostic instead of
// reporting it unconditionally; see pendingOctal.
func (l *Lexer) recordOctalEscape(pos, length int, message string) {
	l.pendingOctal = append(l.pendingOctal, NewError(pos, length, ErrOctalInStrictMode, message))
}

// PendingOctalEscapeCount reports how many deferred octal-escape diagnostics
// have been recorded so far, for a caller about to enter a new lexical scope
// (function body or program) to mark as its own boundary.
func (l *Lexer) PendingOctalEscapeCount() int { return len(l.pendingOctal) }

// ConsumeOctalEscapesFrom returns every deferred octal-escape diagnostic
// recorded since mark and discards them from the pending list. Scopes are
// flushed depth-first (innermost function body finishes, and calls this,
// before its enclosing scope does), so by the time an enclosing scope reads
// from its own earlier mark, nested scopes' entries have already been
// removed and only the enclosing scope's own escapes remain.
func (l *Lexer) ConsumeOctalEscapesFrom(mark int) []*Error {
	out := append([]*Error(nil), l.pendingOctal[mark:]...)
	l.pendingOctal = l.pendingOctal[:mark]
	return out
}

func (l *Lexer) runeWidth(r rune) int {
	if r > 0xFFFF {
		return 2
	}
	return 1
}

func (l *Lexer) peekRune(n int) rune {
	i := l.idx + n
	if i < 0 || i >= len(l.src) {
		return 0
	}
	return l.src[i]
}

func (l *Lexer) advance() {
	if l.idx >= len(l.src) {
		l.atEnd = true
		l.ch = 0
		return
	}
	width := l.runeWidth(l.src[l.idx])
	if l.src[l.idx] == '\n' || (l.src[l.idx] == '\r' && l.peekRune(1) != '\n') || l.src[l.idx] == '\u2028' || l.src[l.idx] == '\u2029' {
		l.line++
		l.lineStart = l.pos + width
	}
	l.pos += width
	l.idx++
	if l.idx >= len(l.src) {
		l.atEnd = true
		l.ch = 0
		return
	}
	l.ch = l.src[l.idx]
}

func (l *Lexer) curPosition() token.Position {
	return token.Position{Line: l.line, Column: l.pos - l.lineStart, Offset: l.pos}
}

// PositionOf converts a UTF-16 offset anywhere in src into a line/column
// pair, for nodes whose Start/End the parser already resolved and now wants
// to reverse-map to locations (the `locations` option). lineStarts is built
// once, lazily, since most parses never ask for it.
func (l *Lexer) PositionOf(offset int) token.Position {
	if l.lineStarts == nil {
		l.buildLineStarts()
	}
	lo, hi := 0, len(l.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if l.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return token.Position{Line: lo + 1, Column: offset - l.lineStarts[lo], Offset: offset}
}

func (l *Lexer) buildLineStarts() {
	starts := []int{0}
	pos := 0
	for i := 0; i < len(l.src); i++ {
		r := l.src[i]
		width := l.runeWidth(r)
		isCR := r == '\r' && (i+1 >= len(l.src) || l.src[i+1] != '\n')
		if r == '\n' || isCR || r == ' ' || r == ' ' {
			starts = append(starts, pos+width)
		}
		pos += width
	}
	l.lineStarts = starts
}

func (l *Lexer) skipHashBang() {
	if l.ch == '#' && l.peekRune(1) == '!' {
		for !l.atEnd && l.ch != '\n' {
			l.advance()
		}
	}
}

func isLineTerminator(r rune) bool {
	return r == '\n' || r == '\r' || r == '\u2028' || r == '\u2029'
}

func (l *Lexer) skipSpace() {
	for !l.atEnd {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\v' || l.ch == '\f' || l.ch == 0xA0 || l.ch == 0xFEFF:
			l.advance()
		case isLineTerminator(l.ch):
			l.sawNewline = true
			l.advance()
		case l.ch > 0x7F && unicode.Is(unicode.White_Space, l.ch):
			// Non-ASCII whitespace (U+1680, U+2000-U+200A, U+202F, U+205F,
			// U+3000, ...) that isn't one of the line terminators above.
			l.advance()
		case l.ch == '/' && l.peekRune(1) == '/':
			l.skipLineComment()
		case l.ch == '/' && l.peekRune(1) == '*':
			l.skipBlockComment()
		default:
			return
		}
	}
}

func (l *Lexer) skipLineComment() {
	start := l.pos
	textStart := l.idx
	l.advance()
	l.advance()
	for !l.atEnd && !isLineTerminator(l.ch) {
		l.advance()
	}
	if l.opts.OnComment != nil {
		l.opts.OnComment(false, string(l.src[textStart:l.idx]), start, l.pos)
	}
}

func (l *Lexer) skipBlockComment() {
	start := l.pos
	textStart := l.idx
	l.advance()
	l.advance()
	for !l.atEnd {
		if l.ch == '*' && l.peekRune(1) == '/' {
			text := string(l.src[textStart:l.idx])
			l.advance()
			l.advance()
			if l.opts.OnComment != nil {
				l.opts.OnComment(true, text, start, l.pos)
			}
			return
		}
		if isLineTerminator(l.ch) {
			l.sawNewline = true
		}
		l.advance()
	}
	l.addError(start, l.pos-start, ErrUnterminatedComment, "unterminated block comment")
}

// NextToken scans and returns the next token, the tokenizer's sole public
// entry point. This lexer has no internal lookahead buffer of its own:
// buffering and backtracking are the parser cursor's job (see
// internal/parser/cursor.go).
func (l *Lexer) NextToken() token.Token {
	l.sawNewline = false
	l.skipSpace()
	start := l.pos
	startLoc := l.curPosition()
	if l.atEnd {
		tok := l.finish(token.EOF, "", start)
		return l.attachLoc(tok, startLoc)
	}
	var tok token.Token
	switch {
	case IsIdentifierStart(l.ch) || l.ch == '\\':
		tok = l.readIdentifierOrKeyword(start)
	case isDigit(l.ch):
		tok = l.readNumber(start)
	case l.ch == '.' && isDigit(l.peekRune(1)):
		tok = l.readNumber(start)
	case l.ch == '"' || l.ch == '\'':
		tok = l.readString(start)
	case l.ch == '`':
		tok = l.readTemplateStart(start)
	case l.ch == '/':
		if l.ctx.ExprAllowed() {
			tok = l.readRegExp(start)
		} else {
			tok = l.readSlashOperator(start)
		}
	default:
		tok = l.readPunctuatorOrOperator(start)
	}
	tok.NewLine = l.sawNewline
	l.ctx.Update(tok.Type, l.prevType)
	l.prevType = tok.Type
	l.prevEnd = tok.End
	return l.attachLoc(tok, startLoc)
}

func (l *Lexer) finish(typ token.Type, value string, start int) token.Token {
	return token.New(typ, value, start, l.pos)
}

// attachLoc populates tok.Loc from startLoc through the lexer's current
// position, when the caller opted into location tracking; a no-op otherwise
// so callers that only need offsets pay nothing for it.
func (l *Lexer) attachLoc(tok token.Token, startLoc token.Position) token.Token {
	if !l.opts.Locations {
		return tok
	}
	return tok.WithLoc(startLoc, l.curPosition())
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// ReLexRegExpAt is called by the parser when it determines (from grammar
// context the tokenizer alone cannot see, e.g. after `yield` in a
// generator) that a `/` it already scanned as division should instead have
// started a regexp literal. The parser rewinds to the `/`'s offset and
// calls this directly rather than relying on ctx.ExprAllowed.
func (l *Lexer) ReLexRegExpAt(offset int) token.Token {
	l.seek(offset)
	return l.readRegExp(offset)
}

// seek repositions the lexer's cursor to a prior UTF-16 offset. Used only
// for the bounded backtracking the cover grammars require (re-lexing `/` as
// regexp, or re-lexing a template continuation); it recomputes idx/line by
// rescanning from offset 0 up to offset.
func (l *Lexer) seek(offset int) {
	if offset == l.pos {
		return
	}
	// Fall back to a full rescan from the start; this is only ever invoked
	// for short backward hops during cover-grammar disambiguation, not on
	// the hot path.
	l.idx = 0
	l.pos = 0
	l.line = 1
	l.lineStart = 0
	l.atEnd = false
	if len(l.src) == 0 {
		l.ch = 0
		l.atEnd = true
		return
	}
	l.ch = l.src[0]
	for l.pos < offset && !l.atEnd {
		l.advance()
	}
}
