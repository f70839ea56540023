// Package context implements the tokenizer's syntactic-context stack: the
// small state machine that tells the lexer whether a `/` starts a regexp
// literal or a division operator, and whether a `{` opens a block statement
// or an object expression. It has nothing to do with Go's context.Context;
// the name matches what it tracks.
package context

import "github.com/vela-lang/ecma/pkg/token"

// Kind identifies one entry on the context stack.
type Kind int

const (
	BStat    Kind = iota // a block, for loop/function body: `{` opens a block
	BExpr                // a block whose content is an expression (arrow body)
	BTmpl                // a braceless token context used inside template quasis
	PStat                // a paren in statement position (if/while/switch condition)
	PExpr                // a paren in expression position
	FStat                // a function keyword in statement position
	FExpr                // a function expression
	FExprGen             // a generator function expression
	FGen                 // a generator function declaration
	QTmpl                // inside a template literal (` ... ${ ... } `)
)

// Entry is one frame of the context stack.
type Entry struct {
	Kind        Kind
	IsExpr      bool // does this context's content start in expression position?
	Preserve    bool // does a `{` inside this context stay on the stack instead of popping
	Generator   bool
	ExprAllowed bool // override for exprAllowed while this frame is being entered
}

var (
	BStatEntry = Entry{Kind: BStat}
	BExprEntry = Entry{Kind: BExpr, IsExpr: true}
	BTmplEntry = Entry{Kind: BTmpl, IsExpr: true}
	PStatEntry = Entry{Kind: PStat}
	PExprEntry = Entry{Kind: PExpr, IsExpr: true}
	FStatEntry = Entry{Kind: FStat}
	FExprEntry = Entry{Kind: FExpr, IsExpr: true}
	FGenEntry  = Entry{Kind: FGen, Generator: true}
	QTmplEntry = Entry{Kind: QTmpl, IsExpr: true, Preserve: true}
)

func fExprGenEntry() Entry { return Entry{Kind: FExprGen, IsExpr: true, Generator: true} }

// Stack tracks nested syntactic contexts during tokenization, the way
// internal/parser/context.go's ParseContext tracks nested block contexts,
// generalized here to drive the lexer's exprAllowed/regexp-vs-division
// decision instead of diagnostic nesting depth.
type Stack struct {
	frames      []Entry
	exprAllowed bool
}

// NewStack returns a Stack primed for the start of a program: statement
// position, expression allowed (a leading `/` is a regexp).
func NewStack() *Stack {
	return &Stack{frames: []Entry{BStatEntry}, exprAllowed: true}
}

// Current returns the innermost context frame.
func (s *Stack) Current() Entry {
	return s.frames[len(s.frames)-1]
}

// ExprAllowed reports whether an expression (as opposed to a statement or
// operator) is allowed at the current position — the value that
// disambiguates `/` and decides whether `{` starts a block or an object.
func (s *Stack) ExprAllowed() bool { return s.exprAllowed }

// SetExprAllowed overrides the computed default, used by the parser when it
// has more context than the token stream alone provides (e.g. after `yield`,
// or when re-lexing a regexp-context slash).
func (s *Stack) SetExprAllowed(v bool) { s.exprAllowed = v }

func (s *Stack) push(e Entry) { s.frames = append(s.frames, e) }

func (s *Stack) pop() Entry {
	n := len(s.frames)
	top := s.frames[n-1]
	s.frames = s.frames[:n-1]
	return top
}

// Depth reports the number of open frames, mainly for diagnostics/tests.
func (s *Stack) Depth() int { return len(s.frames) }

// Snapshot/Restore let the parser back out of a speculative parse (arrow vs.
// parenthesized expression) without re-deriving context state.
type Snapshot struct {
	frames      []Entry
	exprAllowed bool
}

func (s *Stack) Snapshot() Snapshot {
	frames := make([]Entry, len(s.frames))
	copy(frames, s.frames)
	return Snapshot{frames: frames, exprAllowed: s.exprAllowed}
}

func (s *Stack) Restore(snap Snapshot) {
	s.frames = snap.frames
	s.exprAllowed = snap.exprAllowed
}

// updaters dispatches by the type of the token just consumed, mirroring the
// acorn-style updateContext table keyed by token type. Each entry updates
// the stack and returns the next exprAllowed value.
type updater func(s *Stack, prevType token.Type) bool

var updaters map[token.Type]updater

func init() {
	updaters = map[token.Type]updater{
		token.LPAREN: func(s *Stack, prev token.Type) bool {
			statementKeyword := prev == token.IF || prev == token.FOR || prev == token.WITH || prev == token.WHILE
			if statementKeyword {
				s.push(PStatEntry)
			} else {
				s.push(PExprEntry)
			}
			return true
		},
		token.RPAREN: func(s *Stack, _ token.Type) bool {
			if len(s.frames) == 1 {
				return true
			}
			out := s.pop()
			if out.Kind == PStat {
				cur := s.Current()
				return cur.Kind != FStat
			}
			return !out.IsExpr
		},
		token.LBRACE: func(s *Stack, _ token.Type) bool {
			s.push(braceEntry(s))
			return true
		},
		token.RBRACE: func(s *Stack, _ token.Type) bool {
			if len(s.frames) == 1 {
				return true
			}
			out := s.pop()
			return !out.IsExpr
		},
		token.DOLLAR_LBRACE: func(s *Stack, _ token.Type) bool {
			s.push(BTmplEntry)
			return true
		},
		token.FUNCTION: func(s *Stack, prev token.Type) bool {
			if canBeExprStart(prev) {
				s.push(FExprEntry)
			}
			return false
		},
		token.BACKTICK: func(s *Stack, _ token.Type) bool {
			if s.Current().Kind == QTmpl {
				s.pop()
			} else {
				s.push(QTmplEntry)
			}
			return false
		},
		token.INC_DEC: func(s *Stack, _ token.Type) bool {
			return s.exprAllowed
		},
	}
}

func braceEntry(s *Stack) Entry {
	cur := s.Current()
	if cur.Kind == FExpr || cur.Kind == FStat {
		return BExprEntry
	}
	return BStatEntry
}

// canBeExprStart approximates acorn's tokIsLoop/beforeExpr test for whether
// a `function` keyword sits in expression position (e.g. after `(`, `,`, an
// operator) rather than statement position.
func canBeExprStart(prev token.Type) bool {
	return token.BeforeExpr(prev) || prev == token.EOF
}

// Update advances the context stack after the lexer has produced a token of
// type cur, given the previously emitted token's type prevType. It returns
// the exprAllowed value that governs interpretation of the NEXT token
// (chiefly regexp-vs-division for `/`, and block-vs-object for `{`).
func (s *Stack) Update(cur, prevType token.Type) bool {
	if fn, ok := updaters[cur]; ok {
		s.exprAllowed = fn(s, prevType)
		return s.exprAllowed
	}
	if cur.IsKeyword() && token.BeforeExpr(prevType) {
		s.exprAllowed = true
	} else {
		s.exprAllowed = token.BeforeExpr(cur)
	}
	return s.exprAllowed
}

// EnterFunction pushes a function-expression-generator frame when the
// parser determines (from syntax the token stream alone can't reveal) that
// it just started parsing a generator function expression body.
func (s *Stack) EnterFunction(generator bool) {
	if generator {
		s.push(fExprGenEntry())
	} else {
		s.push(FExprEntry)
	}
}
