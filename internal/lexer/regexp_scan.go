package lexer

import (
	"strings"

	"github.com/vela-lang/ecma/pkg/token"
)

// RegExpLiteral is the raw pattern/flags pair the internal/regexp validator
// and pkg/ast both consume.
type RegExpLiteral struct {
	Pattern string
	Flags   string
}

// readRegExp scans a regexp literal body. It only performs the bracket-
// depth/escape bookkeeping needed to find the literal's extent; pattern
// grammar validation is internal/regexp's job , invoked by
// the parser once it has the raw pattern text.
func (l *Lexer) readRegExp(start int) token.Token {
	l.advance() // opening '/'
	inClass := false
	var body strings.Builder
	for {
		if l.atEnd || isLineTerminator(l.ch) {
			l.addError(start, l.pos-start, ErrUnterminatedRegExp, "unterminated regular expression literal")
			break
		}
		if l.ch == '\\' {
			body.WriteRune(l.ch)
			l.advance()
			if l.atEnd || isLineTerminator(l.ch) {
				l.addError(start, l.pos-start, ErrUnterminatedRegExp, "unterminated regular expression literal")
				break
			}
			body.WriteRune(l.ch)
			l.advance()
			continue
		}
		if l.ch == '[' {
			inClass = true
		} else if l.ch == ']' {
			inClass = false
		} else if l.ch == '/' && !inClass {
			l.advance()
			break
		}
		body.WriteRune(l.ch)
		l.advance()
	}
	pattern := body.String()
	flagsStart := l.idx
	for !l.atEnd && IsIdentifierChar(l.ch) {
		l.advance()
	}
	flags := string(l.src[flagsStart:l.idx])
	l.lastRegExp = RegExpLiteral{Pattern: pattern, Flags: flags}
	validateFlags(l, start, flags)
	return token.New(token.REGEXP, "/"+pattern+"/"+flags, start, l.pos)
}

func validateFlags(l *Lexer, start int, flags string) {
	seen := map[rune]bool{}
	for _, f := range flags {
		if !strings.ContainsRune("dgimsuvy", f) {
			l.addError(start, l.pos-start, ErrInvalidRegExpFlags, "invalid regular expression flag")
			continue
		}
		if seen[f] {
			l.addError(start, l.pos-start, ErrInvalidRegExpFlags, "duplicate regular expression flag")
		}
		seen[f] = true
	}
	if seen['u'] && seen['v'] {
		l.addError(start, l.pos-start, ErrInvalidRegExpFlags, "the 'u' and 'v' flags are mutually exclusive")
	}
}

// LastRegExp returns the most recently scanned regexp literal's raw parts.
func (l *Lexer) LastRegExp() RegExpLiteral { return l.lastRegExp }

// readSlashOperator scans `/` or `/=` as the division / division-assignment
// operator, taken when the context stack says an expression is not allowed
// to start here.
func (l *Lexer) readSlashOperator(start int) token.Token {
	l.advance()
	if l.ch == '=' {
		l.advance()
		return token.New(token.ASSIGN, "/=", start, l.pos)
	}
	return token.New(token.SLASH, "/", start, l.pos)
}
