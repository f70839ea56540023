package lexer

import (
	"strings"

	"github.com/vela-lang/ecma/pkg/token"
)

// readString scans a single- or double-quoted string literal, decoding
// escape sequences into the token's cooked Value. Legacy octal escapes
// (`\07`) and the bare `\8`/`\9` forms are accepted here, but whether either
// is actually an error depends on strict-mode status this mini-parser has
// no way to know yet (a "use strict" directive may still be ahead, or may
// belong to an enclosing function). Their positions are recorded via
// recordOctalEscape and turned into diagnostics only once the parser knows
// p.strict for the enclosing scope.
func (l *Lexer) readString(start int) token.Token {
	quote := l.ch
	l.advance()
	var sb strings.Builder
	for {
		if l.atEnd {
			l.addError(start, l.pos-start, ErrUnterminatedString, "unterminated string literal")
			break
		}
		if l.ch == quote {
			l.advance()
			break
		}
		if isLineTerminator(l.ch) && l.ch != ' ' && l.ch != ' ' {
			l.addError(start, l.pos-start, ErrUnterminatedString, "unterminated string literal")
			break
		}
		if l.ch == '\\' {
			r, ok := l.readEscapeSequence()
			if ok {
				sb.WriteRune(r)
			}
			continue
		}
		sb.WriteRune(l.ch)
		l.advance()
	}
	return token.New(token.STRING, sb.String(), start, l.pos)
}

// readEscapeSequence consumes one backslash escape (cursor positioned at
// the `\`) and returns its decoded rune. A return of (0, false) means the
// escape contributes nothing to the cooked value: it was a line
// continuation, an invalid `\x`/`\u` escape (an error has been recorded),
// or a backslash at end of input.
func (l *Lexer) readEscapeSequence() (rune, bool) {
	escStart := l.pos
	l.advance() // backslash
	if l.atEnd {
		return 0, false
	}
	switch l.ch {
	case 'n':
		l.advance()
		return '\n', true
	case 'r':
		l.advance()
		return '\r', true
	case 't':
		l.advance()
		return '\t', true
	case 'b':
		l.advance()
		return '\b', true
	case 'f':
		l.advance()
		return '\f', true
	case 'v':
		l.advance()
		return '\v', true
	case '0':
		if !isDigit(l.peekRune(1)) {
			l.advance()
			return 0, true
		}
		return l.readLegacyOctalEscape(escStart)
	case '1', '2', '3', '4', '5', '6', '7':
		return l.readLegacyOctalEscape(escStart)
	case '8', '9':
		r := l.ch
		l.recordOctalEscape(escStart, 2, "'\\8' and '\\9' are forbidden in strict mode")
		l.advance()
		return r, true
	case 'x':
		l.advance()
		r, ok := l.readFixedHex(2)
		if !ok {
			l.addError(escStart, l.pos-escStart, ErrInvalidEscape, "invalid hex escape")
			return 0, false
		}
		return r, true
	case 'u':
		l.advance()
		r, ok := l.readCodePointEscape()
		if !ok {
			l.addError(escStart, l.pos-escStart, ErrInvalidUnicodeEscape, "invalid unicode escape")
			return 0, false
		}
		return r, true
	case '\r':
		l.advance()
		if l.ch == '\n' {
			l.advance()
		}
		return 0, false
	case '\n', ' ', ' ':
		l.advance()
		return 0, false
	default:
		r := l.ch
		l.advance()
		return r, true
	}
}

func (l *Lexer) readLegacyOctalEscape(escStart int) (rune, bool) {
	l.recordOctalEscape(escStart, 2, "octal escape sequences are forbidden in strict mode")
	val := 0
	for i := 0; i < 3 && isOctalDigit(l.ch); i++ {
		val = val*8 + int(l.ch-'0')
		l.advance()
		if val > 0o37 && i == 1 {
			break
		}
	}
	return rune(val), true
}

func (l *Lexer) readFixedHex(n int) (rune, bool) {
	val := 0
	for i := 0; i < n; i++ {
		if l.atEnd || !isHexDigit(l.ch) {
			return 0, false
		}
		val = val*16 + hexValue(l.ch)
		l.advance()
	}
	return rune(val), true
}

func hexValue(r rune) int {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0')
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10
	default:
		return int(r-'A') + 10
	}
}
