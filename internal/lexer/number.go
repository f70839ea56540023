package lexer

import "github.com/vela-lang/ecma/pkg/token"

// readNumber scans every numeric literal variant the grammar admits:
// decimal (with optional exponent), hex/octal/binary radix-prefixed
// integers, legacy (non-prefixed) octal, numeric separators (`1_000`), and
// a trailing BigInt `n` suffix.
func (l *Lexer) readNumber(start int) token.Token {
	if l.ch == '0' {
		switch l.peekRune(1) {
		case 'x', 'X':
			return l.readRadixNumber(start, 16, isHexDigit)
		case 'o', 'O':
			return l.readRadixNumber(start, 8, isOctalDigit)
		case 'b', 'B':
			return l.readRadixNumber(start, 2, isBinaryDigit)
		}
		if isDigit(l.peekRune(1)) {
			return l.readLegacyOctal(start)
		}
	}
	return l.readDecimalNumber(start)
}

func isOctalDigit(r rune) bool  { return r >= '0' && r <= '7' }
func isBinaryDigit(r rune) bool { return r == '0' || r == '1' }

// checkSeparator validates one `_` numeric separator at the lexer's current
// position: separators are a grammar addition gated on ecmaVersion >= 12,
// and even once allowed may not open or close a digit run, nor sit next to
// another separator.
func (l *Lexer) checkSeparator(sawDigit, lastWasSep bool) {
	if l.opts.EcmaVersion < 12 {
		l.addError(l.pos, 1, ErrInvalidNumber, "numeric separators require ecmaVersion >= 12")
		return
	}
	if !sawDigit || lastWasSep {
		l.addError(l.pos, 1, ErrInvalidNumber, "numeric separator misplaced")
	}
}

func (l *Lexer) readRadixNumber(start int, radix int, digit func(rune) bool) token.Token {
	l.advance() // '0'
	l.advance() // x/o/b
	sawDigit := false
	lastWasSep := false
	for !l.atEnd {
		if l.ch == '_' {
			l.checkSeparator(sawDigit, lastWasSep)
			lastWasSep = true
			l.advance()
			continue
		}
		if !digit(l.ch) {
			break
		}
		sawDigit = true
		lastWasSep = false
		l.advance()
	}
	if !sawDigit {
		l.addError(start, l.pos-start, ErrInvalidNumber, "missing digits after radix prefix")
	}
	if lastWasSep {
		l.addError(l.pos-1, 1, ErrInvalidNumber, "numeric separator misplaced")
	}
	l.consumeBigIntSuffix()
	l.rejectTrailingIdentChar(start)
	return token.New(token.NUM, string(l.src[sliceStart(l, start):l.idx]), start, l.pos)
}

func (l *Lexer) readLegacyOctal(start int) token.Token {
	allOctal := true
	for !l.atEnd && isDigit(l.ch) {
		if !isOctalDigit(l.ch) {
			allOctal = false
		}
		l.advance()
	}
	if l.ch == '.' || l.ch == 'e' || l.ch == 'E' {
		// not actually octal: a leading-zero decimal like 09.5 or 08e1
		return l.readDecimalTail(start)
	}
	if !allOctal {
		l.addError(start, l.pos-start, ErrInvalidNumber, "invalid digit in octal literal")
	}
	l.rejectTrailingIdentChar(start)
	return token.New(token.NUM, string(l.src[sliceStart(l, start):l.idx]), start, l.pos)
}

func (l *Lexer) readDecimalNumber(start int) token.Token {
	l.readDecimalDigits()
	return l.readDecimalTail(start)
}

func (l *Lexer) readDecimalTail(start int) token.Token {
	if l.ch == '.' {
		l.advance()
		l.readDecimalDigits()
	}
	if l.ch == 'e' || l.ch == 'E' {
		l.advance()
		if l.ch == '+' || l.ch == '-' {
			l.advance()
		}
		sawExpDigit := false
		for !l.atEnd && isDigit(l.ch) {
			sawExpDigit = true
			l.advance()
		}
		if !sawExpDigit {
			l.addError(start, l.pos-start, ErrInvalidNumber, "missing exponent digits")
		}
	} else {
		l.consumeBigIntSuffix()
	}
	l.rejectTrailingIdentChar(start)
	return token.New(token.NUM, string(l.src[sliceStart(l, start):l.idx]), start, l.pos)
}

// readDecimalDigits consumes a run of digits and `_` numeric separators,
// applying the same adjacency rules as readRadixNumber: a separator may not
// be the first or last character of the run, and two separators may never
// sit next to each other.
func (l *Lexer) readDecimalDigits() {
	sawDigit := false
	lastWasSep := false
	for !l.atEnd {
		if l.ch == '_' {
			l.checkSeparator(sawDigit, lastWasSep)
			lastWasSep = true
			l.advance()
			continue
		}
		if !isDigit(l.ch) {
			break
		}
		sawDigit = true
		lastWasSep = false
		l.advance()
	}
	if lastWasSep {
		l.addError(l.pos-1, 1, ErrInvalidNumber, "numeric separator misplaced")
	}
}

func (l *Lexer) consumeBigIntSuffix() {
	if l.ch == 'n' {
		l.advance()
	}
}

// rejectTrailingIdentChar flags `3in` / `0x1fz`-shaped literals:
// a numeric literal may never be immediately followed by an identifier
// character or another digit.
func (l *Lexer) rejectTrailingIdentChar(start int) {
	if !l.atEnd && (IsIdentifierStart(l.ch) || isDigit(l.ch)) {
		l.addError(l.pos, 1, ErrInvalidNumber, "identifier directly after number")
	}
}

// sliceStart converts a UTF-16 start offset back to a rune-slice index by
// stepping back from the current (idx, pos) pair. The result is exact when
// no astral code point lies between utf16Offset and pos, which holds for
// every numeric literal (no digit or punctuation used here lies outside the
// BMP); the helper exists so the mapping is explicit at each call site
// instead of assumed.
func sliceStart(l *Lexer, utf16Offset int) int {
	return l.idx - (l.pos - utf16Offset)
}
