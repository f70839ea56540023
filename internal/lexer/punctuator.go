package lexer

import "github.com/vela-lang/ecma/pkg/token"

// tokenHandler scans one punctuator/operator starting at the current
// character and returns the resulting token. Each handler (handlePlus,
// handleMinus, ...) resolves the multi-character variants of its
// punctuator against the ECMAScript operator set.
type tokenHandler func(l *Lexer, start int) token.Token

var tokenHandlers map[rune]tokenHandler

func init() {
	tokenHandlers = map[rune]tokenHandler{
		'(': simple(token.LPAREN, "("),
		')': simple(token.RPAREN, ")"),
		'{': simple(token.LBRACE, "{"),
		'}': simple(token.RBRACE, "}"),
		'[': simple(token.LBRACK, "["),
		']': simple(token.RBRACK, "]"),
		';': simple(token.SEMI, ";"),
		',': simple(token.COMMA, ","),
		':': simple(token.COLON, ":"),
		'~': simple(token.PREFIX, "~"),

		'.': (*Lexer).handleDot,
		'?': (*Lexer).handleQuestion,
		'=': (*Lexer).handleEquals,
		'!': (*Lexer).handleBang,
		'<': (*Lexer).handleLess,
		'>': (*Lexer).handleGreater,
		'+': (*Lexer).handlePlus,
		'-': (*Lexer).handleMinus,
		'*': (*Lexer).handleStar,
		'%': (*Lexer).handlePercent,
		'&': (*Lexer).handleAmp,
		'|': (*Lexer).handlePipe,
		'^': (*Lexer).handleCaret,
	}
}

func simple(typ token.Type, lit string) tokenHandler {
	return func(l *Lexer, start int) token.Token {
		l.advance()
		return token.New(typ, lit, start, l.pos)
	}
}

func (l *Lexer) readPunctuatorOrOperator(start int) token.Token {
	if h, ok := tokenHandlers[l.ch]; ok {
		return h(l, start)
	}
	bad := l.ch
	l.advance()
	l.addError(start, l.pos-start, ErrUnexpectedChar, "unexpected character")
	return token.New(token.ILLEGAL, string(bad), start, l.pos)
}

func (l *Lexer) handleDot(start int) token.Token {
	if l.peekRune(1) == '.' && l.peekRune(2) == '.' {
		l.advance()
		l.advance()
		l.advance()
		return token.New(token.ELLIPSIS, "...", start, l.pos)
	}
	l.advance()
	return token.New(token.DOT, ".", start, l.pos)
}

func (l *Lexer) handleQuestion(start int) token.Token {
	l.advance()
	if l.ch == '.' && !isDigit(l.peekRune(1)) {
		l.advance()
		return token.New(token.Q_DOT, "?.", start, l.pos)
	}
	if l.ch == '?' {
		l.advance()
		if l.ch == '=' {
			l.advance()
			return token.New(token.NULLISH_ASSIGN, "??=", start, l.pos)
		}
		return token.New(token.NULLISH, "??", start, l.pos)
	}
	return token.New(token.QUESTION, "?", start, l.pos)
}

func (l *Lexer) handleEquals(start int) token.Token {
	l.advance()
	switch {
	case l.ch == '=' && l.peekRune(1) == '=':
		l.advance()
		l.advance()
		return token.New(token.EQUALITY, "===", start, l.pos)
	case l.ch == '=':
		l.advance()
		return token.New(token.EQUALITY, "==", start, l.pos)
	case l.ch == '>':
		l.advance()
		return token.New(token.ARROW, "=>", start, l.pos)
	}
	return token.New(token.EQ, "=", start, l.pos)
}

func (l *Lexer) handleBang(start int) token.Token {
	l.advance()
	if l.ch == '=' && l.peekRune(1) == '=' {
		l.advance()
		l.advance()
		return token.New(token.EQUALITY, "!==", start, l.pos)
	}
	if l.ch == '=' {
		l.advance()
		return token.New(token.EQUALITY, "!=", start, l.pos)
	}
	return token.New(token.PREFIX, "!", start, l.pos)
}

func (l *Lexer) handleLess(start int) token.Token {
	l.advance()
	if l.ch == '<' {
		l.advance()
		if l.ch == '=' {
			l.advance()
			return token.New(token.ASSIGN, "<<=", start, l.pos)
		}
		return token.New(token.BIT_SHIFT, "<<", start, l.pos)
	}
	if l.ch == '=' {
		l.advance()
		return token.New(token.RELATIONAL, "<=", start, l.pos)
	}
	return token.New(token.RELATIONAL, "<", start, l.pos)
}

func (l *Lexer) handleGreater(start int) token.Token {
	l.advance()
	if l.ch == '>' {
		l.advance()
		if l.ch == '>' {
			l.advance()
			if l.ch == '=' {
				l.advance()
				return token.New(token.ASSIGN, ">>>=", start, l.pos)
			}
			return token.New(token.BIT_SHIFT, ">>>", start, l.pos)
		}
		if l.ch == '=' {
			l.advance()
			return token.New(token.ASSIGN, ">>=", start, l.pos)
		}
		return token.New(token.BIT_SHIFT, ">>", start, l.pos)
	}
	if l.ch == '=' {
		l.advance()
		return token.New(token.RELATIONAL, ">=", start, l.pos)
	}
	return token.New(token.RELATIONAL, ">", start, l.pos)
}

func (l *Lexer) handlePlus(start int) token.Token {
	l.advance()
	if l.ch == '+' {
		l.advance()
		return token.New(token.INC_DEC, "++", start, l.pos)
	}
	if l.ch == '=' {
		l.advance()
		return token.New(token.ASSIGN, "+=", start, l.pos)
	}
	return token.New(token.PLUS_MIN, "+", start, l.pos)
}

func (l *Lexer) handleMinus(start int) token.Token {
	l.advance()
	if l.ch == '-' {
		l.advance()
		return token.New(token.INC_DEC, "--", start, l.pos)
	}
	if l.ch == '=' {
		l.advance()
		return token.New(token.ASSIGN, "-=", start, l.pos)
	}
	return token.New(token.PLUS_MIN, "-", start, l.pos)
}

func (l *Lexer) handleStar(start int) token.Token {
	l.advance()
	if l.ch == '*' {
		l.advance()
		if l.ch == '=' {
			l.advance()
			return token.New(token.ASSIGN, "**=", start, l.pos)
		}
		return token.New(token.STAR_STAR, "**", start, l.pos)
	}
	if l.ch == '=' {
		l.advance()
		return token.New(token.ASSIGN, "*=", start, l.pos)
	}
	return token.New(token.STAR, "*", start, l.pos)
}

func (l *Lexer) handlePercent(start int) token.Token {
	l.advance()
	if l.ch == '=' {
		l.advance()
		return token.New(token.ASSIGN, "%=", start, l.pos)
	}
	return token.New(token.MOD_OP, "%", start, l.pos)
}

func (l *Lexer) handleAmp(start int) token.Token {
	l.advance()
	if l.ch == '&' {
		l.advance()
		if l.ch == '=' {
			l.advance()
			return token.New(token.LOGICAL_AND_ASSIGN, "&&=", start, l.pos)
		}
		return token.New(token.LOGICAL_AND, "&&", start, l.pos)
	}
	if l.ch == '=' {
		l.advance()
		return token.New(token.BIT_AND_ASSIGN, "&=", start, l.pos)
	}
	return token.New(token.BIT_AND, "&", start, l.pos)
}

func (l *Lexer) handlePipe(start int) token.Token {
	l.advance()
	if l.ch == '|' {
		l.advance()
		if l.ch == '=' {
			l.advance()
			return token.New(token.LOGICAL_OR_ASSIGN, "||=", start, l.pos)
		}
		return token.New(token.LOGICAL_OR, "||", start, l.pos)
	}
	if l.ch == '=' {
		l.advance()
		return token.New(token.BIT_OR_ASSIGN, "|=", start, l.pos)
	}
	return token.New(token.BIT_OR, "|", start, l.pos)
}

func (l *Lexer) handleCaret(start int) token.Token {
	l.advance()
	if l.ch == '=' {
		l.advance()
		return token.New(token.BIT_XOR_ASSIGN, "^=", start, l.pos)
	}
	return token.New(token.BIT_XOR, "^", start, l.pos)
}
