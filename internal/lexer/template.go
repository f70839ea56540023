package lexer

import (
	"strings"

	"github.com/vela-lang/ecma/pkg/token"
)

// TemplateElement is the cooked+raw pair the parser needs for each quasi.
type TemplateElement struct {
	Cooked string
	Raw    string
	// CookedValid is false when the quasi contained an escape error; the
	// cooked value is then meaningless and only Raw should be used. Such a
	// quasi is accepted in a tagged template and reported as an error by the
	// parser in an untagged one.
	CookedValid bool
	// Tail is true when this quasi ended at the closing backtick rather
	// than a `${`.
	Tail bool
}

// readTemplateStart scans the opening backtick and the chunk up to either
// the closing backtick or a `${`. The parser drives continuation scanning
// itself (ReadTemplateContinuation) after it finishes the interpolated
// expression, because only the parser knows when the matching `}` for the
// substitution has been reached.
func (l *Lexer) readTemplateStart(start int) token.Token {
	l.advance() // backtick
	return l.scanTemplateChunk(start)
}

// ReadTemplateContinuation resumes scanning a template literal right after
// the parser consumed the `}` that closed a `${...}` substitution.
func (l *Lexer) ReadTemplateContinuation(start int) token.Token {
	return l.scanTemplateChunk(start)
}

func (l *Lexer) scanTemplateChunk(start int) token.Token {
	var raw strings.Builder
	var cooked strings.Builder
	valid := true
	for {
		if l.atEnd {
			l.addError(start, l.pos-start, ErrUnterminatedTemplate, "unterminated template literal")
			return l.finishTemplate(start, cooked.String(), raw.String(), valid, true, token.TEMPLATE)
		}
		if l.ch == '`' {
			l.advance()
			return l.finishTemplate(start, cooked.String(), raw.String(), valid, true, token.TEMPLATE)
		}
		if l.ch == '$' && l.peekRune(1) == '{' {
			l.advance()
			l.advance()
			return l.finishTemplate(start, cooked.String(), raw.String(), valid, false, token.TEMPLATE)
		}
		if l.ch == '\\' {
			rawStart := l.idx
			r, ok := l.readEscapeSequenceLenient()
			raw.WriteString(string(l.src[rawStart:l.idx]))
			if ok {
				cooked.WriteRune(r)
			} else if rawStart+1 >= l.idx || !isLineTerminator(l.src[rawStart+1]) {
				// (0, false) with a line terminator after the `\` is a line
				// continuation, which is valid and adds nothing to cooked.
				valid = false
			}
			continue
		}
		if l.ch == '\r' {
			raw.WriteByte('\n')
			cooked.WriteByte('\n')
			l.advance()
			if l.ch == '\n' {
				l.advance()
			}
			continue
		}
		raw.WriteRune(l.ch)
		cooked.WriteRune(l.ch)
		l.advance()
	}
}

// finishTemplate builds the TEMPLATE token; the parser attaches the
// TemplateElement (via LastTemplateElement) to the ast.TemplateElement node
// it is constructing.
func (l *Lexer) finishTemplate(start int, cooked, raw string, valid, tail bool, typ token.Type) token.Token {
	l.lastTemplate = TemplateElement{Cooked: cooked, Raw: raw, CookedValid: valid, Tail: tail}
	if !valid {
		typ = token.INVALID_TEMPLATE
	}
	return token.New(typ, cooked, start, l.pos)
}

// LastTemplateElement returns the cooked/raw pair for the most recently
// scanned template chunk.
func (l *Lexer) LastTemplateElement() TemplateElement { return l.lastTemplate }

// readEscapeSequenceLenient behaves like readEscapeSequence but never
// appends to the diagnostic list: invalid escapes inside a template are
// only a hard error when the template is untagged ; the parser re-raises the error itself once it knows
// whether a tag expression preceded the template.
func (l *Lexer) readEscapeSequenceLenient() (rune, bool) {
	mark := len(l.errors)
	r, ok := l.readEscapeSequence()
	if len(l.errors) > mark {
		l.errors = l.errors[:mark]
		return r, false
	}
	return r, ok
}
