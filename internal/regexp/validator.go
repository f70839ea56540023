// Package regexp implements a structural validator for regular expression
// pattern text : it walks the Annex B / Unicode-mode grammar
// (Disjunction/Alternative/Term/Assertion/Quantifier/Atom/CharacterClass)
// without building a matching engine, reporting every way the pattern text
// could fail to parse as a RegExp literal's body.
package regexp

import (
	"strconv"
	"strings"
)

// Flags is the parsed flag set of a regexp literal.
type Flags struct {
	Global, IgnoreCase, Multiline, DotAll, Unicode, Sticky, HasIndices, UnicodeSets bool
}

// ParseFlags decodes a flag string; the lexer already rejects unknown or
// duplicate letters, so this just sets the booleans.
func ParseFlags(s string) Flags {
	var f Flags
	for _, c := range s {
		switch c {
		case 'g':
			f.Global = true
		case 'i':
			f.IgnoreCase = true
		case 'm':
			f.Multiline = true
		case 's':
			f.DotAll = true
		case 'u':
			f.Unicode = true
		case 'y':
			f.Sticky = true
		case 'd':
			f.HasIndices = true
		case 'v':
			f.UnicodeSets = true
		}
	}
	return f
}

// Error is a single pattern-validation diagnostic. Offset is its position
// within the pattern text; the parser reports every such error at the
// regexp literal's own start offset.
type Error struct {
	Message string
	Offset  int // offset within the pattern text, 0-based
}

// validator walks pattern with a single cursor, in the style of a
// recursive-descent parser over the (small, non-recursive-heavy) regexp
// grammar; it records errors rather than stopping at the first one, so a
// caller sees every problem in one pass when possible.
type validator struct {
	src         []rune
	pos         int
	flags       Flags
	ecmaVersion int
	errors      []Error
	groupNames  map[string]bool
	groupCount  int
}

// Validate parses pattern under flags and returns every structural error
// found. An empty slice means the pattern is well-formed. ecmaVersion gates
// grammar additions introduced after ES3 that aren't expressible as a flag,
// such as `\p{...}`/`\P{...}` Unicode property escapes (ecmaVersion >= 9).
func Validate(pattern string, flags Flags, ecmaVersion int) []Error {
	v := &validator{src: []rune(pattern), flags: flags, ecmaVersion: ecmaVersion, groupNames: map[string]bool{}}
	v.countGroups()
	v.disjunction()
	if v.pos != len(v.src) {
		v.err("unexpected character")
	}
	return v.errors
}

func (v *validator) err(msg string) {
	v.errors = append(v.errors, Error{Message: msg, Offset: v.pos})
}

func (v *validator) eof() bool { return v.pos >= len(v.src) }
func (v *validator) peek() rune {
	if v.eof() {
		return 0
	}
	return v.src[v.pos]
}
func (v *validator) peekAt(n int) rune {
	if v.pos+n >= len(v.src) {
		return 0
	}
	return v.src[v.pos+n]
}
func (v *validator) advance() rune {
	r := v.src[v.pos]
	v.pos++
	return r
}
func (v *validator) eat(r rune) bool {
	if v.peek() == r {
		v.pos++
		return true
	}
	return false
}

// countGroups does a cheap pre-pass to count capturing groups, needed so a
// `\1` backreference inside a disjunction that textually precedes the
// group it refers to (forward reference) is still accepted, per the
// grammar's "NcapturingParens" forward-declared count.
func (v *validator) countGroups() {
	depth := 0
	for i := 0; i < len(v.src); i++ {
		switch v.src[i] {
		case '\\':
			i++
		case '[':
			for i++; i < len(v.src) && v.src[i] != ']'; i++ {
				if v.src[i] == '\\' {
					i++
				}
			}
		case '(':
			if i+2 < len(v.src) && v.src[i+1] == '?' && (v.src[i+2] == ':' || v.src[i+2] == '=' || v.src[i+2] == '!') {
				continue
			}
			if i+2 < len(v.src) && v.src[i+1] == '?' && v.src[i+2] == '<' && i+3 < len(v.src) && v.src[i+3] != '=' && v.src[i+3] != '!' {
				depth++
				continue
			}
			if i+1 < len(v.src) && v.src[i+1] == '?' {
				continue
			}
			depth++
		}
	}
	v.groupCount = depth
}

// disjunction := Alternative ( '|' Alternative )*
func (v *validator) disjunction() {
	v.alternative()
	for v.eat('|') {
		v.alternative()
	}
}

// alternative := Term*
func (v *validator) alternative() {
	for !v.eof() && v.peek() != '|' && v.peek() != ')' {
		before := v.pos
		v.term()
		if v.pos == before {
			// defensive: never loop forever on an unrecognized character
			v.err("unexpected character in pattern")
			v.advance()
		}
	}
}

// term := Assertion | Atom Quantifier?
func (v *validator) term() {
	if v.assertion() {
		return
	}
	v.atom()
	v.quantifier()
}

func (v *validator) assertion() bool {
	switch v.peek() {
	case '^', '$':
		v.advance()
		return true
	}
	if v.peek() == '\\' && (v.peekAt(1) == 'b' || v.peekAt(1) == 'B') {
		v.advance()
		v.advance()
		return true
	}
	if v.peek() == '(' && v.peekAt(1) == '?' {
		switch v.peekAt(2) {
		case '=', '!':
			v.advance()
			v.advance()
			v.advance()
			v.disjunction()
			if !v.eat(')') {
				v.err("unterminated group")
			}
			return true
		case '<':
			if v.peekAt(3) == '=' || v.peekAt(3) == '!' {
				v.advance()
				v.advance()
				v.advance()
				v.advance()
				v.disjunction()
				if !v.eat(')') {
					v.err("unterminated group")
				}
				return true
			}
		}
	}
	return false
}

func (v *validator) quantifier() {
	switch v.peek() {
	case '*', '+', '?':
		v.advance()
		v.eat('?')
		return
	case '{':
		save := v.pos
		v.advance()
		minStr := v.digits()
		hasMin := minStr != ""
		var maxStr string
		hasComma := v.eat(',')
		if hasComma {
			maxStr = v.digits()
		}
		if hasMin && v.eat('}') {
			if hasComma && maxStr != "" {
				minV, _ := strconv.Atoi(minStr)
				maxV, _ := strconv.Atoi(maxStr)
				if maxV < minV {
					v.err("numbers out of order in quantifier")
				}
			}
			v.eat('?')
			return
		}
		// not a valid quantifier braces form: treat `{` as a literal, as
		// Annex B allows, by rewinding
		v.pos = save
	}
}

func (v *validator) digits() string {
	start := v.pos
	for !v.eof() && v.peek() >= '0' && v.peek() <= '9' {
		v.advance()
	}
	return string(v.src[start:v.pos])
}

func (v *validator) atom() {
	switch {
	case v.peek() == '.':
		v.advance()
	case v.peek() == '\\':
		v.advance()
		v.atomEscape()
	case v.peek() == '[':
		v.characterClass()
	case v.peek() == '(':
		v.group()
	case v.peek() == ')' || v.peek() == '|':
		// handled by caller
	case v.peek() == '*' || v.peek() == '+' || v.peek() == '?':
		v.err("nothing to repeat")
		v.advance()
	default:
		v.advance()
	}
}

func (v *validator) group() {
	v.advance() // '('
	if v.eat('?') {
		switch v.peek() {
		case ':':
			v.advance()
		case '<':
			v.advance()
			if v.peek() == '=' || v.peek() == '!' {
				v.advance()
			} else {
				v.namedGroup()
			}
		case '=', '!':
			v.advance()
		default:
			v.err("invalid group")
		}
	}
	v.disjunction()
	if !v.eat(')') {
		v.err("unterminated group")
	}
}

func (v *validator) namedGroup() {
	start := v.pos
	for !v.eof() && v.peek() != '>' {
		v.advance()
	}
	name := string(v.src[start:v.pos])
	if !v.eat('>') {
		v.err("unterminated named group")
		return
	}
	if name == "" {
		v.err("empty group name")
		return
	}
	if v.groupNames[name] {
		v.err("duplicate named capturing group '" + name + "'")
		return
	}
	v.groupNames[name] = true
}

func (v *validator) atomEscape() {
	if v.eof() {
		v.err("trailing backslash")
		return
	}
	c := v.advance()
	switch c {
	case 'd', 'D', 's', 'S', 'w', 'W', 'b', 'B', 'n', 'r', 't', 'v', 'f', '0':
		return
	case 'p', 'P':
		if v.flags.Unicode || v.flags.UnicodeSets {
			v.unicodePropertyEscape()
			return
		}
		return
	case 'k':
		if v.peek() == '<' {
			v.advance()
			start := v.pos
			for !v.eof() && v.peek() != '>' {
				v.advance()
			}
			name := string(v.src[start:v.pos])
			v.eat('>')
			if !v.groupNames[name] && !strings.Contains(string(v.src), "(?<"+name+">") {
				v.err("reference to non-existent named group '" + name + "'")
			}
		}
		return
	case 'u':
		v.unicodeEscape()
		return
	case 'x':
		if !v.hexDigits(2) {
			v.err("invalid hex escape")
		}
		return
	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		n := string(c)
		for !v.eof() && v.peek() >= '0' && v.peek() <= '9' {
			n += string(v.advance())
		}
		num, _ := strconv.Atoi(n)
		if num > v.groupCount && (v.flags.Unicode || v.flags.UnicodeSets) {
			v.err("invalid backreference")
		}
		return
	default:
		return
	}
}

func (v *validator) unicodePropertyEscape() {
	if v.ecmaVersion < 9 {
		v.err("unicode property escapes require ecmaVersion >= 9")
	}
	if !v.eat('{') {
		v.err("invalid unicode property escape")
		return
	}
	start := v.pos
	for !v.eof() && v.peek() != '}' {
		v.advance()
	}
	body := string(v.src[start:v.pos])
	if !v.eat('}') {
		v.err("unterminated unicode property escape")
		return
	}
	if body == "" {
		v.err("empty unicode property escape")
	}
}

func (v *validator) unicodeEscape() {
	if v.eat('{') {
		start := v.pos
		for !v.eof() && v.peek() != '}' {
			if !isHex(v.peek()) {
				v.err("invalid unicode escape")
				break
			}
			v.advance()
		}
		if start == v.pos {
			v.err("empty unicode code point escape")
		}
		v.eat('}')
		return
	}
	if !v.hexDigits(4) {
		v.err("invalid unicode escape")
	}
}

func (v *validator) hexDigits(n int) bool {
	for i := 0; i < n; i++ {
		if v.eof() || !isHex(v.peek()) {
			return false
		}
		v.advance()
	}
	return true
}

func isHex(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func (v *validator) characterClass() {
	v.advance() // '['
	v.eat('^')
	for !v.eof() && v.peek() != ']' {
		if v.peek() == '\\' {
			v.advance()
			v.atomEscape()
			continue
		}
		v.advance()
	}
	if !v.eat(']') {
		v.err("unterminated character class")
	}
}
