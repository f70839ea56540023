// Package token defines the lexeme-level vocabulary shared by the lexer and
// parser: token types, positions, and the Token value itself.
package token

import "fmt"

// Position is a line/column/offset triple. Line is 1-based, Column is
// 0-based, both measured in UTF-16 code units to match source map and
// editor conventions. Offset is the 0-based UTF-16 code unit offset from
// the start of the source buffer and is what callers use to slice the
// original text.
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Less reports whether p sorts before q by offset.
func (p Position) Less(q Position) bool {
	return p.Offset < q.Offset
}
