package ecma

import (
	"fmt"

	"github.com/vela-lang/ecma/pkg/ast"
)

// SyntaxError is what Parse, ParseExpressionAt, and Tokenizer return on
// failure: a message of the form "<reason> (<line>:<column>)" when
// locations were requested and "<reason> (at offset <n>)" otherwise, the
// UTF-16 offset it anchors to, and (when locations were requested) the
// resolved line/column pair.
type SyntaxError struct {
	Reason   string
	Pos      int
	Loc      *ast.Position
	RaisedAt int // offset at which the scan that produced this error stopped
}

func (e *SyntaxError) Error() string {
	if e.Loc != nil {
		return fmt.Sprintf("%s (%d:%d)", e.Reason, e.Loc.Line, e.Loc.Column)
	}
	return fmt.Sprintf("%s (at offset %d)", e.Reason, e.Pos)
}
