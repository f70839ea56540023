package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strLit(s string) *ExpressionStatement {
	return &ExpressionStatement{Type: "ExpressionStatement", Expression: &Literal{Type: "Literal", Value: s}}
}

func TestDirectivesStopsAtFirstNonDirectiveStatement(t *testing.T) {
	body := []Node{
		strLit("use strict"),
		strLit("use asm"),
		&ExpressionStatement{Type: "ExpressionStatement", Expression: &Identifier{Type: "Identifier", Name: "x"}},
		strLit("ignored, not in the prologue"),
	}
	assert.Equal(t, []string{"use strict", "use asm"}, Directives(body))
}

func TestHasUseStrict(t *testing.T) {
	assert.True(t, HasUseStrict([]Node{strLit("use strict")}))
	assert.False(t, HasUseStrict([]Node{strLit("use asm")}))
	assert.False(t, HasUseStrict(nil))
}

func TestBaseOfReturnsEmbeddedBaseNode(t *testing.T) {
	id := &Identifier{BaseNode: BaseNode{Start: 3, End: 7}, Type: "Identifier", Name: "x"}
	base := BaseOf(id)
	assert.Equal(t, 3, base.Start)
	assert.Equal(t, 7, base.End)
	base.Loc = &SourceLocation{}
	assert.NotNil(t, id.Loc)
}
