package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilderFinishStampsStartAndEnd(t *testing.T) {
	b := NewBuilder(10)
	n := b.Finish(&Identifier{Type: "Identifier", Name: "x"}, 11)
	assert.Equal(t, 10, n.Pos())
	assert.Equal(t, 11, n.EndPos())
}

func TestBuilderFinishWithNodeUsesLastChildEnd(t *testing.T) {
	b := NewBuilder(0)
	child := &Identifier{BaseNode: BaseNode{Start: 0, End: 5}, Type: "Identifier", Name: "abcde"}
	n := b.FinishWithNode(&ExpressionStatement{Type: "ExpressionStatement", Expression: child}, child, 99)
	assert.Equal(t, 5, n.EndPos())
}

func TestBuilderFinishWithNodeFallsBackWhenNoChild(t *testing.T) {
	b := NewBuilder(0)
	n := b.FinishWithNode(&EmptyStatement{Type: "EmptyStatement"}, nil, 3)
	assert.Equal(t, 3, n.EndPos())
}
