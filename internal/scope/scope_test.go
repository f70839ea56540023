package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeclareLexicalConflictsWithLexical(t *testing.T) {
	s := NewStack()
	assert.Nil(t, s.Declare("x", Lexical))
	assert.NotNil(t, s.Declare("x", Lexical))
}

func TestDeclareVarRepeatsAllowed(t *testing.T) {
	s := NewStack()
	assert.Nil(t, s.Declare("x", Var))
	assert.Nil(t, s.Declare("x", Var))
}

func TestDeclareFunctionRepeatsAllowedSloppy(t *testing.T) {
	s := NewStack()
	assert.Nil(t, s.Declare("f", Function))
	assert.Nil(t, s.Declare("f", Function))
}

func TestVarConflictsWithLexicalInSameFrame(t *testing.T) {
	s := NewStack()
	assert.Nil(t, s.Declare("x", Lexical))
	assert.NotNil(t, s.Declare("x", Var))
}

func TestVarSkipsThroughBlockFramesToFunctionFrame(t *testing.T) {
	s := NewStack()
	s.PushFunction()
	s.PushBlock()
	assert.Nil(t, s.Declare("x", Lexical)) // block-scoped let
	s.Pop()                                // back to function frame
	// a var in the function frame that also exists as a block-scoped lexical
	// above is a separate frame, so it doesn't conflict once popped.
	assert.Nil(t, s.Declare("x", Var))
}

func TestVarConflictsWithEnclosingLexicalAcrossBlocks(t *testing.T) {
	s := NewStack()
	s.PushFunction()
	assert.Nil(t, s.Declare("x", Lexical))
	s.PushBlock()
	assert.NotNil(t, s.Declare("x", Var))
}

func TestSimpleCatchConflictsOnlyWithinCatchFrame(t *testing.T) {
	s := NewStack()
	s.PushBlock()
	assert.Nil(t, s.Declare("e", SimpleCatch))
	assert.NotNil(t, s.Declare("e", SimpleCatch))
}

func TestDeclareParamUniqueness(t *testing.T) {
	seen := map[string]bool{}
	assert.Nil(t, DeclareParam(seen, "a", true))
	assert.NotNil(t, DeclareParam(seen, "a", true))
}

func TestDeclareParamAllowsDuplicatesWhenNotRequired(t *testing.T) {
	seen := map[string]bool{}
	assert.Nil(t, DeclareParam(seen, "a", false))
	assert.Nil(t, DeclareParam(seen, "a", false))
}
