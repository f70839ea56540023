package context

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vela-lang/ecma/pkg/token"
)

func TestNewStackStartsExprAllowed(t *testing.T) {
	s := NewStack()
	assert.True(t, s.ExprAllowed())
	assert.Equal(t, 1, s.Depth())
}

func TestParenAfterIfPushesStatementContext(t *testing.T) {
	s := NewStack()
	s.Update(token.LPAREN, token.IF)
	assert.Equal(t, PStat, s.Current().Kind)
}

func TestParenInExpressionPositionPushesExprContext(t *testing.T) {
	s := NewStack()
	s.Update(token.LPAREN, token.NAME)
	assert.Equal(t, PExpr, s.Current().Kind)
}

func TestBraceAfterFunctionBodyIsStatementBlock(t *testing.T) {
	s := NewStack()
	s.Update(token.LBRACE, token.RPAREN)
	assert.Equal(t, BStat, s.Current().Kind)
}

func TestSnapshotRestoreRoundTrips(t *testing.T) {
	s := NewStack()
	s.Update(token.LPAREN, token.IF)
	snap := s.Snapshot()
	s.Update(token.LBRACE, token.RPAREN)
	assert.Equal(t, 3, s.Depth())
	s.Restore(snap)
	assert.Equal(t, 2, s.Depth())
	assert.Equal(t, PStat, s.Current().Kind)
}

func TestEnterFunctionPushesGeneratorFrame(t *testing.T) {
	s := NewStack()
	s.EnterFunction(true)
	assert.True(t, s.Current().Generator)
}

func TestRParenAtDepthOneIsANoOp(t *testing.T) {
	s := NewStack()
	allowed := s.Update(token.RPAREN, token.NAME)
	assert.True(t, allowed)
	assert.Equal(t, 1, s.Depth())
}
