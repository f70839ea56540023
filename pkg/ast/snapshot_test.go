package ast_test

import (
	"encoding/json"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/vela-lang/ecma/internal/parser"
)

// snapshotAST parses src and snapshots its serialized ESTree shape.
func snapshotAST(t *testing.T, name, src string) {
	t.Helper()
	p := parser.New(src)
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) != 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, errs)
	}
	raw, err := json.MarshalIndent(program, "", "  ")
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	snaps.MatchSnapshot(t, name, string(raw))
}

func TestAssignmentExpressionShape(t *testing.T) {
	snapshotAST(t, "assignment", "x = 1;")
}

func TestArrowFunctionShape(t *testing.T) {
	snapshotAST(t, "arrow_function", "const f = (a, b = 1) => a + b;")
}

func TestTemplateLiteralShape(t *testing.T) {
	snapshotAST(t, "template_literal", "`a${b}c`;")
}

func TestDestructuringAssignmentShape(t *testing.T) {
	snapshotAST(t, "destructuring", "const { a, b: [c, ...d] } = obj;")
}

func TestClassDeclarationShape(t *testing.T) {
	snapshotAST(t, "class_declaration", "class C extends Base { x = 1; m() { return this.x; } }")
}
