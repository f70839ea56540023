package scope

import "github.com/vela-lang/ecma/pkg/ast"

// BindingSink receives every identifier name an lvalue-check walk finds,
// along with its start/end offsets. The parser supplies a
// closure that calls Stack.Declare and turns a returned Conflict into a
// diagnostic at the identifier's offset.
type BindingSink func(name string, start, end int)

// CheckLValSimple walks a single binding target (an Identifier, or a
// MemberExpression when used as an assignment target rather than a
// declaration target) and reports each bound name to sink. Only
// Identifiers are ever "declared"; a MemberExpression target is a plain
// assignment, not a binding, so it is not reported.
func CheckLValSimple(n ast.Node, sink BindingSink) {
	switch t := n.(type) {
	case *ast.Identifier:
		sink(t.Name, t.Start, t.End)
	case *ast.MemberExpression:
		// assignment to a property, not a new binding
	case *ast.AssignmentPattern:
		CheckLValSimple(t.Left, sink)
	}
}

// CheckLValPattern walks an arbitrarily nested destructuring target
// (array/object patterns, defaults, rest elements) and reports every bound
// identifier to sink, implementing "checkLValInnerPattern"
// recursive walk.
func CheckLValPattern(n ast.Node, sink BindingSink) {
	switch t := n.(type) {
	case *ast.Identifier:
		sink(t.Name, t.Start, t.End)
	case *ast.ObjectPattern:
		for _, prop := range t.Properties {
			switch p := prop.(type) {
			case *ast.Property:
				CheckLValPattern(p.Value, sink)
			case *ast.RestElement:
				CheckLValPattern(p.Argument, sink)
			}
		}
	case *ast.ArrayPattern:
		for _, el := range t.Elements {
			if el == nil {
				continue
			}
			CheckLValInnerPattern(el, sink)
		}
	case *ast.AssignmentPattern:
		CheckLValPattern(t.Left, sink)
	case *ast.RestElement:
		CheckLValPattern(t.Argument, sink)
	case *ast.MemberExpression:
		// assignment target inside a pattern, not a declaration
	}
}

// CheckLValInnerPattern is CheckLValPattern specialized for array-pattern
// elements, which may themselves be rest elements only in tail position;
// kept as a distinct entry point to mirror a
// checkLValInnerPattern/checkLValPattern split for readability at call
// sites even though the recursive logic is shared here.
func CheckLValInnerPattern(n ast.Node, sink BindingSink) {
	CheckLValPattern(n, sink)
}

// IsValidAssignmentTarget reports whether n is something `=` may assign
// into directly (an Identifier or MemberExpression), used before the
// cover-grammar rewrite commits an ArrayExpression/ObjectExpression to a
// pattern.
func IsValidAssignmentTarget(n ast.Node) bool {
	switch n.(type) {
	case *ast.Identifier, *ast.MemberExpression, *ast.ArrayPattern, *ast.ObjectPattern, *ast.AssignmentPattern:
		return true
	}
	return false
}
