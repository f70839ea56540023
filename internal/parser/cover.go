package parser

import "github.com/vela-lang/ecma/pkg/ast"

// DestructuringErrors records the offsets of constructs that are only
// invalid once a cover grammar resolves one way, mirroring acorn's
// DestructuringErrors record : a
// ParenthesizedExpression or ArrayExpression/ObjectExpression is parsed
// once, permissively, and reinterpreted as a parameter list or pattern if
// the tokens that follow commit to that reading (`=>`, or an enclosing
// `=`).
type DestructuringErrors struct {
	ShorthandAssign int // offset of `{a = 1}` used outside a pattern context, or -1
	TrailingComma   int
	ParenAssign     int
	OptionalParam   int // offset of an invalid parameter (e.g. spread not last), or -1
}

func newDestructuringErrors() *DestructuringErrors {
	return &DestructuringErrors{ShorthandAssign: -1, TrailingComma: -1, ParenAssign: -1, OptionalParam: -1}
}

// withDestructuring runs fn with a fresh DestructuringErrors record
// installed, restoring the previous one afterward, and returns the record
// fn populated.
func (p *Parser) withDestructuring(fn func()) *DestructuringErrors {
	prev := p.destructuring
	rec := newDestructuringErrors()
	p.destructuring = rec
	fn()
	p.destructuring = prev
	return rec
}

// checkPatternErrors raises any offsets DestructuringErrors recorded as
// real errors, called once the parser has committed to "this was actually
// an expression, not a pattern" (e.g. no `=>` followed a parenthesized
// list).
func (p *Parser) checkPatternErrors(rec *DestructuringErrors, andThrow bool) {
	if rec == nil {
		return
	}
	if rec.ShorthandAssign >= 0 {
		p.addError(rec.ShorthandAssign, rec.ShorthandAssign, ErrInvalidExpression, "shorthand property assignment is only valid in a destructuring pattern")
	}
}

// toAssignable rewrites an expression-cover node into the pattern node it
// must become once the parser learns it is actually a binding target (the
// left side of `=`, a `for`-loop head, or an arrow parameter). It mirrors
// acorn's toAssignable: ObjectExpression -> ObjectPattern,
// ArrayExpression -> ArrayPattern, AssignmentExpression("=") ->
// AssignmentPattern, SpreadElement -> RestElement.
func (p *Parser) toAssignable(n ast.Node, isBinding bool) ast.Node {
	switch t := n.(type) {
	case *ast.ObjectExpression:
		props := make([]ast.Node, len(t.Properties))
		for i, prop := range t.Properties {
			switch pr := prop.(type) {
			case *ast.Property:
				pr.Value = p.toAssignable(pr.Value, isBinding)
				props[i] = pr
			case *ast.SpreadElement:
				props[i] = &ast.RestElement{BaseNode: pr.BaseNode, Type: "RestElement", Argument: p.toAssignable(pr.Argument, isBinding)}
			default:
				props[i] = prop
			}
		}
		return &ast.ObjectPattern{BaseNode: t.BaseNode, Type: "ObjectPattern", Properties: props}
	case *ast.ArrayExpression:
		elems := make([]ast.Node, len(t.Elements))
		for i, el := range t.Elements {
			if el == nil {
				continue
			}
			elems[i] = p.toAssignable(el, isBinding)
		}
		return &ast.ArrayPattern{BaseNode: t.BaseNode, Type: "ArrayPattern", Elements: elems}
	case *ast.AssignmentExpression:
		if t.Operator != "=" {
			p.addError(t.Start, t.End, ErrInvalidAssignTarget, "only '=' is valid in a destructuring default")
			return t
		}
		return &ast.AssignmentPattern{BaseNode: t.BaseNode, Type: "AssignmentPattern", Left: p.toAssignable(t.Left, isBinding), Right: t.Right}
	case *ast.SpreadElement:
		return &ast.RestElement{BaseNode: t.BaseNode, Type: "RestElement", Argument: p.toAssignable(t.Argument, isBinding)}
	case *ast.Identifier, *ast.MemberExpression, *ast.ArrayPattern, *ast.ObjectPattern, *ast.AssignmentPattern, *ast.RestElement:
		return n
	case *ast.ParenthesizedExpression:
		return p.toAssignable(t.Expression, isBinding)
	default:
		p.addError(n.Pos(), n.EndPos(), ErrInvalidAssignTarget, "invalid destructuring assignment target")
		return n
	}
}

// toAssignableList rewrites a call-argument list into a parameter list,
// validating that a rest parameter is last, the way acorn's
// toAssignableList layers a single extra check on top of toAssignable.
func (p *Parser) toAssignableList(exprs []ast.Node, isBinding bool) []ast.Node {
	out := make([]ast.Node, len(exprs))
	for i, e := range exprs {
		if i < len(exprs)-1 {
			if _, ok := e.(*ast.SpreadElement); ok {
				p.addError(e.Pos(), e.EndPos(), ErrInvalidExpression, "rest element must be last")
			}
		}
		out[i] = p.toAssignable(e, isBinding)
	}
	return out
}
