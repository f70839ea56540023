// Package scope implements the duplicate-declaration checker: the scope
// stack that enforces binding rules (no two lexical declarations with the
// same name in a scope, `var` may repeat, catch parameters have their own
// narrow rules, function parameters may not repeat in strict mode).
package scope

// BindingKind classifies how a name entered a scope.
type BindingKind int

const (
	Var BindingKind = iota
	Lexical
	SimpleCatch
	Function
	Outside // a reference resolved outside any tracked scope (globals, implicit)
)

// Frame is one lexical scope: a function body, a block, or a catch clause.
type Frame struct {
	kind   frameKind
	names  map[string]BindingKind
	parent *Frame
}

type frameKind int

const (
	funcFrame frameKind = iota
	blockFrame
	topFrame
)

// Stack is the scope stack the statement parser consults as it walks
// binding-introducing constructs (var/let/const, function/class
// declarations, catch clauses, for-loop heads).
type Stack struct {
	top *Frame
}

// NewStack returns a Stack seeded with one top-level frame.
func NewStack() *Stack {
	s := &Stack{}
	s.top = &Frame{kind: topFrame, names: map[string]BindingKind{}}
	return s
}

// PushFunction opens a new function-body scope.
func (s *Stack) PushFunction() { s.push(funcFrame) }

// PushBlock opens a new block scope (if/for/while body, bare `{}`, catch
// body, switch body).
func (s *Stack) PushBlock() { s.push(blockFrame) }

func (s *Stack) push(kind frameKind) {
	s.top = &Frame{kind: kind, names: map[string]BindingKind{}, parent: s.top}
}

// Pop closes the innermost frame.
func (s *Stack) Pop() { s.top = s.top.parent }

// nearestVarFrame finds the frame a `var` declaration actually binds in:
// function-scoped, skipping intervening block frames, matching `var`'s
// function-scoping semantics.
func (s *Stack) nearestVarFrame() *Frame {
	f := s.top
	for f.parent != nil && f.kind == blockFrame {
		f = f.parent
	}
	return f
}

// Conflict describes a duplicate-binding violation the caller should turn
// into a parser diagnostic at the given name's declaration offset.
type Conflict struct {
	Name string
}

// Declare records name as bound with kind in the current scope, returning a
// non-nil Conflict if rules forbid this combination:
//   - Lexical vs. anything in the same frame: conflict.
//   - Var vs. Lexical in the same frame (or any frame var skips through to
//     reach): conflict.
//   - Var vs. Var, or Function vs. Function (sloppy mode): no conflict.
//   - SimpleCatch only conflicts with another Lexical/SimpleCatch of the
//     same name in the catch's own (single-binding) frame.
func (s *Stack) Declare(name string, kind BindingKind) *Conflict {
	switch kind {
	case Lexical, Function:
		if existing, ok := s.top.names[name]; ok {
			if !(kind == Function && existing == Function) {
				return &Conflict{Name: name}
			}
		}
		s.top.names[name] = kind
		return nil
	case SimpleCatch:
		if _, ok := s.top.names[name]; ok {
			return &Conflict{Name: name}
		}
		s.top.names[name] = kind
		return nil
	case Var:
		frame := s.nearestVarFrame()
		for f := s.top; f != frame.parent; f = f.parent {
			if existing, ok := f.names[name]; ok && existing == Lexical {
				return &Conflict{Name: name}
			}
			if f == frame {
				break
			}
		}
		frame.names[name] = Var
		return nil
	default:
		return nil
	}
}

// DeclareParam checks function-parameter lists for duplicates, which are
// forbidden in strict mode, in arrow functions, and whenever the parameter
// list uses a non-simple (destructuring/default) pattern, but permitted otherwise. seen is the running set for the current parameter
// list; callers reset it per function.
func DeclareParam(seen map[string]bool, name string, mustBeUnique bool) *Conflict {
	if seen[name] && mustBeUnique {
		return &Conflict{Name: name}
	}
	seen[name] = true
	return nil
}
