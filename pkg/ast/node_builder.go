package ast

// Builder captures a node's start offset and stamps its end offset once
// parsing of that node completes: a two-step start/finish shape that lets
// the parser allocate a node before its children are parsed and fill in the
// span once they're done. Every node here embeds BaseNode directly, so
// there is no ambiguity about which field to stamp.
type Builder struct {
	start int
}

// NewBuilder captures start as the position of the token the caller has
// just looked at (typically the first token of the construct).
func NewBuilder(start int) Builder { return Builder{start: start} }

// Finish stamps n's Start/End and returns n for chaining.
func (b Builder) Finish(n Node, end int) Node {
	base := BaseOf(n)
	base.Start = b.start
	base.End = end
	return n
}

// FinishWithNode stamps n's End from lastChild's End when lastChild is
// non-nil, else falls back to end.
func (b Builder) FinishWithNode(n Node, lastChild Node, end int) Node {
	if lastChild != nil {
		return b.Finish(n, lastChild.EndPos())
	}
	return b.Finish(n, end)
}

// Start returns the captured start offset.
func (b Builder) Start() int { return b.start }
