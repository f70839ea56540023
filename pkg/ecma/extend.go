package ecma

import "github.com/vela-lang/ecma/pkg/ast"

// Plugin augments parsing the way acorn's plugin functions augment its
// Parser class: acorn hands a plugin the current class and gets back a
// subclass. Go has no runtime subclassing, so a Plugin instead wraps the
// Option list any subsequent Parse/Tokenizer call will run with — the same
// "each plugin composes with the last" ordering, expressed as functional
// option composition instead of prototype chaining.
type Plugin func(Options) Options

// Factory is the "augmented parser class" Extend returns: a Parse/
// Tokenizer surface identical to the package-level functions, but with
// every call pre-seeded by the plugin chain.
type Factory struct {
	plugins []Plugin
}

// Extend returns a Factory that applies each plugin, in order, to the
// Options before every Parse/ParseExpressionAt/Tokenizer call it serves.
func Extend(plugins ...Plugin) *Factory {
	return &Factory{plugins: plugins}
}

func (f *Factory) apply(opts []Option) Options {
	o := resolve(opts)
	for _, pl := range f.plugins {
		o = pl(o)
	}
	return o
}

func (f *Factory) Parse(source string, opts ...Option) (*ast.Program, []*SyntaxError) {
	o := f.apply(opts)
	p := newParser(source, o)
	program := p.ParseProgram()
	return program, collectErrors(p, o)
}

func (f *Factory) ParseExpressionAt(source string, offset int, opts ...Option) (ast.Node, []*SyntaxError) {
	o := f.apply(opts)
	p := newParser(source[offset:], o)
	expr := p.ParseExpression()
	return expr, collectErrors(p, o)
}

func (f *Factory) Tokenizer(source string, opts ...Option) *TokenIterator {
	o := f.apply(opts)
	return &TokenIterator{lex: newLexerFromOptions(source, o), opts: o}
}
