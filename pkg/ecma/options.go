// Package ecma is the library surface callers import: Parse,
// ParseExpressionAt, Tokenizer, and Extend, wrapping the internal
// lexer/parser packages behind the options and error shape a consumer of
// an ECMAScript parser expects.
package ecma

import (
	"github.com/vela-lang/ecma/internal/lexer"
	"github.com/vela-lang/ecma/internal/parser"
)

// Options configures parsing and tokenizing. Zero value is not valid on its
// own; use DefaultOptions or the With* functional options with Parse.
type Options struct {
	// EcmaVersion gates grammar features: 3, 5, 6 through 13, or 0 meaning
	// "latest" (resolved to the newest supported grammar).
	EcmaVersion int

	// SourceType is "script" or "module". "module" implies strict mode and
	// enables import/export declarations.
	SourceType string

	// AllowReturnOutsideFunction lets `return` appear at the top level,
	// matching embedder use cases (REPLs, CommonJS module wrappers).
	AllowReturnOutsideFunction bool

	// AllowAwaitOutsideFunction lets top-level `await` parse outside any
	// async function, matching top-level-await module semantics.
	AllowAwaitOutsideFunction bool

	// AllowImportExportEverywhere is stored but not passed to the parser, so
	// it has no effect: import/export declarations are accepted at any
	// statement position in module source and reported as errors in script
	// source, whatever this is set to.
	AllowImportExportEverywhere bool

	// AllowHashBang is not passed to the lexer: a `#!` line at the very
	// start of the source is always skipped, whatever this is set to.
	AllowHashBang bool

	// AllowReserved is stored but not passed to the lexer or parser:
	// reserved words are always classified by the lexer's own
	// version-specific rule, whatever this is set to.
	AllowReserved *bool

	// Locations attaches a `loc: {start, end}` line/column pair to every
	// node and token.
	Locations bool

	// SourceFile is stored but not read by Parse, ParseExpressionAt or
	// Tokenizer; no location or node carries it.
	SourceFile string

	// OnComment is invoked for every comment the Tokenizer iterator scans.
	// Parse and ParseExpressionAt do not pass it on and never call it.
	OnComment func(block bool, text string, start, end int)

	// OnInsertedSemicolon is stored but never called: the parser applies
	// automatic semicolon insertion without reporting where.
	OnInsertedSemicolon func(pos int)

	// OnToken is invoked once per token the Tokenizer iterator yields, in
	// source order. Parse and ParseExpressionAt never call it.
	OnToken func(tok Token)
}

// DefaultOptions returns the baseline configuration: latest grammar,
// "script" source type, hashbang permitted, nothing else enabled.
func DefaultOptions() Options {
	return Options{
		EcmaVersion:   2021,
		SourceType:    "script",
		AllowHashBang: true,
	}
}

// Option mutates an Options value; passed variadically to Parse,
// ParseExpressionAt, and Tokenizer.
type Option func(*Options)

func WithEcmaVersion(v int) Option { return func(o *Options) { o.EcmaVersion = v } }
func WithSourceType(t string) Option {
	return func(o *Options) { o.SourceType = t }
}
func WithAllowReturnOutsideFunction(v bool) Option {
	return func(o *Options) { o.AllowReturnOutsideFunction = v }
}
func WithAllowAwaitOutsideFunction(v bool) Option {
	return func(o *Options) { o.AllowAwaitOutsideFunction = v }
}
func WithAllowImportExportEverywhere(v bool) Option {
	return func(o *Options) { o.AllowImportExportEverywhere = v }
}
func WithAllowHashBang(v bool) Option { return func(o *Options) { o.AllowHashBang = v } }
func WithAllowReserved(v bool) Option { return func(o *Options) { o.AllowReserved = &v } }
func WithLocations(v bool) Option     { return func(o *Options) { o.Locations = v } }
func WithSourceFile(name string) Option {
	return func(o *Options) { o.SourceFile = name }
}
func WithOnComment(fn func(block bool, text string, start, end int)) Option {
	return func(o *Options) { o.OnComment = fn }
}
func WithOnInsertedSemicolon(fn func(pos int)) Option {
	return func(o *Options) { o.OnInsertedSemicolon = fn }
}
func WithOnToken(fn func(tok Token)) Option {
	return func(o *Options) { o.OnToken = fn }
}

func resolve(opts []Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if o.EcmaVersion == 0 {
		o.EcmaVersion = DefaultOptions().EcmaVersion
	}
	return o
}

func (o Options) toLexerOptions() []lexer.Option {
	lopts := []lexer.Option{
		lexer.WithEcmaVersion(o.EcmaVersion),
		lexer.WithSourceType(o.SourceType),
		lexer.WithLocations(o.Locations),
	}
	if o.OnComment != nil {
		lopts = append(lopts, lexer.WithOnComment(o.OnComment))
	}
	return lopts
}

func (o Options) toParserOptions() []func(*parser.Options) {
	return []func(*parser.Options){
		func(po *parser.Options) {
			po.EcmaVersion = o.EcmaVersion
			po.SourceType = o.SourceType
			po.AllowReturnOutsideFunction = o.AllowReturnOutsideFunction
			po.AllowAwaitOutsideFunction = o.AllowAwaitOutsideFunction
			po.Locations = o.Locations
		},
	}
}
