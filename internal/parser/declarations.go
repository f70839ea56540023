package parser

import (
	"github.com/vela-lang/ecma/internal/context"
	"github.com/vela-lang/ecma/internal/scope"
	"github.com/vela-lang/ecma/pkg/ast"
	"github.com/vela-lang/ecma/pkg/token"
)

// parseVariableStatement parses a var/let/const statement, including the
// trailing semicolon; parseVariableDeclarationHead does the shared work
// with a for-loop head, which has no semicolon of its own.
func (p *Parser) parseVariableStatement() ast.Node {
	decl := p.parseVariableDeclarationHead()
	p.semicolon()
	return decl
}

func (p *Parser) parseVariableDeclarationHead() *ast.VariableDeclaration {
	b := p.startNode()
	kind := p.next().Value // 'var', 'let', or 'const'
	bindingKind := scope.Var
	switch kind {
	case "let":
		bindingKind = scope.Lexical
	case "const":
		bindingKind = scope.Lexical
	}
	var decls []*ast.VariableDeclarator
	for {
		db := p.startNode()
		target := p.parseBindingTarget()
		scope.CheckLValPattern(target, func(name string, start, end int) {
			if conflict := p.ctx.Declare(name, bindingKind); conflict != nil {
				p.addError(start, end, ErrDuplicateBinding, "identifier '"+name+"' has already been declared")
			}
		})
		var init ast.Node
		if p.curIs(token.EQ) {
			p.next()
			init = p.parseAssign()
		} else if kind == "const" {
			p.addError(target.Pos(), target.EndPos(), ErrInvalidExpression, "missing initializer in const declaration")
		}
		decls = append(decls, p.finishNode(db, &ast.VariableDeclarator{Type: "VariableDeclarator", ID: target, Init: init}).(*ast.VariableDeclarator))
		if !p.curIs(token.COMMA) {
			break
		}
		p.next()
	}
	return p.finishNode(b, &ast.VariableDeclaration{Type: "VariableDeclaration", Kind: kind, Declarations: decls}).(*ast.VariableDeclaration)
}

// parseFunctionDeclaration parses a function declaration, including the
// `async function` form: when async is true the current token is still
// `async`, and this function consumes it before `function`.
func (p *Parser) parseFunctionDeclaration(async bool) ast.Node {
	b := p.startNode()
	if async {
		p.next() // consume 'async'
	}
	p.next() // consume 'function'
	generator := false
	if p.curIs(token.STAR) {
		p.next()
		generator = true
	}
	nameTok := p.cur()
	name := p.expectIdentifier()
	id := &ast.Identifier{BaseNode: baseNodeFromTok(nameTok), Type: "Identifier", Name: name}

	if conflict := p.ctx.Declare(name, scope.Function); conflict != nil {
		p.addError(b.Start(), b.Start(), ErrDuplicateBinding, "identifier '"+name+"' has already been declared")
	}

	p.ctx.PushFunction()
	p.pushContextEntry(context.FStatEntry)
	params, nonSimple := p.parseParams()
	wasGen, wasAsync, wasFn, wasStrict := p.inGenerator, p.inAsync, p.inFunction, p.strict
	p.inGenerator, p.inAsync, p.inFunction = generator, async, true
	body, becameStrict := p.parseFunctionBody()
	if becameStrict && !nonSimple {
		p.checkParamUniqueness(params, true)
	}
	p.inGenerator, p.inAsync, p.inFunction, p.strict = wasGen, wasAsync, wasFn, wasStrict
	p.popContextEntry()
	p.ctx.Pop()

	return p.finishNode(b, &ast.FunctionDeclaration{Type: "FunctionDeclaration", ID: id, Params: params, Body: body, Generator: generator, Async: async})
}

func (p *Parser) parseClassDeclaration() ast.Node {
	decl := p.parseClassTail().(*ast.ClassDeclaration)
	if decl.ID != nil {
		if conflict := p.ctx.Declare(decl.ID.Name, scope.Lexical); conflict != nil {
			p.addError(decl.ID.Start, decl.ID.End, ErrDuplicateBinding, "identifier '"+decl.ID.Name+"' has already been declared")
		}
	}
	return decl
}

// parseClassTail parses the shared class-grammar productions used by both
// class declarations and class expressions: an optional name, an optional
// `extends` clause, and the class body's method/field members.
func (p *Parser) parseClassTail() ast.Node {
	b := p.startNode()
	p.next() // consume 'class'
	prevStrict := p.strict
	p.strict = true // class bodies are always strict mode
	octalMark := p.lex.PendingOctalEscapeCount()
	var id *ast.Identifier
	if p.curIs(token.NAME) {
		nameTok := p.cur()
		name := p.expectIdentifier()
		id = &ast.Identifier{BaseNode: baseNodeFromTok(nameTok), Type: "Identifier", Name: name}
	}
	var super ast.Node
	if p.curIs(token.EXTENDS) {
		p.next()
		super = p.parseCallOrMember()
	}
	body := p.parseClassBody()
	p.flushOctalEscapes(octalMark)
	p.strict = prevStrict
	return p.finishNode(b, &ast.ClassDeclaration{Type: "ClassDeclaration", ID: id, SuperClass: super, Body: body})
}

func (p *Parser) parseClassBody() *ast.ClassBody {
	b := p.startNode()
	p.expect(token.LBRACE)
	var members []ast.Node
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		if p.curIs(token.SEMI) {
			p.next()
			continue
		}
		members = append(members, p.parseClassMember())
	}
	p.expect(token.RBRACE)
	return p.finishNode(b, &ast.ClassBody{Type: "ClassBody", Body: members}).(*ast.ClassBody)
}

// parseClassMember parses one class element: a method (possibly a
// constructor, getter, setter, generator, or async method) or a field
// declaration, with static and computed-key modifiers.
func (p *Parser) parseClassMember() ast.Node {
	b := p.startNode()
	static := false
	if p.curIs(token.STATIC) && !p.peekIs(1, token.LPAREN) && !p.peekIs(1, token.EQ) {
		p.next()
		static = true
	}

	async := false
	generator := false
	kind := "method"

	if p.curIs(token.NAME) && p.cur().Value == "async" && !p.peekIs(1, token.LPAREN) && !p.peekIs(1, token.EQ) && !p.cursor.Peek(1).NewLine {
		async = true
		p.next()
	}
	if p.curIs(token.STAR) {
		generator = true
		p.next()
	}
	if p.curIs(token.NAME) && (p.cur().Value == "get" || p.cur().Value == "set") && !p.peekIs(1, token.LPAREN) && !p.peekIs(1, token.EQ) {
		kind = p.cur().Value
		p.next()
	}

	computed := false
	var key ast.Node
	if p.curIs(token.LBRACK) {
		computed = true
		key = p.parsePropertyName(true)
	} else {
		key = p.parsePropertyName(false)
	}

	if p.curIs(token.LPAREN) {
		if kind == "method" {
			if id, ok := key.(*ast.Identifier); ok && id.Name == "constructor" && !static {
				kind = "constructor"
			}
		}
		fn := p.parseFunctionTail(generator, async)
		fe := fn.(*ast.FunctionExpression)
		return p.finishNode(b, &ast.MethodDefinition{Type: "MethodDefinition", Key: key, Value: fe, Kind: kind, Computed: computed, Static: static})
	}

	var value ast.Node
	if p.curIs(token.EQ) {
		p.next()
		value = p.parseAssign()
	}
	p.semicolon()
	return p.finishNode(b, &ast.PropertyDefinition{Type: "PropertyDefinition", Key: key, Value: value, Computed: computed, Static: static})
}
