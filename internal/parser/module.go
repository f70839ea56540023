package parser

import (
	"github.com/vela-lang/ecma/internal/scope"
	"github.com/vela-lang/ecma/pkg/ast"
	"github.com/vela-lang/ecma/pkg/token"
)

// parseImportDeclaration parses every import form: default, namespace,
// named (with optional renaming), a combination of default+named or
// default+namespace, and the bare `import "mod";` side-effect form.
func (p *Parser) parseImportDeclaration() ast.Node {
	b := p.startNode()
	p.next() // consume 'import'

	var specifiers []ast.Node

	if p.curIs(token.STRING) {
		src := p.parseStringLiteral()
		p.semicolon()
		return p.finishNode(b, &ast.ImportDeclaration{Type: "ImportDeclaration", Specifiers: specifiers, Source: src})
	}

	if p.curIs(token.NAME) {
		sb := p.startNode()
		tok := p.cur()
		name := p.expectIdentifier()
		local := &ast.Identifier{BaseNode: baseNodeFromTok(tok), Type: "Identifier", Name: name}
		p.declareImportBinding(name, local.Start, local.End)
		specifiers = append(specifiers, p.finishNode(sb, &ast.ImportDefaultSpecifier{Type: "ImportDefaultSpecifier", Local: local}))
		if p.curIs(token.COMMA) {
			p.next()
		}
	}

	if p.curIs(token.STAR) {
		sb := p.startNode()
		p.next()
		p.expectContextual("as")
		tok := p.cur()
		name := p.expectIdentifier()
		local := &ast.Identifier{BaseNode: baseNodeFromTok(tok), Type: "Identifier", Name: name}
		p.declareImportBinding(name, local.Start, local.End)
		specifiers = append(specifiers, p.finishNode(sb, &ast.ImportNamespaceSpecifier{Type: "ImportNamespaceSpecifier", Local: local}))
	} else if p.curIs(token.LBRACE) {
		specifiers = append(specifiers, p.parseNamedImportSpecifiers()...)
	}

	p.expectContextual("from")
	src := p.parseStringLiteral()
	p.semicolon()
	return p.finishNode(b, &ast.ImportDeclaration{Type: "ImportDeclaration", Specifiers: specifiers, Source: src})
}

func (p *Parser) parseNamedImportSpecifiers() []ast.Node {
	p.expect(token.LBRACE)
	var specs []ast.Node
	for !p.curIs(token.RBRACE) {
		sb := p.startNode()
		importedTok := p.cur()
		importedName := p.expectIdentifier()
		imported := ast.Node(&ast.Identifier{BaseNode: baseNodeFromTok(importedTok), Type: "Identifier", Name: importedName})
		localTok := importedTok
		localName := importedName
		if p.curIs(token.NAME) && p.cur().Value == "as" {
			p.next()
			localTok = p.cur()
			localName = p.expectIdentifier()
		}
		local := &ast.Identifier{BaseNode: baseNodeFromTok(localTok), Type: "Identifier", Name: localName}
		p.declareImportBinding(localName, local.Start, local.End)
		specs = append(specs, p.finishNode(sb, &ast.ImportSpecifier{Type: "ImportSpecifier", Imported: imported, Local: local}))
		if !p.curIs(token.RBRACE) {
			p.expect(token.COMMA)
		}
	}
	p.expect(token.RBRACE)
	return specs
}

func (p *Parser) declareImportBinding(name string, start, end int) {
	if conflict := p.ctx.Declare(name, scope.Lexical); conflict != nil {
		p.addError(start, end, ErrDuplicateBinding, "identifier '"+name+"' has already been declared")
	}
}

// expectContextual consumes a NAME token whose value must equal word (used
// for the contextual keywords `as`/`from`, which are never reserved and so
// never get their own token.Type).
func (p *Parser) expectContextual(word string) {
	if p.curIs(token.NAME) && p.cur().Value == word {
		p.next()
		return
	}
	tok := p.cur()
	p.addError(tok.Start, tok.End, ErrUnexpectedToken, "expected '"+word+"'")
}

func (p *Parser) parseStringLiteral() *ast.Literal {
	b := p.startNode()
	tok := p.cur()
	p.next()
	return p.finishNode(b, &ast.Literal{Type: "Literal", Value: tok.Value, Raw: tok.Value}).(*ast.Literal)
}

// parseExportDeclaration parses every export form: `export default ...`,
// `export { ... } [from "mod"]`, `export * [as name] from "mod"`, and
// `export <declaration>` (var/let/const/function/class).
func (p *Parser) parseExportDeclaration() ast.Node {
	b := p.startNode()
	p.next() // consume 'export'

	if p.curIs(token.DEFAULT) {
		p.next()
		var decl ast.Node
		switch {
		case p.curIs(token.FUNCTION):
			decl = p.parseFunctionDeclaration(false)
		case p.curIs(token.NAME) && p.cur().Value == "async" && p.peekIs(1, token.FUNCTION):
			decl = p.parseFunctionDeclaration(true)
		case p.curIs(token.CLASS):
			decl = p.parseClassDeclaration()
		default:
			decl = p.parseAssign()
			p.semicolon()
		}
		return p.finishNode(b, &ast.ExportDefaultDeclaration{Type: "ExportDefaultDeclaration", Declaration: decl})
	}

	if p.curIs(token.STAR) {
		p.next()
		var exported *ast.Identifier
		if p.curIs(token.NAME) && p.cur().Value == "as" {
			p.next()
			tok := p.cur()
			name := p.expectIdentifier()
			exported = &ast.Identifier{BaseNode: baseNodeFromTok(tok), Type: "Identifier", Name: name}
		}
		p.expectContextual("from")
		src := p.parseStringLiteral()
		p.semicolon()
		return p.finishNode(b, &ast.ExportAllDeclaration{Type: "ExportAllDeclaration", Source: src, Exported: exported})
	}

	if p.curIs(token.LBRACE) {
		specs := p.parseExportSpecifiers()
		var src *ast.Literal
		if p.curIs(token.NAME) && p.cur().Value == "from" {
			p.next()
			src = p.parseStringLiteral()
		}
		p.semicolon()
		return p.finishNode(b, &ast.ExportNamedDeclaration{Type: "ExportNamedDeclaration", Specifiers: specs, Source: src})
	}

	decl := p.parseStatement()
	return p.finishNode(b, &ast.ExportNamedDeclaration{Type: "ExportNamedDeclaration", Declaration: decl})
}

func (p *Parser) parseExportSpecifiers() []*ast.ExportSpecifier {
	p.expect(token.LBRACE)
	var specs []*ast.ExportSpecifier
	for !p.curIs(token.RBRACE) {
		sb := p.startNode()
		localTok := p.cur()
		localName := p.expectIdentifier()
		local := ast.Node(&ast.Identifier{BaseNode: baseNodeFromTok(localTok), Type: "Identifier", Name: localName})
		exported := local
		if p.curIs(token.NAME) && p.cur().Value == "as" {
			p.next()
			expTok := p.cur()
			expName := p.expectIdentifier()
			exported = &ast.Identifier{BaseNode: baseNodeFromTok(expTok), Type: "Identifier", Name: expName}
		}
		specs = append(specs, p.finishNode(sb, &ast.ExportSpecifier{Type: "ExportSpecifier", Local: local, Exported: exported}).(*ast.ExportSpecifier))
		if !p.curIs(token.RBRACE) {
			p.expect(token.COMMA)
		}
	}
	p.expect(token.RBRACE)
	return specs
}
