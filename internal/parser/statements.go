package parser

import (
	"github.com/vela-lang/ecma/pkg/ast"
	"github.com/vela-lang/ecma/pkg/token"
)

type label struct {
	name   string
	isLoop bool
}

// ParseProgram parses an entire source file into a Program node, the
// parser's top-level entry point. A fatalParse raised anywhere below (only
// stack-exhausting recursion raises one) is caught here and
// folded into Errors() rather than propagating as a panic to the caller.
func (p *Parser) ParseProgram() (program *ast.Program) {
	defer func() {
		if r := recover(); r != nil {
			fp, ok := r.(fatalParse)
			if !ok {
				panic(r)
			}
			p.errors = append(p.errors, fp.err)
			program = &ast.Program{Type: "Program", Body: nil, SourceType: p.opts.SourceType}
		}
	}()
	octalMark := p.lex.PendingOctalEscapeCount()
	b := p.startNode()
	var body []ast.Node
	for !p.curIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			body = append(body, stmt)
		}
		if !p.strict && ast.HasUseStrict(body) {
			p.strict = true
		}
	}
	p.flushOctalEscapes(octalMark)
	sourceType := p.opts.SourceType
	return p.finishNode(b, &ast.Program{Type: "Program", Body: body, SourceType: sourceType}).(*ast.Program)
}

// parseStatement dispatches on the current token to the right statement
// production. Declarations (var/let/const/function/class) and module
// statements (import/export) are handled in declarations.go/module.go but
// dispatched from here so callers only ever need one entry point.
func (p *Parser) parseStatement() ast.Node {
	p.enterRecursion()
	defer p.exitRecursion()
	switch p.curType() {
	case token.LBRACE:
		return p.parseBlockStatement()
	case token.SEMI:
		return p.parseEmptyStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.DO:
		return p.parseDoWhileStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.FUNCTION:
		return p.parseFunctionDeclaration(false)
	case token.CLASS:
		return p.parseClassDeclaration()
	case token.VAR, token.CONST:
		return p.parseVariableStatement()
	case token.LET:
		if p.startsBindingList() {
			return p.parseVariableStatement()
		}
		return p.parseExpressionStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.BREAK:
		return p.parseBreakStatement()
	case token.CONTINUE:
		return p.parseContinueStatement()
	case token.THROW:
		return p.parseThrowStatement()
	case token.TRY:
		return p.parseTryStatement()
	case token.WITH:
		return p.parseWithStatement()
	case token.SWITCH:
		return p.parseSwitchStatement()
	case token.DEBUGGER:
		return p.parseDebuggerStatement()
	case token.IMPORT:
		if p.peekIs(1, token.LPAREN) || p.peekIs(1, token.DOT) {
			return p.parseExpressionStatement()
		}
		if p.opts.SourceType != "module" {
			p.addError(p.cur().Start, p.cur().End, ErrUnexpectedToken, "'import' and 'export' may appear only with 'sourceType: module'")
		}
		return p.parseImportDeclaration()
	case token.EXPORT:
		if p.opts.SourceType != "module" {
			p.addError(p.cur().Start, p.cur().End, ErrUnexpectedToken, "'import' and 'export' may appear only with 'sourceType: module'")
		}
		return p.parseExportDeclaration()
	case token.NAME:
		if (p.cur().Value == "let" || p.cur().Value == "const") && p.startsBindingList() {
			return p.parseVariableStatement()
		}
		if p.cur().Value == "async" && p.peekIs(1, token.FUNCTION) && !p.peekHasNewline() {
			return p.parseFunctionDeclaration(true)
		}
		if p.peekIs(1, token.COLON) {
			return p.parseLabeledStatement()
		}
		return p.parseExpressionStatement()
	default:
		return p.parseExpressionStatement()
	}
}

// startsBindingList reports whether the token after a contextual `let`/
// `const` keyword can start a binding target, disambiguating a `let`
// declaration from an identifier named "let" used as an expression (only
// reachable in sloppy mode, where `let` is not reserved).
func (p *Parser) startsBindingList() bool {
	switch p.peekIs(1, token.NAME) || p.peekIs(1, token.LBRACE) || p.peekIs(1, token.LBRACK) {
	case true:
		return true
	default:
		return false
	}
}

// peekHasNewline reports whether a line terminator occurs before the next
// token, used to apply ASI's "no newline" restriction (e.g. `async` then a
// newline then `function` is two statements, not an async function).
func (p *Parser) peekHasNewline() bool {
	return p.cursor.Peek(1).NewLine
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	b := p.startNode()
	p.next() // consume '{'
	var body []ast.Node
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			body = append(body, stmt)
		}
	}
	p.expect(token.RBRACE)
	return p.finishNode(b, &ast.BlockStatement{Type: "BlockStatement", Body: body}).(*ast.BlockStatement)
}

// parseFunctionBody parses a function/arrow block body and applies its own
// "use strict" directive, if present, to the rest of the body's parsing by
// flipping p.strict as soon as the directive prologue is known (the prologue
// is always the leading run of statements, so this still lags one statement
// behind strict-sensitive grammar choices made while scanning the prologue
// itself, matching the inherent directive-detection order of a single-pass
// recursive-descent parser). Returns the block and whether this body turned
// an outer-sloppy function strict, so the caller can re-validate parameter
// uniqueness.
func (p *Parser) parseFunctionBody() (*ast.BlockStatement, bool) {
	wasStrict := p.strict
	octalMark := p.lex.PendingOctalEscapeCount()
	b := p.startNode()
	p.next() // consume '{'
	var body []ast.Node
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			body = append(body, stmt)
		}
		if !p.strict && ast.HasUseStrict(body) {
			p.strict = true
		}
	}
	p.expect(token.RBRACE)
	p.flushOctalEscapes(octalMark)
	block := p.finishNode(b, &ast.BlockStatement{Type: "BlockStatement", Body: body}).(*ast.BlockStatement)
	return block, !wasStrict && p.strict
}

func (p *Parser) parseEmptyStatement() *ast.EmptyStatement {
	b := p.startNode()
	p.next() // consume ';'
	return p.finishNode(b, &ast.EmptyStatement{Type: "EmptyStatement"}).(*ast.EmptyStatement)
}

func (p *Parser) parseDebuggerStatement() *ast.DebuggerStatement {
	b := p.startNode()
	p.next()
	p.semicolon()
	return p.finishNode(b, &ast.DebuggerStatement{Type: "DebuggerStatement"}).(*ast.DebuggerStatement)
}

// parseExpressionStatement also yields the directive prologue: a
// top-of-function/program string-literal expression statement such as
// `"use strict";`, which the Program and function-body loops inspect via
// ast.HasUseStrict after each statement they parse.
func (p *Parser) parseExpressionStatement() *ast.ExpressionStatement {
	b := p.startNode()
	expr := p.ParseExpression()
	p.semicolon()
	return p.finishNode(b, &ast.ExpressionStatement{Type: "ExpressionStatement", Expression: expr}).(*ast.ExpressionStatement)
}

func (p *Parser) parseIfStatement() ast.Node {
	b := p.startNode()
	p.next() // consume 'if'
	p.expect(token.LPAREN)
	test := p.ParseExpression()
	p.expect(token.RPAREN)
	consequent := p.parseStatement()
	var alternate ast.Node
	if p.curIs(token.ELSE) {
		p.next()
		alternate = p.parseStatement()
	}
	return p.finishNode(b, &ast.IfStatement{Type: "IfStatement", Test: test, Consequent: consequent, Alternate: alternate})
}

func (p *Parser) parseDoWhileStatement() ast.Node {
	b := p.startNode()
	p.next() // consume 'do'
	wasIter := p.inIteration
	p.inIteration = true
	body := p.parseStatement()
	p.inIteration = wasIter
	p.expect(token.WHILE)
	p.expect(token.LPAREN)
	test := p.ParseExpression()
	p.expect(token.RPAREN)
	// a semicolon after do-while is optional even without ASI rules, per the
	// grammar's special-case production for DoWhileStatement
	if p.curIs(token.SEMI) {
		p.next()
	}
	return p.finishNode(b, &ast.DoWhileStatement{Type: "DoWhileStatement", Body: body, Test: test})
}

func (p *Parser) parseWhileStatement() ast.Node {
	b := p.startNode()
	p.next() // consume 'while'
	p.expect(token.LPAREN)
	test := p.ParseExpression()
	p.expect(token.RPAREN)
	wasIter := p.inIteration
	p.inIteration = true
	body := p.parseStatement()
	p.inIteration = wasIter
	return p.finishNode(b, &ast.WhileStatement{Type: "WhileStatement", Test: test, Body: body})
}

// parseForStatement disambiguates the four for-loop forms: the classic
// C-style `for (init; test; update)`, `for (x in obj)`, `for (x of iter)`,
// and `for await (x of iter)`. It speculatively parses the head's first
// clause as an expression or declaration, suppressing `in` via
// inForHeadNoIn, then looks at what follows to decide which form it is.
func (p *Parser) parseForStatement() ast.Node {
	b := p.startNode()
	p.next() // consume 'for'
	isAwait := false
	if p.curIs(token.NAME) && p.cur().Value == "await" {
		isAwait = true
		p.next()
	}
	p.expect(token.LPAREN)

	var init ast.Node
	if p.curIs(token.SEMI) {
		init = nil
	} else if p.curIs(token.VAR) || p.curIs(token.CONST) || (p.curIs(token.LET) && p.startsBindingList()) || (p.curIs(token.NAME) && (p.cur().Value == "let" || p.cur().Value == "const") && p.startsBindingList()) {
		init = p.parseVariableDeclarationHead()
	} else {
		prevNoIn := p.inForHeadNoIn
		p.inForHeadNoIn = true
		init = p.ParseExpression()
		p.inForHeadNoIn = prevNoIn
	}

	if p.curIs(token.IN) {
		return p.finishForInOf(b, init, false, isAwait)
	}
	if p.curIs(token.NAME) && p.cur().Value == "of" {
		return p.finishForInOf(b, init, true, isAwait)
	}

	p.expect(token.SEMI)
	var test ast.Node
	if !p.curIs(token.SEMI) {
		test = p.ParseExpression()
	}
	p.expect(token.SEMI)
	var update ast.Node
	if !p.curIs(token.RPAREN) {
		update = p.ParseExpression()
	}
	p.expect(token.RPAREN)
	wasIter := p.inIteration
	p.inIteration = true
	body := p.parseStatement()
	p.inIteration = wasIter
	return p.finishNode(b, &ast.ForStatement{Type: "ForStatement", Init: init, Test: test, Update: update, Body: body})
}

func (p *Parser) finishForInOf(b ast.Builder, init ast.Node, isOf, isAwait bool) ast.Node {
	left := init
	if _, ok := init.(*ast.VariableDeclaration); !ok {
		left = p.toAssignable(init, false)
	}
	p.next() // consume 'in'/'of'
	var right ast.Node
	if isOf {
		right = p.parseAssign()
	} else {
		right = p.ParseExpression()
	}
	p.expect(token.RPAREN)
	wasIter := p.inIteration
	p.inIteration = true
	body := p.parseStatement()
	p.inIteration = wasIter
	if isOf {
		return p.finishNode(b, &ast.ForOfStatement{Type: "ForOfStatement", Left: left, Right: right, Body: body, Await: isAwait})
	}
	return p.finishNode(b, &ast.ForInStatement{Type: "ForInStatement", Left: left, Right: right, Body: body})
}

func (p *Parser) parseReturnStatement() ast.Node {
	b := p.startNode()
	if !p.inFunction && !p.opts.AllowReturnOutsideFunction {
		tok := p.cur()
		p.addError(tok.Start, tok.End, ErrIllegalReturn, "'return' outside of function")
	}
	p.next() // consume 'return'
	var arg ast.Node
	if !p.curIs(token.SEMI) && !p.curIs(token.RBRACE) && !p.curIs(token.EOF) && !p.cur().NewLine {
		arg = p.ParseExpression()
	}
	p.semicolon()
	return p.finishNode(b, &ast.ReturnStatement{Type: "ReturnStatement", Argument: arg})
}

func (p *Parser) parseBreakStatement() ast.Node {
	b := p.startNode()
	p.next() // consume 'break'
	var lbl *ast.Identifier
	if p.curIs(token.NAME) && !p.cur().NewLine {
		lbl = p.parseLabelIdentifier()
	}
	p.semicolon()
	return p.finishNode(b, &ast.BreakStatement{Type: "BreakStatement", Label: lbl})
}

func (p *Parser) parseContinueStatement() ast.Node {
	b := p.startNode()
	p.next() // consume 'continue'
	var lbl *ast.Identifier
	if p.curIs(token.NAME) && !p.cur().NewLine {
		lbl = p.parseLabelIdentifier()
	}
	p.semicolon()
	return p.finishNode(b, &ast.ContinueStatement{Type: "ContinueStatement", Label: lbl})
}

func (p *Parser) parseLabelIdentifier() *ast.Identifier {
	b := p.startNode()
	name := p.next().Value
	return p.finishNode(b, &ast.Identifier{Type: "Identifier", Name: name}).(*ast.Identifier)
}

func (p *Parser) parseThrowStatement() ast.Node {
	b := p.startNode()
	p.next() // consume 'throw'
	if p.cur().NewLine {
		p.addError(p.cur().Start, p.cur().Start, ErrInvalidExpression, "illegal newline after 'throw'")
	}
	arg := p.ParseExpression()
	p.semicolon()
	return p.finishNode(b, &ast.ThrowStatement{Type: "ThrowStatement", Argument: arg})
}

func (p *Parser) parseTryStatement() ast.Node {
	b := p.startNode()
	p.next() // consume 'try'
	block := p.parseBlockStatement()
	var handler *ast.CatchClause
	if p.curIs(token.CATCH) {
		hb := p.startNode()
		p.next()
		var param ast.Node
		if p.curIs(token.LPAREN) {
			p.next()
			param = p.parseBindingTarget()
			scope := p.destructuring
			_ = scope
			p.expect(token.RPAREN)
		}
		body := p.parseBlockStatement()
		handler = p.finishNode(hb, &ast.CatchClause{Type: "CatchClause", Param: param, Body: body}).(*ast.CatchClause)
	}
	var finalizer *ast.BlockStatement
	if p.curIs(token.FINALLY) {
		p.next()
		finalizer = p.parseBlockStatement()
	}
	if handler == nil && finalizer == nil {
		p.addError(block.Start, block.End, ErrUnexpectedToken, "missing catch or finally after try block")
	}
	return p.finishNode(b, &ast.TryStatement{Type: "TryStatement", Block: block, Handler: handler, Finalizer: finalizer})
}

func (p *Parser) parseWithStatement() ast.Node {
	b := p.startNode()
	p.next() // consume 'with'
	p.expect(token.LPAREN)
	obj := p.ParseExpression()
	p.expect(token.RPAREN)
	body := p.parseStatement()
	return p.finishNode(b, &ast.WithStatement{Type: "WithStatement", Object: obj, Body: body})
}

func (p *Parser) parseSwitchStatement() ast.Node {
	b := p.startNode()
	p.next() // consume 'switch'
	p.expect(token.LPAREN)
	disc := p.ParseExpression()
	p.expect(token.RPAREN)
	p.expect(token.LBRACE)
	wasSwitch := p.inSwitch
	p.inSwitch = true
	var cases []*ast.SwitchCase
	seenDefault := false
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		cb := p.startNode()
		var test ast.Node
		if p.curIs(token.CASE) {
			p.next()
			test = p.ParseExpression()
		} else {
			p.expect(token.DEFAULT)
			if seenDefault {
				p.addError(cb.Start(), cb.Start(), ErrUnexpectedToken, "more than one default clause in switch statement")
			}
			seenDefault = true
		}
		p.expect(token.COLON)
		var body []ast.Node
		for !p.curIs(token.CASE) && !p.curIs(token.DEFAULT) && !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
			stmt := p.parseStatement()
			if stmt != nil {
				body = append(body, stmt)
			}
		}
		cases = append(cases, p.finishNode(cb, &ast.SwitchCase{Type: "SwitchCase", Test: test, Consequent: body}).(*ast.SwitchCase))
	}
	p.inSwitch = wasSwitch
	p.expect(token.RBRACE)
	return p.finishNode(b, &ast.SwitchStatement{Type: "SwitchStatement", Discriminant: disc, Cases: cases})
}

// parseLabeledStatement is reached from parseStatement once it has seen
// `NAME ':'`. Labels are pushed on p.labels for the duration of the body;
// parseBreakStatement and parseContinueStatement do not consult it, so a
// break/continue naming an unknown label is not reported.
func (p *Parser) parseLabeledStatement() ast.Node {
	b := p.startNode()
	lb := p.startNode()
	name := p.next().Value
	id := p.finishNode(lb, &ast.Identifier{Type: "Identifier", Name: name}).(*ast.Identifier)
	p.expect(token.COLON)
	isLoop := p.curIs(token.FOR) || p.curIs(token.WHILE) || p.curIs(token.DO)
	p.labels = append(p.labels, label{name: name, isLoop: isLoop})
	body := p.parseStatement()
	p.labels = p.labels[:len(p.labels)-1]
	return p.finishNode(b, &ast.LabeledStatement{Type: "LabeledStatement", Label: id, Body: body})
}
