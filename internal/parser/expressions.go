package parser

import (
	"strconv"

	"github.com/vela-lang/ecma/internal/regexp"
	"github.com/vela-lang/ecma/internal/scope"
	"github.com/vela-lang/ecma/pkg/ast"
	"github.com/vela-lang/ecma/pkg/token"
)

var binOpPrecedence = map[string]int{
	"??": coalesce,
	"||": logicalOr,
	"&&": logicalAnd,
	"|":  bitOr,
	"^":  bitXor,
	"&":  bitAnd,
	"==": equality, "!=": equality, "===": equality, "!==": equality,
	"<": relational, ">": relational, "<=": relational, ">=": relational,
	"instanceof": relational, "in": relational,
	"<<": shift, ">>": shift, ">>>": shift,
	"+": additive, "-": additive,
	"*": multiplicative, "/": multiplicative, "%": multiplicative,
	"**": exponent,
}

// ParseExpression parses a full expression, including top-level comma
// sequences, producing a SequenceExpression when more than one is present.
func (p *Parser) ParseExpression() ast.Node {
	b := p.startNode()
	expr := p.parseAssign()
	if p.curIs(token.COMMA) {
		exprs := []ast.Node{expr}
		for p.curIs(token.COMMA) {
			p.next()
			exprs = append(exprs, p.parseAssign())
		}
		return p.finishNode(b, &ast.SequenceExpression{Type: "SequenceExpression", Expressions: exprs})
	}
	return expr
}

// parseAssign parses an assignment expression, the cover-grammar entry
// point for arrow functions: a parenthesized expression or a single
// identifier may turn into `ArrowFunctionExpression` if `=>` follows.
func (p *Parser) parseAssign() ast.Node {
	p.enterRecursion()
	defer p.exitRecursion()
	if arrow := p.tryParseArrow(); arrow != nil {
		return arrow
	}
	if p.curIs(token.YIELD) && p.inGenerator {
		return p.parseYield()
	}
	b := p.startNode()
	left := p.parseConditional()
	if p.curType().IsOperator() && isAssignOp(p.cur().Value) {
		op := p.next().Value
		left = p.toAssignable(left, false)
		right := p.parseAssign()
		return p.finishNode(b, &ast.AssignmentExpression{Type: "AssignmentExpression", Operator: op, Left: left, Right: right})
	}
	return left
}

func isAssignOp(lit string) bool {
	switch lit {
	case "=", "+=", "-=", "*=", "/=", "%=", "**=", "<<=", ">>=", ">>>=", "&=", "|=", "^=", "&&=", "||=", "??=":
		return true
	}
	return false
}

func (p *Parser) parseYield() ast.Node {
	b := p.startNode()
	p.next() // yield
	delegate := false
	if p.curIs(token.STAR) {
		p.next()
		delegate = true
	}
	var arg ast.Node
	if !p.cur().NewLine && !p.curIs(token.SEMI) && !p.curIs(token.RPAREN) && !p.curIs(token.RBRACE) && !p.curIs(token.RBRACK) && !p.curIs(token.EOF) && !p.curIs(token.COLON) && !p.curIs(token.COMMA) {
		arg = p.parseAssign()
	}
	return p.finishNode(b, &ast.YieldExpression{Type: "YieldExpression", Argument: arg, Delegate: delegate})
}

func (p *Parser) parseConditional() ast.Node {
	b := p.startNode()
	test := p.parseBinary(lowest)
	if p.curIs(token.QUESTION) {
		p.next()
		cons := p.parseAssign()
		p.expect(token.COLON)
		alt := p.parseAssign()
		return p.finishNode(b, &ast.ConditionalExpression{Type: "ConditionalExpression", Test: test, Consequent: cons, Alternate: alt})
	}
	return test
}

// parseBinary implements precedence climbing over binary/logical
// operators, switching node type (BinaryExpression vs. LogicalExpression)
// per acorn's split so `&&`/`||`/`??` produce the ESTree-mandated
// LogicalExpression shape.
func (p *Parser) parseBinary(minPrec int) ast.Node {
	left := p.parseUnary()
	for {
		lit := p.cur().Value
		prec, ok := binOpPrecedence[lit]
		if !ok || prec < minPrec || !p.curType().IsOperator() && !p.curIs(token.IN) && !p.curIs(token.INSTANCEOF) {
			break
		}
		if lit == "in" && p.inForHeadNoIn {
			break
		}
		b := ast.NewBuilder(left.Pos())
		p.next()
		nextMinPrec := prec + 1
		if lit == "**" {
			nextMinPrec = prec // right-associative
		}
		right := p.parseBinary(nextMinPrec)
		if lit == "&&" || lit == "||" || lit == "??" {
			left = p.finishNode(b, &ast.LogicalExpression{Type: "LogicalExpression", Operator: lit, Left: left, Right: right})
		} else {
			left = p.finishNode(b, &ast.BinaryExpression{Type: "BinaryExpression", Operator: lit, Left: left, Right: right})
		}
	}
	return left
}

func (p *Parser) parseUnary() ast.Node {
	tok := p.cur()
	switch tok.Type {
	case token.PREFIX, token.PLUS_MIN:
		b := p.startNode()
		op := p.next().Value
		arg := p.parseUnary()
		return p.finishNode(b, &ast.UnaryExpression{Type: "UnaryExpression", Operator: op, Prefix: true, Argument: arg})
	case token.TYPEOF, token.VOID, token.DELETE:
		b := p.startNode()
		op := p.next().Value
		arg := p.parseUnary()
		return p.finishNode(b, &ast.UnaryExpression{Type: "UnaryExpression", Operator: op, Prefix: true, Argument: arg})
	case token.INC_DEC:
		b := p.startNode()
		op := p.next().Value
		arg := p.parseUnary()
		return p.finishNode(b, &ast.UpdateExpression{Type: "UpdateExpression", Operator: op, Argument: arg, Prefix: true})
	case token.NAME:
		if tok.Value == "await" && (p.inAsync || (p.opts.AllowAwaitOutsideFunction && !p.inFunction)) {
			b := p.startNode()
			p.next()
			arg := p.parseUnary()
			return p.finishNode(b, &ast.AwaitExpression{Type: "AwaitExpression", Argument: arg})
		}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() ast.Node {
	expr := p.parseCallOrMember()
	if p.curIs(token.INC_DEC) && !p.cur().NewLine {
		b := ast.NewBuilder(expr.Pos())
		op := p.next().Value
		return p.finishNode(b, &ast.UpdateExpression{Type: "UpdateExpression", Operator: op, Argument: expr, Prefix: false})
	}
	return expr
}

// parseCallOrMember parses a left-hand-side expression: member accesses,
// calls, tagged templates, and `new`, wrapping the whole chain in a single
// ChainExpression if any `?.` link appeared.
func (p *Parser) parseCallOrMember() ast.Node {
	start := p.cur().Start
	var expr ast.Node
	if p.curIs(token.NEW) {
		expr = p.parseNew()
	} else {
		expr = p.parsePrimary()
	}
	optionalChain := false
	for {
		switch {
		case p.curIs(token.DOT):
			b := ast.NewBuilder(start)
			p.next()
			prop := p.parsePropertyName(false)
			expr = p.finishNode(b, &ast.MemberExpression{Type: "MemberExpression", Object: expr, Property: prop, Computed: false})
		case p.curIs(token.Q_DOT):
			optionalChain = true
			b := ast.NewBuilder(start)
			p.next()
			if p.curIs(token.LPAREN) {
				args := p.parseArguments()
				expr = p.finishNode(b, &ast.CallExpression{Type: "CallExpression", Callee: expr, Arguments: args, Optional: true})
			} else if p.curIs(token.LBRACK) {
				p.next()
				prop := p.ParseExpression()
				p.expect(token.RBRACK)
				expr = p.finishNode(b, &ast.MemberExpression{Type: "MemberExpression", Object: expr, Property: prop, Computed: true, Optional: true})
			} else {
				prop := p.parsePropertyName(false)
				expr = p.finishNode(b, &ast.MemberExpression{Type: "MemberExpression", Object: expr, Property: prop, Computed: false, Optional: true})
			}
		case p.curIs(token.LBRACK):
			b := ast.NewBuilder(start)
			p.next()
			prop := p.ParseExpression()
			p.expect(token.RBRACK)
			expr = p.finishNode(b, &ast.MemberExpression{Type: "MemberExpression", Object: expr, Property: prop, Computed: true})
		case p.curIs(token.LPAREN):
			b := ast.NewBuilder(start)
			args := p.parseArguments()
			expr = p.finishNode(b, &ast.CallExpression{Type: "CallExpression", Callee: expr, Arguments: args})
		case p.curIs(token.TEMPLATE) || p.curIs(token.INVALID_TEMPLATE):
			b := ast.NewBuilder(start)
			quasi := p.parseTemplateLiteral(true)
			expr = p.finishNode(b, &ast.TaggedTemplateExpression{Type: "TaggedTemplateExpression", Tag: expr, Quasi: quasi})
		default:
			if optionalChain {
				b := ast.NewBuilder(start)
				return p.finishNode(b, &ast.ChainExpression{Type: "ChainExpression", Expression: expr})
			}
			return expr
		}
	}
}

func (p *Parser) parseNew() ast.Node {
	b := p.startNode()
	p.next() // new
	if p.curIs(token.DOT) {
		p.next()
		meta := &ast.Identifier{Type: "Identifier", Name: "new"}
		prop := p.expectIdentifier()
		return p.finishNode(b, &ast.MetaProperty{Type: "MetaProperty", Meta: meta, Property: &ast.Identifier{Type: "Identifier", Name: prop}})
	}
	callee := p.parseCallOrMemberNoCall()
	var args []ast.Node
	if p.curIs(token.LPAREN) {
		args = p.parseArguments()
	}
	return p.finishNode(b, &ast.NewExpression{Type: "NewExpression", Callee: callee, Arguments: args})
}

// parseCallOrMemberNoCall parses the callee of a `new` expression: member
// accesses bind, but a `(...)` is the `new` expression's own argument list,
// not a nested call on the callee (`new a.b.c(...)` vs. `new a.b().c`).
func (p *Parser) parseCallOrMemberNoCall() ast.Node {
	start := p.cur().Start
	var expr ast.Node
	if p.curIs(token.NEW) {
		expr = p.parseNew()
	} else {
		expr = p.parsePrimary()
	}
	for {
		switch {
		case p.curIs(token.DOT):
			b := ast.NewBuilder(start)
			p.next()
			prop := p.parsePropertyName(false)
			expr = p.finishNode(b, &ast.MemberExpression{Type: "MemberExpression", Object: expr, Property: prop, Computed: false})
		case p.curIs(token.LBRACK):
			b := ast.NewBuilder(start)
			p.next()
			prop := p.ParseExpression()
			p.expect(token.RBRACK)
			expr = p.finishNode(b, &ast.MemberExpression{Type: "MemberExpression", Object: expr, Property: prop, Computed: true})
		default:
			return expr
		}
	}
}

func (p *Parser) parsePropertyName(computed bool) ast.Node {
	if computed {
		p.next()
		expr := p.ParseExpression()
		p.expect(token.RBRACK)
		return expr
	}
	tok := p.cur()
	p.next()
	return &ast.Identifier{BaseNode: baseNodeFromTok(tok), Type: "Identifier", Name: tok.Value}
}

func baseNodeFromTok(tok token.Token) ast.BaseNode {
	return ast.BaseNode{Start: tok.Start, End: tok.End}
}

func (p *Parser) parseArguments() []ast.Node {
	p.expect(token.LPAREN)
	var args []ast.Node
	for !p.curIs(token.RPAREN) {
		if p.curIs(token.ELLIPSIS) {
			b := p.startNode()
			p.next()
			arg := p.parseAssign()
			args = append(args, p.finishNode(b, &ast.SpreadElement{Type: "SpreadElement", Argument: arg}))
		} else {
			args = append(args, p.parseAssign())
		}
		if !p.curIs(token.RPAREN) {
			p.expect(token.COMMA)
		}
	}
	p.expect(token.RPAREN)
	return args
}

func (p *Parser) parsePrimary() ast.Node {
	tok := p.cur()
	switch tok.Type {
	case token.NUM:
		p.next()
		return p.finishLiteralNum(tok)
	case token.STRING:
		p.next()
		return &ast.Literal{BaseNode: baseNodeFromTok(tok), Type: "Literal", Value: tok.Value, Raw: tok.Value}
	case token.TRUE, token.FALSE:
		p.next()
		return &ast.Literal{BaseNode: baseNodeFromTok(tok), Type: "Literal", Value: tok.Type == token.TRUE, Raw: tok.Value}
	case token.NULL:
		p.next()
		return &ast.Literal{BaseNode: baseNodeFromTok(tok), Type: "Literal", Value: nil, Raw: "null"}
	case token.THIS:
		p.next()
		return &ast.ThisExpression{BaseNode: baseNodeFromTok(tok), Type: "ThisExpression"}
	case token.SUPER:
		p.next()
		return &ast.Super{BaseNode: baseNodeFromTok(tok), Type: "Super"}
	case token.NAME:
		return p.parseIdentOrArrowOrAsync()
	case token.REGEXP:
		p.next()
		return p.finishLiteralRegExp(tok)
	case token.LPAREN:
		return p.parseParenExpression()
	case token.LBRACK:
		return p.parseArrayExpression()
	case token.LBRACE:
		return p.parseObjectExpression()
	case token.FUNCTION:
		return p.parseFunctionExpression(false)
	case token.CLASS:
		return p.parseClassExpression()
	case token.TEMPLATE, token.INVALID_TEMPLATE:
		return p.parseTemplateLiteral(false)
	case token.IMPORT:
		b := p.startNode()
		p.next()
		if p.curIs(token.DOT) {
			p.next()
			prop := p.expectIdentifier()
			return p.finishNode(b, &ast.MetaProperty{Type: "MetaProperty", Meta: &ast.Identifier{Type: "Identifier", Name: "import"}, Property: &ast.Identifier{Type: "Identifier", Name: prop}})
		}
		p.expect(token.LPAREN)
		src := p.parseAssign()
		p.expect(token.RPAREN)
		return p.finishNode(b, &ast.ImportExpression{Type: "ImportExpression", Source: src})
	default:
		p.addError(tok.Start, tok.End, ErrNoPrefixParse, "unexpected token "+tok.Type.String())
		p.next()
		return &ast.Literal{BaseNode: baseNodeFromTok(tok), Type: "Literal", Value: nil, Raw: tok.Value}
	}
}

func (p *Parser) finishLiteralNum(tok token.Token) ast.Node {
	lit := &ast.Literal{BaseNode: baseNodeFromTok(tok), Type: "Literal", Raw: tok.Value}
	if len(tok.Value) > 0 && tok.Value[len(tok.Value)-1] == 'n' {
		lit.Bigint = tok.Value[:len(tok.Value)-1]
		lit.Value = nil
		return lit
	}
	v, err := strconv.ParseFloat(tok.Value, 64)
	if err == nil {
		lit.Value = v
	}
	return lit
}

func (p *Parser) finishLiteralRegExp(tok token.Token) ast.Node {
	re := p.lex.LastRegExp()
	flags := regexp.ParseFlags(re.Flags)
	for _, e := range regexp.Validate(re.Pattern, flags, p.opts.EcmaVersion) {
		p.addError(tok.Start, tok.End, ErrInvalidRegExp, e.Message)
	}
	return &ast.Literal{
		BaseNode: baseNodeFromTok(tok),
		Type:     "Literal",
		Value:    nil,
		Raw:      tok.Value,
		Regex:    &ast.RegexInfo{Pattern: re.Pattern, Flags: re.Flags},
	}
}

// parseIdentOrArrowOrAsync handles the contextual-keyword-laden NAME
// production: a plain identifier, `async function`, or a single-identifier
// arrow parameter list. `async (params) =>` and `async x =>` are parsed by
// tryParseArrow, not here.
func (p *Parser) parseIdentOrArrowOrAsync() ast.Node {
	tok := p.cur()
	if tok.Value == "async" && !p.peekAsyncBreaksHere() {
		if p.peekIs(1, token.FUNCTION) && !p.cursor.Peek(1).NewLine {
			p.next()
			return p.parseFunctionExpression(true)
		}
	}
	p.next()
	id := &ast.Identifier{BaseNode: baseNodeFromTok(tok), Type: "Identifier", Name: tok.Value}
	if p.curIs(token.ARROW) && !p.cur().NewLine {
		return p.finishArrowFromIdent(id)
	}
	return id
}

func (p *Parser) peekAsyncBreaksHere() bool {
	return false
}

func (p *Parser) finishArrowFromIdent(id *ast.Identifier) ast.Node {
	b := ast.NewBuilder(id.Pos())
	p.next() // =>
	params := []ast.Node{id}
	return p.finishArrowBody(b, params, false)
}

func (p *Parser) parseParenExpression() ast.Node {
	rec := p.withDestructuring(func() {})
	_ = rec
	start := p.cur().Start
	p.next() // '('
	var items []ast.Node
	trailingComma := false
	for !p.curIs(token.RPAREN) {
		if p.curIs(token.ELLIPSIS) {
			b := p.startNode()
			p.next()
			arg := p.parseAssign()
			items = append(items, p.finishNode(b, &ast.SpreadElement{Type: "SpreadElement", Argument: arg}))
		} else {
			items = append(items, p.parseAssign())
		}
		if p.curIs(token.COMMA) {
			p.next()
			if p.curIs(token.RPAREN) {
				trailingComma = true
			}
		} else {
			break
		}
	}
	p.expect(token.RPAREN)
	if p.curIs(token.ARROW) && !p.cur().NewLine {
		b := ast.NewBuilder(start)
		p.next() // =>
		params := p.toAssignableList(items, true)
		return p.finishArrowBody(b, params, false)
	}
	_ = trailingComma
	b := ast.NewBuilder(start)
	if len(items) == 1 {
		return items[0]
	}
	return p.finishNode(b, &ast.SequenceExpression{Type: "SequenceExpression", Expressions: items})
}

// tryParseArrow speculatively attempts an `async (...) =>` or bare
// `async x =>` parse using the cursor's Mark/ResetTo backtracking, the same
// discipline cursor documents for its own speculative
// parses, since "async" followed by a parenthesized list is ambiguous with
// a plain call `async(x)` until the `=>` is seen.
func (p *Parser) tryParseArrow() ast.Node {
	if !p.curIs(token.NAME) || p.cur().Value != "async" || p.cur().NewLine {
		return nil
	}
	mark := p.cursor.Mark()
	start := p.cur().Start
	p.next() // async
	if p.cur().NewLine {
		p.cursor.ResetTo(mark)
		return nil
	}
	if p.curIs(token.NAME) && p.peekIs(1, token.ARROW) {
		id := &ast.Identifier{BaseNode: baseNodeFromTok(p.cur()), Type: "Identifier", Name: p.cur().Value}
		p.next()
		b := ast.NewBuilder(start)
		p.next() // =>
		return p.finishArrowBody(b, []ast.Node{id}, true)
	}
	if p.curIs(token.LPAREN) {
		snapStart := p.cursor.Mark()
		items, ok := p.tryParseParenList()
		if ok && p.curIs(token.ARROW) && !p.cur().NewLine {
			b := ast.NewBuilder(start)
			params := p.toAssignableList(items, true)
			p.next() // =>
			return p.finishArrowBody(b, params, true)
		}
		p.cursor.ResetTo(snapStart)
	}
	p.cursor.ResetTo(mark)
	return nil
}

func (p *Parser) tryParseParenList() ([]ast.Node, bool) {
	p.next() // '('
	var items []ast.Node
	for !p.curIs(token.RPAREN) {
		if p.curIs(token.ELLIPSIS) {
			b := p.startNode()
			p.next()
			arg := p.parseAssign()
			items = append(items, p.finishNode(b, &ast.SpreadElement{Type: "SpreadElement", Argument: arg}))
		} else {
			items = append(items, p.parseAssign())
		}
		if p.curIs(token.COMMA) {
			p.next()
		} else {
			break
		}
	}
	if !p.curIs(token.RPAREN) {
		return nil, false
	}
	p.next()
	return items, true
}

// finishArrowBody parses an arrow function's body, given its already-
// resolved parameter list. Arrow parameters must be unique regardless of
// strict mode or parameter shape, unlike a plain function's simple-param
// sloppy-mode exemption.
func (p *Parser) finishArrowBody(b ast.Builder, params []ast.Node, async bool) ast.Node {
	p.checkParamUniqueness(params, true)
	wasAsync, wasGen, wasFn, wasStrict := p.inAsync, p.inGenerator, p.inFunction, p.strict
	p.inAsync, p.inGenerator, p.inFunction = async, false, true
	var body ast.Node
	expression := false
	if p.curIs(token.LBRACE) {
		body, _ = p.parseFunctionBody()
	} else {
		body = p.parseAssign()
		expression = true
	}
	p.inAsync, p.inGenerator, p.inFunction, p.strict = wasAsync, wasGen, wasFn, wasStrict
	return p.finishNode(b, &ast.ArrowFunctionExpression{Type: "ArrowFunctionExpression", Params: params, Body: body, Expression: expression, Async: async})
}

func (p *Parser) parseArrayExpression() ast.Node {
	b := p.startNode()
	p.next() // '['
	var elements []ast.Node
	for !p.curIs(token.RBRACK) {
		if p.curIs(token.COMMA) {
			elements = append(elements, nil)
			p.next()
			continue
		}
		if p.curIs(token.ELLIPSIS) {
			eb := p.startNode()
			p.next()
			arg := p.parseAssign()
			elements = append(elements, p.finishNode(eb, &ast.SpreadElement{Type: "SpreadElement", Argument: arg}))
		} else {
			elements = append(elements, p.parseAssign())
		}
		if !p.curIs(token.RBRACK) {
			if !p.curIs(token.COMMA) {
				break
			}
			p.next()
		}
	}
	p.expect(token.RBRACK)
	return p.finishNode(b, &ast.ArrayExpression{Type: "ArrayExpression", Elements: elements})
}

func (p *Parser) parseObjectExpression() ast.Node {
	b := p.startNode()
	p.next() // '{'
	var props []ast.Node
	for !p.curIs(token.RBRACE) {
		if p.curIs(token.ELLIPSIS) {
			pb := p.startNode()
			p.next()
			arg := p.parseAssign()
			props = append(props, p.finishNode(pb, &ast.SpreadElement{Type: "SpreadElement", Argument: arg}))
		} else {
			props = append(props, p.parseObjectProperty())
		}
		if !p.curIs(token.RBRACE) {
			p.expect(token.COMMA)
		}
	}
	p.expect(token.RBRACE)
	return p.finishNode(b, &ast.ObjectExpression{Type: "ObjectExpression", Properties: props})
}

func (p *Parser) parseObjectProperty() ast.Node {
	b := p.startNode()
	computed := false
	var key ast.Node
	kind := "init"
	isGetSet := (p.cur().Value == "get" || p.cur().Value == "set") && p.curIs(token.NAME) && !p.peekIs(1, token.COMMA) && !p.peekIs(1, token.RBRACE) && !p.peekIs(1, token.COLON) && !p.peekIs(1, token.LPAREN)
	if isGetSet {
		kind = p.cur().Value
		p.next()
	}
	if p.curIs(token.LBRACK) {
		computed = true
		key = p.parsePropertyName(true)
	} else {
		key = p.parsePropertyName(false)
	}
	if kind != "init" {
		fn := p.parseFunctionTail(false, false)
		return p.finishNode(b, &ast.Property{Type: "Property", Key: key, Value: fn, Kind: kind, Computed: computed, Method: false})
	}
	if p.curIs(token.LPAREN) {
		fn := p.parseFunctionTail(false, false)
		return p.finishNode(b, &ast.Property{Type: "Property", Key: key, Value: fn, Kind: "init", Computed: computed, Method: true})
	}
	if p.curIs(token.COLON) {
		p.next()
		val := p.parseAssign()
		return p.finishNode(b, &ast.Property{Type: "Property", Key: key, Value: val, Kind: "init", Computed: computed})
	}
	// shorthand: {a}, {a = 1} (pattern-only, recorded for later validation)
	if p.curIs(token.EQ) {
		eqStart := p.cur().Start
		p.next()
		def := p.parseAssign()
		if p.destructuring != nil && p.destructuring.ShorthandAssign < 0 {
			p.destructuring.ShorthandAssign = eqStart
		}
		idKey := key.(*ast.Identifier)
		val := &ast.AssignmentPattern{Type: "AssignmentPattern", Left: idKey, Right: def}
		return p.finishNode(b, &ast.Property{Type: "Property", Key: key, Value: val, Kind: "init", Shorthand: true})
	}
	return p.finishNode(b, &ast.Property{Type: "Property", Key: key, Value: key, Kind: "init", Shorthand: true})
}

func (p *Parser) parseFunctionExpression(async bool) ast.Node {
	b := p.startNode()
	p.next() // function
	generator := false
	if p.curIs(token.STAR) {
		p.next()
		generator = true
	}
	var id *ast.Identifier
	if p.curIs(token.NAME) {
		tok := p.cur()
		p.next()
		id = &ast.Identifier{BaseNode: baseNodeFromTok(tok), Type: "Identifier", Name: tok.Value}
	}
	fn := p.parseFunctionTail(generator, async)
	fe := fn.(*ast.FunctionExpression)
	fe.ID = id
	return p.finishNode(b, fe)
}

// parseFunctionTail parses `(params) { body }` shared by function
// expressions/declarations and object/class methods.
func (p *Parser) parseFunctionTail(generator, async bool) ast.Node {
	b := p.startNode()
	params, nonSimple := p.parseParams()
	wasGen, wasAsync, wasFn, wasStrict := p.inGenerator, p.inAsync, p.inFunction, p.strict
	p.inGenerator, p.inAsync, p.inFunction = generator, async, true
	body, becameStrict := p.parseFunctionBody()
	if becameStrict && !nonSimple {
		p.checkParamUniqueness(params, true)
	}
	p.inGenerator, p.inAsync, p.inFunction, p.strict = wasGen, wasAsync, wasFn, wasStrict
	return p.finishNode(b, &ast.FunctionExpression{Type: "FunctionExpression", Params: params, Body: body, Generator: generator, Async: async})
}

// parseParams parses a parameter list and validates name uniqueness: strict
// mode and any non-simple parameter (rest, default, destructuring) in the
// list both force every name in it to be unique, matching sloppy-mode
// functions with an all-identifier parameter list being the only case that
// may repeat a name. The second return value reports whether the list was
// non-simple, so a caller that later discovers its body is strict (its own
// "use strict" directive) knows whether it still needs to re-check.
func (p *Parser) parseParams() (params []ast.Node, nonSimple bool) {
	p.expect(token.LPAREN)
	for !p.curIs(token.RPAREN) {
		var param ast.Node
		if p.curIs(token.ELLIPSIS) {
			b := p.startNode()
			p.next()
			target := p.parseBindingTarget()
			param = p.finishNode(b, &ast.RestElement{Type: "RestElement", Argument: target})
			nonSimple = true
		} else {
			param = p.parseBindingTarget()
			if _, simple := param.(*ast.Identifier); !simple {
				nonSimple = true
			}
			if p.curIs(token.EQ) {
				b := ast.NewBuilder(param.Pos())
				p.next()
				def := p.parseAssign()
				param = p.finishNode(b, &ast.AssignmentPattern{Type: "AssignmentPattern", Left: param, Right: def})
				nonSimple = true
			}
		}
		params = append(params, param)
		if !p.curIs(token.RPAREN) {
			p.expect(token.COMMA)
		}
	}
	p.expect(token.RPAREN)
	p.checkParamUniqueness(params, p.strict || nonSimple)
	return params, nonSimple
}

// checkParamUniqueness re-walks params reporting any repeated binding name
// when mustBeUnique is true; called once up front by parseParams and again
// by a caller whose body turned out to carry its own "use strict" directive.
func (p *Parser) checkParamUniqueness(params []ast.Node, mustBeUnique bool) {
	seen := map[string]bool{}
	for _, param := range params {
		scope.CheckLValPattern(param, func(name string, start, end int) {
			if conflict := scope.DeclareParam(seen, name, mustBeUnique); conflict != nil {
				p.addError(start, end, ErrDuplicateParam, "duplicate parameter name '"+name+"'")
			}
		})
	}
}

// parseBindingTarget parses a single binding target: an identifier or a
// destructuring pattern, used for parameters, catch clauses, and
// let/const/var declarators.
func (p *Parser) parseBindingTarget() ast.Node {
	switch {
	case p.curIs(token.LBRACK):
		return p.parseArrayPattern()
	case p.curIs(token.LBRACE):
		return p.parseObjectPattern()
	default:
		tok := p.cur()
		name := p.expectIdentifier()
		return &ast.Identifier{BaseNode: baseNodeFromTok(tok), Type: "Identifier", Name: name}
	}
}

func (p *Parser) parseArrayPattern() ast.Node {
	b := p.startNode()
	p.next() // '['
	var elements []ast.Node
	for !p.curIs(token.RBRACK) {
		if p.curIs(token.COMMA) {
			elements = append(elements, nil)
			p.next()
			continue
		}
		var el ast.Node
		if p.curIs(token.ELLIPSIS) {
			eb := p.startNode()
			p.next()
			el = p.finishNode(eb, &ast.RestElement{Type: "RestElement", Argument: p.parseBindingTarget()})
		} else {
			el = p.parseBindingTarget()
			if p.curIs(token.EQ) {
				eb := ast.NewBuilder(el.Pos())
				p.next()
				def := p.parseAssign()
				el = p.finishNode(eb, &ast.AssignmentPattern{Type: "AssignmentPattern", Left: el, Right: def})
			}
		}
		elements = append(elements, el)
		if !p.curIs(token.RBRACK) {
			p.expect(token.COMMA)
		}
	}
	p.expect(token.RBRACK)
	return p.finishNode(b, &ast.ArrayPattern{Type: "ArrayPattern", Elements: elements})
}

func (p *Parser) parseObjectPattern() ast.Node {
	b := p.startNode()
	p.next() // '{'
	var props []ast.Node
	for !p.curIs(token.RBRACE) {
		if p.curIs(token.ELLIPSIS) {
			eb := p.startNode()
			p.next()
			props = append(props, p.finishNode(eb, &ast.RestElement{Type: "RestElement", Argument: p.parseBindingTarget()}))
		} else {
			pb := p.startNode()
			computed := false
			var key ast.Node
			if p.curIs(token.LBRACK) {
				computed = true
				key = p.parsePropertyName(true)
			} else {
				key = p.parsePropertyName(false)
			}
			var val ast.Node
			shorthand := false
			if p.curIs(token.COLON) {
				p.next()
				val = p.parseBindingTarget()
			} else {
				shorthand = true
				val = key
			}
			if p.curIs(token.EQ) {
				vb := ast.NewBuilder(val.Pos())
				p.next()
				def := p.parseAssign()
				val = p.finishNode(vb, &ast.AssignmentPattern{Type: "AssignmentPattern", Left: val, Right: def})
			}
			props = append(props, p.finishNode(pb, &ast.Property{Type: "Property", Key: key, Value: val, Kind: "init", Computed: computed, Shorthand: shorthand}))
		}
		if !p.curIs(token.RBRACE) {
			p.expect(token.COMMA)
		}
	}
	p.expect(token.RBRACE)
	return p.finishNode(b, &ast.ObjectPattern{Type: "ObjectPattern", Properties: props})
}

func (p *Parser) parseClassExpression() ast.Node {
	decl := p.parseClassTail()
	ce := decl.(*ast.ClassDeclaration)
	return &ast.ClassExpression{BaseNode: ce.BaseNode, Type: "ClassExpression", ID: ce.ID, SuperClass: ce.SuperClass, Body: ce.Body}
}

func (p *Parser) parseTemplateLiteral(tagged bool) *ast.TemplateLiteral {
	b := p.startNode()
	var quasis []*ast.TemplateElement
	var exprs []ast.Node
	for {
		tok := p.cur()
		el := p.lex.LastTemplateElement()
		if !el.CookedValid && !tagged {
			p.addError(tok.Start, tok.End, ErrInvalidExpression, "bad escape sequence in untagged template literal")
		}
		quasis = append(quasis, &ast.TemplateElement{
			BaseNode: baseNodeFromTok(tok),
			Type:     "TemplateElement",
			Value:    ast.TemplateElementValue{Cooked: el.Cooked, Raw: el.Raw},
			Tail:     el.Tail,
		})
		if el.Tail {
			p.next()
			break
		}
		p.next()
		exprs = append(exprs, p.ParseExpression())
		if !p.curIs(token.RBRACE) {
			p.expect(token.RBRACE)
			break
		}
		closeEnd := p.cur().End
		p.lastEnd = closeEnd
		tok = p.lex.ReadTemplateContinuation(closeEnd)
		p.cursor = &Cursor{lex: p.lex, tokens: []token.Token{tok}}
	}
	return p.finishNode(b, &ast.TemplateLiteral{Type: "TemplateLiteral", Expressions: exprs, Quasis: quasis}).(*ast.TemplateLiteral)
}
