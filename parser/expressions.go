package parser

import (
	"github.com/deepnoodle-ai/optchain/ast"
	"github.com/deepnoodle-ai/optchain/internal/token"
)

// Expression parsing methods for the Parser.

func (p *Parser) parseIdent() ast.Node {
	if p.curToken.Literal == "" {
		p.setTokenError(p.curToken, "invalid identifier")
		return nil
	}
	ident := p.newIdent(p.curToken)

	// Check for single-param arrow function: x => expr
	if p.peekTokenIs(token.ARROW) {
		if err := p.nextToken(); err != nil { // move to '=>'
			return nil
		}
		return p.parseArrowBody(ident.NamePos, []*ast.Ident{ident})
	}

	return ident
}

func (p *Parser) parsePrefixExpr() ast.Node {
	opPos := p.curToken.StartPosition
	op := p.curToken.Literal
	if err := p.nextToken(); err != nil {
		return nil
	}
	right := p.parseExpression(PREFIX)
	if right == nil {
		p.setTokenError(p.curToken, "invalid prefix expression")
		return nil
	}
	return &ast.Prefix{OpPos: opPos, Op: op, X: right}
}

func (p *Parser) parseInfixExpr(leftNode ast.Node) ast.Node {
	left, ok := leftNode.(ast.Expr)
	if !ok {
		p.setTokenError(p.curToken, "invalid expression")
		return nil
	}
	opPos := p.curToken.StartPosition
	op := p.curToken.Literal
	precedence := p.currentPrecedence()
	if err := p.nextToken(); err != nil {
		return nil
	}
	// Trailing operators continue expressions across newlines
	p.eatNewlines()
	right := p.parseExpression(precedence)
	if right == nil {
		p.setTokenError(p.curToken, "invalid expression")
		return nil
	}
	return &ast.Infix{X: left, OpPos: opPos, Op: op, Y: right}
}

func (p *Parser) parseTernary(condNode ast.Node) ast.Node {
	cond, ok := condNode.(ast.Expr)
	if !ok {
		p.setTokenError(p.curToken, "invalid ternary expression")
		return nil
	}
	question := p.curToken.StartPosition
	if err := p.nextToken(); err != nil {
		return nil
	}
	p.eatNewlines()
	ifTrue := p.parseExpression(LOWEST)
	if ifTrue == nil {
		return nil
	}
	if !p.expectPeek("a ternary expression", token.COLON) {
		return nil
	}
	colon := p.curToken.StartPosition
	if err := p.nextToken(); err != nil {
		return nil
	}
	p.eatNewlines()
	ifFalse := p.parseExpression(LOWEST)
	if ifFalse == nil {
		return nil
	}
	return &ast.Ternary{
		Cond:     cond,
		Question: question,
		IfTrue:   ifTrue,
		Colon:    colon,
		IfFalse:  ifFalse,
	}
}

func (p *Parser) parseGroupedExpr() ast.Node {
	openParen := p.curToken.StartPosition
	if err := p.nextToken(); err != nil { // move past '('
		return nil
	}
	p.eatNewlines()

	// Check for empty params arrow function: () => ...
	if p.curTokenIs(token.RPAREN) {
		if p.peekTokenIs(token.ARROW) {
			p.nextToken() // move to '=>'
			return p.parseArrowBody(openParen, nil)
		}
		p.setTokenError(p.curToken, "empty parentheses require arrow function syntax")
		return nil
	}

	first := p.parseExpression(LOWEST)
	if first == nil {
		return nil
	}
	items := []ast.Expr{first}

	// A comma means this must be an arrow function parameter list
	for p.peekTokenIs(token.COMMA) {
		p.nextToken() // move to ','
		if err := p.nextToken(); err != nil {
			return nil
		}
		p.eatNewlines()
		item := p.parseExpression(LOWEST)
		if item == nil {
			return nil
		}
		items = append(items, item)
	}

	if !p.expectPeek("a grouped expression", token.RPAREN) {
		return nil
	}

	// Check for arrow function
	if p.peekTokenIs(token.ARROW) {
		p.nextToken() // move to '=>'
		params := make([]*ast.Ident, 0, len(items))
		for _, item := range items {
			ident, ok := item.(*ast.Ident)
			if !ok {
				p.setTokenError(p.curToken, "invalid arrow function parameter")
				return nil
			}
			params = append(params, ident)
		}
		return p.parseArrowBody(openParen, params)
	}

	// Not an arrow function - must be a single grouped expression
	if len(items) > 1 {
		p.setTokenError(p.curToken,
			"comma-separated expressions require arrow function syntax: (x, y) => ...")
		return nil
	}
	return first
}

// parseArrowBody parses the expression body of an arrow function.
// The current token is the '=>' operator.
func (p *Parser) parseArrowBody(lparen token.Position, params []*ast.Ident) ast.Node {
	arrowPos := p.curToken.StartPosition
	if err := p.nextToken(); err != nil { // move past '=>'
		return nil
	}
	p.eatNewlines()
	body := p.parseExpression(LOWEST)
	if body == nil {
		p.setTokenError(p.curToken, "invalid arrow function body")
		return nil
	}
	return &ast.Arrow{Lparen: lparen, Params: params, Arrow: arrowPos, Body: body}
}

func (p *Parser) parseCall(funNode ast.Node) ast.Node {
	fun, ok := funNode.(ast.Expr)
	if !ok {
		p.setTokenError(p.curToken, "invalid call expression")
		return nil
	}
	lparen := p.curToken.StartPosition
	args, ok := p.parseExprList(token.RPAREN)
	if !ok {
		return nil
	}
	rparen := p.curToken.StartPosition
	return &ast.Call{Fun: fun, Lparen: lparen, Args: args, Rparen: rparen}
}

// parseExprList parses a comma-separated expression list. The current token
// is the opening delimiter; on success the current token is the closing one.
func (p *Parser) parseExprList(end token.Type) ([]ast.Expr, bool) {
	var list []ast.Expr
	if p.peekTokenIs(end) {
		p.nextToken()
		return list, true
	}
	if err := p.nextToken(); err != nil {
		return nil, false
	}
	p.eatNewlines()
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil, false
	}
	list = append(list, expr)
	for p.peekTokenIs(token.COMMA) {
		p.nextToken() // move to ','
		if err := p.nextToken(); err != nil {
			return nil, false
		}
		p.eatNewlines()
		expr = p.parseExpression(LOWEST)
		if expr == nil {
			return nil, false
		}
		list = append(list, expr)
	}
	if !p.expectPeek("an expression list", end) {
		return nil, false
	}
	return list, true
}

func (p *Parser) parseIndex(leftNode ast.Node) ast.Node {
	left, ok := leftNode.(ast.Expr)
	if !ok {
		p.setTokenError(p.curToken, "invalid index expression")
		return nil
	}
	lbrack := p.curToken.StartPosition
	if err := p.nextToken(); err != nil { // move to the index expression
		return nil
	}
	index := p.parseExpression(LOWEST)
	if index == nil {
		return nil
	}
	if !p.expectPeek("an index expression", token.RBRACKET) {
		return nil
	}
	rbrack := p.curToken.StartPosition
	return &ast.Index{X: left, Lbrack: lbrack, Index: index, Rbrack: rbrack}
}

func (p *Parser) parseGetAttr(objNode ast.Node) ast.Node {
	obj, ok := objNode.(ast.Expr)
	if !ok {
		p.setTokenError(p.curToken, "invalid attribute expression")
		return nil
	}
	period := p.curToken.StartPosition
	if err := p.nextToken(); err != nil {
		return nil
	}
	p.eatNewlines()
	if !p.curTokenIs(token.IDENT) {
		p.setTokenError(p.curToken, "expected an identifier after %q", ".")
		return nil
	}
	name := p.newIdent(p.curToken)
	return &ast.GetAttr{X: obj, Period: period, Attr: name}
}
