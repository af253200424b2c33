package parser

import (
	"strconv"

	"github.com/deepnoodle-ai/optchain/ast"
	"github.com/deepnoodle-ai/optchain/internal/token"
)

func (p *Parser) parseInt() ast.Node {
	tok := p.curToken
	value, err := strconv.ParseInt(tok.Literal, 10, 64)
	if err != nil {
		p.setTokenError(tok, "could not parse %q as an integer", tok.Literal)
		return nil
	}
	return &ast.Int{ValuePos: tok.StartPosition, Literal: tok.Literal, Value: value}
}

func (p *Parser) parseFloat() ast.Node {
	tok := p.curToken
	value, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		p.setTokenError(tok, "could not parse %q as a float", tok.Literal)
		return nil
	}
	return &ast.Float{ValuePos: tok.StartPosition, Literal: tok.Literal, Value: value}
}

func (p *Parser) parseString() ast.Node {
	return &ast.String{ValuePos: p.curToken.StartPosition, Value: p.curToken.Literal}
}

func (p *Parser) parseBool() ast.Node {
	tok := p.curToken
	return &ast.Bool{
		ValuePos: tok.StartPosition,
		Literal:  tok.Literal,
		Value:    tok.Type == token.TRUE,
	}
}

func (p *Parser) parseNull() ast.Node {
	return &ast.Null{NullPos: p.curToken.StartPosition}
}

func (p *Parser) parseList() ast.Node {
	lbrack := p.curToken.StartPosition
	items, ok := p.parseExprList(token.RBRACKET)
	if !ok {
		return nil
	}
	rbrack := p.curToken.StartPosition
	return &ast.List{Lbrack: lbrack, Items: items, Rbrack: rbrack}
}
