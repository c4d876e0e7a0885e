package parser

import (
	"strconv"

	"github.com/labs-lang/sliver/internal/ast"
	"github.com/labs-lang/sliver/internal/lexer"
)

func (p *Parser) parseExpression(precedence int) ast.Node {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken.Type)
		return nil
	}
	leftExp := prefix()

	for leftExp != nil && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}
		p.nextToken()
		leftExp = infix(leftExp)
	}

	return leftExp
}

func (p *Parser) parseInfix(left ast.Node) ast.Node {
	pos := p.curPos()
	op := p.curToken.Literal
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	return &ast.BinOp{LHS: left, Op: op, RHS: right, Pos: pos}
}

func (p *Parser) parseIntLit() ast.Node {
	pos := p.curPos()
	v, err := strconv.Atoi(p.curToken.Literal)
	if err != nil {
		p.report("PROP004", "invalid integer literal "+p.curToken.Literal)
		return nil
	}
	return &ast.IntLit{Value: v, Pos: pos}
}

func (p *Parser) parsePrefixMinus() ast.Node {
	pos := p.curPos()
	p.nextToken()
	operand := p.parseExpression(PREFIX)
	if operand == nil {
		return nil
	}
	if lit, ok := operand.(*ast.IntLit); ok {
		return &ast.IntLit{Value: -lit.Value, Pos: pos}
	}
	return &ast.BinOp{LHS: &ast.IntLit{Value: 0, Pos: pos}, Op: "-", RHS: operand, Pos: pos}
}

func (p *Parser) parseBoolLit() ast.Node {
	return &ast.Ident{Name: p.curToken.Literal, Pos: p.curPos()}
}

func (p *Parser) parseIDLit() ast.Node {
	return &ast.Ident{Name: "id", Pos: p.curPos()}
}

func (p *Parser) parseNot() ast.Node {
	pos := p.curPos()
	p.nextToken()
	operand := p.parseExpression(PREFIX)
	if operand == nil {
		return nil
	}
	return &ast.BuiltIn{Fn: "not", Args: []ast.Node{operand}, Pos: pos}
}

func (p *Parser) parseBuiltInCall() ast.Node {
	pos := p.curPos()
	fn := p.curToken.Literal

	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}
	p.nextToken()

	args := []ast.Node{}
	first := p.parseExpression(LOWEST)
	if first == nil {
		return nil
	}
	args = append(args, first)

	for p.peekToken.Type == lexer.COMMA {
		p.nextToken()
		p.nextToken()
		arg := p.parseExpression(LOWEST)
		if arg == nil {
			return nil
		}
		args = append(args, arg)
	}

	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}

	return &ast.BuiltIn{Fn: fn, Args: args, Pos: pos}
}

func (p *Parser) parseGrouped() ast.Node {
	p.nextToken()
	exp := p.parseExpression(LOWEST)
	if exp == nil {
		return nil
	}
	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}
	return exp
}

// parseOfExpr parses the two forms of variable reference:
// VarName "of" VarName, and VarName "[" Expr "]" "of" VarName.
func (p *Parser) parseOfExpr() ast.Node {
	pos := p.curPos()
	if lexer.IsReserved(p.curToken.Literal) {
		p.report("PROP003", "reserved word used as identifier: "+p.curToken.Literal)
		return nil
	}
	varName := p.curToken.Literal

	var offset ast.Node
	if p.peekToken.Type == lexer.LBRACKET {
		p.nextToken()
		p.nextToken()
		offset = p.parseExpression(LOWEST)
		if offset == nil {
			return nil
		}
		if !p.expectPeek(lexer.RBRACKET) {
			return nil
		}
	}

	if !p.expectPeek(lexer.OF) {
		return nil
	}
	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	agent := p.curToken.Literal

	return &ast.Of{Var: varName, Offset: offset, Agent: agent, Pos: pos}
}
