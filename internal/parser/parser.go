// Package parser implements a Pratt parser for SLiVER temporal
// properties, turning a token stream from internal/lexer into the
// tagged-variant AST of internal/ast.
package parser

import (
	"unicode"

	"github.com/labs-lang/sliver/internal/ast"
	"github.com/labs-lang/sliver/internal/lexer"
)

// Parser parses a single property string into an *ast.Prop.
type Parser struct {
	l         *lexer.Lexer
	curToken  lexer.Token
	peekToken lexer.Token
	errors    []error

	prefixParseFns map[lexer.TokenType]prefixParseFn
	infixParseFns  map[lexer.TokenType]infixParseFn
}

type (
	prefixParseFn func() ast.Node
	infixParseFn  func(ast.Node) ast.Node
)

// Precedence levels, loosest to tightest. "and" and "or" share a
// single left-associative level per the BExpr grammar; "%" binds
// tighter than "*"/"/", matching atlas.py's infixNotation order.
const (
	LOWEST int = iota
	BOOL       // and, or
	COMPARE    // > < = >= <= !=
	SUM        // + -
	PRODUCT    // * /
	MOD        // %
	PREFIX     // not x, -x
	CALL       // f(...)
)

var precedences = map[lexer.TokenType]int{
	lexer.OR:      BOOL,
	lexer.AND:     BOOL,
	lexer.GT:      COMPARE,
	lexer.LT:      COMPARE,
	lexer.EQ:      COMPARE,
	lexer.GE:      COMPARE,
	lexer.LE:      COMPARE,
	lexer.NEQ:     COMPARE,
	lexer.PLUS:    SUM,
	lexer.MINUS:   SUM,
	lexer.STAR:    PRODUCT,
	lexer.SLASH:   PRODUCT,
	lexer.PERCENT: MOD,
}

// New creates a Parser reading tokens from l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l, errors: []error{}}

	p.prefixParseFns = make(map[lexer.TokenType]prefixParseFn)
	p.registerPrefix(lexer.IDENT, p.parseOfExpr)
	p.registerPrefix(lexer.INT, p.parseIntLit)
	p.registerPrefix(lexer.TRUE, p.parseBoolLit)
	p.registerPrefix(lexer.FALSE, p.parseBoolLit)
	p.registerPrefix(lexer.ID, p.parseIDLit)
	p.registerPrefix(lexer.MINUS, p.parsePrefixMinus)
	p.registerPrefix(lexer.NOT, p.parseNot)
	p.registerPrefix(lexer.ABS, p.parseBuiltInCall)
	p.registerPrefix(lexer.MAX, p.parseBuiltInCall)
	p.registerPrefix(lexer.MIN, p.parseBuiltInCall)
	p.registerPrefix(lexer.LPAREN, p.parseGrouped)

	p.infixParseFns = make(map[lexer.TokenType]infixParseFn)
	for _, tt := range []lexer.TokenType{
		lexer.OR, lexer.AND,
		lexer.GT, lexer.LT, lexer.EQ, lexer.GE, lexer.LE, lexer.NEQ,
		lexer.PLUS, lexer.MINUS, lexer.STAR, lexer.SLASH, lexer.PERCENT,
	} {
		p.registerInfix(tt, p.parseInfix)
	}

	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) registerPrefix(tt lexer.TokenType, fn prefixParseFn) {
	p.prefixParseFns[tt] = fn
}

func (p *Parser) registerInfix(tt lexer.TokenType, fn infixParseFn) {
	p.infixParseFns[tt] = fn
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curPos() ast.Pos {
	return ast.Pos{Line: p.curToken.Line, Column: p.curToken.Column, File: p.curToken.File}
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekToken.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.curToken.Type]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) expectPeek(tt lexer.TokenType) bool {
	if p.peekToken.Type == tt {
		p.nextToken()
		return true
	}
	p.peekError(tt)
	return false
}

// Errors returns the accumulated parse errors.
func (p *Parser) Errors() []error {
	return p.errors
}

// ParseProperty parses a complete property: a modality applied to a
// (possibly quantified) body. It is the package's single entry point.
func ParseProperty(src, filename string) (*ast.Prop, []error) {
	l := lexer.New(string(lexer.Normalize([]byte(src))), filename)
	p := New(l)
	prop := p.parseProp()
	return prop, p.errors
}

func (p *Parser) parseProp() *ast.Prop {
	pos := p.curPos()

	if !p.curToken.IsModality() {
		p.report("PROP001", "a property must begin with a modality (always, finally, fairly, fairly_inf)")
		return nil
	}
	modality := ast.Modality(p.curToken.Literal)
	p.nextToken()

	body := p.parseQuant()
	if body == nil {
		return nil
	}

	return &ast.Prop{Modality: modality, Quant: body, Pos: pos}
}

// parseQuant parses zero or more leading quantifiers, then the
// quantifier-free boolean body.
func (p *Parser) parseQuant() ast.Node {
	if p.curToken.Type == lexer.FORALL || p.curToken.Type == lexer.EXISTS {
		pos := p.curPos()
		kind := ast.Forall
		if p.curToken.Type == lexer.EXISTS {
			kind = ast.Exists
		}
		p.nextToken()

		if p.curToken.Type != lexer.IDENT || !startsUpper(p.curToken.Literal) {
			p.report("PROP002", "expected a capitalized agent type name after the quantifier")
			return nil
		}
		typeName := p.curToken.Literal
		p.nextToken()

		if p.curToken.Type != lexer.IDENT || !startsLower(p.curToken.Literal) {
			p.report("PROP002", "expected a lowercase bound variable name")
			return nil
		}
		varName := p.curToken.Literal
		p.nextToken()

		if !p.curTokenIs(lexer.COMMA) {
			p.report("PROP002", "expected ',' after the quantifier binding")
			return nil
		}
		p.nextToken()

		inner := p.parseQuant()
		if inner == nil {
			return nil
		}

		return &ast.Quant{Kind: kind, TypeName: typeName, VarName: varName, Inner: inner, Pos: pos}
	}

	return p.parseExpression(LOWEST)
}

func (p *Parser) curTokenIs(tt lexer.TokenType) bool {
	return p.curToken.Type == tt
}

func startsUpper(s string) bool {
	r := []rune(s)
	return len(r) > 0 && unicode.IsUpper(r[0])
}

func startsLower(s string) bool {
	r := []rune(s)
	return len(r) > 0 && unicode.IsLower(r[0])
}
