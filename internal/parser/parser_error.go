package parser

import (
	"fmt"

	"github.com/labs-lang/sliver/internal/ast"
	"github.com/labs-lang/sliver/internal/errors"
	"github.com/labs-lang/sliver/internal/lexer"
)

// ParserError is a structured parse-time error, carrying the error
// code taxonomy from internal/errors so it can be round-tripped
// through the JSON diagnostic encoder.
type ParserError struct {
	Code    string
	Message string
	Pos     ast.Pos
	Near    lexer.Token
}

func (e *ParserError) Error() string {
	return fmt.Sprintf("%s at %s: %s", e.Code, e.Pos, e.Message)
}

// AsReport converts the parser error into the package-wide *errors.Report.
func (e *ParserError) AsReport() *errors.Report {
	return errors.New(e.Code, e.Message, map[string]any{
		"near": e.Near.Literal,
	}).WithSpan(ast.Span{Start: e.Pos, End: e.Pos})
}

func (p *Parser) report(code, message string) {
	p.errors = append(p.errors, &ParserError{
		Code:    code,
		Message: message,
		Pos:     p.curPos(),
		Near:    p.curToken,
	})
}

func (p *Parser) peekError(t lexer.TokenType) {
	msg := fmt.Sprintf("expected next token to be %s, got %s instead", t, p.peekToken.Type)
	p.errors = append(p.errors, &ParserError{
		Code:    "PROP005",
		Message: msg,
		Pos:     ast.Pos{Line: p.peekToken.Line, Column: p.peekToken.Column, File: p.peekToken.File},
		Near:    p.peekToken,
	})
}

func (p *Parser) noPrefixParseFnError(t lexer.TokenType) {
	msg := fmt.Sprintf("unexpected token in expression: %s", t)
	p.errors = append(p.errors, &ParserError{
		Code:    "PROP005",
		Message: msg,
		Pos:     p.curPos(),
		Near:    p.curToken,
	})
}
