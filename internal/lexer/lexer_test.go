package lexer

import "testing"

func TestNextToken(t *testing.T) {
	input := `finally forall Proc p, exists Loc l,
  (x[1] of p > 0 and not (y of l = 0)) or id != 3 <= 4 >= 5`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{FINALLY, "finally"},
		{FORALL, "forall"},
		{IDENT, "Proc"},
		{IDENT, "p"},
		{COMMA, ","},
		{EXISTS, "exists"},
		{IDENT, "Loc"},
		{IDENT, "l"},
		{COMMA, ","},
		{LPAREN, "("},
		{IDENT, "x"},
		{LBRACKET, "["},
		{INT, "1"},
		{RBRACKET, "]"},
		{OF, "of"},
		{IDENT, "p"},
		{GT, ">"},
		{INT, "0"},
		{AND, "and"},
		{NOT, "not"},
		{LPAREN, "("},
		{IDENT, "y"},
		{OF, "of"},
		{IDENT, "l"},
		{EQ, "="},
		{INT, "0"},
		{RPAREN, ")"},
		{RPAREN, ")"},
		{OR, "or"},
		{ID, "id"},
		{NEQ, "!="},
		{INT, "3"},
		{LE, "<="},
		{INT, "4"},
		{GE, ">="},
		{INT, "5"},
		{EOF, ""},
	}

	l := New(input, "test.prop")

	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%s, got=%s (literal %q)",
				i, tt.expectedType, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestNextTokenBuiltins(t *testing.T) {
	input := `abs(-1) max(a, b) min(a, b) true false`
	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{ABS, "abs"},
		{LPAREN, "("},
		{MINUS, "-"},
		{INT, "1"},
		{RPAREN, ")"},
		{MAX, "max"},
		{LPAREN, "("},
		{IDENT, "a"},
		{COMMA, ","},
		{IDENT, "b"},
		{RPAREN, ")"},
		{MIN, "min"},
		{LPAREN, "("},
		{IDENT, "a"},
		{COMMA, ","},
		{IDENT, "b"},
		{RPAREN, ")"},
		{TRUE, "true"},
		{FALSE, "false"},
		{EOF, ""},
	}

	l := New(input, "test.prop")
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType || tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - got=%s(%q), want=%s(%q)", i, tok.Type, tok.Literal, tt.expectedType, tt.expectedLiteral)
		}
	}
}

func TestNextTokenPosition(t *testing.T) {
	l := New("always\nx of a", "foo.prop")
	tok := l.NextToken()
	if tok.Line != 1 || tok.Column != 1 {
		t.Fatalf("expected 1:1, got %d:%d", tok.Line, tok.Column)
	}
	tok = l.NextToken() // x
	if tok.Line != 2 {
		t.Fatalf("expected line 2 for second token, got %d", tok.Line)
	}
}

func TestLookupIdentAndReserved(t *testing.T) {
	if LookupIdent("forall") != FORALL {
		t.Error("forall should lex as FORALL")
	}
	if LookupIdent("myvar") != IDENT {
		t.Error("myvar should lex as IDENT")
	}
	if !IsReserved("and") {
		t.Error("and should be reserved")
	}
	if IsReserved("counter") {
		t.Error("counter should not be reserved")
	}
}

func TestIllegalToken(t *testing.T) {
	l := New("x @ y", "test.prop")
	l.NextToken() // x
	tok := l.NextToken()
	if tok.Type != ILLEGAL {
		t.Fatalf("expected ILLEGAL for '@', got %s", tok.Type)
	}
}
