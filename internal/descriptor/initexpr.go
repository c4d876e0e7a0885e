package descriptor

import (
	"fmt"

	"github.com/labs-lang/sliver/internal/lexer"
)

// evalInit evaluates a variable's init expression to an integer,
// mirroring the reference translator's tiny AST-walking evaluator.
// The only free identifier permitted is "id", which resolves to the
// variable's own index — not the owning agent's id.
func evalInit(expr string, selfIndex int) (int, error) {
	ev := &initEvaluator{l: lexer.New(expr, "initexpr"), selfIndex: selfIndex}
	ev.next()
	ev.next()
	v, err := ev.parseExpr()
	if err != nil {
		return 0, err
	}
	if ev.cur.Type != lexer.EOF {
		return 0, fmt.Errorf("unexpected trailing token %q in init expression %q", ev.cur.Literal, expr)
	}
	return v, nil
}

type initEvaluator struct {
	l         *lexer.Lexer
	cur, peek lexer.Token
	selfIndex int
}

func (e *initEvaluator) next() {
	e.cur = e.peek
	e.peek = e.l.NextToken()
}

func (e *initEvaluator) parseExpr() (int, error) {
	v, err := e.parseTerm()
	if err != nil {
		return 0, err
	}
	for e.cur.Type == lexer.PLUS || e.cur.Type == lexer.MINUS {
		op := e.cur.Type
		e.next()
		rhs, err := e.parseTerm()
		if err != nil {
			return 0, err
		}
		if op == lexer.PLUS {
			v += rhs
		} else {
			v -= rhs
		}
	}
	return v, nil
}

func (e *initEvaluator) parseTerm() (int, error) {
	v, err := e.parseFactor()
	if err != nil {
		return 0, err
	}
	for e.cur.Type == lexer.STAR || e.cur.Type == lexer.SLASH || e.cur.Type == lexer.PERCENT {
		op := e.cur.Type
		e.next()
		rhs, err := e.parseFactor()
		if err != nil {
			return 0, err
		}
		switch op {
		case lexer.STAR:
			v *= rhs
		case lexer.SLASH:
			v = floorDiv(v, rhs)
		case lexer.PERCENT:
			v = floorMod(v, rhs)
		}
	}
	return v, nil
}

func (e *initEvaluator) parseFactor() (int, error) {
	switch e.cur.Type {
	case lexer.MINUS:
		e.next()
		v, err := e.parseFactor()
		return -v, err
	case lexer.PLUS:
		e.next()
		return e.parseFactor()
	case lexer.INT:
		v := 0
		for _, c := range e.cur.Literal {
			v = v*10 + int(c-'0')
		}
		e.next()
		return v, nil
	case lexer.ID:
		e.next()
		return e.selfIndex, nil
	case lexer.ABS:
		e.next()
		if e.cur.Type != lexer.LPAREN {
			return 0, fmt.Errorf("expected '(' after abs")
		}
		e.next()
		v, err := e.parseExpr()
		if err != nil {
			return 0, err
		}
		if e.cur.Type != lexer.RPAREN {
			return 0, fmt.Errorf("expected ')' to close abs(...)")
		}
		e.next()
		if v < 0 {
			return -v, nil
		}
		return v, nil
	case lexer.LPAREN:
		e.next()
		v, err := e.parseExpr()
		if err != nil {
			return 0, err
		}
		if e.cur.Type != lexer.RPAREN {
			return 0, fmt.Errorf("expected ')'")
		}
		e.next()
		return v, nil
	default:
		return 0, fmt.Errorf("unexpected token %q in init expression", e.cur.Literal)
	}
}

// floorDiv implements Python-style floor division: the quotient is
// rounded towards negative infinity, not towards zero.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// floorMod implements Python-style modulo: the result takes the sign
// of the divisor, matching the reference translator's evaluator.
func floorMod(a, b int) int {
	m := a % b
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return m
}
