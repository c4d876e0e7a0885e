package elim

import (
	"testing"

	"github.com/labs-lang/sliver/internal/ast"
	"github.com/labs-lang/sliver/internal/descriptor"
	"github.com/labs-lang/sliver/internal/parser"
)

func mustSpawn(t *testing.T, blob string) *descriptor.Spawn {
	t.Helper()
	info, err := descriptor.Parse(blob)
	if err != nil {
		t.Fatalf("descriptor.Parse failed: %v", err)
	}
	return info.Spawn
}

// twoTypeBlob declares agent type A with ids {0,1} and B with id {2},
// each with a single interface variable "x".
const twoTypeBlob = "|A 0,2|0=x=0||B 2,3|0=x=0||x"

func TestEliminateNestedForallExists(t *testing.T) {
	spawn := mustSpawn(t, twoTypeBlob)

	prop, errs := parser.ParseProperty("always forall A a, exists B b, x of a = x of b", "t")
	if len(errs) != 0 {
		t.Fatalf("parse errors: %v", errs)
	}

	res, err := Eliminate(prop, spawn)
	if err != nil {
		t.Fatalf("Eliminate failed: %v", err)
	}

	outer, ok := res.Formula.(*ast.Nary)
	if !ok || outer.Fn != "and" {
		t.Fatalf("expected outer and-Nary, got %T %+v", res.Formula, res.Formula)
	}
	if len(outer.Args) != 2 {
		t.Fatalf("expected 2 branches for A (ids 0,1), got %d", len(outer.Args))
	}

	inner, ok := outer.Args[0].(*ast.Nary)
	if !ok || inner.Fn != "or" {
		t.Fatalf("expected inner or-Nary, got %T %+v", outer.Args[0], outer.Args[0])
	}
	if len(inner.Args) != 1 {
		t.Fatalf("expected 1 branch for B (id 2), got %d", len(inner.Args))
	}

	eq, ok := inner.Args[0].(*ast.BinOp)
	if !ok || eq.Op != "=" {
		t.Fatalf("expected equality at leaf, got %T", inner.Args[0])
	}
	lhs := eq.LHS.(*ast.Ident)
	rhs := eq.RHS.(*ast.Ident)
	if lhs.Name != "x_0" || rhs.Name != "x_2" {
		t.Errorf("unexpected substituted names: %s, %s", lhs.Name, rhs.Name)
	}

	wantFresh := map[string]bool{"x_0": true, "x_1": true, "x_2": true}
	if len(res.FreshVars) != len(wantFresh) {
		t.Fatalf("unexpected fresh var set: %v", res.FreshVars)
	}
	for _, n := range res.FreshVars {
		if !wantFresh[n] {
			t.Errorf("unexpected fresh var %s", n)
		}
	}
}

func TestEliminateVacuousBinding(t *testing.T) {
	spawn := mustSpawn(t, twoTypeBlob)

	prop, errs := parser.ParseProperty("finally forall A a, true", "t")
	if len(errs) != 0 {
		t.Fatalf("parse errors: %v", errs)
	}

	res, err := Eliminate(prop, spawn)
	if err != nil {
		t.Fatalf("Eliminate failed: %v", err)
	}
	if ident, ok := res.Formula.(*ast.Ident); !ok || ident.Name != "true" {
		t.Errorf("expected unchanged 'true' body for vacuous binding, got %+v", res.Formula)
	}
	if len(res.FreshVars) != 0 {
		t.Errorf("expected no fresh vars, got %v", res.FreshVars)
	}
}

func TestEliminateUnknownAgentType(t *testing.T) {
	spawn := mustSpawn(t, twoTypeBlob)
	prop, errs := parser.ParseProperty("always forall Ghost g, x of g > 0", "t")
	if len(errs) != 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	if _, err := Eliminate(prop, spawn); err == nil {
		t.Error("expected error for unknown agent type")
	}
}

func TestEliminateDuplicateBinding(t *testing.T) {
	spawn := mustSpawn(t, twoTypeBlob)
	prop, errs := parser.ParseProperty("always forall A a, forall A a, x of a > 0", "t")
	if len(errs) != 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	if _, err := Eliminate(prop, spawn); err == nil {
		t.Error("expected error for duplicate quantifier binding")
	}
}
