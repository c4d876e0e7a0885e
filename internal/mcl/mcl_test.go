package mcl

import (
	"strings"
	"testing"

	"github.com/labs-lang/sliver/internal/descriptor"
	"github.com/labs-lang/sliver/internal/elim"
	"github.com/labs-lang/sliver/internal/parser"
)

func mustInfo(t *testing.T, blob string) *descriptor.Info {
	t.Helper()
	info, err := descriptor.Parse(blob)
	if err != nil {
		t.Fatalf("descriptor.Parse failed: %v", err)
	}
	return info
}

// singleAgentBlob declares one agent type A (id 0) with a scalar
// interface variable x and an array interface variable buf[2].
const singleAgentBlob = "|A 0,1|0=x=0;1=buf[2]=0||p"

func compile(t *testing.T, blob, prop string) (*elim.Result, *descriptor.Info) {
	t.Helper()
	info := mustInfo(t, blob)
	p, errs := parser.ParseProperty(prop, "t")
	if len(errs) != 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	res, err := elim.Eliminate(p, info.Spawn)
	if err != nil {
		t.Fatalf("Eliminate failed: %v", err)
	}
	return res, info
}

func TestEmitAlways(t *testing.T) {
	res, info := compile(t, singleAgentBlob, "always forall A a, x of a >= 0")
	out, err := Emit(res, info)
	if err != nil {
		t.Fatalf("Emit failed: %v", err)
	}
	if !strings.Contains(out, "macro Predicate(x_0) =") {
		t.Errorf("missing Predicate macro header:\n%s", out)
	}
	if !strings.Contains(out, "nu Inv") {
		t.Errorf("expected a greatest fixed point for 'always', got:\n%s", out)
	}
	if !strings.Contains(out, "{ATTR !0 !0 ?init_x_0:Int ...}") {
		t.Errorf("expected an ATTR action pattern reading agent 0's variable 0:\n%s", out)
	}
}

func TestEmitFinally(t *testing.T) {
	res, info := compile(t, singleAgentBlob, "finally forall A a, x of a > 0")
	out, err := Emit(res, info)
	if err != nil {
		t.Fatalf("Emit failed: %v", err)
	}
	if !strings.Contains(out, "mu R") {
		t.Errorf("expected a least fixed point for 'finally', got:\n%s", out)
	}
}

func TestEmitFairly(t *testing.T) {
	res, info := compile(t, singleAgentBlob, "fairly forall A a, x of a > 0")
	out, err := Emit(res, info)
	if err != nil {
		t.Fatalf("Emit failed: %v", err)
	}
	if !strings.Contains(out, "macro Reach(") {
		t.Errorf("expected a Reach macro for 'fairly':\n%s", out)
	}
	if !strings.Contains(out, "Predicate(") || !strings.Contains(out, "Reach(") {
		t.Errorf("expected the short-circuit invariant to reference both Reach and Predicate:\n%s", out)
	}
}

func TestEmitFairlyInf(t *testing.T) {
	res, info := compile(t, singleAgentBlob, "fairly_inf forall A a, x of a > 0")
	out, err := Emit(res, info)
	if err != nil {
		t.Fatalf("Emit failed: %v", err)
	}
	if !strings.Contains(out, "macro Reach(") || !strings.Contains(out, "nu Inv") {
		t.Errorf("expected Reach + Inv for 'fairly_inf':\n%s", out)
	}
}

// TestEmitArrayOffsetIndexing is the key regression test for the fix
// over the reference translator: an array element's action pattern
// must address its flattened LTS index (var index + offset), not the
// array variable's base index alone.
func TestEmitArrayOffsetIndexing(t *testing.T) {
	res, info := compile(t, singleAgentBlob, "always forall A a, buf[1] of a > 0")
	out, err := Emit(res, info)
	if err != nil {
		t.Fatalf("Emit failed: %v", err)
	}
	// buf has Index 1 (after x at Index 0); offset 1 into the array
	// must push the action pattern's index to 1+1=2.
	if !strings.Contains(out, "!2 ?init_buf_1_0:Int") {
		t.Errorf("expected offset-adjusted index 2 in array access, got:\n%s", out)
	}
}

func TestResolveFreshNameRejectsUnknown(t *testing.T) {
	info := mustInfo(t, singleAgentBlob)
	if _, err := resolveFreshName("ghost_0", info); err == nil {
		t.Error("expected error resolving an unknown base variable")
	}
}

func TestResolveFreshNameScalarAndArray(t *testing.T) {
	info := mustInfo(t, singleAgentBlob)

	r, err := resolveFreshName("x_0", info)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Var.Name != "x" || r.AgentID != 0 || r.Offset != 0 {
		t.Errorf("unexpected resolution: %+v", r)
	}

	r, err = resolveFreshName("buf_1_0", info)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Var.Name != "buf" || r.AgentID != 0 || r.Offset != 1 {
		t.Errorf("unexpected array resolution: %+v", r)
	}
}

func TestPprintMCLAcceptsVacuousBody(t *testing.T) {
	res, info := compile(t, singleAgentBlob, "finally forall A a, true")
	_ = info
	if _, err := pprintMCL(res.Formula); err != nil {
		t.Fatalf("vacuous binding should leave a plain Ident, got error: %v", err)
	}
}
