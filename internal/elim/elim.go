// Package elim implements quantifier elimination: it expands the
// (forall|exists) chain at the head of a parsed property into a flat
// and/or tree over concrete agent ids, producing a quantifier-free
// formula the MCL emitter can translate directly.
package elim

import (
	"fmt"
	"sort"

	"github.com/labs-lang/sliver/internal/ast"
	"github.com/labs-lang/sliver/internal/descriptor"
	"github.com/labs-lang/sliver/internal/errors"
)

// binding is one link of the quantifier chain, recorded in
// innermost-to-outermost order as the chain is unwound.
type binding struct {
	kind     ast.QuantKind
	typeName string
	varName  string
	pos      ast.Pos
}

// Result is the output of quantifier elimination.
type Result struct {
	Formula  ast.Node // quantifier-free; no *ast.Of or *ast.Quant remain
	FreshVars []string // sorted, de-duplicated names introduced by elimination
	Modality ast.Modality
}

// Eliminate expands every quantifier in prop against spawn, returning
// the resulting propositional-shaped formula.
//
// Bindings are processed from the innermost quantifier outward. This
// order matters: eliminating a variable duplicates the current formula
// once per concrete agent id, and any quantifier still enclosing it
// must see — and be replicated across — those duplicates. Processing
// outer-to-inner would eliminate the outer variable first and miss the
// duplication the inner elimination performs afterward.
func Eliminate(prop *ast.Prop, spawn *descriptor.Spawn) (*Result, error) {
	if !prop.Modality.IsValid() {
		return nil, errors.WrapReport(errors.New(errors.MCL002, "unsupported modality: "+string(prop.Modality), nil))
	}

	bindings, formula, err := collectBindings(prop.Quant)
	if err != nil {
		return nil, err
	}

	fresh := map[string]bool{}

	for _, b := range bindings {
		ids, ok := spawn.TypeIDs(b.typeName)
		if !ok {
			return nil, errors.WrapReport(errors.New(errors.ELIM002,
				fmt.Sprintf("quantifier ranges over unknown agent type %q", b.typeName), nil).
				WithSpan(ast.Span{Start: b.pos, End: b.pos}))
		}

		if !contains(formula, b.varName) {
			// Vacuous binding: the body never mentions the bound
			// variable, so elimination has no effect.
			continue
		}

		if len(ids) == 0 {
			formula = &ast.Nary{Fn: combinator(b.kind), Args: nil, Pos: b.pos}
			continue
		}

		branches := make([]ast.Node, 0, len(ids))
		for _, id := range ids {
			branches = append(branches, substitute(formula, b.varName, id, fresh))
		}
		formula = &ast.Nary{Fn: combinator(b.kind), Args: branches, Pos: b.pos}
	}

	names := make([]string, 0, len(fresh))
	for n := range fresh {
		names = append(names, n)
	}
	sort.Strings(names)

	return &Result{Formula: formula, FreshVars: names, Modality: prop.Modality}, nil
}

func combinator(kind ast.QuantKind) string {
	if kind == ast.Forall {
		return "and"
	}
	return "or"
}

// collectBindings unwinds the quantifier chain, returning its bindings
// innermost-first and the quantifier-free body at the chain's tail.
func collectBindings(node ast.Node) ([]binding, ast.Node, error) {
	q, ok := node.(*ast.Quant)
	if !ok {
		return nil, node, nil
	}

	inner, body, err := collectBindings(q.Inner)
	if err != nil {
		return nil, nil, err
	}

	for _, b := range inner {
		if b.varName == q.VarName {
			return nil, nil, errors.WrapReport(errors.New(errors.ELIM001,
				"multiple definitions for quantified variable "+q.VarName, nil).
				WithSpan(ast.Span{Start: q.Pos, End: q.Pos}))
		}
	}

	return append(inner, binding{kind: q.Kind, typeName: q.TypeName, varName: q.VarName, pos: q.Pos}), body, nil
}

// contains reports whether formula references the quantified variable
// name through any Of node's Agent field.
func contains(node ast.Node, varName string) bool {
	switch n := node.(type) {
	case *ast.Of:
		return n.Agent == varName
	case *ast.BinOp:
		return contains(n.LHS, varName) || contains(n.RHS, varName)
	case *ast.BuiltIn:
		for _, a := range n.Args {
			if contains(a, varName) {
				return true
			}
		}
		return false
	case *ast.Nary:
		for _, a := range n.Args {
			if contains(a, varName) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// substitute replaces every Of node bound to varName with a fresh
// propositional identifier naming the concrete agent id, recording
// each fresh name it mints into fresh.
func substitute(node ast.Node, varName string, agentID int, fresh map[string]bool) ast.Node {
	switch n := node.(type) {
	case *ast.Of:
		if n.Agent != varName {
			return n
		}
		name := FreshName(n.Var, n.Offset, agentID)
		fresh[name] = true
		return &ast.Ident{Name: name, Pos: n.Pos}
	case *ast.BinOp:
		return &ast.BinOp{
			LHS: substitute(n.LHS, varName, agentID, fresh),
			Op:  n.Op,
			RHS: substitute(n.RHS, varName, agentID, fresh),
			Pos: n.Pos,
		}
	case *ast.BuiltIn:
		args := make([]ast.Node, len(n.Args))
		for i, a := range n.Args {
			args[i] = substitute(a, varName, agentID, fresh)
		}
		return &ast.BuiltIn{Fn: n.Fn, Args: args, Pos: n.Pos}
	case *ast.Nary:
		args := make([]ast.Node, len(n.Args))
		for i, a := range n.Args {
			args[i] = substitute(a, varName, agentID, fresh)
		}
		return &ast.Nary{Fn: n.Fn, Args: args, Pos: n.Pos}
	default:
		return node
	}
}

// FreshName builds the propositional identifier that substitute mints
// for a reference to baseVar held by agentID, optionally at a constant
// array offset. resolveFreshName in internal/mcl inverts this scheme to
// recover (baseVar, offset, agentID) when emitting the action pattern
// that reads the variable from the model.
func FreshName(baseVar string, offset ast.Node, agentID int) string {
	if offset == nil {
		return fmt.Sprintf("%s_%d", baseVar, agentID)
	}
	if lit, ok := offset.(*ast.IntLit); ok {
		return fmt.Sprintf("%s_%d_%d", baseVar, lit.Value, agentID)
	}
	// Any offset that is not an integer literal (an arithmetic
	// expression, or one that reads another variable) is not evaluated
	// here: it is encoded as "?", which internal/mcl rejects as an
	// unknown variable.
	return fmt.Sprintf("%s_?_%d", baseVar, agentID)
}
