// Package mcl renders an eliminated, quantifier-free property formula
// into the modal mu-calculus macros that CADP's Evaluator4 expects,
// grounded on the reference translator's atlas/mcl.py.
package mcl

import (
	"fmt"
	"sort"
	"strings"

	"github.com/labs-lang/sliver/internal/ast"
	"github.com/labs-lang/sliver/internal/descriptor"
	"github.com/labs-lang/sliver/internal/elim"
	"github.com/labs-lang/sliver/internal/errors"
)

// Emit renders result against info, dispatching on the property's
// modality the way translate_property does.
func Emit(result *elim.Result, info *descriptor.Info) (string, error) {
	body, err := pprintMCL(result.Formula)
	if err != nil {
		return "", err
	}

	params := append([]string(nil), result.FreshVars...)
	sort.Strings(params)

	out := sprintPredicate(params, body)

	switch result.Modality {
	case ast.Always:
		inv, err := sprintInvariant(params, info, "Predicate", "")
		if err != nil {
			return "", err
		}
		out += inv
	case ast.Finally:
		fin, err := sprintFinally(params, info)
		if err != nil {
			return "", err
		}
		out += fin
	case ast.Fairly:
		reach, err := sprintReach(params, info)
		if err != nil {
			return "", err
		}
		inv, err := sprintInvariant(params, info, "Reach", "Predicate")
		if err != nil {
			return "", err
		}
		out += reach + inv
	case ast.FairlyInf:
		reach, err := sprintReach(params, info)
		if err != nil {
			return "", err
		}
		inv, err := sprintInvariant(params, info, "Reach", "")
		if err != nil {
			return "", err
		}
		out += reach + inv
	default:
		return "", errors.WrapReport(errors.New(errors.MCL002, "unsupported modality: "+string(result.Modality), nil))
	}

	return out, nil
}

func sprintPredicate(params []string, body string) string {
	return fmt.Sprintf("\nmacro Predicate(%s) =\n    %s\nend_macro\n", strings.Join(params, ", "), body)
}

// sprintReach builds the "Reach" macro fairness properties translate
// into: a least fixed point that holds once Predicate becomes true
// along some path, tolerant of SPURIOUS self-loop actions and of
// transitions the formula's free variables cannot observe.
func sprintReach(params []string, info *descriptor.Info) (string, error) {
	varNames, _, _, err := preprocess(params, "args", info)
	if err != nil {
		return "", err
	}

	macroParams := make([]string, len(params))
	nuArgs := make([]string, len(params))
	for i, p := range params {
		macroParams[i] = "args_" + p
		nuArgs[i] = fmt.Sprintf("%s:Int:=args_%s", p, p)
	}

	clauses, err := updateClauses(params, info, "R", diamond)
	if err != nil {
		return "", err
	}

	body := fmt.Sprintf("Predicate(%s)\n    or\n    ((<\"SPURIOUS\"> true) and ([not \"SPURIOUS\"] false))", strings.Join(params, ", "))
	if irr, ok, ierr := sprintIrrelevant(varNames, info, fmt.Sprintf("R(%s)", strings.Join(params, ", ")), diamond); ierr != nil {
		return "", ierr
	} else if ok {
		body += "\n    or\n    " + irr
	}
	if len(clauses) > 0 {
		body += "\n    or\n    " + strings.Join(clauses, "\n    or\n    ")
	}

	return fmt.Sprintf("\nmacro Reach(%s) =\nmu R (%s) . (\n    %s)\nend_macro\n",
		strings.Join(macroParams, ", "), strings.Join(nuArgs, ", "), body), nil
}

// sprintFinally builds the top-level formula "finally" properties
// translate into: after consuming any number of transitions irrelevant
// to the formula's free variables followed by one read of each, a
// least fixed point holds until Predicate is satisfied.
func sprintFinally(params []string, info *descriptor.Info) (string, error) {
	varNames, inits, args, err := preprocess(params, "", info)
	if err != nil {
		return "", err
	}

	prefix, err := starPrefix(varNames, info)
	if err != nil {
		return "", err
	}
	seq := interleave(prefix, inits)

	clauses, err := updateClauses(params, info, "R", box)
	if err != nil {
		return "", err
	}

	body := fmt.Sprintf("(Predicate(%s)\n    or\n    ((<\"SPURIOUS\"> true) and ([not \"SPURIOUS\"] false)))", strings.Join(params, ", "))
	if irr, ok, ierr := sprintIrrelevant(varNames, info, "", identity); ierr != nil {
		return "", ierr
	} else if ok && len(clauses) > 0 {
		body += fmt.Sprintf("\n    or\n    (%s\n    and\n    %s)", irr, strings.Join(clauses, "\n    and\n    "))
	} else if len(clauses) > 0 {
		body += "\n    or\n    (" + strings.Join(clauses, "\n    and\n    ") + ")"
	}

	return fmt.Sprintf("\n[%s]\nmu R (%s) . (\n    %s)\n", strings.Join(seq, " . "), strings.Join(args, ", "), body), nil
}

// sprintInvariant builds the greatest-fixed-point "always" form. name
// lets Emit reuse it for the fairness modalities against "Reach" instead
// of "Predicate"; shortCircuit, when non-empty, lets fairly properties
// stop re-checking once Predicate already holds.
func sprintInvariant(params []string, info *descriptor.Info, name, shortCircuit string) (string, error) {
	varNames, inits, nuParams, err := preprocess(params, "init", info)
	if err != nil {
		return "", err
	}

	prefix, err := starPrefix(varNames, info)
	if err != nil {
		return "", err
	}
	seq := interleave(prefix, inits)

	clauses, err := updateClauses(params, info, "Inv", box)
	if err != nil {
		return "", err
	}

	irr, ok, err := sprintIrrelevant(varNames, info, fmt.Sprintf("Inv(%s)", strings.Join(params, ", ")), box)
	if err != nil {
		return "", err
	}

	var tail string
	if ok && len(clauses) > 0 {
		tail = irr + "\n    and\n    " + strings.Join(clauses, "\n    and\n    ")
	} else if ok {
		tail = irr
	} else {
		tail = strings.Join(clauses, "\n    and\n    ")
	}

	head := fmt.Sprintf("%s(%s)", name, strings.Join(params, ", "))
	if shortCircuit != "" {
		return fmt.Sprintf("\n[%s]\nnu Inv (%s) . (\n    %s\n    and\n    (%s(%s) or\n    (\n    %s))\n)\n",
			strings.Join(seq, " . "), strings.Join(nuParams, ", "), head, shortCircuit, strings.Join(params, ", "), tail), nil
	}
	return fmt.Sprintf("\n[%s]\nnu Inv (%s) . (\n    %s\n    and\n    %s\n)\n",
		strings.Join(seq, " . "), strings.Join(nuParams, ", "), head, tail), nil
}

// starPrefix is the Kleene-closure clause matching any run of
// transitions the formula's free variables cannot observe, used to
// skip over unrelated agent activity before each variable's read. When
// there is nothing to be irrelevant about (no free variables at all)
// it returns nil rather than the Python original's "None*" artifact.
func starPrefix(varNames []string, info *descriptor.Info) ([]string, error) {
	irr, ok, err := sprintIrrelevant(varNames, info, "", identity)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return []string{irr + "*"}, nil
}

// interleave reproduces the reference translator's zip(repeat(prefix),
// inits) flattening: prefix, init0, prefix, init1, ... When prefix is
// empty (no variables to filter around), it degrades to inits alone.
func interleave(prefix, inits []string) []string {
	if len(prefix) == 0 {
		return inits
	}
	out := make([]string, 0, 2*len(inits))
	for _, in := range inits {
		out = append(out, prefix[0], in)
	}
	return out
}

func identity(s string) string { return s }

// pprintMCL renders a quantifier-free formula as MCL: % becomes mod and
// != becomes <> to match Evaluator4's action-formula syntax.
func pprintMCL(node ast.Node) (string, error) {
	switch n := node.(type) {
	case *ast.Of, *ast.Quant:
		return "", errors.WrapReport(errors.New(errors.MCL003, "residual quantifier node reached the emitter", nil))
	case *ast.BinOp:
		lhs, err := pprintMCL(n.LHS)
		if err != nil {
			return "", err
		}
		rhs, err := pprintMCL(n.RHS)
		if err != nil {
			return "", err
		}
		op := n.Op
		switch op {
		case "%":
			op = "mod"
		case "!=":
			op = "<>"
		}
		return fmt.Sprintf("(%s %s %s)", lhs, op, rhs), nil
	case *ast.BuiltIn:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			s, err := pprintMCL(a)
			if err != nil {
				return "", err
			}
			args[i] = s
		}
		return fmt.Sprintf("%s(%s)", n.Fn, strings.Join(args, ", ")), nil
	case *ast.Nary:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			s, err := pprintMCL(a)
			if err != nil {
				return "", err
			}
			args[i] = s
		}
		return fmt.Sprintf("(%s)", strings.Join(args, fmt.Sprintf(" %s ", n.Fn))), nil
	case *ast.Ident:
		return n.Name, nil
	case *ast.IntLit:
		return fmt.Sprintf("%d", n.Value), nil
	default:
		return "", errors.WrapReport(errors.New(errors.MCL003, fmt.Sprintf("unsupported node %T in emitter input", node), nil))
	}
}
