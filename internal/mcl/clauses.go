package mcl

import (
	"fmt"
	"strings"

	"github.com/labs-lang/sliver/internal/descriptor"
)

// box and diamond wrap an MCL action formula in the modal operators
// that read as "for every matching transition" and "for some matching
// transition" respectively.
func box(s string) string     { return "[" + s + "]" }
func diamond(s string) string { return "<" + s + ">" }

// sprintAssign renders the action pattern that binds bindsTo to the
// current value of the variable named by the fresh parameter varname,
// e.g. "{ATTR !3 !1 ?v:Int ...}".
func sprintAssign(varname string, info *descriptor.Info, bindsTo string) (string, error) {
	r, err := resolveFreshName(varname, info)
	if err != nil {
		return "", err
	}
	index := r.Var.Index + r.Offset
	return fmt.Sprintf("{%s !%d !%d ?%s:Int ...}", label(r.Var.Store), r.AgentID, index, bindsTo), nil
}

// preprocess computes, for a sorted parameter list:
//   - varNames: the distinct store variables the parameters read from
//     (deduplicated; used to build the "irrelevant transition" filter)
//   - inits: one action-pattern binding per parameter, each binding to
//     "prefix_param" instead of the default "v"
//   - declParams: "param:Int:=prefix_param" declarations for a
//     fixed-point binder's parameter list
func preprocess(params []string, prefix string, info *descriptor.Info) (varNames []string, inits []string, declParams []string, err error) {
	seen := map[string]bool{}
	if prefix != "" {
		prefix += "_"
	}
	for _, p := range params {
		r, rerr := resolveFreshName(p, info)
		if rerr != nil {
			return nil, nil, nil, rerr
		}
		if !seen[r.Var.Name] {
			seen[r.Var.Name] = true
			varNames = append(varNames, r.Var.Name)
		}

		bound := prefix + p
		assign, aerr := sprintAssign(p, info, bound)
		if aerr != nil {
			return nil, nil, nil, aerr
		}
		inits = append(inits, assign)
		declParams = append(declParams, fmt.Sprintf("%s:Int:=%s", p, bound))
	}
	return varNames, inits, declParams, nil
}

// updateClauses yields one clause per parameter: a transition on that
// parameter's variable followed by a recursive call to fn with that
// parameter rebound to the freshly read value "v".
func updateClauses(params []string, info *descriptor.Info, fn string, wrap func(string) string) ([]string, error) {
	clauses := make([]string, 0, len(params))
	for i, p := range params {
		assign, err := sprintAssign(p, info, "v")
		if err != nil {
			return nil, err
		}
		args := make([]string, len(params))
		copy(args, params)
		args[i] = "v"
		clauses = append(clauses, fmt.Sprintf("(%s%s(%s))", wrap(assign), fn, strings.Join(args, ", ")))
	}
	return clauses, nil
}

// sprintIrrelevant builds the clause matching every transition that
// cannot affect satisfaction of the formula over varNames: any action
// under a label none of varNames use, or a same-labeled action whose
// index does not touch one of varNames. Returns ok=false when varNames
// is empty, since there is then nothing to call irrelevant.
func sprintIrrelevant(varNames []string, info *descriptor.Info, fn string, wrap func(string) string) (string, bool, error) {
	byStore := map[descriptor.Store][]*descriptor.Variable{}
	labels := map[string]bool{}
	for _, name := range varNames {
		v, ok := info.LookupVar(name)
		if !ok {
			return "", false, unknownVar(name)
		}
		byStore[v.Store] = append(byStore[v.Store], v)
		labels[label(v.Store)] = true
	}
	if len(labels) == 0 {
		return "", false, nil
	}

	lblNames := make([]string, 0, len(labels))
	for l := range labels {
		lblNames = append(lblNames, l)
	}
	otherActions := make([]string, len(lblNames))
	for i, l := range lblNames {
		otherActions[i] = fmt.Sprintf("(not {%s ...})", l)
	}
	result := strings.Join(otherActions, " and ")

	for _, store := range []descriptor.Store{descriptor.StoreInterface, descriptor.StoreLstig, descriptor.StoreEnv} {
		vs := byStore[store]
		if len(vs) == 0 {
			continue
		}
		filters := make([]string, 0, len(vs))
		for _, v := range vs {
			for k := 0; k < v.Size; k++ {
				filters = append(filters, fmt.Sprintf("(x <> %d)", v.Index+k))
			}
		}
		result += fmt.Sprintf(" or {%s ?any ?x:Nat ... where (%s)}", label(store), strings.Join(filters, " and "))
	}

	return fmt.Sprintf("(%s %s)", wrap(result), fn), true, nil
}
