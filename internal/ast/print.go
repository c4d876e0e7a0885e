package ast

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Print produces a deterministic JSON representation of an AST node,
// used for golden snapshot testing of the parser and the eliminator.
//
// Design decisions mirror the compiler's other stages: position info
// is omitted so that two formulae differing only in source location
// compare equal, and every node carries a "type" discriminator.
func Print(node Node) string {
	if node == nil {
		return "null"
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false) // keep operators such as ">" readable in snapshots
	enc.SetIndent("", "  ")
	if err := enc.Encode(simplify(node)); err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func simplify(node Node) interface{} {
	if node == nil {
		return nil
	}
	switch n := node.(type) {
	case *IntLit:
		return map[string]interface{}{"type": "IntLit", "value": n.Value}
	case *Ident:
		return map[string]interface{}{"type": "Ident", "name": n.Name}
	case *Of:
		m := map[string]interface{}{"type": "Of", "var": n.Var, "agent": n.Agent}
		if n.Offset != nil {
			m["offset"] = simplify(n.Offset)
		}
		return m
	case *BinOp:
		return map[string]interface{}{
			"type": "BinOp", "op": n.Op,
			"lhs": simplify(n.LHS), "rhs": simplify(n.RHS),
		}
	case *BuiltIn:
		return map[string]interface{}{
			"type": "BuiltIn", "fn": n.Fn, "args": simplifyAll(n.Args),
		}
	case *Nary:
		return map[string]interface{}{
			"type": "Nary", "fn": n.Fn, "args": simplifyAll(n.Args),
		}
	case *Quant:
		return map[string]interface{}{
			"type": "Quant", "kind": string(n.Kind), "typename": n.TypeName,
			"varname": n.VarName, "inner": simplify(n.Inner),
		}
	case *Prop:
		return map[string]interface{}{
			"type": "Prop", "modality": string(n.Modality), "quant": simplify(n.Quant),
		}
	default:
		return map[string]interface{}{"type": "Unknown", "repr": node.String()}
	}
}

func simplifyAll(nodes []Node) []interface{} {
	out := make([]interface{}, len(nodes))
	for i, n := range nodes {
		out[i] = simplify(n)
	}
	return out
}
