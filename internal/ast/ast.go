// Package ast defines the tagged-variant AST for SLiVER temporal
// properties: quantified arithmetic/boolean formulae over a
// parameterized agent population.
package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Node is the base interface for every AST node.
type Node interface {
	String() string
	Position() Pos
}

// Pos represents a position in the source text.
type Pos struct {
	Line   int
	Column int
	File   string
	Offset int
}

func (p Pos) String() string {
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Span represents a range in source text.
type Span struct {
	Start Pos
	End   Pos
}

// Modality is the temporal quantifier on a property.
type Modality string

// The four supported modalities. No other values are legal.
const (
	Always    Modality = "always"
	Finally   Modality = "finally"
	Fairly    Modality = "fairly"
	FairlyInf Modality = "fairly_inf"
)

// IsValid reports whether m is one of the four supported modalities.
func (m Modality) IsValid() bool {
	switch m {
	case Always, Finally, Fairly, FairlyInf:
		return true
	}
	return false
}

// QuantKind distinguishes universal from existential quantification.
type QuantKind string

const (
	Forall QuantKind = "forall"
	Exists QuantKind = "exists"
)

// IntLit is a signed integer literal leaf.
type IntLit struct {
	Value int
	Pos   Pos
}

func (n *IntLit) String() string  { return strconv.Itoa(n.Value) }
func (n *IntLit) Position() Pos   { return n.Pos }

// Ident is a free-standing identifier leaf. The parser produces them
// for the literals true, false and id (Of and Quant hold their names
// as plain strings); elimination adds the fresh propositional
// variables of the form "{var}_{agent_id}".
type Ident struct {
	Name string
	Pos  Pos
}

func (n *Ident) String() string { return n.Name }
func (n *Ident) Position() Pos  { return n.Pos }

// Of refers to variable Var (optionally array-indexed by Offset) held
// by the agent bound to Agent. Of nodes exist only before elimination;
// the eliminator must remove every one of them.
type Of struct {
	Var    string
	Offset Node // optional array index expression; nil if absent
	Agent  string
	Pos    Pos
}

func (n *Of) String() string {
	if n.Offset != nil {
		return fmt.Sprintf("%s[%s] of %s", n.Var, n.Offset, n.Agent)
	}
	return fmt.Sprintf("%s of %s", n.Var, n.Agent)
}
func (n *Of) Position() Pos { return n.Pos }

// BinOp is a binary operator application. Op is one of:
// % * / + - > < = >= <= != and or.
type BinOp struct {
	LHS Node
	Op  string
	RHS Node
	Pos Pos
}

func (n *BinOp) String() string {
	return fmt.Sprintf("(%s %s %s)", n.LHS, n.Op, n.RHS)
}
func (n *BinOp) Position() Pos { return n.Pos }

// BuiltIn is a call to one of the built-in functions abs, max, min, not.
type BuiltIn struct {
	Fn   string
	Args []Node
	Pos  Pos
}

func (n *BuiltIn) String() string {
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", n.Fn, strings.Join(parts, ", "))
}
func (n *BuiltIn) Position() Pos { return n.Pos }

// Nary is a flattened and/or combinator, produced only by quantifier
// elimination. Fn is "and" or "or". An empty Args slice is legal: it
// represents the neutral element of the combinator (true for "and",
// false for "or") and arises from an empty quantifier domain.
type Nary struct {
	Fn   string
	Args []Node
	Pos  Pos
}

func (n *Nary) String() string {
	if len(n.Args) == 0 {
		return "()"
	}
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}
	return "(" + strings.Join(parts, " "+n.Fn+" ") + ")"
}
func (n *Nary) Position() Pos { return n.Pos }

// Quant is one link of a quantifier chain: (forall|exists) TypeName
// VarName, Inner. Inner is either another Quant or the quantifier-free
// body (a BinOp/BuiltIn/Of tree).
type Quant struct {
	Kind     QuantKind
	TypeName string
	VarName  string
	Inner    Node
	Pos      Pos
}

func (n *Quant) String() string {
	return fmt.Sprintf("%s %s %s, %s", n.Kind, n.TypeName, n.VarName, n.Inner)
}
func (n *Quant) Position() Pos { return n.Pos }

// Prop is the root of a parsed property: a temporal modality applied
// to a (possibly quantified) body.
type Prop struct {
	Modality Modality
	Quant    Node
	Pos      Pos
}

func (n *Prop) String() string {
	return fmt.Sprintf("%s %s", n.Modality, n.Quant)
}
func (n *Prop) Position() Pos { return n.Pos }
