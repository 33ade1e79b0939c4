package expr

import (
	"fmt"

	"github.com/cwbudde/zen/internal/typedesc"
	"github.com/cwbudde/zen/internal/zerr"
)

// LogicalOp distinguishes the two binary boolean connectives.
type LogicalOp uint8

const (
	OpAnd LogicalOp = iota
	OpOr
)

func (op LogicalOp) String() string {
	if op == OpAnd {
		return "And"
	}
	return "Or"
}

// Logical is a binary And/Or node. Variadic conjunction/disjunction is
// built by folding: And(a, And(b, c)), matching how the BDD solver's
// own And/Or fold a sequence of nodes two at a time (see
// internal/bdd).
type Logical struct {
	base
	Op   LogicalOp
	L, R Node
}

func (n *Logical) Tag() Tag { return TagLogical }
func (n *Logical) String() string {
	return fmt.Sprintf("%s(%s, %s)", n.Op, n.L, n.R)
}

func logical(op LogicalOp, l, r Node) (Node, error) {
	if l.Type().Kind != typedesc.KindBool || r.Type().Kind != typedesc.KindBool {
		return nil, zerr.New(zerr.InvalidConstruction,
			"%s: operands must be bool, got %s and %s", op, l.Type(), r.Type())
	}
	key := fmt.Sprintf("log:%d:%d:%d", op, l.ID(), r.ID())
	return intern(key, func() Node {
		return &Logical{base: base{id: allocID(), typ: typedesc.Bool()}, Op: op, L: l, R: r}
	}), nil
}

// And builds l && r.
func And(l, r Node) (Node, error) { return logical(OpAnd, l, r) }

// Or builds l || r.
func Or(l, r Node) (Node, error) { return logical(OpOr, l, r) }

// AndAll folds And over a non-empty slice, left to right.
func AndAll(nodes ...Node) (Node, error) {
	return foldBool(OpAnd, nodes)
}

// OrAll folds Or over a non-empty slice, left to right.
func OrAll(nodes ...Node) (Node, error) {
	return foldBool(OpOr, nodes)
}

func foldBool(op LogicalOp, nodes []Node) (Node, error) {
	if len(nodes) == 0 {
		return nil, zerr.New(zerr.InvalidConstruction, "%s: at least one operand required", op)
	}
	acc := nodes[0]
	if acc.Type().Kind != typedesc.KindBool {
		return nil, zerr.New(zerr.InvalidConstruction, "%s: operand must be bool, got %s", op, acc.Type())
	}
	var err error
	for _, n := range nodes[1:] {
		acc, err = logical(op, acc, n)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// LNot is logical negation, distinct from bitwise BitNot.
type LNot struct {
	base
	X Node
}

func (n *LNot) Tag() Tag       { return TagLNot }
func (n *LNot) String() string { return fmt.Sprintf("Not(%s)", n.X) }

// Negate builds !x.
func Negate(x Node) (Node, error) {
	if x.Type().Kind != typedesc.KindBool {
		return nil, zerr.New(zerr.InvalidConstruction, "Not: operand must be bool, got %s", x.Type())
	}
	key := fmt.Sprintf("lnot:%d", x.ID())
	return intern(key, func() Node {
		return &LNot{base: base{id: allocID(), typ: typedesc.Bool()}, X: x}
	}), nil
}
