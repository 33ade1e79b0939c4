package expr

import (
	"fmt"

	"github.com/cwbudde/zen/internal/typedesc"
	"github.com/cwbudde/zen/internal/zerr"
)

// Eq is structural equality over any two operands of the same type.
type Eq struct {
	base
	L, R Node
}

func (n *Eq) Tag() Tag       { return TagEq }
func (n *Eq) String() string { return fmt.Sprintf("Eq(%s, %s)", n.L, n.R) }

// Equal builds l == r. Both operands must have the same type.
func Equal(l, r Node) (Node, error) {
	if !l.Type().Equal(r.Type()) {
		return nil, zerr.New(zerr.InvalidConstruction, "Eq: type mismatch: %s vs %s", l.Type(), r.Type())
	}
	key := fmt.Sprintf("eq:%d:%d", l.ID(), r.ID())
	return intern(key, func() Node {
		return &Eq{base: base{id: allocID(), typ: typedesc.Bool()}, L: l, R: r}
	}), nil
}

// OrderOp distinguishes the two ordering relations.
type OrderOp uint8

const (
	OpLeq OrderOp = iota
	OpGeq
)

func (op OrderOp) String() string {
	if op == OpLeq {
		return "Leq"
	}
	return "Geq"
}

// Order is a Leq/Geq comparison over two integers of the same kind.
type Order struct {
	base
	Op   OrderOp
	L, R Node
}

func (n *Order) Tag() Tag       { return TagOrder }
func (n *Order) String() string { return fmt.Sprintf("%s(%s, %s)", n.Op, n.L, n.R) }

func order(op OrderOp, l, r Node) (Node, error) {
	if !l.Type().Kind.IsInteger() || !l.Type().Equal(r.Type()) {
		return nil, zerr.New(zerr.InvalidConstruction,
			"%s: operands must be same integer type, got %s and %s", op, l.Type(), r.Type())
	}
	key := fmt.Sprintf("ord:%d:%d:%d", op, l.ID(), r.ID())
	return intern(key, func() Node {
		return &Order{base: base{id: allocID(), typ: typedesc.Bool()}, Op: op, L: l, R: r}
	}), nil
}

// Leq builds l <= r.
func Leq(l, r Node) (Node, error) { return order(OpLeq, l, r) }

// Geq builds l >= r.
func Geq(l, r Node) (Node, error) { return order(OpGeq, l, r) }
