package expr

import (
	"fmt"

	"github.com/cwbudde/zen/internal/zerr"
)

// ArithOp enumerates the five arithmetic operators over integer types.
// Multiply is constructible here unconditionally — spec.md §3.1(v)
// makes it an Unsupported-by-backend failure at *solving* time under
// BDD, not a construction-time error, so the factory accepts it.
type ArithOp uint8

const (
	OpSum ArithOp = iota
	OpMinus
	OpMultiply
	OpMax
	OpMin
)

func (op ArithOp) String() string {
	switch op {
	case OpSum:
		return "Sum"
	case OpMinus:
		return "Minus"
	case OpMultiply:
		return "Multiply"
	case OpMax:
		return "Max"
	default:
		return "Min"
	}
}

// Arith is a binary arithmetic node over two integers of the same
// kind.
type Arith struct {
	base
	Op   ArithOp
	L, R Node
}

func (n *Arith) Tag() Tag       { return TagArith }
func (n *Arith) String() string { return fmt.Sprintf("%s(%s, %s)", n.Op, n.L, n.R) }

func arith(op ArithOp, l, r Node) (Node, error) {
	if !l.Type().Kind.IsInteger() || !l.Type().Equal(r.Type()) {
		return nil, zerr.New(zerr.InvalidConstruction,
			"%s: operands must be same integer type, got %s and %s", op, l.Type(), r.Type())
	}
	key := fmt.Sprintf("ar:%d:%d:%d", op, l.ID(), r.ID())
	return intern(key, func() Node {
		return &Arith{base: base{id: allocID(), typ: l.Type()}, Op: op, L: l, R: r}
	}), nil
}

func Sum(l, r Node) (Node, error)      { return arith(OpSum, l, r) }
func Minus(l, r Node) (Node, error)    { return arith(OpMinus, l, r) }
func Multiply(l, r Node) (Node, error) { return arith(OpMultiply, l, r) }
func Max(l, r Node) (Node, error)      { return arith(OpMax, l, r) }
func Min(l, r Node) (Node, error)      { return arith(OpMin, l, r) }
