package expr

import (
	"fmt"

	"github.com/cwbudde/zen/internal/zerr"
)

// BitOp enumerates the binary bitwise operators.
type BitOp uint8

const (
	OpBitAnd BitOp = iota
	OpBitOr
	OpBitXor
)

func (op BitOp) String() string {
	switch op {
	case OpBitAnd:
		return "BitAnd"
	case OpBitOr:
		return "BitOr"
	default:
		return "BitXor"
	}
}

// Bitwise is a binary bitwise node over two integers of the same kind.
type Bitwise struct {
	base
	Op   BitOp
	L, R Node
}

func (n *Bitwise) Tag() Tag       { return TagBitwise }
func (n *Bitwise) String() string { return fmt.Sprintf("%s(%s, %s)", n.Op, n.L, n.R) }

func bitwise(op BitOp, l, r Node) (Node, error) {
	if !l.Type().Kind.IsInteger() || !l.Type().Equal(r.Type()) {
		return nil, zerr.New(zerr.InvalidConstruction,
			"%s: operands must be same integer type, got %s and %s", op, l.Type(), r.Type())
	}
	key := fmt.Sprintf("bit:%d:%d:%d", op, l.ID(), r.ID())
	return intern(key, func() Node {
		return &Bitwise{base: base{id: allocID(), typ: l.Type()}, Op: op, L: l, R: r}
	}), nil
}

func BitAnd(l, r Node) (Node, error) { return bitwise(OpBitAnd, l, r) }
func BitOr(l, r Node) (Node, error)  { return bitwise(OpBitOr, l, r) }
func BitXor(l, r Node) (Node, error) { return bitwise(OpBitXor, l, r) }

// BitNot is bitwise complement, distinct from logical Negate.
type BitNot struct {
	base
	X Node
}

func (n *BitNot) Tag() Tag       { return TagBitNot }
func (n *BitNot) String() string { return fmt.Sprintf("BitNot(%s)", n.X) }

// ComplementBits builds ^x.
func ComplementBits(x Node) (Node, error) {
	if !x.Type().Kind.IsInteger() {
		return nil, zerr.New(zerr.InvalidConstruction, "BitNot: operand must be integer, got %s", x.Type())
	}
	key := fmt.Sprintf("bnot:%d", x.ID())
	return intern(key, func() Node {
		return &BitNot{base: base{id: allocID(), typ: x.Type()}, X: x}
	}), nil
}
