package interleave

import (
	"testing"

	"github.com/cwbudde/zen/internal/expr"
	"github.com/cwbudde/zen/internal/typedesc"
)

func mustNode(n expr.Node, err error) expr.Node {
	if err != nil {
		panic(err)
	}
	return n
}

func TestEqCombinesItsOperands(t *testing.T) {
	a := expr.NewArbitrary(typedesc.Uint(32))
	b := expr.NewArbitrary(typedesc.Uint(32))
	eq := mustNode(expr.Equal(a, b))

	groups := Groups(eq)
	if groups[a.ID()] != groups[b.ID()] {
		t.Fatalf("Eq(a,b) should interleave a and b into the same class")
	}
}

func TestBitwiseDoesNotCombine(t *testing.T) {
	a := expr.NewArbitrary(typedesc.Uint(8))
	b := expr.NewArbitrary(typedesc.Uint(8))
	band := mustNode(expr.BitAnd(a, b))

	groups := Groups(band)
	if groups[a.ID()] == groups[b.ID()] {
		t.Fatalf("BitAnd(a,b) should not interleave a and b")
	}
}

func TestOrderGroupsCoupledArbitrariesAdjacently(t *testing.T) {
	a := expr.NewArbitrary(typedesc.Uint(16))
	b := expr.NewArbitrary(typedesc.Uint(16))
	c := expr.NewArbitrary(typedesc.Uint(16))
	// b and c are coupled via Eq; a is unrelated (reached first, via
	// the left operand of the enclosing And).
	unrelated := mustNode(expr.Leq(a, a))
	coupled := mustNode(expr.Equal(b, c))
	root := mustNode(expr.And(unrelated, coupled))

	order := Order(root)
	if len(order) != 3 {
		t.Fatalf("expected 3 arbitrary nodes, got %d", len(order))
	}
	pos := make(map[uint64]int, len(order))
	for i, n := range order {
		pos[n.ID()] = i
	}
	if d := abs(pos[b.ID()] - pos[c.ID()]); d != 1 {
		t.Fatalf("b and c should be adjacent in interleaving order, got positions %d and %d", pos[b.ID()], pos[c.ID()])
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func TestTransitiveCoupling(t *testing.T) {
	a := expr.NewArbitrary(typedesc.Uint(32))
	b := expr.NewArbitrary(typedesc.Uint(32))
	c := expr.NewArbitrary(typedesc.Uint(32))

	ab := mustNode(expr.Equal(a, b))
	bc := mustNode(expr.Leq(b, c))
	both := mustNode(expr.And(ab, bc))

	groups := Groups(both)
	if groups[a.ID()] != groups[c.ID()] {
		t.Fatalf("a and c should end up in the same class transitively through b")
	}
}
