package bdd

import (
	"testing"

	"github.com/cwbudde/zen/internal/solver"
)

func TestAddWrapsModuloWidth(t *testing.T) {
	b, err := New()
	if err != nil {
		t.Fatal(err)
	}
	a, err := b.CreateIntConst(8, 250)
	if err != nil {
		t.Fatal(err)
	}
	c, err := b.CreateIntConst(8, 10)
	if err != nil {
		t.Fatal(err)
	}
	sum, err := b.Add(a, c)
	if err != nil {
		t.Fatal(err)
	}
	eq, err := b.EqBitVec(sum, mustConst(t, b, 8, 4))
	if err != nil {
		t.Fatal(err)
	}
	_, ok, err := b.Satisfiable(eq)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatalf("250+10 as uint8 did not simplify to 4 mod 256")
	}
}

func TestMultiplyUnsupported(t *testing.T) {
	b, err := New()
	if err != nil {
		t.Fatal(err)
	}
	a, _ := b.CreateIntConst(8, 2)
	c, _ := b.CreateIntConst(8, 3)
	if _, err := b.Mul(a, c); err == nil {
		t.Fatal("expected Mul to fail under the BDD backend")
	}
}

func TestSignedComparison(t *testing.T) {
	b, err := New()
	if err != nil {
		t.Fatal(err)
	}
	negOne, err := b.CreateIntConst(8, uint64(0xFF)) // -1 as int8
	if err != nil {
		t.Fatal(err)
	}
	one := mustConst(t, b, 8, 1)
	leq, err := b.SignedLeq(negOne, one)
	if err != nil {
		t.Fatal(err)
	}
	_, ok, err := b.Satisfiable(leq)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatalf("signed -1 <= 1 should hold")
	}

	unsignedLeq, err := b.UnsignedLeq(negOne, one)
	if err != nil {
		t.Fatal(err)
	}
	_, ok, err = b.Satisfiable(unsignedLeq)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatalf("unsigned 255 <= 1 should not hold")
	}
}

func mustConst(t *testing.T, b *Backend, width int, raw uint64) solver.BitVec {
	t.Helper()
	v, err := b.CreateIntConst(width, raw)
	if err != nil {
		t.Fatal(err)
	}
	return v
}
