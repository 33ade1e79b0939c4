package expr

import (
	"testing"

	"github.com/cwbudde/zen/internal/typedesc"
)

// TestHashConsIdentity checks the hash-cons invariant of spec.md §8:
// structurally identical subtrees constructed via factories are
// pointer-identical.
func TestHashConsIdentity(t *testing.T) {
	resetInternTableForTest()

	a1 := Uint32(6)
	a2 := Uint32(6)
	if a1 != a2 {
		t.Fatalf("Uint32(6) not hash-consed: %p != %p", a1, a2)
	}

	arb := NewArbitrary(typedesc.Uint(32))
	n1, err := Sum(arb, Uint32(4))
	if err != nil {
		t.Fatal(err)
	}
	n2, err := Sum(arb, Uint32(4))
	if err != nil {
		t.Fatal(err)
	}
	if n1 != n2 {
		t.Fatalf("Sum(arb, 4) not hash-consed across calls")
	}

	eq1, err := Equal(n1, Uint32(10))
	if err != nil {
		t.Fatal(err)
	}
	eq2, err := Equal(n2, Uint32(10))
	if err != nil {
		t.Fatal(err)
	}
	if eq1 != eq2 {
		t.Fatalf("Eq(Sum(arb,4), 10) not hash-consed")
	}
}

// TestArbitraryIsNeverHashConsed checks that two arbitraries of the
// same type are nonetheless distinct free variables.
func TestArbitraryIsNeverHashConsed(t *testing.T) {
	resetInternTableForTest()

	a := NewArbitrary(typedesc.Uint(32))
	b := NewArbitrary(typedesc.Uint(32))
	if a == b {
		t.Fatalf("two NewArbitrary(uint32) calls produced the same node")
	}
	if a.ID() == b.ID() {
		t.Fatalf("two NewArbitrary(uint32) calls produced the same ID")
	}
}

func TestConstructionValidation(t *testing.T) {
	resetInternTableForTest()

	if _, err := And(Bool(true), Uint8(1)); err == nil {
		t.Fatalf("And(bool, uint8) should fail InvalidConstruction")
	}

	if _, err := Sum(Uint8(1), Uint16(1)); err == nil {
		t.Fatalf("Sum across mismatched widths should fail InvalidConstruction")
	}

	recType := typedesc.Record(typedesc.Field{Name: "x", Type: typedesc.Uint(32)})
	obj, err := NewObject(recType, map[string]Node{"x": Uint32(1)})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := GetField(obj, "y"); err == nil {
		t.Fatalf("GetField on unknown field should fail InvalidConstruction")
	}
}

func TestRecordFieldRoundTrip(t *testing.T) {
	resetInternTableForTest()

	recType := typedesc.Record(
		typedesc.Field{Name: "f", Type: typedesc.Uint(32)},
		typedesc.Field{Name: "g", Type: typedesc.Bool()},
	)
	v := Uint32(7)
	obj, err := NewObject(recType, map[string]Node{"f": v, "g": Bool(true)})
	if err != nil {
		t.Fatal(err)
	}
	got, err := GetField(obj, "f")
	if err != nil {
		t.Fatal(err)
	}
	if got.(*GetFieldNode).Obj != obj || got.(*GetFieldNode).Field != "f" {
		t.Fatalf("GetField did not project the expected field")
	}

	updated, err := WithField(obj, "f", Uint32(9))
	if err != nil {
		t.Fatal(err)
	}
	wf := updated.(*WithFieldNode)
	if wf.Field != "f" || wf.Value != Uint32(9) {
		t.Fatalf("WithField did not record the replacement value")
	}
}

func TestListCaseBoundVariablesAreFresh(t *testing.T) {
	resetInternTableForTest()

	elemType := typedesc.Uint(8)
	listType := typedesc.List(elemType)
	empty := Uint8(0)

	list := Empty(elemType)
	caseNode, err := Case(list, empty, func(head, tail Node) Node {
		return head
	})
	if err != nil {
		t.Fatal(err)
	}
	lc := caseNode.(*ListCase)
	if !lc.Head.Type().Equal(elemType) {
		t.Fatalf("Head type = %s, want %s", lc.Head.Type(), elemType)
	}
	if !lc.Tail.Type().Equal(listType) {
		t.Fatalf("Tail type = %s, want %s", lc.Tail.Type(), listType)
	}
}
