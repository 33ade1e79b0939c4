package zen

import (
	"testing"

	"github.com/cwbudde/zen/internal/arbitrary"
	"github.com/cwbudde/zen/internal/expr"
	"github.com/cwbudde/zen/internal/interp"
	"github.com/cwbudde/zen/internal/modelcheck"
	"github.com/cwbudde/zen/internal/typedesc"
)

// find(true) = Some(∅): a query with no free variables is vacuously
// satisfiable, with an empty witness.
func TestBoundaryFindTrueIsSatisfiableWithNoWitness(t *testing.T) {
	f, err := modelcheck.New(modelcheck.Options{Cfg: arbitrary.Config{Depth: 1}})
	if err != nil {
		t.Fatal(err)
	}
	_, ok, err := f.Find(expr.Bool(true))
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("find(true) should be satisfiable")
	}
}

// find(false) = None.
func TestBoundaryFindFalseIsUnsatisfiable(t *testing.T) {
	f, err := modelcheck.New(modelcheck.Options{Cfg: arbitrary.Config{Depth: 1}})
	if err != nil {
		t.Fatal(err)
	}
	_, ok, err := f.Find(expr.Bool(false))
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("find(false) should be unsatisfiable")
	}
}

// GetField(CreateObject(..., f: v, ...), f) = v, and
// WithField(CreateObject(..., f: v, ...), f, w).f = w.
func TestBoundaryRecordFieldAccessors(t *testing.T) {
	t8 := typedesc.Uint(8)
	recType := typedesc.Record(typedesc.Field{Name: "f", Type: t8})

	obj, err := expr.NewObject(recType, map[string]expr.Node{"f": expr.Uint8(5)})
	if err != nil {
		t.Fatal(err)
	}
	got, err := expr.GetField(obj, "f")
	if err != nil {
		t.Fatal(err)
	}
	v, err := interp.Interpret(got, interp.NewEnv(nil))
	if err != nil {
		t.Fatal(err)
	}
	if v.(interp.IntValue).Unsigned() != 5 {
		t.Fatalf("GetField(obj, f) = %v, want 5", v)
	}

	updated, err := expr.WithField(obj, "f", expr.Uint8(9))
	if err != nil {
		t.Fatal(err)
	}
	gotUpdated, err := expr.GetField(updated, "f")
	if err != nil {
		t.Fatal(err)
	}
	vUpdated, err := interp.Interpret(gotUpdated, interp.NewEnv(nil))
	if err != nil {
		t.Fatal(err)
	}
	if vUpdated.(interp.IntValue).Unsigned() != 9 {
		t.Fatalf("WithField(obj, f, 9).f = %v, want 9", vUpdated)
	}
}

// Not(Not(x)) ≡ x, and the bitwise counterpart ~~x ≡ x, checked by
// concrete interpretation rather than node identity (simplify already
// covers the canonicalisation angle in the scenario tests).
func TestBoundaryDoubleNegationIsIdentity(t *testing.T) {
	x := expr.Bool(true)
	doubleNot, err := expr.Negate(must(expr.Negate(x)))
	if err != nil {
		t.Fatal(err)
	}
	v, err := interp.Interpret(doubleNot, interp.NewEnv(nil))
	if err != nil {
		t.Fatal(err)
	}
	if !v.(interp.BoolValue).V {
		t.Fatalf("Not(Not(true)) = %v, want true", v)
	}

	n := expr.Uint8(0x3C)
	doubleComplement, err := expr.ComplementBits(must(expr.ComplementBits(n)))
	if err != nil {
		t.Fatal(err)
	}
	cv, err := interp.Interpret(doubleComplement, interp.NewEnv(nil))
	if err != nil {
		t.Fatal(err)
	}
	if cv.(interp.IntValue).Unsigned() != 0x3C {
		t.Fatalf("~~0x3C = %v, want 0x3C", cv)
	}
}

// List Case(Empty, empty, cons) ≡ empty; Case(AddFront(h, t), empty,
// cons) ≡ cons(h, t).
func TestBoundaryListCaseMatchesEmptyAndCons(t *testing.T) {
	u8 := typedesc.Uint(8)
	emptyBranch := expr.Uint8(0)

	emptyCase, err := expr.Case(expr.Empty(u8), emptyBranch, func(head, tail expr.Node) expr.Node {
		return emptyBranch
	})
	if err != nil {
		t.Fatal(err)
	}
	emptyResult, err := interp.Interpret(emptyCase, interp.NewEnv(nil))
	if err != nil {
		t.Fatal(err)
	}
	wantEmpty, err := interp.Interpret(emptyBranch, interp.NewEnv(nil))
	if err != nil {
		t.Fatal(err)
	}
	if !interp.Equal(emptyResult, wantEmpty) {
		t.Fatalf("Case(Empty, empty, cons) = %v, want %v", emptyResult, wantEmpty)
	}

	list, err := expr.AddFront(expr.Uint8(7), expr.Empty(u8))
	if err != nil {
		t.Fatal(err)
	}
	consCase, err := expr.Case(list, emptyBranch, func(head, tail expr.Node) expr.Node {
		return head
	})
	if err != nil {
		t.Fatal(err)
	}
	consResult, err := interp.Interpret(consCase, interp.NewEnv(nil))
	if err != nil {
		t.Fatal(err)
	}
	if consResult.(interp.IntValue).Unsigned() != 7 {
		t.Fatalf("Case(AddFront(7, Empty), empty, cons) = %v, want cons(7, Empty) = 7", consResult)
	}
}
