package simplify

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

// TestDoubleNegation covers the S4 boundary behaviour: simplify(~~(byte
// 3)) == simplify(byte 3), i.e. identical hash-consed nodes.
func TestDoubleNegation(t *testing.T) {
	three := expr.Uint8(3)
	doubled := mustNode(expr.ComplementBits(mustNode(expr.ComplementBits(three))))

	got, err := Simplify(doubled)
	if err != nil {
		t.Fatal(err)
	}
	want, err := Simplify(three)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("simplify(~~3) = %v, want identical node to simplify(3) = %v", got, want)
	}
}

func TestLogicalNotNotAndConstantFold(t *testing.T) {
	arb := expr.NewArbitrary(typedesc.Bool())
	doubled := mustNode(expr.Negate(mustNode(expr.Negate(arb))))
	got, err := Simplify(doubled)
	if err != nil {
		t.Fatal(err)
	}
	if got != arb {
		t.Fatalf("simplify(!!x) = %v, want x", got)
	}

	andTrue := mustNode(expr.And(expr.Bool(true), arb))
	got, err = Simplify(andTrue)
	if err != nil {
		t.Fatal(err)
	}
	if got != arb {
		t.Fatalf("simplify(And(true, x)) = %v, want x", got)
	}

	andFalse := mustNode(expr.And(expr.Bool(false), arb))
	got, err = Simplify(andFalse)
	if err != nil {
		t.Fatal(err)
	}
	if got != expr.Bool(false) {
		t.Fatalf("simplify(And(false, x)) = %v, want false", got)
	}
}

func TestIfConstantGuard(t *testing.T) {
	a := expr.Uint32(1)
	b := expr.Uint32(2)

	got, err := Simplify(mustNode(expr.IfThenElse(expr.Bool(true), a, b)))
	if err != nil {
		t.Fatal(err)
	}
	if got != a {
		t.Fatalf("simplify(If(true,a,b)) = %v, want a", got)
	}

	got, err = Simplify(mustNode(expr.IfThenElse(expr.Bool(false), a, b)))
	if err != nil {
		t.Fatal(err)
	}
	if got != b {
		t.Fatalf("simplify(If(false,a,b)) = %v, want b", got)
	}
}

func TestGetFieldFusesThroughCreateObjectAndWithField(t *testing.T) {
	recType := typedesc.Record(
		typedesc.Field{Name: "f", Type: typedesc.Uint(32)},
		typedesc.Field{Name: "g", Type: typedesc.Bool()},
	)
	v := expr.Uint32(7)
	obj := mustNode(expr.NewObject(recType, map[string]expr.Node{"f": v, "g": expr.Bool(true)}))

	got, err := Simplify(mustNode(expr.GetField(obj, "f")))
	if err != nil {
		t.Fatal(err)
	}
	if got != v {
		t.Fatalf("GetField(CreateObject(...,f:v,...), f) = %v, want v = %v", got, v)
	}

	updated := mustNode(expr.WithField(obj, "f", expr.Uint32(9)))
	got, err = Simplify(mustNode(expr.GetField(updated, "f")))
	if err != nil {
		t.Fatal(err)
	}
	if got != expr.Uint32(9) {
		t.Fatalf("WithField(...).f = %v, want 9", got)
	}

	// Projecting a different field than the one WithField touched must
	// fall through to the untouched original.
	got, err = Simplify(mustNode(expr.GetField(updated, "g")))
	if err != nil {
		t.Fatal(err)
	}
	if got != expr.Bool(true) {
		t.Fatalf("WithField(obj,f,_).g = %v, want obj.g = true", got)
	}
}

func TestListCaseBoundaryBehaviours(t *testing.T) {
	elemType := typedesc.Uint(8)
	emptyResult := expr.Uint8(0)

	// Case(Empty, empty, cons) == empty
	caseOnEmpty := mustNode(expr.Case(expr.Empty(elemType), emptyResult, func(head, tail expr.Node) expr.Node {
		return mustNode(expr.Sum(head, emptyResult))
	}))
	got, err := Simplify(caseOnEmpty)
	if err != nil {
		t.Fatal(err)
	}
	if got != emptyResult {
		t.Fatalf("Case(Empty, empty, cons) = %v, want empty = %v", got, emptyResult)
	}

	// Case(AddFront(h, t), empty, cons) == cons(h, t)
	h := expr.Uint8(5)
	listVal := mustNode(expr.AddFront(h, expr.Empty(elemType)))
	caseOnCons := mustNode(expr.Case(listVal, emptyResult, func(head, tail expr.Node) expr.Node {
		return mustNode(expr.Sum(head, expr.Uint8(1)))
	}))
	got, err = Simplify(caseOnCons)
	if err != nil {
		t.Fatal(err)
	}
	want, err := Simplify(mustNode(expr.Sum(h, expr.Uint8(1))))
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("Case(AddFront(h,t), empty, cons) = %v, want cons(h,t) = %v", got, want)
	}
}

func TestArithmeticConstantFolding(t *testing.T) {
	got, err := Simplify(mustNode(expr.Sum(expr.Uint8(250), expr.Uint8(10))))
	if err != nil {
		t.Fatal(err)
	}
	if got != expr.Uint8(4) { // wraps mod 256
		t.Fatalf("simplify(250+10 as uint8) = %v, want 4 (mod 256)", got)
	}
}
