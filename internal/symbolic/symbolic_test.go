package symbolic

import (
	"testing"

	"github.com/cwbudde/zen/internal/bdd"
	"github.com/cwbudde/zen/internal/expr"
	"github.com/cwbudde/zen/internal/typedesc"
)

func mustNode(n expr.Node, err error) expr.Node {
	if err != nil {
		panic(err)
	}
	return n
}

func TestEvaluateArbitraryIsSatisfiableEitherWay(t *testing.T) {
	b, err := bdd.New()
	if err != nil {
		t.Fatal(err)
	}
	x := expr.NewArbitrary(typedesc.Bool())
	v, err := Evaluate(x, b)
	if err != nil {
		t.Fatal(err)
	}
	_, ok, err := b.Satisfiable(v.(SymBool).Term)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatalf("a bare arbitrary bool should be satisfiable")
	}
}

func TestEvaluateArithMatchesConcreteWraparound(t *testing.T) {
	b, err := bdd.New()
	if err != nil {
		t.Fatal(err)
	}
	sum := mustNode(expr.Sum(expr.Uint8(250), expr.Uint8(10)))
	v, err := Evaluate(sum, b)
	if err != nil {
		t.Fatal(err)
	}
	four, err := b.CreateIntConst(8, 4)
	if err != nil {
		t.Fatal(err)
	}
	eq, err := b.EqBitVec(v.(SymInt).Term, four)
	if err != nil {
		t.Fatal(err)
	}
	_, ok, err := b.Satisfiable(eq)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatalf("250+10 as uint8 did not translate to 4 mod 256")
	}
}

func TestEvaluateIfMergesBranchesByGuard(t *testing.T) {
	b, err := bdd.New()
	if err != nil {
		t.Fatal(err)
	}
	guard := expr.NewArbitrary(typedesc.Bool())
	ifNode := mustNode(expr.IfThenElse(guard, expr.Uint32(1), expr.Uint32(2)))
	sess := NewSession(b)
	v, err := sess.Evaluate(ifNode)
	if err != nil {
		t.Fatal(err)
	}
	// Evaluating guard again on the same session must yield the exact
	// same solver variable as the one If's translation already used.
	guardVal, err := sess.Evaluate(guard)
	if err != nil {
		t.Fatal(err)
	}
	one, err := b.CreateIntConst(32, 1)
	if err != nil {
		t.Fatal(err)
	}
	eqOne, err := b.EqBitVec(v.(SymInt).Term, one)
	if err != nil {
		t.Fatal(err)
	}
	guardAndOne := b.And(guardVal.(SymBool).Term, eqOne)
	_, ok, err := b.Satisfiable(guardAndOne)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatalf("guard=true should force the If to equal 1")
	}
}

func TestEvaluateListCaseSumsConcreteList(t *testing.T) {
	b, err := bdd.New()
	if err != nil {
		t.Fatal(err)
	}
	elemType := typedesc.Uint(8)
	list := mustNode(expr.AddFront(expr.Uint8(3),
		mustNode(expr.AddFront(expr.Uint8(4), expr.Empty(elemType)))))

	var buildSum func(depth int, l expr.Node) expr.Node
	buildSum = func(depth int, l expr.Node) expr.Node {
		if depth == 0 {
			return expr.Uint8(0)
		}
		return mustNode(expr.Case(l, expr.Uint8(0), func(head, tail expr.Node) expr.Node {
			return mustNode(expr.Sum(head, buildSum(depth-1, tail)))
		}))
	}
	caseExpr := buildSum(2, list)

	v, err := Evaluate(caseExpr, b)
	if err != nil {
		t.Fatal(err)
	}
	seven, err := b.CreateIntConst(8, 7)
	if err != nil {
		t.Fatal(err)
	}
	eq, err := b.EqBitVec(v.(SymInt).Term, seven)
	if err != nil {
		t.Fatal(err)
	}
	_, ok, err := b.Satisfiable(eq)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatalf("sum of a concrete [3,4] list did not translate to 7")
	}
}

func TestEvaluateRecordProjectionAndUpdate(t *testing.T) {
	b, err := bdd.New()
	if err != nil {
		t.Fatal(err)
	}
	recType := typedesc.Record(
		typedesc.Field{Name: "f", Type: typedesc.Uint(32)},
		typedesc.Field{Name: "g", Type: typedesc.Bool()},
	)
	obj := mustNode(expr.NewObject(recType, map[string]expr.Node{
		"f": expr.Uint32(1), "g": expr.Bool(false),
	}))
	updated := mustNode(expr.WithField(obj, "f", expr.Uint32(42)))

	fVal, err := Evaluate(mustNode(expr.GetField(updated, "f")), b)
	if err != nil {
		t.Fatal(err)
	}
	const42, err := b.CreateIntConst(32, 42)
	if err != nil {
		t.Fatal(err)
	}
	eq, err := b.EqBitVec(fVal.(SymInt).Term, const42)
	if err != nil {
		t.Fatal(err)
	}
	_, ok, err := b.Satisfiable(eq)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatalf("updated.f did not translate to 42")
	}

	gVal, err := Evaluate(mustNode(expr.GetField(updated, "g")), b)
	if err != nil {
		t.Fatal(err)
	}
	_, ok, err = b.Satisfiable(gVal.(SymBool).Term)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatalf("updated.g should still be false (untouched by WithField)")
	}
}

func TestEvaluateArgumentIsUnreachable(t *testing.T) {
	b, err := bdd.New()
	if err != nil {
		t.Fatal(err)
	}
	arg := expr.NewArgument("x", typedesc.Bool())
	if _, err := Evaluate(arg, b); err == nil {
		t.Fatal("expected an error evaluating a bare Argument node symbolically")
	}
}
