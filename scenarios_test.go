package zen

import (
	"testing"

	"github.com/cwbudde/zen/internal/arbitrary"
	"github.com/cwbudde/zen/internal/expr"
	"github.com/cwbudde/zen/internal/fn"
	"github.com/cwbudde/zen/internal/interp"
	"github.com/cwbudde/zen/internal/modelcheck"
	"github.com/cwbudde/zen/internal/simplify"
	"github.com/cwbudde/zen/internal/smt"
	"github.com/cwbudde/zen/internal/typedesc"
	"github.com/gkampitakis/go-snaps/snaps"
)

func must(n expr.Node, err error) expr.Node {
	if err != nil {
		panic(err)
	}
	return n
}

// S1: find(a:uint32, a + 4 == 10) under BDD finds a = 6.
func TestScenarioS1FindsAnArithmeticWitness(t *testing.T) {
	f, err := modelcheck.New(modelcheck.Options{Cfg: arbitrary.Config{Depth: 1}})
	if err != nil {
		t.Fatal(err)
	}
	a := expr.NewArbitrary(typedesc.Uint(32))
	query := must(expr.Equal(must(expr.Sum(a, expr.Uint32(4))), expr.Uint32(10)))

	assignment, ok, err := f.Find(query)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("a+4==10 should be satisfiable")
	}
	v, ok := assignment.Value(a)
	if !ok {
		t.Fatal("assignment should bind a")
	}
	snaps.MatchSnapshot(t, "s1_witness", v.String())
}

// S2: find(a,b:uint32, a*b==10) under BDD declines with
// UnsupportedByBackend: the BDD backend has no sound fixed-width
// circuit for multiplication.
func TestScenarioS2MultiplicationUnsupportedUnderBDD(t *testing.T) {
	f, err := modelcheck.New(modelcheck.Options{Cfg: arbitrary.Config{Depth: 1}})
	if err != nil {
		t.Fatal(err)
	}
	a := expr.NewArbitrary(typedesc.Uint(32))
	b := expr.NewArbitrary(typedesc.Uint(32))
	query := must(expr.Equal(must(expr.Multiply(a, b)), expr.Uint32(10)))

	_, _, err = f.Find(query)
	if err == nil {
		t.Fatal("a*b==10 should fail to evaluate under the BDD backend")
	}
}

// S3: the same query, over 8-bit variables, against the reference
// backend finds a witness,
// since a brute-force evaluator never has to build a circuit for
// multiplication in the first place.
func TestScenarioS3MultiplicationSatisfiableUnderSMT(t *testing.T) {
	b := smt.New()
	a, err := b.CreateIntVar(8)
	if err != nil {
		t.Fatal(err)
	}
	c, err := b.CreateIntVar(8)
	if err != nil {
		t.Fatal(err)
	}
	prod, err := b.Mul(a, c)
	if err != nil {
		t.Fatal(err)
	}
	ten, err := b.CreateIntConst(8, 10)
	if err != nil {
		t.Fatal(err)
	}
	eq, err := b.EqBitVec(prod, ten)
	if err != nil {
		t.Fatal(err)
	}
	m, ok, err := b.Satisfiable(eq)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("a*b==10 should be satisfiable under the reference backend")
	}
	if got := (m.BitVec(a) * m.BitVec(c)) & 0xFF; got != 10 {
		t.Fatalf("a*b = %d, want 10", got)
	}
}

// S4: bitwise double negation simplifies away to the identical
// hash-consed node.
func TestScenarioS4DoubleNegationSimplifiesToIdentity(t *testing.T) {
	three := expr.Uint8(3)
	doubleNot := must(expr.ComplementBits(must(expr.ComplementBits(three))))

	simplified, err := simplify.Simplify(doubleNot)
	if err != nil {
		t.Fatal(err)
	}
	plain, err := simplify.Simplify(three)
	if err != nil {
		t.Fatal(err)
	}
	if simplified.ID() != plain.ID() {
		t.Fatalf("simplify(~~3) = %s, want the same node as simplify(3) = %s", simplified, plain)
	}
}

// S5: transforming λ i:uint32. i + 1 and asking for the output set
// constrained to o == 10 has exactly one element, 10.
func TestScenarioS5TransformerOutputSetElement(t *testing.T) {
	f, err := modelcheck.New(modelcheck.Options{Cfg: arbitrary.Config{Depth: 1}})
	if err != nil {
		t.Fatal(err)
	}
	increment := fn.New(typedesc.Uint(32), func(arg expr.Node) expr.Node {
		return must(expr.Sum(arg, expr.Uint32(1)))
	})
	tr, err := f.StateTransformer(increment)
	if err != nil {
		t.Fatal(err)
	}

	outIsTen := fn.New(tr.PairType(), func(pair expr.Node) expr.Node {
		o := must(expr.GetField(pair, "y"))
		return must(expr.Equal(o, expr.Uint32(10)))
	})
	outputSet, err := tr.OutputSet(outIsTen)
	if err != nil {
		t.Fatal(err)
	}
	v, ok, err := outputSet.Element()
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("outputSet(o==10) should be non-empty")
	}
	iv, ok := v.(interp.IntValue)
	if !ok || iv.Unsigned() != 10 {
		t.Fatalf("element() = %v, want 10", v)
	}
}

// S6: for the same transformer, the input sets pinned to two
// different, mutually exclusive output values don't overlap.
func TestScenarioS6TransformerInputSetsDisjoint(t *testing.T) {
	f, err := modelcheck.New(modelcheck.Options{Cfg: arbitrary.Config{Depth: 1}})
	if err != nil {
		t.Fatal(err)
	}
	increment := fn.New(typedesc.Uint(32), func(arg expr.Node) expr.Node {
		return must(expr.Sum(arg, expr.Uint32(1)))
	})
	tr, err := f.StateTransformer(increment)
	if err != nil {
		t.Fatal(err)
	}

	outIs := func(target uint32) *fn.Func {
		return fn.New(tr.PairType(), func(pair expr.Node) expr.Node {
			o := must(expr.GetField(pair, "y"))
			return must(expr.Equal(o, expr.Uint32(target)))
		})
	}
	in10, err := tr.InputSet(outIs(10))
	if err != nil {
		t.Fatal(err)
	}
	in11, err := tr.InputSet(outIs(11))
	if err != nil {
		t.Fatal(err)
	}
	overlap, err := in10.Intersect(in11)
	if err != nil {
		t.Fatal(err)
	}
	empty, err := overlap.IsEmpty()
	if err != nil {
		t.Fatal(err)
	}
	if !empty {
		t.Fatal("inputSet(o==10) and inputSet(o==11) should not overlap, since + 1 is a function")
	}
}

// S7: an access-control list of two range-based rules, evaluated
// against a concrete point that the first rule covers, decides allow.
func TestScenarioS7AccessControlListDecidesAllow(t *testing.T) {
	u8 := typedesc.Uint(8)
	dst, src := expr.NewArgument("dst", u8), expr.NewArgument("src", u8)

	inRange := func(x expr.Node, lo, hi uint8) expr.Node {
		return must(expr.And(
			must(expr.Geq(x, expr.Uint8(lo))),
			must(expr.Leq(x, expr.Uint8(hi))),
		))
	}
	rule1 := must(expr.And(inRange(dst, 10, 20), inRange(src, 7, 39)))
	rule2 := must(expr.And(inRange(dst, 0, 100), inRange(src, 0, 100)))

	allow, deny := expr.Bool(true), expr.Bool(false)
	decision := must(expr.IfThenElse(rule1, allow, must(expr.IfThenElse(rule2, deny, deny))))

	env := interp.NewEnv(map[string]interp.Value{
		"dst": interp.NewInt(typedesc.KindUint8, 12),
		"src": interp.NewInt(typedesc.KindUint8, 8),
	})
	v, err := interp.Interpret(decision, env)
	if err != nil {
		t.Fatal(err)
	}
	b, ok := v.(interp.BoolValue)
	if !ok || !b.V {
		t.Fatalf("{dst=12,src=8} should decide allow, got %v", v)
	}
}
