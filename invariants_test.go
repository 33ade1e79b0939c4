package zen

import (
	"testing"

	"github.com/cwbudde/zen/internal/arbitrary"
	"github.com/cwbudde/zen/internal/expr"
	"github.com/cwbudde/zen/internal/fn"
	"github.com/cwbudde/zen/internal/interleave"
	"github.com/cwbudde/zen/internal/interp"
	"github.com/cwbudde/zen/internal/modelcheck"
	"github.com/cwbudde/zen/internal/simplify"
	"github.com/cwbudde/zen/internal/smt"
	"github.com/cwbudde/zen/internal/typedesc"
)

// 1. Soundness of find: a witness find returns must actually satisfy
// the query when interpreted concretely.
func TestInvariantFindWitnessSatisfiesTheQuery(t *testing.T) {
	f, err := modelcheck.New(modelcheck.Options{Cfg: arbitrary.Config{Depth: 1}})
	if err != nil {
		t.Fatal(err)
	}
	x := expr.NewArbitrary(typedesc.Uint(8))
	y := expr.NewArbitrary(typedesc.Uint(8))
	query := must(expr.And(
		must(expr.Equal(must(expr.Sum(x, y)), expr.Uint8(7))),
		must(expr.Leq(x, expr.Uint8(3))),
	))

	assignment, ok, err := f.Find(query)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("x+y==7 ∧ x<=3 should be satisfiable")
	}
	xv, _ := assignment.Value(x)
	yv, _ := assignment.Value(y)
	env := interp.NewEnv(nil)
	env = env.WithArbitrary(x.ID(), xv)
	env = env.WithArbitrary(y.ID(), yv)
	result, err := interp.Interpret(query, env)
	if err != nil {
		t.Fatal(err)
	}
	if b, ok := result.(interp.BoolValue); !ok || !b.V {
		t.Fatalf("witness x=%v y=%v does not satisfy the query, interpret = %v", xv, yv, result)
	}
}

// 2. Backend equivalence: BDD and the reference backend agree on
// satisfiability for a query neither backend declines.
func TestInvariantBackendsAgreeOnSatisfiability(t *testing.T) {
	facade, err := modelcheck.New(modelcheck.Options{Cfg: arbitrary.Config{Depth: 1}})
	if err != nil {
		t.Fatal(err)
	}
	a := expr.NewArbitrary(typedesc.Uint(8))
	query := must(expr.Equal(must(expr.Sum(a, expr.Uint8(1))), expr.Uint8(10)))
	_, bddOK, err := facade.Find(query)
	if err != nil {
		t.Fatal(err)
	}

	b := smt.New()
	x, err := b.CreateIntVar(8)
	if err != nil {
		t.Fatal(err)
	}
	one, err := b.CreateIntConst(8, 1)
	if err != nil {
		t.Fatal(err)
	}
	sum, err := b.Add(x, one)
	if err != nil {
		t.Fatal(err)
	}
	ten, err := b.CreateIntConst(8, 10)
	if err != nil {
		t.Fatal(err)
	}
	eq, err := b.EqBitVec(sum, ten)
	if err != nil {
		t.Fatal(err)
	}
	_, smtOK, err := b.Satisfiable(eq)
	if err != nil {
		t.Fatal(err)
	}
	if bddOK != smtOK {
		t.Fatalf("backends disagree: bdd=%v smt=%v", bddOK, smtOK)
	}
}

// 3. Simplifier soundness: simplifying an expression never changes
// its concretely interpreted value.
func TestInvariantSimplifierPreservesValue(t *testing.T) {
	e := must(expr.Sum(must(expr.ComplementBits(must(expr.ComplementBits(expr.Uint16(40))))), expr.Uint16(2)))
	before, err := interp.Interpret(e, interp.NewEnv(nil))
	if err != nil {
		t.Fatal(err)
	}
	simplified, err := simplify.Simplify(e)
	if err != nil {
		t.Fatal(err)
	}
	after, err := interp.Interpret(simplified, interp.NewEnv(nil))
	if err != nil {
		t.Fatal(err)
	}
	if !interp.Equal(before, after) {
		t.Fatalf("simplify changed the value: before=%v after=%v", before, after)
	}
}

// 4. Compile/interpret equivalence: Func.Compile's closure and
// fn.Interpret must agree on every input.
func TestInvariantCompileAgreesWithInterpret(t *testing.T) {
	double := fn.New(typedesc.Uint(8), func(arg expr.Node) expr.Node {
		return must(expr.Sum(arg, arg))
	})
	closure := fn.Compile(double)
	for _, in := range []uint8{0, 1, 100, 255} {
		input := interp.NewInt(typedesc.KindUint8, int64(in))
		viaInterpret, err := fn.Interpret(double, input)
		if err != nil {
			t.Fatal(err)
		}
		viaCompile, err := closure(input)
		if err != nil {
			t.Fatal(err)
		}
		if !interp.Equal(viaInterpret, viaCompile) {
			t.Fatalf("input %d: interpret=%v compile=%v", in, viaInterpret, viaCompile)
		}
	}
}

// 5. Hash-cons identity: building the same expression twice yields the
// same node, identified by ID.
func TestInvariantHashConsIdentity(t *testing.T) {
	a := must(expr.Sum(expr.Uint32(1), expr.Uint32(2)))
	b := must(expr.Sum(expr.Uint32(1), expr.Uint32(2)))
	if a.ID() != b.ID() {
		t.Fatalf("two constructions of the same expression got different IDs: %d vs %d", a.ID(), b.ID())
	}
}

// 6. Transformer round-trip: for an invertible function, the preimage
// of the image of the full set is the full set again.
func TestInvariantTransformerRoundTripOnAnInvertibleFunction(t *testing.T) {
	facade, err := modelcheck.New(modelcheck.Options{Cfg: arbitrary.Config{Depth: 1}})
	if err != nil {
		t.Fatal(err)
	}
	u8 := typedesc.Uint(8)
	increment := fn.New(u8, func(arg expr.Node) expr.Node {
		return must(expr.Sum(arg, expr.Uint8(1)))
	})
	tr, err := facade.StateTransformer(increment)
	if err != nil {
		t.Fatal(err)
	}
	full, err := facade.Space().Full(u8)
	if err != nil {
		t.Fatal(err)
	}
	image, err := tr.TransformForward(full)
	if err != nil {
		t.Fatal(err)
	}
	preimage, err := tr.TransformBackwards(image)
	if err != nil {
		t.Fatal(err)
	}
	equal, err := preimage.Equal(full)
	if err != nil {
		t.Fatal(err)
	}
	if !equal {
		t.Fatal("preimage of the image of the full set should be the full set again for +1, which is a bijection on uint8")
	}
}

// 7. Relational-algebra laws: intersection with a complement is
// empty, union with a complement is full, intersection with self is
// identity.
func TestInvariantRelationalAlgebraLaws(t *testing.T) {
	facade, err := modelcheck.New(modelcheck.Options{Cfg: arbitrary.Config{Depth: 1}})
	if err != nil {
		t.Fatal(err)
	}
	u8 := typedesc.Uint(8)
	lowHalf := fn.New(u8, func(arg expr.Node) expr.Node {
		return must(expr.Leq(arg, expr.Uint8(127)))
	})
	s, err := facade.Space().FromInvariant(lowHalf)
	if err != nil {
		t.Fatal(err)
	}

	self, err := s.Intersect(s)
	if err != nil {
		t.Fatal(err)
	}
	if eq, err := self.Equal(s); err != nil || !eq {
		t.Fatalf("A ∩ A should equal A, eq=%v err=%v", eq, err)
	}

	complement, err := s.Complement()
	if err != nil {
		t.Fatal(err)
	}
	emptyIntersection, err := s.Intersect(complement)
	if err != nil {
		t.Fatal(err)
	}
	if empty, err := emptyIntersection.IsEmpty(); err != nil || !empty {
		t.Fatalf("A ∩ ¬A should be empty, empty=%v err=%v", empty, err)
	}

	fullUnion, err := s.Union(complement)
	if err != nil {
		t.Fatal(err)
	}
	if full, err := fullUnion.IsFull(); err != nil || !full {
		t.Fatalf("A ∪ ¬A should be full, full=%v err=%v", full, err)
	}
}

// 8. Interleaving soundness: two arbitraries combined directly by an
// arithmetic operator land in the same group.
func TestInvariantInterleavingGroupsCoupledArbitraries(t *testing.T) {
	a := expr.NewArbitrary(typedesc.Uint(8))
	b := expr.NewArbitrary(typedesc.Uint(8))
	c := expr.NewArbitrary(typedesc.Uint(8))
	query := must(expr.And(
		must(expr.Equal(must(expr.Sum(a, b)), expr.Uint8(7))),
		must(expr.Leq(c, expr.Uint8(3))),
	))
	groups := interleave.Groups(query)
	if groups[a.ID()] != groups[b.ID()] {
		t.Fatal("a and b co-occur in a + b == 7 and should share a group")
	}
	if groups[a.ID()] == groups[c.ID()] {
		t.Fatal("c never interacts with a or b and should not share their group")
	}
}

// 9. Idempotence of canonicalisation: simplifying an already-simplified
// expression is a no-op.
func TestInvariantSimplifyIsIdempotent(t *testing.T) {
	e := must(expr.Sum(must(expr.ComplementBits(must(expr.ComplementBits(expr.Uint8(9))))), expr.Uint8(0)))
	once, err := simplify.Simplify(e)
	if err != nil {
		t.Fatal(err)
	}
	twice, err := simplify.Simplify(once)
	if err != nil {
		t.Fatal(err)
	}
	if once.ID() != twice.ID() {
		t.Fatalf("simplify is not idempotent: simplify(e)=%s simplify(simplify(e))=%s", once, twice)
	}
}
