package bdd

import (
	"github.com/cwbudde/zen/internal/solver"
	"github.com/cwbudde/zen/internal/zerr"
	"github.com/dalzilio/rudd"
)

func widthMismatch(op string, a, c int) error {
	return zerr.New(zerr.InvalidConstruction, "bdd: %s: bit-vector width mismatch, %d vs %d", op, a, c)
}

// fullAdder returns (sum, carryOut) for one bit position, the
// standard two-gate-layer boolean circuit: sum = a xor b xor cin,
// carry = (a & b) | (cin & (a xor b)).
func (b *Backend) fullAdder(a, c, cin rudd.Node) (sum, carryOut rudd.Node) {
	axc := b.xor(a, c)
	sum = b.xor(axc, cin)
	carryOut = b.mgr.Apply(
		b.mgr.Apply(a, c, rudd.OPand),
		b.mgr.Apply(cin, axc, rudd.OPand),
		rudd.OPor,
	)
	return sum, carryOut
}

// rippleAdd adds two equal-width bit-vectors (LSB first) with the
// given carry-in, producing width result bits and discarding the
// final carry-out (wraparound arithmetic, matching
// internal/interp.IntValue's masked-width semantics).
func (b *Backend) rippleAdd(a, c []rudd.Node, carryIn rudd.Node) []rudd.Node {
	out := make([]rudd.Node, len(a))
	carry := carryIn
	for i := range a {
		out[i], carry = b.fullAdder(a[i], c[i], carry)
	}
	return out
}

func (b *Backend) Add(a, c solver.BitVec) (solver.BitVec, error) {
	av, cv := asBitVec(a), asBitVec(c)
	if av.Width() != cv.Width() {
		return nil, widthMismatch("Add", av.Width(), cv.Width())
	}
	return bitVecTerm{bits: b.rippleAdd(av.bits, cv.bits, b.mgr.False())}, nil
}

// Sub computes a - b as a + (^b) + 1, two's-complement subtraction
// built from the same ripple adder as Add.
func (b *Backend) Sub(a, c solver.BitVec) (solver.BitVec, error) {
	av, cv := asBitVec(a), asBitVec(c)
	if av.Width() != cv.Width() {
		return nil, widthMismatch("Sub", av.Width(), cv.Width())
	}
	negC := make([]rudd.Node, len(cv.bits))
	for i, n := range cv.bits {
		negC[i] = b.mgr.Not(n)
	}
	return bitVecTerm{bits: b.rippleAdd(av.bits, negC, b.mgr.True())}, nil
}

// Mul has no sound encoding as a fixed-size boolean circuit without
// also fixing a multiplication width-extension policy the
// specification leaves to the bit-vector solver backend itself
// (spec.md §3.1(v)): the BDD backend declines it outright rather than
// silently choosing a policy.
func (b *Backend) Mul(a, c solver.BitVec) (solver.BitVec, error) {
	return nil, zerr.New(zerr.UnsupportedByBackend, "bdd: Multiply is not supported by the BDD backend")
}

// flipSign returns a copy of bits with the most-significant (last)
// bit negated — the standard "offset binary" trick that reduces a
// signed comparison to an unsigned one.
func flipSign(b *Backend, bits []rudd.Node) []rudd.Node {
	out := append([]rudd.Node(nil), bits...)
	top := len(out) - 1
	out[top] = b.mgr.Not(out[top])
	return out
}

// unsignedLeq builds a <= c via the textbook MSB-to-LSB ripple
// comparator: track "strictly less so far" and "equal so far" as we
// walk from the most significant bit down.
func (b *Backend) unsignedLeq(a, c []rudd.Node) rudd.Node {
	lt := b.mgr.False()
	eq := b.mgr.True()
	for i := len(a) - 1; i >= 0; i-- {
		bitLt := b.mgr.Apply(b.mgr.Apply(b.mgr.Not(a[i]), c[i], rudd.OPand), eq, rudd.OPand)
		lt = b.mgr.Apply(lt, bitLt, rudd.OPor)
		eq = b.mgr.Apply(eq, b.mgr.Apply(a[i], c[i], rudd.OPbiimp), rudd.OPand)
	}
	return b.mgr.Apply(lt, eq, rudd.OPor)
}

func (b *Backend) UnsignedLeq(a, c solver.BitVec) (solver.Bool, error) {
	av, cv := asBitVec(a), asBitVec(c)
	if av.Width() != cv.Width() {
		return nil, widthMismatch("UnsignedLeq", av.Width(), cv.Width())
	}
	return boolTerm{n: b.unsignedLeq(av.bits, cv.bits)}, nil
}

func (b *Backend) UnsignedGeq(a, c solver.BitVec) (solver.Bool, error) {
	av, cv := asBitVec(a), asBitVec(c)
	if av.Width() != cv.Width() {
		return nil, widthMismatch("UnsignedGeq", av.Width(), cv.Width())
	}
	return boolTerm{n: b.unsignedLeq(cv.bits, av.bits)}, nil
}

func (b *Backend) SignedLeq(a, c solver.BitVec) (solver.Bool, error) {
	av, cv := asBitVec(a), asBitVec(c)
	if av.Width() != cv.Width() {
		return nil, widthMismatch("SignedLeq", av.Width(), cv.Width())
	}
	return boolTerm{n: b.unsignedLeq(flipSign(b, av.bits), flipSign(b, cv.bits))}, nil
}

func (b *Backend) SignedGeq(a, c solver.BitVec) (solver.Bool, error) {
	av, cv := asBitVec(a), asBitVec(c)
	if av.Width() != cv.Width() {
		return nil, widthMismatch("SignedGeq", av.Width(), cv.Width())
	}
	return boolTerm{n: b.unsignedLeq(flipSign(b, cv.bits), flipSign(b, av.bits))}, nil
}
