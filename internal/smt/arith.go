package smt

import "github.com/cwbudde/zen/internal/solver"

// fullAdder mirrors internal/bdd's circuit, evaluated directly instead
// of compiled into diagram nodes: sum = a xor b xor cin, carry = (a &
// b) | (cin & (a xor b)).
func fullAdder(a, c, cin boolTerm) (sum, carryOut boolTerm) {
	sum = boolTerm{idx: -1, eval: func(asg assignment) bool {
		return (a.eval(asg) != c.eval(asg)) != cin.eval(asg)
	}}
	carryOut = boolTerm{idx: -1, eval: func(asg assignment) bool {
		av, cv, cinv := a.eval(asg), c.eval(asg), cin.eval(asg)
		return (av && cv) || (cinv && (av != cv))
	}}
	return sum, carryOut
}

// rippleAdd adds two equal-width bit-vectors (LSB first) with the
// given carry-in, discarding the final carry-out, matching
// internal/interp.IntValue's masked-width wraparound semantics.
func rippleAdd(a, c []boolTerm, carryIn boolTerm) []boolTerm {
	out := make([]boolTerm, len(a))
	carry := carryIn
	for i := range a {
		out[i], carry = fullAdder(a[i], c[i], carry)
	}
	return out
}

func constBit(v bool) boolTerm {
	return boolTerm{idx: -1, eval: func(assignment) bool { return v }}
}

func (b *Backend) Add(x, y solver.BitVec) (solver.BitVec, error) {
	xv, yv := asBitVec(x), asBitVec(y)
	if xv.Width() != yv.Width() {
		return nil, widthMismatch("Add", xv.Width(), yv.Width())
	}
	return bitVecTerm{bits: rippleAdd(xv.bits, yv.bits, constBit(false))}, nil
}

// Sub computes a - b as a + (^b) + 1.
func (b *Backend) Sub(x, y solver.BitVec) (solver.BitVec, error) {
	xv, yv := asBitVec(x), asBitVec(y)
	if xv.Width() != yv.Width() {
		return nil, widthMismatch("Sub", xv.Width(), yv.Width())
	}
	negY := make([]boolTerm, len(yv.bits))
	for i, n := range yv.bits {
		n := n
		negY[i] = boolTerm{idx: -1, eval: func(a assignment) bool { return !n.eval(a) }}
	}
	return bitVecTerm{bits: rippleAdd(xv.bits, negY, constBit(true))}, nil
}

// valueOf reconstructs a bit-vector's raw value from its per-bit terms
// against one candidate assignment, the inverse of CreateIntConst's
// bit decomposition.
func valueOf(bits []boolTerm, a assignment) uint64 {
	var v uint64
	for i, t := range bits {
		if t.eval(a) {
			v |= 1 << uint(i)
		}
	}
	return v
}

func widthMask(width int) uint64 {
	if width == 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(width)) - 1
}

// Mul multiplies by reconstructing both operands' raw values and
// truncating the Go product to width. Unlike internal/bdd, which
// declines multiplication outright for lack of a sound boolean-circuit
// encoding (spec.md §3.1(v)), a brute-force evaluator never builds a
// circuit in the first place, so the width-extension question that
// blocks the BDD backend doesn't arise here — this is exactly the
// distinction spec.md §8's S2/S3 scenarios exercise between the two
// backends.
func (b *Backend) Mul(x, y solver.BitVec) (solver.BitVec, error) {
	xv, yv := asBitVec(x), asBitVec(y)
	if xv.Width() != yv.Width() {
		return nil, widthMismatch("Mul", xv.Width(), yv.Width())
	}
	width := xv.Width()
	mask := widthMask(width)
	bits := make([]boolTerm, width)
	for i := range bits {
		i := i
		bits[i] = boolTerm{idx: -1, eval: func(a assignment) bool {
			prod := (valueOf(xv.bits, a) * valueOf(yv.bits, a)) & mask
			return (prod>>uint(i))&1 == 1
		}}
	}
	return bitVecTerm{bits: bits}, nil
}

func flipSign(bits []boolTerm) []boolTerm {
	out := append([]boolTerm(nil), bits...)
	top := len(out) - 1
	n := out[top]
	out[top] = boolTerm{idx: -1, eval: func(a assignment) bool { return !n.eval(a) }}
	return out
}

// unsignedLeq builds a <= c by the same MSB-to-LSB ripple comparator
// internal/bdd uses, walking from the most significant bit down while
// tracking "strictly less so far" and "equal so far".
func unsignedLeq(a, c []boolTerm) boolTerm {
	return boolTerm{idx: -1, eval: func(asg assignment) bool {
		lt, eq := false, true
		for i := len(a) - 1; i >= 0; i-- {
			av, cv := a[i].eval(asg), c[i].eval(asg)
			bitLt := !av && cv && eq
			lt = lt || bitLt
			eq = eq && (av == cv)
		}
		return lt || eq
	}}
}

func (b *Backend) UnsignedLeq(x, y solver.BitVec) (solver.Bool, error) {
	xv, yv := asBitVec(x), asBitVec(y)
	if xv.Width() != yv.Width() {
		return nil, widthMismatch("UnsignedLeq", xv.Width(), yv.Width())
	}
	return unsignedLeq(xv.bits, yv.bits), nil
}

func (b *Backend) UnsignedGeq(x, y solver.BitVec) (solver.Bool, error) {
	xv, yv := asBitVec(x), asBitVec(y)
	if xv.Width() != yv.Width() {
		return nil, widthMismatch("UnsignedGeq", xv.Width(), yv.Width())
	}
	return unsignedLeq(yv.bits, xv.bits), nil
}

func (b *Backend) SignedLeq(x, y solver.BitVec) (solver.Bool, error) {
	xv, yv := asBitVec(x), asBitVec(y)
	if xv.Width() != yv.Width() {
		return nil, widthMismatch("SignedLeq", xv.Width(), yv.Width())
	}
	return unsignedLeq(flipSign(xv.bits), flipSign(yv.bits)), nil
}

func (b *Backend) SignedGeq(x, y solver.BitVec) (solver.Bool, error) {
	xv, yv := asBitVec(x), asBitVec(y)
	if xv.Width() != yv.Width() {
		return nil, widthMismatch("SignedGeq", xv.Width(), yv.Width())
	}
	return unsignedLeq(flipSign(yv.bits), flipSign(xv.bits)), nil
}

func (b *Backend) BitAnd(x, y solver.BitVec) (solver.BitVec, error) {
	return bitwise(x, y, "BitAnd", func(a, c bool) bool { return a && c })
}

func (b *Backend) BitOr(x, y solver.BitVec) (solver.BitVec, error) {
	return bitwise(x, y, "BitOr", func(a, c bool) bool { return a || c })
}

func (b *Backend) BitXor(x, y solver.BitVec) (solver.BitVec, error) {
	return bitwise(x, y, "BitXor", func(a, c bool) bool { return a != c })
}

func bitwise(x, y solver.BitVec, op string, f func(a, c bool) bool) (solver.BitVec, error) {
	xv, yv := asBitVec(x), asBitVec(y)
	if xv.Width() != yv.Width() {
		return nil, widthMismatch(op, xv.Width(), yv.Width())
	}
	bits := make([]boolTerm, xv.Width())
	for i := range bits {
		a, c := xv.bits[i], yv.bits[i]
		bits[i] = boolTerm{idx: -1, eval: func(asg assignment) bool { return f(a.eval(asg), c.eval(asg)) }}
	}
	return bitVecTerm{bits: bits}, nil
}

func (b *Backend) BitNot(x solver.BitVec) (solver.BitVec, error) {
	xv := asBitVec(x)
	bits := make([]boolTerm, xv.Width())
	for i, n := range xv.bits {
		n := n
		bits[i] = boolTerm{idx: -1, eval: func(a assignment) bool { return !n.eval(a) }}
	}
	return bitVecTerm{bits: bits}, nil
}
