package bdd

import (
	"github.com/cwbudde/zen/internal/solver"
	"github.com/dalzilio/rudd"
)

func (b *Backend) And(a, c solver.Bool) solver.Bool {
	return boolTerm{n: b.mgr.Apply(asBool(a).n, asBool(c).n, rudd.OPand)}
}

func (b *Backend) Or(a, c solver.Bool) solver.Bool {
	return boolTerm{n: b.mgr.Apply(asBool(a).n, asBool(c).n, rudd.OPor)}
}

func (b *Backend) Not(a solver.Bool) solver.Bool {
	return boolTerm{n: b.mgr.Not(asBool(a).n)}
}

func (b *Backend) Iff(a, c solver.Bool) solver.Bool {
	return boolTerm{n: b.mgr.Apply(asBool(a).n, asBool(c).n, rudd.OPbiimp)}
}

// xor has no direct operator in rudd's documented vocabulary; it is
// the negation of biimplication, the same derivation BuDDy-family
// libraries use internally.
func (b *Backend) xor(x, y rudd.Node) rudd.Node {
	return b.mgr.Not(b.mgr.Apply(x, y, rudd.OPbiimp))
}

func (b *Backend) IteBool(guard solver.Bool, then, els solver.Bool) solver.Bool {
	return boolTerm{n: b.mgr.Ite(asBool(guard).n, asBool(then).n, asBool(els).n)}
}

func (b *Backend) EqBool(a, c solver.Bool) solver.Bool {
	return b.Iff(a, c)
}

func (b *Backend) IteBitVec(guard solver.Bool, then, els solver.BitVec) (solver.BitVec, error) {
	t, e := asBitVec(then), asBitVec(els)
	if t.Width() != e.Width() {
		return nil, widthMismatch("Ite", t.Width(), e.Width())
	}
	g := asBool(guard).n
	bits := make([]rudd.Node, t.Width())
	for i := range bits {
		bits[i] = b.mgr.Ite(g, t.bits[i], e.bits[i])
	}
	return bitVecTerm{bits: bits}, nil
}

func (b *Backend) bitwise(name string, a, c solver.BitVec, op rudd.Operator) (solver.BitVec, error) {
	av, cv := asBitVec(a), asBitVec(c)
	if av.Width() != cv.Width() {
		return nil, widthMismatch(name, av.Width(), cv.Width())
	}
	bits := make([]rudd.Node, av.Width())
	for i := range bits {
		bits[i] = b.mgr.Apply(av.bits[i], cv.bits[i], op)
	}
	return bitVecTerm{bits: bits}, nil
}

func (b *Backend) BitAnd(a, c solver.BitVec) (solver.BitVec, error) {
	return b.bitwise("BitAnd", a, c, rudd.OPand)
}

func (b *Backend) BitOr(a, c solver.BitVec) (solver.BitVec, error) {
	return b.bitwise("BitOr", a, c, rudd.OPor)
}

func (b *Backend) BitXor(a, c solver.BitVec) (solver.BitVec, error) {
	av, cv := asBitVec(a), asBitVec(c)
	if av.Width() != cv.Width() {
		return nil, widthMismatch("BitXor", av.Width(), cv.Width())
	}
	bits := make([]rudd.Node, av.Width())
	for i := range bits {
		bits[i] = b.xor(av.bits[i], cv.bits[i])
	}
	return bitVecTerm{bits: bits}, nil
}

func (b *Backend) BitNot(a solver.BitVec) (solver.BitVec, error) {
	av := asBitVec(a)
	bits := make([]rudd.Node, av.Width())
	for i, n := range av.bits {
		bits[i] = b.mgr.Not(n)
	}
	return bitVecTerm{bits: bits}, nil
}

func (b *Backend) EqBitVec(a, c solver.BitVec) (solver.Bool, error) {
	av, cv := asBitVec(a), asBitVec(c)
	if av.Width() != cv.Width() {
		return nil, widthMismatch("Eq", av.Width(), cv.Width())
	}
	acc := b.mgr.True()
	for i := range av.bits {
		acc = b.mgr.Apply(acc, b.mgr.Apply(av.bits[i], cv.bits[i], rudd.OPbiimp), rudd.OPand)
	}
	return boolTerm{n: acc}, nil
}
