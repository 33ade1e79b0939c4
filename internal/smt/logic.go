package smt

import "github.com/cwbudde/zen/internal/solver"

func (b *Backend) And(x, y solver.Bool) solver.Bool {
	xv, yv := asBool(x), asBool(y)
	return boolTerm{idx: -1, eval: func(a assignment) bool { return xv.eval(a) && yv.eval(a) }}
}

func (b *Backend) Or(x, y solver.Bool) solver.Bool {
	xv, yv := asBool(x), asBool(y)
	return boolTerm{idx: -1, eval: func(a assignment) bool { return xv.eval(a) || yv.eval(a) }}
}

func (b *Backend) Not(x solver.Bool) solver.Bool {
	xv := asBool(x)
	return boolTerm{idx: -1, eval: func(a assignment) bool { return !xv.eval(a) }}
}

func (b *Backend) Iff(x, y solver.Bool) solver.Bool {
	xv, yv := asBool(x), asBool(y)
	return boolTerm{idx: -1, eval: func(a assignment) bool { return xv.eval(a) == yv.eval(a) }}
}

func (b *Backend) IteBool(guard, then, els solver.Bool) solver.Bool {
	gv, tv, ev := asBool(guard), asBool(then), asBool(els)
	return boolTerm{idx: -1, eval: func(a assignment) bool {
		if gv.eval(a) {
			return tv.eval(a)
		}
		return ev.eval(a)
	}}
}

func (b *Backend) IteBitVec(guard solver.Bool, then, els solver.BitVec) (solver.BitVec, error) {
	gv, tv, ev := asBool(guard), asBitVec(then), asBitVec(els)
	if tv.Width() != ev.Width() {
		return nil, widthMismatch("IteBitVec", tv.Width(), ev.Width())
	}
	bits := make([]boolTerm, tv.Width())
	for i := range bits {
		t, e := tv.bits[i], ev.bits[i]
		bits[i] = boolTerm{idx: -1, eval: func(a assignment) bool {
			if gv.eval(a) {
				return t.eval(a)
			}
			return e.eval(a)
		}}
	}
	return bitVecTerm{bits: bits}, nil
}

func (b *Backend) EqBool(x, y solver.Bool) solver.Bool {
	return b.Iff(x, y)
}

func (b *Backend) EqBitVec(x, y solver.BitVec) (solver.Bool, error) {
	xv, yv := asBitVec(x), asBitVec(y)
	if xv.Width() != yv.Width() {
		return nil, widthMismatch("EqBitVec", xv.Width(), yv.Width())
	}
	return boolTerm{idx: -1, eval: func(a assignment) bool {
		for i := range xv.bits {
			if xv.bits[i].eval(a) != yv.bits[i].eval(a) {
				return false
			}
		}
		return true
	}}, nil
}
