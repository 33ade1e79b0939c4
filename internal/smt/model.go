package smt

import (
	"github.com/cwbudde/zen/internal/solver"
	"github.com/cwbudde/zen/internal/zerr"
)

// model is the brute-force Model: the one satisfying assignment
// Satisfiable happened to find first, in variable-index order.
type model struct{ a assignment }

func (m model) Bool(b solver.Bool) bool {
	return asBool(b).eval(m.a)
}

func (m model) BitVec(v solver.BitVec) uint64 {
	return valueOf(asBitVec(v).bits, m.a)
}

// Satisfiable brute-forces every assignment of the variables this
// Backend has allocated so far, in index order, and returns the
// first one that satisfies f. This is exponential in nextVar; see
// maxVars.
func (b *Backend) Satisfiable(f solver.Bool) (solver.Model, bool, error) {
	fv := asBool(f)
	if b.nextVar > maxVars {
		return nil, false, zerr.New(zerr.UnsupportedByBackend,
			"smt: Satisfiable: %d variables exceeds the reference backend's brute-force limit of %d", b.nextVar, maxVars)
	}
	a := make(assignment, b.nextVar)
	total := uint64(1) << uint(b.nextVar)
	for bits := uint64(0); bits < total; bits++ {
		for i := 0; i < b.nextVar; i++ {
			a[i] = (bits>>uint(i))&1 == 1
		}
		if fv.eval(a) {
			return model{a: append(assignment(nil), a...)}, true, nil
		}
	}
	return nil, false, nil
}
