package bdd

import (
	"github.com/cwbudde/zen/internal/solver"
	"github.com/dalzilio/rudd"
)

// model evaluates arbitrary boolean/bit-vector terms against one
// concrete total variable assignment (a "cube": the conjunction of one
// literal per declared variable). Restricting an arbitrary term n to a
// total assignment collapses it to a constant, so Apply(n, cube, AND)
// equals cube when n holds at that point and False otherwise — the
// standard way to read a term's value out of a BDD without a
// dedicated "evaluate" primitive in the backend's interface.
type model struct {
	b    *Backend
	cube rudd.Node
}

func (m *model) Bool(b solver.Bool) bool {
	n := asBool(b).n
	r := m.b.mgr.Apply(n, m.cube, rudd.OPand)
	return !m.b.mgr.Equal(r, m.b.mgr.False())
}

func (m *model) BitVec(v solver.BitVec) uint64 {
	bv := asBitVec(v)
	var out uint64
	for i, n := range bv.bits {
		r := m.b.mgr.Apply(n, m.cube, rudd.OPand)
		if !m.b.mgr.Equal(r, m.b.mgr.False()) {
			out |= uint64(1) << uint(i)
		}
	}
	return out
}

// Satisfiable checks f for satisfiability by asking rudd for one
// satisfying assignment via Allsat, stopping at the first callback
// invocation. Don't-care positions in the returned assignment are
// pinned arbitrarily (to true) when building the witnessing cube,
// since spec.md §9 leaves "any representative" unconstrained for
// element()/Allsat-style witnesses.
func (b *Backend) Satisfiable(f solver.Bool) (solver.Model, bool, error) {
	n := asBool(f).n
	var found bool
	var assignment []int
	err := b.mgr.Allsat(n, func(a []int) error {
		found = true
		assignment = append([]int(nil), a...)
		return errStopAtFirstModel
	})
	if err != nil && err != errStopAtFirstModel {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}

	lits := make([]rudd.Node, 0, len(assignment))
	for i, v := range assignment {
		switch v {
		case 0:
			lits = append(lits, b.mgr.NIthvar(i))
		default: // 1 or -1 (don't care, pinned true)
			lits = append(lits, b.mgr.Ithvar(i))
		}
	}
	cube := b.mgr.And(lits...)
	return &model{b: b, cube: cube}, true, nil
}
