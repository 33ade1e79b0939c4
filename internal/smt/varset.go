package smt

import (
	"github.com/cwbudde/zen/internal/solver"
	"github.com/cwbudde/zen/internal/zerr"
)

// varSetTerm is a brute-force-backed solver.VarSet: the raw variable
// indices a bit-vector (or a single boolean) was allocated against,
// the same representation internal/bdd uses.
type varSetTerm struct{ idx []int }

func (varSetTerm) isVarSet() {}

func indexOf(t boolTerm) int {
	if t.idx < 0 {
		panic("smt: VarSetOf called on a term that is not a bare decision variable")
	}
	return t.idx
}

func (b *Backend) VarSetOf(v solver.BitVec) solver.VarSet {
	bits := asBitVec(v).bits
	idx := make([]int, len(bits))
	for i, t := range bits {
		idx[i] = indexOf(t)
	}
	return varSetTerm{idx: idx}
}

func (b *Backend) VarSetOfBool(v solver.Bool) solver.VarSet {
	return varSetTerm{idx: []int{indexOf(asBool(v))}}
}

func (b *Backend) EmptyVarSet() solver.VarSet { return varSetTerm{} }

func (b *Backend) UnionVarSet(x, y solver.VarSet) solver.VarSet {
	xv, yv := x.(varSetTerm), y.(varSetTerm)
	out := make([]int, 0, len(xv.idx)+len(yv.idx))
	out = append(out, xv.idx...)
	out = append(out, yv.idx...)
	return varSetTerm{idx: out}
}

// replacementTerm is a prepared from->to variable index renaming,
// applied by substituting each from-index's assignment bit with the
// paired to-index's before evaluating (spec.md §4.7's "variable
// alignment").
type replacementTerm struct{ from, to []int }

func (replacementTerm) isReplacement() {}

func (b *Backend) NewReplacement(from, to solver.VarSet) (solver.Replacement, error) {
	fv, tv := from.(varSetTerm), to.(varSetTerm)
	if len(fv.idx) != len(tv.idx) {
		return nil, zerr.New(zerr.InvalidConstruction,
			"smt: NewReplacement: variable set size mismatch, %d vs %d", len(fv.idx), len(tv.idx))
	}
	return replacementTerm{from: fv.idx, to: tv.idx}, nil
}

// Replace substitutes every from-variable's assignment bit with its
// paired to-variable's before f is evaluated, the brute-force
// equivalent of a BDD manager's variable renaming.
func (b *Backend) Replace(f solver.Bool, r solver.Replacement) (solver.Bool, error) {
	rt, ok := r.(replacementTerm)
	if !ok {
		return nil, zerr.New(zerr.InvalidConstruction, "smt: Replace: foreign Replacement value")
	}
	fv := asBool(f)
	return boolTerm{idx: -1, eval: func(a assignment) bool {
		renamed := append(assignment(nil), a...)
		for i, from := range rt.from {
			renamed[from] = a[rt.to[i]]
		}
		return fv.eval(renamed)
	}}, nil
}

// Exists existentially quantifies f over vs by brute-force: f holds
// for some candidate assignment of vs's variables, other variables
// held fixed at a's values.
func (b *Backend) Exists(f solver.Bool, vs solver.VarSet) solver.Bool {
	fv := asBool(f)
	idx := vs.(varSetTerm).idx
	return boolTerm{idx: -1, eval: func(a assignment) bool {
		return existsOver(fv, idx, append(assignment(nil), a...), 0)
	}}
}

func existsOver(f boolTerm, idx []int, a assignment, i int) bool {
	if i == len(idx) {
		return f.eval(a)
	}
	a[idx[i]] = false
	if existsOver(f, idx, a, i+1) {
		return true
	}
	a[idx[i]] = true
	return existsOver(f, idx, a, i+1)
}
