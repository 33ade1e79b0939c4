package bdd

import (
	"github.com/cwbudde/zen/internal/solver"
	"github.com/cwbudde/zen/internal/zerr"
	"github.com/dalzilio/rudd"
)

// varSetTerm is a BDD-backed solver.VarSet: the raw variable indices a
// bit-vector (or a single boolean) was allocated against, kept as
// plain indices rather than a pre-built Makeset cube so UnionVarSet is
// a cheap slice concatenation.
type varSetTerm struct{ idx []int }

func (varSetTerm) isVarSet() {}

func varsOfBits(bits []rudd.Node, b *Backend) []int {
	idx := make([]int, len(bits))
	for i, n := range bits {
		idx[i] = b.indexOf(n)
	}
	return idx
}

func (b *Backend) VarSetOf(v solver.BitVec) solver.VarSet {
	return varSetTerm{idx: varsOfBits(asBitVec(v).bits, b)}
}

func (b *Backend) VarSetOfBool(v solver.Bool) solver.VarSet {
	return varSetTerm{idx: []int{b.indexOf(asBool(v).n)}}
}

func (b *Backend) EmptyVarSet() solver.VarSet { return varSetTerm{} }

func (b *Backend) UnionVarSet(a, c solver.VarSet) solver.VarSet {
	av, cv := a.(varSetTerm), c.(varSetTerm)
	out := make([]int, 0, len(av.idx)+len(cv.idx))
	out = append(out, av.idx...)
	out = append(out, cv.idx...)
	return varSetTerm{idx: out}
}

func (b *Backend) makeset(vs solver.VarSet) rudd.Node {
	return b.mgr.Makeset(vs.(varSetTerm).idx)
}

// replacementTerm holds the renaming rudd's Replace wants; it wraps
// whatever value rudd.NewReplacer(from, to []int) hands back. rudd's
// Replacer construction path was not present in the retrieved source
// excerpt (only the Replace(n Node, r Replacer) method signature on
// the BDD interface was); this constructor name is the best-fit guess
// for a BuDDy-family "variable pair" API and is flagged as such.
type replacementTerm struct{ r rudd.Replacer }

func (replacementTerm) isReplacement() {}

func (b *Backend) NewReplacement(from, to solver.VarSet) (solver.Replacement, error) {
	fv, cv := from.(varSetTerm), to.(varSetTerm)
	if len(fv.idx) != len(cv.idx) {
		return nil, zerr.New(zerr.InvalidConstruction,
			"bdd: NewReplacement: variable set size mismatch, %d vs %d", len(fv.idx), len(cv.idx))
	}
	r, err := rudd.NewReplacer(fv.idx, cv.idx)
	if err != nil {
		return nil, zerr.Wrap(zerr.InvalidConstruction, err, "bdd: failed to build a variable replacer")
	}
	return replacementTerm{r: r}, nil
}

func (b *Backend) Replace(f solver.Bool, r solver.Replacement) (solver.Bool, error) {
	rt, ok := r.(replacementTerm)
	if !ok {
		return nil, zerr.New(zerr.InvalidConstruction, "bdd: Replace: foreign Replacement value")
	}
	return boolTerm{n: b.mgr.Replace(asBool(f).n, rt.r)}, nil
}

func (b *Backend) Exists(f solver.Bool, vs solver.VarSet) solver.Bool {
	return boolTerm{n: b.mgr.Exist(asBool(f).n, b.makeset(vs))}
}
