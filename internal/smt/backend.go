// Package smt is a brute-force reference implementation of the
// solver.Solver contract (spec.md §4.6 calls out "an SMT backend
// implements the same interface over a bit-vector theory" as an
// out-of-scope collaborator Zen's design leaves room for). No SMT
// library appears anywhere in the example pack this module was built
// from, so rather than fabricate a binding to one, this backend
// discharges every query by brute-force enumeration of variable
// assignments — correct on the same bit-vector theory internal/bdd
// implements, useful as a cross-check in tests for small instances,
// and explicitly not meant to scale the way a real SMT solver or the
// BDD backend does.
//
// A bit-vector term is represented the same way internal/bdd
// represents one: an ordered slice of boolean terms, one per bit,
// least-significant first. Arithmetic and comparison are built from
// the same ripple-carry adder and bitwise comparator circuits
// internal/bdd uses, just evaluated directly in Go rather than
// compiled into BDD nodes.
package smt

import (
	"github.com/cwbudde/zen/internal/solver"
	"github.com/cwbudde/zen/internal/zerr"
)

// maxVars bounds brute-force enumeration at 2^maxVars candidate
// assignments. Past this, Satisfiable declines rather than silently
// taking an impractically long time; callers that need more variables
// belong on internal/bdd, not this reference backend.
const maxVars = 20

// Backend is the brute-force solver.Solver implementation. It is not
// safe for concurrent use, the same single-writer discipline every
// other Zen component relies on (spec.md §5).
type Backend struct {
	nextVar int
}

// New constructs a Backend with no variables allocated yet.
func New() *Backend {
	return &Backend{}
}

func (b *Backend) allocVar() int {
	idx := b.nextVar
	b.nextVar++
	return idx
}

func checkWidth(width int) error {
	switch width {
	case 8, 16, 32, 64:
		return nil
	default:
		return zerr.New(zerr.InvalidConstruction, "smt: unsupported bit-vector width %d", width)
	}
}

func widthMismatch(op string, a, c int) error {
	return zerr.New(zerr.InvalidConstruction, "smt: %s: bit-vector width mismatch, %d vs %d", op, a, c)
}

func (b *Backend) True() solver.Bool  { return boolTerm{idx: -1, eval: func(assignment) bool { return true }} }
func (b *Backend) False() solver.Bool { return boolTerm{idx: -1, eval: func(assignment) bool { return false }} }

func (b *Backend) CreateBoolVar() solver.Bool {
	idx := b.allocVar()
	return boolTerm{idx: idx, eval: func(a assignment) bool { return a[idx] }}
}

func (b *Backend) CreateIntVar(width int) (solver.BitVec, error) {
	if err := checkWidth(width); err != nil {
		return nil, err
	}
	bits := make([]boolTerm, width)
	for i := 0; i < width; i++ {
		idx := b.allocVar()
		bits[i] = boolTerm{idx: idx, eval: func(a assignment) bool { return a[idx] }}
	}
	return bitVecTerm{bits: bits}, nil
}

func (b *Backend) CreateIntConst(width int, raw uint64) (solver.BitVec, error) {
	if err := checkWidth(width); err != nil {
		return nil, err
	}
	bits := make([]boolTerm, width)
	for i := 0; i < width; i++ {
		bit := (raw>>uint(i))&1 == 1
		bits[i] = boolTerm{idx: -1, eval: func(assignment) bool { return bit }}
	}
	return bitVecTerm{bits: bits}, nil
}
