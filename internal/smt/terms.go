package smt

import "github.com/cwbudde/zen/internal/solver"

// assignment is a brute-force candidate: one truth value per variable
// index this Backend has allocated, boolean and bit-vector variables
// sharing the same index space.
type assignment []bool

// boolTerm is a brute-force-backed solver.Bool: a closure evaluating
// the term against a candidate assignment. idx is the variable index
// CreateBoolVar allocated it at, or -1 for every derived or constant
// term (mirrors internal/bdd's varIdx bookkeeping, minus the map since
// the index already travels with the term).
type boolTerm struct {
	idx  int
	eval func(assignment) bool
}

func (boolTerm) isTerm() {}

// bitVecTerm is a brute-force-backed solver.BitVec: one boolTerm per
// bit, least-significant bit at index 0, the same convention
// internal/bdd uses.
type bitVecTerm struct{ bits []boolTerm }

func (bitVecTerm) isTerm()      {}
func (v bitVecTerm) Width() int { return len(v.bits) }

func asBool(b solver.Bool) boolTerm      { return b.(boolTerm) }
func asBitVec(v solver.BitVec) bitVecTerm { return v.(bitVecTerm) }
