package bdd

import (
	"github.com/cwbudde/zen/internal/solver"
	"github.com/dalzilio/rudd"
)

// boolTerm is a BDD-backed solver.Bool: a single node.
type boolTerm struct{ n rudd.Node }

func (boolTerm) isTerm() {}

// bitVecTerm is a BDD-backed solver.BitVec: one node per bit,
// least-significant bit at index 0.
type bitVecTerm struct{ bits []rudd.Node }

func (bitVecTerm) isTerm()    {}
func (v bitVecTerm) Width() int { return len(v.bits) }

func asBool(b solver.Bool) boolTerm     { return b.(boolTerm) }
func asBitVec(v solver.BitVec) bitVecTerm { return v.(bitVecTerm) }
