// Package symbolic implements the DAG -> solver-terms evaluator of
// spec.md §4.3: it walks the same expression DAG internal/interp
// interprets concretely, but produces solver terms (SymValue variants
// wrapping solver.Bool/solver.BitVec) instead of concrete values, so a
// backend can decide satisfiability over the whole expression at once.
package symbolic

import (
	"github.com/cwbudde/zen/internal/solver"
	"github.com/cwbudde/zen/internal/typedesc"
)

// SymValue is a symbolic counterpart of interp.Value: every expr.Node
// kind evaluates to one of these, except an Argument with no bound
// value (see Session.EvaluateWithArgs), which is an Unreachable error.
type SymValue interface {
	Type() *typedesc.T
	symTag() symKind
}

type symKind uint8

const (
	symBool symKind = iota
	symInt
	symList
	symObject
)

// SymBool wraps a solver.Bool term.
type SymBool struct {
	Term solver.Bool
}

func (SymBool) symTag() symKind        { return symBool }
func (SymBool) Type() *typedesc.T      { return typedesc.Bool() }

// SymInt wraps a solver.BitVec term tagged with its Zen integer type.
type SymInt struct {
	T    *typedesc.T
	Term solver.BitVec
}

func (v SymInt) symTag() symKind   { return symInt }
func (v SymInt) Type() *typedesc.T { return v.T }

// ListSlot is one position of a SymList: Present decides, under the
// solver's assignment, whether Item actually belongs to the list at
// this position. A list's "is this the end" test is exactly
// Slots[0].Present being false.
type ListSlot struct {
	Present solver.Bool
	Item    SymValue
}

// SymList is a finite carrier for a (possibly guarded-length) list
// value: it never has more slots than the deepest AddFront/If chain
// that built it, which is always finite because spec.md §4.5 bounds
// generated lists by a depth configuration and no other construct
// grows a list.
type SymList struct {
	Elem  *typedesc.T
	Slots []ListSlot
}

func (v SymList) symTag() symKind   { return symList }
func (v SymList) Type() *typedesc.T { return typedesc.List(v.Elem) }

// SymObject is a symbolic record (also the representation for Option,
// which is structurally a record — spec.md §3.1).
type SymObject struct {
	T      *typedesc.T
	Fields map[string]SymValue
}

func (v SymObject) symTag() symKind   { return symObject }
func (v SymObject) Type() *typedesc.T { return v.T }
