// Package solver declares the abstract decision-procedure interface
// spec.md §4.6 describes: a vocabulary of boolean and fixed-width
// bit-vector operations any backend (a real BDD manager, a brute-force
// reference backend, eventually an SMT backend) can implement. Nothing
// here depends on a concrete backend; internal/symbolic drives a
// Solver to translate the expression DAG. internal/bdd and the
// brute-force internal/smt are the two backends written against it.
package solver

import "github.com/cwbudde/zen/internal/typedesc"

// Bool is an opaque boolean term handle. Backends give it concrete
// meaning (a BDD node, an SMT term); callers never inspect it.
type Bool interface{ isTerm() }

// BitVec is an opaque fixed-width bit-vector term handle.
type BitVec interface {
	isTerm()
	Width() int
}

// Model is a satisfying assignment returned by a successful
// Satisfiable query: a mapping from the Bool/BitVec terms a caller
// cares about to concrete values. A Model is only valid for the query
// that produced it.
type Model interface {
	// Bool reads the assigned value of a boolean term.
	Bool(b Bool) bool
	// BitVec reads the assigned value of a bit-vector term as its raw
	// bit pattern (bit-cast to signed/unsigned by the caller, per the
	// same masking discipline as internal/interp's IntValue).
	BitVec(v BitVec) uint64
}

// Solver is the abstract decision-procedure contract. Every method
// that builds a term is deterministic and side-effect free from the
// caller's point of view, aside from internal variable bookkeeping; a
// Solver instance is not safe for concurrent use by multiple
// goroutines without external synchronization (spec.md §5).
type Solver interface {
	// True and False are the boolean constants.
	True() Bool
	False() Bool

	// CreateBoolVar allocates a fresh boolean decision variable.
	CreateBoolVar() Bool

	// CreateIntVar allocates a fresh bit-vector decision variable of
	// the given width (8, 16, 32 or 64).
	CreateIntVar(width int) (BitVec, error)

	// CreateIntConst builds a bit-vector constant from a raw bit
	// pattern masked to width.
	CreateIntConst(width int, bits uint64) (BitVec, error)

	// And, Or, Not, Iff are propositional connectives.
	And(a, b Bool) Bool
	Or(a, b Bool) Bool
	Not(a Bool) Bool
	Iff(a, b Bool) Bool

	// Ite is the polymorphic if-then-else over two terms of the same
	// kind (both Bool or both BitVec of the same width).
	IteBool(guard Bool, then, els Bool) Bool
	IteBitVec(guard Bool, then, els BitVec) (BitVec, error)

	// BitAnd, BitOr, BitXor, BitNot are bitwise operators over
	// bit-vectors of equal width.
	BitAnd(a, b BitVec) (BitVec, error)
	BitOr(a, b BitVec) (BitVec, error)
	BitXor(a, b BitVec) (BitVec, error)
	BitNot(a BitVec) (BitVec, error)

	// Add, Sub are bit-vector arithmetic, always supported. Mul may
	// fail with zerr.UnsupportedByBackend under a backend that cannot
	// represent multiplication (the BDD backend, per spec.md §3.1(v)).
	Add(a, b BitVec) (BitVec, error)
	Sub(a, b BitVec) (BitVec, error)
	Mul(a, b BitVec) (BitVec, error)

	// SignedLeq, SignedGeq, UnsignedLeq, UnsignedGeq are the ordering
	// relations; the caller picks signed or unsigned interpretation,
	// the solver never infers it from the term alone.
	SignedLeq(a, b BitVec) (Bool, error)
	SignedGeq(a, b BitVec) (Bool, error)
	UnsignedLeq(a, b BitVec) (Bool, error)
	UnsignedGeq(a, b BitVec) (Bool, error)

	// Eq is structural equality over two terms of the same kind.
	EqBool(a, b Bool) Bool
	EqBitVec(a, b BitVec) (Bool, error)

	// Satisfiable checks whether f is satisfiable and, if so, returns
	// a Model witnessing it. A false result is not an error (spec.md
	// §7: "NoModel" is a plain negative result, never a Kind).
	Satisfiable(f Bool) (Model, bool, error)

	// VarSetOf returns the set of decision variables backing v, in bit
	// order. internal/stateset uses this to build the input/output
	// variable tuples a StateSetTransformer's relation is defined over.
	VarSetOf(v BitVec) VarSet

	// VarSetOfBool is VarSetOf's single-variable counterpart for a
	// bare boolean term (a type whose bit representation is one bit).
	VarSetOfBool(b Bool) VarSet

	// UnionVarSet merges two variable sets (e.g. a transformer's input
	// and output tuples into the full set a relation ranges over).
	UnionVarSet(a, b VarSet) VarSet

	// EmptyVarSet returns the variable set with no members, the
	// identity element for UnionVarSet.
	EmptyVarSet() VarSet

	// NewReplacement builds a renaming of from's variables onto to's,
	// position by position; from and to must have equal size.
	NewReplacement(from, to VarSet) (Replacement, error)

	// Replace applies r to f, substituting every occurrence of a
	// from-variable with its paired to-variable (spec.md §4.7's
	// "variable alignment").
	Replace(f Bool, r Replacement) (Bool, error)

	// Exists existentially quantifies f over vs (spec.md §4.6's
	// diagram-manager Exists, used by StateSetTransformer's
	// inputSet/outputSet/transformForward/transformBackwards).
	Exists(f Bool, vs VarSet) Bool
}

// VarSet is an opaque group of decision variables a backend allocated.
// Callers never inspect its contents; they pass it back into
// UnionVarSet, NewReplacement or Exists.
type VarSet interface{ isVarSet() }

// Replacement is a prepared variable renaming built by NewReplacement,
// consumed by Replace.
type Replacement interface{ isReplacement() }

// WidthOf reads off the bit width a typedesc integer kind carries,
// the same lookup internal/symbolic uses when it asks a Solver to
// allocate a variable for an Arbitrary node.
func WidthOf(t *typedesc.T) int {
	return t.Kind.Width()
}
