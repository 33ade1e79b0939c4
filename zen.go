// Package zen is an embedded library for reasoning about typed
// expressions via symbolic execution, BDD/SMT decision procedures and
// set-transformer relational algebra. The real work lives in
// internal/*; this file is a thin top-level convenience layer over it,
// the same "short façade, real packages underneath" shape the
// teacher's own top-level package uses over its internal/ tree.
package zen

import (
	"github.com/cwbudde/zen/internal/arbitrary"
	"github.com/cwbudde/zen/internal/expr"
	"github.com/cwbudde/zen/internal/fn"
	"github.com/cwbudde/zen/internal/interleave"
	"github.com/cwbudde/zen/internal/interp"
	"github.com/cwbudde/zen/internal/modelcheck"
	"github.com/cwbudde/zen/internal/simplify"
	"github.com/cwbudde/zen/internal/stateset"
	"github.com/cwbudde/zen/internal/typedesc"
)

// Re-exported types a caller builds expressions and environments with,
// without reaching into internal/ directly.
type (
	Expression = expr.Node
	Value      = interp.Value
	Env        = interp.Env
	TypeDesc   = typedesc.T
	Func       = fn.Func
	Config     = arbitrary.Config
)

// Interpret concretely evaluates expr against env (spec.md §4.2).
func Interpret(e Expression, env *Env) (Value, error) {
	return interp.Interpret(e, env)
}

// Simplify rewrites e bottom-up with the algebraic simplification
// rules of spec.md §4.1, returning an expression sound-equivalent to
// the input under Interpret for every environment.
func Simplify(e Expression) (Expression, error) {
	return simplify.Simplify(e)
}

// Groups computes the interleaving heuristic's equivalence classes
// over e's Arbitrary leaves (spec.md §4.4).
func Groups(e Expression) map[uint64]uint64 {
	return interleave.Groups(e)
}

// Generate builds a symbolic input expression for t, bounded by cfg
// (spec.md §4.5).
func Generate(t *TypeDesc, cfg Config) (Expression, error) {
	return arbitrary.Generate(t, cfg)
}

// NewFunc builds a single-argument function value over argType,
// closing build's result into the function's body (spec.md §4.9).
func NewFunc(argType *TypeDesc, build func(arg Expression) Expression) *Func {
	return fn.New(argType, build)
}

// Checker is the model-checker facade (spec.md §4.8): Find,
// FindInputs and Transformer, all sharing one solver backend, one
// symbolic session and one state-set space.
type Checker struct {
	f *modelcheck.Facade
}

// NewChecker builds a Checker over a fresh BDD backend, the default
// backend spec.md §4.8 names.
func NewChecker(cfg Config) (*Checker, error) {
	f, err := modelcheck.New(modelcheck.Options{Cfg: cfg})
	if err != nil {
		return nil, err
	}
	return &Checker{f: f}, nil
}

// Assignment is the satisfying assignment Find/FindInputs found.
type Assignment struct {
	a *modelcheck.Assignment
}

// Value looks up node's assigned concrete value.
func (a *Assignment) Value(node Expression) (Value, bool) {
	return a.a.Value(node)
}

// Find asks the checker for a satisfying assignment to query,
// evaluated symbolically against the checker's shared session.
func (c *Checker) Find(query Expression) (*Assignment, bool, error) {
	a, ok, err := c.f.Find(query)
	if err != nil || !ok {
		return nil, ok, err
	}
	return &Assignment{a: a}, true, nil
}

// FindInputs finds a satisfying assignment to query and interprets
// each of inputs against it, returning one concrete value per input in
// the same order (spec.md §4.8's findAndInterpret). The number of
// inputs is not checked.
func (c *Checker) FindInputs(query Expression, inputs ...Expression) ([]Value, bool, error) {
	return c.f.FindAndInterpret(query, inputs)
}

// Transformer builds the StateSetTransformer for target (spec.md
// §4.8's stateTransformer(f: T1 -> T2)).
func (c *Checker) Transformer(target *Func) (*stateset.StateSetTransformer, error) {
	return c.f.StateTransformer(target)
}

// Space exposes the checker's shared state-set space, so a caller can
// build Full/Empty/FromInvariant state sets aligned to the same
// canonical variable tables a Transformer's endpoints use.
func (c *Checker) Space() *stateset.Space {
	return c.f.Space()
}
