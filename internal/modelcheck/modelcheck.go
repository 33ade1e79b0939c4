// Package modelcheck is the model-checker facade spec.md §4.8
// describes: find, findAndInterpret and stateTransformer as single
// entry points over a chosen solver backend, BDD by default. It owns
// the one symbolic.Session and stateset.Space every call against a
// Facade shares, so Arbitrary identity and state-set canonicalisation
// stay consistent across however many queries a caller runs.
package modelcheck

import (
	"github.com/cwbudde/zen/internal/arbitrary"
	"github.com/cwbudde/zen/internal/bdd"
	"github.com/cwbudde/zen/internal/expr"
	"github.com/cwbudde/zen/internal/fn"
	"github.com/cwbudde/zen/internal/interleave"
	"github.com/cwbudde/zen/internal/interp"
	"github.com/cwbudde/zen/internal/solver"
	"github.com/cwbudde/zen/internal/stateset"
	"github.com/cwbudde/zen/internal/symbolic"
	"github.com/cwbudde/zen/internal/zerr"
)

// Options configures a Facade. Cfg bounds symbolic-input generation
// depth for stateTransformer's endpoints (spec.md §4.5). Options has
// no backend field: New always builds the BDD backend, and
// internal/smt cannot be selected through a Facade.
type Options struct {
	Cfg arbitrary.Config
}

// Facade is the model-checker's single entry point.
type Facade struct {
	s    solver.Solver
	sess *symbolic.Session
	sp   *stateset.Space
}

// New builds a Facade over a fresh BDD backend.
func New(opts Options) (*Facade, error) {
	b, err := bdd.New()
	if err != nil {
		return nil, err
	}
	sess := symbolic.NewSession(b)
	return &Facade{s: b, sess: sess, sp: stateset.NewSpace(sess, opts.Cfg)}, nil
}

// prime runs the interleaving heuristic over query and allocates its
// Arbitrary nodes' solver variables in the heuristic's order, before
// any symbolic evaluation touches them (spec.md §4.8's "the
// interleaving heuristic runs first and feeds into solver
// construction").
func (f *Facade) prime(query expr.Node) error {
	for _, a := range interleave.Order(query) {
		if _, err := f.sess.Prime(a); err != nil {
			return err
		}
	}
	return nil
}

// Assignment is the satisfying assignment find returns: a concrete
// value for every Arbitrary node the query expression reached.
type Assignment struct {
	values map[uint64]interp.Value
}

// Value looks up node's assigned concrete value. The assignment covers
// every Arbitrary node the Facade's shared session has allocated a
// variable for, so nodes reached only by an earlier query on the same
// Facade are present too.
func (a *Assignment) Value(node expr.Node) (interp.Value, bool) {
	v, ok := a.values[node.ID()]
	return v, ok
}

func concreteFromModel(m solver.Model, sv symbolic.SymValue) (interp.Value, error) {
	switch v := sv.(type) {
	case symbolic.SymBool:
		return interp.BoolValue{V: m.Bool(v.Term)}, nil
	case symbolic.SymInt:
		return interp.IntValue{T: v.T, Bits: m.BitVec(v.Term)}, nil
	default:
		return nil, zerr.New(zerr.TypeMismatch, "modelcheck: model reconstruction: unsupported arbitrary kind %T", sv)
	}
}

// Find evaluates query symbolically and asks the solver for a
// satisfying assignment (spec.md §4.8's find(expr) -> Option<assignment>).
// query must evaluate to a SymBool; ok is false, with a nil
// Assignment, when query is unsatisfiable.
func (f *Facade) Find(query expr.Node) (*Assignment, bool, error) {
	if err := f.prime(query); err != nil {
		return nil, false, err
	}
	v, err := f.sess.Evaluate(query)
	if err != nil {
		return nil, false, err
	}
	b, ok := v.(symbolic.SymBool)
	if !ok {
		return nil, false, zerr.New(zerr.TypeMismatch, "modelcheck: Find: query must evaluate to bool, got %T", v)
	}
	m, sat, err := f.s.Satisfiable(b.Term)
	if err != nil || !sat {
		return nil, false, err
	}
	values := make(map[uint64]interp.Value, len(f.sess.ArbitraryVars()))
	for id, sv := range f.sess.ArbitraryVars() {
		cv, err := concreteFromModel(m, sv)
		if err != nil {
			return nil, false, err
		}
		values[id] = cv
	}
	return &Assignment{values: values}, true, nil
}

// FindAndInterpret is Find followed by concretely interpreting each
// of inputs against the resulting assignment (spec.md §4.8's
// findAndInterpret(expr, inputs)), returning one concrete value per
// input expression in the same order. ok is false when query is
// unsatisfiable, with a nil result slice.
func (f *Facade) FindAndInterpret(query expr.Node, inputs []expr.Node) ([]interp.Value, bool, error) {
	assignment, ok, err := f.Find(query)
	if err != nil || !ok {
		return nil, ok, err
	}
	env := interp.NewEnv(nil)
	for id, v := range assignment.values {
		env = env.WithArbitrary(id, v)
	}
	out := make([]interp.Value, len(inputs))
	for i, n := range inputs {
		v, err := interp.Interpret(n, env)
		if err != nil {
			return nil, false, err
		}
		out[i] = v
	}
	return out, true, nil
}

// StateTransformer builds the StateSetTransformer for f (spec.md
// §4.8's stateTransformer(f: T1 -> T2)), sharing this Facade's
// session and canonical-variable table with every StateSet the
// transformer is later combined with.
func (f *Facade) StateTransformer(target *fn.Func) (*stateset.StateSetTransformer, error) {
	return f.sp.NewTransformer(target)
}

// Space exposes the Facade's shared state-set space, so a caller can
// build Full/Empty/FromInvariant state sets against the same
// canonical table stateTransformer's endpoints are aligned to.
func (f *Facade) Space() *stateset.Space {
	return f.sp
}
