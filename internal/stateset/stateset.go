// Package stateset implements StateSet<T> and StateSetTransformer<T1,T2>
// (spec.md §3.4, §4.7): decision-diagram-backed representations of a
// subset of a type's value space, and of a relation between two
// types' value spaces derived from a Func. Both are built against a
// shared Space, which owns the process-lifetime canonical
// (expression, variable-set) table every set and transformer operand
// is aligned onto before being combined (spec.md §3.4's invariant
// (ii)).
package stateset

import (
	"sync"

	"github.com/cwbudde/zen/internal/arbitrary"
	"github.com/cwbudde/zen/internal/expr"
	"github.com/cwbudde/zen/internal/fn"
	"github.com/cwbudde/zen/internal/interp"
	"github.com/cwbudde/zen/internal/solver"
	"github.com/cwbudde/zen/internal/symbolic"
	"github.com/cwbudde/zen/internal/typedesc"
	"github.com/cwbudde/zen/internal/zerr"
)

// Space is the shared context every StateSet/StateSetTransformer built
// from the same solver must go through: the solver, the symbolic
// session (and so the process-wide Arbitrary->variable mapping), the
// depth configuration fresh arbitrary values are generated under, and
// the per-type canonical table.
type Space struct {
	S    solver.Solver
	Sess *symbolic.Session
	Cfg  arbitrary.Config

	mu    sync.Mutex
	canon map[string]*canonicalEntry
}

// canonicalEntry is the canonical (expression, variable-set) pair for
// one type: the arbitrary-generated expression every set of that type
// is ultimately reconstructed through, its symbolic translation, and
// the flattened variable tuple that translation ranges over.
type canonicalEntry struct {
	node expr.Node
	val  symbolic.SymValue
	vars solver.VarSet
}

// NewSpace starts a state-set space over sess. Sharing sess with
// whatever else evaluates expressions against the same solver (e.g.
// internal/modelcheck's find/findAndInterpret) keeps Arbitrary
// identity consistent everywhere spec.md §5 requires it. cfg bounds
// the depth of any list/map structure a canonical or transformer
// endpoint type generates (spec.md §4.5).
func NewSpace(sess *symbolic.Session, cfg arbitrary.Config) *Space {
	return &Space{S: sess.Solver(), Sess: sess, Cfg: cfg, canon: make(map[string]*canonicalEntry)}
}

// canonicalFor returns t's canonical entry, building it the first
// time t is seen and caching it for the Space's lifetime (spec.md
// §3.4(ii): "chosen the first time a type is used and cached for the
// process lifetime").
func (sp *Space) canonicalFor(t *typedesc.T) (*canonicalEntry, error) {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	key := t.String()
	if e, ok := sp.canon[key]; ok {
		return e, nil
	}
	n, err := arbitrary.Generate(t, sp.Cfg)
	if err != nil {
		return nil, err
	}
	v, err := sp.Sess.Evaluate(n)
	if err != nil {
		return nil, err
	}
	vars, err := flattenVars(sp.S, v)
	if err != nil {
		return nil, err
	}
	e := &canonicalEntry{node: n, val: v, vars: vars}
	sp.canon[key] = e
	return e, nil
}

// flattenVars turns a symbolic value into the flat variable set backing
// it, recursing through records and lists in the same declared-field
// and slot order their symbolic evaluation used, so two evaluations of
// the same type produce variable tuples that line up position by
// position.
func flattenVars(s solver.Solver, v symbolic.SymValue) (solver.VarSet, error) {
	switch sv := v.(type) {
	case symbolic.SymBool:
		return s.VarSetOfBool(sv.Term), nil

	case symbolic.SymInt:
		return s.VarSetOf(sv.Term), nil

	case symbolic.SymList:
		out := s.EmptyVarSet()
		for _, slot := range sv.Slots {
			out = s.UnionVarSet(out, s.VarSetOfBool(slot.Present))
			iv, err := flattenVars(s, slot.Item)
			if err != nil {
				return nil, err
			}
			out = s.UnionVarSet(out, iv)
		}
		return out, nil

	case symbolic.SymObject:
		out := s.EmptyVarSet()
		for _, f := range sv.T.Fields {
			fv, err := flattenVars(s, sv.Fields[f.Name])
			if err != nil {
				return nil, err
			}
			out = s.UnionVarSet(out, fv)
		}
		return out, nil

	default:
		return nil, zerr.New(zerr.TypeMismatch, "stateset: flattenVars: unsupported value kind %T", v)
	}
}

// concreteFromModel reads an Arbitrary leaf's assigned value out of m,
// storing the raw bit pattern as an interp.IntValue's Bits, the same
// representation internal/modelcheck's copy of this helper produces:
// a bare Arbitrary is always a SymBool or a SymInt (see
// symbolic.freshVar), never a structural value.
func concreteFromModel(m solver.Model, sv symbolic.SymValue) (interp.Value, error) {
	switch v := sv.(type) {
	case symbolic.SymBool:
		return interp.BoolValue{V: m.Bool(v.Term)}, nil
	case symbolic.SymInt:
		return interp.IntValue{T: v.T, Bits: m.BitVec(v.Term)}, nil
	default:
		return nil, zerr.New(zerr.TypeMismatch, "stateset: model reconstruction: unsupported arbitrary kind %T", sv)
	}
}

// StateSet is a decision-diagram-backed subset of type t's value
// space (spec.md §4.7). canonical marks whether vars is already the
// Space's canonical tuple for t; operations that combine two sets
// align both onto that tuple first.
type StateSet struct {
	sp        *Space
	t         *typedesc.T
	vars      solver.VarSet
	dd        solver.Bool
	canonical bool
}

// Type reports the type this set ranges over.
func (s *StateSet) Type() *typedesc.T { return s.t }

// Full returns the set containing every value of type t.
func (sp *Space) Full(t *typedesc.T) (*StateSet, error) {
	e, err := sp.canonicalFor(t)
	if err != nil {
		return nil, err
	}
	return &StateSet{sp: sp, t: t, vars: e.vars, dd: sp.S.True(), canonical: true}, nil
}

// Empty returns the set containing no value of type t.
func (sp *Space) Empty(t *typedesc.T) (*StateSet, error) {
	e, err := sp.canonicalFor(t)
	if err != nil {
		return nil, err
	}
	return &StateSet{sp: sp, t: t, vars: e.vars, dd: sp.S.False(), canonical: true}, nil
}

// FromInvariant builds the set of values of invariant's argument type
// satisfying it, symbolically evaluated against the type's canonical
// arbitrary so the result is already aligned.
func (sp *Space) FromInvariant(invariant *fn.Func) (*StateSet, error) {
	t := invariant.ArgType
	e, err := sp.canonicalFor(t)
	if err != nil {
		return nil, err
	}
	v, err := fn.EvaluateSymbolic(invariant, sp.Sess, e.val)
	if err != nil {
		return nil, err
	}
	b, ok := v.(symbolic.SymBool)
	if !ok {
		return nil, zerr.New(zerr.TypeMismatch, "stateset: FromInvariant: body must return bool, got %T", v)
	}
	return &StateSet{sp: sp, t: t, vars: e.vars, dd: b.Term, canonical: true}, nil
}

// align renames s onto the Space's canonical variable tuple for its
// type, a no-op (returning s itself) when s already is canonical.
func (s *StateSet) align() (*StateSet, error) {
	if s.canonical {
		return s, nil
	}
	e, err := s.sp.canonicalFor(s.t)
	if err != nil {
		return nil, err
	}
	r, err := s.sp.S.NewReplacement(s.vars, e.vars)
	if err != nil {
		return nil, err
	}
	dd, err := s.sp.S.Replace(s.dd, r)
	if err != nil {
		return nil, err
	}
	return &StateSet{sp: s.sp, t: s.t, vars: e.vars, dd: dd, canonical: true}, nil
}

// alignTo renames s onto an arbitrary target variable tuple of the
// same shape, used when a StateSet needs to be combined against a
// transformer's own (not necessarily canonical) input or output
// tuple rather than the Space-wide canonical one.
func (s *StateSet) alignTo(vars solver.VarSet) (solver.Bool, error) {
	r, err := s.sp.S.NewReplacement(s.vars, vars)
	if err != nil {
		return nil, err
	}
	return s.sp.S.Replace(s.dd, r)
}

// Intersect returns the set of values in both s and other.
func (s *StateSet) Intersect(other *StateSet) (*StateSet, error) {
	a, b, err := alignPair(s, other)
	if err != nil {
		return nil, err
	}
	return &StateSet{sp: a.sp, t: a.t, vars: a.vars, dd: a.sp.S.And(a.dd, b.dd), canonical: true}, nil
}

// Union returns the set of values in either s or other.
func (s *StateSet) Union(other *StateSet) (*StateSet, error) {
	a, b, err := alignPair(s, other)
	if err != nil {
		return nil, err
	}
	return &StateSet{sp: a.sp, t: a.t, vars: a.vars, dd: a.sp.S.Or(a.dd, b.dd), canonical: true}, nil
}

// Complement returns the set of values of s's type not in s.
func (s *StateSet) Complement() (*StateSet, error) {
	a, err := s.align()
	if err != nil {
		return nil, err
	}
	return &StateSet{sp: a.sp, t: a.t, vars: a.vars, dd: a.sp.S.Not(a.dd), canonical: true}, nil
}

func alignPair(s, other *StateSet) (*StateSet, *StateSet, error) {
	if !s.t.Equal(other.t) {
		return nil, nil, zerr.New(zerr.TypeMismatch, "stateset: type mismatch %s vs %s", s.t, other.t)
	}
	a, err := s.align()
	if err != nil {
		return nil, nil, err
	}
	b, err := other.align()
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

// IsEmpty reports whether s contains no value.
func (s *StateSet) IsEmpty() (bool, error) {
	_, ok, err := s.sp.S.Satisfiable(s.dd)
	if err != nil {
		return false, err
	}
	return !ok, nil
}

// IsFull reports whether s contains every value of its type.
func (s *StateSet) IsFull() (bool, error) {
	comp, err := s.Complement()
	if err != nil {
		return false, err
	}
	return comp.IsEmpty()
}

// Equal reports whether s and other denote the same set of values, by
// DD identity under variable alignment: they agree iff their
// symmetric difference is unsatisfiable.
func (s *StateSet) Equal(other *StateSet) (bool, error) {
	if !s.t.Equal(other.t) {
		return false, nil
	}
	a, b, err := alignPair(s, other)
	if err != nil {
		return false, err
	}
	sol := a.sp.S
	onlyA := sol.And(a.dd, sol.Not(b.dd))
	onlyB := sol.And(sol.Not(a.dd), b.dd)
	diff := sol.Or(onlyA, onlyB)
	_, ok, err := sol.Satisfiable(diff)
	if err != nil {
		return false, err
	}
	return !ok, nil
}

// Element extracts any representative of s as a concrete value, or
// reports ok=false when s is empty (spec.md §4.7).
func (s *StateSet) Element() (interp.Value, bool, error) {
	a, err := s.align()
	if err != nil {
		return nil, false, err
	}
	m, ok, err := a.sp.S.Satisfiable(a.dd)
	if err != nil || !ok {
		return nil, ok, err
	}
	env := interp.NewEnv(nil)
	for id, sv := range a.sp.Sess.ArbitraryVars() {
		cv, err := concreteFromModel(m, sv)
		if err != nil {
			return nil, false, err
		}
		env = env.WithArbitrary(id, cv)
	}
	e, err := a.sp.canonicalFor(a.t)
	if err != nil {
		return nil, false, err
	}
	v, err := interp.Interpret(e.node, env)
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// StateSetTransformer wraps a decision diagram R(x,y) relating a
// function's input bit tuple x to its output bit tuple y (spec.md
// §4.7). x and y are allocated fresh, distinct from any type's
// canonical tuple (even when T1 == T2, x and y must never alias), and
// every operation canonicalises its result onto the relevant type's
// canonical tuple before returning.
type StateSetTransformer struct {
	sp           *Space
	t1, t2       *typedesc.T
	xVal, yVal   symbolic.SymValue
	xVars, yVars solver.VarSet
	rel          solver.Bool
}

// NewTransformer builds the relation R(x,y) = (y == f(x)) for f,
// spec.md §4.8's stateTransformer(f: T1 -> T2).
func (sp *Space) NewTransformer(f *fn.Func) (*StateSetTransformer, error) {
	xNode, err := arbitrary.Generate(f.ArgType, sp.Cfg)
	if err != nil {
		return nil, err
	}
	xVal, err := sp.Sess.Evaluate(xNode)
	if err != nil {
		return nil, err
	}
	xVars, err := flattenVars(sp.S, xVal)
	if err != nil {
		return nil, err
	}

	outVal, err := fn.EvaluateSymbolic(f, sp.Sess, xVal)
	if err != nil {
		return nil, err
	}

	yNode, err := arbitrary.Generate(f.ResultType, sp.Cfg)
	if err != nil {
		return nil, err
	}
	yVal, err := sp.Sess.Evaluate(yNode)
	if err != nil {
		return nil, err
	}
	yVars, err := flattenVars(sp.S, yVal)
	if err != nil {
		return nil, err
	}

	rel, err := symbolic.Equal(sp.S, yVal, outVal)
	if err != nil {
		return nil, err
	}

	return &StateSetTransformer{
		sp: sp, t1: f.ArgType, t2: f.ResultType,
		xVal: xVal, yVal: yVal, xVars: xVars, yVars: yVars, rel: rel,
	}, nil
}

// PairType is the {x: T1, y: T2} record an invariant over both a
// transformer's input and output is expressed as a single-argument
// Func of (invariant(x, y), modelled as a Func taking one record
// argument since Zen functions are single-parameter). Callers building
// an invariant for InputSet/OutputSet need this to know what shape
// their Func.ArgType must have.
func (tr *StateSetTransformer) PairType() *typedesc.T {
	return typedesc.Record(
		typedesc.Field{Name: "x", Type: tr.t1},
		typedesc.Field{Name: "y", Type: tr.t2},
	)
}

func (tr *StateSetTransformer) invariantTerm(invariant *fn.Func) (solver.Bool, error) {
	if invariant == nil {
		return tr.sp.S.True(), nil
	}
	pair := symbolic.SymObject{T: tr.PairType(), Fields: map[string]symbolic.SymValue{
		"x": tr.xVal, "y": tr.yVal,
	}}
	v, err := fn.EvaluateSymbolic(invariant, tr.sp.Sess, pair)
	if err != nil {
		return nil, err
	}
	b, ok := v.(symbolic.SymBool)
	if !ok {
		return nil, zerr.New(zerr.TypeMismatch, "stateset: invariant must return bool, got %T", v)
	}
	return b.Term, nil
}

// InputSet returns the set of inputs the relation accepts, optionally
// restricted by invariant(x, y) (spec.md §4.7).
func (tr *StateSetTransformer) InputSet(invariant *fn.Func) (*StateSet, error) {
	inv, err := tr.invariantTerm(invariant)
	if err != nil {
		return nil, err
	}
	rel := tr.sp.S.And(tr.rel, inv)
	ex := tr.sp.S.Exists(rel, tr.yVars)
	raw := &StateSet{sp: tr.sp, t: tr.t1, vars: tr.xVars, dd: ex}
	return raw.align()
}

// OutputSet is InputSet's symmetric counterpart, existentially
// quantifying over the input tuple instead.
func (tr *StateSetTransformer) OutputSet(invariant *fn.Func) (*StateSet, error) {
	inv, err := tr.invariantTerm(invariant)
	if err != nil {
		return nil, err
	}
	rel := tr.sp.S.And(tr.rel, inv)
	ex := tr.sp.S.Exists(rel, tr.xVars)
	raw := &StateSet{sp: tr.sp, t: tr.t2, vars: tr.yVars, dd: ex}
	return raw.align()
}

// TransformForward computes the image of s under the transformer's
// relation: align s to the transformer's own input tuple, compute
// exists x. s(x) and R(x,y), then canonicalise the result to T2.
func (tr *StateSetTransformer) TransformForward(s *StateSet) (*StateSet, error) {
	if !s.t.Equal(tr.t1) {
		return nil, zerr.New(zerr.TypeMismatch, "stateset: transformForward: type mismatch %s vs %s", s.t, tr.t1)
	}
	sx, err := s.alignTo(tr.xVars)
	if err != nil {
		return nil, err
	}
	conj := tr.sp.S.And(sx, tr.rel)
	ex := tr.sp.S.Exists(conj, tr.xVars)
	raw := &StateSet{sp: tr.sp, t: tr.t2, vars: tr.yVars, dd: ex}
	return raw.align()
}

// TransformBackwards is TransformForward's symmetric counterpart:
// the preimage of s under the relation.
func (tr *StateSetTransformer) TransformBackwards(s *StateSet) (*StateSet, error) {
	if !s.t.Equal(tr.t2) {
		return nil, zerr.New(zerr.TypeMismatch, "stateset: transformBackwards: type mismatch %s vs %s", s.t, tr.t2)
	}
	sy, err := s.alignTo(tr.yVars)
	if err != nil {
		return nil, err
	}
	conj := tr.sp.S.And(sy, tr.rel)
	ex := tr.sp.S.Exists(conj, tr.yVars)
	raw := &StateSet{sp: tr.sp, t: tr.t1, vars: tr.xVars, dd: ex}
	return raw.align()
}
