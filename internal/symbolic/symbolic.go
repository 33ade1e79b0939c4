package symbolic

import (
	"github.com/cwbudde/zen/internal/expr"
	"github.com/cwbudde/zen/internal/solver"
	"github.com/cwbudde/zen/internal/typedesc"
	"github.com/cwbudde/zen/internal/zerr"
)

// Session holds the arbitrary->variable mapping spec.md §5 describes
// as living alongside the process-wide BDD manager: every Arbitrary
// node gets exactly one solver variable for the lifetime of the
// session, however many times Evaluate walks past it. Two separate
// expressions sharing an Arbitrary node (built once, referenced from
// both, as find/findInputs and a transformer's input/output relation
// both do) must agree on that node's variable, which a fresh per-call
// cache cannot guarantee.
type Session struct {
	s         solver.Solver
	arbitrary map[uint64]SymValue
}

// NewSession starts a translation session against s.
func NewSession(s solver.Solver) *Session {
	return &Session{s: s, arbitrary: make(map[uint64]SymValue)}
}

// Evaluate translates n into solver terms (spec.md §4.3). Every
// Arbitrary node n reaches gets a fresh solver variable the first time
// any Evaluate call on this session encounters it, and the same
// variable on every later encounter, within this session or across it.
func (sess *Session) Evaluate(n expr.Node) (SymValue, error) {
	ev := &evaluator{s: sess.s, memo: make(map[uint64]SymValue), bound: make(map[uint64]SymValue), arbitrary: sess.arbitrary}
	return ev.eval(n)
}

// Evaluate is a convenience for a single, one-off translation that
// does not need its Arbitrary variables to stay aligned with any
// other expression; it starts and discards its own Session. Callers
// translating more than one expression that may share Arbitrary nodes
// (e.g. a transformer's input and output relations) must use a single
// explicit Session instead.
func Evaluate(n expr.Node, s solver.Solver) (SymValue, error) {
	return NewSession(s).Evaluate(n)
}

// EvaluateWithArgs is Evaluate with formal-Argument bindings, the
// symbolic counterpart of interp.Env.Args: internal/fn's function
// compilation evaluates a Func's body this way, binding its single
// parameter to a caller-supplied symbolic value (e.g. a fresh
// arbitrary of the parameter type, for internal/stateset's
// transformer construction).
func (sess *Session) EvaluateWithArgs(n expr.Node, args map[string]SymValue) (SymValue, error) {
	ev := &evaluator{s: sess.s, memo: make(map[uint64]SymValue), bound: make(map[uint64]SymValue), arbitrary: sess.arbitrary, args: args}
	return ev.eval(n)
}

// ArbitraryVars exposes the session's accumulated Arbitrary node id ->
// SymValue leaf mapping, so callers that need to read a model back
// into a concrete value (internal/stateset's element()) know which
// solver variables correspond to which Arbitrary node.
func (sess *Session) ArbitraryVars() map[uint64]SymValue {
	return sess.arbitrary
}

// Solver returns the solver this session translates against, so a
// caller holding only a Session (internal/stateset.Space,
// internal/modelcheck.Facade) can still reach the underlying backend
// for operations Session itself does not wrap.
func (sess *Session) Solver() solver.Solver {
	return sess.s
}

// Prime eagerly allocates a's solver variable if no call on this
// session has seen it yet, and returns it either way. Evaluate would
// do this lazily in whatever order it happens to walk an expression's
// nodes; Prime lets a caller force a specific order first (internal/
// modelcheck primes Arbitrary nodes in interleaving-heuristic order
// before evaluating a query, so the backend allocates coupled
// variables adjacently).
func (sess *Session) Prime(a *expr.Arbitrary) (SymValue, error) {
	ev := &evaluator{s: sess.s, memo: make(map[uint64]SymValue), bound: make(map[uint64]SymValue), arbitrary: sess.arbitrary}
	return ev.freshVar(a)
}

// evaluator translates one expression within one fixed solver
// session. Its memo is scoped the same way internal/interp's is:
// entering a List.Case binding spawns a child evaluator with a fresh
// memo so a Cons body evaluated at two different list positions never
// shares a stale cached translation. Its arbitrary map is NOT fresh
// per evaluator — it is shared with the owning Session so Arbitrary
// node identity survives across both List.Case recursion levels and
// separate top-level Evaluate calls.
type evaluator struct {
	s         solver.Solver
	memo      map[uint64]SymValue
	bound     map[uint64]SymValue
	arbitrary map[uint64]SymValue
	args      map[string]SymValue
}

func (ev *evaluator) eval(n expr.Node) (SymValue, error) {
	if v, ok := ev.bound[n.ID()]; ok {
		return v, nil
	}
	if v, ok := ev.memo[n.ID()]; ok {
		return v, nil
	}
	v, err := ev.evalUncached(n)
	if err != nil {
		return nil, err
	}
	ev.memo[n.ID()] = v
	return v, nil
}

func (ev *evaluator) evalUncached(n expr.Node) (SymValue, error) {
	switch v := n.(type) {
	case *expr.ConstBool:
		if v.Value {
			return SymBool{Term: ev.s.True()}, nil
		}
		return SymBool{Term: ev.s.False()}, nil

	case *expr.ConstInt:
		term, err := ev.s.CreateIntConst(v.Type().Kind.Width(), v.Bits)
		if err != nil {
			return nil, err
		}
		return SymInt{T: v.Type(), Term: term}, nil

	case *expr.Arbitrary:
		return ev.freshVar(v)

	case *expr.Argument:
		if sv, ok := ev.args[v.ArgID]; ok {
			return sv, nil
		}
		return nil, zerr.New(zerr.Unreachable, "symbolic: Argument %q reached without a bound value", v.ArgID)

	case *expr.Adapter:
		// Adapter is the identity on symbolic terms (spec.md §3.1):
		// its concrete Converters only run inside internal/interp.
		return ev.eval(v.Operand)

	case *expr.Logical:
		return ev.evalLogical(v)

	case *expr.LNot:
		x, err := ev.eval(v.X)
		if err != nil {
			return nil, err
		}
		return SymBool{Term: ev.s.Not(x.(SymBool).Term)}, nil

	case *expr.If:
		return ev.evalIf(v)

	case *expr.Eq:
		return ev.evalEq(v)

	case *expr.Order:
		return ev.evalOrder(v)

	case *expr.Arith:
		return ev.evalArith(v)

	case *expr.Bitwise:
		return ev.evalBitwise(v)

	case *expr.BitNot:
		x, err := ev.eval(v.X)
		if err != nil {
			return nil, err
		}
		term, err := ev.s.BitNot(x.(SymInt).Term)
		if err != nil {
			return nil, err
		}
		return SymInt{T: x.Type(), Term: term}, nil

	case *expr.ListEmpty:
		return SymList{Elem: v.Type().Elem, Slots: nil}, nil

	case *expr.AddFrontNode:
		return ev.evalAddFront(v)

	case *expr.ListCase:
		return ev.evalListCase(v)

	case *expr.CreateObject:
		return ev.evalCreateObject(v)

	case *expr.GetFieldNode:
		obj, err := ev.eval(v.Obj)
		if err != nil {
			return nil, err
		}
		return obj.(SymObject).Fields[v.Field], nil

	case *expr.WithFieldNode:
		return ev.evalWithField(v)

	default:
		return nil, zerr.New(zerr.Unreachable, "symbolic: unhandled node variant %T", n)
	}
}

func (ev *evaluator) freshVar(a *expr.Arbitrary) (SymValue, error) {
	if v, ok := ev.arbitrary[a.ID()]; ok {
		return v, nil
	}
	t := a.Type()
	var v SymValue
	switch {
	case t.Kind == typedesc.KindBool:
		v = SymBool{Term: ev.s.CreateBoolVar()}
	case t.Kind.IsInteger():
		term, err := ev.s.CreateIntVar(t.Kind.Width())
		if err != nil {
			return nil, err
		}
		v = SymInt{T: t, Term: term}
	default:
		return nil, zerr.New(zerr.InvalidConstruction, "symbolic: Arbitrary of structural type %s must be built by internal/arbitrary, not referenced bare", t)
	}
	ev.arbitrary[a.ID()] = v
	return v, nil
}

func (ev *evaluator) evalLogical(v *expr.Logical) (SymValue, error) {
	l, err := ev.eval(v.L)
	if err != nil {
		return nil, err
	}
	r, err := ev.eval(v.R)
	if err != nil {
		return nil, err
	}
	lt, rt := l.(SymBool).Term, r.(SymBool).Term
	if v.Op == expr.OpAnd {
		return SymBool{Term: ev.s.And(lt, rt)}, nil
	}
	return SymBool{Term: ev.s.Or(lt, rt)}, nil
}

func (ev *evaluator) evalIf(v *expr.If) (SymValue, error) {
	g, err := ev.eval(v.Guard)
	if err != nil {
		return nil, err
	}
	then, err := ev.eval(v.Then)
	if err != nil {
		return nil, err
	}
	els, err := ev.eval(v.Else)
	if err != nil {
		return nil, err
	}
	return merge(ev.s, g.(SymBool).Term, then, els)
}

// Equal builds the equality term between two like-typed symbolic
// values, the same structural recursion Eq's own translation uses.
// Exported so internal/stateset can build a transformer's relation
// R(x,y) = (y == f(x)) without duplicating the record/list recursion.
func Equal(s solver.Solver, a, b SymValue) (solver.Bool, error) {
	return symEqual(s, a, b)
}

func (ev *evaluator) evalEq(v *expr.Eq) (SymValue, error) {
	l, err := ev.eval(v.L)
	if err != nil {
		return nil, err
	}
	r, err := ev.eval(v.R)
	if err != nil {
		return nil, err
	}
	term, err := symEqual(ev.s, l, r)
	if err != nil {
		return nil, err
	}
	return SymBool{Term: term}, nil
}

// symEqual builds the equality term between two like-typed symbolic
// values, recursing structurally through records and lists the same
// way interp.Equal does concretely.
func symEqual(s solver.Solver, a, b SymValue) (solver.Bool, error) {
	switch av := a.(type) {
	case SymBool:
		return s.EqBool(av.Term, b.(SymBool).Term), nil
	case SymInt:
		return s.EqBitVec(av.Term, b.(SymInt).Term)
	case SymObject:
		bv := b.(SymObject)
		acc := s.True()
		for name, fa := range av.Fields {
			t, err := symEqual(s, fa, bv.Fields[name])
			if err != nil {
				return nil, err
			}
			acc = s.And(acc, t)
		}
		return acc, nil
	case SymList:
		bv := b.(SymList)
		maxLen := len(av.Slots)
		if len(bv.Slots) > maxLen {
			maxLen = len(bv.Slots)
		}
		acc := s.True()
		for i := 0; i < maxLen; i++ {
			as, err := slotAt(s, av, i)
			if err != nil {
				return nil, err
			}
			bs, err := slotAt(s, bv, i)
			if err != nil {
				return nil, err
			}
			presentEq := s.EqBool(as.Present, bs.Present)
			itemEq, err := symEqual(s, as.Item, bs.Item)
			if err != nil {
				return nil, err
			}
			// Both sides must agree on presence regardless of item
			// value; the item comparison only matters once a slot is
			// known present on both sides.
			slotEq := s.And(presentEq, s.Or(s.Not(as.Present), itemEq))
			acc = s.And(acc, slotEq)
		}
		return acc, nil
	default:
		return nil, zerr.New(zerr.TypeMismatch, "symbolic: Eq: unsupported value kind %T", a)
	}
}

func (ev *evaluator) evalOrder(v *expr.Order) (SymValue, error) {
	l, err := ev.eval(v.L)
	if err != nil {
		return nil, err
	}
	r, err := ev.eval(v.R)
	if err != nil {
		return nil, err
	}
	li, ri := l.(SymInt).Term, r.(SymInt).Term
	signed := l.Type().Kind.IsSigned()
	var term solver.Bool
	switch {
	case v.Op == expr.OpLeq && signed:
		term, err = ev.s.SignedLeq(li, ri)
	case v.Op == expr.OpLeq && !signed:
		term, err = ev.s.UnsignedLeq(li, ri)
	case v.Op == expr.OpGeq && signed:
		term, err = ev.s.SignedGeq(li, ri)
	default:
		term, err = ev.s.UnsignedGeq(li, ri)
	}
	if err != nil {
		return nil, err
	}
	return SymBool{Term: term}, nil
}

func (ev *evaluator) evalArith(v *expr.Arith) (SymValue, error) {
	l, err := ev.eval(v.L)
	if err != nil {
		return nil, err
	}
	r, err := ev.eval(v.R)
	if err != nil {
		return nil, err
	}
	li, ri := l.(SymInt).Term, r.(SymInt).Term
	var term solver.BitVec
	switch v.Op {
	case expr.OpSum:
		term, err = ev.s.Add(li, ri)
	case expr.OpMinus:
		term, err = ev.s.Sub(li, ri)
	case expr.OpMultiply:
		term, err = ev.s.Mul(li, ri)
	case expr.OpMax:
		term, err = evalMinMax(ev.s, l.Type().Kind.IsSigned(), li, ri, true)
	default:
		term, err = evalMinMax(ev.s, l.Type().Kind.IsSigned(), li, ri, false)
	}
	if err != nil {
		return nil, err
	}
	return SymInt{T: l.Type(), Term: term}, nil
}

func evalMinMax(s solver.Solver, signed bool, a, b solver.BitVec, max bool) (solver.BitVec, error) {
	var aGeqB solver.Bool
	var err error
	if signed {
		aGeqB, err = s.SignedGeq(a, b)
	} else {
		aGeqB, err = s.UnsignedGeq(a, b)
	}
	if err != nil {
		return nil, err
	}
	if !max {
		aGeqB = s.Not(aGeqB)
	}
	return s.IteBitVec(aGeqB, a, b)
}

func (ev *evaluator) evalBitwise(v *expr.Bitwise) (SymValue, error) {
	l, err := ev.eval(v.L)
	if err != nil {
		return nil, err
	}
	r, err := ev.eval(v.R)
	if err != nil {
		return nil, err
	}
	li, ri := l.(SymInt).Term, r.(SymInt).Term
	var term solver.BitVec
	switch v.Op {
	case expr.OpBitAnd:
		term, err = ev.s.BitAnd(li, ri)
	case expr.OpBitOr:
		term, err = ev.s.BitOr(li, ri)
	default:
		term, err = ev.s.BitXor(li, ri)
	}
	if err != nil {
		return nil, err
	}
	return SymInt{T: l.Type(), Term: term}, nil
}

func (ev *evaluator) evalAddFront(v *expr.AddFrontNode) (SymValue, error) {
	elt, err := ev.eval(v.Elt)
	if err != nil {
		return nil, err
	}
	list, err := ev.eval(v.List)
	if err != nil {
		return nil, err
	}
	lv := list.(SymList)
	slots := make([]ListSlot, 0, len(lv.Slots)+1)
	slots = append(slots, ListSlot{Present: ev.s.True(), Item: elt})
	slots = append(slots, lv.Slots...)
	return SymList{Elem: lv.Elem, Slots: slots}, nil
}

// evalListCase folds over the first slot only: the whole tail is
// threaded through as one SymList value bound to Tail, the same
// one-position-at-a-time scheme internal/interp uses concretely,
// merged by Slots[0].Present the way If merges its two branches.
func (ev *evaluator) evalListCase(v *expr.ListCase) (SymValue, error) {
	list, err := ev.eval(v.List)
	if err != nil {
		return nil, err
	}
	lv := list.(SymList)
	emptyVal, err := ev.eval(v.Empty)
	if err != nil {
		return nil, err
	}
	if len(lv.Slots) == 0 {
		return emptyVal, nil
	}
	head := lv.Slots[0].Item
	tail := SymList{Elem: lv.Elem, Slots: lv.Slots[1:]}

	child := &evaluator{s: ev.s, memo: make(map[uint64]SymValue), arbitrary: ev.arbitrary, args: ev.args, bound: map[uint64]SymValue{
		v.Head.ID(): head,
		v.Tail.ID(): tail,
	}}
	consVal, err := child.eval(v.Cons)
	if err != nil {
		return nil, err
	}
	return merge(ev.s, lv.Slots[0].Present, consVal, emptyVal)
}

func (ev *evaluator) evalCreateObject(v *expr.CreateObject) (SymValue, error) {
	fields := make(map[string]SymValue, len(v.Fields))
	for name, fn := range v.Fields {
		fv, err := ev.eval(fn)
		if err != nil {
			return nil, err
		}
		fields[name] = fv
	}
	return SymObject{T: v.Type(), Fields: fields}, nil
}

func (ev *evaluator) evalWithField(v *expr.WithFieldNode) (SymValue, error) {
	obj, err := ev.eval(v.Obj)
	if err != nil {
		return nil, err
	}
	val, err := ev.eval(v.Value)
	if err != nil {
		return nil, err
	}
	ov := obj.(SymObject)
	fields := make(map[string]SymValue, len(ov.Fields))
	for k, fv := range ov.Fields {
		fields[k] = fv
	}
	fields[v.Field] = val
	return SymObject{T: ov.T, Fields: fields}, nil
}
