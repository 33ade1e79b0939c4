package interp

import (
	"github.com/cwbudde/zen/internal/expr"
	"github.com/cwbudde/zen/internal/zerr"
)

// Interpret evaluates n against env and returns its concrete value
// (spec.md §4.2). It is the reference semantics every symbolic
// translation rule in internal/symbolic must agree with.
func Interpret(n expr.Node, env *Env) (Value, error) {
	it := &interpreter{env: env, memo: make(map[uint64]Value)}
	return it.eval(n)
}

// interpreter evaluates within one fixed environment. Its memo table
// is scoped to that environment: a List.Case binding introduces a
// child Env (via WithArbitrary) and therefore a fresh interpreter, so
// a Cons body evaluated at two different list positions is never
// served a stale cached value from the other position.
type interpreter struct {
	env  *Env
	memo map[uint64]Value
}

func (it *interpreter) eval(n expr.Node) (Value, error) {
	if v, ok := it.memo[n.ID()]; ok {
		return v, nil
	}
	v, err := it.evalUncached(n)
	if err != nil {
		return nil, err
	}
	it.memo[n.ID()] = v
	return v, nil
}

func (it *interpreter) evalUncached(n expr.Node) (Value, error) {
	switch v := n.(type) {
	case *expr.ConstBool:
		return BoolValue{V: v.Value}, nil

	case *expr.ConstInt:
		return IntValue{T: v.Type(), Bits: v.Bits}, nil

	case *expr.Arbitrary:
		val, ok := it.env.Arbitrary[v.ID()]
		if !ok {
			return nil, zerr.New(zerr.Unreachable, "interp: unbound arbitrary #%d encountered during concrete evaluation", v.ID())
		}
		return val, nil

	case *expr.Argument:
		val, ok := it.env.Args[v.ArgID]
		if !ok {
			return nil, zerr.New(zerr.Unreachable, "interp: unbound argument %q encountered during concrete evaluation", v.ArgID)
		}
		return val, nil

	case *expr.Adapter:
		return it.evalAdapter(v)

	case *expr.Logical:
		return it.evalLogical(v)

	case *expr.LNot:
		x, err := it.eval(v.X)
		if err != nil {
			return nil, err
		}
		return BoolValue{V: !x.(BoolValue).V}, nil

	case *expr.If:
		return it.evalIf(v)

	case *expr.Eq:
		l, err := it.eval(v.L)
		if err != nil {
			return nil, err
		}
		r, err := it.eval(v.R)
		if err != nil {
			return nil, err
		}
		return BoolValue{V: Equal(l, r)}, nil

	case *expr.Order:
		return it.evalOrder(v)

	case *expr.Arith:
		return it.evalArith(v)

	case *expr.Bitwise:
		return it.evalBitwise(v)

	case *expr.BitNot:
		x, err := it.eval(v.X)
		if err != nil {
			return nil, err
		}
		xi := x.(IntValue)
		width := xi.T.Kind.Width()
		return IntValue{T: xi.T, Bits: maskWidth(^xi.Bits, width)}, nil

	case *expr.ListEmpty:
		return ListValue{Elem: v.Type().Elem, Items: nil}, nil

	case *expr.AddFrontNode:
		return it.evalAddFront(v)

	case *expr.ListCase:
		return it.evalListCase(v)

	case *expr.CreateObject:
		return it.evalCreateObject(v)

	case *expr.GetFieldNode:
		obj, err := it.eval(v.Obj)
		if err != nil {
			return nil, err
		}
		return obj.(RecordValue).Fields[v.Field], nil

	case *expr.WithFieldNode:
		return it.evalWithField(v)

	default:
		return nil, zerr.New(zerr.Unreachable, "interp: unhandled node variant %T", n)
	}
}

func (it *interpreter) evalAdapter(v *expr.Adapter) (Value, error) {
	operand, err := it.eval(v.Operand)
	if err != nil {
		return nil, err
	}
	var cur any = operand
	for _, conv := range v.Converters {
		cur, err = conv(cur)
		if err != nil {
			return nil, zerr.Wrap(zerr.InvalidConstruction, err, "interp: adapter conversion failed")
		}
	}
	result, ok := cur.(Value)
	if !ok {
		return nil, zerr.New(zerr.InvalidConstruction, "interp: adapter chain must produce an interp.Value, got %T", cur)
	}
	return result, nil
}

func (it *interpreter) evalLogical(v *expr.Logical) (Value, error) {
	l, err := it.eval(v.L)
	if err != nil {
		return nil, err
	}
	lb := l.(BoolValue).V
	// Short-circuit: a concrete evaluator need not force the other
	// operand once the result is decided, matching the symbolic
	// evaluator's merge-by-guard discipline for If (spec.md §4.3).
	if v.Op == expr.OpAnd && !lb {
		return BoolValue{V: false}, nil
	}
	if v.Op == expr.OpOr && lb {
		return BoolValue{V: true}, nil
	}
	r, err := it.eval(v.R)
	if err != nil {
		return nil, err
	}
	return BoolValue{V: r.(BoolValue).V}, nil
}

func (it *interpreter) evalIf(v *expr.If) (Value, error) {
	g, err := it.eval(v.Guard)
	if err != nil {
		return nil, err
	}
	if g.(BoolValue).V {
		return it.eval(v.Then)
	}
	return it.eval(v.Else)
}

func (it *interpreter) evalOrder(v *expr.Order) (Value, error) {
	l, err := it.eval(v.L)
	if err != nil {
		return nil, err
	}
	r, err := it.eval(v.R)
	if err != nil {
		return nil, err
	}
	li, ri := l.(IntValue), r.(IntValue)
	var result bool
	if li.T.Kind.IsSigned() {
		if v.Op == expr.OpLeq {
			result = li.Signed() <= ri.Signed()
		} else {
			result = li.Signed() >= ri.Signed()
		}
	} else {
		if v.Op == expr.OpLeq {
			result = li.Unsigned() <= ri.Unsigned()
		} else {
			result = li.Unsigned() >= ri.Unsigned()
		}
	}
	return BoolValue{V: result}, nil
}

func (it *interpreter) evalArith(v *expr.Arith) (Value, error) {
	l, err := it.eval(v.L)
	if err != nil {
		return nil, err
	}
	r, err := it.eval(v.R)
	if err != nil {
		return nil, err
	}
	li, ri := l.(IntValue), r.(IntValue)
	width := li.T.Kind.Width()
	var bits uint64
	switch v.Op {
	case expr.OpSum:
		bits = li.Bits + ri.Bits
	case expr.OpMinus:
		bits = li.Bits - ri.Bits
	case expr.OpMultiply:
		bits = li.Bits * ri.Bits
	case expr.OpMax:
		if greaterOrEqual(li, ri) {
			bits = li.Bits
		} else {
			bits = ri.Bits
		}
	case expr.OpMin:
		if greaterOrEqual(ri, li) {
			bits = li.Bits
		} else {
			bits = ri.Bits
		}
	}
	return IntValue{T: li.T, Bits: maskWidth(bits, width)}, nil
}

func greaterOrEqual(a, b IntValue) bool {
	if a.T.Kind.IsSigned() {
		return a.Signed() >= b.Signed()
	}
	return a.Unsigned() >= b.Unsigned()
}

func (it *interpreter) evalBitwise(v *expr.Bitwise) (Value, error) {
	l, err := it.eval(v.L)
	if err != nil {
		return nil, err
	}
	r, err := it.eval(v.R)
	if err != nil {
		return nil, err
	}
	li, ri := l.(IntValue), r.(IntValue)
	var bits uint64
	switch v.Op {
	case expr.OpBitAnd:
		bits = li.Bits & ri.Bits
	case expr.OpBitOr:
		bits = li.Bits | ri.Bits
	case expr.OpBitXor:
		bits = li.Bits ^ ri.Bits
	}
	return IntValue{T: li.T, Bits: maskWidth(bits, li.T.Kind.Width())}, nil
}

func (it *interpreter) evalAddFront(v *expr.AddFrontNode) (Value, error) {
	elt, err := it.eval(v.Elt)
	if err != nil {
		return nil, err
	}
	list, err := it.eval(v.List)
	if err != nil {
		return nil, err
	}
	lv := list.(ListValue)
	items := make([]Value, 0, len(lv.Items)+1)
	items = append(items, elt)
	items = append(items, lv.Items...)
	return ListValue{Elem: lv.Elem, Items: items}, nil
}

// evalListCase folds the concrete list one position at a time: for
// each item it binds Head/Tail to that item and the remaining suffix
// in a child environment, then evaluates the Cons body there. Each
// position gets its own interpreter instance so memoization never
// leaks a binding from one position into another (see interpreter
// doc comment).
func (it *interpreter) evalListCase(v *expr.ListCase) (Value, error) {
	list, err := it.eval(v.List)
	if err != nil {
		return nil, err
	}
	lv := list.(ListValue)
	if len(lv.Items) == 0 {
		return it.eval(v.Empty)
	}
	head := lv.Items[0]
	tail := ListValue{Elem: lv.Elem, Items: lv.Items[1:]}
	childEnv := it.env.WithArbitrary(v.Head.ID(), head).WithArbitrary(v.Tail.ID(), tail)
	child := &interpreter{env: childEnv, memo: make(map[uint64]Value)}
	return child.eval(v.Cons)
}

func (it *interpreter) evalCreateObject(v *expr.CreateObject) (Value, error) {
	fields := make(map[string]Value, len(v.Fields))
	for name, fn := range v.Fields {
		fv, err := it.eval(fn)
		if err != nil {
			return nil, err
		}
		fields[name] = fv
	}
	return RecordValue{T: v.Type(), Fields: fields}, nil
}

func (it *interpreter) evalWithField(v *expr.WithFieldNode) (Value, error) {
	obj, err := it.eval(v.Obj)
	if err != nil {
		return nil, err
	}
	val, err := it.eval(v.Value)
	if err != nil {
		return nil, err
	}
	ov := obj.(RecordValue)
	fields := make(map[string]Value, len(ov.Fields))
	for k, fv := range ov.Fields {
		fields[k] = fv
	}
	fields[v.Field] = val
	return RecordValue{T: ov.T, Fields: fields}, nil
}
