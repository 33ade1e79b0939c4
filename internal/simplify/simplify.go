// Package simplify implements the rewrite rules of spec.md §4.1: a
// second pass over the expression DAG that folds constants and
// cancels double negations/complements, fuses field projection
// through record construction/update, and prunes statically-decidable
// conditionals. Rewrites are sound (they preserve interpret(e, a) for
// every assignment a — property 3 of spec.md §8) and local, applied in
// a single memoized bottom-up traversal, which is enough to guarantee
// termination: the DAG is finite and acyclic, and every node is
// visited (and rewritten) exactly once regardless of how many parents
// share it.
package simplify

import (
	"github.com/cwbudde/zen/internal/expr"
	"github.com/cwbudde/zen/internal/typedesc"
)

// Simplify rewrites n bottom-up and returns the simplified expression.
// Errors only occur if a rewrite would reconstruct a node in a way
// that violates a factory's invariants, which should not happen for a
// well-typed input; Simplify returns the error rather than panicking
// so callers can surface it as InvalidConstruction.
func Simplify(n expr.Node) (expr.Node, error) {
	s := &simplifier{memo: make(map[uint64]expr.Node)}
	return s.walk(n)
}

type simplifier struct {
	memo map[uint64]expr.Node
}

func (s *simplifier) walk(n expr.Node) (expr.Node, error) {
	if cached, ok := s.memo[n.ID()]; ok {
		return cached, nil
	}
	out, err := s.rewrite(n)
	if err != nil {
		return nil, err
	}
	s.memo[n.ID()] = out
	return out, nil
}

func (s *simplifier) rewrite(n expr.Node) (expr.Node, error) {
	switch v := n.(type) {
	case *expr.ConstBool, *expr.ConstInt, *expr.Arbitrary, *expr.Argument, *expr.ListEmpty:
		return n, nil

	case *expr.Adapter:
		operand, err := s.walk(v.Operand)
		if err != nil {
			return nil, err
		}
		if operand == v.Operand {
			return n, nil
		}
		return expr.NewAdapter(v.From, v.To, operand, v.Converters...)

	case *expr.LNot:
		x, err := s.walk(v.X)
		if err != nil {
			return nil, err
		}
		if c, ok := x.(*expr.ConstBool); ok {
			return expr.Bool(!c.Value), nil
		}
		if inner, ok := x.(*expr.LNot); ok {
			return inner.X, nil // ~~x -> x
		}
		return expr.Negate(x)

	case *expr.BitNot:
		x, err := s.walk(v.X)
		if err != nil {
			return nil, err
		}
		if inner, ok := x.(*expr.BitNot); ok {
			return inner.X, nil // bitwise ~~x -> x
		}
		if c, ok := x.(*expr.ConstInt); ok {
			return foldBitNot(c), nil
		}
		return expr.ComplementBits(x)

	case *expr.Logical:
		l, err := s.walk(v.L)
		if err != nil {
			return nil, err
		}
		r, err := s.walk(v.R)
		if err != nil {
			return nil, err
		}
		return rewriteLogical(v.Op, l, r)

	case *expr.Order:
		l, err := s.walk(v.L)
		if err != nil {
			return nil, err
		}
		r, err := s.walk(v.R)
		if err != nil {
			return nil, err
		}
		if lc, lok := l.(*expr.ConstInt); lok {
			if rc, rok := r.(*expr.ConstInt); rok {
				return expr.Bool(foldOrder(v.Op, lc, rc, l.Type())), nil
			}
		}
		return orderOf(v.Op, l, r)

	case *expr.Eq:
		l, err := s.walk(v.L)
		if err != nil {
			return nil, err
		}
		r, err := s.walk(v.R)
		if err != nil {
			return nil, err
		}
		if l == r {
			return expr.Bool(true), nil
		}
		if lc, lok := l.(*expr.ConstBool); lok {
			if rc, rok := r.(*expr.ConstBool); rok {
				return expr.Bool(lc.Value == rc.Value), nil
			}
		}
		if lc, lok := l.(*expr.ConstInt); lok {
			if rc, rok := r.(*expr.ConstInt); rok {
				return expr.Bool(lc.Bits == rc.Bits), nil
			}
		}
		return expr.Equal(l, r)

	case *expr.Arith:
		l, err := s.walk(v.L)
		if err != nil {
			return nil, err
		}
		r, err := s.walk(v.R)
		if err != nil {
			return nil, err
		}
		if lc, lok := l.(*expr.ConstInt); lok {
			if rc, rok := r.(*expr.ConstInt); rok {
				return foldArith(v.Op, lc, rc, l.Type()), nil
			}
		}
		return arithOf(v.Op, l, r)

	case *expr.Bitwise:
		l, err := s.walk(v.L)
		if err != nil {
			return nil, err
		}
		r, err := s.walk(v.R)
		if err != nil {
			return nil, err
		}
		if l == r {
			switch v.Op {
			case expr.OpBitAnd, expr.OpBitOr:
				return l, nil // BitAnd(x,x)/BitOr(x,x) -> x
			}
		}
		if lc, lok := l.(*expr.ConstInt); lok {
			if rc, rok := r.(*expr.ConstInt); rok {
				return foldBitwise(v.Op, lc, rc, l.Type()), nil
			}
		}
		return bitwiseOf(v.Op, l, r)

	case *expr.If:
		guard, err := s.walk(v.Guard)
		if err != nil {
			return nil, err
		}
		then, err := s.walk(v.Then)
		if err != nil {
			return nil, err
		}
		els, err := s.walk(v.Else)
		if err != nil {
			return nil, err
		}
		if c, ok := guard.(*expr.ConstBool); ok {
			if c.Value {
				return then, nil
			}
			return els, nil
		}
		return expr.IfThenElse(guard, then, els)

	case *expr.AddFrontNode:
		elt, err := s.walk(v.Elt)
		if err != nil {
			return nil, err
		}
		list, err := s.walk(v.List)
		if err != nil {
			return nil, err
		}
		return expr.AddFront(elt, list)

	case *expr.ListCase:
		list, err := s.walk(v.List)
		if err != nil {
			return nil, err
		}
		if _, ok := list.(*expr.ListEmpty); ok {
			return s.walk(v.Empty) // Case(Empty, empty, cons) -> empty
		}
		if cons, ok := list.(*expr.AddFrontNode); ok {
			// Case(AddFront(h, t), empty, cons) -> cons(h, t): substitute the
			// matched head/tail for this Case's bound placeholders throughout
			// the cons body, then simplify the result.
			sub := map[uint64]expr.Node{v.Head.ID(): cons.Elt, v.Tail.ID(): cons.List}
			body, err := substitute(v.Cons, sub)
			if err != nil {
				return nil, err
			}
			return s.walk(body)
		}
		empty, err := s.walk(v.Empty)
		if err != nil {
			return nil, err
		}
		return expr.Case(list, empty, func(head, tail expr.Node) expr.Node {
			sub := map[uint64]expr.Node{v.Head.ID(): head, v.Tail.ID(): tail}
			body, _ := substitute(v.Cons, sub)
			return body
		})

	case *expr.CreateObject:
		fields := make(map[string]expr.Node, len(v.Fields))
		for name, child := range v.Fields {
			c, err := s.walk(child)
			if err != nil {
				return nil, err
			}
			fields[name] = c
		}
		return expr.NewObject(n.Type(), fields)

	case *expr.GetFieldNode:
		obj, err := s.walk(v.Obj)
		if err != nil {
			return nil, err
		}
		if co, ok := obj.(*expr.CreateObject); ok {
			return co.Fields[v.Field], nil // fuse through CreateObject
		}
		if wf, ok := obj.(*expr.WithFieldNode); ok {
			if wf.Field == v.Field {
				return wf.Value, nil // fuse through a matching WithField
			}
			return s.walk(mustGetField(wf.Obj, v.Field))
		}
		return expr.GetField(obj, v.Field)

	case *expr.WithFieldNode:
		obj, err := s.walk(v.Obj)
		if err != nil {
			return nil, err
		}
		val, err := s.walk(v.Value)
		if err != nil {
			return nil, err
		}
		return expr.WithField(obj, v.Field, val)

	default:
		return n, nil
	}
}

func mustGetField(obj expr.Node, field string) expr.Node {
	n, err := expr.GetField(obj, field)
	if err != nil {
		// obj's type is guaranteed to carry field by construction of the
		// WithFieldNode/CreateObject this helper is only ever called from.
		panic(err)
	}
	return n
}

func rewriteLogical(op expr.LogicalOp, l, r expr.Node) (expr.Node, error) {
	lc, lok := l.(*expr.ConstBool)
	rc, rok := r.(*expr.ConstBool)
	switch op {
	case expr.OpAnd:
		if lok && !lc.Value {
			return expr.Bool(false), nil
		}
		if rok && !rc.Value {
			return expr.Bool(false), nil
		}
		if lok && lc.Value {
			return r, nil
		}
		if rok && rc.Value {
			return l, nil
		}
	case expr.OpOr:
		if lok && lc.Value {
			return expr.Bool(true), nil
		}
		if rok && rc.Value {
			return expr.Bool(true), nil
		}
		if lok && !lc.Value {
			return r, nil
		}
		if rok && !rc.Value {
			return l, nil
		}
	}
	return logicalOf(op, l, r)
}

func logicalOf(op expr.LogicalOp, l, r expr.Node) (expr.Node, error) {
	if op == expr.OpAnd {
		return expr.And(l, r)
	}
	return expr.Or(l, r)
}

func orderOf(op expr.OrderOp, l, r expr.Node) (expr.Node, error) {
	if op == expr.OpLeq {
		return expr.Leq(l, r)
	}
	return expr.Geq(l, r)
}

func arithOf(op expr.ArithOp, l, r expr.Node) (expr.Node, error) {
	switch op {
	case expr.OpSum:
		return expr.Sum(l, r)
	case expr.OpMinus:
		return expr.Minus(l, r)
	case expr.OpMultiply:
		return expr.Multiply(l, r)
	case expr.OpMax:
		return expr.Max(l, r)
	default:
		return expr.Min(l, r)
	}
}

func bitwiseOf(op expr.BitOp, l, r expr.Node) (expr.Node, error) {
	switch op {
	case expr.OpBitAnd:
		return expr.BitAnd(l, r)
	case expr.OpBitOr:
		return expr.BitOr(l, r)
	default:
		return expr.BitXor(l, r)
	}
}

// substitute replaces nodes appearing in sub (keyed by ID) throughout
// expr, rebuilding parents bottom-up. It is used once, right after a
// ListCase match fires, to instantiate the cons branch's bound
// Head/Tail placeholders — a small, non-memoized traversal distinct
// from the main simplifier pass since it operates over a different
// substitution each time it is called.
func substitute(n expr.Node, sub map[uint64]expr.Node) (expr.Node, error) {
	if repl, ok := sub[n.ID()]; ok {
		return repl, nil
	}
	switch v := n.(type) {
	case *expr.ConstBool, *expr.ConstInt, *expr.Arbitrary, *expr.Argument, *expr.ListEmpty:
		return n, nil
	case *expr.LNot:
		x, err := substitute(v.X, sub)
		if err != nil {
			return nil, err
		}
		return expr.Negate(x)
	case *expr.BitNot:
		x, err := substitute(v.X, sub)
		if err != nil {
			return nil, err
		}
		return expr.ComplementBits(x)
	case *expr.Logical:
		l, err := substitute(v.L, sub)
		if err != nil {
			return nil, err
		}
		r, err := substitute(v.R, sub)
		if err != nil {
			return nil, err
		}
		return logicalOf(v.Op, l, r)
	case *expr.Order:
		l, err := substitute(v.L, sub)
		if err != nil {
			return nil, err
		}
		r, err := substitute(v.R, sub)
		if err != nil {
			return nil, err
		}
		return orderOf(v.Op, l, r)
	case *expr.Eq:
		l, err := substitute(v.L, sub)
		if err != nil {
			return nil, err
		}
		r, err := substitute(v.R, sub)
		if err != nil {
			return nil, err
		}
		return expr.Equal(l, r)
	case *expr.Arith:
		l, err := substitute(v.L, sub)
		if err != nil {
			return nil, err
		}
		r, err := substitute(v.R, sub)
		if err != nil {
			return nil, err
		}
		return arithOf(v.Op, l, r)
	case *expr.Bitwise:
		l, err := substitute(v.L, sub)
		if err != nil {
			return nil, err
		}
		r, err := substitute(v.R, sub)
		if err != nil {
			return nil, err
		}
		return bitwiseOf(v.Op, l, r)
	case *expr.If:
		g, err := substitute(v.Guard, sub)
		if err != nil {
			return nil, err
		}
		t, err := substitute(v.Then, sub)
		if err != nil {
			return nil, err
		}
		e, err := substitute(v.Else, sub)
		if err != nil {
			return nil, err
		}
		return expr.IfThenElse(g, t, e)
	case *expr.AddFrontNode:
		elt, err := substitute(v.Elt, sub)
		if err != nil {
			return nil, err
		}
		list, err := substitute(v.List, sub)
		if err != nil {
			return nil, err
		}
		return expr.AddFront(elt, list)
	case *expr.ListCase:
		list, err := substitute(v.List, sub)
		if err != nil {
			return nil, err
		}
		empty, err := substitute(v.Empty, sub)
		if err != nil {
			return nil, err
		}
		return expr.Case(list, empty, func(head, tail expr.Node) expr.Node {
			inner := map[uint64]expr.Node{v.Head.ID(): head, v.Tail.ID(): tail}
			for k, vv := range sub {
				inner[k] = vv
			}
			body, _ := substitute(v.Cons, inner)
			return body
		})
	case *expr.CreateObject:
		fields := make(map[string]expr.Node, len(v.Fields))
		for name, child := range v.Fields {
			c, err := substitute(child, sub)
			if err != nil {
				return nil, err
			}
			fields[name] = c
		}
		return expr.NewObject(n.Type(), fields)
	case *expr.GetFieldNode:
		obj, err := substitute(v.Obj, sub)
		if err != nil {
			return nil, err
		}
		return expr.GetField(obj, v.Field)
	case *expr.WithFieldNode:
		obj, err := substitute(v.Obj, sub)
		if err != nil {
			return nil, err
		}
		val, err := substitute(v.Value, sub)
		if err != nil {
			return nil, err
		}
		return expr.WithField(obj, v.Field, val)
	case *expr.Adapter:
		operand, err := substitute(v.Operand, sub)
		if err != nil {
			return nil, err
		}
		return expr.NewAdapter(v.From, v.To, operand, v.Converters...)
	default:
		return n, nil
	}
}

func foldOrder(op expr.OrderOp, l, r *expr.ConstInt, t *typedesc.T) bool {
	if t.Kind.IsSigned() {
		lv, rv := signedValue(l, t), signedValue(r, t)
		if op == expr.OpLeq {
			return lv <= rv
		}
		return lv >= rv
	}
	lv, rv := l.Bits, r.Bits
	if op == expr.OpLeq {
		return lv <= rv
	}
	return lv >= rv
}

func signedValue(c *expr.ConstInt, t *typedesc.T) int64 {
	width := t.Kind.Width()
	shift := uint(64 - width)
	if width >= 64 {
		return int64(c.Bits)
	}
	return int64(c.Bits<<shift) >> shift
}

func mask(bits uint64, width int) uint64 {
	if width >= 64 {
		return bits
	}
	return bits & ((uint64(1) << uint(width)) - 1)
}

func foldArith(op expr.ArithOp, l, r *expr.ConstInt, t *typedesc.T) expr.Node {
	width := t.Kind.Width()
	var result uint64
	switch op {
	case expr.OpSum:
		result = l.Bits + r.Bits
	case expr.OpMinus:
		result = l.Bits - r.Bits
	case expr.OpMultiply:
		result = l.Bits * r.Bits
	case expr.OpMax:
		if t.Kind.IsSigned() {
			if signedValue(l, t) >= signedValue(r, t) {
				result = l.Bits
			} else {
				result = r.Bits
			}
		} else if l.Bits >= r.Bits {
			result = l.Bits
		} else {
			result = r.Bits
		}
	case expr.OpMin:
		if t.Kind.IsSigned() {
			if signedValue(l, t) <= signedValue(r, t) {
				result = l.Bits
			} else {
				result = r.Bits
			}
		} else if l.Bits <= r.Bits {
			result = l.Bits
		} else {
			result = r.Bits
		}
	}
	return constIntNode(t, mask(result, width))
}

func foldBitwise(op expr.BitOp, l, r *expr.ConstInt, t *typedesc.T) expr.Node {
	var result uint64
	switch op {
	case expr.OpBitAnd:
		result = l.Bits & r.Bits
	case expr.OpBitOr:
		result = l.Bits | r.Bits
	case expr.OpBitXor:
		result = l.Bits ^ r.Bits
	}
	return constIntNode(t, mask(result, t.Kind.Width()))
}

func foldBitNot(c *expr.ConstInt) expr.Node {
	return constIntNode(c.Type(), mask(^c.Bits, c.Type().Kind.Width()))
}

// constIntNode rebuilds a ConstInt-typed literal node of type t from a
// raw bit pattern, dispatching to the right-width factory.
func constIntNode(t *typedesc.T, bits uint64) expr.Node {
	switch t.Kind {
	case typedesc.KindInt8:
		return expr.Int8(int8(bits))
	case typedesc.KindInt16:
		return expr.Int16(int16(bits))
	case typedesc.KindInt32:
		return expr.Int32(int32(bits))
	case typedesc.KindInt64:
		return expr.Int64(int64(bits))
	case typedesc.KindUint8:
		return expr.Uint8(uint8(bits))
	case typedesc.KindUint16:
		return expr.Uint16(uint16(bits))
	case typedesc.KindUint32:
		return expr.Uint32(uint32(bits))
	default:
		return expr.Uint64(bits)
	}
}
