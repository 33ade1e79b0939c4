// Package interleave implements the variable-interleaving heuristic
// spec.md §4.4 describes: a union-find over the Arbitrary nodes an
// expression mentions, merging any two Arbitrary variables that
// co-occur under a relational or arithmetic constraint, so the BDD
// backend can be asked to allocate their per-bit variables adjacently
// and keep the diagram compact.
package interleave

import "github.com/cwbudde/zen/internal/expr"

// Groups partitions the Arbitrary nodes reachable from root into
// classes that should be allocated adjacent BDD variables. The result
// maps each Arbitrary's node ID to a representative ID shared by every
// other member of its class.
func Groups(root expr.Node) map[uint64]uint64 {
	uf := newUnionFind()
	visited := make(map[uint64]bool)
	collect(root, uf, visited)
	return uf.classes()
}

// unionFind is a standard union-by-rank, path-compressing disjoint-set
// structure keyed by node ID.
type unionFind struct {
	parent map[uint64]uint64
	rank   map[uint64]int
}

func newUnionFind() *unionFind {
	return &unionFind{parent: make(map[uint64]uint64), rank: make(map[uint64]int)}
}

func (u *unionFind) find(x uint64) uint64 {
	if _, ok := u.parent[x]; !ok {
		u.parent[x] = x
		return x
	}
	root := x
	for u.parent[root] != root {
		root = u.parent[root]
	}
	for u.parent[x] != root {
		next := u.parent[x]
		u.parent[x] = root
		x = next
	}
	return root
}

func (u *unionFind) union(a, b uint64) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	if u.rank[ra] < u.rank[rb] {
		ra, rb = rb, ra
	}
	u.parent[rb] = ra
	if u.rank[ra] == u.rank[rb] {
		u.rank[ra]++
	}
}

func (u *unionFind) classes() map[uint64]uint64 {
	out := make(map[uint64]uint64, len(u.parent))
	for x := range u.parent {
		out[x] = u.find(x)
	}
	return out
}

func collectIDs(n expr.Node, set map[uint64]bool, seen map[uint64]bool) {
	if n == nil || seen[n.ID()] {
		return
	}
	seen[n.ID()] = true
	if n.Tag() == expr.TagArbitrary {
		set[n.ID()] = true
	}
	for _, child := range children(n) {
		collectIDs(child, set, seen)
	}
}

// combine unions every pair of Arbitrary variables that appear on
// opposite sides of a coupling operator: Eq, Leq/Geq, and every
// arithmetic operator (Sum, Minus, Multiply, Max, Min). Bitwise operators deliberately do not combine their
// operands (spec.md §4.4 — per-bit independence means there is no
// ordering benefit to keeping them adjacent).
func combine(uf *unionFind, l, r expr.Node) {
	ls, rs := make(map[uint64]bool), make(map[uint64]bool)
	collectIDs(l, ls, make(map[uint64]bool))
	collectIDs(r, rs, make(map[uint64]bool))
	for a := range ls {
		for b := range rs {
			uf.union(a, b)
		}
	}
}

// collect walks n, recording every Arbitrary it finds in visited for
// membership and unioning the operands of every combining operator it
// passes through.
func collect(n expr.Node, uf *unionFind, visited map[uint64]bool) {
	if n == nil || visited[n.ID()] {
		return
	}
	visited[n.ID()] = true

	if n.Tag() == expr.TagArbitrary {
		uf.find(n.ID())
	}

	switch v := n.(type) {
	case *expr.Eq:
		combine(uf, v.L, v.R)
	case *expr.Order:
		combine(uf, v.L, v.R)
	case *expr.Arith:
		combine(uf, v.L, v.R)
	case *expr.ListCase:
		// Conservative approximation: the cons branch binds fresh
		// Head/Tail placeholders whose eventual concrete couplings
		// depend on runtime list contents, so interleaving ignores the
		// cons branch (spec.md §4.4 open question on ListCase handling).
		// Its Arbitrary nodes are only registered, each in a class of
		// its own unless a coupling outside the branch joins it.
		collect(v.List, uf, visited)
		collect(v.Empty, uf, visited)
		inCons := make(map[uint64]bool)
		collectIDs(v.Cons, inCons, make(map[uint64]bool))
		for id := range inCons {
			uf.find(id)
		}
		return
	}

	for _, child := range children(n) {
		collect(child, uf, visited)
	}
}

// Order returns every Arbitrary node reachable from root, grouped by
// Groups' classes: nodes in the same interleaving group come out
// adjacent, groups in first-seen order and members within a group in
// first-seen order. internal/modelcheck primes solver variables in
// this order (via symbolic.Session.Prime) before evaluating a query,
// so the BDD backend allocates coupled variables next to each other.
func Order(root expr.Node) []*expr.Arbitrary {
	groups := Groups(root)

	visited := make(map[uint64]bool)
	nodes := make(map[uint64]*expr.Arbitrary)
	var firstSeen []uint64
	var walk func(n expr.Node)
	walk = func(n expr.Node) {
		if n == nil || visited[n.ID()] {
			return
		}
		visited[n.ID()] = true
		if a, ok := n.(*expr.Arbitrary); ok {
			firstSeen = append(firstSeen, a.ID())
			nodes[a.ID()] = a
		}
		for _, c := range children(n) {
			walk(c)
		}
	}
	walk(root)

	groupIndex := make(map[uint64]int)
	var groupSeq []uint64
	members := make(map[uint64][]uint64)
	for _, id := range firstSeen {
		g := groups[id]
		if _, ok := groupIndex[g]; !ok {
			groupIndex[g] = len(groupSeq)
			groupSeq = append(groupSeq, g)
		}
		members[g] = append(members[g], id)
	}

	out := make([]*expr.Arbitrary, 0, len(firstSeen))
	for _, g := range groupSeq {
		for _, id := range members[g] {
			out = append(out, nodes[id])
		}
	}
	return out
}

// children enumerates n's immediate operand nodes for traversal
// purposes. It intentionally does not special-case List.Case's bound
// Head/Tail — they are themselves reachable as children of Cons and
// get visited like any other Arbitrary.
func children(n expr.Node) []expr.Node {
	switch v := n.(type) {
	case *expr.ConstBool, *expr.ConstInt, *expr.Arbitrary, *expr.Argument, *expr.ListEmpty:
		return nil
	case *expr.Adapter:
		return []expr.Node{v.Operand}
	case *expr.Logical:
		return []expr.Node{v.L, v.R}
	case *expr.LNot:
		return []expr.Node{v.X}
	case *expr.If:
		return []expr.Node{v.Guard, v.Then, v.Else}
	case *expr.Eq:
		return []expr.Node{v.L, v.R}
	case *expr.Order:
		return []expr.Node{v.L, v.R}
	case *expr.Arith:
		return []expr.Node{v.L, v.R}
	case *expr.Bitwise:
		return []expr.Node{v.L, v.R}
	case *expr.BitNot:
		return []expr.Node{v.X}
	case *expr.AddFrontNode:
		return []expr.Node{v.Elt, v.List}
	case *expr.ListCase:
		return []expr.Node{v.List, v.Empty, v.Cons}
	case *expr.CreateObject:
		out := make([]expr.Node, 0, len(v.Fields))
		for _, f := range v.Fields {
			out = append(out, f)
		}
		return out
	case *expr.GetFieldNode:
		return []expr.Node{v.Obj}
	case *expr.WithFieldNode:
		return []expr.Node{v.Obj, v.Value}
	default:
		return nil
	}
}
