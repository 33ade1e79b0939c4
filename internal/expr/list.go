package expr

import (
	"fmt"

	"github.com/cwbudde/zen/internal/typedesc"
	"github.com/cwbudde/zen/internal/zerr"
)

// ListEmpty is the unique empty list of a given element type.
type ListEmpty struct {
	base
}

func (n *ListEmpty) Tag() Tag       { return TagListEmpty }
func (n *ListEmpty) String() string { return fmt.Sprintf("Empty<%s>", n.typ.Elem) }

// Empty builds (or returns the cached) empty-list node of the given
// element type.
func Empty(elemType *typedesc.T) Node {
	key := fmt.Sprintf("empty:%s", elemType)
	return intern(key, func() Node {
		return &ListEmpty{base: base{id: allocID(), typ: typedesc.List(elemType)}}
	})
}

// AddFront prepends elt to list.
type AddFrontNode struct {
	base
	Elt, List Node
}

func (n *AddFrontNode) Tag() Tag       { return TagAddFront }
func (n *AddFrontNode) String() string { return fmt.Sprintf("AddFront(%s, %s)", n.Elt, n.List) }

// AddFront validates that list is a list of elt's type and builds the
// cons node.
func AddFront(elt, list Node) (Node, error) {
	lt := list.Type()
	if lt == nil || lt.Kind != typedesc.KindList || !lt.Elem.Equal(elt.Type()) {
		return nil, zerr.New(zerr.InvalidConstruction,
			"AddFront: list must be a list of %s, got %s", elt.Type(), lt)
	}
	key := fmt.Sprintf("addfront:%d:%d", elt.ID(), list.ID())
	return intern(key, func() Node {
		return &AddFrontNode{base: base{id: allocID(), typ: lt}, Elt: elt, List: list}
	}), nil
}

// ListCase is list pattern matching: Case(list, empty, cons), where
// cons is built by the caller's build function from fresh Head/Tail
// placeholders scoped to this Case. Because Head and Tail are fresh
// Arbitrary nodes allocated per call (see NewArbitrary), ListCase
// nodes are NOT hash-consed across calls — two structurally equal
// Case expressions built independently are alpha-equivalent, not
// identical, and Zen does not attempt alpha-equivalence hashing.
type ListCase struct {
	base
	List, Empty Node
	Head, Tail  Node
	Cons        Node
}

func (n *ListCase) Tag() Tag { return TagListCase }
func (n *ListCase) String() string {
	return fmt.Sprintf("Case(%s, %s, %s->%s)", n.List, n.Empty, n.Head, n.Cons)
}

// Case builds list pattern matching. build receives fresh Head (of the
// list's element type) and Tail (of the list's own type) placeholder
// nodes and must return a body of the same type as emptyBranch.
func Case(list, emptyBranch Node, build func(head, tail Node) Node) (Node, error) {
	lt := list.Type()
	if lt == nil || lt.Kind != typedesc.KindList {
		return nil, zerr.New(zerr.InvalidConstruction, "Case: list operand must be a list, got %s", lt)
	}
	head := NewArbitrary(lt.Elem)
	tail := NewArbitrary(lt)
	cons := build(head, tail)
	if !cons.Type().Equal(emptyBranch.Type()) {
		return nil, zerr.New(zerr.InvalidConstruction,
			"Case: cons branch type %s does not match empty branch type %s", cons.Type(), emptyBranch.Type())
	}
	return &ListCase{
		base:  base{id: allocID(), typ: emptyBranch.Type()},
		List:  list,
		Empty: emptyBranch,
		Head:  head,
		Tail:  tail,
		Cons:  cons,
	}, nil
}
