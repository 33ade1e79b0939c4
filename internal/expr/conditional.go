package expr

import (
	"fmt"

	"github.com/cwbudde/zen/internal/typedesc"
	"github.com/cwbudde/zen/internal/zerr"
)

// If is the polymorphic conditional: If(guard, then, else). Its
// result type is the common type of then and else, which must agree
// exactly.
type If struct {
	base
	Guard, Then, Else Node
}

func (n *If) Tag() Tag { return TagIf }
func (n *If) String() string {
	return fmt.Sprintf("If(%s, %s, %s)", n.Guard, n.Then, n.Else)
}

// IfThenElse validates that guard is boolean and then/else agree in
// type, and builds the conditional node.
func IfThenElse(guard, then, els Node) (Node, error) {
	if guard.Type().Kind != typedesc.KindBool {
		return nil, zerr.New(zerr.InvalidConstruction, "If: guard must be bool, got %s", guard.Type())
	}
	if !then.Type().Equal(els.Type()) {
		return nil, zerr.New(zerr.InvalidConstruction,
			"If: then/else type mismatch: %s vs %s", then.Type(), els.Type())
	}
	key := fmt.Sprintf("if:%d:%d:%d", guard.ID(), then.ID(), els.ID())
	return intern(key, func() Node {
		return &If{base: base{id: allocID(), typ: then.Type()}, Guard: guard, Then: then, Else: els}
	}), nil
}
