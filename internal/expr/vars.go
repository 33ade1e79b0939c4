package expr

import (
	"fmt"

	"github.com/cwbudde/zen/internal/typedesc"
	"github.com/cwbudde/zen/internal/zerr"
)

// Arbitrary is a typed free-variable placeholder. Its identity is its
// own node identity — deliberately NOT hash-consed across calls, since
// two calls to NewArbitrary(t) must denote two distinct unknowns (the
// whole point of a free variable), even when called back to back with
// an identical type.
type Arbitrary struct {
	base
}

func (a *Arbitrary) Tag() Tag       { return TagArbitrary }
func (a *Arbitrary) String() string { return fmt.Sprintf("arbitrary#%d:%s", a.id, a.typ) }

// NewArbitrary allocates a fresh Arbitrary node of type t.
func NewArbitrary(t *typedesc.T) Node {
	return &Arbitrary{base: base{id: allocID(), typ: t}}
}

// Argument is a formal parameter referenced by a stable string id,
// read from the interpreter's environment during concrete evaluation.
// Well-formed Zen expressions passed to the symbolic evaluator or a
// solver must not contain an Argument node — encountering one there is
// an Unreachable error (spec.md §7), since "the argument" only has
// meaning inside the interpreter's env.
type Argument struct {
	base
	ArgID string
}

func (a *Argument) Tag() Tag       { return TagArgument }
func (a *Argument) String() string { return "$" + a.ArgID }

// NewArgument builds (or returns the cached) Argument node with the
// given stable id and type. Unlike Arbitrary, Arguments with the same
// (id, type) do denote the same formal parameter and are hash-consed.
func NewArgument(id string, t *typedesc.T) Node {
	key := fmt.Sprintf("arg:%s:%s", id, t)
	return intern(key, func() Node {
		return &Argument{base: base{id: allocID(), typ: t}, ArgID: id}
	})
}

// Converter is one step of an Adapter's concrete-value conversion
// chain: From -> some intermediate representation -> ... -> To. Only
// the interpreter ever calls a Converter; symbolic evaluation treats
// Adapter as the identity on its operand (spec.md §3.1).
type Converter func(any) (any, error)

// Adapter carries an ordered sequence of concrete-value converters and
// is semantically the identity on symbolic terms. It is never
// hash-consed: its Converters are Go closures, not comparable values,
// so each call to NewAdapter denotes a fresh conversion pipeline even
// when From/To/Operand coincide with an earlier call.
type Adapter struct {
	base
	From, To   *typedesc.T
	Operand    Node
	Converters []Converter
}

func (a *Adapter) Tag() Tag       { return TagAdapter }
func (a *Adapter) String() string { return fmt.Sprintf("adapt<%s,%s>(%s)", a.From, a.To, a.Operand) }

// NewAdapter validates that operand's type matches from, then builds
// an Adapter node of result type to.
func NewAdapter(from, to *typedesc.T, operand Node, converters ...Converter) (Node, error) {
	if !operand.Type().Equal(from) {
		return nil, zerr.New(zerr.InvalidConstruction,
			"Adapter: operand type %s does not match From %s", operand.Type(), from)
	}
	return &Adapter{
		base:       base{id: allocID(), typ: to},
		From:       from,
		To:         to,
		Operand:    operand,
		Converters: converters,
	}, nil
}
