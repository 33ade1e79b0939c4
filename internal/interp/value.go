// Package interp implements Zen's concrete interpreter: it evaluates a
// hash-consed expression DAG against a binding environment and produces
// runtime values, mirroring what the symbolic evaluator does against an
// abstract solver (see internal/symbolic).
package interp

import (
	"fmt"
	"strings"

	"github.com/cwbudde/zen/internal/typedesc"
)

// Value is a concrete runtime value. Every expr.Node kind except the
// unknowns (Arbitrary, Argument before binding) evaluates to one of
// these.
type Value interface {
	Type() *typedesc.T
	String() string
	valueEqual(Value) bool
}

// Equal reports whether a and b denote the same value under their
// shared type's equality (spec.md §4.2 Eq semantics).
func Equal(a, b Value) bool {
	return a.valueEqual(b)
}

// BoolValue is a concrete boolean.
type BoolValue struct{ V bool }

func (b BoolValue) Type() *typedesc.T { return typedesc.Bool() }
func (b BoolValue) String() string    { return fmt.Sprintf("%t", b.V) }
func (b BoolValue) valueEqual(o Value) bool {
	ob, ok := o.(BoolValue)
	return ok && ob.V == b.V
}

// IntValue is a concrete fixed-width integer, stored as its raw bit
// pattern. Signed() and Unsigned() are two readings of the same bits;
// Zen never keeps a separate signed/unsigned representation (spec.md
// §4.2 bit-cast contract).
type IntValue struct {
	T    *typedesc.T
	Bits uint64
}

func (v IntValue) Type() *typedesc.T { return v.T }

func (v IntValue) String() string {
	if v.T.Kind.IsSigned() {
		return fmt.Sprintf("%d", v.Signed())
	}
	return fmt.Sprintf("%d", v.Unsigned())
}

func (v IntValue) valueEqual(o Value) bool {
	ov, ok := o.(IntValue)
	return ok && ov.T.Equal(v.T) && ov.Bits == v.Bits
}

func maskWidth(bits uint64, width int) uint64 {
	if width >= 64 {
		return bits
	}
	return bits & ((uint64(1) << uint(width)) - 1)
}

// Unsigned reads the stored bit pattern as an unsigned integer.
func (v IntValue) Unsigned() uint64 {
	return maskWidth(v.Bits, v.T.Kind.Width())
}

// Signed reads the stored bit pattern as a two's-complement signed
// integer of the value's declared width.
func (v IntValue) Signed() int64 {
	width := v.T.Kind.Width()
	u := maskWidth(v.Bits, width)
	if width >= 64 {
		return int64(u)
	}
	signBit := uint64(1) << uint(width-1)
	if u&signBit != 0 {
		return int64(u) - (int64(1) << uint(width))
	}
	return int64(u)
}

// NewInt builds an IntValue of typedesc kind k by masking signedRepr's
// bit pattern to the kind's width.
func NewInt(k typedesc.Kind, signedRepr int64) IntValue {
	t := &typedesc.T{Kind: k}
	return IntValue{T: t, Bits: maskWidth(uint64(signedRepr), k.Width())}
}

// ListValue is a concrete, finite, ordered sequence.
type ListValue struct {
	Elem  *typedesc.T
	Items []Value
}

func (v ListValue) Type() *typedesc.T { return typedesc.List(v.Elem) }

func (v ListValue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, item := range v.Items {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(item.String())
	}
	sb.WriteString("]")
	return sb.String()
}

func (v ListValue) valueEqual(o Value) bool {
	ov, ok := o.(ListValue)
	if !ok || len(ov.Items) != len(v.Items) {
		return false
	}
	for i := range v.Items {
		if !v.Items[i].valueEqual(ov.Items[i]) {
			return false
		}
	}
	return true
}

// RecordValue is a concrete record: a complete map from declared field
// name to value.
type RecordValue struct {
	T      *typedesc.T
	Fields map[string]Value
}

func (v RecordValue) Type() *typedesc.T { return v.T }

func (v RecordValue) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, f := range v.T.Fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s: %s", f.Name, v.Fields[f.Name])
	}
	sb.WriteString("}")
	return sb.String()
}

func (v RecordValue) valueEqual(o Value) bool {
	ov, ok := o.(RecordValue)
	if !ok || !ov.T.Equal(v.T) {
		return false
	}
	for name, fv := range v.Fields {
		ofv, ok := ov.Fields[name]
		if !ok || !fv.valueEqual(ofv) {
			return false
		}
	}
	return true
}
