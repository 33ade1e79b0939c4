package expr

import (
	"fmt"

	"github.com/cwbudde/zen/internal/typedesc"
)

// ConstBool is a boolean literal.
type ConstBool struct {
	base
	Value bool
}

func (c *ConstBool) Tag() Tag      { return TagConstBool }
func (c *ConstBool) String() string { return fmt.Sprintf("%v", c.Value) }

// Bool constructs (or returns the cached instance of) a boolean
// constant node.
func Bool(v bool) Node {
	key := fmt.Sprintf("b:%v", v)
	return intern(key, func() Node {
		return &ConstBool{base: base{id: allocID(), typ: typedesc.Bool()}, Value: v}
	})
}

// ConstInt is an integer literal of one of the eight supported widths
// and signednesses. The value is stored as a raw bit pattern; Kind
// says how to interpret it.
type ConstInt struct {
	base
	Bits uint64
}

func (c *ConstInt) Tag() Tag { return TagConstInt }

func (c *ConstInt) String() string {
	if c.typ.Kind.IsSigned() {
		return fmt.Sprintf("%d", signExtend(c.Bits, c.typ.Kind.Width()))
	}
	return fmt.Sprintf("%d", maskWidth(c.Bits, c.typ.Kind.Width()))
}

func constInt(k typedesc.Kind, bits uint64) Node {
	bits = maskWidth(bits, k.Width())
	key := fmt.Sprintf("i:%s:%d", k, bits)
	return intern(key, func() Node {
		return &ConstInt{base: base{id: allocID(), typ: &typedesc.T{Kind: k}}, Bits: bits}
	})
}

func Int8(v int8) Node   { return constInt(typedesc.KindInt8, uint64(uint8(v))) }
func Int16(v int16) Node { return constInt(typedesc.KindInt16, uint64(uint16(v))) }
func Int32(v int32) Node { return constInt(typedesc.KindInt32, uint64(uint32(v))) }
func Int64(v int64) Node { return constInt(typedesc.KindInt64, uint64(v)) }

func Uint8(v uint8) Node   { return constInt(typedesc.KindUint8, uint64(v)) }
func Uint16(v uint16) Node { return constInt(typedesc.KindUint16, uint64(v)) }
func Uint32(v uint32) Node { return constInt(typedesc.KindUint32, uint64(v)) }
func Uint64(v uint64) Node { return constInt(typedesc.KindUint64, v) }

// maskWidth truncates bits to the low width bits.
func maskWidth(bits uint64, width int) uint64 {
	if width >= 64 {
		return bits
	}
	return bits & ((uint64(1) << uint(width)) - 1)
}

// signExtend interprets the low width bits of bits as a two's
// complement signed integer and sign-extends to int64. This is the
// "bit-cast" spec.md §4.2 and §9 describe: the solver hands back an
// unsigned representative and the interpreter recovers the signed or
// unsigned reading by masking/extending, never by a separate signed
// code path in the solver.
func signExtend(bits uint64, width int) int64 {
	if width >= 64 {
		return int64(bits)
	}
	shift := uint(64 - width)
	return int64(bits<<shift) >> shift
}
