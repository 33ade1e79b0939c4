// Package typedesc carries the type vocabulary expression nodes are
// tagged with, plus the narrow type-walker contract (spec.md §6, §9)
// user record types must satisfy. It deliberately does not use runtime
// reflection: per the design notes, reflection is an external
// collaborator, not part of the core, so a user type participates by
// supplying a TypeDescriptor value (hand-written or derived at compile
// time by generated code), the same way the teacher's semantic package
// expects a *TypeAnnotation rather than inspecting Go's reflect.Type.
package typedesc

import "fmt"

// Kind enumerates the primitive and structural type kinds a Zen
// expression node may be tagged with.
type Kind uint8

const (
	KindBool Kind = iota
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindList
	KindRecord
	KindOption
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt8:
		return "int8"
	case KindInt16:
		return "int16"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindUint8:
		return "uint8"
	case KindUint16:
		return "uint16"
	case KindUint32:
		return "uint32"
	case KindUint64:
		return "uint64"
	case KindList:
		return "list"
	case KindRecord:
		return "record"
	case KindOption:
		return "option"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// IsInteger reports whether k is one of the eight fixed-width integer
// kinds (signed or unsigned).
func (k Kind) IsInteger() bool {
	return k >= KindInt8 && k <= KindUint64
}

// IsSigned reports whether k is a signed integer kind. Only meaningful
// when IsInteger(k) is true.
func (k Kind) IsSigned() bool {
	return k >= KindInt8 && k <= KindInt64
}

// Width returns the bit width of an integer kind: 8, 16, 32, or 64.
// Width panics if k is not an integer kind — callers must check
// IsInteger first, the same precondition discipline the expression
// factories enforce before calling Width.
func (k Kind) Width() int {
	switch k {
	case KindInt8, KindUint8:
		return 8
	case KindInt16, KindUint16:
		return 16
	case KindInt32, KindUint32:
		return 32
	case KindInt64, KindUint64:
		return 64
	default:
		panic(fmt.Sprintf("typedesc: Width called on non-integer kind %s", k))
	}
}

// SignedOf returns the signed integer kind of the given width.
func SignedOf(width int) Kind {
	switch width {
	case 8:
		return KindInt8
	case 16:
		return KindInt16
	case 32:
		return KindInt32
	case 64:
		return KindInt64
	default:
		panic(fmt.Sprintf("typedesc: unsupported integer width %d", width))
	}
}

// UnsignedOf returns the unsigned integer kind of the same width.
func UnsignedOf(width int) Kind {
	switch width {
	case 8:
		return KindUint8
	case 16:
		return KindUint16
	case 32:
		return KindUint32
	case 64:
		return KindUint64
	default:
		panic(fmt.Sprintf("typedesc: unsupported integer width %d", width))
	}
}

// T is the fully erased type tag attached to every expression node: a
// Kind plus, for structural kinds, the nested field/element
// descriptors needed to walk it.
type T struct {
	Kind Kind

	// Record-only: public fields in stable declaration order.
	Fields []Field

	// List/Option/Map-only: the element type.
	Elem *T

	// Map-only: the key type. Zen only supports primitive map keys.
	Key *T
}

// Field is one public field of a record type, in declaration order.
// Order is load-bearing: CreateObject, GetField and WithField all
// address fields by name, but the type walker's generated symbolic
// values are built by walking Fields in order, and that order must be
// stable across calls for hash-consing and canonical variable sets to
// line up.
type Field struct {
	Name string
	Type *T
}

// Bool, the eight integer kinds, List, Record, Option and Map
// constructors build a *T. Two *T built with equal (Kind, Fields,
// Elem, Key) are Equal, though not necessarily identical pointers —
// the expression hash-cons tables compare types structurally via
// Equal, not by address.
func Bool() *T { return &T{Kind: KindBool} }

func Int(width int) *T  { return &T{Kind: SignedOf(width)} }
func Uint(width int) *T { return &T{Kind: UnsignedOf(width)} }

func List(elem *T) *T { return &T{Kind: KindList, Elem: elem} }

// Option builds an Option<T> type. Per spec.md §3.1, Option<T> is not
// a distinct structural kind at the value level — it is a record of
// {hasValue: bool, value: T} — so the Option type carries the same two
// declared fields a record of that shape would, and GetField/WithField
// address them by name exactly as they would for any other record.
func Option(elem *T) *T {
	return &T{Kind: KindOption, Elem: elem, Fields: []Field{
		{Name: "hasValue", Type: Bool()},
		{Name: "value", Type: elem},
	}}
}
func Map(key, elem *T) *T {
	return &T{Kind: KindMap, Key: key, Elem: elem}
}

// Record builds a record type from its fields in declaration order.
// Record does not check the field count; the 1–8 field bound (spec.md
// §3.1) is enforced when CreateObject builds a value of the type.
func Record(fields ...Field) *T {
	return &T{Kind: KindRecord, Fields: fields}
}

// FieldIndex returns the index of the named field, or -1 if T is not a
// record or has no field with that name.
func (t *T) FieldIndex(name string) int {
	if t == nil || (t.Kind != KindRecord && t.Kind != KindOption) {
		return -1
	}
	for i, f := range t.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// Field returns the named field's type, or nil if absent.
func (t *T) Field(name string) *T {
	if i := t.FieldIndex(name); i >= 0 {
		return t.Fields[i].Type
	}
	return nil
}

// Equal reports structural equality between two type descriptors.
func (t *T) Equal(o *T) bool {
	if t == o {
		return true
	}
	if t == nil || o == nil {
		return false
	}
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case KindRecord, KindOption:
		if len(t.Fields) != len(o.Fields) {
			return false
		}
		for i := range t.Fields {
			if t.Fields[i].Name != o.Fields[i].Name || !t.Fields[i].Type.Equal(o.Fields[i].Type) {
				return false
			}
		}
		return true
	case KindList:
		return t.Elem.Equal(o.Elem)
	case KindMap:
		return t.Key.Equal(o.Key) && t.Elem.Equal(o.Elem)
	default:
		return true
	}
}

// String renders a type descriptor for diagnostics.
func (t *T) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case KindList:
		return "[" + t.Elem.String() + "]"
	case KindOption:
		return "option<" + t.Elem.String() + ">"
	case KindMap:
		return "map<" + t.Key.String() + "," + t.Elem.String() + ">"
	case KindRecord:
		s := "{"
		for i, f := range t.Fields {
			if i > 0 {
				s += ", "
			}
			s += f.Name + ": " + f.Type.String()
		}
		return s + "}"
	default:
		return t.Kind.String()
	}
}

// Walker is the narrow type-walker contract spec.md §6/§9 describes:
// enumerate a record type's public fields in stable order, and build
// an instance of that type back up from a field-name -> value map. It
// is the one place host-language reflection is allowed to live, kept
// entirely outside the core packages.
type Walker interface {
	// Describe returns the field descriptors for a registered record
	// type, in the same stable order every call for that type returns.
	Describe(typeName string) ([]Field, bool)

	// Build reconstructs a concrete Go value of typeName from a
	// complete field-name -> value map. Implementations may assume
	// every field returned by Describe is present in values.
	Build(typeName string, values map[string]any) (any, error)
}
