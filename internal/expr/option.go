package expr

import "github.com/cwbudde/zen/internal/typedesc"

// Some builds a present Option<T> value: CreateObject under the hood,
// since Option<T> is structurally the record {hasValue: bool, value:
// T} (spec.md §3.1).
func Some(elemType *typedesc.T, value Node) (Node, error) {
	return NewObject(typedesc.Option(elemType), map[string]Node{
		"hasValue": Bool(true),
		"value":    value,
	})
}

// None builds an absent Option<T> value. The value field still needs
// a witness of type T to satisfy CreateObject's exact-field-set rule;
// zero builds the same placeholder-free witness Generate would use for
// a primitive of that type when no constraint forces a concrete one.
func None(elemType *typedesc.T, zero Node) (Node, error) {
	return NewObject(typedesc.Option(elemType), map[string]Node{
		"hasValue": Bool(false),
		"value":    zero,
	})
}

// HasValue projects Option<T>'s presence flag.
func HasValue(opt Node) (Node, error) { return GetField(opt, "hasValue") }

// ValueOf projects Option<T>'s payload field, valid only when
// HasValue holds (the caller is responsible for guarding with an If,
// the same "undefined if the precondition fails" discipline the rest
// of Zen's node vocabulary relies on instead of throwing).
func ValueOf(opt Node) (Node, error) { return GetField(opt, "value") }
