package expr

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cwbudde/zen/internal/typedesc"
	"github.com/cwbudde/zen/internal/zerr"
)

// CreateObject builds a record value from a complete field-name ->
// value map. Record types must have between 1 and 8 fields (spec.md
// §3.1).
type CreateObject struct {
	base
	Fields map[string]Node
}

func (n *CreateObject) Tag() Tag { return TagCreateObject }
func (n *CreateObject) String() string {
	names := fieldNamesOf(n.Fields)
	var sb strings.Builder
	sb.WriteString("CreateObject{")
	for i, name := range names {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s: %s", name, n.Fields[name])
	}
	sb.WriteString("}")
	return sb.String()
}

func fieldNamesOf(fields map[string]Node) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewObject validates fields against t's declared fields (exact match,
// both directions) and builds the record node.
func NewObject(t *typedesc.T, fields map[string]Node) (Node, error) {
	if t == nil || (t.Kind != typedesc.KindRecord && t.Kind != typedesc.KindOption) {
		return nil, zerr.New(zerr.InvalidConstruction, "CreateObject: type must be a record, got %s", t)
	}
	if t.Kind == typedesc.KindRecord && (len(t.Fields) < 1 || len(t.Fields) > 8) {
		return nil, zerr.New(zerr.InvalidConstruction,
			"CreateObject: record types must declare 1-8 fields, got %d", len(t.Fields))
	}
	if len(fields) != len(t.Fields) {
		return nil, zerr.New(zerr.InvalidConstruction,
			"CreateObject: expected %d fields, got %d", len(t.Fields), len(fields))
	}
	for _, f := range t.Fields {
		v, ok := fields[f.Name]
		if !ok {
			return nil, zerr.New(zerr.InvalidConstruction, "CreateObject: missing field %q", f.Name)
		}
		if !v.Type().Equal(f.Type) {
			return nil, zerr.New(zerr.InvalidConstruction,
				"CreateObject: field %q type mismatch: expected %s, got %s", f.Name, f.Type, v.Type())
		}
	}

	var keyb strings.Builder
	fmt.Fprintf(&keyb, "obj:%s", t)
	for _, f := range t.Fields {
		fmt.Fprintf(&keyb, ":%s=%d", f.Name, fields[f.Name].ID())
	}
	key := keyb.String()
	return intern(key, func() Node {
		cp := make(map[string]Node, len(fields))
		for k, v := range fields {
			cp[k] = v
		}
		return &CreateObject{base: base{id: allocID(), typ: t}, Fields: cp}
	}), nil
}

// GetFieldNode reads one named field of a record.
type GetFieldNode struct {
	base
	Obj   Node
	Field string
}

func (n *GetFieldNode) Tag() Tag       { return TagGetField }
func (n *GetFieldNode) String() string { return fmt.Sprintf("%s.%s", n.Obj, n.Field) }

// GetField validates field names an existing public field of obj's
// record type and builds the projection node. The simplifier fuses
// GetField through CreateObject/WithField (§4.1); this factory does
// not — it always builds a node, leaving fusion to Simplify.
func GetField(obj Node, field string) (Node, error) {
	ft := obj.Type().Field(field)
	if ft == nil {
		return nil, zerr.New(zerr.InvalidConstruction, "GetField: %s has no field %q", obj.Type(), field)
	}
	key := fmt.Sprintf("get:%d:%s", obj.ID(), field)
	return intern(key, func() Node {
		return &GetFieldNode{base: base{id: allocID(), typ: ft}, Obj: obj, Field: field}
	}), nil
}

// WithFieldNode replaces one named field of a record, sharing all
// others.
type WithFieldNode struct {
	base
	Obj   Node
	Field string
	Value Node
}

func (n *WithFieldNode) Tag() Tag { return TagWithField }
func (n *WithFieldNode) String() string {
	return fmt.Sprintf("%s{%s: %s}", n.Obj, n.Field, n.Value)
}

// WithField validates field names an existing public field of obj's
// type and value matches its declared type, and builds the
// field-update node.
func WithField(obj Node, field string, value Node) (Node, error) {
	ft := obj.Type().Field(field)
	if ft == nil {
		return nil, zerr.New(zerr.InvalidConstruction, "WithField: %s has no field %q", obj.Type(), field)
	}
	if !value.Type().Equal(ft) {
		return nil, zerr.New(zerr.InvalidConstruction,
			"WithField: field %q type mismatch: expected %s, got %s", field, ft, value.Type())
	}
	key := fmt.Sprintf("with:%d:%s:%d", obj.ID(), field, value.ID())
	return intern(key, func() Node {
		return &WithFieldNode{base: base{id: allocID(), typ: obj.Type()}, Obj: obj, Field: field, Value: value}
	}), nil
}
