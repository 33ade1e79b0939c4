// Package arbitrary implements the symbolic-input generator of
// spec.md §4.5: given a target type and a depth configuration, it
// drives typedesc's type-walker contract to build a finite expression
// representing "some value of this type", suitable for feeding to
// find/findInputs as an unconstrained symbolic argument.
package arbitrary

import (
	"github.com/cwbudde/zen/internal/expr"
	"github.com/cwbudde/zen/internal/typedesc"
	"github.com/cwbudde/zen/internal/zerr"
)

// Config is spec.md §4.5's depthConfiguration: a bound on how many
// list/map slots to materialise, and whether the generated length is
// fixed at exactly Depth (Exhaustive=false) or ranges over
// 0..Depth via guarded slots (Exhaustive=true).
type Config struct {
	Depth      int
	Exhaustive bool
}

// Generate builds a symbolic value of type t under cfg. Record fields
// use the same Config for their own nested list/map members; spec.md
// §4.5 allows per-field depth overrides via a FixedSize tag, which
// Zen exposes as a per-field Config override map keyed by field name
// (see GenerateRecord).
func Generate(t *typedesc.T, cfg Config) (expr.Node, error) {
	switch t.Kind {
	case typedesc.KindBool, typedesc.KindInt8, typedesc.KindInt16, typedesc.KindInt32, typedesc.KindInt64,
		typedesc.KindUint8, typedesc.KindUint16, typedesc.KindUint32, typedesc.KindUint64:
		return expr.NewArbitrary(t), nil

	case typedesc.KindOption:
		return generateOption(t, cfg)

	case typedesc.KindRecord:
		return GenerateRecord(t, cfg, nil)

	case typedesc.KindList:
		return generateList(t.Elem, cfg)

	case typedesc.KindMap:
		return generateMap(t.Key, t.Elem, cfg)

	default:
		return nil, zerr.New(zerr.InvalidConstruction, "arbitrary: unsupported type kind %s", t.Kind)
	}
}

// generateOption builds hasValue (an arbitrary bool) and a recursive
// arbitrary T, then wraps them as the {hasValue, value} record Option
// structurally is (spec.md §3.1, §4.5).
func generateOption(t *typedesc.T, cfg Config) (expr.Node, error) {
	inner, err := Generate(t.Elem, cfg)
	if err != nil {
		return nil, err
	}
	return expr.NewObject(t, map[string]expr.Node{
		"hasValue": expr.NewArbitrary(typedesc.Bool()),
		"value":    inner,
	})
}

// GenerateRecord recurses field by field. overrides, if non-nil, maps
// a field name to a Config that replaces cfg for that field only — the
// per-field "FixedSize / explicit depth override" tags spec.md §4.5
// describes.
func GenerateRecord(t *typedesc.T, cfg Config, overrides map[string]Config) (expr.Node, error) {
	fields := make(map[string]expr.Node, len(t.Fields))
	for _, f := range t.Fields {
		fieldCfg := cfg
		if overrides != nil {
			if c, ok := overrides[f.Name]; ok {
				fieldCfg = c
			}
		}
		v, err := Generate(f.Type, fieldCfg)
		if err != nil {
			return nil, err
		}
		fields[f.Name] = v
	}
	return expr.NewObject(t, fields)
}

// generateList builds a finite symbolic list of element type elem.
// Non-exhaustive: exactly cfg.Depth elements, unconditionally present.
// Exhaustive: up to cfg.Depth guarded slots nested so slot i requires
// guards 1..i to all hold — "guard1 ∧ ... ∧ guardi indicates length ≥
// i" (spec.md §4.5).
func generateList(elem *typedesc.T, cfg Config) (expr.Node, error) {
	return buildListSlots(elem, cfg, 0)
}

func buildListSlots(elem *typedesc.T, cfg Config, i int) (expr.Node, error) {
	if i >= cfg.Depth {
		return expr.Empty(elem), nil
	}
	head, err := Generate(elem, cfg)
	if err != nil {
		return nil, err
	}
	tail, err := buildListSlots(elem, cfg, i+1)
	if err != nil {
		return nil, err
	}
	cons, err := expr.AddFront(head, tail)
	if err != nil {
		return nil, err
	}
	if !cfg.Exhaustive {
		return cons, nil
	}
	guard := expr.NewArbitrary(typedesc.Bool())
	return expr.IfThenElse(guard, cons, expr.Empty(elem))
}

// generateMap builds a finite symbolic association list of {key,
// value} pairs, the same guarded-slot scheme as generateList applied
// to a record pair type (spec.md §4.5: "a finite symbolic association
// list with the same semantics").
func generateMap(key, elem *typedesc.T, cfg Config) (expr.Node, error) {
	pairType := typedesc.Record(
		typedesc.Field{Name: "key", Type: key},
		typedesc.Field{Name: "value", Type: elem},
	)
	return generateList(pairType, cfg)
}

// PairType returns the {key, value} record type a Map<K,V>'s
// association-list representation uses, so callers (e.g.
// internal/stateset, the CLI) can interpret a generated map's
// contents without recomputing the shape.
func PairType(t *typedesc.T) *typedesc.T {
	return typedesc.Record(
		typedesc.Field{Name: "key", Type: t.Key},
		typedesc.Field{Name: "value", Type: t.Elem},
	)
}
