package arbitrary

import (
	"testing"

	"github.com/cwbudde/zen/internal/expr"
	"github.com/cwbudde/zen/internal/typedesc"
)

func TestGeneratePrimitiveIsArbitrary(t *testing.T) {
	n, err := Generate(typedesc.Uint(32), Config{Depth: 2})
	if err != nil {
		t.Fatal(err)
	}
	if n.Tag() != expr.TagArbitrary {
		t.Fatalf("Generate(uint32) = %s, want an Arbitrary node", n)
	}
}

func TestGenerateNonExhaustiveListHasFixedLength(t *testing.T) {
	n, err := Generate(typedesc.List(typedesc.Uint(8)), Config{Depth: 3, Exhaustive: false})
	if err != nil {
		t.Fatal(err)
	}
	depth := 0
	cur := n
	for {
		add, ok := cur.(*expr.AddFrontNode)
		if !ok {
			break
		}
		depth++
		cur = add.List
	}
	if _, ok := cur.(*expr.ListEmpty); !ok {
		t.Fatalf("non-exhaustive list generation did not bottom out at Empty")
	}
	if depth != 3 {
		t.Fatalf("non-exhaustive Generate(List<uint8>, depth=3) produced length %d, want 3", depth)
	}
}

func TestGenerateExhaustiveListIsGuarded(t *testing.T) {
	n, err := Generate(typedesc.List(typedesc.Uint(8)), Config{Depth: 2, Exhaustive: true})
	if err != nil {
		t.Fatal(err)
	}
	ifNode, ok := n.(*expr.If)
	if !ok {
		t.Fatalf("exhaustive list generation should produce an If-guarded slot at the top, got %T", n)
	}
	if ifNode.Guard.Tag() != expr.TagArbitrary {
		t.Fatalf("exhaustive list slot guard should be an Arbitrary bool")
	}
}

func TestGenerateOptionHasPresenceFlagAndValue(t *testing.T) {
	n, err := Generate(typedesc.Option(typedesc.Bool()), Config{Depth: 1})
	if err != nil {
		t.Fatal(err)
	}
	obj, ok := n.(*expr.CreateObject)
	if !ok {
		t.Fatalf("Generate(Option<bool>) = %T, want *expr.CreateObject", n)
	}
	if _, ok := obj.Fields["hasValue"]; !ok {
		t.Fatalf("generated Option is missing hasValue field")
	}
	if _, ok := obj.Fields["value"]; !ok {
		t.Fatalf("generated Option is missing value field")
	}
}

func TestGenerateMapIsAssociationList(t *testing.T) {
	mapType := typedesc.Map(typedesc.Uint(8), typedesc.Bool())
	n, err := Generate(mapType, Config{Depth: 2, Exhaustive: false})
	if err != nil {
		t.Fatal(err)
	}
	add, ok := n.(*expr.AddFrontNode)
	if !ok {
		t.Fatalf("Generate(Map<uint8,bool>) = %T, want *expr.AddFrontNode over pair records", n)
	}
	if _, ok := add.Elt.(*expr.CreateObject); !ok {
		t.Fatalf("map association-list element should be a {key,value} record")
	}
}
