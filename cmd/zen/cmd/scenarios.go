package cmd

import (
	"fmt"

	"github.com/cwbudde/zen/internal/expr"
	"github.com/cwbudde/zen/internal/fn"
	"github.com/cwbudde/zen/internal/typedesc"
)

// scenario is a named, built-in demonstration query: Zen has no
// textual expression syntax of its own (it is an embedded Go library,
// spec.md §6's "no wire protocol, no CLI"), so the CLI demonstrates
// the library against a small catalog of hand-built expressions
// instead of parsing one from CLI input.
type scenario struct {
	name    string
	doc     string
	vars    []expr.Node          // the Arbitrary leaves inputs may request by index
	query   expr.Node            // a boolean expression, for find/check
	target  *fn.Func             // a T1 -> T2 function, for transform
	sameTyp *typedesc.T          // transform's endpoint type, when target is set
}

func mustNode(n expr.Node, err error) expr.Node {
	if err != nil {
		panic(err)
	}
	return n
}

func buildScenarios() map[string]scenario {
	u8 := typedesc.Uint(8)

	x := expr.NewArbitrary(u8)
	y := expr.NewArbitrary(u8)
	sumEquals7 := mustNode(expr.And(
		mustNode(expr.Equal(mustNode(expr.Sum(x, y)), expr.Uint8(7))),
		mustNode(expr.Leq(x, expr.Uint8(3))),
	))

	z := expr.NewArbitrary(u8)
	isFortyTwo := mustNode(expr.Equal(z, expr.Uint8(42)))

	increment := fn.New(u8, func(arg expr.Node) expr.Node {
		return mustNode(expr.Sum(arg, expr.Uint8(1)))
	})

	return map[string]scenario{
		"sum-equals-seven": {
			name:  "sum-equals-seven",
			doc:   "x + y == 7 and x <= 3, over uint8 x and y",
			vars:  []expr.Node{x, y},
			query: sumEquals7,
		},
		"equals-42": {
			name:  "equals-42",
			doc:   "z == 42, over uint8 z",
			vars:  []expr.Node{z},
			query: isFortyTwo,
		},
		"increment": {
			name:    "increment",
			doc:     "the successor function over uint8, x -> x + 1",
			target:  increment,
			sameTyp: u8,
		},
	}
}

func lookupScenario(name string) (scenario, error) {
	all := buildScenarios()
	s, ok := all[name]
	if !ok {
		return scenario{}, fmt.Errorf("unknown scenario %q (known: %s)", name, knownScenarioNames())
	}
	return s, nil
}

func knownScenarioNames() string {
	all := buildScenarios()
	names := make([]string, 0, len(all))
	for n := range all {
		names = append(names, n)
	}
	return fmt.Sprint(names)
}
