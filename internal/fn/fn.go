// Package fn represents a Zen function T1 -> T2 as a single Argument
// node plus a body expression, the same closure-over-placeholder shape
// list.Case uses for its cons branch (spec.md §4.8/§4.9): there is no
// dedicated "function" expr.Node kind, a function is just an
// expression with one free Argument standing for its parameter.
package fn

import (
	"github.com/cwbudde/zen/internal/expr"
	"github.com/cwbudde/zen/internal/interp"
	"github.com/cwbudde/zen/internal/symbolic"
	"github.com/cwbudde/zen/internal/typedesc"
)

// argID is the stable name every Func's parameter Argument node is
// built with. Functions never nest (§4.9 has no notion of a function
// taking a function), so one fixed name is enough; it never leaks
// past Interpret/Compile's own environment.
const argID = "arg"

// Func is a single-parameter Zen function: Body, evaluated with Arg
// bound to an input value, produces a value of ResultType.
type Func struct {
	ArgType    *typedesc.T
	ResultType *typedesc.T
	Arg        expr.Node
	Body       expr.Node
}

// New builds a Func by handing build a fresh Argument node of argType
// and recording whatever body it returns.
func New(argType *typedesc.T, build func(arg expr.Node) expr.Node) *Func {
	arg := expr.NewArgument(argID, argType)
	body := build(arg)
	return &Func{ArgType: argType, ResultType: body.Type(), Arg: arg, Body: body}
}

// Interpret runs f concretely against one input value (spec.md §4.8's
// findAndInterpret and §4.9's interpret(f, args)).
func Interpret(f *Func, input interp.Value) (interp.Value, error) {
	env := interp.NewEnv(map[string]interp.Value{argID: input})
	return interp.Interpret(f.Body, env)
}

// EvaluateSymbolic translates f.Body against sess with f's parameter
// bound to arg, internal/stateset's way of turning a Func into the
// relation a StateSetTransformer is built from: arg is typically a
// fresh arbitrary of f.ArgType allocated against the same sess, so the
// returned value and arg together carry the transformer's full input
// and output variable sets (spec.md §4.7).
func EvaluateSymbolic(f *Func, sess *symbolic.Session, arg symbolic.SymValue) (symbolic.SymValue, error) {
	return sess.EvaluateWithArgs(f.Body, map[string]symbolic.SymValue{argID: arg})
}

// Closure is a compiled function: a Go value closing over f.Body and
// f's argument id, produced once by Compile and callable against many
// concrete inputs. Compile's only contract (spec.md §4.9) is semantic
// equivalence with Interpret — it is an optional, performance-only
// path a caller takes when it is about to call the same Func many
// times (a brute-force cross-check of a solver result against a range
// of concrete inputs, say) and wants to skip re-deriving f.Body and
// re-validating argID on every call.
type Closure func(input interp.Value) (interp.Value, error)

// Compile closes over f.Body once and returns a Closure that runs it
// through Interpret for each input. It does not bypass interp's own
// per-node dispatch or memoization — List.Case and Arbitrary binding
// still need a live interp.Env per call, the same as Interpret(f, -)
// — it only avoids rebuilding f and re-deriving argID on every call a
// caller makes against the same function.
func Compile(f *Func) Closure {
	body := f.Body
	return func(input interp.Value) (interp.Value, error) {
		env := interp.NewEnv(map[string]interp.Value{argID: input})
		return interp.Interpret(body, env)
	}
}
