package lang

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ardnew/rinha/ast"
	"github.com/ardnew/rinha/log"
)

// evalContext carries the per-run collaborators an evaluation needs beyond
// the term/environment pair: where Print writes to, and the optional
// memoization cache. Grouping them here keeps Eval's signature stable as
// the module map grows.
type evalContext struct {
	out   io.Writer
	cache *Cache
}

// Eval evaluates term in env and returns its value, or a RuntimeError
// tagged with the location the failure occurred at. out receives every
// Print's output; cache may be nil to disable memoization.
func Eval(
	ctx context.Context,
	term *ast.Term,
	env *Env,
	out io.Writer,
	cache *Cache,
) (Value, *RuntimeError) {
	ec := &evalContext{out: out, cache: cache}

	return ec.eval(ctx, term, env)
}

func (ec *evalContext) eval(
	ctx context.Context, term *ast.Term, env *Env,
) (Value, *RuntimeError) {
	if term == nil {
		return Value{}, NewRuntimeError(
			KindInvalidExpression, "missing expression", ast.Location{},
		)
	}

	log.TraceContext(ctx, "eval", slog.String("kind", term.Kind.String()))

	switch term.Kind {
	case ast.KindInt:
		return IntValue(term.Int), nil
	case ast.KindStr:
		return StrValue(term.Str), nil
	case ast.KindBool:
		return BoolValue(term.Bool), nil
	case ast.KindVar:
		return ec.evalVar(term, env)
	case ast.KindLet:
		return ec.evalLet(ctx, term, env)
	case ast.KindFunction:
		return ClosureValue(&Closure{
			Params: term.Params,
			Body:   term.Body,
			Env:    env,
		}), nil
	case ast.KindCall:
		return ec.evalCall(ctx, term, env)
	case ast.KindIf:
		return ec.evalIf(ctx, term, env)
	case ast.KindBinary:
		return ec.evalBinary(ctx, term, env)
	case ast.KindTuple:
		return ec.evalTuple(ctx, term, env)
	case ast.KindFirst:
		return ec.evalProjection(ctx, term, env, 0)
	case ast.KindSecond:
		return ec.evalProjection(ctx, term, env, 1)
	case ast.KindPrint:
		return ec.evalPrint(ctx, term, env)
	default:
		return Value{}, NewRuntimeError(
			KindInvalidExpression, "unrecognized node", term.Loc,
		)
	}
}

func (ec *evalContext) evalVar(term *ast.Term, env *Env) (Value, *RuntimeError) {
	v, ok := env.Lookup(term.Name)
	if !ok {
		return Value{}, NewRuntimeError(
			KindUnboundVariable, term.Name, term.Loc,
		)
	}

	return v, nil
}

// evalLet binds term.Name to term.Value's result in a scope visible to
// term.Body (the continuation). term.Value is evaluated in env itself, so a
// binder that shadows an outer name of the same kind still sees the outer
// binding rather than its own as-yet-unset cell. When the result is a
// closure, term.Name is injected into the closure's own captured
// environment afterward, which is how a recursive Let reaches itself
// without a dedicated self-reference field on Closure.
func (ec *evalContext) evalLet(
	ctx context.Context, term *ast.Term, env *Env,
) (Value, *RuntimeError) {
	val, rerr := ec.eval(ctx, term.Value, env)
	if rerr != nil {
		return Value{}, rerr
	}

	if val.Kind == ValClosure {
		val.Closure.Name = term.Name
		val.Closure.Env = val.Closure.Env.With(term.Name, val)
	}

	return ec.eval(ctx, term.Body, env.With(term.Name, val))
}

func (ec *evalContext) evalCall(
	ctx context.Context, term *ast.Term, env *Env,
) (Value, *RuntimeError) {
	callee, rerr := ec.eval(ctx, term.Callee, env)
	if rerr != nil {
		return Value{}, rerr
	}

	if callee.Kind != ValClosure {
		return Value{}, NewRuntimeError(
			KindInvalidFunctionCall,
			"cannot call a "+callee.Kind.TypeName(),
			term.Loc,
		)
	}

	closure := callee.Closure

	if len(term.Arguments) != len(closure.Params) {
		return Value{}, NewRuntimeError(
			KindInvalidArguments,
			fmt.Sprintf(
				"expected %d argument(s), got %d",
				len(closure.Params), len(term.Arguments),
			),
			term.Loc,
		)
	}

	args := make([]Value, len(term.Arguments))

	for i, a := range term.Arguments {
		v, rerr := ec.eval(ctx, a, env)
		if rerr != nil {
			return Value{}, rerr
		}

		args[i] = v
	}

	if ec.cache != nil && closure.Body != nil {
		if v, ok := ec.cache.Get(closure.Body, args); ok {
			log.TraceContext(ctx, "eval", slog.String("cache", "hit"))

			return v, nil
		}
	}

	callEnv := closure.Env
	for i, p := range closure.Params {
		callEnv = callEnv.With(p, args[i])
	}

	result, rerr := ec.eval(ctx, closure.Body, callEnv)
	if rerr != nil {
		return Value{}, rerr
	}

	if ec.cache != nil && closure.Body != nil {
		ec.cache.Put(closure.Body, args, result)
	}

	return result, nil
}

func (ec *evalContext) evalIf(
	ctx context.Context, term *ast.Term, env *Env,
) (Value, *RuntimeError) {
	cond, rerr := ec.eval(ctx, term.Condition, env)
	if rerr != nil {
		return Value{}, rerr
	}

	if cond.Kind != ValBool {
		return Value{}, NewRuntimeError(
			KindInvalidIfCondition,
			"condition is a "+cond.Kind.TypeName()+", not boolean",
			term.Loc,
		)
	}

	if cond.Bool {
		return ec.eval(ctx, term.Then, env)
	}

	return ec.eval(ctx, term.Otherwise, env)
}

// evalBinary evaluates both operands before dispatching to Apply. Neither
// And nor Or short-circuits: both sides are always evaluated, left before
// right, even when the left side alone determines the result.
func (ec *evalContext) evalBinary(
	ctx context.Context, term *ast.Term, env *Env,
) (Value, *RuntimeError) {
	left, rerr := ec.eval(ctx, term.Left, env)
	if rerr != nil {
		return Value{}, rerr
	}

	right, rerr := ec.eval(ctx, term.Right, env)
	if rerr != nil {
		return Value{}, rerr
	}

	return Apply(term.Op, left, right, term.Loc)
}

func (ec *evalContext) evalTuple(
	ctx context.Context, term *ast.Term, env *Env,
) (Value, *RuntimeError) {
	first, rerr := ec.eval(ctx, term.First, env)
	if rerr != nil {
		return Value{}, rerr
	}

	second, rerr := ec.eval(ctx, term.Second, env)
	if rerr != nil {
		return Value{}, rerr
	}

	return TupleValue(first, second), nil
}

// evalProjection implements both First (index 0) and Second (index 1)
// through one helper: the two surface operations are a single structural
// rule parameterized by which half of the pair they read.
func (ec *evalContext) evalProjection(
	ctx context.Context, term *ast.Term, env *Env, index int,
) (Value, *RuntimeError) {
	v, rerr := ec.eval(ctx, term.Inner, env)
	if rerr != nil {
		return Value{}, rerr
	}

	if v.Kind != ValTuple {
		name := "first"
		if index == 1 {
			name = "second"
		}

		return Value{}, NewRuntimeError(
			KindInvalidExpression,
			name+" applied to a "+v.Kind.TypeName(),
			term.Loc,
		)
	}

	if index == 0 {
		return *v.First, nil
	}

	return *v.Second, nil
}

func (ec *evalContext) evalPrint(
	ctx context.Context, term *ast.Term, env *Env,
) (Value, *RuntimeError) {
	v, rerr := ec.eval(ctx, term.Inner, env)
	if rerr != nil {
		return Value{}, rerr
	}

	fmt.Fprintln(ec.out, v.Display())

	return v, nil
}
