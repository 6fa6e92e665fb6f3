package lang

import (
	"github.com/ardnew/rinha/ast"
)

// Apply dispatches a binary operator over two already-evaluated operands.
// The table is strict about type pairs: spec.md doesn't define implicit
// conversions, so every pairing not explicitly listed below fails with a
// kind-appropriate RuntimeError carrying loc.
func Apply(op ast.Op, left, right Value, loc ast.Location) (Value, *RuntimeError) {
	switch op {
	case ast.OpAdd:
		return applyAdd(left, right, loc)
	case ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpRem:
		return applyArithmetic(op, left, right, loc)
	case ast.OpLt, ast.OpLte, ast.OpGt, ast.OpGte:
		return applyOrder(op, left, right, loc)
	case ast.OpEq, ast.OpNeq:
		return applyEquality(op, left, right, loc)
	case ast.OpAnd, ast.OpOr:
		return applyLogical(op, left, right, loc)
	default:
		return Value{}, NewRuntimeError(
			KindInvalidBinaryOp, "unknown operator", loc,
		)
	}
}

// applyAdd handles "+", the one operator with more than one valid type
// pairing: int+int is arithmetic, and either operand being a string makes
// it concatenation (the other operand is rendered with Display).
func applyAdd(left, right Value, loc ast.Location) (Value, *RuntimeError) {
	if left.Kind == ValInt && right.Kind == ValInt {
		return IntValue(left.Int + right.Int), nil
	}

	if left.Kind == ValStr || right.Kind == ValStr {
		return StrValue(left.Display() + right.Display()), nil
	}

	return Value{}, NewRuntimeError(
		KindInvalidNumericOp,
		"cannot add "+left.Kind.TypeName()+" and "+right.Kind.TypeName(),
		loc,
	)
}

// applyArithmetic handles "-", "*", "/", "%": both operands must be int.
func applyArithmetic(
	op ast.Op, left, right Value, loc ast.Location,
) (Value, *RuntimeError) {
	if left.Kind != ValInt || right.Kind != ValInt {
		return Value{}, NewRuntimeError(
			KindInvalidNumericOp,
			"cannot apply "+op.String()+" to "+left.Kind.TypeName()+
				" and "+right.Kind.TypeName(),
			loc,
		)
	}

	switch op {
	case ast.OpSub:
		return IntValue(left.Int - right.Int), nil
	case ast.OpMul:
		return IntValue(left.Int * right.Int), nil
	case ast.OpDiv:
		if right.Int == 0 {
			return Value{}, NewRuntimeError(
				KindDivisionByZero, "division by zero", loc,
			)
		}

		return IntValue(left.Int / right.Int), nil
	case ast.OpRem:
		if right.Int == 0 {
			return Value{}, NewRuntimeError(
				KindDivisionByZero, "division by zero", loc,
			)
		}

		return IntValue(left.Int % right.Int), nil
	default:
		return Value{}, NewRuntimeError(KindInvalidNumericOp, "unreachable", loc)
	}
}

// applyOrder handles "<", "<=", ">", ">=": both operands must be int.
func applyOrder(
	op ast.Op, left, right Value, loc ast.Location,
) (Value, *RuntimeError) {
	if left.Kind != ValInt || right.Kind != ValInt {
		return Value{}, NewRuntimeError(
			KindInvalidComparison,
			"cannot compare "+left.Kind.TypeName()+" and "+right.Kind.TypeName(),
			loc,
		)
	}

	switch op {
	case ast.OpLt:
		return BoolValue(left.Int < right.Int), nil
	case ast.OpLte:
		return BoolValue(left.Int <= right.Int), nil
	case ast.OpGt:
		return BoolValue(left.Int > right.Int), nil
	case ast.OpGte:
		return BoolValue(left.Int >= right.Int), nil
	default:
		return Value{}, NewRuntimeError(KindInvalidComparison, "unreachable", loc)
	}
}

// applyEquality handles "==" and "!=". Closures are never comparable, in
// either position, and fail uniformly rather than with a closure-specific
// message.
func applyEquality(
	op ast.Op, left, right Value, loc ast.Location,
) (Value, *RuntimeError) {
	if left.Kind == ValClosure || right.Kind == ValClosure {
		return Value{}, NewRuntimeError(
			KindInvalidComparison, "closures cannot be compared", loc,
		)
	}

	eq := left.Equal(right)
	if op == ast.OpNeq {
		eq = !eq
	}

	return BoolValue(eq), nil
}

// applyLogical handles "&&" and "||": both operands must be boolean, and
// both are always evaluated by the caller before Apply runs — this
// function never short-circuits, it just combines two booleans.
func applyLogical(
	op ast.Op, left, right Value, loc ast.Location,
) (Value, *RuntimeError) {
	if left.Kind != ValBool || right.Kind != ValBool {
		return Value{}, NewRuntimeError(
			KindInvalidBinaryOp,
			"cannot apply "+op.String()+" to "+left.Kind.TypeName()+
				" and "+right.Kind.TypeName(),
			loc,
		)
	}

	switch op {
	case ast.OpAnd:
		return BoolValue(left.Bool && right.Bool), nil
	case ast.OpOr:
		return BoolValue(left.Bool || right.Bool), nil
	default:
		return Value{}, NewRuntimeError(KindInvalidBinaryOp, "unreachable", loc)
	}
}
