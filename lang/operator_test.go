package lang

import (
	"testing"

	"github.com/ardnew/rinha/ast"
)

func TestApply_Add(t *testing.T) {
	tests := []struct {
		name        string
		left, right Value
		want        Value
		wantErr     bool
	}{
		{"int + int", IntValue(2), IntValue(3), IntValue(5), false},
		{"string + string", StrValue("a"), StrValue("b"), StrValue("ab"), false},
		{"string + int", StrValue("n="), IntValue(1), StrValue("n=1"), false},
		{"int + string", IntValue(1), StrValue("!"), StrValue("1!"), false},
		{"bool + int", BoolValue(true), IntValue(1), Value{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(ast.OpAdd, tt.left, tt.right, ast.Location{})
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got none")
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("expected %v, got %v", tt.want.Display(), got.Display())
			}
		})
	}
}

func TestApply_Arithmetic(t *testing.T) {
	tests := []struct {
		op   ast.Op
		a, b int32
		want int32
	}{
		{ast.OpSub, 5, 3, 2},
		{ast.OpMul, 4, 3, 12},
		{ast.OpDiv, 10, 3, 3},
		{ast.OpRem, 10, 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			got, err := Apply(tt.op, IntValue(tt.a), IntValue(tt.b), ast.Location{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Int != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got.Int)
			}
		})
	}
}

func TestApply_DivisionByZero(t *testing.T) {
	for _, op := range []ast.Op{ast.OpDiv, ast.OpRem} {
		t.Run(op.String(), func(t *testing.T) {
			_, err := Apply(op, IntValue(1), IntValue(0), ast.Location{})
			if err == nil {
				t.Fatal("expected division-by-zero error")
			}
			if err.Message != KindDivisionByZero {
				t.Errorf("expected kind %q, got %q", KindDivisionByZero, err.Message)
			}
		})
	}
}

func TestApply_Order(t *testing.T) {
	tests := []struct {
		op   ast.Op
		want bool
	}{
		{ast.OpLt, true},
		{ast.OpLte, true},
		{ast.OpGt, false},
		{ast.OpGte, false},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			got, err := Apply(tt.op, IntValue(1), IntValue(2), ast.Location{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Bool != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got.Bool)
			}
		})
	}
}

func TestApply_Equality(t *testing.T) {
	eq, err := Apply(ast.OpEq, IntValue(1), IntValue(1), ast.Location{})
	if err != nil || !eq.Bool {
		t.Fatalf("expected 1 == 1, got %v, err=%v", eq.Bool, err)
	}

	neq, err := Apply(ast.OpNeq, IntValue(1), IntValue(2), ast.Location{})
	if err != nil || !neq.Bool {
		t.Fatalf("expected 1 != 2, got %v, err=%v", neq.Bool, err)
	}
}

func TestApply_Equality_RejectsClosures(t *testing.T) {
	closure := ClosureValue(&Closure{Name: "f"})

	_, err := Apply(ast.OpEq, closure, closure, ast.Location{})
	if err == nil {
		t.Fatal("expected an error comparing closures")
	}
}

func TestApply_Logical(t *testing.T) {
	and, err := Apply(ast.OpAnd, BoolValue(true), BoolValue(false), ast.Location{})
	if err != nil || and.Bool {
		t.Fatalf("expected true && false == false, got %v, err=%v", and.Bool, err)
	}

	or, err := Apply(ast.OpOr, BoolValue(false), BoolValue(true), ast.Location{})
	if err != nil || !or.Bool {
		t.Fatalf("expected false || true == true, got %v, err=%v", or.Bool, err)
	}
}

func TestApply_Logical_RejectsNonBool(t *testing.T) {
	_, err := Apply(ast.OpAnd, IntValue(1), BoolValue(true), ast.Location{})
	if err == nil {
		t.Fatal("expected an error for a non-boolean operand")
	}
}

func TestApply_UnknownOperator(t *testing.T) {
	_, err := Apply(ast.Op(999), IntValue(1), IntValue(1), ast.Location{})
	if err == nil {
		t.Fatal("expected an error for an unrecognized operator")
	}
}
