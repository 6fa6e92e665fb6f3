package lang

import (
	"strconv"
	"strings"

	"github.com/ardnew/rinha/ast"
)

// ValueKind discriminates the runtime representation of an evaluated term.
type ValueKind int

const (
	ValInt ValueKind = iota
	ValStr
	ValBool
	ValTuple
	ValClosure
)

// TypeName renders the value kind using the language's own vocabulary
// ("int", "string", ...), the form error details are built from rather
// than the Go type name.
func (k ValueKind) TypeName() string {
	switch k {
	case ValInt:
		return "int"
	case ValStr:
		return "string"
	case ValBool:
		return "boolean"
	case ValTuple:
		return "tuple"
	case ValClosure:
		return "closure"
	default:
		return "unknown"
	}
}

// Closure is a function value: its formal parameters, its body, and a
// snapshot of the environment in effect where it was created. Recursive
// functions reach themselves through the environment: evalLet injects a
// closure's own name into its captured Env after the closure is built,
// rather than through a dedicated self-reference field on Closure.
type Closure struct {
	Name   string
	Params []string
	Body   *ast.Term
	Env    *Env
}

// Value is the tagged sum type every evaluation produces. Exactly the
// field(s) relevant to Kind are populated; the rest are zero, mirroring
// the reference project's own tagged-union Value type.
type Value struct {
	Kind ValueKind

	Int  int32
	Str  string
	Bool bool

	First  *Value
	Second *Value

	Closure *Closure
}

func IntValue(n int32) Value   { return Value{Kind: ValInt, Int: n} }
func StrValue(s string) Value  { return Value{Kind: ValStr, Str: s} }
func BoolValue(b bool) Value   { return Value{Kind: ValBool, Bool: b} }

func TupleValue(first, second Value) Value {
	return Value{Kind: ValTuple, First: &first, Second: &second}
}

func ClosureValue(c *Closure) Value {
	return Value{Kind: ValClosure, Closure: c}
}

// Display renders a value the way Print writes it to the output stream.
func (v Value) Display() string {
	switch v.Kind {
	case ValInt:
		return strconv.FormatInt(int64(v.Int), 10)
	case ValStr:
		return v.Str
	case ValBool:
		return strconv.FormatBool(v.Bool)
	case ValTuple:
		var b strings.Builder

		b.WriteByte('(')
		b.WriteString(v.First.Display())
		b.WriteString(", ")
		b.WriteString(v.Second.Display())
		b.WriteByte(')')

		return b.String()
	case ValClosure:
		return "[closure]"
	default:
		return "<#unknown>"
	}
}

// Equal reports structural equality between two values for the Eq/Neq
// operators. Closures never compare equal, including to themselves; the
// operator engine rejects closure operands before Equal is ever called,
// so this branch only guards against future callers.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}

	switch v.Kind {
	case ValInt:
		return v.Int == other.Int
	case ValStr:
		return v.Str == other.Str
	case ValBool:
		return v.Bool == other.Bool
	case ValTuple:
		return v.First.Equal(*other.First) && v.Second.Equal(*other.Second)
	case ValClosure:
		return false
	default:
		return false
	}
}
