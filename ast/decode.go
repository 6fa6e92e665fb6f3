package ast

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// Program is the root document: { "name": ..., "expression": <node> }.
type Program struct {
	Name       string `json:"name"`
	Expression *Term  `json:"expression"`
}

// text is the wire shape of an identifier carrying its own location, used
// for Let binders and Function parameters.
type text struct {
	Text     string   `json:"text"`
	Location Location `json:"location"`
}

// wire is the raw, kind-tagged shape every node decodes through before being
// normalized into a Term. Every field is optional; which ones are populated
// depends on Kind.
type wire struct {
	Kind     string          `json:"kind"`
	Location Location        `json:"location"`
	Value    json.RawMessage `json:"value"`

	Text string `json:"text"`

	Name       *text           `json:"name"`
	Next       json.RawMessage `json:"next"`
	Parameters []text          `json:"parameters"`

	Callee    json.RawMessage   `json:"callee"`
	Arguments []json.RawMessage `json:"arguments"`

	Condition json.RawMessage `json:"condition"`
	Then      json.RawMessage `json:"then"`
	Otherwise json.RawMessage `json:"otherwise"`

	Lhs json.RawMessage `json:"lhs"`
	Op  string          `json:"op"`
	Rhs json.RawMessage `json:"rhs"`

	First  json.RawMessage `json:"first"`
	Second json.RawMessage `json:"second"`
}

// UnmarshalJSON decodes a single AST node according to its "kind"
// discriminator, per spec §6's JSON schema.
func (t *Term) UnmarshalJSON(data []byte) error {
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	t.Loc = w.Location

	switch w.Kind {
	case "Int":
		t.Kind = KindInt

		var n int32
		if len(w.Value) > 0 {
			if err := json.Unmarshal(w.Value, &n); err != nil {
				return fmt.Errorf("ast: decode Int value: %w", err)
			}
		}

		t.Int = n

	case "Str":
		t.Kind = KindStr

		var s string
		if len(w.Value) > 0 {
			if err := json.Unmarshal(w.Value, &s); err != nil {
				return fmt.Errorf("ast: decode Str value: %w", err)
			}
		}

		t.Str = s

	case "Bool":
		t.Kind = KindBool

		var b bool
		if len(w.Value) > 0 {
			if err := json.Unmarshal(w.Value, &b); err != nil {
				return fmt.Errorf("ast: decode Bool value: %w", err)
			}
		}

		t.Bool = b

	case "Var":
		t.Kind = KindVar
		t.Name = w.Text

	case "Let":
		t.Kind = KindLet

		if w.Name == nil {
			return fmt.Errorf("ast: Let node missing name")
		}

		t.Name = w.Name.Text

		value, err := decodeTerm(w.Value)
		if err != nil {
			return fmt.Errorf("ast: decode Let value: %w", err)
		}

		t.Value = value

		body, err := decodeTerm(w.Next)
		if err != nil {
			return fmt.Errorf("ast: decode Let next: %w", err)
		}

		t.Body = body

	case "Function":
		t.Kind = KindFunction

		params := make([]string, len(w.Parameters))
		for i, p := range w.Parameters {
			params[i] = p.Text
		}

		t.Params = params

		body, err := decodeTerm(w.Value)
		if err != nil {
			return fmt.Errorf("ast: decode Function value: %w", err)
		}

		t.Body = body

	case "Call":
		t.Kind = KindCall

		callee, err := decodeTerm(w.Callee)
		if err != nil {
			return fmt.Errorf("ast: decode Call callee: %w", err)
		}

		t.Callee = callee

		args := make([]*Term, len(w.Arguments))

		for i, raw := range w.Arguments {
			arg, err := decodeTerm(raw)
			if err != nil {
				return fmt.Errorf("ast: decode Call argument %d: %w", i, err)
			}

			args[i] = arg
		}

		t.Arguments = args

	case "If":
		t.Kind = KindIf

		cond, err := decodeTerm(w.Condition)
		if err != nil {
			return fmt.Errorf("ast: decode If condition: %w", err)
		}

		t.Condition = cond

		then, err := decodeTerm(w.Then)
		if err != nil {
			return fmt.Errorf("ast: decode If then: %w", err)
		}

		t.Then = then

		otherwise, err := decodeTerm(w.Otherwise)
		if err != nil {
			return fmt.Errorf("ast: decode If otherwise: %w", err)
		}

		t.Otherwise = otherwise

	case "Binary":
		t.Kind = KindBinary

		left, err := decodeTerm(w.Lhs)
		if err != nil {
			return fmt.Errorf("ast: decode Binary lhs: %w", err)
		}

		t.Left = left

		op, err := decodeOp(w.Op)
		if err != nil {
			return err
		}

		t.Op = op

		right, err := decodeTerm(w.Rhs)
		if err != nil {
			return fmt.Errorf("ast: decode Binary rhs: %w", err)
		}

		t.Right = right

	case "Tuple":
		t.Kind = KindTuple

		first, err := decodeTerm(w.First)
		if err != nil {
			return fmt.Errorf("ast: decode Tuple first: %w", err)
		}

		t.First = first

		second, err := decodeTerm(w.Second)
		if err != nil {
			return fmt.Errorf("ast: decode Tuple second: %w", err)
		}

		t.Second = second

	case "First":
		t.Kind = KindFirst

		inner, err := decodeTerm(w.Value)
		if err != nil {
			return fmt.Errorf("ast: decode First value: %w", err)
		}

		t.Inner = inner

	case "Second":
		t.Kind = KindSecond

		inner, err := decodeTerm(w.Value)
		if err != nil {
			return fmt.Errorf("ast: decode Second value: %w", err)
		}

		t.Inner = inner

	case "Print":
		t.Kind = KindPrint

		inner, err := decodeTerm(w.Value)
		if err != nil {
			return fmt.Errorf("ast: decode Print value: %w", err)
		}

		t.Inner = inner

	default:
		return fmt.Errorf("ast: unknown node kind %q", w.Kind)
	}

	return nil
}

// decodeTerm decodes an optional raw node, returning (nil, nil) for an
// empty/absent payload.
func decodeTerm(raw json.RawMessage) (*Term, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var t Term
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, err
	}

	return &t, nil
}

func decodeOp(s string) (Op, error) {
	switch s {
	case "Eq":
		return OpEq, nil
	case "Neq":
		return OpNeq, nil
	case "Lt":
		return OpLt, nil
	case "Lte":
		return OpLte, nil
	case "Gt":
		return OpGt, nil
	case "Gte":
		return OpGte, nil
	case "And":
		return OpAnd, nil
	case "Or":
		return OpOr, nil
	case "Add":
		return OpAdd, nil
	case "Sub":
		return OpSub, nil
	case "Mul":
		return OpMul, nil
	case "Div":
		return OpDiv, nil
	case "Rem":
		return OpRem, nil
	default:
		return 0, fmt.Errorf("ast: unknown operator tag %q", s)
	}
}
