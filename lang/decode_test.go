package lang

import (
	"context"
	"strings"
	"testing"
)

func TestDecode_ValidProgram(t *testing.T) {
	doc := `{
		"name": "sample",
		"expression": {"kind": "Int", "value": 7, "location": {"start":0,"end":1,"filename":"f"}}
	}`

	prog, err := Decode(context.Background(), strings.NewReader(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prog.Name != "sample" {
		t.Errorf("expected name %q, got %q", "sample", prog.Name)
	}
	if prog.Expression == nil || prog.Expression.Int != 7 {
		t.Fatalf("expected expression Int(7), got %+v", prog.Expression)
	}
}

func TestDecode_MalformedJSON(t *testing.T) {
	_, err := Decode(context.Background(), strings.NewReader(`{not json`))
	if err == nil {
		t.Fatal("expected a decode error for malformed JSON")
	}
}

func TestDecode_EmptyExpression(t *testing.T) {
	doc := `{"name": "empty"}`

	_, err := Decode(context.Background(), strings.NewReader(doc))
	if err == nil {
		t.Fatal("expected an error for a program with no expression")
	}
}
