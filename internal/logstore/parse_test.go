package logstore

import (
	"reflect"
	"testing"
)

func TestTryParse(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		parsed bool
		want   any
	}{
		{"object", `{"a":1}`, true, map[string]any{"a": float64(1)}},
		{"array", `[1,2]`, true, []any{float64(1), float64(2)}},
		{"string", `"hello"`, true, "hello"},
		{"number", `42`, true, float64(42)},
		{"invalid", `{broken`, false, `{broken`},
		{"plain text", `not json at all`, false, `not json at all`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := TryParse(tt.input)
			if v.Parsed() != tt.parsed {
				t.Fatalf("Parsed() = %v, want %v", v.Parsed(), tt.parsed)
			}
			if !reflect.DeepEqual(v.Any(), tt.want) {
				t.Errorf("Any() = %#v, want %#v", v.Any(), tt.want)
			}
		})
	}
}

func TestValueAccessors(t *testing.T) {
	if arr, ok := TryParse(`[1]`).Array(); !ok || len(arr) != 1 {
		t.Errorf("Array() = %v, %v", arr, ok)
	}
	if _, ok := TryParse(`{"a":1}`).Array(); ok {
		t.Error("Array() on object should fail")
	}
	if obj, ok := TryParse(`{"a":1}`).Object(); !ok || obj["a"] != float64(1) {
		t.Errorf("Object() = %v, %v", obj, ok)
	}
	if _, ok := TryParse(`not json`).Object(); ok {
		t.Error("Object() on raw input should fail")
	}
	if s := TryParse(`"quoted"`).String(); s != "quoted" {
		t.Errorf("String() = %q", s)
	}
	if s := TryParse(`raw text`).String(); s != "raw text" {
		t.Errorf("String() on raw input = %q", s)
	}
}
