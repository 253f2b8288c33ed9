package logstore

import "encoding/json"

// Value is the result of a defensive JSON parse: either the decoded value or
// the raw input string when the input is not valid JSON. Extractors use it
// instead of repeating ad hoc unmarshal-and-ignore blocks.
type Value struct {
	parsed any
	raw    string
	ok     bool
}

// TryParse attempts to decode s as JSON. It never fails; a non-JSON input
// comes back as a raw value.
func TryParse(s string) Value {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return Value{raw: s}
	}
	return Value{parsed: v, ok: true}
}

// Parsed reports whether the input was valid JSON.
func (v Value) Parsed() bool { return v.ok }

// Any returns the decoded value, or the raw string when parsing failed.
func (v Value) Any() any {
	if v.ok {
		return v.parsed
	}
	return v.raw
}

// Array returns the decoded value as a JSON array.
func (v Value) Array() ([]any, bool) {
	arr, ok := v.parsed.([]any)
	return arr, v.ok && ok
}

// Object returns the decoded value as a JSON object.
func (v Value) Object() (map[string]any, bool) {
	obj, ok := v.parsed.(map[string]any)
	return obj, v.ok && ok
}

// String returns the decoded value if it is a JSON string, or the raw input.
func (v Value) String() string {
	if v.ok {
		if s, ok := v.parsed.(string); ok {
			return s
		}
		return ""
	}
	return v.raw
}
