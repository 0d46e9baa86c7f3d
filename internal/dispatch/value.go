package dispatch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// Kind tags the dynamic type of an argument value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	default:
		return "object"
	}
}

// Value is a tagged argument value.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
}

// String wraps a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number wraps a numeric value.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// Bool wraps a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Null is the JSON null value.
func Null() Value { return Value{kind: KindNull} }

// Kind reports the value's tag.
func (v Value) Kind() Kind { return v.kind }

// Str returns the string payload and whether the value is a string.
func (v Value) Str() (string, bool) { return v.str, v.kind == KindString }

// Int returns the value as an integer when it is an integral number.
func (v Value) Int() (int64, bool) {
	if v.kind != KindNumber || v.num != math.Trunc(v.num) || math.IsInf(v.num, 0) {
		return 0, false
	}
	if v.num >= 1<<63 || v.num < -(1<<63) {
		return 0, false
	}
	return int64(v.num), true
}

// Args is the per-request argument bag.
type Args map[string]Value

// ValueOf converts a decoded JSON value into a tagged value.
func ValueOf(raw any) Value {
	switch x := raw.(type) {
	case nil:
		return Null()
	case string:
		return String(x)
	case float64:
		return Number(x)
	case float32:
		return Number(float64(x))
	case int:
		return Number(float64(x))
	case int32:
		return Number(float64(x))
	case int64:
		return Number(float64(x))
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return Value{kind: KindOther}
		}
		return Number(f)
	case bool:
		return Bool(x)
	default:
		return Value{kind: KindOther}
	}
}

// ArgsFromMap tags every entry of a decoded argument object.
func ArgsFromMap(m map[string]any) Args {
	args := make(Args, len(m))
	for k, v := range m {
		args[k] = ValueOf(v)
	}
	return args
}

// ParseArgs decodes a JSON argument object. Empty input and JSON null yield an empty bag.
func ParseArgs(data []byte) (Args, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return Args{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("arguments must be a JSON object: %w", err)
	}
	return ArgsFromMap(m), nil
}
