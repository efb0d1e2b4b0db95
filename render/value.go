package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ValueKind identifies the variant held by a Value.
type ValueKind uint8

const (
	ValueNone ValueKind = iota
	ValueBool
	ValueInt
	ValueFloat
	ValueString
	ValueArray
	ValueDict
)

func (k ValueKind) String() string {
	switch k {
	case ValueNone:
		return "none"
	case ValueBool:
		return "bool"
	case ValueInt:
		return "int"
	case ValueFloat:
		return "float"
	case ValueString:
		return "string"
	case ValueArray:
		return "array"
	case ValueDict:
		return "dictionary"
	default:
		return "unknown"
	}
}

// Dict is the engine input dictionary. Key order is not significant.
type Dict map[string]Value

// Value is an engine input value. The zero Value is None.
type Value struct {
	kind ValueKind
	b    bool
	i    int32
	f    float64
	s    string
	arr  []Value
	dict Dict
}

// Constructors, one per kind.
func None() Value           { return Value{} }
func Bool(b bool) Value     { return Value{kind: ValueBool, b: b} }
func Int(i int32) Value     { return Value{kind: ValueInt, i: i} }
func Float(f float64) Value { return Value{kind: ValueFloat, f: f} }
func String(s string) Value { return Value{kind: ValueString, s: s} }
func Array(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: ValueArray, arr: items}
}

// DictValue wraps a dictionary. A nil dictionary becomes an empty one.
func DictValue(d Dict) Value {
	if d == nil {
		d = Dict{}
	}
	return Value{kind: ValueDict, dict: d}
}

func (v Value) Kind() ValueKind { return v.kind }
func (v Value) IsNone() bool    { return v.kind == ValueNone }

func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == ValueBool
}

func (v Value) AsInt() (int32, bool) {
	return v.i, v.kind == ValueInt
}

func (v Value) AsFloat() (float64, bool) {
	return v.f, v.kind == ValueFloat
}

func (v Value) AsString() (string, bool) {
	return v.s, v.kind == ValueString
}

func (v Value) AsArray() ([]Value, bool) {
	return v.arr, v.kind == ValueArray
}

// AsDict returns the dictionary payload when v is a dictionary.
func (v Value) AsDict() (Dict, bool) {
	return v.dict, v.kind == ValueDict
}

// Len reports the element count of arrays and dictionaries.
func (v Value) Len() int {
	switch v.kind {
	case ValueArray:
		return len(v.arr)
	case ValueDict:
		return len(v.dict)
	default:
		return 0
	}
}

// Native returns v as plain Go values for template engines: nil, bool,
// int32, float64, string, []any and map[string]any.
func (v Value) Native() any {
	switch v.kind {
	case ValueBool:
		return v.b
	case ValueInt:
		return v.i
	case ValueFloat:
		return v.f
	case ValueString:
		return v.s
	case ValueArray:
		out := make([]any, len(v.arr))
		for i, item := range v.arr {
			out[i] = item.Native()
		}
		return out
	case ValueDict:
		return v.dict.Native()
	default:
		return nil
	}
}

// Native returns the dictionary as a map of plain Go values.
func (d Dict) Native() map[string]any {
	out := make(map[string]any, len(d))
	for key, item := range d {
		out[key] = item.Native()
	}
	return out
}

// Keys returns the dictionary keys in sorted order.
func (d Dict) Keys() []string {
	keys := make([]string, 0, len(d))
	for key := range d {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Equal reports deep equality. Float comparison is exact.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case ValueNone:
		return true
	case ValueBool:
		return v.b == other.b
	case ValueInt:
		return v.i == other.i
	case ValueFloat:
		return v.f == other.f
	case ValueString:
		return v.s == other.s
	case ValueArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case ValueDict:
		if len(v.dict) != len(other.dict) {
			return false
		}
		for key, item := range v.dict {
			o, ok := other.dict[key]
			if !ok || !item.Equal(o) {
				return false
			}
		}
		return true
	}
	return false
}

func (v Value) String() string {
	var sb strings.Builder
	v.writeTo(&sb)
	return sb.String()
}

func (v Value) writeTo(sb *strings.Builder) {
	switch v.kind {
	case ValueNone:
		sb.WriteString("none")
	case ValueBool:
		sb.WriteString(strconv.FormatBool(v.b))
	case ValueInt:
		sb.WriteString(strconv.FormatInt(int64(v.i), 10))
	case ValueFloat:
		sb.WriteString(strconv.FormatFloat(v.f, 'g', -1, 64))
	case ValueString:
		sb.WriteString(strconv.Quote(v.s))
	case ValueArray:
		sb.WriteByte('(')
		for i, item := range v.arr {
			if i > 0 {
				sb.WriteString(", ")
			}
			item.writeTo(sb)
		}
		if len(v.arr) == 1 {
			sb.WriteByte(',')
		}
		sb.WriteByte(')')
	case ValueDict:
		if len(v.dict) == 0 {
			sb.WriteString("(:)")
			return
		}
		sb.WriteByte('(')
		for i, key := range v.dict.Keys() {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(sb, "%s: ", key)
			v.dict[key].writeTo(sb)
		}
		sb.WriteByte(')')
	}
}
