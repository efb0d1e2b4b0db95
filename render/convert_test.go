package render

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	v, err := DecodeData([]byte(raw))
	if err != nil {
		t.Fatalf("DecodeData(%s): %v", raw, err)
	}
	return v
}

func TestConvertScalars(t *testing.T) {
	cases := []struct {
		name  string
		input any
		want  Value
	}{
		{"null", nil, None()},
		{"true", true, Bool(true)},
		{"false", false, Bool(false)},
		{"string", "x", String("x")},
		{"empty string", "", String("")},
		{"json int", json.Number("42"), Int(42)},
		{"json negative int", json.Number("-7"), Int(-7)},
		{"json float", json.Number("2.5"), Float(2.5)},
		{"json float with zero fraction", json.Number("1.0"), Float(1)},
		{"json exponent", json.Number("1e2"), Float(100)},
		{"json overflowing exponent", json.Number("1e400"), None()},
		{"json garbage number", json.Number("abc"), None()},
		{"json uint beyond int64", json.Number("18446744073709551615"), Float(18446744073709551615)},
		{"go int", 3, Int(3)},
		{"go int64", int64(-3), Int(-3)},
		{"go uint8", uint8(200), Int(200)},
		{"go uint64 beyond int64", uint64(math.MaxUint64), Float(float64(uint64(math.MaxUint64)))},
		{"integral float", 3.0, Int(3)},
		{"fractional float", 0.25, Float(0.25)},
		{"float beyond safe integer", 1e300, Float(1e300)},
		{"nan", math.NaN(), None()},
		{"inf", math.Inf(1), None()},
		{"unsupported type", struct{}{}, None()},
		{"nil pointer", (*int)(nil), None()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Convert(tc.input)
			if !got.Equal(tc.want) {
				t.Fatalf("Convert(%v) = %s (%s), want %s (%s)", tc.input, got, got.Kind(), tc.want, tc.want.Kind())
			}
		})
	}
}

func TestConvertNarrowsIntegersByTruncation(t *testing.T) {
	cases := []struct {
		input int64
		want  int32
	}{
		{math.MaxInt32, math.MaxInt32},
		{math.MinInt32, math.MinInt32},
		{math.MaxInt32 + 1, math.MinInt32},
		{math.MinInt32 - 1, math.MaxInt32},
		{1 << 32, 0},
		{1<<32 + 5, 5},
		{-(1 << 32) - 1, -1},
		{math.MaxInt64, -1},
		{math.MinInt64, 0},
		{0x1_2345_6789, 0x2345_6789},
	}

	for _, tc := range cases {
		if got := NarrowInt(tc.input); got != tc.want {
			t.Fatalf("NarrowInt(%d) = %d, want %d", tc.input, got, tc.want)
		}
		number := json.Number(formatInt(tc.input))
		got, ok := Convert(number).AsInt()
		if !ok || got != tc.want {
			t.Fatalf("Convert(%s) = %d (int=%v), want %d", number, got, ok, tc.want)
		}
	}
}

func formatInt(i int64) string {
	b, _ := json.Marshal(i)
	return string(b)
}

func TestConvertEmptyContainers(t *testing.T) {
	if got := Convert(decode(t, `[]`)); got.Kind() != ValueArray || got.Len() != 0 {
		t.Fatalf("expected empty array, got %s", got)
	}
	if got := Convert(decode(t, `{}`)); got.Kind() != ValueDict || got.Len() != 0 {
		t.Fatalf("expected empty dictionary, got %s", got)
	}
	if got := Convert(decode(t, `null`)); !got.IsNone() {
		t.Fatalf("expected none, got %s", got)
	}
}

func TestConvertRoundTripScenario(t *testing.T) {
	got := Convert(decode(t, `{"a": 1, "b": [true, null, "x"], "c": 2.5}`))

	dict, ok := got.AsDict()
	if !ok {
		t.Fatalf("expected dictionary, got %s", got.Kind())
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, dict.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}

	want := DictValue(Dict{
		"a": Int(1),
		"b": Array(Bool(true), None(), String("x")),
		"c": Float(2.5),
	})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
}

func TestConvertPreservesShape(t *testing.T) {
	raw := `{"items": [{"n": 1}, {"n": 2.5}, [], {}], "nested": {"deep": {"deeper": [null, false]}}, "s": "v"}`
	input := decode(t, raw)
	got := Convert(input)

	var check func(path string, src any, v Value)
	check = func(path string, src any, v Value) {
		switch s := src.(type) {
		case nil:
			if !v.IsNone() {
				t.Fatalf("%s: expected none, got %s", path, v.Kind())
			}
		case bool:
			if v.Kind() != ValueBool {
				t.Fatalf("%s: expected bool, got %s", path, v.Kind())
			}
		case string:
			if v.Kind() != ValueString {
				t.Fatalf("%s: expected string, got %s", path, v.Kind())
			}
		case json.Number:
			if v.Kind() != ValueInt && v.Kind() != ValueFloat {
				t.Fatalf("%s: expected number, got %s", path, v.Kind())
			}
		case []any:
			items, ok := v.AsArray()
			if !ok || len(items) != len(s) {
				t.Fatalf("%s: expected array of %d, got %s", path, len(s), v)
			}
			for i := range s {
				check(path+"[]", s[i], items[i])
			}
		case map[string]any:
			dict, ok := v.AsDict()
			if !ok || len(dict) != len(s) {
				t.Fatalf("%s: expected dictionary of %d, got %s", path, len(s), v)
			}
			for key, item := range s {
				converted, ok := dict[key]
				if !ok {
					t.Fatalf("%s: missing key %q", path, key)
				}
				check(path+"."+key, item, converted)
			}
		}
	}
	check("$", input, got)
}

func TestConvertTypedGoCollections(t *testing.T) {
	got := Convert(map[string]any{
		"tags":   []string{"a", "b"},
		"counts": map[string]int{"x": 1},
		"ptr":    ptr(7),
	})
	want := DictValue(Dict{
		"tags":   Array(String("a"), String("b")),
		"counts": DictValue(Dict{"x": Int(1)}),
		"ptr":    Int(7),
	})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
	if got := Convert(map[int]string{1: "x"}); !got.IsNone() {
		t.Fatalf("expected none for non-string keys, got %s", got)
	}
}

func ptr[T any](v T) *T { return &v }

func TestConverterWarnsOnLossyNumbers(t *testing.T) {
	logger := &recordingLogger{}
	c := Converter{Logger: logger}

	c.Convert(json.Number("4294967296"))
	c.Convert(json.Number("1e400"))
	c.Convert(json.Number("12"))

	if len(logger.warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %d: %v", len(logger.warnings), logger.warnings)
	}
}
