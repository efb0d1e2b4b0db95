package render

import (
	"encoding/json"
	"math"
	"reflect"
)

// MaxSafeInteger is the largest integer a JS host can hand over exactly as a
// float64. Integral floats within ±MaxSafeInteger follow the integer rule.
const MaxSafeInteger = 1<<53 - 1

// NarrowInt narrows a 64-bit integer to the engine's 32-bit integer by
// two's-complement truncation: the low 32 bits are kept, the rest dropped.
// Values outside the int32 range wrap; they are not rejected or widened.
func NarrowInt(i int64) int32 {
	return int32(i)
}

// Converter maps generic JSON values into engine input values.
// When Logger is set, lossy narrowing and number fallbacks are reported as
// warnings. Conversion never fails.
type Converter struct {
	Logger Logger
}

// Convert maps v using a Converter without a logger.
func Convert(v any) Value {
	return Converter{}.Convert(v)
}

// Convert maps v into a Value. Supported inputs are the shapes produced by
// encoding/json (with or without UseNumber) and plain Go scalars, slices and
// string-keyed maps. Anything else becomes None.
func (c Converter) Convert(v any) Value {
	switch val := v.(type) {
	case nil:
		return None()
	case bool:
		return Bool(val)
	case string:
		return String(val)
	case json.Number:
		return c.number(val)
	case float64:
		return c.float(val)
	case float32:
		return c.float(float64(val))
	case int:
		return c.integer(int64(val))
	case int8:
		return c.integer(int64(val))
	case int16:
		return c.integer(int64(val))
	case int32:
		return c.integer(int64(val))
	case int64:
		return c.integer(val)
	case uint:
		return c.unsigned(uint64(val))
	case uint8:
		return c.integer(int64(val))
	case uint16:
		return c.integer(int64(val))
	case uint32:
		return c.integer(int64(val))
	case uint64:
		return c.unsigned(val)
	case []any:
		items := make([]Value, len(val))
		for i, item := range val {
			items[i] = c.Convert(item)
		}
		return Array(items...)
	case map[string]any:
		dict := make(Dict, len(val))
		for key, item := range val {
			dict[key] = c.Convert(item)
		}
		return DictValue(dict)
	case Value:
		return val
	default:
		return c.reflected(v)
	}
}

func (c Converter) number(n json.Number) Value {
	if i, err := n.Int64(); err == nil {
		return c.integer(i)
	}
	f, err := n.Float64()
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		c.fallback(n.String())
		return None()
	}
	return Float(f)
}

func (c Converter) float(f float64) Value {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		c.fallback(f)
		return None()
	}
	if f == math.Trunc(f) && math.Abs(f) <= MaxSafeInteger {
		return c.integer(int64(f))
	}
	return Float(f)
}

func (c Converter) unsigned(u uint64) Value {
	if u <= math.MaxInt64 {
		return c.integer(int64(u))
	}
	return Float(float64(u))
}

func (c Converter) integer(i int64) Value {
	narrowed := NarrowInt(i)
	if int64(narrowed) != i && c.Logger != nil {
		c.Logger.Warnf("integer %d narrowed to %d", i, narrowed)
	}
	return Int(narrowed)
}

func (c Converter) fallback(n any) {
	if c.Logger != nil {
		c.Logger.Warnf("number %v is not representable, using none", n)
	}
}

// reflected handles typed slices and maps such as []string or
// map[string]int that callers build in Go.
func (c Converter) reflected(v any) Value {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return None()
		}
		items := make([]Value, rv.Len())
		for i := range items {
			items[i] = c.Convert(rv.Index(i).Interface())
		}
		return Array(items...)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return None()
		}
		if rv.IsNil() {
			return None()
		}
		dict := make(Dict, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			dict[iter.Key().String()] = c.Convert(iter.Value().Interface())
		}
		return DictValue(dict)
	case reflect.Pointer:
		if rv.IsNil() {
			return None()
		}
		return c.Convert(rv.Elem().Interface())
	default:
		return None()
	}
}
