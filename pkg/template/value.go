package template

import (
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/iancoleman/orderedmap"
)

// undefinedValue marks a missing property, as opposed to an explicit null.
type undefinedValue struct{}

var undefined = undefinedValue{}

// isNullish reports whether v is nil or undefined.
func isNullish(v any) bool {
	if v == nil {
		return true
	}
	_, ok := v.(undefinedValue)
	return ok
}

// typeName describes v for error messages.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case undefinedValue:
		return "undefined"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any, orderedmap.OrderedMap, *orderedmap.OrderedMap:
		return "object"
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map, reflect.Struct:
		return "object"
	}
	return "value"
}

// normalize converts Go values into the small set of types the evaluator
// works with: string, float64, bool, nil, undefined, []any and objects.
func normalize(v any) any {
	switch x := v.(type) {
	case nil, undefinedValue, string, float64, bool, []any,
		map[string]any, orderedmap.OrderedMap, *orderedmap.OrderedMap:
		return v
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case float32:
		return float64(x)
	case []string:
		out := make([]any, len(x))
		for i, s := range x {
			out[i] = s
		}
		return out
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return nil
		}
		return normalize(rv.Elem().Interface())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return v
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = iter.Value().Interface()
		}
		return out
	}
	return v
}

// property returns obj[name] following the lookup rules of the release
// context: missing keys are undefined, and reading from null/undefined is an
// error reported by the caller.
func property(obj any, name string) any {
	switch x := obj.(type) {
	case map[string]any:
		if v, ok := x[name]; ok {
			return normalize(v)
		}
	case orderedmap.OrderedMap:
		if v, ok := x.Get(name); ok {
			return normalize(v)
		}
	case *orderedmap.OrderedMap:
		if v, ok := x.Get(name); ok {
			return normalize(v)
		}
	case string:
		if name == "length" {
			return float64(len([]rune(x)))
		}
	case []any:
		if name == "length" {
			return float64(len(x))
		}
		if i, err := strconv.Atoi(name); err == nil && i >= 0 && i < len(x) {
			return normalize(x[i])
		}
	}
	return undefined
}

// element returns obj[i] for arrays and strings.
func element(obj any, i int) any {
	switch x := obj.(type) {
	case []any:
		if i >= 0 && i < len(x) {
			return normalize(x[i])
		}
	case string:
		r := []rune(x)
		if i >= 0 && i < len(r) {
			return string(r[i])
		}
	}
	return undefined
}

// toString converts a value the way string interpolation does: null and
// undefined become empty, arrays are comma-joined, objects are opaque.
func toString(v any) string {
	switch x := normalize(v).(type) {
	case nil, undefinedValue:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return formatNumber(x)
	case []any:
		parts := make([]string, len(x))
		for i, item := range x {
			parts[i] = toString(item)
		}
		return strings.Join(parts, ",")
	}
	return "[object Object]"
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case math.Abs(f) < 1e21:
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// strictEqual compares primitives by value and everything else by identity.
func strictEqual(a, b any) bool {
	a, b = normalize(a), normalize(b)
	switch a.(type) {
	case nil:
		return b == nil
	case undefinedValue:
		_, ok := b.(undefinedValue)
		return ok
	case string, float64, bool:
		return a == b
	}
	return false
}
