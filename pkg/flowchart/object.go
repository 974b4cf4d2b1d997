package flowchart

import (
	"strconv"
)

// object wraps a decoded JSON object for tolerant field access.
// All accessors return zero values if the key is missing or the value has
// an unexpected type, so probing model output never panics.
type object map[string]any

// asObject returns v as an object, or nil if v is not a JSON object.
// A nil object is safe to call accessors on.
func asObject(v any) object {
	m, _ := v.(map[string]any)
	return m
}

// has reports whether key is present with a non-null value.
func (o object) has(key string) bool {
	v, ok := o[key]
	return ok && v != nil
}

// str returns the value for key as a string.
//
// Accepts:
//   - string: used directly
//   - float64: formatted without a trailing fraction (1 -> "1")
//   - bool: "true" or "false"
func (o object) str(key string) string {
	return scalarString(o[key])
}

// array returns the value for key if it is a JSON array.
func (o object) array(key string) ([]any, bool) {
	v, ok := o[key].([]any)
	return v, ok
}

// obj returns the value for key as an object, or nil.
func (o object) obj(key string) object {
	return asObject(o[key])
}

// number returns the float value for key and whether it was a number.
func (o object) number(key string) (float64, bool) {
	v, ok := o[key].(float64)
	return v, ok
}

func scalarString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	}
	return ""
}

// firstString returns the first non-empty string among the given keys.
func (o object) firstString(keys ...string) string {
	for _, k := range keys {
		if s := o.str(k); s != "" {
			return s
		}
	}
	return ""
}
