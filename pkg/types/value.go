package types

import "math"

// Truthy reports the boolean coercion of a normalized value, matching the
// semantics of the is_true/is_false conditions and of checkbox writes:
// nil and NaN are false, booleans are themselves, numbers are true when
// non-zero, strings are true when non-empty, and anything else (including
// an empty sequence) is true.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		if math.IsNaN(t) {
			return false
		}
		return t != 0
	case float32:
		return t != 0
	case int:
		return t != 0
	case int32:
		return t != 0
	case int64:
		return t != 0
	default:
		return true
	}
}
