package rules

// HasKey reports whether the field key exists in the document, regardless
// of its value. A key holding null, false, or an empty collection still
// counts as present. This is the predicate behind the required-fields
// family.
func HasKey(doc Document, field string) bool {
	_, ok := doc[field]
	return ok
}

// IsPresentTruthy reports whether the field key exists and its value is
// not a falsy sentinel. The choice families (at-least-one-of, either-or,
// exactly-one) use this stricter predicate: null, false, numeric zero,
// the empty string, and empty arrays or objects all count as absent.
func IsPresentTruthy(doc Document, field string) bool {
	v, ok := doc[field]
	if !ok {
		return false
	}
	return isTruthy(v)
}

// PresentTruthy returns the subsequence of group whose fields are
// present-and-truthy in the document, preserving group order.
func PresentTruthy(doc Document, group []string) []string {
	var present []string
	for _, field := range group {
		if IsPresentTruthy(doc, field) {
			present = append(present, field)
		}
	}
	return present
}

// isTruthy covers the value types produced by encoding/json and yaml.v3.
// Unknown types are treated as truthy.
func isTruthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case float64:
		return val != 0
	case float32:
		return val != 0
	case int:
		return val != 0
	case int64:
		return val != 0
	case uint64:
		return val != 0
	case []any:
		return len(val) > 0
	case map[string]any:
		return len(val) > 0
	default:
		return true
	}
}
