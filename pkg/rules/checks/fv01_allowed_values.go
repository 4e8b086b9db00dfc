package checks

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/fieldstack-labs/jsonvet/pkg/rules"
)

func init() {
	rules.Register(AllowedValues)
}

// AllowedValues fails when a constrained field's value is not a member of
// its allowed set. A missing field contributes a null sentinel, so it
// fails unless the allowed set explicitly lists null. Constraints are
// evaluated in schema key order and only the first violation is reported.
var AllowedValues = rules.RuleDef{
	ID:          "FV01",
	Name:        "values.allowed",
	Group:       "values",
	Description: "Each field constrained by field_values must hold one of its allowed values.",
	Severity:    rules.SeverityError,
	Order:       5,
	Check:       checkAllowedValues,
	Rationale:   "Guards enumerated fields such as statuses and type tags against unknown values.",
	BadExample:  `schema: {"field_values": {"status": ["open", "closed"]}}  document: {"status": "pending"}`,
	GoodExample: `schema: {"field_values": {"status": ["open", "closed"]}}  document: {"status": "open"}`,
}

func checkAllowedValues(doc rules.Document, schema *rules.Schema) []rules.Diagnostic {
	for _, constraint := range schema.FieldValues {
		// Missing fields deliberately collapse to nil, the same sentinel a
		// null value decodes to.
		value := doc[constraint.Field]
		if isAllowed(value, constraint.Allowed) {
			continue
		}
		return []rules.Diagnostic{{
			RuleID:   "FV01",
			Severity: rules.SeverityError,
			Field:    constraint.Field,
			Message: fmt.Sprintf("field %q must have one of the values [%s], got %s",
				constraint.Field, formatAllowed(constraint.Allowed), formatValue(value)),
		}}
	}
	return nil
}

// isAllowed tests structural membership so numbers, strings, booleans,
// nulls, arrays, and objects all compare by value.
func isAllowed(value any, allowed []any) bool {
	for _, candidate := range allowed {
		if reflect.DeepEqual(value, candidate) {
			return true
		}
	}
	return false
}

func formatAllowed(allowed []any) string {
	parts := make([]string, len(allowed))
	for i, v := range allowed {
		parts[i] = formatValue(v)
	}
	return strings.Join(parts, ", ")
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("%q", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
