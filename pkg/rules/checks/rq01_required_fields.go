package checks

import (
	"fmt"

	"github.com/fieldstack-labs/jsonvet/pkg/rules"
)

func init() {
	rules.Register(RequiredFields)
}

// RequiredFields fails when a listed field key is absent from the document.
// Existence is all that matters: a field holding null or any other falsy
// value still satisfies this family. Only the first missing field is
// reported, matching the engine's fail-fast contract.
var RequiredFields = rules.RuleDef{
	ID:          "RQ01",
	Name:        "presence.required",
	Group:       "presence",
	Description: "Every field listed in required_fields must exist in the document.",
	Severity:    rules.SeverityError,
	Order:       1,
	Check:       checkRequiredFields,
	Rationale:   "Catches payloads that omit fields downstream consumers dereference unconditionally.",
	BadExample:  `schema: {"required_fields": ["name"]}  document: {"type": "A"}`,
	GoodExample: `schema: {"required_fields": ["name"]}  document: {"name": null}`,
}

func checkRequiredFields(doc rules.Document, schema *rules.Schema) []rules.Diagnostic {
	for _, field := range schema.RequiredFields.Fields {
		if rules.HasKey(doc, field) {
			continue
		}
		return []rules.Diagnostic{{
			RuleID:   "RQ01",
			Severity: rules.SeverityError,
			Field:    field,
			Message:  fmt.Sprintf("required field %q is missing", field),
		}}
	}
	return nil
}
