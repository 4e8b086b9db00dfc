package checks

import (
	"fmt"
	"strings"

	"github.com/fieldstack-labs/jsonvet/pkg/rules"
)

func init() {
	rules.Register(AtLeastOneOf)
}

// AtLeastOneOf fails unless at least one field of the group is
// present-and-truthy. A declared empty group can never be satisfied and
// therefore always fails; an absent at_least_one_of key skips the family.
var AtLeastOneOf = rules.RuleDef{
	ID:          "AL01",
	Name:        "choice.at-least-one",
	Group:       "choice",
	Description: "At least one field of the at_least_one_of group must be present and truthy.",
	Severity:    rules.SeverityError,
	Order:       2,
	Check:       checkAtLeastOneOf,
	Rationale:   "Enforces that a payload carries at least one of several alternative fields.",
	BadExample:  `schema: {"at_least_one_of": ["email", "phone"]}  document: {"email": ""}`,
	GoodExample: `schema: {"at_least_one_of": ["email", "phone"]}  document: {"phone": "555-0100"}`,
}

func checkAtLeastOneOf(doc rules.Document, schema *rules.Schema) []rules.Diagnostic {
	group := schema.AtLeastOneOf
	if !group.Declared {
		return nil
	}

	if present := rules.PresentTruthy(doc, group.Fields); len(present) > 0 {
		return nil
	}
	return []rules.Diagnostic{{
		RuleID:   "AL01",
		Severity: rules.SeverityError,
		Group:    group.Fields,
		Message:  fmt.Sprintf("at least one of [%s] must be present", strings.Join(group.Fields, ", ")),
	}}
}
