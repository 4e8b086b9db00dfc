package checks

import (
	"fmt"
	"strings"

	"github.com/fieldstack-labs/jsonvet/pkg/rules"
)

func init() {
	rules.Register(MutuallyExclusive)
}

// MutuallyExclusive fails unless exactly one field of the group is
// present-and-truthy. Unlike EO01, zero present fields is a failure here:
// the family requires one, not merely at-most-one.
var MutuallyExclusive = rules.RuleDef{
	ID:          "ME01",
	Name:        "choice.exactly-one",
	Group:       "choice",
	Description: "Exactly one field of the mutually_exclusive_fields group must be present and truthy.",
	Severity:    rules.SeverityError,
	Order:       4,
	Check:       checkMutuallyExclusive,
	Rationale:   "Forces a payload to pick exactly one of several exclusive variants.",
	BadExample:  `schema: {"mutually_exclusive_fields": ["full", "delta"]}  document: {}`,
	GoodExample: `schema: {"mutually_exclusive_fields": ["full", "delta"]}  document: {"delta": true}`,
}

func checkMutuallyExclusive(doc rules.Document, schema *rules.Schema) []rules.Diagnostic {
	group := schema.MutuallyExclusive
	if !group.Declared {
		return nil
	}

	present := rules.PresentTruthy(doc, group.Fields)
	if len(present) == 1 {
		return nil
	}
	return []rules.Diagnostic{{
		RuleID:   "ME01",
		Severity: rules.SeverityError,
		Group:    group.Fields,
		Message: fmt.Sprintf("exactly one of [%s] must be present, found %d",
			strings.Join(group.Fields, ", "), len(present)),
	}}
}
