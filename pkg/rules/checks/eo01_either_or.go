package checks

import (
	"fmt"
	"strings"

	"github.com/fieldstack-labs/jsonvet/pkg/rules"
)

func init() {
	rules.Register(EitherOneOrAnother)
}

// EitherOneOrAnother fails when more than one field of the group is
// present-and-truthy. Zero present fields passes: despite the name, the
// family only forbids having several. Requiring at least one is
// at_least_one_of's job.
var EitherOneOrAnother = rules.RuleDef{
	ID:          "EO01",
	Name:        "choice.either-or",
	Group:       "choice",
	Description: "At most one field of the either_one_or_another group may be present and truthy.",
	Severity:    rules.SeverityError,
	Order:       3,
	Check:       checkEitherOneOrAnother,
	Rationale:   "Rejects payloads that set several alternative fields at once.",
	BadExample:  `schema: {"either_one_or_another": ["card", "iban"]}  document: {"card": "x", "iban": "y"}`,
	GoodExample: `schema: {"either_one_or_another": ["card", "iban"]}  document: {}`,
}

func checkEitherOneOrAnother(doc rules.Document, schema *rules.Schema) []rules.Diagnostic {
	group := schema.EitherOneOrAnother
	if !group.Declared {
		return nil
	}

	present := rules.PresentTruthy(doc, group.Fields)
	if len(present) <= 1 {
		return nil
	}
	return []rules.Diagnostic{{
		RuleID:   "EO01",
		Severity: rules.SeverityError,
		Group:    group.Fields,
		Message: fmt.Sprintf("only one of [%s] may be present, found %d (%s)",
			strings.Join(group.Fields, ", "), len(present), strings.Join(present, ", ")),
	}}
}
