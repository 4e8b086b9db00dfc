package rules

// Document is a parsed JSON (or YAML) object: a flat mapping from field
// names to arbitrary decoded values. Validation never mutates it.
type Document = map[string]any

// Diagnostic represents a single rule violation.
type Diagnostic struct {
	RuleID   string   `json:"rule_id"`
	Severity Severity `json:"severity"`
	Field    string   `json:"field,omitempty"`
	Group    []string `json:"group,omitempty"`
	Message  string   `json:"message"`
}

// Report is the structured outcome of one validation run.
//
// Checked lists the rule IDs that were evaluated, in evaluation order.
// Evaluation is fail-fast: the last entry of Checked is the failing family
// when Valid is false, and Diagnostics belong to that family only.
type Report struct {
	RunID       string       `json:"run_id"`
	Valid       bool         `json:"valid"`
	Checked     []string     `json:"checked"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// RuleInfo provides metadata about a rule for documentation and tooling.
type RuleInfo struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Group           string   `json:"group"`
	Description     string   `json:"description"`
	DefaultSeverity Severity `json:"default_severity"`
	Order           int      `json:"order"`
}
