package rules

// CheckFunc evaluates one rule family against a document. An empty return
// means the family passed. Checks are stateless; all context comes via the
// parameters.
type CheckFunc func(doc Document, schema *Schema) []Diagnostic

// RuleDef is a data-driven rule definition.
type RuleDef struct {
	ID          string    // Unique identifier, e.g., "RQ01"
	Name        string    // Human-readable name, e.g., "presence.required"
	Group       string    // Category, e.g., "presence", "choice", "values"
	Description string    // Human-readable description
	Severity    Severity  // Default severity
	Order       int       // Evaluation position; lower runs first
	Check       CheckFunc // The check function

	// Documentation fields for the rules command
	Rationale   string // Why this rule exists
	BadExample  string // Schema/document pair showing a violation
	GoodExample string // Schema/document pair that passes
}

// Info extracts metadata from a RuleDef for documentation/tooling.
func (r RuleDef) Info() RuleInfo {
	return RuleInfo{
		ID:              r.ID,
		Name:            r.Name,
		Group:           r.Group,
		Description:     r.Description,
		DefaultSeverity: r.Severity,
		Order:           r.Order,
	}
}
