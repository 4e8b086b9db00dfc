package rules

import (
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// Validator evaluates registered rules against a document.
//
// Evaluation is pure: the document and schema are read-only inputs and no
// state survives between calls, so concurrent use is safe.
type Validator struct {
	config *Config
	logger *slog.Logger
}

// Option configures a Validator.
type Option func(*Validator)

// WithConfig sets the rule configuration.
func WithConfig(cfg *Config) Option {
	return func(v *Validator) {
		if cfg != nil {
			v.config = cfg
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// NewValidator creates a validator over the globally registered rules.
func NewValidator(opts ...Option) *Validator {
	v := &Validator{
		config: NewConfig(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate reports whether the document satisfies the schema. It is the
// boolean form of Evaluate.
func (v *Validator) Validate(doc Document, schema *Schema) bool {
	return v.Evaluate(doc, schema).Valid
}

// Evaluate runs all enabled rule families in evaluation order,
// short-circuiting at the first family that produces diagnostics. The
// returned report carries the diagnostics of that family only; severity
// overrides from the configuration are already applied.
func (v *Validator) Evaluate(doc Document, schema *Schema) *Report {
	report := &Report{
		RunID: uuid.NewString(),
		Valid: true,
	}
	if schema == nil {
		return report
	}

	for _, rule := range Ordered() {
		if v.config.IsDisabled(rule.ID) {
			v.logger.Debug("rule disabled", "rule", rule.ID)
			continue
		}

		report.Checked = append(report.Checked, rule.ID)
		diags := rule.Check(doc, schema)
		if len(diags) == 0 {
			continue
		}

		for i := range diags {
			diags[i].Severity = v.config.GetSeverity(rule.ID, diags[i].Severity)
		}
		report.Valid = false
		report.Diagnostics = diags
		v.logger.Debug("rule failed", "rule", rule.ID, "diagnostics", len(diags))
		break
	}
	return report
}
