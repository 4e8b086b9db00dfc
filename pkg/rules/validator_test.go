package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldstack-labs/jsonvet/pkg/rules"
	_ "github.com/fieldstack-labs/jsonvet/pkg/rules/checks" // register rule families
)

func mustSchema(t *testing.T, data string) *rules.Schema {
	t.Helper()
	s, err := rules.ParseSchemaJSON([]byte(data))
	require.NoError(t, err)
	return s
}

func TestValidateEndToEnd(t *testing.T) {
	schema := mustSchema(t, `{"required_fields": ["name"], "field_values": {"type": ["A", "B"]}}`)
	v := rules.NewValidator()

	assert.True(t, v.Validate(rules.Document{"name": "x", "type": "A"}, schema))
	assert.False(t, v.Validate(rules.Document{"type": "C"}, schema))
}

func TestEvaluateFailFastOrder(t *testing.T) {
	// Both RQ01 and FV01 would fail; required_fields runs first and wins.
	schema := mustSchema(t, `{"required_fields": ["name"], "field_values": {"type": ["A", "B"]}}`)
	v := rules.NewValidator()

	rep := v.Evaluate(rules.Document{"type": "C"}, schema)
	require.False(t, rep.Valid)
	require.NotEmpty(t, rep.Diagnostics)
	assert.Equal(t, "RQ01", rep.Diagnostics[0].RuleID)

	// Checked stops at the failing family: FV01 was never evaluated.
	assert.Equal(t, []string{"RQ01"}, rep.Checked)
}

func TestEvaluateChecksAllFamiliesOnSuccess(t *testing.T) {
	v := rules.NewValidator()
	rep := v.Evaluate(rules.Document{"name": "x"}, mustSchema(t, `{"required_fields": ["name"]}`))

	require.True(t, rep.Valid)
	assert.Equal(t, []string{"RQ01", "AL01", "EO01", "ME01", "FV01"}, rep.Checked)
	assert.Empty(t, rep.Diagnostics)
	assert.NotEmpty(t, rep.RunID)
}

func TestEvaluateDisabledRule(t *testing.T) {
	schema := mustSchema(t, `{"mutually_exclusive_fields": ["p", "q"]}`)
	doc := rules.Document{}

	strict := rules.NewValidator()
	require.False(t, strict.Validate(doc, schema))

	cfg := rules.NewConfig().Disable("ME01")
	relaxed := rules.NewValidator(rules.WithConfig(cfg))
	rep := relaxed.Evaluate(doc, schema)

	assert.True(t, rep.Valid)
	assert.NotContains(t, rep.Checked, "ME01")
}

func TestEvaluateSeverityOverride(t *testing.T) {
	schema := mustSchema(t, `{"required_fields": ["name"]}`)
	cfg := rules.NewConfig()
	cfg.SetSeverity("RQ01", rules.SeverityWarning)

	rep := rules.NewValidator(rules.WithConfig(cfg)).Evaluate(rules.Document{}, schema)
	require.False(t, rep.Valid)
	require.NotEmpty(t, rep.Diagnostics)
	assert.Equal(t, rules.SeverityWarning, rep.Diagnostics[0].Severity)
}

func TestEvaluateNilSchema(t *testing.T) {
	rep := rules.NewValidator().Evaluate(rules.Document{"a": 1}, nil)
	assert.True(t, rep.Valid)
	assert.Empty(t, rep.Checked)
}

// Validation holds no state between calls: identical inputs give
// identical outcomes (run IDs aside).
func TestValidateIdempotent(t *testing.T) {
	schema := mustSchema(t, `{
		"required_fields": ["name"],
		"at_least_one_of": ["a", "b"],
		"field_values": {"type": ["A"]}
	}`)
	doc := rules.Document{"name": "x", "a": float64(1), "type": "A"}
	v := rules.NewValidator()

	first := v.Evaluate(doc, schema)
	second := v.Evaluate(doc, schema)

	assert.Equal(t, first.Valid, second.Valid)
	assert.Equal(t, first.Checked, second.Checked)
	assert.Equal(t, first.Diagnostics, second.Diagnostics)
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestRegistryOrdering(t *testing.T) {
	ordered := rules.Ordered()
	require.GreaterOrEqual(t, len(ordered), 5)

	ids := make([]string, len(ordered))
	for i, def := range ordered {
		ids[i] = def.ID
	}
	assert.Equal(t, []string{"RQ01", "AL01", "EO01", "ME01", "FV01"}, ids[:5])

	for i := 1; i < len(ordered); i++ {
		assert.LessOrEqual(t, ordered[i-1].Order, ordered[i].Order)
	}
}

func TestRegistryLookup(t *testing.T) {
	def, ok := rules.GetByID("ME01")
	require.True(t, ok)
	assert.Equal(t, "choice.exactly-one", def.Name)

	_, ok = rules.GetByID("XX99")
	assert.False(t, ok)

	choice := rules.GetByGroup("choice")
	assert.Len(t, choice, 3)

	assert.GreaterOrEqual(t, rules.Count(), 5)
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in     string
		want   rules.Severity
		wantOK bool
	}{
		{"error", rules.SeverityError, true},
		{"WARNING", rules.SeverityWarning, true},
		{"info", rules.SeverityInfo, true},
		{"hint", rules.SeverityHint, true},
		{"fatal", rules.SeverityError, false},
	}

	for _, tt := range tests {
		got, ok := rules.ParseSeverity(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
	}
}
