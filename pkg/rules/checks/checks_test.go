package checks_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldstack-labs/jsonvet/pkg/rules"
	"github.com/fieldstack-labs/jsonvet/pkg/rules/checks"
)

func mustSchema(t *testing.T, data string) *rules.Schema {
	t.Helper()
	s, err := rules.ParseSchemaJSON([]byte(data))
	require.NoError(t, err)
	return s
}

func TestRQ01_RequiredFields(t *testing.T) {
	tests := []struct {
		name     string
		schema   string
		doc      rules.Document
		wantDiag bool
	}{
		{
			name:     "all present",
			schema:   `{"required_fields": ["name", "type"]}`,
			doc:      rules.Document{"name": "x", "type": "A"},
			wantDiag: false,
		},
		{
			name:     "missing field",
			schema:   `{"required_fields": ["name"]}`,
			doc:      rules.Document{"type": "A"},
			wantDiag: true,
		},
		{
			name:     "falsy values still count as present",
			schema:   `{"required_fields": ["a", "b", "c"]}`,
			doc:      rules.Document{"a": nil, "b": false, "c": ""},
			wantDiag: false,
		},
		{
			name:     "empty group passes any document",
			schema:   `{"required_fields": []}`,
			doc:      rules.Document{},
			wantDiag: false,
		},
		{
			name:     "absent key passes",
			schema:   `{}`,
			doc:      rules.Document{},
			wantDiag: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := checks.RequiredFields.Check(tt.doc, mustSchema(t, tt.schema))
			if tt.wantDiag {
				assert.NotEmpty(t, diags, "expected RQ01 diagnostic")
			} else {
				assert.Empty(t, diags, "unexpected RQ01 diagnostic")
			}
		})
	}
}

func TestRQ01_ReportsFirstMissingFieldOnly(t *testing.T) {
	schema := mustSchema(t, `{"required_fields": ["a", "b", "c"]}`)
	diags := checks.RequiredFields.Check(rules.Document{}, schema)

	require.Len(t, diags, 1)
	assert.Equal(t, "a", diags[0].Field)
	assert.Contains(t, diags[0].Message, `"a"`)
}

func TestAL01_AtLeastOneOf(t *testing.T) {
	tests := []struct {
		name     string
		schema   string
		doc      rules.Document
		wantDiag bool
	}{
		{
			name:     "one present",
			schema:   `{"at_least_one_of": ["a", "b"]}`,
			doc:      rules.Document{"a": float64(1)},
			wantDiag: false,
		},
		{
			name:     "falsy values do not count",
			schema:   `{"at_least_one_of": ["a", "b"]}`,
			doc:      rules.Document{"a": float64(0), "b": ""},
			wantDiag: true,
		},
		{
			name:     "empty document",
			schema:   `{"at_least_one_of": ["a", "b"]}`,
			doc:      rules.Document{},
			wantDiag: true,
		},
		{
			name:     "declared empty group can never be satisfied",
			schema:   `{"at_least_one_of": []}`,
			doc:      rules.Document{"a": 1},
			wantDiag: true,
		},
		{
			name:     "absent key skips the family",
			schema:   `{}`,
			doc:      rules.Document{},
			wantDiag: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := checks.AtLeastOneOf.Check(tt.doc, mustSchema(t, tt.schema))
			if tt.wantDiag {
				assert.NotEmpty(t, diags, "expected AL01 diagnostic")
			} else {
				assert.Empty(t, diags, "unexpected AL01 diagnostic")
			}
		})
	}
}

func TestEO01_EitherOneOrAnother(t *testing.T) {
	tests := []struct {
		name     string
		schema   string
		doc      rules.Document
		wantDiag bool
	}{
		{
			// Zero present passes: the family only forbids several.
			name:     "none present",
			schema:   `{"either_one_or_another": ["x", "y"]}`,
			doc:      rules.Document{},
			wantDiag: false,
		},
		{
			name:     "one present",
			schema:   `{"either_one_or_another": ["x", "y"]}`,
			doc:      rules.Document{"x": float64(1)},
			wantDiag: false,
		},
		{
			name:     "both present",
			schema:   `{"either_one_or_another": ["x", "y"]}`,
			doc:      rules.Document{"x": float64(1), "y": float64(2)},
			wantDiag: true,
		},
		{
			name:     "second field falsy does not count",
			schema:   `{"either_one_or_another": ["x", "y"]}`,
			doc:      rules.Document{"x": float64(1), "y": float64(0)},
			wantDiag: false,
		},
		{
			name:     "declared empty group passes",
			schema:   `{"either_one_or_another": []}`,
			doc:      rules.Document{},
			wantDiag: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := checks.EitherOneOrAnother.Check(tt.doc, mustSchema(t, tt.schema))
			if tt.wantDiag {
				assert.NotEmpty(t, diags, "expected EO01 diagnostic")
			} else {
				assert.Empty(t, diags, "unexpected EO01 diagnostic")
			}
		})
	}
}

func TestME01_MutuallyExclusive(t *testing.T) {
	tests := []struct {
		name     string
		schema   string
		doc      rules.Document
		wantDiag bool
	}{
		{
			// Zero present fails here, unlike EO01.
			name:     "none present",
			schema:   `{"mutually_exclusive_fields": ["p", "q"]}`,
			doc:      rules.Document{},
			wantDiag: true,
		},
		{
			name:     "exactly one present",
			schema:   `{"mutually_exclusive_fields": ["p", "q"]}`,
			doc:      rules.Document{"p": float64(1)},
			wantDiag: false,
		},
		{
			name:     "both present",
			schema:   `{"mutually_exclusive_fields": ["p", "q"]}`,
			doc:      rules.Document{"p": float64(1), "q": float64(1)},
			wantDiag: true,
		},
		{
			name:     "declared empty group fails",
			schema:   `{"mutually_exclusive_fields": []}`,
			doc:      rules.Document{},
			wantDiag: true,
		},
		{
			name:     "absent key skips the family",
			schema:   `{}`,
			doc:      rules.Document{},
			wantDiag: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := checks.MutuallyExclusive.Check(tt.doc, mustSchema(t, tt.schema))
			if tt.wantDiag {
				assert.NotEmpty(t, diags, "expected ME01 diagnostic")
			} else {
				assert.Empty(t, diags, "unexpected ME01 diagnostic")
			}
		})
	}
}

func TestFV01_AllowedValues(t *testing.T) {
	tests := []struct {
		name     string
		schema   string
		doc      rules.Document
		wantDiag bool
	}{
		{
			name:     "allowed value",
			schema:   `{"field_values": {"status": ["open", "closed"]}}`,
			doc:      rules.Document{"status": "open"},
			wantDiag: false,
		},
		{
			name:     "disallowed value",
			schema:   `{"field_values": {"status": ["open", "closed"]}}`,
			doc:      rules.Document{"status": "pending"},
			wantDiag: true,
		},
		{
			name:     "missing field collapses to null and fails",
			schema:   `{"field_values": {"status": ["open", "closed"]}}`,
			doc:      rules.Document{},
			wantDiag: true,
		},
		{
			name:     "missing field passes when null is allowed",
			schema:   `{"field_values": {"status": ["open", null]}}`,
			doc:      rules.Document{},
			wantDiag: false,
		},
		{
			name:     "numbers compare by value",
			schema:   `{"field_values": {"level": [1, 2]}}`,
			doc:      rules.Document{"level": float64(2)},
			wantDiag: false,
		},
		{
			name:     "arrays compare structurally",
			schema:   `{"field_values": {"tags": [["a", "b"]]}}`,
			doc:      rules.Document{"tags": []any{"a", "b"}},
			wantDiag: false,
		},
		{
			name:     "empty constraint set passes",
			schema:   `{"field_values": {}}`,
			doc:      rules.Document{},
			wantDiag: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := checks.AllowedValues.Check(tt.doc, mustSchema(t, tt.schema))
			if tt.wantDiag {
				assert.NotEmpty(t, diags, "expected FV01 diagnostic")
			} else {
				assert.Empty(t, diags, "unexpected FV01 diagnostic")
			}
		})
	}
}

func TestFV01_ReportsFirstViolationInSchemaOrder(t *testing.T) {
	schema := mustSchema(t, `{"field_values": {"first": ["a"], "second": ["b"]}}`)
	diags := checks.AllowedValues.Check(rules.Document{"first": "x", "second": "y"}, schema)

	require.Len(t, diags, 1)
	assert.Equal(t, "first", diags[0].Field)
}
