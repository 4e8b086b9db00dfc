package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldstack-labs/jsonvet/pkg/rules"
)

func TestParseSchemaJSON(t *testing.T) {
	data := []byte(`{
		"required_fields": ["name", "type"],
		"at_least_one_of": ["email", "phone"],
		"either_one_or_another": ["card", "iban"],
		"mutually_exclusive_fields": ["full", "delta"],
		"field_values": {"status": ["open", "closed"], "type": ["A", "B"]}
	}`)

	s, err := rules.ParseSchemaJSON(data)
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "type"}, s.RequiredFields.Fields)
	assert.True(t, s.RequiredFields.Declared)
	assert.Equal(t, []string{"email", "phone"}, s.AtLeastOneOf.Fields)
	assert.Equal(t, []string{"card", "iban"}, s.EitherOneOrAnother.Fields)
	assert.Equal(t, []string{"full", "delta"}, s.MutuallyExclusive.Fields)

	require.Len(t, s.FieldValues, 2)
	// Source key order survives parsing
	assert.Equal(t, "status", s.FieldValues[0].Field)
	assert.Equal(t, []any{"open", "closed"}, s.FieldValues[0].Allowed)
	assert.Equal(t, "type", s.FieldValues[1].Field)
	assert.True(t, s.FieldValuesDeclared)
}

func TestParseSchemaJSONAbsentKeys(t *testing.T) {
	s, err := rules.ParseSchemaJSON([]byte(`{}`))
	require.NoError(t, err)

	assert.False(t, s.RequiredFields.Declared)
	assert.False(t, s.AtLeastOneOf.Declared)
	assert.False(t, s.EitherOneOrAnother.Declared)
	assert.False(t, s.MutuallyExclusive.Declared)
	assert.False(t, s.FieldValuesDeclared)
}

func TestParseSchemaJSONDeclaredEmptyGroup(t *testing.T) {
	s, err := rules.ParseSchemaJSON([]byte(`{"at_least_one_of": []}`))
	require.NoError(t, err)

	// A declared empty group is not the same as an absent key.
	assert.True(t, s.AtLeastOneOf.Declared)
	assert.Empty(t, s.AtLeastOneOf.Fields)
}

func TestParseSchemaJSONIgnoresUnknownKeys(t *testing.T) {
	s, err := rules.ParseSchemaJSON([]byte(`{"comment": "x", "required_fields": ["a"], "nested": {"deep": [1]}}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, s.RequiredFields.Fields)
}

func TestParseSchemaJSONShapeErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"top level array", `[1, 2]`},
		{"group not a list", `{"required_fields": "name"}`},
		{"group of non-strings", `{"required_fields": [1, 2]}`},
		{"field_values not an object", `{"field_values": ["open"]}`},
		{"allowed values not a list", `{"field_values": {"status": "open"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := rules.ParseSchemaJSON([]byte(tt.data))
			assert.ErrorIs(t, err, rules.ErrSchemaShape)
		})
	}
}

func TestParseSchemaJSONMalformed(t *testing.T) {
	_, err := rules.ParseSchemaJSON([]byte(`{"comment": }`))
	require.Error(t, err)
	assert.NotErrorIs(t, err, rules.ErrSchemaShape)
}

func TestParseSchemaYAML(t *testing.T) {
	data := []byte(`
required_fields:
  - name
field_values:
  status: [open, closed]
  type: [A, B]
`)

	s, err := rules.ParseSchemaYAML(data)
	require.NoError(t, err)

	assert.Equal(t, []string{"name"}, s.RequiredFields.Fields)
	require.Len(t, s.FieldValues, 2)
	assert.Equal(t, "status", s.FieldValues[0].Field)
	assert.Equal(t, "type", s.FieldValues[1].Field)
}

func TestParseSchemaYAMLEmptyDocument(t *testing.T) {
	s, err := rules.ParseSchemaYAML(nil)
	require.NoError(t, err)
	assert.False(t, s.RequiredFields.Declared)
}

func TestParseSchemaYAMLShapeErrors(t *testing.T) {
	_, err := rules.ParseSchemaYAML([]byte("- just\n- a\n- list\n"))
	assert.ErrorIs(t, err, rules.ErrSchemaShape)

	_, err = rules.ParseSchemaYAML([]byte("required_fields: name\n"))
	assert.ErrorIs(t, err, rules.ErrSchemaShape)
}

func TestSchemaConstraint(t *testing.T) {
	s, err := rules.ParseSchemaJSON([]byte(`{"field_values": {"status": ["open"]}}`))
	require.NoError(t, err)

	allowed, ok := s.Constraint("status")
	require.True(t, ok)
	assert.Equal(t, []any{"open"}, allowed)

	_, ok = s.Constraint("other")
	assert.False(t, ok)
}
