package rules

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Schema keys recognized at the top level. Unrecognized keys are ignored.
const (
	KeyRequiredFields     = "required_fields"
	KeyAtLeastOneOf       = "at_least_one_of"
	KeyEitherOneOrAnother = "either_one_or_another"
	KeyMutuallyExclusive  = "mutually_exclusive_fields"
	KeyFieldValues        = "field_values"
)

// ErrSchemaShape marks schema documents whose recognized keys have the
// wrong shape (a non-list group, a non-object field_values block). It is
// distinct from a syntactically malformed document.
var ErrSchemaShape = errors.New("invalid schema shape")

// FieldGroup is an ordered list of field names subject to one rule family.
//
// Declared distinguishes an absent schema key from a declared-but-empty
// group. An absent key is a vacuous pass for every family; a declared
// empty group still goes through the family's check (an empty
// at-least-one-of group can never be satisfied).
type FieldGroup struct {
	Fields   []string
	Declared bool
}

// FieldConstraint restricts one field to a set of allowed values.
type FieldConstraint struct {
	Field   string
	Allowed []any
}

// Schema is a parsed validation schema. Constraints preserve the key
// order of the source document so the first violation reported is
// deterministic.
type Schema struct {
	RequiredFields      FieldGroup
	AtLeastOneOf        FieldGroup
	EitherOneOrAnother  FieldGroup
	MutuallyExclusive   FieldGroup
	FieldValues         []FieldConstraint
	FieldValuesDeclared bool
}

// Constraint returns the allowed values for a field, if constrained.
func (s *Schema) Constraint(field string) ([]any, bool) {
	for _, c := range s.FieldValues {
		if c.Field == field {
			return c.Allowed, true
		}
	}
	return nil, false
}

// ParseSchemaJSON parses a JSON schema document. The top level must be an
// object. Recognized keys are decoded strictly; anything else is ignored.
// field_values key order is preserved via token-level decoding, since a
// plain map round-trip would lose it.
func ParseSchemaJSON(data []byte) (*Schema, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: top level must be an object, got %v", ErrSchemaShape, tok)
	}

	s := &Schema{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parse schema: %w", err)
		}
		key := keyTok.(string)

		switch key {
		case KeyRequiredFields:
			s.RequiredFields, err = decodeGroup(dec, key)
		case KeyAtLeastOneOf:
			s.AtLeastOneOf, err = decodeGroup(dec, key)
		case KeyEitherOneOrAnother:
			s.EitherOneOrAnother, err = decodeGroup(dec, key)
		case KeyMutuallyExclusive:
			s.MutuallyExclusive, err = decodeGroup(dec, key)
		case KeyFieldValues:
			s.FieldValues, err = decodeConstraints(dec)
			s.FieldValuesDeclared = err == nil
		default:
			var ignored any
			err = dec.Decode(&ignored)
		}
		if err != nil {
			return nil, err
		}
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	return s, nil
}

func decodeGroup(dec *json.Decoder, key string) (FieldGroup, error) {
	var fields []string
	if err := dec.Decode(&fields); err != nil {
		return FieldGroup{}, fmt.Errorf("%w: %q must be a list of field names: %v", ErrSchemaShape, key, err)
	}
	return FieldGroup{Fields: fields, Declared: true}, nil
}

func decodeConstraints(dec *json.Decoder) ([]FieldConstraint, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: %q must be an object mapping fields to allowed values", ErrSchemaShape, KeyFieldValues)
	}

	var constraints []FieldConstraint
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parse schema: %w", err)
		}
		field := keyTok.(string)

		var allowed []any
		if err := dec.Decode(&allowed); err != nil {
			return nil, fmt.Errorf("%w: allowed values for %q must be a list: %v", ErrSchemaShape, field, err)
		}
		constraints = append(constraints, FieldConstraint{Field: field, Allowed: allowed})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	return constraints, nil
}

// ParseSchemaYAML parses a YAML schema document. Mapping order is
// preserved by walking the yaml.Node tree instead of decoding into a map.
// An empty document yields an empty schema.
func ParseSchemaYAML(data []byte) (*Schema, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}

	s := &Schema{}
	if root.Kind == 0 || len(root.Content) == 0 {
		return s, nil
	}

	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level must be a mapping", ErrSchemaShape)
	}

	for i := 0; i+1 < len(top.Content); i += 2 {
		key := top.Content[i].Value
		value := top.Content[i+1]

		var err error
		switch key {
		case KeyRequiredFields:
			s.RequiredFields, err = decodeGroupYAML(value, key)
		case KeyAtLeastOneOf:
			s.AtLeastOneOf, err = decodeGroupYAML(value, key)
		case KeyEitherOneOrAnother:
			s.EitherOneOrAnother, err = decodeGroupYAML(value, key)
		case KeyMutuallyExclusive:
			s.MutuallyExclusive, err = decodeGroupYAML(value, key)
		case KeyFieldValues:
			s.FieldValues, err = decodeConstraintsYAML(value)
			s.FieldValuesDeclared = err == nil
		}
		if err != nil {
			return nil, err
		}
	}
	return s, nil
}

func decodeGroupYAML(node *yaml.Node, key string) (FieldGroup, error) {
	var fields []string
	if err := node.Decode(&fields); err != nil {
		return FieldGroup{}, fmt.Errorf("%w: %q must be a list of field names: %v", ErrSchemaShape, key, err)
	}
	return FieldGroup{Fields: fields, Declared: true}, nil
}

func decodeConstraintsYAML(node *yaml.Node) ([]FieldConstraint, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: %q must be a mapping of fields to allowed values", ErrSchemaShape, KeyFieldValues)
	}

	var constraints []FieldConstraint
	for i := 0; i+1 < len(node.Content); i += 2 {
		field := node.Content[i].Value
		var allowed []any
		if err := node.Content[i+1].Decode(&allowed); err != nil {
			return nil, fmt.Errorf("%w: allowed values for %q must be a list: %v", ErrSchemaShape, field, err)
		}
		constraints = append(constraints, FieldConstraint{Field: field, Allowed: allowed})
	}
	return constraints, nil
}
