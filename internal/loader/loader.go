// Package loader reads document and schema files and classifies every
// failure into the boundary error taxonomy. The validation engine itself
// never touches the filesystem.
package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fieldstack-labs/jsonvet/pkg/rules"
)

// Loader reads and decodes validation inputs. Format is selected by file
// extension: .yaml/.yml decode as YAML, everything else as JSON.
type Loader struct {
	logger *slog.Logger
}

// New creates a loader. A nil logger discards output.
func New(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Loader{logger: logger}
}

// LoadDocument reads a document file into a flat mapping.
func (l *Loader) LoadDocument(path string) (rules.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newError(KindUnreadable, path, err)
	}
	l.logger.Debug("loaded document", "path", path, "bytes", len(data))

	var decoded any
	if isYAML(path) {
		if err := yaml.Unmarshal(data, &decoded); err != nil {
			return nil, newError(KindMalformed, path, err)
		}
		if decoded == nil {
			return rules.Document{}, nil
		}
	} else if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, newError(KindMalformed, path, err)
	}
	doc, ok := decoded.(map[string]any)
	if !ok {
		return nil, newError(KindBadShape, path, fmt.Errorf("top level must be an object, got %T", decoded))
	}
	return doc, nil
}

// LoadSchema reads and parses a schema file.
func (l *Loader) LoadSchema(path string) (*rules.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newError(KindUnreadable, path, err)
	}
	l.logger.Debug("loaded schema", "path", path, "bytes", len(data))

	var schema *rules.Schema
	if isYAML(path) {
		schema, err = rules.ParseSchemaYAML(data)
	} else {
		schema, err = rules.ParseSchemaJSON(data)
	}
	if err != nil {
		return nil, newError(classifyParseError(err), path, err)
	}
	return schema, nil
}

// classifyParseError separates syntactically broken input from input that
// parsed but has the wrong structure.
func classifyParseError(err error) Kind {
	if errors.Is(err, rules.ErrSchemaShape) {
		return KindBadShape
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return KindMalformed
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return KindBadShape
	}
	// yaml.v3 has no exported syntax error type; anything it rejects
	// outright is malformed input.
	return KindMalformed
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
