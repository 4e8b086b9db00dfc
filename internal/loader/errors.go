package loader

import "fmt"

// Kind classifies a boundary failure.
type Kind int

const (
	// KindUnreadable means the file is missing or could not be read.
	KindUnreadable Kind = iota
	// KindMalformed means the file content is not valid JSON or YAML.
	KindMalformed
	// KindBadShape means the content parsed but has the wrong structure:
	// a non-object top level, or schema keys with unexpected shapes.
	KindBadShape
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindUnreadable:
		return "unreadable"
	case KindMalformed:
		return "malformed"
	case KindBadShape:
		return "bad-shape"
	default:
		return "unknown"
	}
}

// Error is a classified boundary failure. Callers that only care about the
// pass/fail outcome can treat any Error as a validation failure; callers
// that want to branch can inspect Kind.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Err: err}
}
