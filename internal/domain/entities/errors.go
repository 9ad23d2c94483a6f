package entities

import (
	"errors"
	"fmt"
)

// ErrFileNotFound reports a file that does not exist at the requested
// revision. Callers treat it as recoverable: a file absent at the baseline
// simply has no prior version.
var ErrFileNotFound = errors.New("file not found at revision")

// ParseError reports raw text that could not be parsed as a version, or a
// snapshot in which no version occurrence was found.
type ParseError struct {
	Input  string // offending text, may be empty when nothing matched
	Reason string
}

func (e *ParseError) Error() string {
	if e.Input == "" {
		return fmt.Sprintf("version parse failed: %s", e.Reason)
	}
	return fmt.Sprintf("version parse failed for %q: %s", e.Input, e.Reason)
}

// MalformedConflictError reports an unbalanced or out-of-order conflict
// marker. It is fatal for the block it belongs to but scanning continues,
// so one file may surface several of these together.
type MalformedConflictError struct {
	Line   int // 1-based line number of the offending marker
	Reason string
}

func (e *MalformedConflictError) Error() string {
	return fmt.Sprintf("malformed conflict marker at line %d: %s", e.Line, e.Reason)
}
