package params

import (
	"errors"
	"fmt"
)

// Sentinel errors, one per ErrorKind. A *Error matches the sentinel of its kind
// with errors.Is.
var (
	ErrMalformedEntry     = errors.New("malformed entry")
	ErrDuplicateParameter = errors.New("duplicate parameter")
	ErrUnreadableFile     = errors.New("unreadable file")
	ErrUnknownParameter   = errors.New("unknown parameter")
)

// ErrorKind classifies parameter file failures.
type ErrorKind string

const (
	KindMalformedEntry     ErrorKind = "malformed_entry"
	KindDuplicateParameter ErrorKind = "duplicate_parameter"
	KindUnreadableFile     ErrorKind = "unreadable_file"
	KindUnknownParameter   ErrorKind = "unknown_parameter"
)

// Error describes a failure while reading or deriving a parameter table.
type Error struct {
	Kind ErrorKind
	Path string // empty when parsing from a reader
	Line int    // 1-based, 0 when not tied to a line
	Name string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := string(e.Kind)
	switch {
	case e.Path != "" && e.Line > 0:
		base = fmt.Sprintf("%s:%d: %s", e.Path, e.Line, base)
	case e.Path != "":
		base = fmt.Sprintf("%s: %s", e.Path, base)
	case e.Line > 0:
		base = fmt.Sprintf("line %d: %s", e.Line, base)
	}
	if e.Name != "" {
		base += fmt.Sprintf(" %q", e.Name)
	}
	if e.Msg != "" {
		base += ": " + e.Msg
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports whether target is the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	return sentinel(e.Kind) == target
}

func sentinel(kind ErrorKind) error {
	switch kind {
	case KindMalformedEntry:
		return ErrMalformedEntry
	case KindDuplicateParameter:
		return ErrDuplicateParameter
	case KindUnreadableFile:
		return ErrUnreadableFile
	case KindUnknownParameter:
		return ErrUnknownParameter
	}
	return nil
}

// IsKind reports whether err carries the given kind anywhere in its chain.
func IsKind(err error, kind ErrorKind) bool {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind == kind
	}
	return false
}
