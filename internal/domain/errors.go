package domain

import (
	"errors"
	"fmt"
)

// Validation error kinds. Every error returned by the entities in this package
// matches exactly one of them through errors.Is.
var (
	ErrMissingValue       = errors.New("missing value")
	ErrInvalidRange       = errors.New("invalid range")
	ErrInvalidEnumeration = errors.New("invalid enumeration value")
	ErrTemporalConstraint = errors.New("temporal constraint violation")
	ErrDuplicateLevel     = errors.New("duplicate supervisory level")
	ErrFormat             = errors.New("invalid record format")
)

// ValidationError carries a readable message for a rejected value together
// with its kind and, for conversions, the underlying cause.
type ValidationError struct {
	Kind  error
	Msg   string
	Cause error
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func (e *ValidationError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

func newValidationError(kind error, format string, args ...interface{}) error {
	return &ValidationError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func newFormatError(cause error, format string, args ...interface{}) error {
	return &ValidationError{Kind: ErrFormat, Msg: fmt.Sprintf(format, args...), Cause: cause}
}

// RecordError describes a stored line that could not be turned back into an
// Employment.
type RecordError struct {
	Line int
	Raw  string
	Err  error
}

func (e RecordError) Error() string {
	return fmt.Sprintf("Record Error: %d: %v", e.Line, e.Err)
}

func (e RecordError) Unwrap() error {
	return e.Err
}
