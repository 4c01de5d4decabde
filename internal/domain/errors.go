package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by services and repositories.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("invalid credentials")
	ErrConflict     = errors.New("conflict")
	ErrEventFull    = errors.New("event is full")
)

// Sentinels for each validation Kind. A *ValidationError matches the one for its Kind
// under errors.Is.
var (
	ErrMissingField  = errors.New("missing field")
	ErrInvalidFormat = errors.New("invalid format")
	ErrInvalidValue  = errors.New("invalid value")
	ErrOutOfRange    = errors.New("out of range")
)

// Kind classifies a validation failure.
type Kind string

const (
	KindMissingField  Kind = "missing_field"
	KindInvalidFormat Kind = "invalid_format"
	KindInvalidValue  Kind = "invalid_value"
	KindOutOfRange    Kind = "out_of_range"
)

// ValidationError reports a field that failed one of its rules.
type ValidationError struct {
	Kind    Kind
	Field   string
	Message string
}

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(kind Kind, field, format string, args ...any) *ValidationError {
	return &ValidationError{Kind: kind, Field: field, Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is matches the sentinel for the error's Kind.
func (e *ValidationError) Is(target error) bool {
	switch target {
	case ErrMissingField:
		return e.Kind == KindMissingField
	case ErrInvalidFormat:
		return e.Kind == KindInvalidFormat
	case ErrInvalidValue:
		return e.Kind == KindInvalidValue
	case ErrOutOfRange:
		return e.Kind == KindOutOfRange
	}
	return false
}

// IsValidation reports whether err carries a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
