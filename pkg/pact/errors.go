package pact

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every *ValidationError unwraps to exactly one of these.
var (
	ErrTypeMismatch    = errors.New("type mismatch")
	ErrOutOfRange      = errors.New("value out of range")
	ErrInvalidFormat   = errors.New("invalid format")
	ErrInconsistent    = errors.New("inconsistent fields")
	ErrDuplicateID     = errors.New("duplicate identifier")
	ErrMissingArgument = errors.New("missing required argument")
)

// ValidationError identifies the first field that failed validation.
// Field uses the wire name (e.g. "packagingGhgEmissions"); nested objects
// are prefixed with their parent field ("pcf.dqi.coveragePercent").
type ValidationError struct {
	Kind    error
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return e.Kind }

// IsTransient returns false as validation errors are permanent
func (e *ValidationError) IsTransient() bool {
	return false
}

func rangeErr(field string, value any, format string, args ...any) error {
	return &ValidationError{Kind: ErrOutOfRange, Field: field, Value: fmt.Sprint(value), Message: fmt.Sprintf(format, args...)}
}

func formatErr(field string, value any, format string, args ...any) error {
	return &ValidationError{Kind: ErrInvalidFormat, Field: field, Value: fmt.Sprint(value), Message: fmt.Sprintf(format, args...)}
}

func inconsistentErr(field string, format string, args ...any) error {
	return &ValidationError{Kind: ErrInconsistent, Field: field, Message: fmt.Sprintf(format, args...)}
}

func missingErr(field string) error {
	return &ValidationError{Kind: ErrMissingArgument, Field: field, Message: "is required"}
}

func duplicateErr(field string, value any) error {
	return &ValidationError{Kind: ErrDuplicateID, Field: field, Value: fmt.Sprint(value), Message: fmt.Sprintf("duplicate identifier %v", value)}
}

// Prefix qualifies the field of a *ValidationError with a parent field name.
// Other errors are returned unchanged.
func Prefix(parent string, err error) error {
	var ve *ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	out := *ve
	switch {
	case out.Field == "":
		out.Field = parent
	case parent != "" && strings.HasPrefix(out.Field, "["):
		out.Field = parent + out.Field
	case parent != "":
		out.Field = parent + "." + out.Field
	}
	return &out
}

func indexField(i int) string {
	return fmt.Sprintf("[%d]", i)
}
