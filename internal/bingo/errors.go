package bingo

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidConfiguration is wrapped by every ConfigurationError.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrValidation is wrapped by every ValidationError.
	ErrValidation = errors.New("validation error")
)

// ConfigurationError reports a board size outside SupportedSizes.
type ConfigurationError struct {
	Size BoardSize
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%v: unsupported board size %d", ErrInvalidConfiguration, e.Size)
}

func (e *ConfigurationError) Unwrap() error { return ErrInvalidConfiguration }

// Violation describes one rejected input field.
type Violation struct {
	Field   string
	Message string
}

// ValidationError carries every violation found in one input.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.Field + ": " + v.Message
	}
	return fmt.Sprintf("%v: %s", ErrValidation, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// violations accumulates problems and turns them into a *ValidationError.
type violations []Violation

func (v *violations) add(field, format string, args ...any) {
	*v = append(*v, Violation{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (v violations) err() error {
	if len(v) == 0 {
		return nil
	}
	return &ValidationError{Violations: v}
}
