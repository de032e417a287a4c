package gen

import (
	"errors"
	"strings"
)

// ErrGenerationFailed indicates a code generation failure.
var ErrGenerationFailed = errors.New("entityreader: code generation failed")

// GenerationError represents a code generation error.
type GenerationError struct {
	Entity  string // Entity type name, empty for package level files
	File    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("entityreader: generation error")
	if e.Entity != "" {
		b.WriteString(" for entity ")
		b.WriteString(e.Entity)
	}
	if e.File != "" {
		b.WriteString(" (file: ")
		b.WriteString(e.File)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(entity, file, message string, cause error) *GenerationError {
	return &GenerationError{
		Entity:  entity,
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// IsGenerationError reports whether err is a GenerationError.
func IsGenerationError(err error) bool {
	var e *GenerationError
	return errors.As(err, &e)
}
