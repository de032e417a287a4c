package entityreader

import (
	"errors"
	"fmt"
	"strings"
)

// Standard sentinel errors for metadata extraction.
var (
	// ErrMissingClassification is returned when a declared property carries
	// no structural annotation that maps it to a property kind.
	ErrMissingClassification = errors.New("entityreader: defining annotation is missing")

	// ErrAmbiguousClassification is returned when a declared property carries
	// more than one structural annotation and the reader runs in strict mode.
	ErrAmbiguousClassification = errors.New("entityreader: conflicting defining annotations")

	// ErrInvalidAnnotation is returned when an annotation cannot be parsed or
	// lacks a value it requires (for example a relation without a target).
	ErrInvalidAnnotation = errors.New("entityreader: invalid annotation")

	// ErrUnknownEntity is returned when a source cannot resolve an entity type.
	ErrUnknownEntity = errors.New("entityreader: unknown entity type")

	// ErrDuplicateProperty is returned when an entity type declares the same
	// property name twice.
	ErrDuplicateProperty = errors.New("entityreader: duplicate property")

	// ErrInvalidConfig is returned when an option receives an unusable value.
	ErrInvalidConfig = errors.New("entityreader: invalid configuration")
)

// MissingClassificationError reports a property that could not be classified.
// Extraction of the whole entity type is aborted when it occurs.
type MissingClassificationError struct {
	Entity   string // Entity type name
	Property string // Property name
}

// Error returns the error string.
func (e *MissingClassificationError) Error() string {
	return fmt.Sprintf("entityreader: entity %q: defining annotation is missing at property %q", e.Entity, e.Property)
}

// Is reports whether the target error matches MissingClassificationError.
// This allows errors.Is(err, ErrMissingClassification) to return true.
func (e *MissingClassificationError) Is(err error) bool {
	return err == ErrMissingClassification
}

// NewMissingClassificationError returns a new MissingClassificationError.
func NewMissingClassificationError(entity, property string) *MissingClassificationError {
	return &MissingClassificationError{Entity: entity, Property: property}
}

// IsMissingClassification returns true if the error is a MissingClassificationError.
func IsMissingClassification(err error) bool {
	if err == nil {
		return false
	}
	var e *MissingClassificationError
	return errors.As(err, &e) || errors.Is(err, ErrMissingClassification)
}

// AmbiguousClassificationError reports a property that carries several
// structural annotations which resolve to different kinds.
type AmbiguousClassificationError struct {
	Entity   string   // Entity type name
	Property string   // Property name
	Tags     []string // Annotation names in declaration order
}

// Error returns the error string.
func (e *AmbiguousClassificationError) Error() string {
	return fmt.Sprintf("entityreader: entity %q: property %q has conflicting annotations [%s]",
		e.Entity, e.Property, strings.Join(e.Tags, ", "))
}

// Is reports whether the target error matches AmbiguousClassificationError.
func (e *AmbiguousClassificationError) Is(err error) bool {
	return err == ErrAmbiguousClassification
}

// NewAmbiguousClassificationError returns a new AmbiguousClassificationError.
func NewAmbiguousClassificationError(entity, property string, tags ...string) *AmbiguousClassificationError {
	return &AmbiguousClassificationError{Entity: entity, Property: property, Tags: tags}
}

// IsAmbiguousClassification returns true if the error is an AmbiguousClassificationError.
func IsAmbiguousClassification(err error) bool {
	if err == nil {
		return false
	}
	var e *AmbiguousClassificationError
	return errors.As(err, &e) || errors.Is(err, ErrAmbiguousClassification)
}

// AnnotationError represents a malformed or incomplete annotation.
type AnnotationError struct {
	Entity     string // Entity type name (if known)
	Property   string // Property name (if known)
	Annotation string // Annotation name or raw text
	Message    string
	Cause      error
}

// Error implements the error interface.
func (e *AnnotationError) Error() string {
	var b strings.Builder
	b.WriteString("entityreader: invalid annotation")
	if e.Annotation != "" {
		fmt.Fprintf(&b, " %q", e.Annotation)
	}
	if e.Entity != "" {
		b.WriteString(" on entity ")
		b.WriteString(e.Entity)
	}
	if e.Property != "" {
		b.WriteString(" property ")
		b.WriteString(e.Property)
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
func (e *AnnotationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for AnnotationError.
func (e *AnnotationError) Is(target error) bool {
	return target == ErrInvalidAnnotation
}

// NewAnnotationError creates a new AnnotationError.
func NewAnnotationError(entity, property, annotation, message string, cause error) *AnnotationError {
	return &AnnotationError{
		Entity:     entity,
		Property:   property,
		Annotation: annotation,
		Message:    message,
		Cause:      cause,
	}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("entityreader: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("entityreader: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// UnknownEntityError wraps ErrUnknownEntity with the entity type name.
func UnknownEntityError(entity string) error {
	return fmt.Errorf("%w: %q", ErrUnknownEntity, entity)
}
