package reader

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/syssam/entityreader"
	"github.com/syssam/entityreader/property"
	"github.com/syssam/entityreader/schema"
)

// Handle identifies one declared property of an entity type.
type Handle struct {
	Entity string // Entity type name
	Name   string // Property name
	Index  int    // Position in the enumeration, for use by the source
}

// Enumerator lists the declared properties of an entity type. Every property
// it returns takes part in extraction; properties that should be ignored must
// not be returned at all.
type Enumerator interface {
	Properties(entity string) ([]Handle, error)
}

// AnnotationReader returns the annotations attached to a property.
type AnnotationReader interface {
	Annotations(h Handle) ([]schema.Annotation, error)
}

// Source combines both collaborators of the Reader.
type Source interface {
	Enumerator
	AnnotationReader
}

// Reader builds property descriptors for entity types.
// A Reader holds no mutable state and is safe for concurrent use.
type Reader struct {
	src    Source
	logger *slog.Logger
	legacy bool
}

// New returns a Reader over the given source.
func New(src Source, opts ...Option) (*Reader, error) {
	if src == nil {
		return nil, entityreader.NewConfigError("Source", nil, "source cannot be nil")
	}
	cfg := config{logger: slog.Default()}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	return &Reader{src: src, logger: cfg.logger, legacy: cfg.lastWins}, nil
}

// Extract returns the descriptors of all declared properties of the entity
// type, keyed by property name. A property that cannot be classified aborts
// the extraction; no partial result is returned.
func (r *Reader) Extract(entity string) (map[string]*property.Descriptor, error) {
	handles, err := r.src.Properties(entity)
	if err != nil {
		return nil, fmt.Errorf("entity %q: %w", entity, err)
	}
	descs := make(map[string]*property.Descriptor, len(handles))
	for _, h := range handles {
		if _, ok := descs[h.Name]; ok {
			return nil, fmt.Errorf("entity %q property %q: %w", entity, h.Name, entityreader.ErrDuplicateProperty)
		}
		anns, err := r.src.Annotations(h)
		if err != nil {
			return nil, fmt.Errorf("entity %q property %q: %w", entity, h.Name, err)
		}
		d, err := r.classify(h, anns)
		if err != nil {
			return nil, err
		}
		descs[h.Name] = d
	}
	r.logger.Debug("entity extracted", "entity", entity, "properties", len(descs))
	return descs, nil
}

// classify turns the annotations of one property into a descriptor.
func (r *Reader) classify(h Handle, anns []schema.Annotation) (*property.Descriptor, error) {
	var defining, extras []schema.Annotation
	for _, a := range anns {
		if a == nil {
			continue
		}
		if _, ok := kindOf(a); ok {
			defining = append(defining, a)
		} else {
			extras = append(extras, a)
		}
	}
	if len(defining) == 0 {
		return nil, entityreader.NewMissingClassificationError(h.Entity, h.Name)
	}
	chosen, rest, err := r.resolve(h, defining)
	if err != nil {
		return nil, err
	}
	kind, _ := kindOf(chosen)
	opts := []property.Option{property.WithAnnotation(chosen)}
	if kind.IsReference() {
		rel, ok := chosen.(schema.Relation)
		if !ok || rel.Target() == "" {
			return nil, entityreader.NewAnnotationError(h.Entity, h.Name, chosen.Name(), "relation has no target entity", nil)
		}
		opts = append(opts, property.WithTarget(rel.Target()))
	}
	for _, a := range slices.Concat(rest, extras) {
		opts = append(opts, property.WithExtra(a))
	}
	d, err := property.New(h.Name, kind, opts...)
	if err != nil {
		return nil, fmt.Errorf("entity %q: %w", h.Entity, err)
	}
	r.logger.Debug("property classified", "entity", h.Entity, "property", h.Name, "kind", kind)
	return d, nil
}

// resolve picks the defining annotation among several structural ones.
// An Id annotation next to a Column annotation marks the identifier column;
// any other combination is ambiguous unless the reader runs with WithLastWins.
func (r *Reader) resolve(h Handle, defining []schema.Annotation) (schema.Annotation, []schema.Annotation, error) {
	if len(defining) == 1 {
		return defining[0], nil, nil
	}
	last := len(defining) - 1
	if r.legacy {
		r.logger.Debug("later annotation overrides classification",
			"entity", h.Entity, "property", h.Name, "annotation", defining[last].Name())
		return defining[last], defining[:last], nil
	}
	if len(defining) == 2 {
		a, b := defining[0], defining[1]
		switch {
		case a.Name() == schema.TagID && b.Name() == schema.TagColumn:
			return a, []schema.Annotation{b}, nil
		case a.Name() == schema.TagColumn && b.Name() == schema.TagID:
			return b, []schema.Annotation{a}, nil
		}
	}
	tags := make([]string, len(defining))
	for i, a := range defining {
		tags[i] = a.Name()
	}
	return nil, nil, entityreader.NewAmbiguousClassificationError(h.Entity, h.Name, tags...)
}

// kindOf maps a structural annotation to its property kind.
func kindOf(a schema.Annotation) (property.Kind, bool) {
	switch a.Name() {
	case schema.TagID:
		return property.Identifier, true
	case schema.TagColumn:
		return property.Column, true
	case schema.TagManyToOne, schema.TagOneToOne:
		return property.ReferenceOne, true
	case schema.TagManyToMany, schema.TagOneToMany:
		return property.ReferenceMany, true
	default:
		return 0, false
	}
}

// Lister is implemented by sources that know their entity types.
type Lister interface {
	Entities() []string
}

// Entities returns the entity types known to the source, or nil when the
// source does not implement Lister.
func (r *Reader) Entities() []string {
	if l, ok := r.src.(Lister); ok {
		return l.Entities()
	}
	return nil
}

// Extract is a shorthand for building a Reader with default options
// and extracting one entity type.
func Extract(src Source, entity string) (map[string]*property.Descriptor, error) {
	r, err := New(src)
	if err != nil {
		return nil, err
	}
	return r.Extract(entity)
}
