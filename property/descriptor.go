package property

import (
	"errors"
	"fmt"
	"maps"

	"github.com/syssam/entityreader/schema"
)

// ErrInvalidDescriptor is returned by New when the arguments
// violate the descriptor invariants.
var ErrInvalidDescriptor = errors.New("property: invalid descriptor")

// Descriptor is the classification of one declared property.
// A Descriptor is immutable and safe for concurrent use.
type Descriptor struct {
	name       string
	kind       Kind
	target     string
	annotation schema.Annotation
	extras     map[string]schema.Annotation
}

// Option configures a Descriptor under construction.
type Option func(*Descriptor)

// WithTarget sets the related entity type of a reference property.
func WithTarget(entity string) Option {
	return func(d *Descriptor) {
		d.target = entity
	}
}

// WithAnnotation sets the annotation the kind was derived from.
func WithAnnotation(a schema.Annotation) Option {
	return func(d *Descriptor) {
		d.annotation = a
	}
}

// WithExtra attaches a non-defining annotation. Annotations sharing
// a name are merged when the first one implements schema.Merger;
// otherwise the first one is kept.
func WithExtra(a schema.Annotation) Option {
	return func(d *Descriptor) {
		if a == nil {
			return
		}
		if d.extras == nil {
			d.extras = make(map[string]schema.Annotation)
		}
		curr, ok := d.extras[a.Name()]
		if !ok {
			d.extras[a.Name()] = a
			return
		}
		if m, ok := curr.(schema.Merger); ok {
			d.extras[a.Name()] = m.Merge(a)
		}
	}
}

// New returns a descriptor for the named property. A target must be given
// for reference kinds and must be absent for the others.
func New(name string, kind Kind, opts ...Option) (*Descriptor, error) {
	d := &Descriptor{name: name, kind: kind}
	for _, opt := range opts {
		opt(d)
	}
	switch {
	case name == "":
		return nil, fmt.Errorf("%w: empty name", ErrInvalidDescriptor)
	case !kind.IsValid():
		return nil, fmt.Errorf("%w: property %q has %s", ErrInvalidDescriptor, name, kind)
	case kind.IsReference() && d.target == "":
		return nil, fmt.Errorf("%w: %s property %q has no target entity", ErrInvalidDescriptor, kind, name)
	case !kind.IsReference() && d.target != "":
		return nil, fmt.Errorf("%w: %s property %q cannot target %q", ErrInvalidDescriptor, kind, name, d.target)
	}
	return d, nil
}

// MustNew is like New but panics on error. It is meant for
// statically generated descriptor tables.
func MustNew(name string, kind Kind, opts ...Option) *Descriptor {
	d, err := New(name, kind, opts...)
	if err != nil {
		panic(err)
	}
	return d
}

// Name returns the declared property name.
func (d *Descriptor) Name() string { return d.name }

// Kind returns the property kind.
func (d *Descriptor) Kind() Kind { return d.kind }

// TargetEntity returns the related entity type. The second result
// is true exactly when the property is a reference.
func (d *Descriptor) TargetEntity() (string, bool) {
	return d.target, d.kind.IsReference()
}

// Annotation returns the annotation the kind was derived from. It may be nil
// for descriptors built by hand.
func (d *Descriptor) Annotation() schema.Annotation { return d.annotation }

// Extras returns a copy of the non-defining annotations keyed by name.
func (d *Descriptor) Extras() map[string]schema.Annotation {
	return maps.Clone(d.extras)
}

// Extra returns the non-defining annotation with the given name.
func (d *Descriptor) Extra(name string) (schema.Annotation, bool) {
	a, ok := d.extras[name]
	return a, ok
}

// String implements fmt.Stringer.
func (d *Descriptor) String() string {
	if d.kind.IsReference() {
		return fmt.Sprintf("%s(%s -> %s)", d.kind, d.name, d.target)
	}
	return fmt.Sprintf("%s(%s)", d.kind, d.name)
}
