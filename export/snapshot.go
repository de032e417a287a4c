// Package export serializes extracted descriptor sets.
//
// A Snapshot is a plain, sorted view of the descriptors of one or more
// entity types that can be encoded as JSON, YAML or MessagePack and turned
// back into descriptors later.
package export

import (
	"cmp"
	"fmt"
	"maps"
	"slices"

	"github.com/syssam/entityreader/property"
	"github.com/syssam/entityreader/reader"
	"github.com/syssam/entityreader/schema"
)

// Snapshot holds entity types sorted by name.
type Snapshot struct {
	Entities []Entity `json:"entities" yaml:"entities" msgpack:"entities"`
}

// Entity holds the properties of one entity type sorted by name.
type Entity struct {
	Name       string     `json:"name" yaml:"name" msgpack:"name"`
	Properties []Property `json:"properties" yaml:"properties" msgpack:"properties"`
}

// Property is the serialized form of a property.Descriptor.
type Property struct {
	Name       string       `json:"name" yaml:"name" msgpack:"name"`
	Kind       string       `json:"kind" yaml:"kind" msgpack:"kind"`
	Target     string       `json:"target,omitempty" yaml:"target,omitempty" msgpack:"target,omitempty"`
	Annotation Annotation   `json:"annotation" yaml:"annotation" msgpack:"annotation"`
	Extras     []Annotation `json:"extras,omitempty" yaml:"extras,omitempty" msgpack:"extras,omitempty"`
}

// Annotation is the serialized form of a schema.Annotation.
type Annotation struct {
	Tag   string            `json:"tag" yaml:"tag" msgpack:"tag"`
	Attrs map[string]string `json:"attrs,omitempty" yaml:"attrs,omitempty" msgpack:"attrs,omitempty"`
}

// NewSnapshot builds a snapshot from descriptor sets keyed by entity type.
func NewSnapshot(sets map[string]map[string]*property.Descriptor) *Snapshot {
	s := &Snapshot{Entities: make([]Entity, 0, len(sets))}
	for _, name := range slices.Sorted(maps.Keys(sets)) {
		e := Entity{Name: name, Properties: make([]Property, 0, len(sets[name]))}
		for _, pname := range slices.Sorted(maps.Keys(sets[name])) {
			e.Properties = append(e.Properties, newProperty(sets[name][pname]))
		}
		s.Entities = append(s.Entities, e)
	}
	return s
}

func newProperty(d *property.Descriptor) Property {
	p := Property{Name: d.Name(), Kind: d.Kind().String()}
	p.Target, _ = d.TargetEntity()
	if a := d.Annotation(); a != nil {
		p.Annotation = newAnnotation(a)
	}
	for _, a := range d.Extras() {
		p.Extras = append(p.Extras, newAnnotation(a))
	}
	slices.SortFunc(p.Extras, func(a, b Annotation) int { return cmp.Compare(a.Tag, b.Tag) })
	return p
}

func newAnnotation(a schema.Annotation) Annotation {
	ann := Annotation{Tag: a.Name()}
	if at, ok := a.(schema.Attributer); ok {
		if attrs := at.Attrs(); len(attrs) > 0 {
			ann.Attrs = maps.Clone(attrs)
		}
	}
	return ann
}

// Entity returns the entity with the given name.
func (s *Snapshot) Entity(name string) (Entity, bool) {
	i, ok := slices.BinarySearchFunc(s.Entities, name, func(e Entity, name string) int {
		return cmp.Compare(e.Name, name)
	})
	if !ok {
		return Entity{}, false
	}
	return s.Entities[i], true
}

// Descriptors rebuilds the descriptor sets of the snapshot. Annotations are
// rebuilt with reader.NewAnnotation, so only known tags are accepted.
func (s *Snapshot) Descriptors() (map[string]map[string]*property.Descriptor, error) {
	sets := make(map[string]map[string]*property.Descriptor, len(s.Entities))
	for _, e := range s.Entities {
		set := make(map[string]*property.Descriptor, len(e.Properties))
		for _, p := range e.Properties {
			d, err := p.descriptor()
			if err != nil {
				return nil, fmt.Errorf("export: entity %q property %q: %w", e.Name, p.Name, err)
			}
			set[p.Name] = d
		}
		sets[e.Name] = set
	}
	return sets, nil
}

func (p Property) descriptor() (*property.Descriptor, error) {
	kind, err := property.ParseKind(p.Kind)
	if err != nil {
		return nil, err
	}
	var opts []property.Option
	if p.Target != "" {
		opts = append(opts, property.WithTarget(p.Target))
	}
	if p.Annotation.Tag != "" {
		a, err := reader.NewAnnotation(p.Annotation.Tag, p.Annotation.Attrs)
		if err != nil {
			return nil, err
		}
		opts = append(opts, property.WithAnnotation(a))
	}
	for _, extra := range p.Extras {
		a, err := reader.NewAnnotation(extra.Tag, extra.Attrs)
		if err != nil {
			return nil, err
		}
		opts = append(opts, property.WithExtra(a))
	}
	return property.New(p.Name, kind, opts...)
}
