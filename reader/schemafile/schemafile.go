// Package schemafile implements a reader.Source over entity declarations
// kept in a YAML (or JSON) document:
//
//	entities:
//	  - name: Company
//	    properties:
//	      - name: id
//	        annotations:
//	          - {tag: Id}
//	          - {tag: Column, type: integer}
//	      - name: name
//	        comment: Legal name
//	        annotations:
//	          - {tag: Column, type: string, length: 255}
//	      - name: employees
//	        annotations:
//	          - {tag: OneToMany, targetEntity: Employee, mappedBy: company}
//
// Annotation keys other than "tag" are passed to reader.NewAnnotation.
package schemafile

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/syssam/entityreader"
	"github.com/syssam/entityreader/reader"
	"github.com/syssam/entityreader/schema"
)

// File is a parsed schema document. It is immutable and safe for concurrent use.
type File struct {
	Path     string
	entities map[string]*entity
	order    []string
}

type entity struct {
	name       string
	properties []prop
}

type prop struct {
	name string
	anns []schema.Annotation
}

// document mirrors the YAML layout.
type document struct {
	Entities []entityDecl `yaml:"entities"`
}

type entityDecl struct {
	Name       string         `yaml:"name"`
	Properties []propertyDecl `yaml:"properties"`
}

type propertyDecl struct {
	Name        string           `yaml:"name"`
	Comment     string           `yaml:"comment,omitempty"`
	Annotations []map[string]any `yaml:"annotations"`
}

// Load reads and parses the schema document at path.
func Load(path string) (*File, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schemafile: %w", err)
	}
	f, err := Parse(buf)
	if err != nil {
		return nil, fmt.Errorf("schemafile %s: %w", path, err)
	}
	f.Path = path
	return f, nil
}

// Parse parses a schema document. Annotations are built eagerly, so a
// malformed annotation fails here rather than during extraction.
func Parse(buf []byte) (*File, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(buf))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	f := &File{entities: make(map[string]*entity, len(doc.Entities))}
	for _, ed := range doc.Entities {
		if ed.Name == "" {
			return nil, entityreader.NewConfigError("entities.name", nil, "entity name cannot be empty")
		}
		if _, ok := f.entities[ed.Name]; ok {
			return nil, entityreader.NewConfigError("entities.name", ed.Name, "entity declared twice")
		}
		e := &entity{name: ed.Name}
		for _, pd := range ed.Properties {
			p, err := newProp(ed.Name, pd)
			if err != nil {
				return nil, err
			}
			e.properties = append(e.properties, p)
		}
		f.entities[ed.Name] = e
		f.order = append(f.order, ed.Name)
	}
	return f, nil
}

func newProp(entityName string, pd propertyDecl) (prop, error) {
	if pd.Name == "" {
		return prop{}, entityreader.NewAnnotationError(entityName, "", "", "property name cannot be empty", nil)
	}
	p := prop{name: pd.Name}
	for _, decl := range pd.Annotations {
		tag, attrs := splitDecl(decl)
		ann, err := reader.NewAnnotation(tag, attrs)
		if err != nil {
			if ae, ok := err.(*entityreader.AnnotationError); ok {
				ae.Entity, ae.Property = entityName, pd.Name
			}
			return prop{}, err
		}
		p.anns = append(p.anns, ann)
	}
	if pd.Comment != "" {
		p.anns = append(p.anns, schema.Comment(pd.Comment))
	}
	return p, nil
}

// splitDecl separates the tag from the attributes of an annotation entry.
// Attribute values are stringified; YAML numbers and booleans are accepted.
func splitDecl(decl map[string]any) (string, map[string]string) {
	tag := fmt.Sprint(decl["tag"])
	attrs := make(map[string]string, len(decl))
	for k, v := range decl {
		if k == "tag" {
			continue
		}
		attrs[k] = fmt.Sprint(v)
	}
	return tag, attrs
}

// Entities returns the declared entity names in declaration order.
func (f *File) Entities() []string {
	return append([]string(nil), f.order...)
}

// Properties implements reader.Enumerator.
func (f *File) Properties(name string) ([]reader.Handle, error) {
	e, ok := f.entities[name]
	if !ok {
		return nil, entityreader.UnknownEntityError(name)
	}
	handles := make([]reader.Handle, len(e.properties))
	for i, p := range e.properties {
		handles[i] = reader.Handle{Entity: name, Name: p.name, Index: i}
	}
	return handles, nil
}

// Annotations implements reader.AnnotationReader.
func (f *File) Annotations(h reader.Handle) ([]schema.Annotation, error) {
	e, ok := f.entities[h.Entity]
	if !ok {
		return nil, entityreader.UnknownEntityError(h.Entity)
	}
	if h.Index < 0 || h.Index >= len(e.properties) || e.properties[h.Index].name != h.Name {
		return nil, fmt.Errorf("entity %q: no property %q at index %d", h.Entity, h.Name, h.Index)
	}
	return append([]schema.Annotation(nil), e.properties[h.Index].anns...), nil
}
