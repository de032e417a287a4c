package graphql

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"

	"github.com/syssam/entityreader/export"
	"github.com/syssam/entityreader/property"
	"github.com/syssam/entityreader/schema"
)

// builtin GraphQL scalars; any other scalar name is declared.
var builtin = map[string]bool{"ID": true, "String": true, "Int": true, "Float": true, "Boolean": true}

// SDL renders the snapshot as a GraphQL schema document.
func SDL(snap *export.Snapshot, opts ...Option) (string, error) {
	doc, err := Document(snap, opts...)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	formatter.NewFormatter(&b, formatter.WithIndent("  ")).FormatSchemaDocument(doc)
	return b.String(), nil
}

// Document builds the schema document for the snapshot. References to
// entity types missing from the snapshot are reported as errors.
func Document(snap *export.Snapshot, opts ...Option) (*ast.SchemaDocument, error) {
	cfg := config{scalars: maps.Clone(defaultScalars)}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	b := &builder{cfg: cfg, snap: snap, scalars: make(map[string]bool)}
	doc := &ast.SchemaDocument{}
	for _, e := range snap.Entities {
		def, err := b.object(e)
		if err != nil {
			return nil, err
		}
		doc.Definitions = append(doc.Definitions, def)
	}
	var head ast.DefinitionList
	if cfg.node {
		head = append(head, &ast.Definition{
			Kind:   ast.Interface,
			Name:   "Node",
			Fields: ast.FieldList{{Name: "id", Type: ast.NonNullNamedType("ID", nil)}},
		})
	}
	for _, name := range slices.Sorted(maps.Keys(b.scalars)) {
		head = append(head, &ast.Definition{Kind: ast.Scalar, Name: name})
	}
	doc.Definitions = append(head, doc.Definitions...)
	return doc, nil
}

type builder struct {
	cfg     config
	snap    *export.Snapshot
	scalars map[string]bool
}

func (b *builder) object(e export.Entity) (*ast.Definition, error) {
	def := &ast.Definition{Kind: ast.Object, Name: e.Name}
	for _, p := range e.Properties {
		typ, err := b.fieldType(e.Name, p)
		if err != nil {
			return nil, err
		}
		def.Fields = append(def.Fields, &ast.FieldDefinition{
			Name:        p.Name,
			Description: description(p),
			Type:        typ,
		})
		if b.cfg.node && p.Name == "id" && p.Kind == property.Identifier.String() {
			def.Interfaces = []string{"Node"}
		}
	}
	return def, nil
}

func (b *builder) fieldType(entity string, p export.Property) (*ast.Type, error) {
	kind, err := property.ParseKind(p.Kind)
	if err != nil {
		return nil, fmt.Errorf("graphql: %s.%s: %w", entity, p.Name, err)
	}
	switch kind {
	case property.Identifier:
		return ast.NonNullNamedType("ID", nil), nil
	case property.Column:
		name := b.scalar(p.Annotation.Attrs["type"])
		if p.Annotation.Attrs["nullable"] == "true" {
			return ast.NamedType(name, nil), nil
		}
		return ast.NonNullNamedType(name, nil), nil
	}
	if _, ok := b.snap.Entity(p.Target); !ok {
		return nil, fmt.Errorf("graphql: %s.%s: target entity %q is not part of the snapshot", entity, p.Name, p.Target)
	}
	if kind == property.ReferenceOne {
		return ast.NamedType(p.Target, nil), nil
	}
	return ast.NonNullListType(ast.NonNullNamedType(p.Target, nil), nil), nil
}

// scalar resolves a Column type, defaulting to String.
func (b *builder) scalar(columnType string) string {
	name, ok := b.cfg.scalars[strings.ToLower(columnType)]
	if !ok {
		return "String"
	}
	if !builtin[name] {
		b.scalars[name] = true
	}
	return name
}

func description(p export.Property) string {
	for _, a := range p.Extras {
		if a.Tag == (schema.CommentAnnotation{}).Name() {
			return a.Attrs["text"]
		}
	}
	return ""
}
