// Package reader classifies the declared properties of entity types.
//
// A Reader asks its Source for the properties of an entity type and for the
// annotations of each property, and turns them into property descriptors:
//
//	annotation            kind
//	Id                    property.Identifier
//	Column                property.Column
//	ManyToOne, OneToOne   property.ReferenceOne
//	ManyToMany, OneToMany property.ReferenceMany
//
// Annotations outside this table are kept on the descriptor as extras.
// A property without any of them fails with a MissingClassificationError.
//
// # Several Structural Annotations
//
// Id together with Column classifies the property as the identifier and
// keeps the Column annotation as an extra. Any other combination fails with
// an AmbiguousClassificationError, unless the Reader is built with
// WithLastWins, in which case the last annotation decides:
//
//	r, err := reader.New(src, reader.WithLastWins())
//
// # Sources
//
// Two sources are provided: structtag reads Go struct types and their `orm`
// tags, schemafile reads YAML declarations.
package reader
