// Package schema defines the annotations that describe entity properties.
//
// An entity property is described by one or more annotations. Structural
// annotations decide how a property is classified; every other annotation is
// carried along as metadata. The structural vocabulary is closed:
//
//   - [field]: Id and Column annotations for plain values
//   - [edge]: ManyToOne, OneToOne, ManyToMany and OneToMany relations
//
// # Quick Start
//
// Annotations are plain values and can be attached to a property by any
// source that implements the reader collaborators:
//
//	[]schema.Annotation{
//	    &field.ID{},
//	    &field.Column{Type: "integer"},
//	}
//
//	[]schema.Annotation{
//	    &edge.ManyToOne{TargetEntity: "Company", InversedBy: "employees"},
//	}
//
// # Relations
//
// Relation annotations implement [Relation] and name the entity type on the
// other side of the association. The target is trusted as given; whether the
// named type exists is not checked here.
//
// # Comments
//
// [Comment] attaches free text to a property. Repeated comments on the same
// property are merged through the [Merger] interface.
package schema
