// Package edge provides the relation annotations for entity properties.
//
// Relations connect a property to another entity type. The cardinality of the
// annotation decides how the property is classified:
//
//   - ManyToOne, OneToOne: single reference, the value is one entity
//   - ManyToMany, OneToMany: multi-valued reference, the value is a collection
//
// # Bidirectional Relations
//
// Both sides of an association carry their own annotation. The owning side
// names the inverse property with InversedBy, the inverse side names the
// owning property with MappedBy:
//
//	// Employee.company
//	&edge.ManyToOne{TargetEntity: "Company", InversedBy: "employees"}
//
//	// Company.employees
//	&edge.OneToMany{TargetEntity: "Employee", MappedBy: "company"}
//
// # Join Tables
//
// ManyToMany relations may name their join table:
//
//	&edge.ManyToMany{TargetEntity: "Project", JoinTable: "employee_projects"}
package edge
