package edge

import "github.com/syssam/entityreader/schema"

// ManyToOne describes a single-valued association where many entities of the
// annotated type reference one target entity.
type ManyToOne struct {
	TargetEntity string
	InversedBy   string
}

// Name describes the annotation name.
func (ManyToOne) Name() string { return schema.TagManyToOne }

// Target implements the schema.Relation interface.
func (e ManyToOne) Target() string { return e.TargetEntity }

// Attrs implements the schema.Attributer interface.
func (e ManyToOne) Attrs() map[string]string {
	return attrs(e.TargetEntity, "", e.InversedBy, "")
}

// OneToOne describes a single-valued association to exactly one target entity.
type OneToOne struct {
	TargetEntity string
	MappedBy     string
	InversedBy   string
}

// Name describes the annotation name.
func (OneToOne) Name() string { return schema.TagOneToOne }

// Target implements the schema.Relation interface.
func (e OneToOne) Target() string { return e.TargetEntity }

// Attrs implements the schema.Attributer interface.
func (e OneToOne) Attrs() map[string]string {
	return attrs(e.TargetEntity, e.MappedBy, e.InversedBy, "")
}

// ManyToMany describes a collection association through a join table.
type ManyToMany struct {
	TargetEntity string
	MappedBy     string
	InversedBy   string
	JoinTable    string
}

// Name describes the annotation name.
func (ManyToMany) Name() string { return schema.TagManyToMany }

// Target implements the schema.Relation interface.
func (e ManyToMany) Target() string { return e.TargetEntity }

// Attrs implements the schema.Attributer interface.
func (e ManyToMany) Attrs() map[string]string {
	return attrs(e.TargetEntity, e.MappedBy, e.InversedBy, e.JoinTable)
}

// OneToMany describes the inverse, collection side of a ManyToOne association.
type OneToMany struct {
	TargetEntity string
	MappedBy     string
}

// Name describes the annotation name.
func (OneToMany) Name() string { return schema.TagOneToMany }

// Target implements the schema.Relation interface.
func (e OneToMany) Target() string { return e.TargetEntity }

// Attrs implements the schema.Attributer interface.
func (e OneToMany) Attrs() map[string]string {
	return attrs(e.TargetEntity, e.MappedBy, "", "")
}

func attrs(target, mappedBy, inversedBy, joinTable string) map[string]string {
	m := map[string]string{"targetEntity": target}
	if mappedBy != "" {
		m["mappedBy"] = mappedBy
	}
	if inversedBy != "" {
		m["inversedBy"] = inversedBy
	}
	if joinTable != "" {
		m["joinTable"] = joinTable
	}
	return m
}

var (
	_ schema.Relation = (*ManyToOne)(nil)
	_ schema.Relation = (*OneToOne)(nil)
	_ schema.Relation = (*ManyToMany)(nil)
	_ schema.Relation = (*OneToMany)(nil)
)
