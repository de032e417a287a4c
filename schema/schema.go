package schema

import "strings"

// Tags of the structural annotations. An annotation's Name is its tag.
const (
	TagID         = "Id"
	TagColumn     = "Column"
	TagManyToOne  = "ManyToOne"
	TagOneToOne   = "OneToOne"
	TagManyToMany = "ManyToMany"
	TagOneToMany  = "OneToMany"
)

// Annotation is attached to an entity property.
type Annotation interface {
	// Name returns the annotation tag. Annotations with the same
	// name on one property are merged when they implement Merger.
	Name() string
}

// Merger wraps the single Merge function allows custom annotation to provide
// an implementation for merging 2 or more annotations from the same type.
type Merger interface {
	Merge(Annotation) Annotation
}

// Relation is implemented by annotations that associate a property
// with another entity type.
type Relation interface {
	Annotation
	// Target returns the name of the related entity type.
	Target() string
}

// Attributer is implemented by annotations that can describe themselves as a
// flat attribute set. The keys match the ones accepted by the annotation parsers.
type Attributer interface {
	Attrs() map[string]string
}

// Structural reports whether the tag is one of the structural annotation tags.
func Structural(tag string) bool {
	switch tag {
	case TagID, TagColumn, TagManyToOne, TagOneToOne, TagManyToMany, TagOneToMany:
		return true
	}
	return false
}

// CommentAnnotation is a builtin schema annotation for
// attaching free text to a property.
type CommentAnnotation struct {
	Text string
}

// Name describes the annotation name.
func (CommentAnnotation) Name() string {
	return "Comment"
}

// Attrs implements the Attributer interface.
func (c CommentAnnotation) Attrs() map[string]string {
	return map[string]string{"text": c.Text}
}

// Merge implements the Merger interface. Texts are joined line by line.
func (c CommentAnnotation) Merge(other Annotation) Annotation {
	var ant CommentAnnotation
	switch other := other.(type) {
	case CommentAnnotation:
		ant = other
	case *CommentAnnotation:
		if other != nil {
			ant = *other
		}
	default:
		return c
	}
	switch {
	case ant.Text == "":
	case c.Text == "":
		c.Text = ant.Text
	default:
		c.Text = strings.Join([]string{c.Text, ant.Text}, "\n")
	}
	return c
}

// Comment returns a new CommentAnnotation with the given text.
func Comment(text string) *CommentAnnotation {
	return &CommentAnnotation{Text: text}
}

var (
	_ Annotation = (*CommentAnnotation)(nil)
	_ Merger     = (*CommentAnnotation)(nil)
	_ Attributer = (*CommentAnnotation)(nil)
)
