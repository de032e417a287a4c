package reader

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/syssam/entityreader"
	"github.com/syssam/entityreader/schema"
	"github.com/syssam/entityreader/schema/edge"
	"github.com/syssam/entityreader/schema/field"
)

// canonical folds a tag or attribute key: "many_to_one", "ManyToOne"
// and "manytoone" all fold to the same key.
func canonical(s string) string {
	return strings.ToLower(strings.NewReplacer("_", "", "-", "").Replace(strings.TrimSpace(s)))
}

// tagNames maps folded spellings to annotation names.
var tagNames = map[string]string{
	"id":             schema.TagID,
	"column":         schema.TagColumn,
	"manytoone":      schema.TagManyToOne,
	"onetoone":       schema.TagOneToOne,
	"manytomany":     schema.TagManyToMany,
	"onetomany":      schema.TagOneToMany,
	"generatedvalue": "GeneratedValue",
	"comment":        "Comment",
}

// TagName returns the annotation name for one of the accepted spellings
// of a tag, e.g. "many_to_one" or "ManyToOne".
func TagName(tag string) (string, bool) {
	name, ok := tagNames[canonical(tag)]
	return name, ok
}

// NewAnnotation builds an annotation from its tag and attributes. Tags and
// keys are accepted in snake_case or camelCase. Flags such as "nullable"
// take the values accepted by strconv.ParseBool; an empty value means true.
func NewAnnotation(tag string, attrs map[string]string) (schema.Annotation, error) {
	name, ok := TagName(tag)
	if !ok {
		return nil, entityreader.NewAnnotationError("", "", tag, "unknown annotation", nil)
	}
	a := &attrReader{tag: name, attrs: make(map[string]string, len(attrs))}
	for k, v := range attrs {
		a.attrs[canonical(k)] = v
	}
	var ant schema.Annotation
	switch name {
	case schema.TagID:
		ant = &field.ID{}
	case schema.TagColumn:
		ant = &field.Column{
			ColumnName: a.str("name"),
			Type:       a.str("type"),
			Length:     a.int("length"),
			Nullable:   a.bool("nullable"),
			Unique:     a.bool("unique"),
		}
	case "GeneratedValue":
		ant = &field.GeneratedValue{Strategy: a.str("strategy")}
	case "Comment":
		ant = schema.Comment(a.str("text"))
	case schema.TagManyToOne:
		ant = &edge.ManyToOne{
			TargetEntity: a.target(),
			InversedBy:   a.str("inversedby"),
		}
	case schema.TagOneToOne:
		ant = &edge.OneToOne{
			TargetEntity: a.target(),
			MappedBy:     a.str("mappedby"),
			InversedBy:   a.str("inversedby"),
		}
	case schema.TagManyToMany:
		ant = &edge.ManyToMany{
			TargetEntity: a.target(),
			MappedBy:     a.str("mappedby"),
			InversedBy:   a.str("inversedby"),
			JoinTable:    a.str("jointable"),
		}
	case schema.TagOneToMany:
		ant = &edge.OneToMany{
			TargetEntity: a.target(),
			MappedBy:     a.str("mappedby"),
		}
	}
	if err := a.done(); err != nil {
		return nil, err
	}
	return ant, nil
}

// attrReader consumes attributes and records the first conversion error.
type attrReader struct {
	tag   string
	attrs map[string]string
	err   error
}

func (a *attrReader) str(key string) string {
	v := a.attrs[key]
	delete(a.attrs, key)
	return v
}

func (a *attrReader) target() string {
	if v, ok := a.attrs["target"]; ok {
		delete(a.attrs, "target")
		return v
	}
	return a.str("targetentity")
}

func (a *attrReader) int(key string) int {
	v, ok := a.attrs[key]
	if !ok {
		return 0
	}
	delete(a.attrs, key)
	n, err := strconv.Atoi(v)
	if err != nil && a.err == nil {
		a.err = entityreader.NewAnnotationError("", "", a.tag, fmt.Sprintf("attribute %q", key), err)
	}
	return n
}

func (a *attrReader) bool(key string) bool {
	v, ok := a.attrs[key]
	if !ok {
		return false
	}
	delete(a.attrs, key)
	if v == "" {
		return true
	}
	b, err := strconv.ParseBool(v)
	if err != nil && a.err == nil {
		a.err = entityreader.NewAnnotationError("", "", a.tag, fmt.Sprintf("attribute %q", key), err)
	}
	return b
}

// done reports conversion errors and attributes left unconsumed.
func (a *attrReader) done() error {
	if a.err != nil {
		return a.err
	}
	if len(a.attrs) > 0 {
		keys := slices.Sorted(maps.Keys(a.attrs))
		return entityreader.NewAnnotationError("", "", a.tag,
			fmt.Sprintf("unknown attributes %s", strings.Join(keys, ", ")), nil)
	}
	return nil
}
