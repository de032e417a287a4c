// Package structtag implements a reader.Source over Go struct types whose
// fields carry `orm` tags.
//
//	type Employee struct {
//	    ID       int       `orm:"id;column,type=integer;generated_value,strategy=AUTO"`
//	    Name     string    `orm:"column,type=string,length=120;comment=Full name"`
//	    Company  *Company  `orm:"many_to_one,target=Company,inversed_by=employees"`
//	    Projects []Project `orm:"many_to_many,target=Project,join_table=employee_projects"`
//	    cache    string    // unexported fields are not properties
//	    Scratch  string    `orm:"-"`
//	}
//
// A tag holds annotations separated by ";". Each annotation is a tag name
// followed by comma separated key=value pairs or flags. Two segments are
// special: "name=..." overrides the property name and "comment=..." attaches
// a comment. Property names default to the field name in lower camel case.
//
// Exported fields without a tag are still declared properties; extraction
// reports them as unclassified.
package structtag

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-openapi/inflect"

	"github.com/syssam/entityreader"
	"github.com/syssam/entityreader/reader"
	"github.com/syssam/entityreader/schema"
)

// DefaultTagKey is the struct tag key read by default.
const DefaultTagKey = "orm"

// Source enumerates the fields of registered struct types.
// It is immutable after New and safe for concurrent use.
type Source struct {
	tagKey   string
	types    map[string]reflect.Type
	fields   map[string][]structField
	entities []string
}

type structField struct {
	name  string // property name
	tag   string // raw tag value
	index []int  // path for reflect.Value.FieldByIndex
}

type config struct {
	tagKey string
	values []any
}

// Option configures a Source.
type Option func(*config) error

// WithEntity registers struct types by example value. Pointers are
// dereferenced; the entity name is the Go type name.
func WithEntity(values ...any) Option {
	return func(c *config) error {
		c.values = append(c.values, values...)
		return nil
	}
}

// WithTagKey sets the struct tag key, "orm" by default.
func WithTagKey(key string) Option {
	return func(c *config) error {
		if key == "" {
			return entityreader.NewConfigError("TagKey", nil, "tag key cannot be empty")
		}
		c.tagKey = key
		return nil
	}
}

// New returns a Source for the registered struct types.
func New(opts ...Option) (*Source, error) {
	cfg := config{tagKey: DefaultTagKey}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	s := &Source{
		tagKey: cfg.tagKey,
		types:  make(map[string]reflect.Type),
		fields: make(map[string][]structField),
	}
	for _, v := range cfg.values {
		t := indirect(reflect.TypeOf(v))
		if t == nil || t.Kind() != reflect.Struct {
			return nil, entityreader.NewConfigError("Entity", fmt.Sprintf("%T", v), "entity must be a struct or a pointer to a struct")
		}
		if _, ok := s.types[t.Name()]; ok {
			return nil, entityreader.NewConfigError("Entity", t.Name(), "entity registered twice")
		}
		s.types[t.Name()] = t
		s.fields[t.Name()] = s.collect(t, nil)
		s.entities = append(s.entities, t.Name())
	}
	return s, nil
}

// Entities returns the registered entity names in registration order.
func (s *Source) Entities() []string {
	return append([]string(nil), s.entities...)
}

// Properties implements reader.Enumerator.
func (s *Source) Properties(entity string) ([]reader.Handle, error) {
	fields, ok := s.fields[entity]
	if !ok {
		return nil, entityreader.UnknownEntityError(entity)
	}
	handles := make([]reader.Handle, len(fields))
	for i, f := range fields {
		handles[i] = reader.Handle{Entity: entity, Name: f.name, Index: i}
	}
	return handles, nil
}

// Annotations implements reader.AnnotationReader.
func (s *Source) Annotations(h reader.Handle) ([]schema.Annotation, error) {
	fields, ok := s.fields[h.Entity]
	if !ok {
		return nil, entityreader.UnknownEntityError(h.Entity)
	}
	if h.Index < 0 || h.Index >= len(fields) || fields[h.Index].name != h.Name {
		return nil, fmt.Errorf("entity %q: no property %q at index %d", h.Entity, h.Name, h.Index)
	}
	anns, _, err := parseTag(fields[h.Index].tag)
	if err != nil {
		return nil, annotateError(err, h)
	}
	return anns, nil
}

// Values returns the property values of an entity instance keyed by
// property name. v must be a registered struct type or a pointer to one.
func (s *Source) Values(v any) (map[string]any, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("structtag: nil %T", v)
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil, fmt.Errorf("structtag: invalid value")
	}
	fields, ok := s.fields[rv.Type().Name()]
	if !ok || s.types[rv.Type().Name()] != rv.Type() {
		return nil, entityreader.UnknownEntityError(rv.Type().String())
	}
	values := make(map[string]any, len(fields))
	for _, f := range fields {
		fv, err := rv.FieldByIndexErr(f.index)
		if err != nil {
			// Nil embedded pointer: the promoted field has no value.
			values[f.name] = nil
			continue
		}
		values[f.name] = fv.Interface()
	}
	return values, nil
}

// collect walks the exported fields of t, flattening anonymous structs.
func (s *Source) collect(t reflect.Type, parent []int) []structField {
	var fields []structField
	for i := range t.NumField() {
		sf := t.Field(i)
		tag, tagged := sf.Tag.Lookup(s.tagKey)
		if tag == "-" {
			continue
		}
		index := append(append([]int(nil), parent...), i)
		if sf.Anonymous && !tagged {
			if et := indirect(sf.Type); et.Kind() == reflect.Struct {
				fields = append(fields, s.collect(et, index)...)
				continue
			}
		}
		if !sf.IsExported() {
			continue
		}
		name := propertyName(sf.Name)
		if _, override, err := parseTag(tag); err == nil && override != "" {
			name = override
		}
		fields = append(fields, structField{name: name, tag: tag, index: index})
	}
	return fields
}

// propertyName converts a Go field name to a lower camel case property name.
func propertyName(field string) string {
	if field == strings.ToUpper(field) {
		return strings.ToLower(field)
	}
	return inflect.CamelizeDownFirst(field)
}

func indirect(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

func annotateError(err error, h reader.Handle) error {
	if ae, ok := err.(*entityreader.AnnotationError); ok {
		ae.Entity, ae.Property = h.Entity, h.Name
		return ae
	}
	return fmt.Errorf("entity %q property %q: %w", h.Entity, h.Name, err)
}
