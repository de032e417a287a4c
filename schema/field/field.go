// Package field provides the annotations for plain-valued entity properties.
//
//	&field.ID{}                                    // identifier
//	&field.Column{Type: "string", Length: 255}     // scalar column
//	&field.GeneratedValue{Strategy: "AUTO"}        // metadata only
package field

import (
	"strconv"

	"github.com/syssam/entityreader/schema"
)

// ID marks the identifier property of an entity.
type ID struct{}

// Name describes the annotation name.
func (ID) Name() string {
	return schema.TagID
}

// Attrs implements the schema.Attributer interface.
func (ID) Attrs() map[string]string {
	return map[string]string{}
}

// Column describes a property mapped to a scalar column. The fields are
// retained as metadata only and are not interpreted during classification.
type Column struct {
	ColumnName string // storage name, empty means the property name
	Type       string // column type, e.g. "string", "integer", "datetime"
	Length     int
	Nullable   bool
	Unique     bool
}

// Name describes the annotation name.
func (Column) Name() string {
	return schema.TagColumn
}

// Attrs implements the schema.Attributer interface.
func (c Column) Attrs() map[string]string {
	attrs := make(map[string]string)
	if c.ColumnName != "" {
		attrs["name"] = c.ColumnName
	}
	if c.Type != "" {
		attrs["type"] = c.Type
	}
	if c.Length != 0 {
		attrs["length"] = strconv.Itoa(c.Length)
	}
	if c.Nullable {
		attrs["nullable"] = "true"
	}
	if c.Unique {
		attrs["unique"] = "true"
	}
	return attrs
}

// GeneratedValue describes how identifiers are generated. It is not a
// structural annotation.
type GeneratedValue struct {
	Strategy string
}

// Name describes the annotation name.
func (GeneratedValue) Name() string {
	return "GeneratedValue"
}

// Attrs implements the schema.Attributer interface.
func (g GeneratedValue) Attrs() map[string]string {
	if g.Strategy == "" {
		return map[string]string{}
	}
	return map[string]string{"strategy": g.Strategy}
}

var (
	_ schema.Annotation = (*ID)(nil)
	_ schema.Annotation = (*Column)(nil)
	_ schema.Annotation = (*GeneratedValue)(nil)
	_ schema.Attributer = (*ID)(nil)
	_ schema.Attributer = (*Column)(nil)
	_ schema.Attributer = (*GeneratedValue)(nil)
)
