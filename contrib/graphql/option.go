package graphql

import (
	"strings"

	"github.com/syssam/entityreader"
)

type config struct {
	scalars map[string]string
	node    bool
}

// Option configures SDL rendering.
type Option func(*config) error

// WithScalar maps a Column type to a GraphQL type name, overriding the
// built-in mapping. Unknown GraphQL names are declared as custom scalars.
func WithScalar(columnType, gqlType string) Option {
	return func(c *config) error {
		if columnType == "" || gqlType == "" {
			return entityreader.NewConfigError("Scalar", columnType+"="+gqlType, "column type and GraphQL type are required")
		}
		c.scalars[strings.ToLower(columnType)] = gqlType
		return nil
	}
}

// WithNode declares the Relay Node interface and makes every entity with an
// "id" identifier implement it.
func WithNode() Option {
	return func(c *config) error {
		c.node = true
		return nil
	}
}

// defaultScalars maps Column types to GraphQL types.
var defaultScalars = map[string]string{
	"string":     "String",
	"text":       "String",
	"guid":       "ID",
	"uuid":       "ID",
	"integer":    "Int",
	"int":        "Int",
	"smallint":   "Int",
	"bigint":     "Int",
	"float":      "Float",
	"decimal":    "Float",
	"boolean":    "Boolean",
	"bool":       "Boolean",
	"date":       "Time",
	"time":       "Time",
	"datetime":   "Time",
	"datetimetz": "Time",
}
