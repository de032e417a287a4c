package schemafile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/entityreader"
	"github.com/syssam/entityreader/property"
	"github.com/syssam/entityreader/reader"
	"github.com/syssam/entityreader/reader/schemafile"
	"github.com/syssam/entityreader/schema"
	"github.com/syssam/entityreader/schema/edge"
	"github.com/syssam/entityreader/schema/field"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	f, err := schemafile.Load("testdata/company.yaml")
	require.NoError(t, err)
	assert.Equal(t, "testdata/company.yaml", f.Path)
	assert.Equal(t, []string{"Company", "Employee", "Project"}, f.Entities())

	handles, err := f.Properties("Company")
	require.NoError(t, err)
	require.Len(t, handles, 4)
	assert.Equal(t, reader.Handle{Entity: "Company", Name: "foundedAt", Index: 2}, handles[2])

	anns, err := f.Annotations(handles[1])
	require.NoError(t, err)
	assert.Equal(t, []schema.Annotation{
		&field.Column{Type: "string", Length: 255, Unique: true},
		schema.Comment("Legal name"),
	}, anns)

	handles, err = f.Properties("Employee")
	require.NoError(t, err)
	anns, err = f.Annotations(handles[3])
	require.NoError(t, err)
	assert.Equal(t, []schema.Annotation{
		&edge.ManyToOne{TargetEntity: "Company", InversedBy: "employees"},
	}, anns)
}

func TestExtract(t *testing.T) {
	t.Parallel()

	f, err := schemafile.Load("testdata/company.yaml")
	require.NoError(t, err)
	r, err := reader.New(f)
	require.NoError(t, err)

	want := map[string]map[string]property.Kind{
		"Company": {
			"id":        property.Identifier,
			"name":      property.Column,
			"foundedAt": property.Column,
			"employees": property.ReferenceMany,
		},
		"Employee": {
			"id":       property.Identifier,
			"name":     property.Column,
			"active":   property.Column,
			"company":  property.ReferenceOne,
			"projects": property.ReferenceMany,
		},
		"Project": {
			"id":      property.Identifier,
			"title":   property.Column,
			"members": property.ReferenceMany,
		},
	}
	for entity, kinds := range want {
		t.Run(entity, func(t *testing.T) {
			descs, err := r.Extract(entity)
			require.NoError(t, err)
			require.Len(t, descs, len(kinds))
			for name, kind := range kinds {
				assert.Equal(t, kind, descs[name].Kind(), name)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
		is   error
	}{
		{
			name: "unknown_tag",
			doc: `
entities:
  - name: Company
    properties:
      - name: id
        annotations: [{tag: Embedded}]
`,
			is: entityreader.ErrInvalidAnnotation,
		},
		{
			name: "unknown_attribute",
			doc: `
entities:
  - name: Company
    properties:
      - name: name
        annotations: [{tag: Column, precision: 2}]
`,
			is: entityreader.ErrInvalidAnnotation,
		},
		{
			name: "unnamed_property",
			doc: `
entities:
  - name: Company
    properties:
      - annotations: [{tag: Column}]
`,
			is: entityreader.ErrInvalidAnnotation,
		},
		{
			name: "unnamed_entity",
			doc: `
entities:
  - properties: []
`,
			is: entityreader.ErrInvalidConfig,
		},
		{
			name: "duplicate_entity",
			doc: `
entities:
  - name: Company
  - name: Company
`,
			is: entityreader.ErrInvalidConfig,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := schemafile.Parse([]byte(tt.doc))
			assert.ErrorIs(t, err, tt.is)
		})
	}

	t.Run("unknown_field", func(t *testing.T) {
		_, err := schemafile.Parse([]byte("entities:\n  - name: Company\n    table: companies\n"))
		assert.Error(t, err)
	})

	t.Run("annotation_error_names_property", func(t *testing.T) {
		_, err := schemafile.Parse([]byte(tests[0].doc))
		var ae *entityreader.AnnotationError
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, "Company", ae.Entity)
		assert.Equal(t, "id", ae.Property)
	})

	t.Run("missing_file", func(t *testing.T) {
		_, err := schemafile.Load("testdata/missing.yaml")
		assert.Error(t, err)
	})
}

func TestExtractFailures(t *testing.T) {
	t.Parallel()

	f, err := schemafile.Parse([]byte(`
entities:
  - name: Company
    properties:
      - name: id
        annotations: [{tag: Id}]
      - name: notes
        comment: free text
      - name: id
        annotations: [{tag: Column}]
`))
	require.NoError(t, err)

	_, err = reader.Extract(f, "Company")
	var missing *entityreader.MissingClassificationError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "notes", missing.Property)

	_, err = reader.Extract(f, "Ghost")
	assert.ErrorIs(t, err, entityreader.ErrUnknownEntity)
}

func TestJSONDocument(t *testing.T) {
	t.Parallel()

	f, err := schemafile.Parse([]byte(`{"entities": [{"name": "Tag", "properties": [` +
		`{"name": "id", "annotations": [{"tag": "Id"}]}, ` +
		`{"name": "posts", "annotations": [{"tag": "ManyToMany", "targetEntity": "Post"}]}` +
		`]}]}`))
	require.NoError(t, err)

	descs, err := reader.Extract(f, "Tag")
	require.NoError(t, err)
	target, ok := descs["posts"].TargetEntity()
	assert.True(t, ok)
	assert.Equal(t, "Post", target)
}
