package export_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/entityreader"
	"github.com/syssam/entityreader/export"
	"github.com/syssam/entityreader/property"
	"github.com/syssam/entityreader/reader"
	"github.com/syssam/entityreader/reader/schemafile"
	"github.com/syssam/entityreader/schema/field"
)

const doc = `
entities:
  - name: Employee
    properties:
      - name: id
        annotations:
          - {tag: Id}
          - {tag: Column, type: integer}
          - {tag: GeneratedValue, strategy: AUTO}
      - name: name
        comment: Full name
        annotations: [{tag: Column, type: string, length: 120, nullable: true}]
      - name: company
        annotations: [{tag: ManyToOne, targetEntity: Company, inversedBy: employees}]
  - name: Company
    properties:
      - name: id
        annotations: [{tag: Id}]
      - name: employees
        annotations: [{tag: OneToMany, targetEntity: Employee, mappedBy: company}]
`

func extractAll(t *testing.T) map[string]map[string]*property.Descriptor {
	t.Helper()
	f, err := schemafile.Parse([]byte(doc))
	require.NoError(t, err)
	r, err := reader.New(f)
	require.NoError(t, err)
	sets := make(map[string]map[string]*property.Descriptor)
	for _, entity := range f.Entities() {
		set, err := r.Extract(entity)
		require.NoError(t, err)
		sets[entity] = set
	}
	return sets
}

func TestNewSnapshot(t *testing.T) {
	t.Parallel()

	s := export.NewSnapshot(extractAll(t))
	require.Len(t, s.Entities, 2)
	assert.Equal(t, "Company", s.Entities[0].Name)
	assert.Equal(t, "Employee", s.Entities[1].Name)

	emp, ok := s.Entity("Employee")
	require.True(t, ok)
	assert.Equal(t, []export.Property{
		{
			Name:       "company",
			Kind:       "reference_one",
			Target:     "Company",
			Annotation: export.Annotation{Tag: "ManyToOne", Attrs: map[string]string{"targetEntity": "Company", "inversedBy": "employees"}},
		},
		{
			Name:       "id",
			Kind:       "identifier",
			Annotation: export.Annotation{Tag: "Id"},
			Extras: []export.Annotation{
				{Tag: "Column", Attrs: map[string]string{"type": "integer"}},
				{Tag: "GeneratedValue", Attrs: map[string]string{"strategy": "AUTO"}},
			},
		},
		{
			Name:       "name",
			Kind:       "column",
			Annotation: export.Annotation{Tag: "Column", Attrs: map[string]string{"type": "string", "length": "120", "nullable": "true"}},
			Extras:     []export.Annotation{{Tag: "Comment", Attrs: map[string]string{"text": "Full name"}}},
		},
	}, emp.Properties)

	_, ok = s.Entity("Ghost")
	assert.False(t, ok)
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	sets := extractAll(t)
	s := export.NewSnapshot(sets)
	for _, f := range export.Formats {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, s.Encode(&buf, f))

			got, err := export.Decode(&buf, f)
			require.NoError(t, err)
			assert.Equal(t, s, got)

			rebuilt, err := got.Descriptors()
			require.NoError(t, err)
			assert.Equal(t, sets, rebuilt)
		})
	}
}

func TestEncodeJSON(t *testing.T) {
	t.Parallel()

	s := export.NewSnapshot(map[string]map[string]*property.Descriptor{
		"Tag": {"id": property.MustNew("id", property.Identifier, property.WithAnnotation(&field.ID{}))},
	})
	var buf bytes.Buffer
	require.NoError(t, s.Encode(&buf, export.JSON))
	assert.JSONEq(t, `{"entities":[{"name":"Tag","properties":[{"name":"id","kind":"identifier","annotation":{"tag":"Id"}}]}]}`, buf.String())
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]export.Format{
		"json": export.JSON, "YAML": export.YAML, "yml": export.YAML,
		"msgpack": export.MsgPack, " mp ": export.MsgPack,
	} {
		got, err := export.ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := export.ParseFormat("xml")
	assert.ErrorIs(t, err, entityreader.ErrInvalidConfig)
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	_, err := export.Decode(strings.NewReader("{"), export.JSON)
	assert.Error(t, err)

	_, err = export.Decode(strings.NewReader("{}"), export.Format("xml"))
	assert.Error(t, err)

	s := &export.Snapshot{Entities: []export.Entity{{
		Name:       "Tag",
		Properties: []export.Property{{Name: "id", Kind: "primary"}},
	}}}
	_, err = s.Descriptors()
	assert.Error(t, err)

	s.Entities[0].Properties[0] = export.Property{Name: "id", Kind: "identifier", Annotation: export.Annotation{Tag: "Embedded"}}
	_, err = s.Descriptors()
	assert.ErrorIs(t, err, entityreader.ErrInvalidAnnotation)
}
