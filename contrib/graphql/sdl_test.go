package graphql_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/syssam/entityreader"
	"github.com/syssam/entityreader/contrib/graphql"
	"github.com/syssam/entityreader/export"
	"github.com/syssam/entityreader/property"
	"github.com/syssam/entityreader/reader"
	"github.com/syssam/entityreader/reader/schemafile"
)

const doc = `
entities:
  - name: Company
    properties:
      - name: id
        annotations: [{tag: Id}, {tag: Column, type: integer}]
      - name: name
        comment: Legal name
        annotations: [{tag: Column, type: string}]
      - name: foundedAt
        annotations: [{tag: Column, type: datetime, nullable: true}]
      - name: revenue
        annotations: [{tag: Column, type: decimal}]
      - name: employees
        annotations: [{tag: OneToMany, targetEntity: Employee, mappedBy: company}]
  - name: Employee
    properties:
      - name: id
        annotations: [{tag: Id}]
      - name: active
        annotations: [{tag: Column, type: boolean}]
      - name: company
        annotations: [{tag: ManyToOne, targetEntity: Company}]
`

func snapshot(t *testing.T, src string) *export.Snapshot {
	t.Helper()
	f, err := schemafile.Parse([]byte(src))
	require.NoError(t, err)
	r, err := reader.New(f)
	require.NoError(t, err)
	sets := make(map[string]map[string]*property.Descriptor)
	for _, entity := range f.Entities() {
		sets[entity], err = r.Extract(entity)
		require.NoError(t, err)
	}
	return export.NewSnapshot(sets)
}

func TestSDL(t *testing.T) {
	t.Parallel()

	sdl, err := graphql.SDL(snapshot(t, doc))
	require.NoError(t, err)

	for _, want := range []string{
		"scalar Time\n",
		"type Company {\n",
		"  id: ID!\n",
		"  name: String!\n",
		"  foundedAt: Time\n",
		"  revenue: Float!\n",
		"  employees: [Employee!]!\n",
		"type Employee {\n",
		"  active: Boolean!\n",
		"  company: Company\n",
		"  \"\"\"\n  Legal name\n  \"\"\"\n",
	} {
		assert.Contains(t, sdl, want)
	}
	assert.NotContains(t, sdl, "interface Node")

	parsed, err := parser.ParseSchema(&ast.Source{Name: "schema.graphql", Input: sdl})
	require.NoError(t, err)
	company := parsed.Definitions.ForName("Company")
	require.NotNil(t, company)
	assert.Len(t, company.Fields, 5)
	assert.Equal(t, "Legal name", company.Fields.ForName("name").Description)
}

func TestSDLOptions(t *testing.T) {
	t.Parallel()

	t.Run("node", func(t *testing.T) {
		sdl, err := graphql.SDL(snapshot(t, doc), graphql.WithNode())
		require.NoError(t, err)
		assert.Contains(t, sdl, "interface Node {\n  id: ID!\n}\n")
		assert.Contains(t, sdl, "type Company implements Node {\n")
		assert.Contains(t, sdl, "type Employee implements Node {\n")
	})

	t.Run("scalar", func(t *testing.T) {
		d, err := graphql.Document(snapshot(t, doc), graphql.WithScalar("decimal", "Decimal"))
		require.NoError(t, err)
		assert.NotNil(t, d.Definitions.ForName("Decimal"))
		assert.Equal(t, "Decimal!", d.Definitions.ForName("Company").Fields.ForName("revenue").Type.String())
	})

	t.Run("invalid_scalar", func(t *testing.T) {
		_, err := graphql.SDL(snapshot(t, doc), graphql.WithScalar("", "Decimal"))
		assert.ErrorIs(t, err, entityreader.ErrInvalidConfig)
	})
}

func TestSDLMissingTarget(t *testing.T) {
	t.Parallel()

	snap := snapshot(t, `
entities:
  - name: Employee
    properties:
      - name: id
        annotations: [{tag: Id}]
      - name: company
        annotations: [{tag: ManyToOne, targetEntity: Company}]
`)
	_, err := graphql.SDL(snap)
	assert.ErrorContains(t, err, `target entity "Company"`)
}
