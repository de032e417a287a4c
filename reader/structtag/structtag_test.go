package structtag_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/entityreader"
	"github.com/syssam/entityreader/property"
	"github.com/syssam/entityreader/reader"
	"github.com/syssam/entityreader/reader/structtag"
	"github.com/syssam/entityreader/schema"
	"github.com/syssam/entityreader/schema/edge"
	"github.com/syssam/entityreader/schema/field"
)

type Timestamps struct {
	CreatedAt time.Time `orm:"column,type=datetime"`
}

type Company struct {
	ID        uuid.UUID   `orm:"id;column,type=guid"`
	Name      string      `orm:"column,type=string,length=255,unique"`
	Employees []*Employee `orm:"one_to_many,target=Employee,mapped_by=company"`
}

func (c *Company) EntityID() any     { return c.ID }
func (c *Company) DisplayValue() any { return c.Name }

type Project struct {
	ID    int    `orm:"id;column,type=integer;generated_value,strategy=AUTO"`
	Title string `orm:"column,type=string"`
}

func (p Project) EntityID() any     { return p.ID }
func (p Project) DisplayValue() any { return p.Title }

type Employee struct {
	Timestamps
	ID       int       `orm:"id;column,type=integer"`
	FullName string    `orm:"name=name;column,type=string,length=120;comment=Given name, family name"`
	Active   bool      `orm:"column,type=boolean"`
	Company  *Company  `orm:"many_to_one,target=Company,inversed_by=employees"`
	Projects []Project `orm:"many_to_many,target=Project,join_table=employee_projects"`
	Scratch  string    `orm:"-"`
	cache    string
}

type Untagged struct {
	ID   int `orm:"id"`
	Note string
}

type Broken struct {
	ID int `orm:"id;embedded"`
}

func newSource(t *testing.T, values ...any) *structtag.Source {
	t.Helper()
	src, err := structtag.New(structtag.WithEntity(values...))
	require.NoError(t, err)
	return src
}

func TestProperties(t *testing.T) {
	t.Parallel()

	src := newSource(t, Company{}, &Employee{}, Project{})
	assert.Equal(t, []string{"Company", "Employee", "Project"}, src.Entities())

	handles, err := src.Properties("Employee")
	require.NoError(t, err)

	names := make([]string, len(handles))
	for i, h := range handles {
		names[i] = h.Name
		assert.Equal(t, "Employee", h.Entity)
		assert.Equal(t, i, h.Index)
	}
	assert.Equal(t, []string{"createdAt", "id", "name", "active", "company", "projects"}, names)

	_, err = src.Properties("Ghost")
	assert.ErrorIs(t, err, entityreader.ErrUnknownEntity)
}

func TestAnnotations(t *testing.T) {
	t.Parallel()

	src := newSource(t, Employee{})
	handles, err := src.Properties("Employee")
	require.NoError(t, err)

	byName := make(map[string]reader.Handle)
	for _, h := range handles {
		byName[h.Name] = h
	}

	anns, err := src.Annotations(byName["name"])
	require.NoError(t, err)
	assert.Equal(t, []schema.Annotation{
		&field.Column{Type: "string", Length: 120},
		schema.Comment("Given name, family name"),
	}, anns)

	anns, err = src.Annotations(byName["company"])
	require.NoError(t, err)
	assert.Equal(t, []schema.Annotation{
		&edge.ManyToOne{TargetEntity: "Company", InversedBy: "employees"},
	}, anns)

	_, err = src.Annotations(reader.Handle{Entity: "Employee", Name: "name", Index: 99})
	assert.Error(t, err)
}

func TestExtract(t *testing.T) {
	t.Parallel()

	src := newSource(t, Company{}, Employee{}, Project{})
	r, err := reader.New(src)
	require.NoError(t, err)

	descs, err := r.Extract("Employee")
	require.NoError(t, err)
	require.Len(t, descs, 6)

	assert.Equal(t, property.Column, descs["createdAt"].Kind())
	assert.Equal(t, property.Identifier, descs["id"].Kind())
	assert.Equal(t, property.Column, descs["name"].Kind())
	assert.Equal(t, property.ReferenceOne, descs["company"].Kind())
	assert.Equal(t, property.ReferenceMany, descs["projects"].Kind())

	target, ok := descs["projects"].TargetEntity()
	assert.True(t, ok)
	assert.Equal(t, "Project", target)

	company, err := r.Extract("Company")
	require.NoError(t, err)
	assert.Equal(t, property.ReferenceMany, company["employees"].Kind())
}

func TestExtractFailures(t *testing.T) {
	t.Parallel()

	t.Run("untagged_field", func(t *testing.T) {
		_, err := reader.Extract(newSource(t, Untagged{}), "Untagged")
		var missing *entityreader.MissingClassificationError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "Untagged", missing.Entity)
		assert.Equal(t, "note", missing.Property)
	})

	t.Run("unknown_annotation", func(t *testing.T) {
		_, err := reader.Extract(newSource(t, Broken{}), "Broken")
		var ae *entityreader.AnnotationError
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, "Broken", ae.Entity)
		assert.Equal(t, "id", ae.Property)
		assert.Equal(t, "embedded", ae.Annotation)
	})
}

func TestValuesAndNormalize(t *testing.T) {
	t.Parallel()

	src := newSource(t, Company{}, Employee{}, Project{})
	r, err := reader.New(src)
	require.NoError(t, err)
	descs, err := r.Extract("Employee")
	require.NoError(t, err)

	acme := &Company{ID: uuid.New(), Name: "Acme"}
	emp := &Employee{
		Timestamps: Timestamps{CreatedAt: time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)},
		ID:         7,
		FullName:   "Ada Lovelace",
		Active:     true,
		Company:    acme,
		Projects:   []Project{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}, {ID: 3, Title: "C"}},
		Scratch:    "ignored",
	}

	values, err := src.Values(emp)
	require.NoError(t, err)
	assert.Len(t, values, 6)
	assert.NotContains(t, values, "scratch")

	assert.Equal(t, map[string]any{
		"createdAt": "02.01.2020 03:04:05",
		"id":        7,
		"name":      "Ada Lovelace",
		"active":    "+",
		"company":   "Acme",
		"projects":  "A, B, C",
	}, property.NormalizeAll(descs, values, property.Display))

	assert.Equal(t, map[string]any{
		"createdAt": "02.01.2020 03:04:05",
		"id":        7,
		"name":      "Ada Lovelace",
		"active":    true,
		"company":   acme.ID,
		"projects":  []any{1, 2, 3},
	}, property.NormalizeAll(descs, values, property.Form))

	t.Run("empty_references", func(t *testing.T) {
		values, err := src.Values(Employee{})
		require.NoError(t, err)
		form := property.NormalizeAll(descs, values, property.Form)
		assert.Equal(t, 0, form["company"])
		assert.Equal(t, []any{}, form["projects"])
		display := property.NormalizeAll(descs, values, property.Display)
		assert.Equal(t, "-", display["company"])
		assert.Equal(t, "-", display["projects"])
	})

	t.Run("unregistered", func(t *testing.T) {
		_, err := src.Values(Untagged{})
		assert.ErrorIs(t, err, entityreader.ErrUnknownEntity)
		_, err = src.Values((*Employee)(nil))
		assert.Error(t, err)
	})
}

func TestNewErrors(t *testing.T) {
	t.Parallel()

	_, err := structtag.New(structtag.WithEntity(42))
	assert.ErrorIs(t, err, entityreader.ErrInvalidConfig)

	_, err = structtag.New(structtag.WithEntity(Company{}, &Company{}))
	assert.ErrorIs(t, err, entityreader.ErrInvalidConfig)

	_, err = structtag.New(structtag.WithTagKey(""))
	assert.ErrorIs(t, err, entityreader.ErrInvalidConfig)
}

func TestTagKey(t *testing.T) {
	t.Parallel()

	type Doc struct {
		ID    int    `db:"id"`
		Title string `db:"column"`
		Skip  string `db:"-"`
	}
	src, err := structtag.New(structtag.WithTagKey("db"), structtag.WithEntity(Doc{}))
	require.NoError(t, err)

	descs, err := reader.Extract(src, "Doc")
	require.NoError(t, err)
	assert.Len(t, descs, 2)
	assert.Equal(t, property.Identifier, descs["id"].Kind())
	assert.Equal(t, property.Column, descs["title"].Kind())
}
