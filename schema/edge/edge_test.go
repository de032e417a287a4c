package edge_test

import (
	"testing"

	"github.com/syssam/entityreader/schema"
	"github.com/syssam/entityreader/schema/edge"

	"github.com/stretchr/testify/assert"
)

func TestRelations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		relation schema.Relation
		tag      string
		attrs    map[string]string
	}{
		{
			name:     "many_to_one",
			relation: &edge.ManyToOne{TargetEntity: "Company", InversedBy: "employees"},
			tag:      schema.TagManyToOne,
			attrs:    map[string]string{"targetEntity": "Company", "inversedBy": "employees"},
		},
		{
			name:     "one_to_one",
			relation: edge.OneToOne{TargetEntity: "Address", MappedBy: "owner"},
			tag:      schema.TagOneToOne,
			attrs:    map[string]string{"targetEntity": "Address", "mappedBy": "owner"},
		},
		{
			name:     "many_to_many",
			relation: &edge.ManyToMany{TargetEntity: "Project", JoinTable: "employee_projects"},
			tag:      schema.TagManyToMany,
			attrs:    map[string]string{"targetEntity": "Project", "joinTable": "employee_projects"},
		},
		{
			name:     "one_to_many",
			relation: &edge.OneToMany{TargetEntity: "Employee", MappedBy: "company"},
			tag:      schema.TagOneToMany,
			attrs:    map[string]string{"targetEntity": "Employee", "mappedBy": "company"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.tag, tt.relation.Name())
			assert.Equal(t, tt.attrs["targetEntity"], tt.relation.Target())
			attr, ok := tt.relation.(schema.Attributer)
			if assert.True(t, ok) {
				assert.Equal(t, tt.attrs, attr.Attrs())
			}
		})
	}
}
