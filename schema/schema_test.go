package schema_test

import (
	"testing"

	"github.com/syssam/entityreader/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCommentAnnotation tests the CommentAnnotation type.
func TestCommentAnnotation(t *testing.T) {
	t.Run("Name", func(t *testing.T) {
		ann := &schema.CommentAnnotation{Text: "test comment"}
		assert.Equal(t, "Comment", ann.Name())
	})

	t.Run("Comment_constructor", func(t *testing.T) {
		ann := schema.Comment("Legal name of the company.")
		require.NotNil(t, ann)
		assert.Equal(t, "Legal name of the company.", ann.Text)
		assert.Equal(t, map[string]string{"text": "Legal name of the company."}, ann.Attrs())
	})

	t.Run("Merge", func(t *testing.T) {
		merged := schema.CommentAnnotation{Text: "first"}.Merge(schema.Comment("second"))
		assert.Equal(t, schema.CommentAnnotation{Text: "first\nsecond"}, merged)

		merged = schema.CommentAnnotation{}.Merge(schema.CommentAnnotation{Text: "only"})
		assert.Equal(t, schema.CommentAnnotation{Text: "only"}, merged)

		merged = schema.CommentAnnotation{Text: "kept"}.Merge((*schema.CommentAnnotation)(nil))
		assert.Equal(t, schema.CommentAnnotation{Text: "kept"}, merged)
	})

	t.Run("merge_different_type", func(t *testing.T) {
		c := schema.CommentAnnotation{Text: "kept"}
		merged := c.Merge(&mockAnnotation{name: "Other"})
		assert.Equal(t, c, merged)
	})
}

// mockAnnotation is a test implementation of Annotation.
type mockAnnotation struct {
	name string
}

func (m *mockAnnotation) Name() string {
	return m.name
}

func TestStructural(t *testing.T) {
	t.Parallel()

	for _, tag := range []string{
		schema.TagID,
		schema.TagColumn,
		schema.TagManyToOne,
		schema.TagOneToOne,
		schema.TagManyToMany,
		schema.TagOneToMany,
	} {
		assert.True(t, schema.Structural(tag), tag)
	}
	assert.False(t, schema.Structural("Comment"))
	assert.False(t, schema.Structural("GeneratedValue"))
	assert.False(t, schema.Structural("column"))
}
