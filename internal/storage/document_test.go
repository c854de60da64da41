package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type sample struct {
	Name  string  `bson:"name"`
	Email string  `bson:"email"`
	Note  *string `bson:"note"`
}

func TestNewDocument(t *testing.T) {
	id := primitive.NewObjectID()

	raw, err := NewDocument(id, sample{Name: "Ada", Email: "ada@x.com"})
	require.NoError(t, err)

	elems, err := raw.Elements()
	require.NoError(t, err)
	require.NotEmpty(t, elems)
	assert.Equal(t, "_id", elems[0].Key())

	got, err := DocumentID(raw)
	require.NoError(t, err)
	assert.Equal(t, id, got)
	assert.Equal(t, "Ada", raw.Lookup("name").StringValue())
}

func TestNewDocumentReplacesExistingID(t *testing.T) {
	id := primitive.NewObjectID()

	raw, err := NewDocument(id, bson.M{"_id": primitive.NewObjectID(), "name": "Ada"})
	require.NoError(t, err)

	got, err := DocumentID(raw)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestSetFields(t *testing.T) {
	id := primitive.NewObjectID()
	note := "kept?"
	existing, err := NewDocument(id, bson.D{
		{Key: "name", Value: "Ada"},
		{Key: "email", Value: "ada@x.com"},
		{Key: "extra", Value: "untouched"},
	})
	require.NoError(t, err)

	updated, err := SetFields(existing, sample{Name: "Ada L.", Email: "ada@y.com", Note: &note})
	require.NoError(t, err)

	got, err := DocumentID(updated)
	require.NoError(t, err)
	assert.Equal(t, id, got)
	assert.Equal(t, "Ada L.", updated.Lookup("name").StringValue())
	assert.Equal(t, "ada@y.com", updated.Lookup("email").StringValue())
	assert.Equal(t, "untouched", updated.Lookup("extra").StringValue())
	assert.Equal(t, "kept?", updated.Lookup("note").StringValue())

	t.Run("NilOptionalBecomesNull", func(t *testing.T) {
		cleared, err := SetFields(updated, sample{Name: "Ada", Email: "ada@x.com"})
		require.NoError(t, err)
		assert.Equal(t, bson.TypeNull, cleared.Lookup("note").Type)
	})
}

func TestFilterMatches(t *testing.T) {
	raw, err := NewDocument(primitive.NewObjectID(), bson.M{"student_id": "s1", "course_id": "c1"})
	require.NoError(t, err)

	assert.True(t, Filter(nil).Matches(raw))
	assert.True(t, Filter{"student_id": "s1"}.Matches(raw))
	assert.True(t, Filter{"student_id": "s1", "course_id": "c1"}.Matches(raw))
	assert.False(t, Filter{"student_id": "s2"}.Matches(raw))
	assert.False(t, Filter{"missing": "s1"}.Matches(raw))
}
