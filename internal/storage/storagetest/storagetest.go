// Package storagetest holds the behavioural tests every storage.Storage
// backend must pass. Backend packages call Run from their own tests.
package storagetest

import (
	"context"
	"testing"

	"github.com/aanand-mishra/course-api/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type person struct {
	Name    string  `bson:"name"`
	Email   string  `bson:"email"`
	GroupID string  `bson:"group_id"`
	Note    *string `bson:"note"`
}

func decode(t *testing.T, raw bson.Raw) (primitive.ObjectID, person) {
	t.Helper()

	id, err := storage.DocumentID(raw)
	require.NoError(t, err)

	var p person
	require.NoError(t, bson.Unmarshal(raw, &p))
	return id, p
}

func ids(t *testing.T, raws []bson.Raw) []primitive.ObjectID {
	t.Helper()

	out := make([]primitive.ObjectID, 0, len(raws))
	for _, raw := range raws {
		id, _ := decode(t, raw)
		out = append(out, id)
	}
	return out
}

// Run exercises store. Each subtest works in its own collection so
// backends may share state across subtests.
func Run(t *testing.T, store storage.Storage) {
	ctx := context.Background()

	t.Run("InsertThenFindByID", func(t *testing.T) {
		coll := store.Collection("insert_find")
		note := "hello"
		in := person{Name: "Ada", Email: "ada@x.com", GroupID: "g1", Note: &note}

		id, err := coll.Insert(ctx, in)
		require.NoError(t, err)
		assert.False(t, id.IsZero())

		raw, err := coll.FindByID(ctx, id)
		require.NoError(t, err)
		gotID, got := decode(t, raw)
		assert.Equal(t, id, gotID)
		assert.Equal(t, in, got)
	})

	t.Run("InsertAssignsUniqueIDs", func(t *testing.T) {
		coll := store.Collection("unique_ids")
		seen := map[primitive.ObjectID]bool{}
		for i := 0; i < 5; i++ {
			id, err := coll.Insert(ctx, person{Name: "Same", Email: "same@x.com"})
			require.NoError(t, err)
			assert.False(t, seen[id])
			seen[id] = true
		}
	})

	t.Run("FindByIDMissing", func(t *testing.T) {
		coll := store.Collection("find_missing")
		_, err := coll.FindByID(ctx, primitive.NewObjectID())
		assert.ErrorIs(t, err, storage.ErrNoDocument)
	})

	t.Run("FindAllAndFiltered", func(t *testing.T) {
		coll := store.Collection("find_filter")

		all, err := coll.Find(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, all)

		a, err := coll.Insert(ctx, person{Name: "A", GroupID: "g1"})
		require.NoError(t, err)
		b, err := coll.Insert(ctx, person{Name: "B", GroupID: "g2"})
		require.NoError(t, err)
		c, err := coll.Insert(ctx, person{Name: "C", GroupID: "g1"})
		require.NoError(t, err)

		all, err = coll.Find(ctx, storage.Filter{})
		require.NoError(t, err)
		assert.ElementsMatch(t, []primitive.ObjectID{a, b, c}, ids(t, all))

		g1, err := coll.Find(ctx, storage.Filter{"group_id": "g1"})
		require.NoError(t, err)
		assert.ElementsMatch(t, []primitive.ObjectID{a, c}, ids(t, g1))

		none, err := coll.Find(ctx, storage.Filter{"group_id": "nope"})
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("FindByIDs", func(t *testing.T) {
		coll := store.Collection("find_by_ids")

		a, err := coll.Insert(ctx, person{Name: "A"})
		require.NoError(t, err)
		b, err := coll.Insert(ctx, person{Name: "B"})
		require.NoError(t, err)
		_, err = coll.Insert(ctx, person{Name: "C"})
		require.NoError(t, err)

		got, err := coll.FindByIDs(ctx, []primitive.ObjectID{a, b, a, primitive.NewObjectID()})
		require.NoError(t, err)
		assert.ElementsMatch(t, []primitive.ObjectID{a, b}, ids(t, got))

		empty, err := coll.FindByIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("UpdateByID", func(t *testing.T) {
		coll := store.Collection("update")
		note := "old"

		id, err := coll.Insert(ctx, person{Name: "A", Email: "a@x.com", Note: &note})
		require.NoError(t, err)

		matched, err := coll.UpdateByID(ctx, id, person{Name: "A2", Email: "a2@x.com"})
		require.NoError(t, err)
		assert.True(t, matched)

		raw, err := coll.FindByID(ctx, id)
		require.NoError(t, err)
		gotID, got := decode(t, raw)
		assert.Equal(t, id, gotID)
		assert.Equal(t, person{Name: "A2", Email: "a2@x.com"}, got)

		matched, err = coll.UpdateByID(ctx, primitive.NewObjectID(), person{Name: "X"})
		require.NoError(t, err)
		assert.False(t, matched)
	})

	t.Run("DeleteByID", func(t *testing.T) {
		coll := store.Collection("delete")

		id, err := coll.Insert(ctx, person{Name: "A"})
		require.NoError(t, err)

		deleted, err := coll.DeleteByID(ctx, id)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = coll.DeleteByID(ctx, id)
		require.NoError(t, err)
		assert.False(t, deleted)

		_, err = coll.FindByID(ctx, id)
		assert.ErrorIs(t, err, storage.ErrNoDocument)
	})

	t.Run("CollectionsAreIsolated", func(t *testing.T) {
		left := store.Collection("isolated_left")
		right := store.Collection("isolated_right")

		id, err := left.Insert(ctx, person{Name: "A"})
		require.NoError(t, err)

		_, err = right.FindByID(ctx, id)
		assert.ErrorIs(t, err, storage.ErrNoDocument)
	})
}
