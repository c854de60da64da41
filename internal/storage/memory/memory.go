// Package memory provides an in-process implementation of
// storage.Storage. Nothing survives a restart; it exists for tests and
// for running the API without a database.
package memory

import (
	"context"
	"sync"

	"github.com/aanand-mishra/course-api/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Memory struct {
	mu          sync.Mutex
	collections map[string]*collection
}

func New() *Memory {
	return &Memory{collections: make(map[string]*collection)}
}

func (m *Memory) Collection(name string) storage.Collection {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.collections[name]
	if !ok {
		c = &collection{docs: make(map[primitive.ObjectID]bson.Raw)}
		m.collections[name] = c
	}
	return c
}

func (m *Memory) Close(context.Context) error { return nil }

// collection keeps documents in insertion order.
type collection struct {
	mu    sync.RWMutex
	order []primitive.ObjectID
	docs  map[primitive.ObjectID]bson.Raw
}

func (c *collection) Insert(_ context.Context, doc any) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	raw, err := storage.NewDocument(id, doc)
	if err != nil {
		return primitive.NilObjectID, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.docs[id] = raw
	c.order = append(c.order, id)
	return id, nil
}

func (c *collection) FindByID(_ context.Context, id primitive.ObjectID) (bson.Raw, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	raw, ok := c.docs[id]
	if !ok {
		return nil, storage.ErrNoDocument
	}
	return raw, nil
}

func (c *collection) Find(_ context.Context, filter storage.Filter) ([]bson.Raw, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]bson.Raw, 0)
	for _, id := range c.order {
		if raw := c.docs[id]; filter.Matches(raw) {
			out = append(out, raw)
		}
	}
	return out, nil
}

func (c *collection) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]bson.Raw, error) {
	want := make(map[primitive.ObjectID]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]bson.Raw, 0, len(want))
	for _, id := range c.order {
		if _, ok := want[id]; ok {
			out = append(out, c.docs[id])
		}
	}
	return out, nil
}

func (c *collection) UpdateByID(_ context.Context, id primitive.ObjectID, doc any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	existing, ok := c.docs[id]
	if !ok {
		return false, nil
	}
	updated, err := storage.SetFields(existing, doc)
	if err != nil {
		return false, err
	}
	c.docs[id] = updated
	return true, nil
}

func (c *collection) DeleteByID(_ context.Context, id primitive.ObjectID) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.docs[id]; !ok {
		return false, nil
	}
	delete(c.docs, id)
	for i, o := range c.order {
		if o == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true, nil
}
