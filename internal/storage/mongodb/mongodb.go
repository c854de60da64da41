// Package mongodb implements storage.Storage on top of the official
// MongoDB Go driver.
package mongodb

import (
	"context"
	"time"

	"github.com/aanand-mishra/course-api/internal/storage"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDB struct {
	client *mongo.Client
	db     *mongo.Database
}

// New connects to uri and verifies the connection with a ping. timeout
// bounds both the connect and the ping.
func New(ctx context.Context, uri, database string, timeout time.Duration) (*MongoDB, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetConnectTimeout(timeout))
	if err != nil {
		return nil, errors.Wrap(err, "connecting to the database")
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(err, "pinging the database")
	}

	return &MongoDB{client: client, db: client.Database(database)}, nil
}

func (m *MongoDB) Collection(name string) storage.Collection {
	return &collection{coll: m.db.Collection(name)}
}

func (m *MongoDB) Close(ctx context.Context) error {
	return errors.Wrap(m.client.Disconnect(ctx), "disconnecting from the database")
}

type collection struct {
	coll *mongo.Collection
}

func (c *collection) Insert(ctx context.Context, doc any) (primitive.ObjectID, error) {
	// The driver adds an ObjectID _id when doc has none.
	res, err := c.coll.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, errors.Wrapf(err, "inserting document into '%s'", c.coll.Name())
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.Errorf("inserted id has unexpected type %T", res.InsertedID)
	}
	return id, nil
}

func (c *collection) FindByID(ctx context.Context, id primitive.ObjectID) (bson.Raw, error) {
	raw, err := c.coll.FindOne(ctx, bson.M{"_id": id}).Raw()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, storage.ErrNoDocument
		}
		return nil, errors.Wrapf(err, "finding document '%s' in '%s'", id.Hex(), c.coll.Name())
	}
	return raw, nil
}

func (c *collection) Find(ctx context.Context, filter storage.Filter) ([]bson.Raw, error) {
	query := bson.M{}
	for field, value := range filter {
		query[field] = value
	}
	return c.find(ctx, query)
}

func (c *collection) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]bson.Raw, error) {
	if len(ids) == 0 {
		return make([]bson.Raw, 0), nil
	}
	return c.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (c *collection) UpdateByID(ctx context.Context, id primitive.ObjectID, doc any) (bool, error) {
	res, err := c.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": doc})
	if err != nil {
		return false, errors.Wrapf(err, "updating document '%s' in '%s'", id.Hex(), c.coll.Name())
	}
	return res.MatchedCount > 0, nil
}

func (c *collection) DeleteByID(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := c.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, errors.Wrapf(err, "deleting document '%s' from '%s'", id.Hex(), c.coll.Name())
	}
	return res.DeletedCount > 0, nil
}

func (c *collection) find(ctx context.Context, query bson.M) ([]bson.Raw, error) {
	cur, err := c.coll.Find(ctx, query)
	if err != nil {
		return nil, errors.Wrapf(err, "finding documents in '%s'", c.coll.Name())
	}
	defer cur.Close(ctx)

	docs := make([]bson.Raw, 0)
	for cur.Next(ctx) {
		// Current is only valid until the next call to Next.
		docs = append(docs, append(bson.Raw(nil), cur.Current...))
	}
	if err := cur.Err(); err != nil {
		return nil, errors.Wrapf(err, "iterating documents in '%s'", c.coll.Name())
	}
	return docs, nil
}
