// Package storage defines the Storage interface, a contract that any
// document database backend must satisfy to work with this application.
//
// Services only see this package. The concrete backend (MongoDB, SQLite,
// or the in-memory store used by tests) is chosen once at startup and
// injected, so no package holds a global database handle.
//
// Documents cross the boundary as BSON: writers pass any value the bson
// package can marshal (the types.XCreate structs), readers get bson.Raw
// back and decode it themselves.
package storage

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection names, one per entity.
const (
	Instructors = "instructors"
	Students    = "students"
	Courses     = "courses"
	Enrollments = "enrollments"
)

// Names lists every collection the application uses.
var Names = []string{Instructors, Students, Courses, Enrollments}

// ErrNoDocument is returned by FindByID when nothing has the given id.
var ErrNoDocument = errors.New("no document found")

// Filter matches documents whose fields equal the given strings. An empty
// Filter matches everything.
type Filter map[string]string

// Storage hands out collections by name.
type Storage interface {
	Collection(name string) Collection

	// Close releases the underlying connection.
	Close(ctx context.Context) error
}

// Collection is the set of per-collection operations the services need.
type Collection interface {
	// Insert stores doc under a freshly generated id and returns the id.
	Insert(ctx context.Context, doc any) (primitive.ObjectID, error)

	// FindByID returns the document with the given id, or ErrNoDocument.
	FindByID(ctx context.Context, id primitive.ObjectID) (bson.Raw, error)

	// Find returns every document matching filter. Order is whatever the
	// backend yields; callers must not rely on it.
	Find(ctx context.Context, filter Filter) ([]bson.Raw, error)

	// FindByIDs returns the documents whose id is in ids. Each stored
	// document appears at most once.
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]bson.Raw, error)

	// UpdateByID sets every field of doc on the document with the given
	// id. It reports whether a document matched.
	UpdateByID(ctx context.Context, id primitive.ObjectID, doc any) (bool, error)

	// DeleteByID removes the document with the given id. It reports
	// whether a document was removed.
	DeleteByID(ctx context.Context, id primitive.ObjectID) (bool, error)
}
