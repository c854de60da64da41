package storage

import (
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The helpers below give backends without a native document model the
// same semantics MongoDB has for inserts, $set updates, and equality
// filters.

// NewDocument marshals doc and puts id in front as its _id field. Any
// _id already present in doc is replaced.
func NewDocument(id primitive.ObjectID, doc any) (bson.Raw, error) {
	fields, err := toD(doc)
	if err != nil {
		return nil, err
	}

	out := make(bson.D, 0, len(fields)+1)
	out = append(out, bson.E{Key: "_id", Value: id})
	for _, f := range fields {
		if f.Key != "_id" {
			out = append(out, f)
		}
	}

	raw, err := bson.Marshal(out)
	return raw, errors.Wrap(err, "marshalling document")
}

// SetFields applies doc to existing the way a {$set: doc} update would:
// fields present in doc are overwritten or appended, others are kept. The
// _id of existing never changes.
func SetFields(existing bson.Raw, doc any) (bson.Raw, error) {
	var current bson.D
	if err := bson.Unmarshal(existing, &current); err != nil {
		return nil, errors.Wrap(err, "unmarshalling existing document")
	}

	update, err := toD(doc)
	if err != nil {
		return nil, err
	}

	for _, f := range update {
		if f.Key == "_id" {
			continue
		}
		replaced := false
		for i := range current {
			if current[i].Key == f.Key {
				current[i].Value = f.Value
				replaced = true
				break
			}
		}
		if !replaced {
			current = append(current, f)
		}
	}

	raw, err := bson.Marshal(current)
	return raw, errors.Wrap(err, "marshalling updated document")
}

// DocumentID returns the _id of doc.
func DocumentID(doc bson.Raw) (primitive.ObjectID, error) {
	id, ok := doc.Lookup("_id").ObjectIDOK()
	if !ok {
		return primitive.NilObjectID, errors.New("document has no object id")
	}
	return id, nil
}

// Matches reports whether every field in filter is a string equal to the
// filter value.
func (f Filter) Matches(doc bson.Raw) bool {
	for field, want := range f {
		got, ok := doc.Lookup(field).StringValueOK()
		if !ok || got != want {
			return false
		}
	}
	return true
}

func toD(doc any) (bson.D, error) {
	data, err := bson.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, "marshalling document")
	}

	var d bson.D
	if err := bson.Unmarshal(data, &d); err != nil {
		return nil, errors.Wrap(err, "unmarshalling document")
	}
	return d, nil
}
