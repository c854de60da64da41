// Package ident converts between the string identifiers exposed by the
// API and the MongoDB ObjectIDs used by the storage layer.
package ident

import (
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrInvalidID is returned when a string is not a 24-character hex
// ObjectID.
var ErrInvalidID = errors.New("invalid id format")

// Decode parses raw as an ObjectID.
func Decode(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, errors.Wrapf(ErrInvalidID, "decoding id %q", raw)
	}
	return id, nil
}

// Encode returns the external form of id.
func Encode(id primitive.ObjectID) string {
	return id.Hex()
}

// DecodeAll decodes every reference in raws, dropping repeats and keeping
// first-seen order. A single malformed reference fails the whole call.
func DecodeAll(raws []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(raws))
	seen := make(map[primitive.ObjectID]struct{}, len(raws))
	for _, raw := range raws {
		id, err := Decode(raw)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}
