// Package service implements the create/read/update/delete semantics of
// each entity and the cross-entity lookups on top of storage.Storage.
//
// Every method maps to one HTTP route. Errors are classified as
// *ValidationError, ident.ErrInvalidID, or *NotFoundError; anything else
// is a storage failure.
package service

import (
	"context"

	"github.com/aanand-mishra/course-api/internal/ident"
	"github.com/aanand-mishra/course-api/internal/storage"
	"github.com/aanand-mishra/course-api/internal/types"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type InstructorService struct {
	instructors storage.Collection
}

func NewInstructorService(store storage.Storage) *InstructorService {
	return &InstructorService{instructors: store.Collection(storage.Instructors)}
}

func (s *InstructorService) Create(ctx context.Context, in types.InstructorCreate) (types.Instructor, error) {
	if err := Validate(in); err != nil {
		return types.Instructor{}, err
	}

	id, err := s.instructors.Insert(ctx, in)
	if err != nil {
		return types.Instructor{}, errors.Wrap(err, "creating instructor")
	}
	return types.NewInstructor(ident.Encode(id), in), nil
}

func (s *InstructorService) List(ctx context.Context) ([]types.Instructor, error) {
	raws, err := s.instructors.Find(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "listing instructors")
	}
	docs, err := decodeDocs[instructorDoc](raws)
	if err != nil {
		return nil, err
	}

	out := make([]types.Instructor, 0, len(docs))
	for _, doc := range docs {
		out = append(out, types.NewInstructor(ident.Encode(doc.ID), doc.InstructorCreate))
	}
	return out, nil
}

func (s *InstructorService) Get(ctx context.Context, id string) (types.Instructor, error) {
	oid, err := ident.Decode(id)
	if err != nil {
		return types.Instructor{}, err
	}
	return s.get(ctx, oid)
}

// Update replaces every mutable field. Optional fields missing from in are
// cleared, not preserved.
func (s *InstructorService) Update(ctx context.Context, id string, in types.InstructorCreate) (types.Instructor, error) {
	oid, err := ident.Decode(id)
	if err != nil {
		return types.Instructor{}, err
	}
	if err := Validate(in); err != nil {
		return types.Instructor{}, err
	}

	matched, err := s.instructors.UpdateByID(ctx, oid, in)
	if err != nil {
		return types.Instructor{}, errors.Wrapf(err, "updating instructor '%s'", id)
	}
	if !matched {
		return types.Instructor{}, &NotFoundError{Resource: "instructor", ID: id}
	}
	return s.get(ctx, oid)
}

func (s *InstructorService) Delete(ctx context.Context, id string) error {
	oid, err := ident.Decode(id)
	if err != nil {
		return err
	}

	deleted, err := s.instructors.DeleteByID(ctx, oid)
	if err != nil {
		return errors.Wrapf(err, "deleting instructor '%s'", id)
	}
	if !deleted {
		return &NotFoundError{Resource: "instructor", ID: id}
	}
	return nil
}

func (s *InstructorService) get(ctx context.Context, oid primitive.ObjectID) (types.Instructor, error) {
	raw, err := s.instructors.FindByID(ctx, oid)
	if errors.Is(err, storage.ErrNoDocument) {
		return types.Instructor{}, &NotFoundError{Resource: "instructor", ID: ident.Encode(oid)}
	}
	if err != nil {
		return types.Instructor{}, errors.Wrapf(err, "finding instructor '%s'", ident.Encode(oid))
	}

	doc, err := decodeDoc[instructorDoc](raw)
	if err != nil {
		return types.Instructor{}, err
	}
	return types.NewInstructor(ident.Encode(doc.ID), doc.InstructorCreate), nil
}
