package service

import (
	"context"

	"github.com/aanand-mishra/course-api/internal/ident"
	"github.com/aanand-mishra/course-api/internal/storage"
	"github.com/aanand-mishra/course-api/internal/types"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type StudentService struct {
	students storage.Collection
}

func NewStudentService(store storage.Storage) *StudentService {
	return &StudentService{students: store.Collection(storage.Students)}
}

func (s *StudentService) Create(ctx context.Context, in types.StudentCreate) (types.Student, error) {
	if err := Validate(in); err != nil {
		return types.Student{}, err
	}

	id, err := s.students.Insert(ctx, in)
	if err != nil {
		return types.Student{}, errors.Wrap(err, "creating student")
	}
	return types.NewStudent(ident.Encode(id), in), nil
}

func (s *StudentService) List(ctx context.Context) ([]types.Student, error) {
	raws, err := s.students.Find(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "listing students")
	}
	return studentRecords(raws)
}

func (s *StudentService) Get(ctx context.Context, id string) (types.Student, error) {
	oid, err := ident.Decode(id)
	if err != nil {
		return types.Student{}, err
	}
	return s.get(ctx, oid)
}

func (s *StudentService) Update(ctx context.Context, id string, in types.StudentCreate) (types.Student, error) {
	oid, err := ident.Decode(id)
	if err != nil {
		return types.Student{}, err
	}
	if err := Validate(in); err != nil {
		return types.Student{}, err
	}

	matched, err := s.students.UpdateByID(ctx, oid, in)
	if err != nil {
		return types.Student{}, errors.Wrapf(err, "updating student '%s'", id)
	}
	if !matched {
		return types.Student{}, &NotFoundError{Resource: "student", ID: id}
	}
	return s.get(ctx, oid)
}

func (s *StudentService) Delete(ctx context.Context, id string) error {
	oid, err := ident.Decode(id)
	if err != nil {
		return err
	}

	deleted, err := s.students.DeleteByID(ctx, oid)
	if err != nil {
		return errors.Wrapf(err, "deleting student '%s'", id)
	}
	if !deleted {
		return &NotFoundError{Resource: "student", ID: id}
	}
	return nil
}

func (s *StudentService) get(ctx context.Context, oid primitive.ObjectID) (types.Student, error) {
	raw, err := s.students.FindByID(ctx, oid)
	if errors.Is(err, storage.ErrNoDocument) {
		return types.Student{}, &NotFoundError{Resource: "student", ID: ident.Encode(oid)}
	}
	if err != nil {
		return types.Student{}, errors.Wrapf(err, "finding student '%s'", ident.Encode(oid))
	}

	doc, err := decodeDoc[studentDoc](raw)
	if err != nil {
		return types.Student{}, err
	}
	return types.NewStudent(ident.Encode(doc.ID), doc.StudentCreate), nil
}

func studentRecords(raws []bson.Raw) ([]types.Student, error) {
	docs, err := decodeDocs[studentDoc](raws)
	if err != nil {
		return nil, err
	}

	out := make([]types.Student, 0, len(docs))
	for _, doc := range docs {
		out = append(out, types.NewStudent(ident.Encode(doc.ID), doc.StudentCreate))
	}
	return out, nil
}
