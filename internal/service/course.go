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

type CourseService struct {
	courses storage.Collection
}

func NewCourseService(store storage.Storage) *CourseService {
	return &CourseService{courses: store.Collection(storage.Courses)}
}

func (s *CourseService) Create(ctx context.Context, in types.CourseCreate) (types.Course, error) {
	if err := Validate(in); err != nil {
		return types.Course{}, err
	}

	id, err := s.courses.Insert(ctx, in)
	if err != nil {
		return types.Course{}, errors.Wrap(err, "creating course")
	}
	return types.NewCourse(ident.Encode(id), in), nil
}

func (s *CourseService) List(ctx context.Context) ([]types.Course, error) {
	raws, err := s.courses.Find(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "listing courses")
	}
	return courseRecords(raws)
}

// ListByInstructor returns the courses whose instructor_id is exactly
// instructorID. The id is compared as a string and never decoded, so a
// malformed id simply matches nothing.
func (s *CourseService) ListByInstructor(ctx context.Context, instructorID string) ([]types.Course, error) {
	raws, err := s.courses.Find(ctx, storage.Filter{"instructor_id": instructorID})
	if err != nil {
		return nil, errors.Wrapf(err, "listing courses of instructor '%s'", instructorID)
	}
	return courseRecords(raws)
}

func (s *CourseService) Get(ctx context.Context, id string) (types.Course, error) {
	oid, err := ident.Decode(id)
	if err != nil {
		return types.Course{}, err
	}
	return s.get(ctx, oid)
}

func (s *CourseService) Update(ctx context.Context, id string, in types.CourseCreate) (types.Course, error) {
	oid, err := ident.Decode(id)
	if err != nil {
		return types.Course{}, err
	}
	if err := Validate(in); err != nil {
		return types.Course{}, err
	}

	matched, err := s.courses.UpdateByID(ctx, oid, in)
	if err != nil {
		return types.Course{}, errors.Wrapf(err, "updating course '%s'", id)
	}
	if !matched {
		return types.Course{}, &NotFoundError{Resource: "course", ID: id}
	}
	return s.get(ctx, oid)
}

// Delete leaves enrollments that reference the course in place.
func (s *CourseService) Delete(ctx context.Context, id string) error {
	oid, err := ident.Decode(id)
	if err != nil {
		return err
	}

	deleted, err := s.courses.DeleteByID(ctx, oid)
	if err != nil {
		return errors.Wrapf(err, "deleting course '%s'", id)
	}
	if !deleted {
		return &NotFoundError{Resource: "course", ID: id}
	}
	return nil
}

func (s *CourseService) get(ctx context.Context, oid primitive.ObjectID) (types.Course, error) {
	raw, err := s.courses.FindByID(ctx, oid)
	if errors.Is(err, storage.ErrNoDocument) {
		return types.Course{}, &NotFoundError{Resource: "course", ID: ident.Encode(oid)}
	}
	if err != nil {
		return types.Course{}, errors.Wrapf(err, "finding course '%s'", ident.Encode(oid))
	}

	doc, err := decodeDoc[courseDoc](raw)
	if err != nil {
		return types.Course{}, err
	}
	return types.NewCourse(ident.Encode(doc.ID), doc.CourseCreate), nil
}

func courseRecords(raws []bson.Raw) ([]types.Course, error) {
	docs, err := decodeDocs[courseDoc](raws)
	if err != nil {
		return nil, err
	}

	out := make([]types.Course, 0, len(docs))
	for _, doc := range docs {
		out = append(out, types.NewCourse(ident.Encode(doc.ID), doc.CourseCreate))
	}
	return out, nil
}
