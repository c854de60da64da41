package service

import (
	"context"
	"time"

	"github.com/aanand-mishra/course-api/internal/ident"
	"github.com/aanand-mishra/course-api/internal/storage"
	"github.com/aanand-mishra/course-api/internal/types"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EnrollmentService struct {
	enrollments storage.Collection
	courses     storage.Collection
	students    storage.Collection

	// now is read once per Create/Update call.
	now func() time.Time
}

// NewEnrollmentService returns a service that stamps enrollments with
// now. A nil now means time.Now.
func NewEnrollmentService(store storage.Storage, now func() time.Time) *EnrollmentService {
	if now == nil {
		now = time.Now
	}
	return &EnrollmentService{
		enrollments: store.Collection(storage.Enrollments),
		courses:     store.Collection(storage.Courses),
		students:    store.Collection(storage.Students),
		now:         now,
	}
}

// stamp fills in a missing timestamp and normalises it to what the
// database can store: UTC with millisecond precision.
func (s *EnrollmentService) stamp(in types.EnrollmentCreate) types.EnrollmentCreate {
	if in.Timestamp.IsZero() {
		in.Timestamp = s.now()
	}
	in.Timestamp = in.Timestamp.UTC().Truncate(time.Millisecond)
	return in
}

func (s *EnrollmentService) Create(ctx context.Context, in types.EnrollmentCreate) (types.Enrollment, error) {
	if err := Validate(in); err != nil {
		return types.Enrollment{}, err
	}
	in = s.stamp(in)

	id, err := s.enrollments.Insert(ctx, in)
	if err != nil {
		return types.Enrollment{}, errors.Wrap(err, "creating enrollment")
	}
	return types.NewEnrollment(ident.Encode(id), in), nil
}

func (s *EnrollmentService) List(ctx context.Context) ([]types.Enrollment, error) {
	docs, err := s.find(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "listing enrollments")
	}

	out := make([]types.Enrollment, 0, len(docs))
	for _, doc := range docs {
		out = append(out, types.NewEnrollment(ident.Encode(doc.ID), doc.EnrollmentCreate))
	}
	return out, nil
}

func (s *EnrollmentService) Get(ctx context.Context, id string) (types.Enrollment, error) {
	oid, err := ident.Decode(id)
	if err != nil {
		return types.Enrollment{}, err
	}
	return s.get(ctx, oid)
}

func (s *EnrollmentService) Update(ctx context.Context, id string, in types.EnrollmentCreate) (types.Enrollment, error) {
	oid, err := ident.Decode(id)
	if err != nil {
		return types.Enrollment{}, err
	}
	if err := Validate(in); err != nil {
		return types.Enrollment{}, err
	}
	in = s.stamp(in)

	matched, err := s.enrollments.UpdateByID(ctx, oid, in)
	if err != nil {
		return types.Enrollment{}, errors.Wrapf(err, "updating enrollment '%s'", id)
	}
	if !matched {
		return types.Enrollment{}, &NotFoundError{Resource: "enrollment", ID: id}
	}
	return s.get(ctx, oid)
}

func (s *EnrollmentService) Delete(ctx context.Context, id string) error {
	oid, err := ident.Decode(id)
	if err != nil {
		return err
	}

	deleted, err := s.enrollments.DeleteByID(ctx, oid)
	if err != nil {
		return errors.Wrapf(err, "deleting enrollment '%s'", id)
	}
	if !deleted {
		return &NotFoundError{Resource: "enrollment", ID: id}
	}
	return nil
}

// CoursesOfStudent returns the courses studentID is enrolled in, each at
// most once. The enrollments and the courses are read in two separate
// queries with no isolation between them, so a concurrent write may show
// up in one and not the other.
//
// A stored course_id that is not a valid id fails the whole call with
// ident.ErrInvalidID.
func (s *EnrollmentService) CoursesOfStudent(ctx context.Context, studentID string) ([]types.Course, error) {
	docs, err := s.find(ctx, storage.Filter{"student_id": studentID})
	if err != nil {
		return nil, errors.Wrapf(err, "finding enrollments of student '%s'", studentID)
	}

	refs := make([]string, 0, len(docs))
	for _, doc := range docs {
		refs = append(refs, doc.CourseID)
	}
	ids, err := ident.DecodeAll(refs)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []types.Course{}, nil
	}

	raws, err := s.courses.FindByIDs(ctx, ids)
	if err != nil {
		return nil, errors.Wrapf(err, "finding courses of student '%s'", studentID)
	}
	return courseRecords(raws)
}

// StudentsOfCourse is CoursesOfStudent in the other direction.
func (s *EnrollmentService) StudentsOfCourse(ctx context.Context, courseID string) ([]types.Student, error) {
	docs, err := s.find(ctx, storage.Filter{"course_id": courseID})
	if err != nil {
		return nil, errors.Wrapf(err, "finding enrollments of course '%s'", courseID)
	}

	refs := make([]string, 0, len(docs))
	for _, doc := range docs {
		refs = append(refs, doc.StudentID)
	}
	ids, err := ident.DecodeAll(refs)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []types.Student{}, nil
	}

	raws, err := s.students.FindByIDs(ctx, ids)
	if err != nil {
		return nil, errors.Wrapf(err, "finding students of course '%s'", courseID)
	}
	return studentRecords(raws)
}

func (s *EnrollmentService) find(ctx context.Context, filter storage.Filter) ([]enrollmentDoc, error) {
	raws, err := s.enrollments.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	return decodeDocs[enrollmentDoc](raws)
}

func (s *EnrollmentService) get(ctx context.Context, oid primitive.ObjectID) (types.Enrollment, error) {
	raw, err := s.enrollments.FindByID(ctx, oid)
	if errors.Is(err, storage.ErrNoDocument) {
		return types.Enrollment{}, &NotFoundError{Resource: "enrollment", ID: ident.Encode(oid)}
	}
	if err != nil {
		return types.Enrollment{}, errors.Wrapf(err, "finding enrollment '%s'", ident.Encode(oid))
	}

	doc, err := decodeDoc[enrollmentDoc](raw)
	if err != nil {
		return types.Enrollment{}, err
	}
	return types.NewEnrollment(ident.Encode(doc.ID), doc.EnrollmentCreate), nil
}
