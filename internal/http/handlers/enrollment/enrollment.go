// Package enrollment contains the HTTP handlers for enrollments and for
// the two lookups that go through them: the courses of a student and the
// students of a course.
package enrollment

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/course-api/internal/types"
	"github.com/aanand-mishra/course-api/internal/utils/request"
	"github.com/aanand-mishra/course-api/internal/utils/response"
)

type Service interface {
	Create(ctx context.Context, in types.EnrollmentCreate) (types.Enrollment, error)
	List(ctx context.Context) ([]types.Enrollment, error)
	Get(ctx context.Context, id string) (types.Enrollment, error)
	Update(ctx context.Context, id string, in types.EnrollmentCreate) (types.Enrollment, error)
	Delete(ctx context.Context, id string) error
	CoursesOfStudent(ctx context.Context, studentID string) ([]types.Course, error)
	StudentsOfCourse(ctx context.Context, courseID string) ([]types.Student, error)
}

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /enrollments
//
// Request body (JSON):
//
//	{ "student_id": "64b7…", "course_id": "64b8…" }
//
// "timestamp" is optional; when omitted the enrollment is stamped with
// the time this request is handled.
// ─────────────────────────────────────────────────────────────────────────────
func New(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("enrolling a student")

		var in types.EnrollmentCreate
		if err := request.DecodeJSON(r, &in); err != nil {
			response.WriteError(w, err)
			return
		}

		created, err := svc.Create(r.Context(), in)
		if err != nil {
			response.Fail(w, err, "error creating enrollment", "")
			return
		}

		slog.Info("enrollment created",
			slog.String("id", created.ID),
			slog.String("student_id", created.StudentID),
			slog.String("course_id", created.CourseID))
		response.WriteJSON(w, http.StatusCreated, created)
	}
}

// GetList handles GET /enrollments
func GetList(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all enrollments")

		enrollments, err := svc.List(r.Context())
		if err != nil {
			response.Fail(w, err, "error getting enrollments", "")
			return
		}

		response.WriteJSON(w, http.StatusOK, enrollments)
	}
}

// GetByID handles GET /enrollments/{id}
func GetByID(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("getting an enrollment", slog.String("id", id))

		enrollment, err := svc.Get(r.Context(), id)
		if err != nil {
			response.Fail(w, err, "error getting enrollment", id)
			return
		}

		response.WriteJSON(w, http.StatusOK, enrollment)
	}
}

// Update handles PUT /enrollments/{id}
func Update(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("updating an enrollment", slog.String("id", id))

		var in types.EnrollmentCreate
		if err := request.DecodeJSON(r, &in); err != nil {
			response.WriteError(w, err)
			return
		}

		updated, err := svc.Update(r.Context(), id, in)
		if err != nil {
			response.Fail(w, err, "error updating enrollment", id)
			return
		}

		slog.Info("enrollment updated", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, updated)
	}
}

// Delete handles DELETE /enrollments/{id}
func Delete(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("deleting an enrollment", slog.String("id", id))

		if err := svc.Delete(r.Context(), id); err != nil {
			response.Fail(w, err, "error deleting enrollment", id)
			return
		}

		slog.Info("enrollment deleted", slog.String("id", id))
		response.NoContent(w)
	}
}

// CoursesOfStudent handles GET /enrollments/student/{id}/courses
// 400 when one of the student's enrollments holds a malformed course id.
func CoursesOfStudent(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("getting courses of a student", slog.String("student_id", id))

		courses, err := svc.CoursesOfStudent(r.Context(), id)
		if err != nil {
			response.Fail(w, err, "error getting courses of student", id)
			return
		}

		response.WriteJSON(w, http.StatusOK, courses)
	}
}

// StudentsOfCourse handles GET /enrollments/course/{id}/students
func StudentsOfCourse(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("getting students of a course", slog.String("course_id", id))

		students, err := svc.StudentsOfCourse(r.Context(), id)
		if err != nil {
			response.Fail(w, err, "error getting students of course", id)
			return
		}

		response.WriteJSON(w, http.StatusOK, students)
	}
}
