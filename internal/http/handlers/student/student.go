// Package student contains all HTTP handlers related to the Student resource.
package student

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/course-api/internal/types"
	"github.com/aanand-mishra/course-api/internal/utils/request"
	"github.com/aanand-mishra/course-api/internal/utils/response"
)

type Service interface {
	Create(ctx context.Context, in types.StudentCreate) (types.Student, error)
	List(ctx context.Context) ([]types.Student, error)
	Get(ctx context.Context, id string) (types.Student, error)
	Update(ctx context.Context, id string, in types.StudentCreate) (types.Student, error)
	Delete(ctx context.Context, id string) error
}

// New handles POST /students
//
//	{ "name": "Bob", "email": "bob@x.com" }
func New(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a student")

		var in types.StudentCreate
		if err := request.DecodeJSON(r, &in); err != nil {
			response.WriteError(w, err)
			return
		}

		created, err := svc.Create(r.Context(), in)
		if err != nil {
			response.Fail(w, err, "error creating student", "")
			return
		}

		slog.Info("student created", slog.String("id", created.ID))
		response.WriteJSON(w, http.StatusCreated, created)
	}
}

// GetList handles GET /students
func GetList(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all students")

		students, err := svc.List(r.Context())
		if err != nil {
			response.Fail(w, err, "error getting students", "")
			return
		}

		response.WriteJSON(w, http.StatusOK, students)
	}
}

// GetByID handles GET /students/{id}
func GetByID(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("getting a student", slog.String("id", id))

		student, err := svc.Get(r.Context(), id)
		if err != nil {
			response.Fail(w, err, "error getting student", id)
			return
		}

		response.WriteJSON(w, http.StatusOK, student)
	}
}

// Update handles PUT /students/{id}
func Update(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("updating a student", slog.String("id", id))

		var in types.StudentCreate
		if err := request.DecodeJSON(r, &in); err != nil {
			response.WriteError(w, err)
			return
		}

		updated, err := svc.Update(r.Context(), id, in)
		if err != nil {
			response.Fail(w, err, "error updating student", id)
			return
		}

		slog.Info("student updated", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, updated)
	}
}

// Delete handles DELETE /students/{id}
// Enrollments that reference the student are kept.
func Delete(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("deleting a student", slog.String("id", id))

		if err := svc.Delete(r.Context(), id); err != nil {
			response.Fail(w, err, "error deleting student", id)
			return
		}

		slog.Info("student deleted", slog.String("id", id))
		response.NoContent(w)
	}
}
