// Package course contains all HTTP handlers related to the Course resource.
package course

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/course-api/internal/types"
	"github.com/aanand-mishra/course-api/internal/utils/request"
	"github.com/aanand-mishra/course-api/internal/utils/response"
)

type Service interface {
	Create(ctx context.Context, in types.CourseCreate) (types.Course, error)
	List(ctx context.Context) ([]types.Course, error)
	ListByInstructor(ctx context.Context, instructorID string) ([]types.Course, error)
	Get(ctx context.Context, id string) (types.Course, error)
	Update(ctx context.Context, id string, in types.CourseCreate) (types.Course, error)
	Delete(ctx context.Context, id string) error
}

// New handles POST /courses
//
//	{ "title": "CS101", "description": "intro", "instructor_id": "64b7…" }
func New(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a course")

		var in types.CourseCreate
		if err := request.DecodeJSON(r, &in); err != nil {
			response.WriteError(w, err)
			return
		}

		created, err := svc.Create(r.Context(), in)
		if err != nil {
			response.Fail(w, err, "error creating course", "")
			return
		}

		slog.Info("course created", slog.String("id", created.ID))
		response.WriteJSON(w, http.StatusCreated, created)
	}
}

// GetList handles GET /courses
func GetList(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all courses")

		courses, err := svc.List(r.Context())
		if err != nil {
			response.Fail(w, err, "error getting courses", "")
			return
		}

		response.WriteJSON(w, http.StatusOK, courses)
	}
}

// GetByInstructor handles GET /courses/instructor/{id}
// The id is matched as given; an unknown or malformed id yields [].
func GetByInstructor(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("getting courses of an instructor", slog.String("instructor_id", id))

		courses, err := svc.ListByInstructor(r.Context(), id)
		if err != nil {
			response.Fail(w, err, "error getting courses of instructor", id)
			return
		}

		response.WriteJSON(w, http.StatusOK, courses)
	}
}

// GetByID handles GET /courses/{id}
func GetByID(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("getting a course", slog.String("id", id))

		course, err := svc.Get(r.Context(), id)
		if err != nil {
			response.Fail(w, err, "error getting course", id)
			return
		}

		response.WriteJSON(w, http.StatusOK, course)
	}
}

// Update handles PUT /courses/{id}
func Update(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("updating a course", slog.String("id", id))

		var in types.CourseCreate
		if err := request.DecodeJSON(r, &in); err != nil {
			response.WriteError(w, err)
			return
		}

		updated, err := svc.Update(r.Context(), id, in)
		if err != nil {
			response.Fail(w, err, "error updating course", id)
			return
		}

		slog.Info("course updated", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, updated)
	}
}

// Delete handles DELETE /courses/{id}
func Delete(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("deleting a course", slog.String("id", id))

		if err := svc.Delete(r.Context(), id); err != nil {
			response.Fail(w, err, "error deleting course", id)
			return
		}

		slog.Info("course deleted", slog.String("id", id))
		response.NoContent(w)
	}
}
