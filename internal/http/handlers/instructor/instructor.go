// Package instructor contains all HTTP handlers related to the Instructor
// resource.
//
// HANDLER PATTERN USED HERE: THE CLOSURE / FACTORY PATTERN:
// ────────────────────────────────────────────────────────────
// Each exported function receives its dependency (the service) once at
// startup and returns the http.HandlerFunc the router calls on every
// request:
//
//	router.HandleFunc("POST /instructors", instructor.New(svc))
package instructor

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/course-api/internal/types"
	"github.com/aanand-mishra/course-api/internal/utils/request"
	"github.com/aanand-mishra/course-api/internal/utils/response"
)

// Service is the part of service.InstructorService the handlers use.
type Service interface {
	Create(ctx context.Context, in types.InstructorCreate) (types.Instructor, error)
	List(ctx context.Context) ([]types.Instructor, error)
	Get(ctx context.Context, id string) (types.Instructor, error)
	Update(ctx context.Context, id string, in types.InstructorCreate) (types.Instructor, error)
	Delete(ctx context.Context, id string) error
}

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /instructors
//
// Request body (JSON):
//
//	{ "name": "Ada", "email": "ada@x.com", "expertise": "compilers" }
//
// Success response (201 Created): the instructor with its assigned id.
// Error responses: 422 for an empty, malformed, or invalid body.
// ─────────────────────────────────────────────────────────────────────────────
func New(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating an instructor")

		var in types.InstructorCreate
		if err := request.DecodeJSON(r, &in); err != nil {
			response.WriteError(w, err)
			return
		}

		created, err := svc.Create(r.Context(), in)
		if err != nil {
			response.Fail(w, err, "error creating instructor", "")
			return
		}

		slog.Info("instructor created", slog.String("id", created.ID))
		response.WriteJSON(w, http.StatusCreated, created)
	}
}

// GetList handles GET /instructors
// Returns [] (not null) when there are no instructors.
func GetList(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all instructors")

		instructors, err := svc.List(r.Context())
		if err != nil {
			response.Fail(w, err, "error getting instructors", "")
			return
		}

		response.WriteJSON(w, http.StatusOK, instructors)
	}
}

// GetByID handles GET /instructors/{id}
// 400 for a malformed id, 404 when no instructor has it.
func GetByID(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("getting an instructor", slog.String("id", id))

		instructor, err := svc.Get(r.Context(), id)
		if err != nil {
			response.Fail(w, err, "error getting instructor", id)
			return
		}

		response.WriteJSON(w, http.StatusOK, instructor)
	}
}

// Update handles PUT /instructors/{id}
// Replaces ALL fields; an omitted expertise is cleared.
func Update(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("updating an instructor", slog.String("id", id))

		var in types.InstructorCreate
		if err := request.DecodeJSON(r, &in); err != nil {
			response.WriteError(w, err)
			return
		}

		updated, err := svc.Update(r.Context(), id, in)
		if err != nil {
			response.Fail(w, err, "error updating instructor", id)
			return
		}

		slog.Info("instructor updated", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, updated)
	}
}

// Delete handles DELETE /instructors/{id}
// Courses that reference the instructor are left untouched.
func Delete(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("deleting an instructor", slog.String("id", id))

		if err := svc.Delete(r.Context(), id); err != nil {
			response.Fail(w, err, "error deleting instructor", id)
			return
		}

		slog.Info("instructor deleted", slog.String("id", id))
		response.NoContent(w)
	}
}
