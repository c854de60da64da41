// Package router wires services to handlers and handlers to routes.
package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aanand-mishra/course-api/internal/http/handlers/course"
	"github.com/aanand-mishra/course-api/internal/http/handlers/enrollment"
	"github.com/aanand-mishra/course-api/internal/http/handlers/instructor"
	"github.com/aanand-mishra/course-api/internal/http/handlers/student"
	"github.com/aanand-mishra/course-api/internal/http/middleware"
	"github.com/aanand-mishra/course-api/internal/service"
	"github.com/aanand-mishra/course-api/internal/storage"
	"github.com/aanand-mishra/course-api/internal/utils/response"
)

// Options tunes New. The zero value is ready for production.
type Options struct {
	// Now stamps new enrollments. Defaults to time.Now.
	Now func() time.Time
}

// New builds the full HTTP handler on top of store.
//
// Route table:
//
//	POST   /instructors                        → create
//	GET    /instructors                        → list
//	GET    /instructors/{id}                   → get
//	PUT    /instructors/{id}                   → replace
//	DELETE /instructors/{id}                   → delete
//	       /students/...                       → same five
//	       /courses/...                        → same five
//	GET    /courses/instructor/{id}            → courses taught by an instructor
//	POST   /enrollments                        → enroll
//	GET    /enrollments                        → list
//	GET    /enrollments/{id}                   → get
//	PUT    /enrollments/{id}                   → replace
//	DELETE /enrollments/{id}                   → delete
//	GET    /enrollments/student/{id}/courses   → courses of a student
//	GET    /enrollments/course/{id}/students   → students of a course
//	GET    /healthz                            → liveness
func New(store storage.Storage, log *slog.Logger, opts Options) http.Handler {
	instructors := service.NewInstructorService(store)
	students := service.NewStudentService(store)
	courses := service.NewCourseService(store)
	enrollments := service.NewEnrollmentService(store, opts.Now)

	router := http.NewServeMux()

	resource(router, "/instructors",
		instructor.New(instructors), instructor.GetList(instructors))
	router.HandleFunc("GET /instructors/{id}", instructor.GetByID(instructors))
	router.HandleFunc("PUT /instructors/{id}", instructor.Update(instructors))
	router.HandleFunc("DELETE /instructors/{id}", instructor.Delete(instructors))

	resource(router, "/students",
		student.New(students), student.GetList(students))
	router.HandleFunc("GET /students/{id}", student.GetByID(students))
	router.HandleFunc("PUT /students/{id}", student.Update(students))
	router.HandleFunc("DELETE /students/{id}", student.Delete(students))

	resource(router, "/courses",
		course.New(courses), course.GetList(courses))
	router.HandleFunc("GET /courses/{id}", course.GetByID(courses))
	router.HandleFunc("PUT /courses/{id}", course.Update(courses))
	router.HandleFunc("DELETE /courses/{id}", course.Delete(courses))
	router.HandleFunc("GET /courses/instructor/{id}", course.GetByInstructor(courses))

	resource(router, "/enrollments",
		enrollment.New(enrollments), enrollment.GetList(enrollments))
	router.HandleFunc("GET /enrollments/{id}", enrollment.GetByID(enrollments))
	router.HandleFunc("PUT /enrollments/{id}", enrollment.Update(enrollments))
	router.HandleFunc("DELETE /enrollments/{id}", enrollment.Delete(enrollments))
	router.HandleFunc("GET /enrollments/student/{id}/courses", enrollment.CoursesOfStudent(enrollments))
	router.HandleFunc("GET /enrollments/course/{id}/students", enrollment.StudentsOfCourse(enrollments))

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		response.WriteJSON(w, http.StatusOK, response.Response{Status: response.StatusOK})
	})

	return middleware.Logging(log, router)
}

// resource registers the collection routes of prefix, with and without a
// trailing slash.
func resource(router *http.ServeMux, prefix string, create, list http.HandlerFunc) {
	router.HandleFunc("POST "+prefix, create)
	router.HandleFunc("POST "+prefix+"/{$}", create)
	router.HandleFunc("GET "+prefix, list)
	router.HandleFunc("GET "+prefix+"/{$}", list)
}
