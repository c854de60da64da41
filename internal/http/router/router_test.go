package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aanand-mishra/course-api/internal/storage"
	"github.com/aanand-mishra/course-api/internal/storage/memory"
	"github.com/aanand-mishra/course-api/internal/types"
	"github.com/aanand-mishra/course-api/internal/utils/response"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var fixedNow = time.Date(2024, 9, 1, 8, 30, 0, 0, time.UTC)

func newTestHandler(store storage.Storage) http.Handler {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(store, log, Options{Now: func() time.Time { return fixedNow }})
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reqBody = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reqBody = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), rec.Body.String())
	return v
}

func TestScenario(t *testing.T) {
	h := newTestHandler(memory.New())

	rec := do(t, h, http.MethodPost, "/instructors", map[string]string{"name": "Ada", "email": "ada@x.com"})
	require.Equal(t, http.StatusCreated, rec.Code)
	ada := decode[types.Instructor](t, rec)
	require.NotEmpty(t, ada.ID)
	assert.Nil(t, ada.Expertise)

	rec = do(t, h, http.MethodPost, "/courses", map[string]string{"title": "CS101", "instructor_id": ada.ID})
	require.Equal(t, http.StatusCreated, rec.Code)
	cs101 := decode[types.Course](t, rec)

	rec = do(t, h, http.MethodGet, "/courses/instructor/"+ada.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []types.Course{cs101}, decode[[]types.Course](t, rec))

	rec = do(t, h, http.MethodPost, "/students", map[string]string{"name": "Bob", "email": "bob@x.com"})
	require.Equal(t, http.StatusCreated, rec.Code)
	bob := decode[types.Student](t, rec)

	rec = do(t, h, http.MethodPost, "/enrollments", map[string]string{"student_id": bob.ID, "course_id": cs101.ID})
	require.Equal(t, http.StatusCreated, rec.Code)
	enrollment := decode[types.Enrollment](t, rec)
	assert.Equal(t, bob.ID, enrollment.StudentID)
	assert.Equal(t, cs101.ID, enrollment.CourseID)
	assert.True(t, fixedNow.Equal(enrollment.Timestamp))

	rec = do(t, h, http.MethodGet, "/enrollments/student/"+bob.ID+"/courses", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []types.Course{cs101}, decode[[]types.Course](t, rec))

	rec = do(t, h, http.MethodGet, "/enrollments/course/"+cs101.ID+"/students", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []types.Student{bob}, decode[[]types.Student](t, rec))

	rec = do(t, h, http.MethodDelete, "/instructors/"+ada.ID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	// Deleting the instructor does not cascade to its courses.
	rec = do(t, h, http.MethodGet, "/courses/instructor/"+ada.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []types.Course{cs101}, decode[[]types.Course](t, rec))

	rec = do(t, h, http.MethodGet, "/instructors/"+ada.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCRUDStatusCodes(t *testing.T) {
	h := newTestHandler(memory.New())
	absent := primitive.NewObjectID().Hex()

	for _, tc := range []struct {
		path    string
		valid   any
		invalid any
	}{
		{
			path:    "/instructors",
			valid:   map[string]string{"name": "Ada", "email": "ada@x.com", "expertise": "compilers"},
			invalid: map[string]string{"name": "Ada", "email": "nope"},
		},
		{
			path:    "/students",
			valid:   map[string]string{"name": "Bob", "email": "bob@x.com"},
			invalid: map[string]string{"email": "bob@x.com"},
		},
		{
			path:    "/courses",
			valid:   map[string]string{"title": "CS101", "instructor_id": "anything"},
			invalid: map[string]string{"title": "CS101"},
		},
	} {
		t.Run(tc.path, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, tc.path, tc.valid)
			require.Equal(t, http.StatusCreated, rec.Code)
			created := decode[map[string]any](t, rec)
			id, _ := created["id"].(string)
			require.NotEmpty(t, id)

			t.Run("Validation", func(t *testing.T) {
				assert.Equal(t, http.StatusUnprocessableEntity, do(t, h, http.MethodPost, tc.path, tc.invalid).Code)
				assert.Equal(t, http.StatusUnprocessableEntity, do(t, h, http.MethodPost, tc.path, "").Code)
				assert.Equal(t, http.StatusUnprocessableEntity, do(t, h, http.MethodPost, tc.path, "{not json").Code)
				assert.Equal(t, http.StatusUnprocessableEntity, do(t, h, http.MethodPut, tc.path+"/"+id, tc.invalid).Code)
			})

			t.Run("List", func(t *testing.T) {
				for _, path := range []string{tc.path, tc.path + "/"} {
					rec := do(t, h, http.MethodGet, path, nil)
					require.Equal(t, http.StatusOK, rec.Code)
					assert.Len(t, decode[[]map[string]any](t, rec), 1)
				}
			})

			t.Run("Get", func(t *testing.T) {
				rec := do(t, h, http.MethodGet, tc.path+"/"+id, nil)
				require.Equal(t, http.StatusOK, rec.Code)
				assert.Equal(t, created, decode[map[string]any](t, rec))
			})

			t.Run("Put", func(t *testing.T) {
				rec := do(t, h, http.MethodPut, tc.path+"/"+id, tc.valid)
				require.Equal(t, http.StatusOK, rec.Code)
				assert.Equal(t, created, decode[map[string]any](t, rec))
			})

			t.Run("BadID", func(t *testing.T) {
				for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
					var body any
					if method == http.MethodPut {
						body = tc.valid
					}
					rec := do(t, h, method, tc.path+"/not-an-id", body)
					assert.Equal(t, http.StatusBadRequest, rec.Code, method)
					assert.Equal(t, "invalid id format", decode[response.Response](t, rec).Error)
				}
			})

			t.Run("AbsentID", func(t *testing.T) {
				for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
					var body any
					if method == http.MethodPut {
						body = tc.valid
					}
					rec := do(t, h, method, tc.path+"/"+absent, body)
					assert.Equal(t, http.StatusNotFound, rec.Code, method)
				}
			})

			t.Run("DeleteTwice", func(t *testing.T) {
				assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, tc.path+"/"+id, nil).Code)
				assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodDelete, tc.path+"/"+id, nil).Code)
			})
		})
	}
}

func TestEnrollmentRoutes(t *testing.T) {
	h := newTestHandler(memory.New())

	rec := do(t, h, http.MethodPost, "/students", map[string]string{"name": "Bob", "email": "bob@x.com"})
	require.Equal(t, http.StatusCreated, rec.Code)
	bob := decode[types.Student](t, rec)

	rec = do(t, h, http.MethodGet, "/enrollments/student/"+bob.ID+"/courses", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	rec = do(t, h, http.MethodPost, "/enrollments", map[string]string{"student_id": bob.ID})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decode[response.Response](t, rec).Error, "field course_id is required")

	explicit := time.Date(2023, 5, 6, 7, 8, 9, 0, time.UTC)
	rec = do(t, h, http.MethodPost, "/enrollments", map[string]any{
		"student_id": bob.ID, "course_id": "not-an-id", "timestamp": explicit,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	bad := decode[types.Enrollment](t, rec)
	assert.True(t, explicit.Equal(bad.Timestamp))

	rec = do(t, h, http.MethodGet, "/enrollments/"+bad.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, bad, decode[types.Enrollment](t, rec))

	// The stored course_id is malformed, so the whole lookup fails.
	rec = do(t, h, http.MethodGet, "/enrollments/student/"+bob.ID+"/courses", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/enrollments", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]types.Enrollment](t, rec), 1)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodDelete, "/enrollments/xyz", nil).Code)
	assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, "/enrollments/"+bad.ID, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodDelete, "/enrollments/"+bad.ID, nil).Code)
}

func TestHealthz(t *testing.T) {
	rec := do(t, newTestHandler(memory.New()), http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

type brokenCollection struct{}

var errDown = errors.New("mongodb://admin:secret@db:27017 unreachable")

func (brokenCollection) Insert(context.Context, any) (primitive.ObjectID, error) {
	return primitive.NilObjectID, errDown
}
func (brokenCollection) FindByID(context.Context, primitive.ObjectID) (bson.Raw, error) {
	return nil, errDown
}
func (brokenCollection) Find(context.Context, storage.Filter) ([]bson.Raw, error) {
	return nil, errDown
}
func (brokenCollection) FindByIDs(context.Context, []primitive.ObjectID) ([]bson.Raw, error) {
	return nil, errDown
}
func (brokenCollection) UpdateByID(context.Context, primitive.ObjectID, any) (bool, error) {
	return false, errDown
}
func (brokenCollection) DeleteByID(context.Context, primitive.ObjectID) (bool, error) {
	return false, errDown
}

type brokenStorage struct{}

func (brokenStorage) Collection(string) storage.Collection { return brokenCollection{} }
func (brokenStorage) Close(context.Context) error           { return nil }

func TestStorageFailureIs500(t *testing.T) {
	h := newTestHandler(brokenStorage{})

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/students"},
		{http.MethodGet, "/students/" + primitive.NewObjectID().Hex()},
		{http.MethodGet, "/courses/instructor/x"},
		{http.MethodGet, "/enrollments/course/x/students"},
	} {
		rec := do(t, h, tc.method, tc.path, nil)
		assert.Equal(t, http.StatusInternalServerError, rec.Code, tc.path)
		body := decode[response.Response](t, rec)
		assert.Equal(t, "internal server error", body.Error)
		assert.NotContains(t, body.Error, "secret")
	}
}
