// Package request decodes and validates JSON request bodies.
package request

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/aanand-mishra/course-api/internal/service"
	"github.com/pkg/errors"
)

// DecodeJSON reads r's body into v and validates it against v's entity
// schema. Every failure is a *service.ValidationError, so an empty body,
// malformed JSON, and a missing field all map to the same client error.
func DecodeJSON(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return &service.ValidationError{Err: errors.New("request body is empty")}
	}
	if err != nil {
		return &service.ValidationError{Err: errors.Wrap(err, "decoding request body")}
	}

	return service.Validate(v)
}
