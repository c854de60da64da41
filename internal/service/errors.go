package service

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// ErrNotFound matches every *NotFoundError under errors.Is.
var ErrNotFound = errors.New("not found")

// NotFoundError reports a well-formed id with no matching record.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError reports input that does not satisfy an entity schema:
// a body that is not valid JSON, or a failed validate:"..." rule.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// validate is shared by every service. A *validator.Validate caches
// struct metadata and is safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their JSON name ("instructor_id") rather than the
	// Go field name ("InstructorID").
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks in against its validate:"..." tags.
func Validate(in any) error {
	if err := validate.Struct(in); err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}
