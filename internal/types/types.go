// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles:
// handlers, services, and storage can all import types without depending
// on each other.
//
// Every entity comes as a pair:
//
//   - XCreate is the input schema. It is what clients send in POST/PUT
//     bodies and what gets written to the database. Its validate:"..."
//     tags are checked by the go-playground/validator package.
//   - X is the full record returned to clients: the input fields plus
//     the storage-assigned id, encoded as a string.
//
// NewX builds a record from an id and an input value.
package types

import "time"

// Instructor

type InstructorCreate struct {
	Name      string  `json:"name"      bson:"name"      validate:"required"`
	Email     string  `json:"email"     bson:"email"     validate:"required,email"`
	Expertise *string `json:"expertise" bson:"expertise"`
}

type Instructor struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Expertise *string `json:"expertise"`
}

func NewInstructor(id string, in InstructorCreate) Instructor {
	return Instructor{
		ID:        id,
		Name:      in.Name,
		Email:     in.Email,
		Expertise: in.Expertise,
	}
}

// Student

type StudentCreate struct {
	Name  string `json:"name"  bson:"name"  validate:"required"`
	Email string `json:"email" bson:"email" validate:"required,email"`
}

type Student struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func NewStudent(id string, in StudentCreate) Student {
	return Student{ID: id, Name: in.Name, Email: in.Email}
}

// Course

// CourseCreate.InstructorID is an opaque reference. It is neither checked
// against the instructors collection nor parsed as an identifier.
type CourseCreate struct {
	Title        string  `json:"title"         bson:"title"         validate:"required"`
	Description  *string `json:"description"   bson:"description"`
	InstructorID string  `json:"instructor_id" bson:"instructor_id" validate:"required"`
}

type Course struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  *string `json:"description"`
	InstructorID string  `json:"instructor_id"`
}

func NewCourse(id string, in CourseCreate) Course {
	return Course{
		ID:           id,
		Title:        in.Title,
		Description:  in.Description,
		InstructorID: in.InstructorID,
	}
}

// Enrollment

// EnrollmentCreate links a student to a course by id. Neither reference
// is enforced, so an enrollment may outlive the records it points at.
//
// A zero Timestamp means "now": the enrollment service fills it in when
// the request is handled.
type EnrollmentCreate struct {
	StudentID string    `json:"student_id" bson:"student_id" validate:"required"`
	CourseID  string    `json:"course_id"  bson:"course_id"  validate:"required"`
	Timestamp time.Time `json:"timestamp"  bson:"timestamp"`
}

type Enrollment struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id"`
	CourseID  string    `json:"course_id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewEnrollment(id string, in EnrollmentCreate) Enrollment {
	return Enrollment{
		ID:        id,
		StudentID: in.StudentID,
		CourseID:  in.CourseID,
		Timestamp: in.Timestamp,
	}
}
