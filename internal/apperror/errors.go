// Package apperror defines the typed failures raised by the domain services.
package apperror

import (
	"errors"
	"fmt"
)

// Kind is the coarse classification that decides the HTTP status.
type Kind string

const (
	KindValidation Kind = "validation_failure"
	KindNotFound   Kind = "resource_not_found"
	KindDuplicate  Kind = "duplicate_resource"
	KindInUse      Kind = "resource_in_use"
)

// Code is the machine-readable error code returned to clients.
type Code string

const (
	CodeNullRequest      Code = "NULL_REQUEST"
	CodeValidationFailed Code = "VALIDATION_FAILED"
	CodeInvalidID        Code = "INVALID_ID"
	CodeInvalidSearch    Code = "INVALID_SEARCH"
	CodeInvalidEmail     Code = "INVALID_EMAIL"
	CodeInvalidCapacity  Code = "INVALID_CAPACITY"
	CodeInvalidDateRange Code = "INVALID_DATE_RANGE"
	CodeInvalidDate      Code = "INVALID_DATE"
	CodeInvalidPage      Code = "INVALID_PAGE"
	CodeInvalidSort      Code = "INVALID_SORT"

	CodeTrainerNotFound    Code = "TRAINER_NOT_FOUND"
	CodeTrainerEmailExists Code = "TRAINER_EMAIL_EXISTS"
	CodeTrainerMaxCourses  Code = "TRAINER_MAX_COURSES"

	CodeStudentNotFound    Code = "STUDENT_NOT_FOUND"
	CodeStudentEmailExists Code = "STUDENT_EMAIL_EXISTS"

	CodeCourseNotFound    Code = "COURSE_NOT_FOUND"
	CodeCourseFull        Code = "COURSE_FULL"
	CodeCourseHasStudents Code = "COURSE_HAS_STUDENTS"

	CodeClassRoomNotFound    Code = "CLASSROOM_NOT_FOUND"
	CodeClassRoomExists      Code = "CLASSROOM_EXISTS"
	CodeClassRoomFull        Code = "CLASSROOM_FULL"
	CodeClassRoomNotEmpty    Code = "CLASSROOM_NOT_EMPTY"
	CodeClassRoomHasTrainers Code = "CLASSROOM_HAS_TRAINERS"

	CodeInternal Code = "INTERNAL_ERROR"
)

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a classified failure with a client-facing message.
type Error struct {
	Kind    Kind
	Code    Code
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches another *Error with the same code, so sentinel-style
// comparisons like errors.Is(err, &Error{Code: CodeTrainerNotFound}) work.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code != "" && t.Code == e.Code
}

func Validation(code Code, format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: fmt.Sprintf(format, args...)}
}

// InvalidFields aggregates field-level failures under VALIDATION_FAILED.
func InvalidFields(fields []FieldError) *Error {
	return &Error{
		Kind:    KindValidation,
		Code:    CodeValidationFailed,
		Message: "Validation failed",
		Fields:  fields,
	}
}

func NotFound(code Code, format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: fmt.Sprintf(format, args...)}
}

func Duplicate(code Code, format string, args ...any) *Error {
	return &Error{Kind: KindDuplicate, Code: code, Message: fmt.Sprintf(format, args...)}
}

func InUse(code Code, format string, args ...any) *Error {
	return &Error{Kind: KindInUse, Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to e and returns it.
func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}

// IsKind reports whether err carries an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind == kind
	}
	return false
}

// CodeOf returns the code carried by err, or CodeInternal.
func CodeOf(err error) Code {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return CodeInternal
}
