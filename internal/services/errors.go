package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"jobportal/internal/access"

	"github.com/go-playground/validator/v10"
)

// Define common service errors
var (
	ErrValidation     = errors.New("validation failed")
	ErrAuthentication = access.ErrUnauthenticated
	ErrForbidden      = access.ErrForbidden
	ErrNotFound       = errors.New("resource not found")
	ErrConflict       = errors.New("conflict") // duplicate application, OTP mismatch, state conflict
	ErrDependency     = errors.New("upstream dependency failed")

	// ErrInvalidState is returned when a job does not accept the requested action in its current status.
	ErrInvalidState = fmt.Errorf("%w: invalid state for operation", ErrConflict)
)

// Error is a domain failure carrying a message safe to show to the caller.
// Kind is one of the sentinels above; Err is the underlying cause, logged but never shown.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func newError(kind error, message string) error {
	return &Error{Kind: kind, Message: message}
}

func wrapError(kind error, message string, cause error) error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

// ValidationError reports malformed or missing input, keyed by JSON field name.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return e.Message + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func invalidField(field, reason string) *ValidationError {
	return &ValidationError{Message: "Validation failed", Fields: map[string]string{field: reason}}
}

// fromValidator converts validator output into a ValidationError.
func fromValidator(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return wrapError(ErrValidation, "Validation failed", err)
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldPath(fe)] = fieldMessage(fe)
	}
	return &ValidationError{Message: "Validation failed", Fields: fields}
}

// fieldPath drops the top-level struct name from the namespace: "CreateJobRequest.title" -> "title".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "min":
		return fmt.Sprintf("must be at least %s characters long", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", fe.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s characters long", fe.Param())
	case "numeric":
		return "must contain only digits"
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "job_type":
		return "must be one of Full-time, Part-time, Contract, Internship, Remote"
	case "application_status":
		return "must be one of Pending, Reviewing, Shortlisted, Rejected, Hired"
	case "account_type":
		return "must be JobSeeker or Recruiter"
	case "gender":
		return "must be Male, Female or Other"
	default:
		return fmt.Sprintf("failed on the '%s' tag", fe.Tag())
	}
}

// authorize turns an access guard failure into a domain error.
func authorize(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, access.ErrUnauthenticated):
		return wrapError(ErrAuthentication, "Please log in to continue", err)
	case errors.Is(err, access.ErrForbidden):
		return wrapError(ErrForbidden, "You are not allowed to perform this action", err)
	default:
		return err
	}
}
