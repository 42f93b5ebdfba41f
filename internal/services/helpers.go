package services

import (
	"errors"
	"fmt"

	"jobportal/internal/storage"
	"jobportal/internal/uploads"
)

// mapRepoError maps storage errors to service errors. subject names the entity for messages.
// Errors that are already domain errors pass through unchanged.
func mapRepoError(err error, subject string) error {
	var domainErr *Error
	var validationErr *ValidationError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &domainErr), errors.As(err, &validationErr):
		return err
	case errors.Is(err, storage.ErrNotFound):
		return newError(ErrNotFound, subject+" not found")
	case errors.Is(err, storage.ErrConflict):
		return wrapError(ErrConflict, subject+" already exists", err)
	default:
		return wrapError(ErrDependency, "Storage is temporarily unavailable", fmt.Errorf("%s: %w", subject, err))
	}
}

// mapUploadError reports rejected files as validation errors on field and provider failures as dependency errors.
func mapUploadError(err error, kind uploads.Kind, field string) error {
	maxBytes, formats := uploads.Limits(kind)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, uploads.ErrMissingFile):
		return invalidField(field, "is required")
	case errors.Is(err, uploads.ErrFileTooLarge):
		return invalidField(field, fmt.Sprintf("must be at most %d MB", maxBytes>>20))
	case errors.Is(err, uploads.ErrUnsupportedType):
		return invalidField(field, "only "+formats+" files are allowed")
	case errors.Is(err, uploads.ErrInvalidFile):
		return invalidField(field, "is not a valid file")
	default:
		return wrapError(ErrDependency, "File upload failed", err)
	}
}

func ptr[T any](v T) *T { return &v }
