package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/service"
	"github.com/phrazzld/task-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
//
// Any failure raised by the storage layer, constraint violations included, is
// a 500: only request-shaped errors map to 4xx.
func MapErrorToStatusCode(err error) int {
	var serviceErr *service.TaskServiceError
	switch {
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.As(err, &serviceErr):
		return http.StatusInternalServerError

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var serviceErr *service.TaskServiceError
	switch {
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, store.ErrNotFound):
		return "Task not found"

	case errors.As(err, &serviceErr):
		return "An unexpected error occurred"

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid task ID"

	case errors.Is(err, domain.ErrValidation):
		return "Validation failed"

	default:
		return "An unexpected error occurred"
	}
}

// validationFields turns a domain validation error into the same field map
// the request validator produces. ok is false if err is not a validation error.
func validationFields(err error) (map[string]string, bool) {
	var validationErr *domain.ValidationError
	if !errors.As(err, &validationErr) {
		return nil, false
	}

	var message string
	switch {
	case errors.Is(err, domain.ErrTaskTitleEmpty):
		message = msgTitleRequired
	case errors.Is(err, domain.ErrTaskTitleTooLong):
		message = msgTitleTooLong
	case errors.Is(err, domain.ErrTaskDescriptionTooLong):
		message = msgDescriptionTooLong
	case errors.Is(err, domain.ErrInvalidTaskStatus):
		message = msgStatusInvalid
	case errors.Is(err, domain.ErrTaskDueDateEmpty):
		message = msgDueDateRequired
	case errors.Is(err, domain.ErrTaskDueDateOutOfRange):
		message = msgDueDateRange
	case validationErr.Field == "dueDate":
		message = msgDueDateFormat
	default:
		message = "Invalid value"
	}

	return map[string]string{validationErr.Field: message}, true
}
