package services

import "net/http"

// Error kinds carried alongside the HTTP status so callers can distinguish
// failure classes without parsing messages.
const (
	ErrKindValidation        = "validation_error"
	ErrKindNotFound          = "not_found"
	ErrKindDanglingReference = "dangling_reference"
	ErrKindStorageFault      = "storage_fault"
	ErrKindUnauthorized      = "unauthorized"
	ErrKindConflict          = "conflict"
)

// ServiceError is a typed error with an HTTP status code and an error kind.
type ServiceError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *ServiceError) Error() string { return e.Message }

func validationError(msg string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusBadRequest, Code: ErrKindValidation, Message: msg}
}

func notFoundError(msg string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusNotFound, Code: ErrKindNotFound, Message: msg}
}

// danglingReferenceError marks a recipe component whose ingredient was valid
// at creation time but has since been deleted. Distinct from not_found so
// callers can tell "recipe missing" apart from "recipe references a deleted
// ingredient".
func danglingReferenceError(msg string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusConflict, Code: ErrKindDanglingReference, Message: msg}
}

func storageFaultError(msg string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusInternalServerError, Code: ErrKindStorageFault, Message: msg}
}

func unauthorizedError(msg string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusUnauthorized, Code: ErrKindUnauthorized, Message: msg}
}

func conflictError(msg string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusConflict, Code: ErrKindConflict, Message: msg}
}
