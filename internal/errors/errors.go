package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeInternal         = "INTERNAL_ERROR"
	ErrCodeBadRequest       = "BAD_REQUEST"
	ErrCodeNotAuthenticated = "NOT_AUTHENTICATED"
	ErrCodeRemoteFetch      = "REMOTE_FETCH_FAILED"
)

// Per-field validation reasons. They double as localization keys.
const (
	ReasonRequiredField = "requiredField"
	ReasonInvalidNumber = "invalidNumber"
	ReasonInvalidTime   = "invalidTime"
	ReasonDuplicate     = "duplicateValue"
)

// FieldErrors maps a field (or metric id) to the localization key of its failure.
type FieldErrors map[string]string

// AppError represents an application error with HTTP status code and error code
type AppError struct {
	Code    string      // Error code (e.g., "NOT_FOUND", "VALIDATION_ERROR")
	Message string      // Human-readable error message
	Key     string      // Localization key for Message
	Status  int         // HTTP status code
	Err     error       // Wrapped underlying error (optional)
	Fields  FieldErrors // Per-field reasons for validation errors
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithKey replaces the localization key shown to the user.
func (e *AppError) WithKey(key string) *AppError {
	e.Key = key
	return e
}

// As extracts an *AppError from err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err is an AppError carrying code.
func HasCode(err error, code string) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}

// NewNotFoundError creates a new NOT_FOUND error
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Key:     "notFound",
		Status:  http.StatusNotFound,
	}
}

// NewValidationError creates a new VALIDATION_ERROR for a single field
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Key:     "pleaseCorrectErrors",
		Status:  http.StatusBadRequest,
		Fields:  FieldErrors{field: reason},
	}
}

// NewFieldsError creates a VALIDATION_ERROR covering several fields at once.
func NewFieldsError(fields FieldErrors) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %d field(s)", len(fields)),
		Key:     "pleaseCorrectErrors",
		Status:  http.StatusBadRequest,
		Fields:  fields,
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Key:     "internalError",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// NewBadRequestError creates a new BAD_REQUEST error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Key:     "badRequest",
		Status:  http.StatusBadRequest,
	}
}

// NewNotAuthenticatedError is returned when no trainer identity is present.
func NewNotAuthenticatedError() *AppError {
	return &AppError{
		Code:    ErrCodeNotAuthenticated,
		Message: "trainer is not authenticated",
		Key:     "trainerNotAuthorized",
		Status:  http.StatusUnauthorized,
	}
}

// NewRemoteFetchError wraps a failed read from the document store.
// key is the localization key shown to the user (e.g. "failedToLoadClients").
func NewRemoteFetchError(key string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeRemoteFetch,
		Message: "failed to load data",
		Key:     key,
		Status:  http.StatusBadGateway,
		Err:     err,
	}
}
