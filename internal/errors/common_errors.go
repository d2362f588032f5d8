package errors

import (
	"errors"
	"fmt"
	"strings"

	"tabprep/pkg/contracts/domain"
)

// ErrorType represents the kind of failure that ended a run
type ErrorType string

const (
	ErrTypeManifest   ErrorType = "manifest"
	ErrTypeConfig     ErrorType = "config"
	ErrTypeLoad       ErrorType = "load"
	ErrTypeWrite      ErrorType = "write"
	ErrTypeProcessing ErrorType = "processing"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewManifestError creates a manifest parsing or validation error
func NewManifestError(message string, cause error) *AppError {
	return NewAppError(ErrTypeManifest, message, cause)
}

// NewManifestValidationError lists every failed manifest field in one error
func NewManifestValidationError(failures []ValidationError) *AppError {
	parts := make([]string, len(failures))
	for i, f := range failures {
		parts[i] = f.Field + " " + f.Message
	}
	return NewManifestError("invalid manifest: "+strings.Join(parts, "; "), nil).
		WithContext("failures", failures)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// NewLoadError creates a per-file load error
func NewLoadError(message string, cause error) *AppError {
	return NewAppError(ErrTypeLoad, message, cause)
}

// NewWriteError creates an output write error
func NewWriteError(message string, cause error) *AppError {
	return NewAppError(ErrTypeWrite, message, cause)
}

// NewProcessingError creates an unexpected processing error
func NewProcessingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeProcessing, message, cause)
}

// TypeOf returns the ErrorType of the first AppError in err's chain.
// Errors that were never classified are processing errors.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrTypeProcessing
}

// FailureResponse is the single object emitted instead of the results when a
// run fails
type FailureResponse struct {
	Error  string    `json:"error"`
	Status string    `json:"status"`
	Kind   ErrorType `json:"kind"`
}

// NewFailureResponse builds the failure object for err
func NewFailureResponse(err error) *FailureResponse {
	return &FailureResponse{
		Error:  err.Error(),
		Status: domain.RunStatusFailed,
		Kind:   TypeOf(err),
	}
}
