package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a unique error code for each error type
type ErrorCode string

const (
	// General errors
	ErrCodeInternal   ErrorCode = "INTERNAL_ERROR"
	ErrCodeNotFound   ErrorCode = "NOT_FOUND"
	ErrCodeBadRequest ErrorCode = "BAD_REQUEST"
	ErrCodeConflict   ErrorCode = "CONFLICT"

	// Model invocation errors
	ErrCodeModelRequestFailed ErrorCode = "MODEL_REQUEST_FAILED"
	ErrCodeModelUnparsable    ErrorCode = "MODEL_RESPONSE_UNPARSABLE"
	ErrCodeModelNotConfigured ErrorCode = "MODEL_NOT_CONFIGURED"

	// Database errors
	ErrCodeDatabaseError   ErrorCode = "DATABASE_ERROR"
	ErrCodeRecordNotFound  ErrorCode = "RECORD_NOT_FOUND"
	ErrCodeDuplicateRecord ErrorCode = "DUPLICATE_RECORD"

	// Storage errors
	ErrCodeStorageError ErrorCode = "STORAGE_ERROR"
	ErrCodeInvalidImage ErrorCode = "INVALID_IMAGE"

	// Catalog import errors
	ErrCodeInvalidFile       ErrorCode = "INVALID_FILE"
	ErrCodeUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"
	ErrCodeFileParseError    ErrorCode = "FILE_PARSE_ERROR"
)

// AppError represents a structured application error
type AppError struct {
	Code       ErrorCode              `json:"code"`
	Message    string                 `json:"message"`
	StatusCode int                    `json:"-"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Err        error                  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s - %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetails adds additional context to the error
func (e *AppError) WithDetails(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError
func New(code ErrorCode, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// Wrap wraps an existing error with AppError context
func Wrap(err error, code ErrorCode, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Err:        err,
	}
}

// Common error constructors

func Internal(message string) *AppError {
	return New(ErrCodeInternal, message, http.StatusInternalServerError)
}

func InternalWrap(err error, message string) *AppError {
	return Wrap(err, ErrCodeInternal, message, http.StatusInternalServerError)
}

func NotFound(message string) *AppError {
	return New(ErrCodeNotFound, message, http.StatusNotFound)
}

func BadRequest(message string) *AppError {
	return New(ErrCodeBadRequest, message, http.StatusBadRequest)
}

func Conflict(message string) *AppError {
	return New(ErrCodeConflict, message, http.StatusConflict)
}

// Model invocation errors

func ModelRequestFailed(err error) *AppError {
	return Wrap(err, ErrCodeModelRequestFailed, "model request failed", http.StatusInternalServerError)
}

func ModelUnparsable(message string) *AppError {
	return New(ErrCodeModelUnparsable, message, http.StatusInternalServerError)
}

func ModelNotConfigured() *AppError {
	return New(ErrCodeModelNotConfigured, "no model API key configured", http.StatusInternalServerError)
}

// Database errors

func DatabaseError(err error) *AppError {
	return Wrap(err, ErrCodeDatabaseError, "database operation failed", http.StatusInternalServerError)
}

func RecordNotFound(resource string) *AppError {
	return New(ErrCodeRecordNotFound,
		fmt.Sprintf("%s not found", resource),
		http.StatusNotFound)
}

// Storage errors

func StorageError(err error) *AppError {
	return Wrap(err, ErrCodeStorageError, "storage operation failed", http.StatusInternalServerError)
}

func InvalidImage(message string) *AppError {
	return New(ErrCodeInvalidImage, message, http.StatusBadRequest)
}

// Catalog import errors

func InvalidFile(message string) *AppError {
	return New(ErrCodeInvalidFile, message, http.StatusBadRequest)
}

func UnsupportedFormat(format string) *AppError {
	return New(ErrCodeUnsupportedFormat,
		fmt.Sprintf("unsupported file format: %s", format),
		http.StatusBadRequest)
}

func FileParseError(err error) *AppError {
	return Wrap(err, ErrCodeFileParseError, "failed to parse catalog file", http.StatusBadRequest)
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts AppError from error chain
func GetAppError(err error) (*AppError, bool) {
	var appErr *AppError
	ok := errors.As(err, &appErr)
	return appErr, ok
}
