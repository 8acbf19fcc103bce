package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Command execution errors
	ErrExecStart  ErrorCode = "EXEC_START"
	ErrExecFailed ErrorCode = "EXEC_FAILED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigBind  ErrorCode = "CONFIG_BIND"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
	ErrDirCreate    ErrorCode = "DIR_CREATE"

	// String / pattern errors
	ErrTemplateRender ErrorCode = "TEMPLATE_RENDER"
	ErrBadPattern     ErrorCode = "BAD_PATTERN"
	ErrBadURL         ErrorCode = "BAD_URL"
)

// KutilsError represents a structured error with code and details
type KutilsError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *KutilsError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *KutilsError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *KutilsError) Is(target error) bool {
	var targetErr *KutilsError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new KutilsError with the given code and message
func New(code ErrorCode, message string) *KutilsError {
	return &KutilsError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new KutilsError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *KutilsError {
	return &KutilsError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a KutilsError
func Wrap(err error, code ErrorCode, message string) *KutilsError {
	if err == nil {
		return nil
	}
	return &KutilsError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *KutilsError {
	if err == nil {
		return nil
	}
	return &KutilsError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *KutilsError) WithDetail(key string, value interface{}) *KutilsError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *KutilsError) WithDetails(details map[string]interface{}) *KutilsError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var kerr *KutilsError
	if errors.As(err, &kerr) {
		return kerr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a KutilsError
func GetErrorCode(err error) ErrorCode {
	var kerr *KutilsError
	if errors.As(err, &kerr) {
		return kerr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a KutilsError
func GetErrorDetails(err error) map[string]interface{} {
	var kerr *KutilsError
	if errors.As(err, &kerr) {
		return kerr.Details
	}
	return nil
}
