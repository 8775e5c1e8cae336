package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeFileAccess ErrorType = "FILE_ACCESS"
	ErrTypeParsing    ErrorType = "PARSING"
	ErrTypeValidation ErrorType = "VALIDATION"
	ErrTypeConfig     ErrorType = "CONFIG"
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
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches any AppError target of the same Type, so a bare
// &AppError{Type: ErrTypeParsing} works as a sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Type == e.Type && t.Message == "" && t.Cause == nil
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

// Sentinels for errors.Is checks.
var (
	ErrFileAccess = &AppError{Type: ErrTypeFileAccess}
	ErrParsing    = &AppError{Type: ErrTypeParsing}
	ErrValidation = &AppError{Type: ErrTypeValidation}
	ErrConfig     = &AppError{Type: ErrTypeConfig}
)

// NewFileAccessError creates an error for a missing or unreadable input file
func NewFileAccessError(path string, cause error) *AppError {
	return NewAppError(ErrTypeFileAccess, fmt.Sprintf("cannot read %s", path), cause).
		WithContext("path", path)
}

// NewParsingError creates a parsing-related error
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewRowError creates a parsing error pinned to a 1-based line of the input
func NewRowError(line int, field, message string, cause error) *AppError {
	err := NewParsingError(fmt.Sprintf("line %d: %s", line, message), cause).
		WithContext("line", line)
	if field != "" {
		err.WithContext("field", field)
	}
	return err
}

// NewAppValidationError creates a validation error for AppError type
func NewAppValidationError(message string, cause error) *AppError {
	return NewAppError(ErrTypeValidation, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// TypeOf returns the ErrorType of the first AppError in err's chain, or "" if none.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

// IsFileAccess reports whether err is a file access error
func IsFileAccess(err error) bool {
	return stderrors.Is(err, ErrFileAccess)
}

// IsParsing reports whether err is a parsing error
func IsParsing(err error) bool {
	return stderrors.Is(err, ErrParsing)
}
