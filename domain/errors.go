package domain

import (
	"errors"
	"fmt"
)

// Error codes for domain errors
const (
	ErrCodeNotFound             = "NOT_FOUND"
	ErrCodeUnreadableFile       = "UNREADABLE_FILE"
	ErrCodeUnsupportedExtension = "UNSUPPORTED_EXTENSION"
	ErrCodeInvalidThreshold     = "INVALID_THRESHOLD"
	ErrCodeInvalidInput         = "INVALID_INPUT"
	ErrCodeConfig               = "CONFIG_ERROR"
	ErrCodeAnalysis             = "ANALYSIS_ERROR"
)

// DomainError represents a structured error with an error code
type DomainError struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface
func (e DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause
func (e DomainError) Unwrap() error {
	return e.Cause
}

// NewDomainError creates a new domain error with the given code
func NewDomainError(code, message string, cause error) error {
	return DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewNotFoundError creates an error for a missing or inaccessible root path.
// Fatal to the analyze call.
func NewNotFoundError(path string, cause error) error {
	return NewDomainError(ErrCodeNotFound, fmt.Sprintf("path not found: %s", path), cause)
}

// NewUnreadableFileError creates an error for a file that could not be
// read or decoded. Recorded as a violation, never fatal.
func NewUnreadableFileError(path string, cause error) error {
	return NewDomainError(ErrCodeUnreadableFile, fmt.Sprintf("unreadable file: %s", path), cause)
}

// NewUnsupportedExtensionError creates an error for a file extension
// with no registered analyzer
func NewUnsupportedExtensionError(ext string) error {
	return NewDomainError(ErrCodeUnsupportedExtension, fmt.Sprintf("no analyzer registered for extension: %s", ext), nil)
}

// NewInvalidThresholdError creates an error for a non-positive threshold
// value. Fatal at configuration validation time.
func NewInvalidThresholdError(name string, value int) error {
	return NewDomainError(ErrCodeInvalidThreshold, fmt.Sprintf("threshold %s must be a positive integer, got %d", name, value), nil)
}

// NewInvalidInputError creates an error for invalid input
func NewInvalidInputError(message string, cause error) error {
	return NewDomainError(ErrCodeInvalidInput, message, cause)
}

// NewConfigError creates an error for configuration problems
func NewConfigError(message string, cause error) error {
	return NewDomainError(ErrCodeConfig, message, cause)
}

// NewAnalysisError creates an error for analysis failures
func NewAnalysisError(message string, cause error) error {
	return NewDomainError(ErrCodeAnalysis, message, cause)
}

// IsErrorCode reports whether err is a DomainError with the given code
func IsErrorCode(err error, code string) bool {
	var domainErr DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// IsNotFound reports whether err is a NotFound domain error
func IsNotFound(err error) bool {
	return IsErrorCode(err, ErrCodeNotFound)
}

// IsInvalidThreshold reports whether err is an InvalidThreshold domain error
func IsInvalidThreshold(err error) bool {
	return IsErrorCode(err, ErrCodeInvalidThreshold)
}
