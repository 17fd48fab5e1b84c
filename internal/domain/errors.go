package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     nil,
	}
}

// NewDomainErrorWithCause creates a new DomainError with an underlying cause
func NewDomainErrorWithCause(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain error codes
const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeRateLimited   = "RATE_LIMITED"
	ErrCodeUnavailable   = "UNAVAILABLE"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// Not found errors
var (
	ErrUserNotFound        = NewDomainError(ErrCodeNotFound, "user not found")
	ErrBusinessNotFound    = NewDomainError(ErrCodeNotFound, "business not found")
	ErrDocumentNotFound    = NewDomainError(ErrCodeNotFound, "document not found")
	ErrChatSessionNotFound = NewDomainError(ErrCodeNotFound, "chat session not found")
	ErrDocumentFileMissing = NewDomainError(ErrCodeNotFound, "document has no stored file")
)

// Already exists errors
var (
	ErrUsernameTaken = NewDomainError(ErrCodeAlreadyExists, "username already taken")
	ErrEmailTaken    = NewDomainError(ErrCodeAlreadyExists, "email already registered")
)

// Authorization errors
var (
	ErrInvalidCredentials = NewDomainError(ErrCodeUnauthorized, "invalid username or password")
	ErrInvalidToken       = NewDomainError(ErrCodeUnauthorized, "invalid or expired token")
)

// Collaborator errors
var (
	ErrCompletionUnavailable  = NewDomainError(ErrCodeUnavailable, "ai completion provider not configured")
	ErrFileStorageUnavailable = NewDomainError(ErrCodeUnavailable, "file storage not configured")
	ErrRateLimited            = NewDomainError(ErrCodeRateLimited, "too many ai requests, slow down")
)

// CodeOf returns the DomainError code carried by err, or ErrCodeInternalError
// when err is not a DomainError.
func CodeOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ErrCodeInternalError
}

// IsNotFound reports whether err carries the NOT_FOUND code.
func IsNotFound(err error) bool {
	return err != nil && CodeOf(err) == ErrCodeNotFound
}
