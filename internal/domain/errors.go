package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal ErrorCode = "INTERNAL_ERROR"
	CodeNotFound ErrorCode = "NOT_FOUND"

	// Core taxonomy: validation rejects input before any network call,
	// auth covers credential/OTP failure, persistence covers failed backend
	// writes, generation covers an unusable goal-source response.
	CodeValidation  ErrorCode = "VALIDATION_ERROR"
	CodeAuth        ErrorCode = "AUTH_ERROR"
	CodePersistence ErrorCode = "PERSISTENCE_ERROR"
	CodeGeneration  ErrorCode = "GENERATION_ERROR"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func NewValidationError(message string) *DomainError {
	return NewError(CodeValidation, message, nil)
}

func NewAuthError(message string, cause error) *DomainError {
	return NewError(CodeAuth, message, cause)
}

// NewPersistenceError names the write that failed so callers can report
// which step of a multi-write sequence broke.
func NewPersistenceError(write string, cause error) *DomainError {
	return &DomainError{
		Code:    CodePersistence,
		Message: fmt.Sprintf("backend write failed: %s", write),
		Cause:   cause,
		Context: map[string]interface{}{"write": write},
	}
}

func NewGenerationError(message string, cause error) *DomainError {
	return NewError(CodeGeneration, message, cause)
}

func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}
