package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"

	// Pipeline specific errors
	CodeValidation   ErrorCode = "VALIDATION_ERROR"
	CodeParseFailure ErrorCode = "PARSE_FAILURE"
	CodeBusinessRule ErrorCode = "BUSINESS_RULE_VIOLATION"
	CodeLLMService   ErrorCode = "LLM_SERVICE_ERROR"
	CodeQuizNotFound ErrorCode = "QUIZ_NOT_FOUND"
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

func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(CodeUnauthorized, message, nil)
}

func NewQuizNotFoundError(quizID string) *DomainError {
	return NewError(CodeQuizNotFound, fmt.Sprintf("Quiz not found with ID: %s", quizID), nil)
}

func NewLLMServiceError(cause error) *DomainError {
	return NewError(CodeLLMService, "Failed to process with LLM service", cause)
}

// NewQuizValidationError wraps a ValidationResult into a DomainError.
// The full ordered error list travels in Context so the HTTP layer can
// return it as data, never as a stack trace.
func NewQuizValidationError(result ValidationResult) *DomainError {
	err := NewError(CodeValidation, "Quiz validation failed", nil)
	err.Context = map[string]interface{}{"errors": result.Errors}
	return err
}

// NewBusinessRuleError reports a policy violation on a structurally valid quiz.
func NewBusinessRuleError(result ValidationResult) *DomainError {
	err := NewError(CodeBusinessRule, "Quiz violates business rules", nil)
	err.Context = map[string]interface{}{"errors": result.Errors}
	return err
}

const parseFailureSnippetLen = 500

// NewParseFailureError reports that no parse or repair strategy produced
// valid JSON. A truncated copy of the raw input and the list of attempted
// strategies are kept for diagnostics.
func NewParseFailureError(rawText string, attempts []string, cause error) *DomainError {
	snippet := rawText
	if len(snippet) > parseFailureSnippetLen {
		snippet = snippet[:parseFailureSnippetLen] + "..."
	}
	err := NewError(CodeParseFailure, "Failed to parse AI response as JSON", cause)
	err.Context = map[string]interface{}{
		"raw_text":  snippet,
		"attempted": attempts,
	}
	return err
}

// FieldError represents a single request-field validation failure
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors is a collection of request-field validation failures
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s: %s", e[0].Field, e[0].Message)
}
