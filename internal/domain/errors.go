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
	CodeValidation   ErrorCode = "VALIDATION_ERROR"
	CodeNotFound     ErrorCode = "NOT_FOUND"

	// Pipeline errors
	CodeModelUnavailable    ErrorCode = "MODEL_UNAVAILABLE"
	CodeInsufficientContent ErrorCode = "INSUFFICIENT_CONTENT"
	CodeGenerationError     ErrorCode = "GENERATION_ERROR"
	CodeExtractionFailure   ErrorCode = "EXTRACTION_FAILURE"

	// CodeNoCardsFound is a warning-level outcome, never returned as an error
	// by the pipeline. It is attached to GenerationResult.Warning instead.
	CodeNoCardsFound ErrorCode = "NO_CARDS_FOUND"
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

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a DomainError with the same code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithContext attaches a detail to the error and returns it.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
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

// Sentinels for errors.Is checks against a code only.
var (
	ErrModelUnavailable    = &DomainError{Code: CodeModelUnavailable}
	ErrInsufficientContent = &DomainError{Code: CodeInsufficientContent}
	ErrGenerationFailed    = &DomainError{Code: CodeGenerationError}
	ErrExtractionFailure   = &DomainError{Code: CodeExtractionFailure}
	ErrInvalidInput        = &DomainError{Code: CodeInvalidInput}
	ErrNotFound            = &DomainError{Code: CodeNotFound}
)

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewResultNotFoundError(requestID string) *DomainError {
	return NewError(CodeNotFound, "No stored result for this request ID", nil).
		WithContext("request_id", requestID)
}

func NewModelUnavailableError(cause error) *DomainError {
	return NewError(CodeModelUnavailable, "The language model could not be loaded", cause)
}

func NewInsufficientContentError(length, minimum int) *DomainError {
	return NewError(CodeInsufficientContent,
		fmt.Sprintf("Please provide enough content (minimum %d characters) to generate flashcards", minimum), nil).
		WithContext("length", length).
		WithContext("minimum", minimum)
}

func NewGenerationError(cause error) *DomainError {
	return NewError(CodeGenerationError, "Model generation error", cause)
}

func NewExtractionFailureError(contentType string, cause error) *DomainError {
	return NewError(CodeExtractionFailure, "Could not extract text from the uploaded file", cause).
		WithContext("content_type", contentType)
}

// NewNoCardsFoundWarning builds the warning attached to an empty result.
func NewNoCardsFoundWarning() *DomainError {
	return NewError(CodeNoCardsFound,
		"Could not generate valid flashcards from this content. The text may be unsuitable or the model produced no complete question/answer pairs", nil)
}
