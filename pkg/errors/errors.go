// Package errors provides structured error types for recordkit.
// All errors include a category, code, message, and retryable flag so callers
// can branch on the kind of failure without string matching.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies errors by the kind of input that was rejected.
type ErrorCategory string

const (
	ErrCategoryValidation ErrorCategory = "VALIDATION"
	ErrCategoryStructure  ErrorCategory = "STRUCTURE"
	ErrCategorySchema     ErrorCategory = "SCHEMA"
	ErrCategorySource     ErrorCategory = "SOURCE"
	ErrCategoryInternal   ErrorCategory = "INTERNAL"
)

// Error codes for each category.
const (
	// Validation codes
	CodeInvalidInput        = "INVALID_INPUT"
	CodeMalformedInput      = "MALFORMED_INPUT"
	CodeInvalidPartitionKey = "INVALID_PARTITION_KEY"
	CodeMissingField        = "MISSING_FIELD"

	// Structure codes
	CodeStructuralMismatch = "STRUCTURAL_MISMATCH"

	// Schema codes
	CodeSchemaMismatch = "SCHEMA_MISMATCH"

	// Source codes
	CodeNotFound          = "NOT_FOUND"
	CodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	CodeReadFailure       = "READ_FAILURE"

	// Internal codes
	CodeUnexpected = "UNEXPECTED"
)

// Sentinels for errors.Is. Matching compares category and code only.
var (
	ErrInvalidInput        = New(ErrCategoryValidation, CodeInvalidInput, "invalid input")
	ErrMalformedInput      = New(ErrCategoryValidation, CodeMalformedInput, "malformed input")
	ErrInvalidPartitionKey = New(ErrCategoryValidation, CodeInvalidPartitionKey, "invalid partition key")
	ErrMissingField        = New(ErrCategoryValidation, CodeMissingField, "missing field")
	ErrStructuralMismatch  = New(ErrCategoryStructure, CodeStructuralMismatch, "structural mismatch")
	ErrSchemaMismatch      = New(ErrCategorySchema, CodeSchemaMismatch, "schema mismatch")
	ErrNotFound            = New(ErrCategorySource, CodeNotFound, "not found")
	ErrUnsupportedFormat   = New(ErrCategorySource, CodeUnsupportedFormat, "unsupported format")
	ErrReadFailure         = New(ErrCategorySource, CodeReadFailure, "read failure")
)

// Error is the structured error type returned by every recordkit package.
type Error struct {
	Category  ErrorCategory
	Code      string
	Message   string
	Details   map[string]interface{}
	Cause     error
	Retryable bool
}

// Error returns a formatted error string.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Category, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Category, e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches this error's category and code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Category == t.Category && e.Code == t.Code
	}
	return false
}

// New creates a new Error.
func New(category ErrorCategory, code, message string) *Error {
	return &Error{
		Category:  category,
		Code:      code,
		Message:   message,
		Retryable: isRetryable(category, code),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(category ErrorCategory, code, message string, cause error) *Error {
	return &Error{
		Category:  category,
		Code:      code,
		Message:   message,
		Cause:     cause,
		Retryable: isRetryable(category, code),
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *Error) WithDetails(details map[string]interface{}) *Error {
	cp := *e
	cp.Details = details
	return &cp
}

// IsRetryable checks whether an error (or its chain) is retryable.
// Nothing in recordkit retries; the flag is a hint for callers.
func IsRetryable(err error) bool {
	var re *Error
	if errors.As(err, &re) {
		return re.Retryable
	}
	return false
}

// GetCategory extracts the error category from an error chain.
// Returns empty string if the error is not an *Error.
func GetCategory(err error) ErrorCategory {
	var re *Error
	if errors.As(err, &re) {
		return re.Category
	}
	return ""
}

// GetCode extracts the error code from an error chain.
// Returns empty string if the error is not an *Error.
func GetCode(err error) string {
	var re *Error
	if errors.As(err, &re) {
		return re.Code
	}
	return ""
}

func isRetryable(category ErrorCategory, code string) bool {
	return category == ErrCategorySource && code == CodeReadFailure
}

// Convenience constructors for common errors.

func InvalidInput(format string, args ...any) *Error {
	return New(ErrCategoryValidation, CodeInvalidInput, fmt.Sprintf(format, args...))
}

func MalformedInput(format string, args ...any) *Error {
	return New(ErrCategoryValidation, CodeMalformedInput, fmt.Sprintf(format, args...))
}

func InvalidPartitionKey(format string, args ...any) *Error {
	return New(ErrCategoryValidation, CodeInvalidPartitionKey, fmt.Sprintf(format, args...))
}

func MissingField(field string) *Error {
	return New(ErrCategoryValidation, CodeMissingField, fmt.Sprintf("field %q is missing", field)).
		WithDetails(map[string]interface{}{"field": field})
}

func StructuralMismatch(format string, args ...any) *Error {
	return New(ErrCategoryStructure, CodeStructuralMismatch, fmt.Sprintf(format, args...))
}

func SchemaMismatch(format string, args ...any) *Error {
	return New(ErrCategorySchema, CodeSchemaMismatch, fmt.Sprintf(format, args...))
}

func NewSourceError(code, message string, cause error) *Error {
	return Wrap(ErrCategorySource, code, message, cause)
}

func NewInternalError(message string, cause error) *Error {
	return Wrap(ErrCategoryInternal, CodeUnexpected, message, cause)
}
