package core

import (
	"fmt"
)

// ErrorCategory groups related failure modes.
type ErrorCategory string

// Error categories.
const (
	ErrCategoryLocator    ErrorCategory = "locator"    // malformed locator strings
	ErrCategoryResolution ErrorCategory = "resolution" // query evaluated, no usable result
	ErrCategoryConnection ErrorCategory = "connection" // bridge transport failures
	ErrCategoryConfig     ErrorCategory = "config"     // bad configuration
)

// AutomationError is a structured error with category and machine-readable code.
type AutomationError struct {
	Category ErrorCategory
	Code     string // Machine-readable code: element_not_found, malformed_locator, etc.
	Message  string // Human-readable message
	Details  map[string]interface{}
	Cause    error
}

// Error implements the error interface.
func (e *AutomationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *AutomationError) Unwrap() error {
	return e.Cause
}

// Is matches errors by category and code, so copies made by WithMessage and
// friends still compare equal to the predefined sentinels.
func (e *AutomationError) Is(target error) bool {
	t, ok := target.(*AutomationError)
	if !ok {
		return false
	}
	return e.Category == t.Category && e.Code == t.Code
}

// WithCause returns a copy of the error with the given cause.
func (e *AutomationError) WithCause(cause error) *AutomationError {
	return &AutomationError{
		Category: e.Category,
		Code:     e.Code,
		Message:  e.Message,
		Details:  e.Details,
		Cause:    cause,
	}
}

// WithMessage returns a copy of the error with a custom message.
func (e *AutomationError) WithMessage(msg string) *AutomationError {
	return &AutomationError{
		Category: e.Category,
		Code:     e.Code,
		Message:  msg,
		Details:  e.Details,
		Cause:    e.Cause,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *AutomationError) WithDetails(details map[string]interface{}) *AutomationError {
	merged := make(map[string]interface{})
	for k, v := range e.Details {
		merged[k] = v
	}
	for k, v := range details {
		merged[k] = v
	}
	return &AutomationError{
		Category: e.Category,
		Code:     e.Code,
		Message:  e.Message,
		Details:  merged,
		Cause:    e.Cause,
	}
}

// Predefined errors.
var (
	// Parser errors. These are local and non-retryable: the locator string
	// will not become valid by waiting.
	ErrMalformedLocator = &AutomationError{
		Category: ErrCategoryLocator,
		Code:     "malformed_locator",
		Message:  "malformed locator",
	}
	ErrUnknownControlType = &AutomationError{
		Category: ErrCategoryLocator,
		Code:     "unknown_control_type",
		Message:  "unknown control type",
	}
	ErrInvalidOrdinal = &AutomationError{
		Category: ErrCategoryLocator,
		Code:     "invalid_ordinal",
		Message:  "locator index must be a positive integer",
	}

	// Resolver errors. ElementNotFound may be retried by an outer policy
	// because the UI tree is time-varying; the engine itself never retries.
	ErrElementNotFound = &AutomationError{
		Category: ErrCategoryResolution,
		Code:     "element_not_found",
		Message:  "element not found",
	}
	ErrAmbiguousAnchor = &AutomationError{
		Category: ErrCategoryResolution,
		Code:     "ambiguous_anchor",
		Message:  "anchor segment resolved to no element",
	}
	ErrNoWindow = &AutomationError{
		Category: ErrCategoryResolution,
		Code:     "no_active_window",
		Message:  "no active window selected",
	}

	// Connection errors.
	ErrServerUnreachable = &AutomationError{
		Category: ErrCategoryConnection,
		Code:     "server_unreachable",
		Message:  "could not connect to automation bridge",
	}
	ErrNoSession = &AutomationError{
		Category: ErrCategoryConnection,
		Code:     "no_session",
		Message:  "no active bridge session",
	}

	// Config errors.
	ErrInvalidConfig = &AutomationError{
		Category: ErrCategoryConfig,
		Code:     "invalid_config",
		Message:  "invalid configuration",
	}
)

// NewAutomationError creates a new AutomationError with the given parameters.
func NewAutomationError(category ErrorCategory, code, message string) *AutomationError {
	return &AutomationError{
		Category: category,
		Code:     code,
		Message:  message,
	}
}
