package errors

import (
	"fmt"
)

// AppError carries a code, a client-safe message and the HTTP status the
// error maps to. Cause is logged but never sent.
type AppError struct {
	Code       ErrorCode      `json:"code"`
	Message    string         `json:"message"`
	Retryable  bool           `json:"retryable"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Cause      error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the cause and returns e.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges details into e and returns e.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	for k, v := range details {
		e.WithDetail(k, v)
	}
	return e
}

// WithDetail sets one detail and returns e.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New builds an AppError whose status and retryability follow code.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: HTTPStatus(code),
		Retryable:  IsRetryableCode(code),
	}
}

// NotFound reports a missing resource. An empty id is left out of details.
func NotFound(resource, id string) *AppError {
	err := New(ErrCodeNotFound, fmt.Sprintf("The requested %s was not found.", resource)).
		WithDetail("resource", resource)
	if id != "" {
		err.WithDetail("id", id)
	}
	return err
}

// Validation reports invalid input.
func Validation(message string) *AppError {
	return New(ErrCodeInvalidInput, message)
}

// MissingField reports a required field that was empty.
func MissingField(field string) *AppError {
	return New(ErrCodeMissingField, "Missing required field: "+field).WithDetail("field", field)
}

// Timeout reports an operation that ran out of time.
func Timeout(operation string) *AppError {
	return New(ErrCodeTimeout, "The operation took too long.").WithDetail("operation", operation)
}

// StartupFailed reports a startup action that returned an error. The host
// does not serve after it.
func StartupFailed(action string, cause error) *AppError {
	return New(ErrCodeStartupFailed, fmt.Sprintf("Startup action %s failed.", action)).
		WithDetail("action", action).
		WithCause(cause)
}

// ScopeResolution reports a dependency a scope could not build.
func ScopeResolution(key string, cause error) *AppError {
	return New(ErrCodeScopeResolution, fmt.Sprintf("Unable to resolve %s from scope.", key)).
		WithDetail("key", key).
		WithCause(cause)
}

// Internal hides cause behind a generic message.
func Internal(cause error) *AppError {
	return New(ErrCodeInternal, "An unexpected error occurred. Please try again or contact support.").
		WithCause(cause)
}
