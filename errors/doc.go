// Package errors provides unified error handling for hostkit.
// It implements structured error types with error codes, HTTP status mapping,
// and retryable detection following RFC 7807.
//
// Lifecycle failures (StartupFailed, ScopeResolution) wrap their cause, so the
// standard library's errors.Is and errors.As still reach the original error.
package errors
