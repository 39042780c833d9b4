package errors

import "net/http"

// ErrorCode is the machine-readable code sent to clients.
type ErrorCode string

const (
	ErrCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrCodeInvalidInput    ErrorCode = "INVALID_INPUT"
	ErrCodeMissingField    ErrorCode = "MISSING_FIELD"
	ErrCodeTimeout         ErrorCode = "TIMEOUT"
	ErrCodeInternal        ErrorCode = "INTERNAL_ERROR"
	ErrCodeStartupFailed   ErrorCode = "STARTUP_FAILED"
	ErrCodeScopeResolution ErrorCode = "SCOPE_RESOLUTION_FAILED"
)

type codeInfo struct {
	status    int
	retryable bool
}

var codes = map[ErrorCode]codeInfo{
	ErrCodeNotFound:        {http.StatusNotFound, false},
	ErrCodeInvalidInput:    {http.StatusBadRequest, false},
	ErrCodeMissingField:    {http.StatusBadRequest, false},
	ErrCodeTimeout:         {http.StatusGatewayTimeout, true},
	ErrCodeInternal:        {http.StatusInternalServerError, false},
	ErrCodeStartupFailed:   {http.StatusServiceUnavailable, false},
	ErrCodeScopeResolution: {http.StatusInternalServerError, false},
}

// HTTPStatus returns the status a code maps to. Unknown codes map to 500.
func HTTPStatus(code ErrorCode) int {
	if info, ok := codes[code]; ok {
		return info.status
	}
	return http.StatusInternalServerError
}

// IsRetryableCode reports whether clients may retry an operation that failed
// with code.
func IsRetryableCode(code ErrorCode) bool {
	return codes[code].retryable
}
