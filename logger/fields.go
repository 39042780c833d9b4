package logger

import (
	"fmt"
	"time"
)

// Field keys shared by every package.
const (
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldRunID     = "run_id"
	FieldOperation = "operation"
	FieldAction    = "action"
	FieldStatus    = "status"
	FieldError     = "error"
	FieldDuration  = "duration_ms"
	FieldPhase     = "phase"
	FieldCount     = "count"
)

// Fields pairs up alternating keys and values. Non-string keys are printed
// with fmt; a trailing key without a value is dropped.
//
//	log.Info("Seeded store", logger.Fields(logger.FieldCount, n))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		key, ok := kvs[i].(string)
		if !ok {
			key = fmt.Sprint(kvs[i])
		}
		m[key] = kvs[i+1]
	}
	return m
}

// ErrorFields names a failed operation.
func ErrorFields(op string, err error) map[string]interface{} {
	return MergeWithError(Fields(FieldOperation, op), err)
}

// DurationFields names a timed operation; the duration is in milliseconds.
func DurationFields(op string, d time.Duration) map[string]interface{} {
	return Fields(FieldOperation, op, FieldDuration, d.Milliseconds())
}

// MergeWithError sets the error field on fields, allocating when nil.
func MergeWithError(fields map[string]interface{}, err error) map[string]interface{} {
	if fields == nil {
		fields = make(map[string]interface{}, 1)
	}
	if err != nil {
		fields[FieldError] = err.Error()
	}
	return fields
}
