package validation

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/kbukum/hostkit/errors"
)

// FieldError is one failed rule, keyed by the field's JSON name.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors turns into a single INVALID_INPUT AppError listing every field.
type FieldErrors []FieldError

// AppError returns nil when fe is empty.
func (fe FieldErrors) AppError() *errors.AppError {
	if len(fe) == 0 {
		return nil
	}
	parts := make([]string, len(fe))
	for i, e := range fe {
		parts[i] = e.Field + ": " + e.Message
	}
	return errors.Validation(strings.Join(parts, "; ")).WithDetail("fields", []FieldError(fe))
}

// Validator checks request values by hand where struct tags do not fit.
//
//	if err := validation.New().
//	    Required("name", req.Name).
//	    MaxLength("name", req.Name, 64).
//	    Validate(); err != nil {
//	    server.RespondWithError(c, err)
//	}
type Validator struct {
	errs FieldErrors
}

func New() *Validator {
	return &Validator{}
}

func (v *Validator) AddError(field, message string) {
	v.errs = append(v.errs, FieldError{Field: field, Message: message})
}

func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

func (v *Validator) Errors() []FieldError {
	return v.errs
}

// Validate returns nil when every check passed.
func (v *Validator) Validate() *errors.AppError {
	return v.errs.AppError()
}

// Required fails on empty or blank values.
func (v *Validator) Required(field, value string) *Validator {
	return v.Custom(strings.TrimSpace(value) != "", field, "is required")
}

// MaxLength counts bytes.
func (v *Validator) MaxLength(field, value string, maxLen int) *Validator {
	return v.Custom(len(value) <= maxLen, field, fmt.Sprintf("must be %d characters or less", maxLen))
}

// OneOf accepts an empty value; pair it with Required when the field is mandatory.
func (v *Validator) OneOf(field, value string, allowed []string) *Validator {
	if value == "" {
		return v
	}
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.AddError(field, "must be one of: "+strings.Join(allowed, ", "))
	return v
}

// Custom records message for field unless ok holds.
func (v *Validator) Custom(ok bool, field, message string) *Validator {
	if !ok {
		v.AddError(field, message)
	}
	return v
}

// ValidateUUID parses a path or query value as a UUID.
func ValidateUUID(field, value string) (uuid.UUID, error) {
	if strings.TrimSpace(value) == "" {
		return uuid.Nil, errors.MissingField(field)
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, FieldErrors{{Field: field, Message: "must be a valid UUID"}}.AppError().WithCause(err)
	}
	return id, nil
}
