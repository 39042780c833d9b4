package validation

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/kbukum/hostkit/errors"
)

var (
	structValidator *validator.Validate
	initOnce        sync.Once
)

func engine() *validator.Validate {
	initOnce.Do(func() {
		structValidator = validator.New(validator.WithRequiredStructEnabled())
		structValidator.RegisterTagNameFunc(fieldName)
	})
	return structValidator
}

// fieldName prefers the json tag, then the yaml tag, then snake_case.
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "yaml"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "-" {
			break
		}
		if name != "" {
			return name
		}
	}
	return toSnakeCase(f.Name)
}

// Validate checks s against its `validate` tags. Nested fields are reported
// by their dotted path, e.g. "cors.allowed_origins".
func Validate(s any) error {
	err := engine().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !asValidationErrors(err, &verrs) {
		return errors.Validation("validation failed").WithCause(err)
	}

	fe := make(FieldErrors, 0, len(verrs))
	for _, e := range verrs {
		fe = append(fe, FieldError{Field: fieldPath(e), Message: message(e)})
	}
	return fe.AppError()
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	verrs, ok := err.(validator.ValidationErrors)
	if ok {
		*target = verrs
	}
	return ok
}

// fieldPath drops the root struct name from the namespace.
func fieldPath(e validator.FieldError) string {
	if _, rest, ok := strings.Cut(e.Namespace(), "."); ok {
		return rest
	}
	return e.Field()
}

func message(e validator.FieldError) string {
	p := e.Param()
	switch e.Tag() {
	case "required":
		return "is required"
	case "min", "max":
		bound := "at least "
		if e.Tag() == "max" {
			bound = "at most "
		}
		if e.Kind() == reflect.String {
			return "must be " + bound + p + " characters"
		}
		return "must be " + bound + p
	case "gte":
		return "must be greater than or equal to " + p
	case "lte":
		return "must be less than or equal to " + p
	case "uuid":
		return "must be a valid UUID"
	case "oneof":
		return "must be one of: " + p
	default:
		return "is invalid"
	}
}

func toSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
