// Package validation validates configuration and request input.
//
// Struct tag validation uses go-playground/validator and is how config
// structs are checked:
//
//	type Config struct {
//	    Port    int           `json:"port" validate:"gte=0,lte=65535"`
//	    Timeout time.Duration `json:"timeout" validate:"gte=0"`
//	}
//	err := validation.Validate(&cfg)
//
// Programmatic validation collects field errors for handler input:
//
//	v := validation.New().Required("name", req.Name).MaxLength("name", req.Name, 64)
//	if appErr := v.Validate(); appErr != nil {
//	    return appErr
//	}
//
// Both return *errors.AppError with code INVALID_INPUT and the failing
// fields under Details["fields"].
package validation
