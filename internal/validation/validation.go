package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "portfolio/internal/errors"
)

// Validator checks request structs and reports failures as field-level
// validation errors keyed by JSON field name.
type Validator struct {
	validate *validator.Validate
}

// New builds a Validator that names fields after their json tags.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return &Validator{validate: v}
}

// Validate implements echo.Validator.
func (v *Validator) Validate(i interface{}) error {
	if fields := v.Fields(i); len(fields) > 0 {
		return apperrors.Validation("Invalid data", fields...)
	}
	return nil
}

// Fields returns the rejected fields of i, or nil when i is valid.
func (v *Validator) Fields(i interface{}) []apperrors.FieldError {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []apperrors.FieldError{{Field: "body", Message: err.Error()}}
	}
	out := make([]apperrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, apperrors.FieldError{Field: fieldPath(fe), Message: message(fe)})
	}
	return out
}

// URL reports whether s is an absolute URL by the same rule struct tags use.
func (v *Validator) URL(s string) bool {
	return v.validate.Var(s, "url") == nil
}

// fieldPath drops the root struct name: ProjectInput.metrics[0].label -> metrics[0].label.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	numeric := false
	switch fe.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		numeric = true
	}

	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Please enter a valid email address"
	case "url":
		return "Must be a valid URL"
	case "oneof":
		return "Must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		switch {
		case numeric:
			return "Must be at least " + fe.Param()
		case fe.Kind() == reflect.Slice:
			return fmt.Sprintf("Must contain at least %s item(s)", fe.Param())
		default:
			return fmt.Sprintf("Must be at least %s characters", fe.Param())
		}
	case "max":
		if numeric {
			return "Cannot exceed " + fe.Param()
		}
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	default:
		return "Invalid value"
	}
}
