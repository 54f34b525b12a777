// Package validation checks request structs against their `validate` tags and
// reports the first failing field as an apperrors validation failure.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/Black-And-White-Club/clubhouse/internal/apperrors"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Field names in messages come from the label tag, then the json tag.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if label := f.Tag.Get("label"); label != "" {
			return label
		}
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return strings.ToLower(f.Name)
		}
		return name
	})
	return v
}

// Struct validates s. A tag violation becomes an INVALID_ARGUMENT failure;
// any other error means s is not a validatable struct.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("failed to validate %T: %w", s, err)
	}
	return toAppError(fieldErrs[0])
}

func toAppError(fe validator.FieldError) *apperrors.Error {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return apperrors.Invalid("%s is required", field)
	case "max":
		if fe.Kind() == reflect.String {
			return apperrors.Invalid("%s must be at most %s characters", field, fe.Param())
		}
		return apperrors.Invalid("%s must be at most %s", field, fe.Param())
	case "gte", "min":
		if fe.Kind() == reflect.String {
			return apperrors.Invalid("%s must be at least %s characters", field, fe.Param())
		}
		return apperrors.Invalid("%s must be at least %s", field, fe.Param())
	case "email":
		return apperrors.Invalid("%s %q is not a valid address", field, fe.Value())
	default:
		return apperrors.Invalid("%s is invalid", field)
	}
}
