// Package validate wraps go-playground/validator and reports failures as
// domain field errors keyed by json field name.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/sidra/content-factory/internal/domain"
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	val.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	mustRegister(val, "notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	mustRegister(val, "hhmm", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		_, err := time.Parse("15:04", s)
		return len(s) == 5 && err == nil
	})
	return val
}

// mustRegister panics when a custom tag cannot be registered.
func mustRegister(val *validator.Validate, tag string, fn validator.Func) {
	if err := val.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validate: register %q: %v", tag, err))
	}
}

// Struct validates s and returns a *domain.ValidationError listing every
// failed field, or nil.
func Struct(s any) error {
	if errs := Fields(s); len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// Fields validates s and returns the failed fields, so callers can append
// checks the tags cannot express.
func Fields(s any) []domain.FieldError {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []domain.FieldError{{Field: "input", Message: err.Error()}}
	}

	fields := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, domain.FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return fields
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "required"
	case "max":
		return fmt.Sprintf("too long (max %s)", fe.Param())
	case "min":
		return fmt.Sprintf("too short (min %s)", fe.Param())
	case "oneof":
		return "must be one of: " + fe.Param()
	case "url", "http_url":
		return "must be a valid URL"
	case "hhmm":
		return "must be HH:MM"
	case "datetime":
		return "must be a date (" + fe.Param() + ")"
	default:
		return "invalid"
	}
}
