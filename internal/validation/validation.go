// Package validation проверяет входные структуры по тегам `validate`.
//
// Ошибки возвращаются как *apperr.Error с классом Validation и
// сообщениями по полям (имена полей берутся из json-тегов).
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/shaiso/Modulo/internal/apperr"
)

// phonePattern — цифры с необязательным "+", допускаются пробелы, дефисы и скобки.
var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()\-]*[0-9]$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	// Ошибка регистрации возможна только при пустом теге.
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})

	return v
}

// Struct проверяет структуру. Возвращает nil или *apperr.Error.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Internal(fmt.Errorf("validate: %w", err))
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = describe(fe)
	}

	return apperr.Validation("validation failed", fields)
}

// describe формирует человекочитаемое сообщение для поля.
func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min", "gte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "max", "lte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "phone":
		return "must be a phone number"
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}
