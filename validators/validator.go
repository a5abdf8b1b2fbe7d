package validators

import (
	"errors"
	"fmt"
	"strings"

	"github.com/anonto42/socialconnect/backend/pkg/errorx"
	"github.com/go-playground/validator/v10"
)

// CustomValidator adapts go-playground/validator to echo.Validator and
// reports failures as errorx.Validation.
type CustomValidator struct {
	validate *validator.Validate
}

func NewValidator() *CustomValidator {
	return &CustomValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate validates a struct using its `validate` tags.
func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validate.Struct(i); err != nil {
		return toValidationError(err)
	}
	return nil
}

// Var validates a single value against a tag such as "required,max=200".
func (cv *CustomValidator) Var(field string, value interface{}, tag string) error {
	if err := cv.validate.Var(value, tag); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return errorx.New(errorx.Validation, "%s", describe(field, verrs[0]))
		}
		return errorx.New(errorx.Validation, "%s is invalid", field)
	}
	return nil
}

func toValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errorx.New(errorx.Validation, "%v", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(strings.ToLower(fe.Field()), fe))
	}
	return errorx.New(errorx.Validation, "%s", strings.Join(msgs, "; "))
}

func describe(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s cannot be empty", field)
	case "max":
		return fmt.Sprintf("%s must be %s characters or less", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
