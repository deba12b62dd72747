package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// RequestValidator plugs go-playground/validator into echo's c.Validate.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New()
	v.RegisterValidation("notblank", validators.NotBlank)
	// Report fields by their human label, then by their json name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if label := fld.Tag.Get("label"); label != "" {
			return label
		}
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &RequestValidator{validate: v}
}

func (rv *RequestValidator) Validate(i interface{}) error {
	return rv.validate.Struct(i)
}

// validationMessages turns a validator error into one readable line per field.
// Other errors are returned as a single line.
func validationMessages(err error) []string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return []string{err.Error()}
	}

	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, fieldMessage(e))
	}
	return msgs
}

func fieldMessage(e validator.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required.", field)
	case "gte":
		return fmt.Sprintf("%s must be %s or greater.", field, e.Param())
	case "numeric":
		return fmt.Sprintf("%s must be a number.", field)
	case "datetime":
		return fmt.Sprintf("%s must be a date (YYYY-MM-DD).", field)
	default:
		return fmt.Sprintf("%s is invalid.", field)
	}
}
