package types

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidInput is returned when a required field is missing
var ErrInvalidInput = errors.New("invalid input")

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// V returns the shared validator. Field names in errors use the json tag.
func V() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.Split(field.Tag.Get("json"), ",")[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})
	})
	return validate
}

// Validate checks that every form field was filled in
func (in FoodInput) Validate() error {
	return validateStruct(in)
}

// Validate checks that a merged record is complete before it is sent
func (f FoodRecord) Validate() error {
	return validateStruct(f)
}

func validateStruct(v any) error {
	err := V().Struct(v)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	msgs := make([]string, 0, len(ve))
	for _, e := range ve {
		switch e.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", e.Field()))
		case "gt":
			msgs = append(msgs, fmt.Sprintf("%s must be greater than %s", e.Field(), e.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", e.Field()))
		}
	}

	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(msgs, ", "))
}
