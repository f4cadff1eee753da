package models

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ErrValidation wraps all form validation failures so callers can distinguish
// client-side rejection (no request was sent) from remote errors.
var ErrValidation = errors.New("validation failed")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Expose decimal.Decimal to numeric tags (gt, gte, ...) as float64.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	// paymode checks the PaymentMode enum; "oneof" cannot express values
	// containing spaces ("Net Banking").
	if err := v.RegisterValidation("paymode", func(fl validator.FieldLevel) bool {
		return PaymentMode(fl.Field().String()).Valid()
	}); err != nil {
		panic(err)
	}

	return v
}

// Validate checks a form or update struct against its validate tags.
// Returns an error wrapping ErrValidation when any field is rejected.
func Validate(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}
