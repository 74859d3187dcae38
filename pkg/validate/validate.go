package validate

import (
	"reflect"

	"github.com/ShiraazMoollatjie/goluhn"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const referralCodeLength = 11

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// Struct checks the `validate` tags of s. Decimal fields are compared as
// numbers, so tags like gt=0 apply to amounts.
func Struct(s any) error {
	return validate.Struct(s)
}

func IsLuhn(s string) bool {
	err := goluhn.Validate(s)
	return err == nil
}

// ReferralCode returns a fresh numeric code with a Luhn check digit.
func ReferralCode() string {
	return goluhn.Generate(referralCodeLength)
}
