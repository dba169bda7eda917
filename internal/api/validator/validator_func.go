package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Accepts canonical order codes and the cosmetic "DH" variants customers
// paste from their order confirmation.
const orderCodeRegex = `(?i)^(DH\s?)?ORD\d+$`

const (
	OrderCodeTag = "ordercode"
)

var valid = map[string]func(fl validator.FieldLevel) bool{
	OrderCodeTag: ValidateOrderCode,
}

func ValidateOrderCode(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	return regexp.MustCompile(orderCodeRegex).MatchString(code)
}
