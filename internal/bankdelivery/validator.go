package bankdelivery

import (
	"github.com/go-petr/vaultbank/pkg/amountpkg"
	"github.com/go-playground/validator/v10"
)

// ValidAmount validates whether the field holds an integer that fits into uint64.
var ValidAmount validator.Func = func(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		_, err := amountpkg.Parse(s)
		return err == nil
	}

	return false
}
