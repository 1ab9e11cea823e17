package utils

import (
	"github.com/go-playground/validator/v10"
)

// Validate is the shared validator for per-route input structs.
var Validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateStruct runs field-level validation on a decoded request payload.
func ValidateStruct(in any) error {
	return Validate.Struct(in)
}
