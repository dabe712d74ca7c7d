package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// FieldError describes one failed constraint on a struct field.
type FieldError struct {
	Field string
	Tag   string
	Param string
}

var validate = validator.New()

// ValidateStruct runs the struct's validate tags and collects every
// failure.
func ValidateStruct(data interface{}) []FieldError {
	var errors []FieldError
	if err := validate.Struct(data); err != nil {
		for _, fe := range err.(validator.ValidationErrors) {
			errors = append(errors, FieldError{
				Field: fe.StructNamespace(),
				Tag:   fe.Tag(),
				Param: fe.Param(),
			})
		}
	}
	return errors
}

// Check returns a formatted error naming the first failed field, or nil
// when the struct passes validation.
func Check(data interface{}) error {
	errs := ValidateStruct(data)
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", errs[0].Field, errs[0].Tag)
}
