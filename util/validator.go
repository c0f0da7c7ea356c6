package util

import "github.com/go-playground/validator/v10"

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("direction", validateDirection)
}

func validateDirection(fl validator.FieldLevel) bool {
	d := fl.Field().String()
	return d == "up" || d == "down"
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}
