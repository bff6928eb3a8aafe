package handlers

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"crm/internal/crm"
)

// RegisterValidations wires the engine's phone rule into gin's binding
// validator so request DTOs can use the `phone` tag. Call once at startup.
func RegisterValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return crm.ValidPhone(fl.Field().String())
		})
	}
}

func bindingErrorMessage(err error) string {
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
		first := fieldErrors[0]
		switch first.Tag() {
		case "phone":
			return "Invalid phone number format"
		case "email":
			return "Invalid email address"
		case "required":
			return fmt.Sprintf("%s is required", first.Field())
		case "min":
			return fmt.Sprintf("%s must not be empty", first.Field())
		}
	}
	return "invalid request body"
}
