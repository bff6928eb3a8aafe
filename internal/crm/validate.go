package crm

import (
	"regexp"

	"crm/internal/models"
)

// Lenient international phone pattern: optional + and country code, 3-4
// digit groups separated by spaces, dashes, dots or parentheses, optional
// "x" extension. An empty phone is valid.
var phonePattern = regexp.MustCompile(`^\s*(?:\+?(\d{1,3}))?[-. (]*(\d{3,4})[-. )]*(\d{3})[-. ]*(\d{3,4})(?: *x(\d+))?\s*$`)

func ValidPhone(phone string) bool {
	if phone == "" {
		return true
	}
	return phonePattern.MatchString(phone)
}

func ValidatePhone(phone string) error {
	if !ValidPhone(phone) {
		return ValidationError{Reason: "Invalid phone number format"}
	}
	return nil
}

func ValidatePrice(price models.Money) error {
	if price.IsNegative() {
		return ValidationError{Reason: "Price cannot be negative"}
	}
	return nil
}

func ValidateQuantity(quantity int) error {
	if quantity < 0 {
		return ValidationError{Reason: "Quantity cannot be negative"}
	}
	return nil
}
