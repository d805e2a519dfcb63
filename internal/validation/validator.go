package validation

import (
	"reflect"
	"strings"

	"bankteller/internal/models"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance for use with Echo
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

// singleton instance of the validator
var instance *Validator

// GetValidator returns the singleton validator instance
func GetValidator() *Validator {
	if instance == nil {
		instance = NewValidator()
	}
	return instance
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("customer_number", validateCustomerNumber)
	_ = v.RegisterValidation("customer_name", validateCustomerName)
	_ = v.RegisterValidation("pin", validatePIN)
	_ = v.RegisterValidation("account_kind", validateAccountKind)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Custom validation functions

// validateCustomerNumber validates the 9-digit customer number format
func validateCustomerNumber(fl validator.FieldLevel) bool {
	return models.IsValidCustomerNumber(fl.Field().String())
}

// validateCustomerName validates that a name is non-empty and contains
// letters and spaces only
func validateCustomerName(fl validator.FieldLevel) bool {
	return models.IsValidCustomerName(fl.Field().String())
}

// validatePIN validates the 4-digit PIN format
func validatePIN(fl validator.FieldLevel) bool {
	return models.IsValidPINFormat(fl.Field().String())
}

// validateAccountKind validates that the account kind is a registered kind
func validateAccountKind(fl validator.FieldLevel) bool {
	return models.IsValidAccountKind(strings.ToLower(fl.Field().String()))
}
