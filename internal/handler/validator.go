package handler

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Field-level messages returned in ValidationErrorResponse
const (
	FieldMsgRequired   = "This field is required"
	FieldMsgInvalidKey = "Must not contain slashes, whitespace or control characters"
	FieldMsgInvalid    = "Invalid value"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

var (
	validatorOnce sync.Once
	validate      *Validator
)

// GetValidator returns the shared validator with the custom tags registered
func GetValidator() *Validator {
	validatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("documentkey", validateDocumentKey)
		validate = &Validator{validate: v}
	})
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s any) error {
	return v.validate.Struct(s)
}

// ValidateVar validates a single value against tag
func (v *Validator) ValidateVar(value any, tag string) error {
	return v.validate.Var(value, tag)
}

// FormatValidationError turns validator errors into a field -> message map
// without leaking Go struct names
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = FieldMsgRequired
		case "documentkey":
			errs[field] = FieldMsgInvalidKey
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		default:
			errs[field] = FieldMsgInvalid
		}
	}

	return errs
}

// validateDocumentKey accepts strings usable as a store key: no path
// separators, whitespace at the ends, or control characters
func validateDocumentKey(fl validator.FieldLevel) bool {
	key := fl.Field().String()
	if key == "" {
		return true
	}
	if strings.TrimSpace(key) != key || strings.ContainsAny(key, "/\\") {
		return false
	}
	for _, r := range key {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}
