package common

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/visiting-cards/constants"
	"github.com/joseph-ayodele/visiting-cards/internal/entity"
)

// Field limits for stored cards.
const (
	MaxNameLength    = 255
	MaxAddressLength = 1024
	MaxPhoneLength   = 64
)

var (
	emailRegex = regexp.MustCompile(`^(?:` + constants.EmailPattern + `)$`)
	phoneRegex = regexp.MustCompile(`^\+?[\d\s().-]{7,}$`)
)

// ValidationError represents validation failures
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field '%s' with value '%v': %s", e.Field, e.Value, e.Message)
}

// Validator provides validation utilities
type Validator struct {
	errors []ValidationError
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		errors: make([]ValidationError, 0),
	}
}

// Field validates a field and collects errors
func (v *Validator) Field(fieldName string, value interface{}, rules ...ValidationRule) *Validator {
	for _, rule := range rules {
		if err := rule(fieldName, value); err != nil {
			v.errors = append(v.errors, *err)
		}
	}
	return v
}

// HasErrors returns true if there are validation errors
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns all validation errors
func (v *Validator) Errors() []ValidationError {
	return v.errors
}

// Error returns a combined error wrapping ErrValidation
func (v *Validator) Error() error {
	if !v.HasErrors() {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrValidation, v.ErrorMessage())
}

// ErrorMessage returns a combined error message as string
func (v *Validator) ErrorMessage() string {
	if !v.HasErrors() {
		return ""
	}

	var messages []string
	for _, err := range v.errors {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "; ")
}

// ValidationRule represents a single validation rule
type ValidationRule func(fieldName string, value interface{}) *ValidationError

// Required - Common validation rules
func Required(fieldName string, value interface{}) *ValidationError {
	if value == nil {
		return &ValidationError{Field: fieldName, Value: value, Message: "is required"}
	}

	switch v := value.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return &ValidationError{Field: fieldName, Value: value, Message: "is required"}
		}
	case *string:
		if v == nil || strings.TrimSpace(*v) == "" {
			return &ValidationError{Field: fieldName, Value: value, Message: "is required"}
		}
	}
	return nil
}

// MaxLength returns a rule rejecting strings longer than max runes.
func MaxLength(max int) ValidationRule {
	return func(fieldName string, value interface{}) *ValidationError {
		str, ok := stringValue(value)
		if !ok {
			return nil
		}
		if utf8.RuneCountInString(str) > max {
			return &ValidationError{
				Field:   fieldName,
				Value:   value,
				Message: fmt.Sprintf("must be at most %d characters", max),
			}
		}
		return nil
	}
}

// Email accepts an empty value or a single well-formed address.
func Email(fieldName string, value interface{}) *ValidationError {
	str, ok := stringValue(value)
	if !ok || strings.TrimSpace(str) == "" {
		return nil
	}
	if !emailRegex.MatchString(strings.TrimSpace(str)) {
		return &ValidationError{Field: fieldName, Value: value, Message: "must be a valid email address"}
	}
	return nil
}

// Phone accepts an empty value or digits with common separators.
func Phone(fieldName string, value interface{}) *ValidationError {
	str, ok := stringValue(value)
	if !ok || strings.TrimSpace(str) == "" {
		return nil
	}
	str = strings.TrimSpace(str)
	digits := 0
	for _, r := range str {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if !phoneRegex.MatchString(str) || digits < 7 || digits > 15 {
		return &ValidationError{Field: fieldName, Value: value, Message: "must be a valid phone number"}
	}
	return nil
}

func UUID(fieldName string, value interface{}) *ValidationError {
	str, ok := value.(string)
	if !ok {
		return &ValidationError{Field: fieldName, Value: value, Message: "must be a string"}
	}

	if _, err := uuid.Parse(str); err != nil {
		return &ValidationError{
			Field:   fieldName,
			Value:   value,
			Message: "must be a valid UUID",
		}
	}
	return nil
}

func stringValue(value interface{}) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case *string:
		if v != nil {
			return *v, true
		}
	}
	return "", false
}

// ValidateContact checks a manually entered record: a name is required and
// email/phone, when given, must be well formed.
func ValidateContact(rec entity.ContactRecord) error {
	v := NewValidator().
		Field("name", rec.Name, Required, MaxLength(MaxNameLength)).
		Field("email", rec.Email, Email, MaxLength(MaxNameLength)).
		Field("phone", rec.Phone, Phone, MaxLength(MaxPhoneLength)).
		Field("company", rec.Company, MaxLength(MaxNameLength)).
		Field("designation", rec.Designation, MaxLength(MaxNameLength)).
		Field("address", rec.Address, MaxLength(MaxAddressLength))
	return v.Error()
}

// ValidateAndReturnError validates and returns InvalidArgumentError if validation fails
func ValidateAndReturnError(validator *Validator) error {
	if validator.HasErrors() {
		return InvalidArgumentError(validator.ErrorMessage())
	}
	return nil
}

// IsValidationError reports whether err came from a Validator.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}
