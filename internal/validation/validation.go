package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

type ValidationFailedError struct {
	Reason string
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Reason)
}

func NewValidationFailedError(reason string) error {
	return &ValidationFailedError{Reason: reason}
}

func IsValidationFailed(err error) bool {
	var vfe *ValidationFailedError
	return errors.As(err, &vfe)
}

// Reason returns the user-facing reason of a validation error, or an empty
// string if err is not one.
func Reason(err error) string {
	var vfe *ValidationFailedError
	if errors.As(err, &vfe) {
		return vfe.Reason
	}
	return ""
}

var (
	emailPattern     = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	resetCodePattern = regexp.MustCompile(`^\d{4}$`)
)

// NormalizeEmail lowercases and trims an email address. Every lookup and every
// stored record uses the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return NewValidationFailedError("Email inválido")
	}
	return nil
}

// ValidateResetCode rejects anything that is not exactly four digits before any
// database access happens.
func ValidateResetCode(code string) error {
	if !resetCodePattern.MatchString(code) {
		return NewValidationFailedError("Código inválido")
	}
	return nil
}

// ValidatePassword enforces the shared strength policy: minimum length 8 and a
// mix of uppercase, lowercase, digit and symbol. The returned reason names the
// first rule that failed.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return NewValidationFailedError("La contraseña debe tener al menos 8 caracteres")
	}
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	switch {
	case !hasUpper:
		return NewValidationFailedError("La contraseña debe incluir una mayúscula")
	case !hasLower:
		return NewValidationFailedError("La contraseña debe incluir una minúscula")
	case !hasDigit:
		return NewValidationFailedError("La contraseña debe incluir un número")
	case !hasSymbol:
		return NewValidationFailedError("La contraseña debe incluir un símbolo")
	}
	return nil
}
