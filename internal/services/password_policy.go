package services

import (
	"errors"
	"unicode"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 72
)

var ErrWeakPassword = errors.New("weak password")

// ValidatePasswordStrength requires upper, lower, and digit characters.
// bcrypt ignores input past 72 bytes, so longer passwords are refused.
func ValidatePasswordStrength(password string) error {
	if len([]rune(password)) < minPasswordLength || len(password) > maxPasswordLength {
		return ErrWeakPassword
	}

	var hasUpper, hasLower, hasDigit bool
	for _, char := range password {
		hasUpper = hasUpper || unicode.IsUpper(char)
		hasLower = hasLower || unicode.IsLower(char)
		hasDigit = hasDigit || unicode.IsDigit(char)
	}
	if !hasUpper || !hasLower || !hasDigit {
		return ErrWeakPassword
	}
	return nil
}
