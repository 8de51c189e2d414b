package utils

import (
	"strings"
	"time"
	"unicode"
)

// IsValidEmail checks if the email string contains an "@" symbol.
func IsValidEmail(email string) bool {
	return strings.Contains(email, "@") && strings.Contains(email, ".")
}

// IsComplexPassword checks if the password meets the complexity requirements.
func IsComplexPassword(password string) bool {
	var (
		hasMinLen  = len(password) >= 8
		hasUpper   = false
		hasLower   = false
		hasNumber  = false
		hasSpecial = false
	)

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasNumber = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}

	return hasMinLen && hasUpper && hasLower && hasNumber && hasSpecial
}

// IsValidReminderTime checks that t is a zero-padded 24h "HH:MM" wall time.
// The reminder scheduler matches by string equality against Format("15:04")
// output, so "9:30" is rejected.
func IsValidReminderTime(t string) bool {
	if len(t) != 5 {
		return false
	}
	_, err := time.Parse("15:04", t)
	return err == nil
}
