package api

import (
	"net/mail"
	"strings"
)

func normalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func isValidEmail(email string) bool {
	if email == "" || len(email) > 254 {
		return false
	}
	parsed, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	return parsed.Address == email
}

// validatePasswordStrength returns an empty string when the password is
// acceptable, otherwise a user-facing message.
func validatePasswordStrength(password string) string {
	if !passwordLengthRegex.MatchString(password) {
		return "password must be at least 8 characters"
	}
	if !passwordUpperRegex.MatchString(password) {
		return "password must contain an uppercase letter"
	}
	if !passwordLowerRegex.MatchString(password) {
		return "password must contain a lowercase letter"
	}
	if !passwordDigitRegex.MatchString(password) {
		return "password must contain a digit"
	}
	return ""
}

func parseCredentials(email string, password string, confirmPassword string) (string, string) {
	normalizedEmail := normalizeEmail(email)
	if !isValidEmail(normalizedEmail) {
		return "", "enter a valid email address"
	}
	if message := validatePasswordStrength(password); message != "" {
		return "", message
	}
	if password != confirmPassword {
		return "", "passwords do not match"
	}
	return normalizedEmail, ""
}
