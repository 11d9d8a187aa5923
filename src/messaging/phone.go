package messaging

import (
	"regexp"
)

var nonPhoneChars = regexp.MustCompile(`[^\d+]`)

// CleanPhoneNumber strips formatting characters and ensures a country code.
// Bare 10-digit numbers starting with 3 are treated as Pakistani mobile
// numbers, other 10-digit numbers as Indian; 12-digit numbers starting
// with 92 get a plus prefix.
func CleanPhoneNumber(phone string) string {
	cleaned := nonPhoneChars.ReplaceAllString(phone, "")
	if cleaned == "" {
		return ""
	}
	if cleaned[0] == '+' {
		return cleaned
	}

	switch {
	case len(cleaned) == 10 && cleaned[0] == '3':
		return "+92" + cleaned
	case len(cleaned) == 12 && cleaned[:2] == "92":
		return "+" + cleaned
	case len(cleaned) == 10:
		return "+91" + cleaned
	default:
		return "+92" + cleaned
	}
}
