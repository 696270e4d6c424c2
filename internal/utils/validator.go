package utils

import (
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

func IsValidPassword(password string) bool {
	return len(password) >= 8
}

func IsValidRole(role string) bool {
	switch role {
	case "buyer", "seller", "admin":
		return true
	}
	return false
}

func IsValidRating(rating int) bool {
	return rating >= 1 && rating <= 5
}

// NormalizeEmail lowercases and trims an email so uniqueness checks are
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func SanitizeString(s string) string {
	return strings.TrimSpace(s)
}
