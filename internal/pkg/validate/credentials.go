package validate

import (
	"regexp"
	"strings"
)

var (
	phoneRe = regexp.MustCompile(`^\+?[0-9]{8,15}$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Phone reports whether s is 8-15 digits with an optional leading '+'.
func Phone(s string) bool {
	return phoneRe.MatchString(s)
}

// Email reports whether s has the shape local@domain.tld.
func Email(s string) bool {
	return emailRe.MatchString(s)
}

// Password reports whether s is at least 4 letters or digits and contains
// at least one of each.
func Password(s string) bool {
	if len(s) < 4 {
		return false
	}
	var letter, digit bool
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			letter = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			return false
		}
	}
	return letter && digit
}

// IsEmailIdentifier reports whether a login identifier should be treated as an email.
func IsEmailIdentifier(s string) bool {
	return strings.Contains(s, "@")
}
