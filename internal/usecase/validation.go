package usecase

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail checks that the address has a plausible mailbox@domain.tld shape.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// NormalizeReason trims surrounding whitespace from a rejection reason.
func NormalizeReason(reason string) string {
	return strings.TrimSpace(reason)
}
