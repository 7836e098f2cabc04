package utils

import (
	"regexp"
	"strings"
)

var emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)

func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// NormalizeEmail 邮箱统一小写存储
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// AnyBlank reports whether any field is empty after trimming.
func AnyBlank(fields ...string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return true
		}
	}
	return false
}
