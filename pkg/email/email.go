// Package email derives display-friendly names from email addresses. Seeded
// contacts occasionally arrive without a name; the portal falls back to the
// address's local part rather than rendering an empty string.
package email

import (
	"strings"
	"unicode"
)

// DeriveNameFromEmail splits the local part of an address into first and last
// name candidates. Separators ., _, - and + delimit name parts.
func DeriveNameFromEmail(email string) (string, string) {
	localPart := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		localPart = email[:at]
	}

	parts := strings.FieldsFunc(localPart, func(r rune) bool {
		return r == '.' || r == '_' || r == '-' || r == '+'
	})

	if len(parts) == 0 {
		return "Contact", "Contact"
	}

	first := capitalize(parts[0])
	last := "Contact"
	if len(parts) > 1 {
		last = capitalize(parts[len(parts)-1])
	}

	return first, last
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
