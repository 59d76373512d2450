// File: utils/phone.go
package utils

import "strings"

// NormalizePhone strips every non-digit character and keeps the last 10
// digits (the national significant number). Inputs with fewer than 10 digits
// come back shorter than 10 and fail IsValidPhone.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	d := b.String()
	if len(d) >= 10 {
		return d[len(d)-10:]
	}
	return d
}

// IsValidPhone reports whether p is exactly 10 digits.
func IsValidPhone(p string) bool {
	if len(p) != 10 {
		return false
	}
	for _, r := range p {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// MaskPhone masks a phone number to its last 4 digits for logging.
func MaskPhone(phone string) string {
	d := NormalizePhone(phone)
	if len(d) < 4 {
		return "****"
	}
	return "****" + d[len(d)-4:]
}
