package utils

import (
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// Password length bounds enforced by CheckStrength. The upper bound also
// keeps inputs inside bcrypt's 72-byte limit with margin for multibyte runes.
const (
	MinPasswordLen = 8
	MaxPasswordLen = 128
)

// weakPasswords is a fixed deny-list of passwords that pass the character
// class rules but are still trivially guessable.
var weakPasswords = map[string]bool{
	"password":    true,
	"password1":   true,
	"password123": true,
	"p@ssw0rd":    true,
	"qwerty123":   true,
	"admin123":    true,
	"welcome1":    true,
	"letmein1":    true,
	"12345678":    true,
	"iloveyou1":   true,
}

// HashPassword returns bcrypt hash using the given cost.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword safely compares bcrypt hash and plain password.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// CheckStrength validates a plaintext password against the policy and
// returns every violation at once so callers can render a complete list.
// An empty slice means the password is acceptable.
func CheckStrength(plain string) []string {
	var violations []string
	if len(plain) < MinPasswordLen {
		violations = append(violations, "password must be at least 8 characters")
	}
	if len(plain) > MaxPasswordLen {
		violations = append(violations, "password must be at most 128 characters")
	}
	var lower, upper, digit, symbol bool
	for _, r := range plain {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	if !lower {
		violations = append(violations, "password must contain a lowercase letter")
	}
	if !upper {
		violations = append(violations, "password must contain an uppercase letter")
	}
	if !digit {
		violations = append(violations, "password must contain a digit")
	}
	if !symbol {
		violations = append(violations, "password must contain a symbol")
	}
	if weakPasswords[strings.ToLower(plain)] {
		violations = append(violations, "password is too common")
	}
	return violations
}
