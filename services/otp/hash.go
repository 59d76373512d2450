// File: services/otp/hash.go
package otp

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
)

// CodeLength is the number of digits in a generated OTP.
const CodeLength = 6

// GenerateCode returns a random 6-digit numeric code using crypto/rand.
func GenerateCode() (string, error) {
	// 100000..999999, so the code never has a leading zero.
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate random code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// HashCode computes the keyed HMAC-SHA256 hash of a code. The plaintext code
// is never stored or logged; only this hash is persisted.
func HashCode(code, secret string) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("otp secret is not set")
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(code))
	return hex.EncodeToString(mac.Sum(nil)), nil
}

// VerifyCode compares a candidate code against a stored hash in constant
// time. It fails closed: a missing secret or malformed hash never verifies.
func VerifyCode(candidate, storedHash, secret string) bool {
	if candidate == "" || storedHash == "" || secret == "" {
		return false
	}
	candidateHash, err := HashCode(candidate, secret)
	if err != nil {
		return false
	}
	a, err := hex.DecodeString(candidateHash)
	if err != nil {
		return false
	}
	b, err := hex.DecodeString(storedHash)
	if err != nil {
		return false
	}
	return hmac.Equal(a, b)
}
