package account

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"math/big"
)

// generateOtp produces a 6-digit numeric code, uniformly distributed over
// [000000, 999999]. Collisions across users are acceptable since the code is
// scoped by email.
func generateOtp() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// generateResetToken generates a cryptographically secure random token
func generateResetToken() (string, error) {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
