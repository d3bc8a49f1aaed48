package helper

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateOtp returns a 6-digit decimal code, zero padded, drawn uniformly
// from [0, 999999].
func GenerateOtp() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
