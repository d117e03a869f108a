// Package otp generates the numeric one-time codes emailed during a
// password reset.
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const codeSpace = 1_000_000 // six decimal digits

// NewCode returns a random zero-padded six-digit code.
func NewCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpace))
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n), nil
}
