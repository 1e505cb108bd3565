package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateSecureOTP returns a uniformly random numeric code of the given
// length whose first digit is never zero.
func GenerateSecureOTP(length int) (string, error) {
	if length < 1 {
		return "", fmt.Errorf("invalid otp length %d", length)
	}
	low := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length-1)), nil)
	span := new(big.Int).Sub(new(big.Int).Mul(low, big.NewInt(10)), low)

	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", err
	}
	return n.Add(n, low).String(), nil
}
