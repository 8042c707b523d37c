package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// CodeLength is the number of digits in a verification code.
const CodeLength = 6

var ten = big.NewInt(10)

// Generate returns a 6-digit numeric code. Each digit is drawn uniformly and
// independently from 0-9, so leading zeros are possible and every code is
// equally likely.
func Generate() (string, error) {
	buf := make([]byte, CodeLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", fmt.Errorf("generate otp digit: %w", err)
		}
		buf[i] = '0' + byte(n.Int64())
	}
	return string(buf), nil
}
