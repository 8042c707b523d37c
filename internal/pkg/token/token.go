package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// NewCapability generates an opaque 128-bit token, hex encoded. It is the
// bearer secret behind a single-use password-reset capability and must never
// be derived from the 6-digit verification code.
func NewCapability() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate capability token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
