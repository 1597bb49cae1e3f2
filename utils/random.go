package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateRandomHex returns n random bytes hex-encoded, used for credential
// access keys.
func GenerateRandomHex(n int) (string, error) {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
