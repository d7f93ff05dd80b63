package utils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"math/big"
)

// GenerateSecureToken returns 2*length hex characters from crypto/rand.
func GenerateSecureToken(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("invalid token length")
	}
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// RandomInt returns a uniform integer in [min, max].
func RandomInt(min, max int) (int, error) {
	if max < min {
		return 0, errors.New("invalid range")
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max-min+1)))
	if err != nil {
		return 0, err
	}
	return min + int(n.Int64()), nil
}
