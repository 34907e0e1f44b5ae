package security

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

var errNonPositiveLength = errors.New("token length must be positive")

// HexToken returns byteLength cryptographically random bytes rendered as a
// lowercase hex string of 2*byteLength characters.
func HexToken(byteLength int) (string, error) {
	if byteLength <= 0 {
		return "", errNonPositiveLength
	}

	value := make([]byte, byteLength)
	if _, err := io.ReadFull(rand.Reader, value); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return hex.EncodeToString(value), nil
}
