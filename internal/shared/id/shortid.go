// Package id generates Stripe-style prefixed identifiers used as external issue references.
package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	// Base62 alphabet: 0-9, A-Z, a-z
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// DefaultLength is the default length for generated short IDs
	DefaultLength = 12
)

// PrefixIssue is the prefix of every issue SID (iss_xxxxxxxxxxxx).
const PrefixIssue = "iss"

// Generate creates a random short ID with the specified length using Base62 encoding.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	result := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(alphabet)))

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = alphabet[num.Int64()]
	}

	return string(result), nil
}

// GenerateWithPrefix creates a prefixed ID in the format "prefix_randomstring".
func GenerateWithPrefix(prefix string, length int) (string, error) {
	id, err := Generate(length)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_%s", prefix, id), nil
}

// NewIssueSID generates a new issue SID.
func NewIssueSID() (string, error) {
	return GenerateWithPrefix(PrefixIssue, DefaultLength)
}

// ValidatePrefix checks if the prefixed ID has the expected prefix and a non-empty body.
func ValidatePrefix(prefixedID, expectedPrefix string) error {
	parts := strings.SplitN(prefixedID, "_", 2)
	if len(parts) != 2 || parts[1] == "" {
		return fmt.Errorf("invalid prefixed ID format: %s", prefixedID)
	}
	if parts[0] != expectedPrefix {
		return fmt.Errorf("invalid prefix: expected %s, got %s", expectedPrefix, parts[0])
	}
	return nil
}
