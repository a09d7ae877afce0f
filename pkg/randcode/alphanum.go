package randcode

import (
	"crypto/rand"
	"fmt"
)

// Alphabet is the fixed set verification codes are drawn from. Uppercase only:
// codes are typed back by humans and case confusion is a support burden.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateAlphaNumericCode returns a uniformly random code of the given length
// over Alphabet. Rejection sampling keeps the distribution unbiased.
func GenerateAlphaNumericCode(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("code length must be positive, got %d", length)
	}

	// Largest multiple of len(Alphabet) below 256; bytes at or above it are
	// rejected to avoid modulo bias.
	limit := byte(256 - 256%len(Alphabet))

	out := make([]byte, 0, length)
	buf := make([]byte, length)

	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		for _, b := range buf {
			if b >= limit {
				continue
			}
			out = append(out, Alphabet[int(b)%len(Alphabet)])
			if len(out) == length {
				break
			}
		}
	}

	return string(out), nil
}
