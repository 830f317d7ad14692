package adapter

import (
	"crypto/sha256"
	"fmt"
)

// Fingerprint computes a fixed-size digest of resource text.
type Fingerprint func(text string) string

// SHA256Fingerprint returns the hex encoded SHA-256 of text.
func SHA256Fingerprint(text string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(text)))
}
