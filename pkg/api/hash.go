package api

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Fingerprint returns the hex BLAKE3 digest of a document's bytes. Two runs
// that produce the same fingerprint wrote the same content.
func Fingerprint(content []byte) string {
	sum := blake3.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// FingerprintString is Fingerprint for string content.
func FingerprintString(content string) string {
	h := blake3.New()
	_, _ = h.WriteString(content)
	return hex.EncodeToString(h.Sum(nil))
}
