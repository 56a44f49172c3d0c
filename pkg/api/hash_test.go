package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprint(t *testing.T) {
	t.Run("identical content produces identical fingerprints", func(t *testing.T) {
		assert.Equal(t, Fingerprint([]byte("hello")), Fingerprint([]byte("hello")))
	})

	t.Run("string and byte forms agree", func(t *testing.T) {
		assert.Equal(t, Fingerprint([]byte("<div id=\"service-1\"></div>")), FingerprintString("<div id=\"service-1\"></div>"))
	})

	t.Run("different content differs", func(t *testing.T) {
		assert.NotEqual(t, Fingerprint([]byte("a")), Fingerprint([]byte("b")))
	})

	t.Run("hex sha length", func(t *testing.T) {
		assert.Len(t, Fingerprint(nil), 64)
	})
}
