package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// KeyFormatVersion is mixed into every key. Bump it when the cached value changes shape.
const KeyFormatVersion = "v1"

// Key derives the cache key of a file's lint result. signature describes everything
// besides the content that influences the result (enabled rules, style, mode).
func Key(content []byte, signature string) string {
	h := sha256.New()
	h.Write([]byte(KeyFormatVersion))
	h.Write([]byte{0})
	h.Write([]byte(signature))
	h.Write([]byte{0})
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}
