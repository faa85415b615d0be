package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Key builds a namespaced cache key from a prefix and the hash of data.
// Extraction results use the packaging script content as data, so edits to
// the script invalidate the entry naturally.
func Key(prefix string, data []byte) string {
	return fmt.Sprintf("%s:%s", prefix, Hash(data))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
