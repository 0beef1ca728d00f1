package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// RenderKey is the cache key for dot rendered to format, e.g.
// "render/svg/<sha256 of dot>".
func RenderKey(dot []byte, format string) string {
	return "render/" + format + "/" + Hash(dot)
}
