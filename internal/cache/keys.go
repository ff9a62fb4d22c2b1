package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// GlobalKeyPrefix namespaces every key this service writes.
const GlobalKeyPrefix = "flashgen"

// GenerateCacheKey builds "flashgen:<service>:<object>:<id>". Extra params
// are joined with "_" into one trailing segment, e.g. a model tag.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	segments := []string{GlobalKeyPrefix, serviceName, objectType, identifier}
	if len(paramsKey) > 0 {
		segments = append(segments, strings.Join(paramsKey, "_"))
	}
	return strings.Join(segments, ":")
}

// HashKey returns the hex SHA-256 of parts joined by NUL. Used for prompt
// text, which is too long and free-form to embed in a key.
func HashKey(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(sum[:])
}
