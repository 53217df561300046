package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching converted document text
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key for a document. The modification time is part
// of the key so an edited file never serves stale text.
func Key(path string, modTime time.Time) string {
	hash := sha256.Sum256([]byte(path + "|" + modTime.UTC().Format(time.RFC3339Nano)))
	return "claimflow:v1:" + hex.EncodeToString(hash[:])
}
