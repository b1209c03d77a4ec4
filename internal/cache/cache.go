// Package cache holds serialized API responses with their ETags. Responses
// live in process memory or, when several API instances run, in Redis.
package cache

import (
	"context"
	"crypto/md5"
	"fmt"
	"time"
)

// Response TTLs.
const (
	TTLRegistry      = 24 * time.Hour // dataset registry, stat categories
	TTLTeams         = 24 * time.Hour // team descriptions
	TTLCurrentSeason = 1 * time.Hour
	TTLHistorical    = 24 * time.Hour
)

// TTLForSeason picks the TTL for a season's responses. Past seasons no
// longer change.
func TTLForSeason(year, current int) time.Duration {
	if year > 0 && year < current {
		return TTLHistorical
	}
	return TTLCurrentSeason
}

// Store is a response cache backend.
type Store interface {
	// Get returns the cached body and its ETag.
	Get(ctx context.Context, key string) (data []byte, etag string, ok bool)
	// Set stores data for ttl and returns its ETag.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) string
	// Evict drops expired entries and reports how many were removed.
	Evict(ctx context.Context) int
	Clear(ctx context.Context) error
	Stats(ctx context.Context) map[string]any
	Ping(ctx context.Context) error
}

// ComputeETag generates a weak ETag from response data using MD5.
func ComputeETag(data []byte) string {
	hash := md5.Sum(data)
	return fmt.Sprintf(`W/"%x"`, hash[:8])
}

// CheckETagMatch checks if If-None-Match header matches the current ETag.
func CheckETagMatch(ifNoneMatch, etag string) bool {
	if ifNoneMatch == "" {
		return false
	}
	if ifNoneMatch == "*" {
		return true
	}
	return ifNoneMatch == etag
}
