package permcache

import "errors"

// Package-specific errors.
var (
	// ErrFailedToParseRedisURL is returned when the Redis connection URL is malformed.
	ErrFailedToParseRedisURL = errors.New("permcache.failed_to_parse_redis_url")

	// ErrRedisNotReady is returned when the Redis server cannot be reached.
	ErrRedisNotReady = errors.New("permcache.redis_not_ready")
)
