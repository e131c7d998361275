package domain

import "errors"

// Common errors
var (
	ErrNotFound     = errors.New("record not found")
	ErrInvalidInput = errors.New("invalid input")
)

// Data access errors. Reads never return these, they are logged and recovered from.
var (
	// ErrRemoteUnavailable covers network, auth and server errors from the remote store
	ErrRemoteUnavailable = errors.New("remote store unavailable")
	// ErrCacheCorrupt means a cached value did not decode as the expected collection
	ErrCacheCorrupt = errors.New("cached collection is corrupt")
	// ErrCacheMiss means the key is not in the local cache
	ErrCacheMiss = errors.New("cache miss")
	// ErrPopulateFailed means the remote bulk-seed of default exercises failed
	ErrPopulateFailed = errors.New("populating default exercises failed")
	// ErrCacheWrite is the only store error surfaced to callers
	ErrCacheWrite = errors.New("local cache write failed")
)
