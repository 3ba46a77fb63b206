package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrInvalidConfig    = errors.New("invalid configuration")
)

// Request-fatal conditions. Only these two reach the caller of a rewrite.
var (
	ErrInputTooLong = errors.New("input too long")
	ErrRateLimited  = errors.New("rate limited by lookup service")
)

// Per-word conditions, absorbed by the pipeline with a same-word fallback.
var (
	ErrLookupFailed = errors.New("lookup failed")
	ErrEmptyWord    = errors.New("nothing to look up")
)
