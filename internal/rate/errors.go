package rate

import "errors"

var (
	// ErrRateLimited means the client exhausted its budget for the window.
	ErrRateLimited = errors.New("rate limited")
	// ErrRedisUnavailable wraps any Redis failure.
	ErrRedisUnavailable = errors.New("redis unavailable")
)
