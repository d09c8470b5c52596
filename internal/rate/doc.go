// Package rate implements the Redis-backed request limiter for the bridge
// service.
//
// # Window semantics
//
// Fixed-window counters: INCR + conditional EXPIRE on first hit. Keys are
// "pr:" followed by the client key (token subject or remote address).
//
// # What this package must NOT do
//
//   - Decide how a Redis outage is handled. Callers get ErrRedisUnavailable
//     and choose to fail open or closed.
//   - Be imported outside the passy module.
package rate
