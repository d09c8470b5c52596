// Package middleware provides the HTTP middleware that fronts the passy
// bridge service.
//
// # Middleware
//
//   - [RequestID] assigns or propagates X-Request-ID.
//   - [RequireBridgeToken] verifies the shell's bearer token.
//   - [RateLimit] applies the Redis request budget per client.
//
// Each one records its outcome on the request context (request id, client
// id) so the engine can copy it into audit events.
//
// # What this package must NOT do
//
//   - Parse or create JWTs directly. Verification is delegated to the
//     supplied verifier.
//   - Touch Redis except through the supplied limiter.
//   - Read or log request bodies.
package middleware
