// Package passy generates random passwords from a character policy and
// estimates the strength of arbitrary passwords.
//
// The two core operations, [GeneratePassword] and [EstimateStrength], are
// total functions: every input produces a usable result. Lengths are clamped
// to [MinLength, MaxLength], a policy with no character classes falls back
// to the 62-character alphanumeric set, and the empty password is Weak.
//
// # Architecture boundaries
//
// The package-level functions are pure apart from the random source. [Engine]
// adds counters, an optional latency histogram, and an asynchronous audit
// trail around them; it is assembled with [Builder] and is safe for
// concurrent use after [Builder.Build]. HTTP transport, rate limiting and
// bridge tokens live in sub-packages (server, internal/rate, jwt,
// middleware) and import passy, never the other way around.
//
// # What this package must NOT do
//
//   - Log, audit, or otherwise retain password text.
//   - Share a [Source] between generation calls.
//   - Return an error from generation or estimation.
//
// # Randomness
//
// The default source is a ChaCha20 keystream keyed from crypto/rand, created
// per call. [CryptoSource] reads crypto/rand directly. [SeededSource] is
// deterministic and meant for tests and reproducible fixtures only.
package passy
