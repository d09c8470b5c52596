// Package jwt issues and verifies bridge tokens: short-lived JWTs the
// desktop shell presents to the local passy service.
//
// HS256 with a shared secret is the default. Ed25519 lets the shell keep the
// private key while the service holds only the public key.
//
// # What this package must NOT do
//
//   - Accept a token signed with any algorithm other than the configured one.
//   - Carry password material in claims.
package jwt
