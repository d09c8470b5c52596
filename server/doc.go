// Package server exposes a passy Engine over HTTP for the desktop shell.
//
// Routes:
//
//	GET  /health
//	POST /v1/password/generate   Options JSON -> {"password": "..."}
//	POST /v1/password/strength   {"password", "detail", "hints"} -> report
//	POST /v1/password/preview    Options JSON -> report
//	GET  /metrics                Prometheus text, when enabled
//
// Malformed bodies get 400. The engine operations themselves never fail.
// The /v1 routes pass through the optional bridge-token guard and rate
// limiter; /health and /metrics do not.
package server
