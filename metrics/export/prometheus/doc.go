// Package prometheus renders passy engine metrics in the Prometheus text
// exposition format.
//
// Counters are named passy_*_total; the single histogram is
// passy_generate_latency_seconds. Only populated when the engine was built
// with metrics enabled.
//
// # What this package must NOT do
//
//   - Register metrics in a global registry. Callers mount the Handler.
//   - Mutate engine state.
package prometheus
