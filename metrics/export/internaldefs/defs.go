package internaldefs

import (
	"github.com/MrEthical07/passy"
)

// CounterDef names one engine counter for every exporter. Defs sharing a
// Name form one family and differ by their Tier label.
type CounterDef struct {
	ID   passy.MetricID
	Name string
	Help string
	Tier string
}

// HistogramDef names one engine histogram for every exporter.
type HistogramDef struct {
	ID   passy.MetricID
	Name string
	Help string
}

var CounterDefs = []CounterDef{
	{ID: passy.MetricGenerateTotal, Name: "passy_generate_total", Help: "Generated passwords."},
	{ID: passy.MetricGenerateFastPath, Name: "passy_generate_fast_path_total", Help: "Passwords drawn from the alphanumeric fast path."},
	{ID: passy.MetricGenerateGeneralPath, Name: "passy_generate_general_path_total", Help: "Passwords drawn from a policy charset."},
	{ID: passy.MetricGenerateCharsetFallback, Name: "passy_generate_charset_fallback_total", Help: "Policies with no character class that fell back to alphanumeric."},
	{ID: passy.MetricGenerateLengthClamped, Name: "passy_generate_length_clamped_total", Help: "Requests whose length was clamped into range."},
	{ID: passy.MetricStrengthEmpty, Name: "passy_strength_total", Help: "Strength estimates by tier.", Tier: "empty"},
	{ID: passy.MetricStrengthWeak, Name: "passy_strength_total", Help: "Strength estimates by tier.", Tier: "weak"},
	{ID: passy.MetricStrengthFair, Name: "passy_strength_total", Help: "Strength estimates by tier.", Tier: "fair"},
	{ID: passy.MetricStrengthGood, Name: "passy_strength_total", Help: "Strength estimates by tier.", Tier: "good"},
	{ID: passy.MetricStrengthStrong, Name: "passy_strength_total", Help: "Strength estimates by tier.", Tier: "strong"},
	{ID: passy.MetricPolicyPreview, Name: "passy_policy_preview_total", Help: "Policy strength previews."},
	{ID: passy.MetricAdvice, Name: "passy_advice_total", Help: "Pattern-aware strength advisories."},
	{ID: passy.MetricRateLimited, Name: "passy_rate_limited_total", Help: "Bridge requests rejected by the rate limiter."},
	{ID: passy.MetricUnauthorized, Name: "passy_unauthorized_total", Help: "Bridge requests with a missing or invalid token."},
}

var HistogramDefs = []HistogramDef{
	{ID: passy.MetricGenerateLatency, Name: "passy_generate_latency_seconds", Help: "Password generation latency histogram."},
}

// HistogramBounds mirror the engine buckets (10µs to 1ms).
var HistogramBounds = []string{
	"0.00001",
	"0.000025",
	"0.00005",
	"0.0001",
	"0.00025",
	"0.0005",
	"0.001",
	"+Inf",
}

var HistogramBoundSuffix = []string{
	"10us",
	"25us",
	"50us",
	"100us",
	"250us",
	"500us",
	"1ms",
	"inf",
}

// NormalizeBuckets pads or truncates raw to the fixed bucket count.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
