package passy

import (
	"sync/atomic"
	"time"
)

// MetricID identifies an engine counter or histogram.
type MetricID uint16

const (
	// MetricGenerateTotal counts generation calls.
	MetricGenerateTotal MetricID = iota
	// MetricGenerateFastPath counts calls served by the alphanumeric sampler.
	MetricGenerateFastPath
	// MetricGenerateGeneralPath counts calls served from a built charset.
	MetricGenerateGeneralPath
	// MetricGenerateCharsetFallback counts policies with no class enabled.
	MetricGenerateCharsetFallback
	// MetricGenerateLengthClamped counts requests whose length was out of range.
	MetricGenerateLengthClamped
	// MetricStrengthEmpty counts estimates of the empty password.
	MetricStrengthEmpty
	MetricStrengthWeak
	MetricStrengthFair
	MetricStrengthGood
	MetricStrengthStrong
	// MetricPolicyPreview counts policy strength previews.
	MetricPolicyPreview
	// MetricAdvice counts pattern-aware advisory requests.
	MetricAdvice
	// MetricRateLimited counts bridge requests rejected by the rate limiter.
	MetricRateLimited
	// MetricUnauthorized counts bridge requests with a missing or bad token.
	MetricUnauthorized
	// MetricGenerateLatency is the generation latency histogram.
	MetricGenerateLatency
	metricIDCount
)

const (
	histBucketCount = 8
	cacheLineSize   = 64
)

type metricHistogram struct {
	buckets [histBucketCount]uint64
}

type paddedCounter struct {
	value uint64
	_     [cacheLineSize - 8]byte
}

// Metrics holds lock-free engine counters. A nil or disabled *Metrics
// accepts every call and records nothing.
type Metrics struct {
	enabled       bool
	enableLatency bool
	counters      [metricIDCount]paddedCounter
	histograms    [metricIDCount]metricHistogram
}

// MetricsSnapshot is a point-in-time copy of the counters.
type MetricsSnapshot struct {
	Counters   map[MetricID]uint64
	Histograms map[MetricID][]uint64
}

func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{
		enabled:       cfg.Enabled,
		enableLatency: cfg.Enabled && cfg.EnableLatencyHistograms,
	}
}

func (m *Metrics) Enabled() bool {
	return m != nil && m.enabled
}

func (m *Metrics) LatencyEnabled() bool {
	return m != nil && m.enableLatency
}

// Inc adds one to a counter.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Observe records d in the generation latency histogram. Other ids are
// ignored.
func (m *Metrics) Observe(id MetricID, d time.Duration) {
	if m == nil || !m.enabled || !m.enableLatency || id != MetricGenerateLatency {
		return
	}
	atomic.AddUint64(&m.histograms[id].buckets[bucketIndex(d)], 1)
}

func (m *Metrics) Value(id MetricID) uint64 {
	if m == nil || id >= metricIDCount {
		return 0
	}
	return atomic.LoadUint64(&m.counters[id].value)
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	if m == nil || !m.enabled {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}

	s := MetricsSnapshot{
		Counters:   make(map[MetricID]uint64, int(metricIDCount)),
		Histograms: make(map[MetricID][]uint64, 1),
	}
	for id := MetricID(0); id < metricIDCount; id++ {
		if id == MetricGenerateLatency {
			continue
		}
		s.Counters[id] = atomic.LoadUint64(&m.counters[id].value)
	}

	if m.enableLatency {
		buckets := make([]uint64, histBucketCount)
		for i := range buckets {
			buckets[i] = atomic.LoadUint64(&m.histograms[MetricGenerateLatency].buckets[i])
		}
		s.Histograms[MetricGenerateLatency] = buckets
	}

	return s
}

// bucketIndex buckets generation latency. Generation runs in microseconds,
// so the bounds are 10µs to 1ms.
func bucketIndex(d time.Duration) int {
	switch {
	case d <= 10*time.Microsecond:
		return 0
	case d <= 25*time.Microsecond:
		return 1
	case d <= 50*time.Microsecond:
		return 2
	case d <= 100*time.Microsecond:
		return 3
	case d <= 250*time.Microsecond:
		return 4
	case d <= 500*time.Microsecond:
		return 5
	case d <= time.Millisecond:
		return 6
	default:
		return 7
	}
}

func strengthMetric(t Tier) MetricID {
	switch t {
	case TierFair:
		return MetricStrengthFair
	case TierGood:
		return MetricStrengthGood
	case TierStrong:
		return MetricStrengthStrong
	default:
		return MetricStrengthWeak
	}
}
