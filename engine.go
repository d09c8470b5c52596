package passy

import (
	"context"
	"strconv"
	"time"
)

// Engine wraps the generator and estimator with metrics and audit.
//
// Engine methods are safe for concurrent use. Each GeneratePassword call
// takes a fresh Source from the factory, so no sampler state is shared
// between calls.
type Engine struct {
	config       Config
	newSource    SourceFactory
	customSource bool
	audit        *auditDispatcher
	metrics      *Metrics
	now          func() time.Time
}

// Close stops the audit dispatcher, flushing buffered events.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// AuditDropped returns the number of audit events dropped because the
// buffer was full.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

// Metrics exposes the live counters for exporters and the HTTP layer.
func (e *Engine) Metrics() *Metrics {
	if e == nil {
		return nil
	}
	return e.metrics
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

// GeneratePassword draws a password for p. Like the package-level
// GeneratePassword it never fails; ctx only carries request and client ids
// for the audit trail. A factory returning nil gets a ChaChaSource.
func (e *Engine) GeneratePassword(ctx context.Context, p Policy) string {
	var start time.Time
	if e.metrics.LatencyEnabled() {
		start = e.now()
	}

	src := e.newSource()
	if src == nil {
		src = NewChaChaSource()
	}
	g := generate(p, src)

	if e.metrics.LatencyEnabled() {
		e.metrics.Observe(MetricGenerateLatency, e.now().Sub(start))
	}
	e.metricInc(MetricGenerateTotal)
	if g.fastPath {
		e.metricInc(MetricGenerateFastPath)
	} else {
		e.metricInc(MetricGenerateGeneralPath)
	}
	if g.fallback {
		e.metricInc(MetricGenerateCharsetFallback)
	}
	if g.length != p.Length {
		e.metricInc(MetricGenerateLengthClamped)
	}

	e.emitAudit(ctx, auditEventPasswordGenerated, func() map[string]string {
		path := "general"
		if g.fastPath {
			path = "fast"
		}
		return map[string]string{
			"length":       strconv.Itoa(g.length),
			"path":         path,
			"charset_size": strconv.Itoa(g.charsetSize),
			"fallback":     strconv.FormatBool(g.fallback),
		}
	})

	return g.password
}

// EstimateStrength classifies password. The password itself never reaches
// the audit sink.
func (e *Engine) EstimateStrength(ctx context.Context, password string) StrengthReport {
	report := EstimateStrength(password)

	if password == "" {
		e.metricInc(MetricStrengthEmpty)
	} else {
		e.metricInc(strengthMetric(report.Label))
	}

	e.emitAudit(ctx, auditEventStrengthEstimated, func() map[string]string {
		return map[string]string{
			"tier": report.Label.String(),
		}
	})

	return report
}

func (e *Engine) EstimatePolicyStrength(ctx context.Context, p Policy) StrengthReport {
	report := EstimatePolicyStrength(p)

	e.metricInc(MetricPolicyPreview)
	e.emitAudit(ctx, auditEventPolicyPreviewed, func() map[string]string {
		return map[string]string{
			"length": strconv.Itoa(p.ClampedLength()),
			"tier":   report.Label.String(),
		}
	})

	return report
}

// Advise returns the zxcvbn opinion on password. See the package-level
// Advise.
func (e *Engine) Advise(ctx context.Context, password string, hints ...string) Advice {
	advice := Advise(password, hints...)

	e.metricInc(MetricAdvice)
	e.emitAudit(ctx, auditEventStrengthAdvised, func() map[string]string {
		return map[string]string{
			"score": strconv.Itoa(advice.Score),
			"weak":  strconv.FormatBool(advice.Weak),
		}
	})

	return advice
}
