package passy

// SecurityReport summarises the security-relevant settings of a built
// Engine. The daemon logs it at startup. A source plugged in with
// WithSourceFactory is never reported as cryptographic.
type SecurityReport struct {
	RandomSource        string
	CryptographicSource bool
	CustomSource        bool
	AuditEnabled        bool
	AuditDropIfFull     bool
	MetricsEnabled      bool
	LatencyHistograms   bool
}

func (e *Engine) SecurityReport() SecurityReport {
	if e == nil {
		return SecurityReport{}
	}

	source := e.config.Generator.Source
	if source == "" {
		source = SourceChaCha
	}

	return SecurityReport{
		RandomSource:        source,
		CryptographicSource: !e.customSource && source != SourceSeeded,
		CustomSource:        e.customSource,
		AuditEnabled:        e.config.Audit.Enabled,
		AuditDropIfFull:     e.config.Audit.Enabled && e.config.Audit.DropIfFull,
		MetricsEnabled:      e.config.Metrics.Enabled,
		LatencyHistograms:   e.config.Metrics.Enabled && e.config.Metrics.EnableLatencyHistograms,
	}
}
