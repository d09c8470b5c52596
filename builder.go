package passy

import "time"

// Builder assembles an Engine. A Builder builds at most one Engine.
type Builder struct {
	config        Config
	sourceFactory SourceFactory
	auditSink     AuditSink

	built bool
}

// New returns a Builder seeded with DefaultConfig.
func New() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithSourceFactory overrides the randomness provider chosen by
// Config.Generator. Use it to plug in a hardware or remote generator.
func (b *Builder) WithSourceFactory(f SourceFactory) *Builder {
	b.sourceFactory = f
	return b
}

func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build validates the configuration and starts the audit dispatcher when
// auditing is enabled. Call Engine.Close to stop it.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, ErrBuilderUsed
	}

	cfg := b.config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	factory := b.sourceFactory
	if factory == nil {
		f, err := NewSourceFactory(cfg.Generator.Source, cfg.Generator.Seed)
		if err != nil {
			return nil, err
		}
		factory = f
	}

	engine := &Engine{
		config:       cfg,
		newSource:    factory,
		customSource: b.sourceFactory != nil,
		audit:        newAuditDispatcher(cfg.Audit, b.auditSink),
		metrics:      NewMetrics(cfg.Metrics),
		now:          time.Now,
	}

	b.built = true

	return engine, nil
}
