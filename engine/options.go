package engine

import "github.com/spektr-org/crashlens/internal/monitoring"

// ============================================================================
// ENGINE OPTIONS — Functional options for NewDashboard()
// ============================================================================

// Option configures dashboard behavior via functional options pattern.
type Option func(*config)

type config struct {
	DefaultSeverities SeveritySet // restored by Reset and used at startup
	Logf              func(format string, v ...interface{})
}

// WithDefaultSeverities sets the severity subset selected at startup and
// restored by Reset. Passing no severities keeps the {Severe, Fatal} default.
func WithDefaultSeverities(severities ...Severity) Option {
	return func(c *config) {
		if set := NewSeveritySet(severities...); set != 0 {
			c.DefaultSeverities = set
		}
	}
}

// WithAllSeverities starts with (and resets to) the full severity domain.
func WithAllSeverities() Option {
	return func(c *config) {
		c.DefaultSeverities = AllSeveritySet
	}
}

// WithLogger overrides the diagnostic logger. nil silences the dashboard.
func WithLogger(logf func(format string, v ...interface{})) Option {
	return func(c *config) {
		if logf == nil {
			logf = monitoring.Discard
		}
		c.Logf = logf
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		DefaultSeverities: DefaultSeveritySet,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Logf == nil {
		cfg.Logf = func(format string, v ...interface{}) { monitoring.Logf(format, v...) }
	}
	return cfg
}
