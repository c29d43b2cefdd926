package registry

import "go.uber.org/zap"

// Config holds the options recognised by the core (spec §6 table).
type Config struct {
	// TypeField is the discriminator field name in dynamic-type envelopes.
	TypeField string
	// KeyField / ValueField name the key/value fields of a non-string-keyed
	// map entry, and ValueField doubles as the dynamic-envelope's value
	// field.
	KeyField   string
	ValueField string
	// FailOnUnknownFields makes unknown object fields a decode error
	// instead of being skipped (spec §7 tolerant-decoding policy).
	FailOnUnknownFields bool
	// MaxParserLookahead is advertised to adapters; the core itself only
	// ever requires format.MinLookahead (3).
	MaxParserLookahead int
	// Logger, if non-nil, receives debug-level tracing of codec synthesis
	// (cache misses, synthesis failures, forwarding-reference resolution). Never
	// consulted on the hot path for an already-cached codec.
	Logger *zap.SugaredLogger
}

// DefaultConfig returns the spec's documented defaults.
func DefaultConfig() Config {
	return Config{
		TypeField:          "@type",
		KeyField:           "@key",
		ValueField:         "@value",
		FailOnUnknownFields: false,
		MaxParserLookahead:  3,
	}
}

// Option configures a Core at construction time.
type Option func(*Config)

// WithTypeField overrides the dynamic-envelope discriminator field name.
func WithTypeField(name string) Option { return func(c *Config) { c.TypeField = name } }

// WithKeyField overrides the non-string-keyed map entry's key field name.
func WithKeyField(name string) Option { return func(c *Config) { c.KeyField = name } }

// WithValueField overrides the envelope/map-entry value field name.
func WithValueField(name string) Option { return func(c *Config) { c.ValueField = name } }

// WithFailOnUnknownFields switches the tolerant-decoding policy to strict.
func WithFailOnUnknownFields(fail bool) Option {
	return func(c *Config) { c.FailOnUnknownFields = fail }
}

// WithMaxParserLookahead advertises a larger lookahead budget to adapters
// that can use it; the core itself never requires more than 3.
func WithMaxParserLookahead(n int) Option {
	return func(c *Config) {
		if n > c.MaxParserLookahead {
			c.MaxParserLookahead = n
		}
	}
}

// WithLogger attaches a logger for codec-synthesis tracing.
func WithLogger(l *zap.SugaredLogger) Option { return func(c *Config) { c.Logger = l } }
