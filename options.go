package semgo

import (
	"log/slog"
	"math/rand"

	"github.com/hupe1980/semgo/cleanup"
	"github.com/hupe1980/semgo/codec"
	"github.com/hupe1980/semgo/neural"
	"github.com/hupe1980/semgo/snapshot"
)

type options struct {
	rng              *rand.Rand
	codec            codec.Codec
	compression      snapshot.Compression
	cleanupOptions   []func(*cleanup.Options)
	encoderOptions   []func(*neural.Options)
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures Session constructor behavior.
//
// Today options primarily exist to avoid exploding the API surface
// (e.g. codec-specific constructor variants).
type Option func(*options)

// WithSeed seeds the session's random source for reproducible vocabularies.
// Two sessions created with the same seed and fed the same sequence of
// operations produce identical vectors.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRandSource configures the random source directly. Pass nil to use a
// time-seeded source.
func WithRandSource(rng *rand.Rand) Option {
	return func(o *options) {
		o.rng = rng
	}
}

// WithCodec configures the codec used for snapshot payloads.
//
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression configures the compression algorithm for snapshots.
func WithCompression(c snapshot.Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithSeparation configures the pattern-separation rule of the cleanup
// memory.
func WithSeparation(s cleanup.Separation) Option {
	return func(o *options) {
		o.cleanupOptions = append(o.cleanupOptions, func(co *cleanup.Options) {
			co.Separation = s
		})
	}
}

// WithSharpness configures the sharpness of the cleanup memory's
// separation rule. Higher values separate more aggressively.
func WithSharpness(sharpness float64) Option {
	return func(o *options) {
		o.cleanupOptions = append(o.cleanupOptions, func(co *cleanup.Options) {
			co.Sharpness = sharpness
		})
	}
}

// WithZeroDiagonal configures whether the cleanup weight matrix zeroes its
// diagonal (no self-excitation).
func WithZeroDiagonal(zero bool) Option {
	return func(o *options) {
		o.cleanupOptions = append(o.cleanupOptions, func(co *cleanup.Options) {
			co.ZeroDiagonal = zero
		})
	}
}

// WithEncoderConfig configures the neural channels built by Transmit
// (gain/bias ranges, training samples, regularization).
func WithEncoderConfig(optFns ...func(*neural.Options)) Option {
	return func(o *options) {
		o.encoderOptions = append(o.encoderOptions, optFns...)
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &semgo.BasicMetricsCollector{}
//	s, _ := semgo.New(512, semgo.WithMetricsCollector(metrics))
//	// ... use s ...
//	stats := metrics.GetStats()
//	fmt.Printf("Binds: %d, Avg latency: %dns\n", stats.BindCount, stats.BindAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := semgo.NewJSONLogger(slog.LevelInfo)
//	s, _ := semgo.New(512, semgo.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		codec:            nil,
		compression:      snapshot.DefaultOptions.Compression,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}
