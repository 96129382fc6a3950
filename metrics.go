package semgo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    bindCounter      prometheus.Counter
//	    cleanupHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordBind(duration time.Duration, err error) {
//	    p.bindCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordAdd is called after each vocabulary add operation.
	// duration is the total time taken, err is nil if successful.
	RecordAdd(duration time.Duration, err error)

	// RecordBind is called after each binding operation.
	RecordBind(duration time.Duration, err error)

	// RecordUnbind is called after each unbinding operation.
	RecordUnbind(duration time.Duration, err error)

	// RecordSuperpose is called after each superposition operation.
	RecordSuperpose(duration time.Duration, err error)

	// RecordNoise is called after each noise injection operation.
	RecordNoise(duration time.Duration, err error)

	// RecordQuery is called after each similarity or nearest-match query.
	RecordQuery(duration time.Duration, err error)

	// RecordCleanup is called after each cleanup operation.
	// iterations is the number of settle steps taken, converged reports
	// whether the tolerance was reached.
	RecordCleanup(iterations int, converged bool, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAdd(time.Duration, error)                {}
func (NoopMetricsCollector) RecordBind(time.Duration, error)               {}
func (NoopMetricsCollector) RecordUnbind(time.Duration, error)             {}
func (NoopMetricsCollector) RecordSuperpose(time.Duration, error)          {}
func (NoopMetricsCollector) RecordNoise(time.Duration, error)              {}
func (NoopMetricsCollector) RecordQuery(time.Duration, error)              {}
func (NoopMetricsCollector) RecordCleanup(int, bool, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	AddCount           atomic.Int64
	AddErrors          atomic.Int64
	BindCount          atomic.Int64
	BindErrors         atomic.Int64
	BindTotalNanos     atomic.Int64
	UnbindCount        atomic.Int64
	UnbindErrors       atomic.Int64
	SuperposeCount     atomic.Int64
	SuperposeErrors    atomic.Int64
	NoiseCount         atomic.Int64
	NoiseErrors        atomic.Int64
	QueryCount         atomic.Int64
	QueryErrors        atomic.Int64
	QueryTotalNanos    atomic.Int64
	CleanupCount       atomic.Int64
	CleanupErrors      atomic.Int64
	CleanupIterations  atomic.Int64
	CleanupNonConverge atomic.Int64
	CleanupTotalNanos  atomic.Int64
}

// RecordAdd implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAdd(duration time.Duration, err error) {
	b.AddCount.Add(1)
	if err != nil {
		b.AddErrors.Add(1)
	}
}

// RecordBind implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBind(duration time.Duration, err error) {
	b.BindCount.Add(1)
	b.BindTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BindErrors.Add(1)
	}
}

// RecordUnbind implements MetricsCollector.
func (b *BasicMetricsCollector) RecordUnbind(duration time.Duration, err error) {
	b.UnbindCount.Add(1)
	if err != nil {
		b.UnbindErrors.Add(1)
	}
}

// RecordSuperpose implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSuperpose(duration time.Duration, err error) {
	b.SuperposeCount.Add(1)
	if err != nil {
		b.SuperposeErrors.Add(1)
	}
}

// RecordNoise implements MetricsCollector.
func (b *BasicMetricsCollector) RecordNoise(duration time.Duration, err error) {
	b.NoiseCount.Add(1)
	if err != nil {
		b.NoiseErrors.Add(1)
	}
}

// RecordQuery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQuery(duration time.Duration, err error) {
	b.QueryCount.Add(1)
	b.QueryTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.QueryErrors.Add(1)
	}
}

// RecordCleanup implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCleanup(iterations int, converged bool, duration time.Duration, err error) {
	b.CleanupCount.Add(1)
	b.CleanupIterations.Add(int64(iterations))
	b.CleanupTotalNanos.Add(duration.Nanoseconds())
	if !converged {
		b.CleanupNonConverge.Add(1)
	}
	if err != nil {
		b.CleanupErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		AddCount:           b.AddCount.Load(),
		AddErrors:          b.AddErrors.Load(),
		BindCount:          b.BindCount.Load(),
		BindErrors:         b.BindErrors.Load(),
		BindAvgNanos:       avgNanos(&b.BindTotalNanos, &b.BindCount),
		UnbindCount:        b.UnbindCount.Load(),
		UnbindErrors:       b.UnbindErrors.Load(),
		SuperposeCount:     b.SuperposeCount.Load(),
		SuperposeErrors:    b.SuperposeErrors.Load(),
		NoiseCount:         b.NoiseCount.Load(),
		NoiseErrors:        b.NoiseErrors.Load(),
		QueryCount:         b.QueryCount.Load(),
		QueryErrors:        b.QueryErrors.Load(),
		QueryAvgNanos:      avgNanos(&b.QueryTotalNanos, &b.QueryCount),
		CleanupCount:       b.CleanupCount.Load(),
		CleanupErrors:      b.CleanupErrors.Load(),
		CleanupIterations:  b.CleanupIterations.Load(),
		CleanupNonConverge: b.CleanupNonConverge.Load(),
		CleanupAvgNanos:    avgNanos(&b.CleanupTotalNanos, &b.CleanupCount),
	}
}

func avgNanos(total, count *atomic.Int64) int64 {
	c := count.Load()
	if c == 0 {
		return 0
	}
	return total.Load() / c
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	AddCount           int64
	AddErrors          int64
	BindCount          int64
	BindErrors         int64
	BindAvgNanos       int64
	UnbindCount        int64
	UnbindErrors       int64
	SuperposeCount     int64
	SuperposeErrors    int64
	NoiseCount         int64
	NoiseErrors        int64
	QueryCount         int64
	QueryErrors        int64
	QueryAvgNanos      int64
	CleanupCount       int64
	CleanupErrors      int64
	CleanupIterations  int64
	CleanupNonConverge int64
	CleanupAvgNanos    int64
}
