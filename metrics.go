package orixdb

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordCreate is called after each Create.
	RecordCreate(duration time.Duration, err error)

	// RecordOpen is called after each Open. duration is the total time
	// taken, err is nil if successful.
	RecordOpen(duration time.Duration, err error)

	// RecordIndexLoad is called after each index file is decoded. kind is
	// "singletons" or "collections", entries the number of entries read.
	RecordIndexLoad(kind string, entries int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordCreate(time.Duration, error)                 {}
func (NoopMetricsCollector) RecordOpen(time.Duration, error)                   {}
func (NoopMetricsCollector) RecordIndexLoad(string, int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	CreateCount     atomic.Int64
	CreateErrors    atomic.Int64
	OpenCount       atomic.Int64
	OpenErrors      atomic.Int64
	OpenTotalNanos  atomic.Int64
	IndexLoads      atomic.Int64
	IndexLoadErrors atomic.Int64
	IndexEntries    atomic.Int64
	IndexTotalNanos atomic.Int64
}

// RecordCreate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCreate(duration time.Duration, err error) {
	b.CreateCount.Add(1)
	if err != nil {
		b.CreateErrors.Add(1)
	}
}

// RecordOpen implements MetricsCollector.
func (b *BasicMetricsCollector) RecordOpen(duration time.Duration, err error) {
	b.OpenCount.Add(1)
	b.OpenTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.OpenErrors.Add(1)
	}
}

// RecordIndexLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIndexLoad(kind string, entries int, duration time.Duration, err error) {
	b.IndexLoads.Add(1)
	b.IndexTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.IndexLoadErrors.Add(1)
		return
	}
	b.IndexEntries.Add(int64(entries))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		CreateCount:       b.CreateCount.Load(),
		CreateErrors:      b.CreateErrors.Load(),
		OpenCount:         b.OpenCount.Load(),
		OpenErrors:        b.OpenErrors.Load(),
		OpenAvgNanos:      avg(b.OpenTotalNanos.Load(), b.OpenCount.Load()),
		IndexLoads:        b.IndexLoads.Load(),
		IndexLoadErrors:   b.IndexLoadErrors.Load(),
		IndexEntries:      b.IndexEntries.Load(),
		IndexLoadAvgNanos: avg(b.IndexTotalNanos.Load(), b.IndexLoads.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	CreateCount       int64
	CreateErrors      int64
	OpenCount         int64
	OpenErrors        int64
	OpenAvgNanos      int64
	IndexLoads        int64
	IndexLoadErrors   int64
	IndexEntries      int64
	IndexLoadAvgNanos int64
}
