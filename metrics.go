package lattice

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to feed simulation dashboards or profilers.
type MetricsCollector interface {
	// RecordBind is called after each bind or set. err is nil if successful.
	RecordBind(err error)

	// RecordRelease is called after each release.
	RecordRelease(err error)

	// RecordMove is called after each move. count is the batch size,
	// duration is the total time taken.
	RecordMove(count int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBind(error)                     {}
func (NoopMetricsCollector) RecordRelease(error)                  {}
func (NoopMetricsCollector) RecordMove(int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
type BasicMetricsCollector struct {
	BindCount      atomic.Int64
	BindErrors     atomic.Int64
	ReleaseCount   atomic.Int64
	ReleaseErrors  atomic.Int64
	MoveCount      atomic.Int64
	MoveItems      atomic.Int64
	MoveErrors     atomic.Int64
	MoveTotalNanos atomic.Int64
}

// RecordBind implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBind(err error) {
	b.BindCount.Add(1)
	if err != nil {
		b.BindErrors.Add(1)
	}
}

// RecordRelease implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRelease(err error) {
	b.ReleaseCount.Add(1)
	if err != nil {
		b.ReleaseErrors.Add(1)
	}
}

// RecordMove implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMove(count int, duration time.Duration, err error) {
	b.MoveCount.Add(1)
	b.MoveTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.MoveErrors.Add(1)
		return
	}
	b.MoveItems.Add(int64(count))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		BindCount:     b.BindCount.Load(),
		BindErrors:    b.BindErrors.Load(),
		ReleaseCount:  b.ReleaseCount.Load(),
		ReleaseErrors: b.ReleaseErrors.Load(),
		MoveCount:     b.MoveCount.Load(),
		MoveItems:     b.MoveItems.Load(),
		MoveErrors:    b.MoveErrors.Load(),
		MoveAvgNanos:  b.getAvgMoveNanos(),
	}
}

func (b *BasicMetricsCollector) getAvgMoveNanos() int64 {
	count := b.MoveCount.Load()
	if count == 0 {
		return 0
	}
	return b.MoveTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
// MoveItems counts occupants relocated by successful moves.
type BasicMetricsStats struct {
	BindCount     int64
	BindErrors    int64
	ReleaseCount  int64
	ReleaseErrors int64
	MoveCount     int64
	MoveItems     int64
	MoveErrors    int64
	MoveAvgNanos  int64
}
