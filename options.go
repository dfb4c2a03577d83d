package lattice

import (
	"log/slog"
)

type options struct {
	checks           bool
	capacity         int
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures Single and Multi construction.
type Option func(*options)

// WithChecks enables or disables precondition checking.
//
// Checks are enabled by default. With checks disabled no operation returns a
// precondition error and violating calls have best-effort results: releasing
// an absent entry is a no-op, moving from an empty site carries the zero ID,
// and ragged batch slices are truncated to the shortest one.
func WithChecks(enabled bool) Option {
	return func(o *options) {
		o.checks = enabled
	}
}

// WithCapacity preallocates room for n occupied coordinates.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n < 0 {
			n = 0
		}
		o.capacity = n
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &lattice.BasicMetricsCollector{}
//	idx := lattice.NewSingle[coord.Vec3](lattice.WithMetricsCollector(metrics))
//	// ... run the simulation ...
//	stats := metrics.GetStats()
//	fmt.Printf("Moves: %d, Avg latency: %dns\n", stats.MoveCount, stats.MoveAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
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
		checks:           true,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
