package metrics

// Counter is a monotonically increasing unsigned value starting at 0.
// Counters only move forward: deltas are unsigned, and concurrent increments
// never lose updates. On overflow the value wraps modulo 2^64, the native
// behavior of the underlying atomic addition.
//
// Counter handles are views on a cell owned by the registry; they may be
// freely copied and shared across goroutines, and every copy observes the
// same value.
type Counter interface {
	// Inc increments the counter by 1.
	Inc()

	// Add increments the counter by the given delta.
	Add(uint64)

	// Get returns the current cumulative total.
	Get() uint64
}

type counter struct {
	atomicUint64
}

func (c *counter) Inc() { c.Add(1) }

// NoopCounter is a counter that discards all operations.
var NoopCounter Counter = noopCounter{}

type noopCounter struct{}

func (noopCounter) Inc()        {}
func (noopCounter) Add(uint64)  {}
func (noopCounter) Get() uint64 { return 0 }
