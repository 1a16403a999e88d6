package metrics

// Gauge is a signed "last known value" starting at 0, mutated by absolute
// update or relative delta. Concurrent writers race: the final value is
// whichever physical store lands last, with no ordering guarantee beyond the
// atomic store itself.
type Gauge interface {
	// Update sets the gauge to an absolute value.
	Update(int64)

	// Add increments the gauge by the given delta.
	Add(int64)

	// Sub decrements the gauge by the given delta.
	Sub(int64)

	// Get returns the current value.
	Get() int64
}

type gauge struct {
	atomicInt64
}

func (g *gauge) Sub(v int64) { g.Add(-v) }

// NoopGauge is a gauge that discards all operations.
var NoopGauge Gauge = noopGauge{}

type noopGauge struct{}

func (noopGauge) Update(int64) {}
func (noopGauge) Add(int64)    {}
func (noopGauge) Sub(int64)    {}
func (noopGauge) Get() int64   { return 0 }
