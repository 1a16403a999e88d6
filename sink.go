package metrics

import (
	"sync"
	"time"
)

// Sink is the per-caller facade: it carries a scope prefix and a set of
// default labels, composes them with caller-supplied names and labels into
// canonical identities, and caches resolved handles locally so the steady
// state never touches the registry's synchronization.
//
// Sinks are cheap, independently owned values. Deriving or cloning a sink
// copies its scope and default-label state; all derivations reference the
// same underlying registry.
type Sink interface {
	// Scoped returns a new Sink nested under this sink's scope by the
	// given segments. The receiver is not mutated.
	Scoped(segments ...string) Sink

	// Clone returns an independent copy of the sink, including its handle
	// cache.
	Clone() Sink

	// AddDefaultLabels adds labels applied to every metric subsequently
	// created through this sink. The call is additive and is inherited by
	// sinks derived afterwards, but never retroactively affects
	// already-derived sinks or already-issued handles.
	AddDefaultLabels(labels ...Label)

	// Counter returns the counter handle for the composed identity,
	// creating the cell on first use.
	Counter(name string, labels ...Label) (Counter, error)

	// Gauge returns the gauge handle for the composed identity.
	Gauge(name string, labels ...Label) (Gauge, error)

	// Histogram returns the histogram handle for the composed identity.
	Histogram(name string, labels ...Label) (Histogram, error)

	// IncrementCounter adds delta to the named counter without requiring
	// the caller to hold a handle.
	IncrementCounter(name string, delta uint64, labels ...Label) error

	// UpdateGauge sets the named gauge to an absolute value.
	UpdateGauge(name string, value int64, labels ...Label) error

	// RecordValue adds one sample to the named histogram.
	RecordValue(name string, value uint64, labels ...Label) error

	// RecordTiming records end - start nanoseconds into the named
	// histogram. It returns ErrInvalidTiming, recording nothing, if end is
	// earlier than start.
	RecordTiming(name string, start, end int64, labels ...Label) error

	// Proxy registers a producer under this sink's current scope and the
	// given name prefix. The producer runs once per snapshot.
	Proxy(name string, fn Producer)

	// Now returns a monotonic high-resolution timestamp in nanoseconds,
	// suitable as a RecordTiming input. It never touches the registry.
	Now() int64
}

var processEpoch = time.Now()

type clock struct {
	base time.Time
}

func (c clock) now() int64 { return time.Since(c.base).Nanoseconds() }

type sink struct {
	r     *registry
	clock clock
	scope Scope

	mu       sync.RWMutex
	defaults []Label
	cells    map[keyID]*cell
}

func newSink(r *registry, cl clock, scope Scope, defaults []Label) *sink {
	return &sink{
		r:        r,
		clock:    cl,
		scope:    scope,
		defaults: defaults,
		cells:    make(map[keyID]*cell, r.cfg.capacityHint),
	}
}

func (s *sink) Scoped(segments ...string) Sink {
	s.mu.RLock()
	defaults := append([]Label(nil), s.defaults...)
	s.mu.RUnlock()

	return newSink(s.r, s.clock, s.scope.Scoped(segments...), defaults)
}

func (s *sink) Clone() Sink {
	s.mu.RLock()

	clone := newSink(
		s.r,
		s.clock,
		s.scope,
		append([]Label(nil), s.defaults...),
	)

	for id, c := range s.cells {
		clone.cells[id] = c
	}

	s.mu.RUnlock()

	return clone
}

func (s *sink) AddDefaultLabels(labels ...Label) {
	s.mu.Lock()
	s.defaults = canonicalLabels(s.defaults, labels)
	s.mu.Unlock()
}

// resolve composes the identity, consults the local cache, and falls back to
// the registry on a miss. Cache entries keyed by stale default-label sets are
// simply never hit again; the cache stays bounded by the number of distinct
// identities used through the sink.
func (s *sink) resolve(name string, kind Kind, labels []Label) (*cell, error) {
	s.mu.RLock()
	k := newKey(s.scope, name, s.defaults, labels)
	c, ok := s.cells[k.id]
	s.mu.RUnlock()

	if ok {
		return checkKind(c, kind)
	}

	c, err := s.r.getOrCreate(k, kind)

	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cells[k.id] = c
	s.mu.Unlock()

	return c, nil
}

func (s *sink) Counter(name string, labels ...Label) (Counter, error) {
	c, err := s.resolve(name, KindCounter, labels)

	if err != nil {
		return nil, err
	}

	return c.counterCell(), nil
}

func (s *sink) Gauge(name string, labels ...Label) (Gauge, error) {
	c, err := s.resolve(name, KindGauge, labels)

	if err != nil {
		return nil, err
	}

	return c.gaugeCell(), nil
}

func (s *sink) Histogram(name string, labels ...Label) (Histogram, error) {
	c, err := s.resolve(name, KindHistogram, labels)

	if err != nil {
		return nil, err
	}

	return c.histogramCell(), nil
}

func (s *sink) IncrementCounter(name string, delta uint64, labels ...Label) error {
	c, err := s.Counter(name, labels...)

	if err != nil {
		return err
	}

	c.Add(delta)

	return nil
}

func (s *sink) UpdateGauge(name string, value int64, labels ...Label) error {
	g, err := s.Gauge(name, labels...)

	if err != nil {
		return err
	}

	g.Update(value)

	return nil
}

func (s *sink) RecordValue(name string, value uint64, labels ...Label) error {
	h, err := s.Histogram(name, labels...)

	if err != nil {
		return err
	}

	h.Record(value)

	return nil
}

func (s *sink) RecordTiming(name string, start, end int64, labels ...Label) error {
	if end < start {
		return ErrInvalidTiming
	}

	h, err := s.Histogram(name, labels...)

	if err != nil {
		return err
	}

	h.Record(uint64(end - start))

	return nil
}

func (s *sink) Proxy(name string, fn Producer) {
	s.r.registerProxy(s.scope, name, fn)
}

func (s *sink) Now() int64 { return s.clock.now() }

// NoopSink is a sink that discards all metrics. It backs the package-level
// facade before a receiver is installed. Timing validation still applies so
// callers observe uniform errors.
var NoopSink Sink = noopSink{}

type noopSink struct{}

func (noopSink) Scoped(...string) Sink     { return noopSink{} }
func (noopSink) Clone() Sink               { return noopSink{} }
func (noopSink) AddDefaultLabels(...Label) {}

func (noopSink) Counter(string, ...Label) (Counter, error)     { return NoopCounter, nil }
func (noopSink) Gauge(string, ...Label) (Gauge, error)         { return NoopGauge, nil }
func (noopSink) Histogram(string, ...Label) (Histogram, error) { return NoopHistogram, nil }

func (noopSink) IncrementCounter(string, uint64, ...Label) error { return nil }
func (noopSink) UpdateGauge(string, int64, ...Label) error       { return nil }
func (noopSink) RecordValue(string, uint64, ...Label) error      { return nil }

func (noopSink) RecordTiming(_ string, start, end int64, _ ...Label) error {
	if end < start {
		return ErrInvalidTiming
	}

	return nil
}

func (noopSink) Proxy(string, Producer) {}

func (noopSink) Now() int64 { return time.Since(processEpoch).Nanoseconds() }
