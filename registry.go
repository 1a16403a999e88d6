package metrics

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Producer computes ad-hoc measurements on demand. It is invoked exactly once
// per snapshot, must be side-effect free, and yields zero or more named
// measurements merged into the snapshot under the scope and name prefix the
// proxy was registered with.
type Producer func() []ProxyMeasurement

// ProxyMeasurement is one value yielded by a Producer.
type ProxyMeasurement struct {
	Name        string
	Measurement Measurement
}

// registry is the shared store of identity to cell bindings and of proxy
// registrations. Cells are created lazily on first use and never evicted;
// cardinality growth is the caller's responsibility.
type registry struct {
	cfg config

	cells sync.Map // keyID -> *cell

	proxyMu sync.RWMutex
	proxies []proxyEntry
}

type proxyEntry struct {
	scope Scope
	name  string
	fn    Producer
}

// cell is the concurrently-mutable storage behind one identity. Exactly one
// of the variant pointers matching kind is non-nil; neither the kind nor the
// storage is ever replaced after creation.
type cell struct {
	key  Key
	kind Kind

	counter   *counter
	gauge     *gauge
	histogram *histogram
}

func newRegistry(cfg config) *registry {
	return &registry{cfg: cfg}
}

// getOrCreate returns the cell bound to k, creating it atomically on first
// access. Exactly one cell ever exists per distinct canonical identity, even
// under a concurrent first-access race: losers of the insertion race discard
// their candidate and adopt the stored cell. Requesting an identity already
// bound to a different kind returns a *KindMismatchError and leaves the
// existing cell untouched.
func (r *registry) getOrCreate(k Key, kind Kind) (*cell, error) {
	if v, ok := r.cells.Load(k.id); ok {
		return checkKind(v.(*cell), kind)
	}

	v, _ := r.cells.LoadOrStore(k.id, newCell(k, kind, r.cfg))

	return checkKind(v.(*cell), kind)
}

func checkKind(c *cell, kind Kind) (*cell, error) {
	if c.kind != kind {
		return nil, &KindMismatchError{
			Key:       c.key,
			Existing:  c.kind,
			Requested: kind,
		}
	}

	return c, nil
}

func newCell(k Key, kind Kind, cfg config) *cell {
	c := cell{key: k, kind: kind}

	switch kind {
	case KindCounter:
		c.counter = &counter{}
	case KindGauge:
		c.gauge = &gauge{}
	case KindHistogram:
		c.histogram = newHistogram(cfg.histogram)
	default:
		panic(fmt.Sprintf("metrics: unknown cell kind %d", kind))
	}

	return &c
}

func (c *cell) counterCell() *counter {
	if c.kind != KindCounter || c.counter == nil {
		panic("metrics: cell kind tag does not match its storage")
	}

	return c.counter
}

func (c *cell) gaugeCell() *gauge {
	if c.kind != KindGauge || c.gauge == nil {
		panic("metrics: cell kind tag does not match its storage")
	}

	return c.gauge
}

func (c *cell) histogramCell() *histogram {
	if c.kind != KindHistogram || c.histogram == nil {
		panic("metrics: cell kind tag does not match its storage")
	}

	return c.histogram
}

// registerProxy records a producer. Multiple producers registered under the
// same scope and name are all invoked at snapshot time and their outputs
// concatenated.
func (r *registry) registerProxy(scope Scope, name string, fn Producer) {
	r.proxyMu.Lock()
	r.proxies = append(r.proxies, proxyEntry{scope: scope, name: name, fn: fn})
	r.proxyMu.Unlock()
}

// snapshot walks the current cell set, reads every cell, invokes every proxy
// once, and returns the combined immutable collection sorted by canonical
// identity. Writers are never blocked: the walk only performs per-cell atomic
// reads. ctx is checked between cells; a cancelled snapshot discards its
// partial result.
func (r *registry) snapshot(ctx context.Context) (Snapshot, error) {
	var (
		err error
		s   Snapshot
	)

	if r.cfg.capacityHint > 0 {
		s.Counters = make([]CounterEntry, 0, r.cfg.capacityHint)
	}

	r.cells.Range(func(_, v interface{}) bool {
		if err = ctx.Err(); err != nil {
			return false
		}

		c := v.(*cell)

		switch c.kind {
		case KindCounter:
			s.Counters = append(
				s.Counters,
				CounterEntry{Key: c.key, Value: c.counterCell().Get()},
			)
		case KindGauge:
			s.Gauges = append(
				s.Gauges,
				GaugeEntry{Key: c.key, Value: c.gaugeCell().Get()},
			)
		case KindHistogram:
			s.Histograms = append(
				s.Histograms,
				HistogramEntry{Key: c.key, Summary: c.histogramCell().Summarize()},
			)
		}

		return true
	})

	if err != nil {
		return Snapshot{}, err
	}

	r.proxyMu.RLock()
	proxies := r.proxies[:len(r.proxies):len(r.proxies)]
	r.proxyMu.RUnlock()

	for _, p := range proxies {
		if err := ctx.Err(); err != nil {
			return Snapshot{}, err
		}

		for _, m := range p.fn() {
			k := newKey(p.scope, joinScope(p.name, m.Name))

			switch v := m.Measurement.(type) {
			case CounterValue:
				s.Counters = append(s.Counters, CounterEntry{Key: k, Value: uint64(v)})
			case GaugeValue:
				s.Gauges = append(s.Gauges, GaugeEntry{Key: k, Value: int64(v)})
			case HistogramSummary:
				s.Histograms = append(s.Histograms, HistogramEntry{Key: k, Summary: v})
			}
		}
	}

	sortSnapshot(&s)

	return s, nil
}

func sortSnapshot(s *Snapshot) {
	sort.Slice(s.Counters, func(i, j int) bool {
		return s.Counters[i].Key.id.less(s.Counters[j].Key.id)
	})
	sort.Slice(s.Gauges, func(i, j int) bool {
		return s.Gauges[i].Key.id.less(s.Gauges[j].Key.id)
	})
	sort.Slice(s.Histograms, func(i, j int) bool {
		return s.Histograms[i].Key.id.less(s.Histograms[j].Key.id)
	})
}
