package metrics

// CounterEntry is one (identity, counter total) pair of a snapshot.
type CounterEntry struct {
	Key   Key
	Value uint64
}

// GaugeEntry is one (identity, gauge value) pair of a snapshot.
type GaugeEntry struct {
	Key   Key
	Value int64
}

// HistogramEntry is one (identity, histogram summary) pair of a snapshot.
type HistogramEntry struct {
	Key     Key
	Summary HistogramSummary
}

// Snapshot is an immutable point-in-time collection of every metric in the
// registry, plus the output of every registered proxy. Entries are sorted by
// canonical identity, which is the only shape observers may depend on.
//
// A snapshot does not reflect updates made after its capture began and may or
// may not reflect updates made strictly concurrently with it, but every value
// read is a valid previously-applied state, never a torn one. Taking another
// snapshot never mutates a previously returned one.
type Snapshot struct {
	Counters   []CounterEntry
	Gauges     []GaugeEntry
	Histograms []HistogramEntry
}

// Empty reports whether the snapshot carries no entries.
func (s Snapshot) Empty() bool {
	return len(s.Counters) == 0 && len(s.Gauges) == 0 && len(s.Histograms) == 0
}
