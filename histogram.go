package metrics

import (
	"math"
	"math/bits"
)

var defaultQuantiles = []float64{.5, .9, .99, .999}

const (
	defaultResolution = 2

	minResolution = 1
	maxResolution = 6
)

// Histogram is an unbounded multiset of unsigned sample values ingested one
// at a time. Samples are folded into a log-linear bucket array as they are
// recorded, so the raw set is never retained; Summarize aggregates the
// buckets into count, sum, min, max, and quantile estimates.
//
// Record is a handful of atomic operations and is safe to call from any
// number of goroutines without caller-side locking. Summarize is idempotent
// and non-destructive: it never discards running data, and it reflects at
// least every sample recorded before it was invoked.
type Histogram interface {
	// Record adds one sample.
	Record(uint64)

	// RecordTiming records end - start as a nanosecond duration sample.
	// It returns ErrInvalidTiming, recording nothing, if end is earlier
	// than start.
	RecordTiming(start, end int64) error

	// Summarize aggregates the current state.
	Summarize() HistogramSummary
}

type histogramConfig struct {
	resolution uint
	quantiles  []float64
}

func defaultHistogramConfig() histogramConfig {
	return histogramConfig{
		resolution: defaultResolution,
		quantiles:  defaultQuantiles,
	}
}

// histogram buckets samples by order of magnitude, with 2^resolution linear
// sub-buckets per power of two. Values below 2^resolution get exact unit
// buckets. Each bucket is one atomic counter, so a record is a bucket
// increment, a sum addition, and two bounded min/max compare-and-swaps.
type histogram struct {
	cfg histogramConfig

	counts []atomicUint64
	sum    atomicUint64
	min    atomicUint64
	max    atomicUint64
}

func newHistogram(cfg histogramConfig) *histogram {
	h := histogram{
		cfg:    cfg,
		counts: make([]atomicUint64, numBuckets(cfg.resolution)),
	}

	h.min.Update(math.MaxUint64)

	return &h
}

func (h *histogram) Record(v uint64) {
	h.counts[bucketIndex(v, h.cfg.resolution)].Add(1)
	h.sum.Add(v)
	h.min.storeMin(v)
	h.max.storeMax(v)
}

func (h *histogram) RecordTiming(start, end int64) error {
	if end < start {
		return ErrInvalidTiming
	}

	h.Record(uint64(end - start))

	return nil
}

func (h *histogram) Summarize() HistogramSummary {
	var (
		counts = make([]uint64, len(h.counts))
		total  uint64
	)

	for i := range h.counts {
		counts[i] = h.counts[i].Get()
		total += counts[i]
	}

	if total == 0 {
		return HistogramSummary{}
	}

	s := HistogramSummary{
		Count:     total,
		Sum:       h.sum.Get(),
		Min:       h.min.Get(),
		Max:       h.max.Get(),
		Quantiles: make([]Quantile, 0, len(h.cfg.quantiles)),
	}

	for _, q := range h.cfg.quantiles {
		s.Quantiles = append(
			s.Quantiles,
			Quantile{
				Quantile: q,
				Value:    estimateQuantile(q, counts, total, s.Min, s.Max, h.cfg.resolution),
			},
		)
	}

	return s
}

func estimateQuantile(q float64, counts []uint64, total, min, max uint64, res uint) uint64 {
	rank := uint64(math.Ceil(q * float64(total)))

	if rank < 1 {
		rank = 1
	}

	if rank > total {
		rank = total
	}

	var cum uint64

	for i, c := range counts {
		if c == 0 {
			continue
		}

		if rank > cum+c {
			cum += c
			continue
		}

		v := interpolateBucket(i, rank-cum, c, res)

		if v < min {
			v = min
		}

		if v > max {
			v = max
		}

		return v
	}

	return max
}

// interpolateBucket spreads the rank-th of n samples linearly across the
// bucket's value range.
func interpolateBucket(idx int, rank, n uint64, res uint) uint64 {
	lo, hi := bucketBounds(idx, res)

	if hi == lo {
		return lo
	}

	if n == 1 {
		return lo + (hi-lo)/2
	}

	return lo + uint64(math.Round(float64(hi-lo)*float64(rank-1)/float64(n-1)))
}

func numBuckets(res uint) int { return (65 - int(res)) << res }

func bucketIndex(v uint64, res uint) int {
	if v < 1<<res {
		return int(v)
	}

	e := uint(bits.Len64(v)) - 1
	sub := int(v>>(e-res)) & (1<<res - 1)

	return (int(e-res)+1)<<res + sub
}

func bucketBounds(idx int, res uint) (uint64, uint64) {
	if idx < 1<<res {
		return uint64(idx), uint64(idx)
	}

	var (
		block = uint(idx) >> res
		sub   = uint64(idx) & (1<<res - 1)

		e = block + res - 1

		lo    = 1<<e | sub<<(e-res)
		width = uint64(1) << (e - res)
	)

	return lo, lo + width - 1
}

// NoopHistogram is a histogram that discards all samples. RecordTiming still
// rejects negative intervals so callers observe uniform validation.
var NoopHistogram Histogram = noopHistogram{}

type noopHistogram struct{}

func (noopHistogram) Record(uint64) {}

func (noopHistogram) RecordTiming(start, end int64) error {
	if end < start {
		return ErrInvalidTiming
	}

	return nil
}

func (noopHistogram) Summarize() HistogramSummary { return HistogramSummary{} }
