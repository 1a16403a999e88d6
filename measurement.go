package metrics

// Kind discriminates the three metric cell variants.
type Kind uint8

const (
	KindCounter Kind = iota + 1
	KindGauge
	KindHistogram
)

func (k Kind) String() string {
	switch k {
	case KindCounter:
		return "counter"
	case KindGauge:
		return "gauge"
	case KindHistogram:
		return "histogram"
	}

	return "unknown"
}

// Measurement is a single observed value, as produced by proxies and carried
// in snapshots.
type Measurement interface {
	MeasurementKind() Kind
}

// CounterValue is a cumulative counter total.
type CounterValue uint64

func (CounterValue) MeasurementKind() Kind { return KindCounter }

// GaugeValue is a last-known gauge value.
type GaugeValue int64

func (GaugeValue) MeasurementKind() Kind { return KindGauge }

// Quantile is one quantile estimate of a histogram summary.
type Quantile struct {
	Quantile float64
	Value    uint64
}

// HistogramSummary is the point-in-time aggregate of a histogram cell:
// exact count and sum, observed min and max, and quantile estimates.
type HistogramSummary struct {
	Count uint64
	Sum   uint64
	Min   uint64
	Max   uint64

	Quantiles []Quantile
}

func (HistogramSummary) MeasurementKind() Kind { return KindHistogram }

// Estimate returns the estimated value for the given quantile, if the summary
// carries it.
func (s HistogramSummary) Estimate(q float64) (uint64, bool) {
	for _, sq := range s.Quantiles {
		if sq.Quantile == q {
			return sq.Value, true
		}
	}

	return 0, false
}
