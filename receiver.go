package metrics

import (
	"fmt"
	"sync/atomic"
	"time"
)

type config struct {
	capacityHint   int
	histogram      histogramConfig
	installDefault bool
}

func defaultConfig() config {
	return config{histogram: defaultHistogramConfig()}
}

func (cfg config) validate() error {
	if cfg.capacityHint < 0 {
		return &ConfigError{
			Option: "capacity hint",
			Reason: fmt.Sprintf("must be non-negative, got %d", cfg.capacityHint),
		}
	}

	if r := cfg.histogram.resolution; r < minResolution || r > maxResolution {
		return &ConfigError{
			Option: "histogram resolution",
			Reason: fmt.Sprintf(
				"must be between %d and %d bits, got %d",
				minResolution,
				maxResolution,
				r,
			),
		}
	}

	if len(cfg.histogram.quantiles) == 0 {
		return &ConfigError{
			Option: "summary quantiles",
			Reason: "at least one quantile is required",
		}
	}

	for _, q := range cfg.histogram.quantiles {
		if q <= 0 || q >= 1 {
			return &ConfigError{
				Option: "summary quantiles",
				Reason: fmt.Sprintf("must be within (0, 1), got %g", q),
			}
		}
	}

	return nil
}

// ReceiverOption configures a receiver at construction time. Options are
// validated by NewReceiver and immutable thereafter.
type ReceiverOption func(*config)

// WithCapacityHint sizes internal collections for the expected number of
// distinct identities.
func WithCapacityHint(n int) ReceiverOption {
	return func(cfg *config) { cfg.capacityHint = n }
}

// WithHistogramResolution sets the number of linear sub-bucket bits per power
// of two in histogram cells, between 1 and 6. Higher resolutions tighten
// quantile estimates at the cost of larger bucket arrays.
func WithHistogramResolution(bits uint) ReceiverOption {
	return func(cfg *config) { cfg.histogram.resolution = bits }
}

// WithSummaryQuantiles replaces the quantile estimates carried by histogram
// summaries, by default p50, p90, p99 and p999.
func WithSummaryQuantiles(qs ...float64) ReceiverOption {
	return func(cfg *config) {
		cfg.histogram.quantiles = append([]float64(nil), qs...)
	}
}

// WithInstalledDefault installs the receiver as the process-wide default
// facade as part of construction. Construction fails with
// ErrAlreadyInstalled if another receiver got there first.
func WithInstalledDefault() ReceiverOption {
	return func(cfg *config) { cfg.installDefault = true }
}

// Receiver owns a registry and hands out the sinks that feed it and the
// controller that drains it.
type Receiver struct {
	r     *registry
	clock clock
}

// NewReceiver builds a receiver. Invalid options are reported as a
// *ConfigError, never silently defaulted.
func NewReceiver(opts ...ReceiverOption) (*Receiver, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	rc := Receiver{r: newRegistry(cfg), clock: clock{base: time.Now()}}

	if cfg.installDefault {
		if err := rc.Install(); err != nil {
			return nil, err
		}
	}

	return &rc, nil
}

// Sink returns a root-scoped sink feeding the receiver's registry.
func (rc *Receiver) Sink() Sink {
	return newSink(rc.r, rc.clock, RootScope, nil)
}

// Controller returns the snapshot surface of the receiver.
func (rc *Receiver) Controller() *Controller {
	return &Controller{r: rc.r}
}

// defaultSink is the process-wide facade slot: set exactly once by Install,
// read thereafter without further mutation.
var defaultSink atomic.Pointer[Sink]

// Install makes the receiver the process-wide default behind the package
// level facade functions. The slot is set exactly once for the life of the
// process; further calls return ErrAlreadyInstalled.
func (rc *Receiver) Install() error {
	s := rc.Sink()

	if !defaultSink.CompareAndSwap(nil, &s) {
		return ErrAlreadyInstalled
	}

	return nil
}

// Default returns the installed process-wide sink, or NoopSink when no
// receiver has been installed.
func Default() Sink {
	if s := defaultSink.Load(); s != nil {
		return *s
	}

	return NoopSink
}

// Scoped derives a sink from the process default.
func Scoped(segments ...string) Sink { return Default().Scoped(segments...) }

// IncrementCounter adds delta to a counter on the process default sink.
func IncrementCounter(name string, delta uint64, labels ...Label) error {
	return Default().IncrementCounter(name, delta, labels...)
}

// UpdateGauge sets a gauge on the process default sink.
func UpdateGauge(name string, value int64, labels ...Label) error {
	return Default().UpdateGauge(name, value, labels...)
}

// RecordValue records a histogram sample on the process default sink.
func RecordValue(name string, value uint64, labels ...Label) error {
	return Default().RecordValue(name, value, labels...)
}

// RecordTiming records a nanosecond duration on the process default sink.
func RecordTiming(name string, start, end int64, labels ...Label) error {
	return Default().RecordTiming(name, start, end, labels...)
}

// Proxy registers a producer on the process default sink.
func Proxy(name string, fn Producer) { Default().Proxy(name, fn) }
