package metrics

// Instrument wraps a unit of work with a started counter, a status-labeled
// finished counter, and a duration histogram.
type Instrument interface {
	Exec(func() error) error
}

type InstrumentOption func(*instrumentOptions)

var defaultInstrumentOptions = instrumentOptions{
	formatter:   defaultFormatter,
	timerSuffix: "_ns",
}

// ErrorFormatter maps the outcome of an execution to the value of its
// "status" label.
type ErrorFormatter func(error) string

func WithFormatter(f ErrorFormatter) InstrumentOption {
	return func(opts *instrumentOptions) {
		opts.formatter = f
	}
}

func WithTimerSuffix(suffix string) InstrumentOption {
	return func(opts *instrumentOptions) {
		opts.timerSuffix = suffix
	}
}

type instrumentOptions struct {
	formatter   ErrorFormatter
	timerSuffix string
}

// NewInstrument builds an instrument named after the given base name:
// "<name>_started_total", "<name>_total" labeled by status, and
// "<name>_duration<suffix>".
func NewInstrument(s Sink, name string, iOpts ...InstrumentOption) (Instrument, error) {
	opts := defaultInstrumentOptions

	for _, opt := range iOpts {
		opt(&opts)
	}

	started, err := s.Counter(name + "_started_total")

	if err != nil {
		return nil, err
	}

	h, err := s.Histogram(name + "_duration" + opts.timerSuffix)

	if err != nil {
		return nil, err
	}

	return &instrument{
		instrumentOptions: opts,
		sink:              s,
		name:              name,
		started:           started,
		duration:          h,
	}, nil
}

type instrument struct {
	instrumentOptions

	sink Sink
	name string

	started  Counter
	duration Histogram
}

func (i *instrument) Exec(fn func() error) error {
	i.started.Inc()
	t0 := i.sink.Now()

	err := fn()

	i.duration.Record(uint64(i.sink.Now() - t0))
	_ = i.sink.IncrementCounter(
		i.name+"_total",
		1,
		LabelKV("status", i.formatter(err)),
	)

	return err
}

func defaultFormatter(err error) string {
	if err == nil {
		return "success"
	}

	return err.Error()
}
