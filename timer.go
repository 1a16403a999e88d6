package metrics

import "sync"

// StopWatch is one in-flight timing measurement.
type StopWatch interface {
	Stop()
}

// Timer records nanosecond durations into a histogram through pooled
// stopwatches.
type Timer interface {
	Start() StopWatch
}

type timer struct {
	h   Histogram
	now func() int64

	p sync.Pool
}

func (t *timer) Start() StopWatch {
	sw := t.p.Get().(*stopWatch)

	sw.t0 = t.now()

	return sw
}

type stopWatch struct {
	t0    int64
	timer *timer
}

func (sw *stopWatch) Stop() {
	sw.timer.h.Record(uint64(sw.timer.now() - sw.t0))
	sw.timer.p.Put(sw)
}

// NewTimer builds a timer over the named histogram, suffixed with the
// nanosecond unit.
func NewTimer(s Sink, name string, labels ...Label) (Timer, error) {
	h, err := s.Histogram(name+"_ns", labels...)

	if err != nil {
		return nil, err
	}

	t := timer{h: h, now: s.Now}

	t.p = sync.Pool{New: func() interface{} { return &stopWatch{timer: &t} }}

	return &t, nil
}
