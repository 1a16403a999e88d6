// Package prometheus exposes controller snapshots to a prometheus registry.
package prometheus

import (
	"net/http"
	"strings"
	"sync"

	"github.com/golang/protobuf/proto"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"

	"github.com/upfluence/metrics"
)

// Collector implements prometheus.Collector over a metrics.Controller: every
// scrape takes a snapshot and renders counters, gauges, and histogram
// summaries as prometheus metric families. Scope delimiters are mangled into
// underscores to satisfy prometheus naming rules.
type Collector struct {
	c *metrics.Controller

	descMu sync.Mutex
	descs  map[uint64]*prometheus.Desc
}

func NewCollector(c *metrics.Controller) *Collector {
	return &Collector{c: c, descs: make(map[uint64]*prometheus.Desc)}
}

// Register attaches the collector to a prometheus registerer.
func (c *Collector) Register(r prometheus.Registerer) error {
	return r.Register(c)
}

// Handler serves the collector from its own prometheus registry.
func (c *Collector) Handler() http.Handler {
	r := prometheus.NewRegistry()

	r.MustRegister(c)

	return promhttp.HandlerFor(r, promhttp.HandlerOpts{})
}

func (c *Collector) Close() error { return nil }

// Describe sends nothing: the metric set is snapshot-driven, so the
// collector is registered unchecked.
func (c *Collector) Describe(chan<- *prometheus.Desc) {}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.c.Snapshot()

	for _, e := range s.Counters {
		ch <- &int64Metric{
			desc:   c.desc(e.Key),
			labels: e.Key.LabelMap(),
			v:      float64(e.Value),
			stapler: func(m *dto.Metric, v float64) {
				m.Counter = &dto.Counter{Value: proto.Float64(v)}
			},
		}
	}

	for _, e := range s.Gauges {
		ch <- &int64Metric{
			desc:   c.desc(e.Key),
			labels: e.Key.LabelMap(),
			v:      float64(e.Value),
			stapler: func(m *dto.Metric, v float64) {
				m.Gauge = &dto.Gauge{Value: proto.Float64(v)}
			},
		}
	}

	for _, e := range s.Histograms {
		ch <- &summaryMetric{
			desc:    c.desc(e.Key),
			labels:  e.Key.LabelMap(),
			summary: e.Summary,
		}
	}
}

func (c *Collector) desc(k metrics.Key) *prometheus.Desc {
	h := k.Hash()

	c.descMu.Lock()
	defer c.descMu.Unlock()

	if d, ok := c.descs[h]; ok {
		return d
	}

	var labels []string

	for _, l := range k.Labels() {
		labels = append(labels, l.K)
	}

	d := prometheus.NewDesc(mangleName(k.FullName()), "no help", labels, nil)

	c.descs[h] = d

	return d
}

func mangleName(n string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == ':':
			return r
		}

		return '_'
	}, n)
}

func labelPairs(labels map[string]string) []*dto.LabelPair {
	var ps []*dto.LabelPair

	for k, v := range labels {
		ps = append(
			ps,
			&dto.LabelPair{Name: proto.String(k), Value: proto.String(v)},
		)
	}

	return ps
}

type int64Metric struct {
	desc   *prometheus.Desc
	labels map[string]string
	v      float64

	stapler func(*dto.Metric, float64)
}

func (im *int64Metric) Desc() *prometheus.Desc { return im.desc }

func (im *int64Metric) Write(m *dto.Metric) error {
	im.stapler(m, im.v)
	m.Label = labelPairs(im.labels)

	return nil
}

type summaryMetric struct {
	desc    *prometheus.Desc
	labels  map[string]string
	summary metrics.HistogramSummary
}

func (sm *summaryMetric) Desc() *prometheus.Desc { return sm.desc }

func (sm *summaryMetric) Write(m *dto.Metric) error {
	s := &dto.Summary{
		SampleCount: proto.Uint64(sm.summary.Count),
		SampleSum:   proto.Float64(float64(sm.summary.Sum)),
	}

	for _, q := range sm.summary.Quantiles {
		s.Quantile = append(
			s.Quantile,
			&dto.Quantile{
				Quantile: proto.Float64(q.Quantile),
				Value:    proto.Float64(float64(q.Value)),
			},
		)
	}

	m.Summary = s
	m.Label = labelPairs(sm.labels)

	return nil
}
