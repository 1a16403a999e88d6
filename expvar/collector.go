// Package expvar publishes controller snapshots through the standard library
// expvar surface.
package expvar

import (
	"bytes"
	"encoding/json"
	"expvar"
	"net/http"

	"github.com/upfluence/metrics"
)

// Collector renders a fresh snapshot every time the published var is read.
type Collector struct {
	c *metrics.Controller
}

func NewCollector(c *metrics.Controller) *Collector {
	return &Collector{c: c}
}

func (c *Collector) Handler() http.Handler { return expvar.Handler() }
func (c *Collector) Close() error          { return nil }

// Publish registers the snapshot under the given expvar name.
func (c *Collector) Publish(name string) {
	expvar.Publish(name, snapshotVar{c: c.c})
}

type snapshotVar struct {
	c *metrics.Controller
}

func (v snapshotVar) String() string {
	var buf bytes.Buffer

	json.NewEncoder(&buf).Encode(renderSnapshot(v.c.Snapshot()))

	return buf.String()
}

type entry struct {
	Name   string            `json:"name"`
	Labels map[string]string `json:"labels,omitempty"`
	Value  interface{}       `json:"value"`
}

type document struct {
	Counters   []entry `json:"counters,omitempty"`
	Gauges     []entry `json:"gauges,omitempty"`
	Histograms []entry `json:"histograms,omitempty"`
}

func renderSnapshot(s metrics.Snapshot) document {
	var doc document

	for _, e := range s.Counters {
		doc.Counters = append(
			doc.Counters,
			entry{Name: e.Key.FullName(), Labels: e.Key.LabelMap(), Value: e.Value},
		)
	}

	for _, e := range s.Gauges {
		doc.Gauges = append(
			doc.Gauges,
			entry{Name: e.Key.FullName(), Labels: e.Key.LabelMap(), Value: e.Value},
		)
	}

	for _, e := range s.Histograms {
		doc.Histograms = append(
			doc.Histograms,
			entry{Name: e.Key.FullName(), Labels: e.Key.LabelMap(), Value: e.Summary},
		)
	}

	return doc
}
