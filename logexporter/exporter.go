// Package logexporter periodically renders controller snapshots and emits
// them through a logger.
package logexporter

import (
	"context"
	"encoding/json"
	"time"

	"github.com/upfluence/log"

	"github.com/upfluence/metrics"
)

const defaultInterval = 30 * time.Second

type Option func(*Exporter)

// WithInterval sets the export period.
func WithInterval(d time.Duration) Option {
	return func(e *Exporter) { e.interval = d }
}

// Exporter writes one JSON document per snapshot at notice level.
type Exporter struct {
	c *metrics.Controller
	l log.Logger

	interval time.Duration
}

func New(c *metrics.Controller, l log.Logger, opts ...Option) *Exporter {
	e := Exporter{c: c, l: l, interval: defaultInterval}

	for _, opt := range opts {
		opt(&e)
	}

	return &e
}

// Export renders and logs one snapshot.
func (e *Exporter) Export(ctx context.Context) error {
	s, err := e.c.SnapshotContext(ctx)

	if err != nil {
		return err
	}

	buf, err := json.Marshal(renderSnapshot(s))

	if err != nil {
		return err
	}

	e.l.Noticef("%s", buf)

	return nil
}

// Run exports on every tick until ctx is cancelled.
func (e *Exporter) Run(ctx context.Context) error {
	t := time.NewTicker(e.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if err := e.Export(ctx); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}

				e.l.Errorf("metrics export: %v", err)
			}
		}
	}
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
