package metrics

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotEndToEnd(t *testing.T) {
	var (
		rc = newTestReceiver(t)
		s  = rc.Sink()
	)

	require.NoError(t, s.IncrementCounter("widgets", 5))
	require.NoError(t, s.UpdateGauge("red_balloons", 99))
	require.NoError(t, s.RecordValue("rows", 46))

	snap := rc.Controller().Snapshot()

	require.Len(t, snap.Counters, 1)
	assert.Equal(t, "widgets", snap.Counters[0].Key.FullName())
	assert.Equal(t, uint64(5), snap.Counters[0].Value)

	require.Len(t, snap.Gauges, 1)
	assert.Equal(t, "red_balloons", snap.Gauges[0].Key.FullName())
	assert.Equal(t, int64(99), snap.Gauges[0].Value)

	require.Len(t, snap.Histograms, 1)
	assert.Equal(t, "rows", snap.Histograms[0].Key.FullName())
	assert.Equal(t, uint64(1), snap.Histograms[0].Summary.Count)
	assert.Equal(t, uint64(46), snap.Histograms[0].Summary.Sum)
	assert.Equal(t, uint64(46), snap.Histograms[0].Summary.Min)
	assert.Equal(t, uint64(46), snap.Histograms[0].Summary.Max)
}

func TestSnapshotImmutable(t *testing.T) {
	var (
		rc = newTestReceiver(t)
		s  = rc.Sink()
	)

	require.NoError(t, s.IncrementCounter("widgets", 5))

	first := rc.Controller().Snapshot()

	require.NoError(t, s.IncrementCounter("widgets", 5))

	second := rc.Controller().Snapshot()

	assert.Equal(t, uint64(5), first.Counters[0].Value)
	assert.Equal(t, uint64(10), second.Counters[0].Value)
}

func TestSnapshotDeterministicOrder(t *testing.T) {
	var (
		rc = newTestReceiver(t)
		s  = rc.Sink()
	)

	require.NoError(t, s.IncrementCounter("zebra", 1))
	require.NoError(t, s.IncrementCounter("aardvark", 1))
	require.NoError(t, s.Scoped("a").IncrementCounter("zebra", 1))

	snap := rc.Controller().Snapshot()

	var names []string

	for _, e := range snap.Counters {
		names = append(names, e.Key.FullName())
	}

	assert.Equal(t, []string{"aardvark", "zebra", "a.zebra"}, names)
}

func TestProxyInvokedPerSnapshot(t *testing.T) {
	var (
		rc    = newTestReceiver(t)
		s     = rc.Sink()
		calls atomic.Int64
	)

	s.Scoped("system").Proxy("load_stats", func() []ProxyMeasurement {
		n := calls.Add(1)

		return []ProxyMeasurement{
			{Name: "avg_1min", Measurement: GaugeValue(10 * n)},
			{Name: "avg_5min", Measurement: GaugeValue(12)},
		}
	})

	ctrl := rc.Controller()

	first := ctrl.Snapshot()

	require.Equal(t, int64(1), calls.Load())
	require.Len(t, first.Gauges, 2)
	assert.Equal(t, "system.load_stats.avg_1min", first.Gauges[0].Key.FullName())
	assert.Equal(t, int64(10), first.Gauges[0].Value)
	assert.Equal(t, "system.load_stats.avg_5min", first.Gauges[1].Key.FullName())

	// a producer whose output changes is reflected in the later snapshot only
	second := ctrl.Snapshot()

	require.Equal(t, int64(2), calls.Load())
	assert.Equal(t, int64(10), first.Gauges[0].Value)
	assert.Equal(t, int64(20), second.Gauges[0].Value)
}

func TestProxySameNameConcatenated(t *testing.T) {
	var (
		rc = newTestReceiver(t)
		s  = rc.Sink()
	)

	s.Proxy("load", func() []ProxyMeasurement {
		return []ProxyMeasurement{{Name: "avg", Measurement: GaugeValue(1)}}
	})
	s.Proxy("load", func() []ProxyMeasurement {
		return []ProxyMeasurement{{Name: "avg", Measurement: GaugeValue(2)}}
	})

	snap := rc.Controller().Snapshot()

	require.Len(t, snap.Gauges, 2)

	var values []int64

	for _, e := range snap.Gauges {
		assert.Equal(t, "load.avg", e.Key.FullName())
		values = append(values, e.Value)
	}

	assert.ElementsMatch(t, []int64{1, 2}, values)
}

func TestProxyMeasurementKinds(t *testing.T) {
	var (
		rc = newTestReceiver(t)
		s  = rc.Sink()
	)

	s.Proxy("external", func() []ProxyMeasurement {
		return []ProxyMeasurement{
			{Name: "events", Measurement: CounterValue(7)},
			{Name: "level", Measurement: GaugeValue(-3)},
			{
				Name: "latency",
				Measurement: HistogramSummary{
					Count: 2,
					Sum:   20,
					Min:   5,
					Max:   15,
				},
			},
		}
	})

	snap := rc.Controller().Snapshot()

	require.Len(t, snap.Counters, 1)
	assert.Equal(t, uint64(7), snap.Counters[0].Value)

	require.Len(t, snap.Gauges, 1)
	assert.Equal(t, int64(-3), snap.Gauges[0].Value)

	require.Len(t, snap.Histograms, 1)
	assert.Equal(t, uint64(2), snap.Histograms[0].Summary.Count)
}

func TestSnapshotContextCancellation(t *testing.T) {
	var (
		rc = newTestReceiver(t)
		s  = rc.Sink()
	)

	require.NoError(t, s.IncrementCounter("widgets", 1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	snap, err := rc.Controller().SnapshotContext(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, snap.Empty())

	// a cancelled snapshot leaves the registry fully usable
	snap, err = rc.Controller().SnapshotContext(context.Background())

	require.NoError(t, err)
	require.Len(t, snap.Counters, 1)
	assert.Equal(t, uint64(1), snap.Counters[0].Value)
}
