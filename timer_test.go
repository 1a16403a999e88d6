package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimer(t *testing.T) {
	var (
		rc = newTestReceiver(t)
		s  = rc.Sink()
	)

	tm, err := NewTimer(s, "db.query")
	require.NoError(t, err)

	tm.Start().Stop()
	tm.Start().Stop()

	snap := rc.Controller().Snapshot()

	require.Len(t, snap.Histograms, 1)
	assert.Equal(t, "db.query_ns", snap.Histograms[0].Key.FullName())
	assert.Equal(t, uint64(2), snap.Histograms[0].Summary.Count)
}

func TestTimerLabels(t *testing.T) {
	var (
		rc = newTestReceiver(t)
		s  = rc.Sink()
	)

	tm, err := NewTimer(s, "db.query", LabelKV("table", "posts"))
	require.NoError(t, err)

	tm.Start().Stop()

	snap := rc.Controller().Snapshot()

	require.Len(t, snap.Histograms, 1)
	assert.Equal(
		t,
		map[string]string{"table": "posts"},
		snap.Histograms[0].Key.LabelMap(),
	)
}

func TestTimerKindMismatch(t *testing.T) {
	var (
		rc = newTestReceiver(t)
		s  = rc.Sink()
	)

	_, err := s.Counter("db.query_ns")
	require.NoError(t, err)

	_, err = NewTimer(s, "db.query")

	var mismatch *KindMismatchError

	assert.ErrorAs(t, err, &mismatch)
}
