package metrics

import "context"

// Controller produces snapshots for observers and exporters. It is the only
// read-side surface: consumers never touch the registry or handles directly.
type Controller struct {
	r *registry
}

// Snapshot synchronously captures every cell and proxy.
func (c *Controller) Snapshot() Snapshot {
	s, _ := c.r.snapshot(context.Background())

	return s
}

// SnapshotContext captures with cooperative cancellation: if ctx is cancelled
// mid-walk the partial result is discarded and ctx's error returned, leaving
// the registry untouched. The consistency guarantees are those of Snapshot.
func (c *Controller) SnapshotContext(ctx context.Context) (Snapshot, error) {
	return c.r.snapshot(ctx)
}
