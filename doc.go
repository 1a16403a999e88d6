// Package metrics is a high-speed in-process metrics collection runtime.
//
// Applications build a Receiver, which owns the registry every metric flows
// through. From it they derive Sinks to push measurements in and a Controller
// to pull snapshots out.
//
// A Sink composes its scope prefix and default labels with caller-supplied
// names and labels to form canonical identities, resolving each identity to a
// storage cell exactly once and caching the handle. After the first use of an
// identity, updates are plain atomic operations: no locks are shared between
// writers on the steady-state path.
//
//	rc, err := metrics.NewReceiver()
//	if err != nil {
//		// invalid construction options
//	}
//
//	s := rc.Sink()
//	s.IncrementCounter("widgets", 5)
//	s.UpdateGauge("red_balloons", 99)
//
//	start := s.Now()
//	// ... work ...
//	s.RecordTiming("db.queries.select_products_ns", start, s.Now())
//
// Sinks nest like loggers: s.Scoped("secret") records "secret.widgets",
// s.Scoped("secret").Scoped("supersecret") records
// "secret.supersecret.widgets". Handles obtained once skip name resolution
// entirely:
//
//	eggs, _ := s.Counter("eggs")
//	eggs.Inc()
//	eggs.Add(12)
//
// A Controller captures immutable point-in-time snapshots of every counter,
// gauge, and histogram, along with the output of registered proxies, for the
// observer and exporter packages in this module to render and deliver.
package metrics
