// Package metrics exports form controller activity to Prometheus: remote
// check results and latency, submission outcomes and latency, and refused
// submit attempts. A Recorder implements form.Observer.
//
//	rec := metrics.New(prometheus.DefaultRegisterer)
//	c, err := form.New("signup", specs, submitter, form.WithObserver(rec))
package metrics
