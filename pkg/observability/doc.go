/*
Package observability provides Prometheus metrics for confcheck.

Metrics are fed through checker lifecycle hooks, so the checker itself has no
dependency on the metrics backend:

	m := observability.NewMetrics(prometheus.NewRegistry())
	c := confcheck.New(confcheck.WithHooks(m.Hooks()))
*/
package observability
