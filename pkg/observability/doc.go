/*
Package observability turns the engine's lifecycle hooks into logs and
Prometheus metrics.

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
	engine := botcmd.New(botcmd.WithLifecycleHooks(observability.Combine(
		metrics.Hooks(),
		observability.LogHooks(logger),
	)))
*/
package observability
