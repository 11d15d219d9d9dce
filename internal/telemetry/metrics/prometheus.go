package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// NewRegistry returns the registry served on /metrics. Runtime collectors are
// registered as is; storage collectors (pgxpool stats) get a service label so
// they can be told apart from other services sharing the database.
func NewRegistry(service string, storageCollectors ...prometheus.Collector) *prometheus.Registry {
	promRegistry := prometheus.NewRegistry()

	promRegistry.MustRegister(
		collectors.NewBuildInfoCollector(),
		collectors.NewGoCollector(collectors.WithGoCollectorRuntimeMetrics(
			collectors.MetricsGC,
			collectors.MetricsMemory,
			collectors.MetricsScheduler,
		)),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	labeled := prometheus.WrapRegistererWith(prometheus.Labels{"service": service}, promRegistry)
	for _, c := range storageCollectors {
		labeled.MustRegister(c)
	}

	return promRegistry
}
