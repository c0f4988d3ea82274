package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// SetupPrometheus creates the registry served on the metrics server.
// Extra collectors (e.g. the pgx pool collector) are registered next to
// the build info, go runtime and process collectors.
func SetupPrometheus(extra ...prometheus.Collector) *prometheus.Registry {
	promRegistry := prometheus.NewRegistry()

	promRegistry.MustRegister(
		collectors.NewBuildInfoCollector(),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	for _, c := range extra {
		if c != nil {
			promRegistry.MustRegister(c)
		}
	}

	return promRegistry
}
