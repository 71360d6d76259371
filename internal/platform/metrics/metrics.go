// Package metrics exposes the subsystem's Prometheus collectors. All
// collectors register on the default registry; the host process serves them
// via promhttp.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LogMessages counts messages admitted per sink and severity.
	LogMessages = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "confstore",
		Subsystem: "log",
		Name:      "messages_total",
		Help:      "Log messages admitted, by sink and level",
	}, []string{"sink", "level"})

	// CollapsedChains counts error chains collapsed at the API boundary.
	CollapsedChains = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "confstore",
		Name:      "collapsed_chains_total",
		Help:      "Error chains collapsed at the API boundary, by status code",
	}, []string{"code"})

	// AuditRowsPurged counts audit rows removed by the retention job.
	AuditRowsPurged = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "confstore",
		Subsystem: "audit",
		Name:      "rows_purged_total",
		Help:      "Audit rows removed by retention",
	})
)
