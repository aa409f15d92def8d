package metrics

import (
	"net/http"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds process-level series shared by every component.
type Metrics struct {
	BuildInfo      *prometheus.GaugeVec
	BackendEnabled *prometheus.GaugeVec
}

func New() *Metrics {
	return &Metrics{
		BuildInfo: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "statusgate_build_info",
			Help: "Build information for the running statusgate process",
		}, []string{"go_version"}),
		BackendEnabled: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "statusgate_backend_enabled",
			Help: "Configured backends (1 = active) by component",
		}, []string{"component", "backend"}),
	}
}

func (m *Metrics) RecordStartup(storeBackend, queueBackend string) {
	if m == nil {
		return
	}
	m.BuildInfo.WithLabelValues(runtime.Version()).Set(1)
	m.BackendEnabled.WithLabelValues("store", storeBackend).Set(1)
	m.BackendEnabled.WithLabelValues("queue", queueBackend).Set(1)
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
