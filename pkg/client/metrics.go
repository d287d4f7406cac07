package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics of a wallet client
type Metrics struct {
	Operations *prometheus.CounterVec
	SyncPhase  prometheus.Gauge
}

// NewMetrics creates the client metrics and registers them on reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Operations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "walletsync_operations_total",
			Help: "Total number of wallet operations by outcome",
		}, []string{"operation", "result"}),
		SyncPhase: factory.NewGauge(prometheus.GaugeOpts{
			Name: "walletsync_sync_phase",
			Help: "Current wallet connection phase (0 disconnected, 1 connecting, 2 ready, 3 failed)",
		}),
	}
}

// ObserveOperation counts one finished operation.
func (m *Metrics) ObserveOperation(op string, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	m.Operations.WithLabelValues(op, result).Inc()
}

// SetPhase records the current connection phase.
func (m *Metrics) SetPhase(p Phase) {
	m.SyncPhase.Set(float64(p))
}
