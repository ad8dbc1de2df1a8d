package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ProvisionMetrics instruments the provisioning stages (validate, resolve,
// create, reconcile) so stage outcomes are observable without console logs
// scattered through the flow.
type ProvisionMetrics struct {
	StageTotal    *prometheus.CounterVec
	StageDuration *prometheus.HistogramVec
}

// NewProvisionMetrics registers the stage metrics. A nil registerer uses the
// process-default registry; tests pass their own.
func NewProvisionMetrics(reg prometheus.Registerer) *ProvisionMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	stageTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "variantapi",
		Name:      "provision_stage_total",
		Help:      "Provisioning stage outcomes.",
	}, []string{"stage", "outcome"})
	stageDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "variantapi",
		Name:      "provision_stage_duration_ms",
		Help:      "Provisioning stage latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"stage"})

	reg.MustRegister(stageTotal, stageDuration)
	return &ProvisionMetrics{StageTotal: stageTotal, StageDuration: stageDuration}
}

// ObserveStage records one stage completion
func (m *ProvisionMetrics) ObserveStage(stage, outcome string, d time.Duration) {
	m.StageTotal.WithLabelValues(stage, outcome).Inc()
	m.StageDuration.WithLabelValues(stage).Observe(float64(d.Milliseconds()))
}

// Handler exposes the default registry for GET /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
