// Package metrics exposes a simulation run's per-core active duration and
// energy consumption as Prometheus gauges, optionally served over HTTP by
// the CLI. It is purely observational: nothing in the builder or simulator
// depends on it.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/khryptorgraphics/ensure-sched/pkg/sched/types"
)

// Recorder holds the Prometheus gauges for one scheduling run.
type Recorder struct {
	registry *prometheus.Registry

	activeDuration *prometheus.GaugeVec
	energy         *prometheus.GaugeVec
	totalEnergy    prometheus.Gauge
}

// NewRecorder constructs a Recorder with a fresh registry, grounded on the
// teacher's MetricsCollector (pkg/monitoring/metrics.go).
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()

	r := &Recorder{
		registry: registry,
		activeDuration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ensure_sched_core_active_duration_ms",
			Help: "Active duration accumulated by a core over the simulated frame.",
		}, []string{"core", "kind"}),
		energy: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ensure_sched_core_energy_consumed",
			Help: "Energy consumed by a core over the simulated frame.",
		}, []string{"core", "kind"}),
		totalEnergy: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ensure_sched_total_energy_consumed",
			Help: "Total energy consumed across every core.",
		}),
	}

	registry.MustRegister(r.activeDuration, r.energy, r.totalEnergy)
	return r
}

// Record snapshots the final state of lpCores and hpCore into the gauges.
func (r *Recorder) Record(lpCores []*types.Core, hpCore *types.Core) {
	var total float64
	for _, c := range lpCores {
		r.activeDuration.WithLabelValues(c.Name, string(c.Kind)).Set(c.ActiveDuration)
		r.energy.WithLabelValues(c.Name, string(c.Kind)).Set(c.EnergyConsumed)
		total += c.EnergyConsumed
	}
	r.activeDuration.WithLabelValues(hpCore.Name, string(hpCore.Kind)).Set(hpCore.ActiveDuration)
	r.energy.WithLabelValues(hpCore.Name, string(hpCore.Kind)).Set(hpCore.EnergyConsumed)
	total += hpCore.EnergyConsumed

	r.totalEnergy.Set(total)
}

// Handler returns the HTTP handler serving this recorder's registry in the
// Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
