package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SimulationRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "desalsim_runs_total",
			Help: "Total simulation runs by outcome",
		},
		[]string{"status"},
	)

	SimulationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "desalsim_run_duration_seconds",
			Help:    "Wall-clock duration of a full-year simulation",
			Buckets: prometheus.DefBuckets,
		},
	)

	LastRunProductionLiters = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "desalsim_last_run_production_liters",
			Help: "Annual distilled water production of the most recent run",
		},
	)

	LastRunMeanGOR = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "desalsim_last_run_mean_gor",
			Help: "Mean gained output ratio of the most recent run",
		},
	)

	LastRunMeanRadiation = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "desalsim_last_run_mean_radiation_wm2",
			Help: "Mean daily solar radiation of the most recent run",
		},
	)

	RunsPersisted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "desalsim_runs_persisted_total",
			Help: "Simulation runs written to the results database",
		},
	)
)

// RecordRun updates the last-run gauges after a successful simulation.
func RecordRun(productionLiters, meanGOR, meanRadiation float64) {
	LastRunProductionLiters.Set(productionLiters)
	LastRunMeanGOR.Set(meanGOR)
	LastRunMeanRadiation.Set(meanRadiation)
}
