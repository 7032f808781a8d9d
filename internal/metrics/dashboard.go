package metrics

import "github.com/prometheus/client_golang/prometheus"

// Dashboard Prometheus metrics.
var (
	RecordsLoaded = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "dinedash",
			Name:      "records_loaded",
			Help:      "Number of restaurant records held by the record store",
		},
	)

	RecordLoadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dinedash",
			Name:      "record_loads_total",
			Help:      "One-time record store loads by source and status",
		},
		[]string{"source", "status"},
	)

	ViewComputeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dinedash",
			Name:      "view_compute_duration_seconds",
			Help:      "Filter and sort pipeline duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
		[]string{"sort"},
	)

	DialogsOpen = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "dinedash",
			Name:      "dialogs_open",
			Help:      "Dialogs currently open across all sessions",
		},
	)

	DialogSweepsReconciledTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "dinedash",
			Name:      "dialog_sweeps_reconciled_total",
			Help:      "Sweeps that found and removed stray dialog surfaces",
		},
	)

	DialogForceClosesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dinedash",
			Name:      "dialog_force_close_total",
			Help:      "Force-close-all invocations by trigger",
		},
		[]string{"trigger"}, // "shortcut" / "panic" / "api"
	)

	SessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "dinedash",
			Name:      "sessions_active",
			Help:      "Dashboard sessions currently held in memory",
		},
	)
)

var dashMetricsRegistered bool

// RegisterDashboardMetrics registers Prometheus dashboard metrics. Must be called once from main.
func RegisterDashboardMetrics() {
	if dashMetricsRegistered {
		return
	}
	prometheus.MustRegister(RecordsLoaded)
	prometheus.MustRegister(RecordLoadsTotal)
	prometheus.MustRegister(ViewComputeDuration)
	prometheus.MustRegister(DialogsOpen)
	prometheus.MustRegister(DialogSweepsReconciledTotal)
	prometheus.MustRegister(DialogForceClosesTotal)
	prometheus.MustRegister(SessionsActive)
	dashMetricsRegistered = true
}
