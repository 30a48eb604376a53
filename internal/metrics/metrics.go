package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "fleet_"

	ResultSuccess = "success"
	ResultError   = "error"
)

var (
	registerOnce sync.Once

	loadTotal   *prometheus.CounterVec
	loadLatency *prometheus.HistogramVec

	enrichTotal *prometheus.CounterVec

	fleetSize        prometheus.Gauge
	failedEnrichment prometheus.Gauge
	snapshotAge      prometheus.Gauge
)

// Init registers the fleet metrics with reg. Later calls are no-ops.
func Init(reg prometheus.Registerer) {
	registerOnce.Do(func() {
		loadTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "snapshot_loads_total",
				Help: "Total snapshot loads by result",
			},
			[]string{"result"},
		)
		loadLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "snapshot_load_latency_seconds",
				Help:    "Snapshot load latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)
		enrichTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "enrichments_total",
				Help: "Total equipment enrichments by result and failure reason",
			},
			[]string{"result", "reason"},
		)
		fleetSize = prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: metricPrefix + "equipment",
				Help: "Equipment in the current snapshot",
			},
		)
		failedEnrichment = prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: metricPrefix + "equipment_failed",
				Help: "Equipment whose enrichment failed in the current snapshot",
			},
		)
		snapshotAge = prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: metricPrefix + "snapshot_loaded_timestamp_seconds",
				Help: "Unix time of the current snapshot",
			},
		)

		reg.MustRegister(loadTotal, loadLatency, enrichTotal, fleetSize, failedEnrichment, snapshotAge)
	})
}

// ObserveLoad records one snapshot load.
func ObserveLoad(result string, d time.Duration) {
	if loadTotal == nil {
		return
	}
	loadTotal.WithLabelValues(result).Inc()
	loadLatency.WithLabelValues(result).Observe(d.Seconds())
}

// ObserveEnrichment records the outcome of one equipment enrichment.
// reason is empty on success.
func ObserveEnrichment(reason string) {
	if enrichTotal == nil {
		return
	}
	if reason == "" {
		enrichTotal.WithLabelValues(ResultSuccess, "").Inc()
		return
	}
	enrichTotal.WithLabelValues(ResultError, reason).Inc()
}

// SetSnapshot publishes the size of a freshly loaded snapshot.
func SetSnapshot(total, failed int, loadedAt time.Time) {
	if fleetSize == nil {
		return
	}
	fleetSize.Set(float64(total))
	failedEnrichment.Set(float64(failed))
	snapshotAge.Set(float64(loadedAt.Unix()))
}
