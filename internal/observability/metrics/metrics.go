package metrics

import (
	"database/sql"
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "platform_"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	collabTicks       *prometheus.CounterVec
	collabTickLatency *prometheus.HistogramVec

	collabEvents *prometheus.CounterVec

	collabQueueDepth prometheus.Gauge
	collabSeeded     prometheus.Counter

	consistencyChecks  *prometheus.CounterVec
	consistencyLatency *prometheus.HistogramVec
	consistencyScore   prometheus.Gauge
)

// Init registers observability metrics and DB-backed gauges.
func Init(db *sql.DB, logger *log.Logger) {
	registerOnce.Do(func() {
		collabTicks = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "collab_ticks_total",
				Help: "Total collaboration engine ticks by result",
			},
			[]string{"result"},
		)
		collabTickLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "collab_tick_latency_seconds",
				Help:    "Collaboration tick latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		collabEvents = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "collab_events_total",
				Help: "Total dispatched pipeline events by type and result",
			},
			[]string{"type", "result"},
		)

		collabQueueDepth = prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: metricPrefix + "collab_queue_depth",
				Help: "Pending events in the collaboration queue",
			},
		)
		collabSeeded = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "collab_seeded_orders_total",
				Help: "Total orders seeded into the collaboration queue",
			},
		)

		consistencyChecks = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "consistency_checks_total",
				Help: "Total consistency check runs by result",
			},
			[]string{"result"},
		)
		consistencyLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "consistency_check_latency_seconds",
				Help:    "Consistency check latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)
		consistencyScore = prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: metricPrefix + "consistency_sync_score",
				Help: "Latest cross-stage data sync score",
			},
		)

		prometheus.MustRegister(
			collabTicks,
			collabTickLatency,
			collabEvents,
			collabQueueDepth,
			collabSeeded,
			consistencyChecks,
			consistencyLatency,
			consistencyScore,
		)

		if db != nil {
			registerDBMetrics(db, logger)
		}
	})
}

// ObserveTick records tick duration and result.
func ObserveTick(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if collabTicks != nil {
		collabTicks.WithLabelValues(result).Inc()
	}
	if collabTickLatency != nil {
		collabTickLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// ObserveEvent counts a dispatched event by type and result.
func ObserveEvent(eventType, result string) {
	if eventType == "" {
		eventType = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if collabEvents != nil {
		collabEvents.WithLabelValues(eventType, result).Inc()
	}
}

// SetQueueDepth sets the pending event gauge.
func SetQueueDepth(depth int) {
	if depth < 0 {
		depth = 0
	}
	if collabQueueDepth != nil {
		collabQueueDepth.Set(float64(depth))
	}
}

// AddSeeded increments the seeded order counter by count.
func AddSeeded(count int) {
	if count <= 0 {
		return
	}
	if collabSeeded != nil {
		collabSeeded.Add(float64(count))
	}
}

// ObserveConsistency records consistency check latency and result.
func ObserveConsistency(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if consistencyChecks != nil {
		consistencyChecks.WithLabelValues(result).Inc()
	}
	if consistencyLatency != nil {
		consistencyLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// SetSyncScore sets the latest sync score gauge.
func SetSyncScore(score float64) {
	if consistencyScore != nil {
		consistencyScore.Set(score)
	}
}

// Exported constants for callers.
const (
	ResultSuccess = resultSuccess
	ResultError   = resultError
)
