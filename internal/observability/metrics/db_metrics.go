package metrics

import (
	"database/sql"
	"log"

	"github.com/prometheus/client_golang/prometheus"
)

func registerDBMetrics(db *sql.DB, logger *log.Logger) {
	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: metricPrefix + "orders_total",
			Help: "Orders known to the platform",
		},
		func() float64 {
			return queryCount(db, logger, "SELECT COUNT(*) FROM orders")
		},
	))

	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: metricPrefix + "settlements_completed",
			Help: "Settlements in completed status",
		},
		func() float64 {
			return queryCount(db, logger, "SELECT COUNT(*) FROM settlements WHERE status = 'completed'")
		},
	))

	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: metricPrefix + "customs_held",
			Help: "Customs declarations held at inspection",
		},
		func() float64 {
			return queryCount(db, logger, "SELECT COUNT(*) FROM customs_clearances WHERE status = 'held'")
		},
	))

	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: metricPrefix + "logistics_completed",
			Help: "Shipments delivered to completion",
		},
		func() float64 {
			return queryCount(db, logger, "SELECT COUNT(*) FROM logistics WHERE status = 'completed'")
		},
	))
}

func queryCount(db *sql.DB, logger *log.Logger, query string) float64 {
	if db == nil {
		return 0
	}
	var count int64
	if err := db.QueryRow(query).Scan(&count); err != nil {
		if logger != nil {
			logger.Printf("metrics query failed: %v", err)
		}
		return 0
	}
	if count < 0 {
		return 0
	}
	return float64(count)
}
