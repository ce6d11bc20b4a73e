// internal/common/metrics/metrics.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	apperrors "calculators/internal/common/errors"
)

var (
	CalculationsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_calculations_completed_total",
			Help: "Total number of calculations completed by engine",
		},
		[]string{"engine"},
	)

	CalculationsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_calculations_failed_total",
			Help: "Total number of calculations rejected or failed by engine",
		},
		[]string{"engine", "error_code"},
	)

	CalculationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "engine_calculation_duration_seconds",
			Help:    "Duration of calculations in seconds",
			Buckets: []float64{.00001, .0001, .001, .01, .1, 1},
		},
		[]string{"engine"},
	)

	StoreOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_operations_total",
			Help: "Store operations by backend, operation and result",
		},
		[]string{"store", "operation", "result"},
	)

	RegressionCases = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "regression_cases_total",
			Help: "Regression fixture rows by suite and status",
		},
		[]string{"suite", "status"},
	)
)

// ObserveCalculation records the outcome and duration of one engine call.
func ObserveCalculation(engine string, start time.Time, err error) {
	CalculationDuration.WithLabelValues(engine).Observe(time.Since(start).Seconds())
	if err != nil {
		code := apperrors.Normalize(err).Code
		CalculationsFailed.WithLabelValues(engine, string(code)).Inc()
		return
	}
	CalculationsCompleted.WithLabelValues(engine).Inc()
}

// ObserveStore records a store operation as "ok" or "error".
func ObserveStore(store, operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	StoreOperations.WithLabelValues(store, operation, result).Inc()
}

// ObserveRegressionCase counts one fixture row.
func ObserveRegressionCase(suite, status string) {
	RegressionCases.WithLabelValues(suite, status).Inc()
}
