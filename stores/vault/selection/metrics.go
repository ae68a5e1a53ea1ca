package selection

import (
	"sync"

	"github.com/bsv-blockchain/utxolock/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	prometheusSelectionAttempts     prometheus.Counter
	prometheusSelectionSuccess      prometheus.Counter
	prometheusSelectionContention   prometheus.Counter
	prometheusSelectionInsufficient prometheus.Counter
	prometheusSelectionInvalid      prometheus.Counter
	prometheusSelectionDuration     prometheus.Histogram
	prometheusSelectionStates       prometheus.Histogram
	prometheusReleasedStates        prometheus.Counter

	// only init the metrics once
	prometheusMetricsInitOnce sync.Once
)

func initPrometheusMetrics() {
	prometheusMetricsInitOnce.Do(_initPrometheusMetrics)
}

func _initPrometheusMetrics() {
	prometheusSelectionAttempts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "selection_attempts",
			Help: "Number of select and claim attempts, including retries",
		},
	)
	prometheusSelectionSuccess = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "selection_success",
			Help: "Number of selections that claimed their states",
		},
	)
	prometheusSelectionContention = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "selection_contention",
			Help: "Number of attempts that lost a claim to another requester",
		},
	)
	prometheusSelectionInsufficient = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "selection_insufficient_funds",
			Help: "Number of selections that could not cover their target",
		},
	)
	prometheusSelectionInvalid = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "selection_invalid_criteria",
			Help: "Number of selections rejected before touching the store",
		},
	)
	prometheusSelectionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "selection_duration_seconds",
			Help:    "Duration of SelectAndLock calls",
			Buckets: util.MetricsBucketsMilliSeconds,
		},
	)
	prometheusSelectionStates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "selection_states",
			Help:    "Number of states claimed per selection",
			Buckets: util.MetricsBucketsCount,
		},
	)
	prometheusReleasedStates = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "selection_released_states",
			Help: "Number of states whose soft lock was released",
		},
	)
}
