package vault

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	prometheusVaultAdd    prometheus.Counter
	prometheusVaultGet    prometheus.Counter
	prometheusVaultSpend  prometheus.Counter
	prometheusVaultErrors *prometheus.CounterVec

	// only init the metrics once
	prometheusMetricsInitOnce sync.Once
)

func initPrometheusMetrics() {
	prometheusMetricsInitOnce.Do(_initPrometheusMetrics)
}

func _initPrometheusMetrics() {
	prometheusVaultAdd = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vault_state_add",
			Help: "Number of states recorded in the vault",
		},
	)
	prometheusVaultGet = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vault_state_get",
			Help: "Number of vault state lookups",
		},
	)
	prometheusVaultSpend = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vault_state_spend",
			Help: "Number of states settled as spent",
		},
	)
	prometheusVaultErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vault_errors",
			Help: "Number of vault store errors",
		},
		[]string{
			"function", // function raising the error
			"error",    // error returned
		},
	)
}
