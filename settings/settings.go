package settings

import (
	"time"
)

func NewSettings() *Settings {
	return &Settings{
		ClientName: getString("clientName", "defaultClientName"),
		DataFolder: getString("dataFolder", "data"),
		LogLevel:   getString("logLevel", "INFO"),
		Vault: VaultSettings{
			StoreURL:             getURL("vault_store", "sqlite:///vault"),
			DBTimeout:            getDuration("vault_dbTimeout", 5*time.Second),
			PostgresMaxIdleConns: getInt("vault_postgresMaxIdleConns", 10),
			PostgresMaxOpenConns: getInt("vault_postgresMaxOpenConns", 80),
			HTTPListenAddress:    getString("vault_httpListenAddress", ":8090"),
		},
		Selection: SelectionSettings{
			MaxAttempts:        getInt("selection_maxAttempts", 5),
			BackoffMultiplier:  getInt("selection_backoffMultiplier", 2),
			BackoffDuration:    getDuration("selection_backoffDuration", 100*time.Millisecond),
			ExponentialBackoff: getBool("selection_exponentialBackoff", false),
			BackoffFactor:      getFloat64("selection_backoffFactor", 2.0),
			MaxBackoff:         getDuration("selection_maxBackoff", 2*time.Second),
		},
		Tracing: TracingSettings{
			Enabled:           getBool("tracing_enabled", false),
			ServiceName:       getString("tracing_serviceName", "utxolock"),
			CollectorEndpoint: getString("tracing_collectorEndpoint", "localhost:4318"),
			SampleRate:        getFloat64("tracing_sampleRate", 1.0),
		},
	}
}
