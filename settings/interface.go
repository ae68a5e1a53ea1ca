package settings

import (
	"net/url"
	"time"
)

type VaultSettings struct {
	StoreURL             *url.URL
	DBTimeout            time.Duration
	PostgresMaxIdleConns int
	PostgresMaxOpenConns int
	HTTPListenAddress    string
}

type SelectionSettings struct {
	MaxAttempts        int
	BackoffMultiplier  int
	BackoffDuration    time.Duration
	ExponentialBackoff bool
	BackoffFactor      float64
	MaxBackoff         time.Duration
}

type TracingSettings struct {
	Enabled           bool
	ServiceName       string
	CollectorEndpoint string
	SampleRate        float64
}

type Settings struct {
	ClientName string
	DataFolder string
	LogLevel   string
	Vault      VaultSettings
	Selection  SelectionSettings
	Tracing    TracingSettings
}
