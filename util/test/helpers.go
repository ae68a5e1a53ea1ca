package test

import (
	"net/url"
	"time"

	"github.com/bsv-blockchain/utxolock/settings"
)

// CreateBaseTestSettings returns settings pointing at a private in-memory vault with short
// selection backoffs.
func CreateBaseTestSettings() *settings.Settings {
	tSettings := settings.NewSettings()
	tSettings.Vault.StoreURL = &url.URL{Scheme: "sqlitememory", Path: "/"}
	tSettings.Vault.DBTimeout = 30 * time.Second
	tSettings.Selection.MaxAttempts = 10
	tSettings.Selection.BackoffMultiplier = 1
	tSettings.Selection.BackoffDuration = time.Millisecond
	tSettings.Selection.ExponentialBackoff = false
	tSettings.Selection.MaxBackoff = 10 * time.Millisecond
	tSettings.Tracing.Enabled = false

	return tSettings
}
