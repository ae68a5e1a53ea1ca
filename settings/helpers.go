package settings

import (
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/ordishs/gocore"
)

// lookup prefers the process environment, which LoadEnvFile may have populated, over settings.conf.
func lookup(key string) (string, bool) {
	if value, ok := os.LookupEnv(key); ok {
		return value, true
	}

	return gocore.Config().Get(key)
}

func getString(key, defaultValue string) string {
	value, found := lookup(key)
	if !found {
		return defaultValue
	}

	return value
}

func getInt(key string, defaultValue int) int {
	value, found := lookup(key)
	if !found || value == "" {
		return defaultValue
	}

	i, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return i
}

func getURL(key, defaultValue string) *url.URL {
	value, found := lookup(key)
	if !found || value == "" {
		value = defaultValue
	}

	u, err := url.Parse(value)
	if err != nil {
		u, _ = url.Parse(defaultValue)
	}

	return u
}

func getBool(key string, defaultValue bool) bool {
	value, found := lookup(key)
	if !found || value == "" {
		return defaultValue
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return b
}

// getDuration accepts Go duration strings ("250ms", "2s"). Unparseable values fall back to the default.
func getDuration(key string, defaultValue time.Duration) time.Duration {
	value, found := lookup(key)
	if !found || value == "" {
		return defaultValue
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return d
}

func getFloat64(key string, defaultValue float64) float64 {
	value, found := lookup(key)
	if !found || value == "" {
		return defaultValue
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}

	return f
}
