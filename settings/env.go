package settings

import (
	"github.com/bsv-blockchain/utxolock/errors"
	"github.com/joho/godotenv"
)

// LoadEnvFile exports the key=value pairs of each file into the process environment, where they
// take precedence over settings.conf. Variables that are already set are not overridden. Call it
// before NewSettings.
func LoadEnvFile(filenames ...string) error {
	if err := godotenv.Load(filenames...); err != nil {
		return errors.NewConfigurationError("failed to load env file %v", filenames, err)
	}

	return nil
}
