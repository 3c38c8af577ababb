// Package relaycommon holds shared definitions for the relay service runtime.
package relaycommon

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = "config.toml"

// InitLogger initializes the global logger with Unix millisecond timestamps.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
}
