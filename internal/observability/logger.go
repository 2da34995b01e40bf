package observability

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger attaches the application name to the global logger so
// every line names the binary that wrote it. Call after
// logging.Configure; the field rides on whatever output is configured.
func InitLogger(app string) zerolog.Logger {
	logger := log.Logger.With().Str("app", app).Logger()
	log.Logger = logger
	return logger
}
