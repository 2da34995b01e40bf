package testlog

import (
	"testing"

	"github.com/rs/zerolog/log"

	"github.com/nestwork/turducken/internal/logging"
)

// Start quiets the global logger for a test.
func Start(t *testing.T) {
	t.Helper()
	logging.ConfigureTests()
	log.Debug().Str("test", t.Name()).Msg("test start")
}
