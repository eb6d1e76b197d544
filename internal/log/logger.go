package log

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const serviceName = "chat-server"

// New builds the process logger at the given level string (debug, info,
// warn, error). Unknown levels fall back to info. Every line carries the
// service name so relay logs stay distinguishable when aggregated.
func New(level string) *zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}

	logger := zerolog.New(output).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Str("service", serviceName).
		Logger()
	return &logger
}

// Nop returns a logger that discards everything. Used where a component
// requires a logger but no output is wanted.
func Nop() *zerolog.Logger {
	logger := zerolog.Nop()
	return &logger
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "info", "":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
