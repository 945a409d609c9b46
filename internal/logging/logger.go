// Package logging configures the global zerolog logger.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LevelEnv names the environment variable that selects the log level
const LevelEnv = "ARCHITECT_LOG_LEVEL"

// Init initializes the global logger with configuration from environment variables.
// ARCHITECT_LOG_LEVEL controls the log level: debug, info, warn, error (default: info).
// ARCHITECT_LOG_FORMAT=json switches from the console writer to plain JSON lines.
func Init() {
	InitWithWriter(os.Stderr, os.Getenv(LevelEnv), os.Getenv("ARCHITECT_LOG_FORMAT") == "json")
}

// InitWithWriter configures the global logger to write to w
func InitWithWriter(w io.Writer, level string, jsonOutput bool) {
	zerolog.SetGlobalLevel(ParseLevel(level))
	if jsonOutput {
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w})
}

// ParseLevel maps a level name to a zerolog level, defaulting to info
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
