package main

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// EnvLogLevel overrides the scenario's log_level when set.
const EnvLogLevel = "CONDUIT_LOG_LEVEL"

func initLogger(app string, level zerolog.Level) zerolog.Logger {
	if raw := strings.TrimSpace(os.Getenv(EnvLogLevel)); raw != "" {
		if lvl, err := zerolog.ParseLevel(raw); err == nil {
			level = lvl
		}
	}

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Str("app", app).
		Logger()
}
