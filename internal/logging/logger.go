// Package logging builds the application's zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"task-manager/internal/config"
)

// DebugEnabled returns true if debug mode is enabled via TM_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv("TM_DEBUG") != ""
}

// New returns a logger for env writing to w. local gets a console writer at
// trace level, dev JSON at debug level and prod JSON at info level. TM_DEBUG
// lowers prod to debug.
func New(env string, w io.Writer) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	switch env {
	case config.EnvLocal:
		level = zerolog.TraceLevel
		consoleWriter := zerolog.NewConsoleWriter()
		consoleWriter.TimeFormat = time.DateTime
		consoleWriter.Out = w
		w = consoleWriter
	case config.EnvDev:
		level = zerolog.DebugLevel
	case config.EnvProd:
		if DebugEnabled() {
			level = zerolog.DebugLevel
		}
	default:
		return zerolog.Nop(), fmt.Errorf("unknown env: %s", env)
	}

	zerolog.TimestampFieldName = "timestamp"
	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Int("pid", os.Getpid()).
		Logger(), nil
}

// MustNew is like New but panics on an unknown env.
func MustNew(env string) zerolog.Logger {
	logger, err := New(env, os.Stdout)
	if err != nil {
		panic(err)
	}
	return logger
}
