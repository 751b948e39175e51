package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var log = zerolog.New(os.Stderr).With().Timestamp().Logger()

func Log() *zerolog.Logger {
	return &log
}

// Setup installs the writer for format ("console" or "json") and the global
// level.
func Setup(format, level string) error {
	switch format {
	case "json":
		SetJsonWriter()
	default:
		SetConsoleWriter()
	}
	return SetLevel(level)
}

func SetLevel(level string) error {
	if level == "" {
		level = "info"
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(lvl)
	return nil
}

func SetJsonWriter() {
	SetWriter(os.Stderr)
}

func SetWriter(w io.Writer) {
	log = zerolog.New(w).With().Timestamp().Logger()
}

func SetLogger(logger zerolog.Logger) {
	log = logger
}

func Debug() *zerolog.Event { return log.Debug() }
func Info() *zerolog.Event  { return log.Info() }
func Warn() *zerolog.Event  { return log.Warn() }

// Error starts an error-level event carrying err.
func Error(err error) *zerolog.Event {
	return log.Error().Err(err)
}

// Fatal logs err and exits the process once the event is sent.
func Fatal(err error) *zerolog.Event {
	return log.Fatal().Err(err)
}

// Since adds the elapsed time since start as the "dur" field.
func Since(e *zerolog.Event, start time.Time) *zerolog.Event {
	return e.Str("dur", time.Since(start).String())
}
