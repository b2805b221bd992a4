package common

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// VerboseEnabled controls whether Verbose/Debug output is shown, set from
// the CLI's --verbose flag exactly as in the level-builder ancestor of
// this package.
var VerboseEnabled = false

// logger is the shared structured sink. It defaults to a human-readable
// console writer so CLI output reads the same as a plain fmt.Println did
// before this package adopted zerolog.
var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05", NoColor: false}).
	With().Timestamp().Logger()

// SetOutput redirects all subsequent log output, e.g. to a file or a
// test buffer. Passing nil sends output to stdout again. The writer
// installed here never colors its output, unlike the initial default.
func SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05", NoColor: true}).
		With().Timestamp().Logger()
}

// Fields is a set of structured attributes attached to a single log line,
// used at call sites that name a specific coordinate or token: malformed-
// token and padding warnings, demoted-cell log lines, and the like.
type Fields map[string]interface{}

func withFields(ev *zerolog.Event, fields Fields) *zerolog.Event {
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	return ev
}

// Info prints a message unconditionally, regardless of verbose mode.
func Info(format string, args ...interface{}) {
	logger.Info().Msg(fmt.Sprintf(format, args...))
}

// InfoFields is Info with structured attributes attached.
func InfoFields(fields Fields, format string, args ...interface{}) {
	withFields(logger.Info(), fields).Msg(fmt.Sprintf(format, args...))
}

// Verbose prints a message only when VerboseEnabled is true.
func Verbose(format string, args ...interface{}) {
	if VerboseEnabled {
		logger.Debug().Msg(fmt.Sprintf(format, args...))
	}
}

// Debug is an alias for Verbose for semantic clarity at call sites.
func Debug(format string, args ...interface{}) {
	Verbose(format, args...)
}

// Warning prints a warning unconditionally. Every malformed token,
// padded/truncated row, and demoted cell logs through this function or
// WarningFields.
func Warning(format string, args ...interface{}) {
	logger.Warn().Msg(fmt.Sprintf(format, args...))
}

// WarningFields is Warning with structured attributes attached.
func WarningFields(fields Fields, format string, args ...interface{}) {
	withFields(logger.Warn(), fields).Msg(fmt.Sprintf(format, args...))
}

// Error prints an error message unconditionally.
func Error(format string, args ...interface{}) {
	logger.Error().Msg(fmt.Sprintf(format, args...))
}

// ErrorFields is Error with structured attributes attached, used when
// wrapping a coreerr sentinel for the caller and also wanting the
// triggering state on record.
func ErrorFields(fields Fields, format string, args ...interface{}) {
	withFields(logger.Error(), fields).Msg(fmt.Sprintf(format, args...))
}
