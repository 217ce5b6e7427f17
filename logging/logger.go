package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type Logger interface {
	Debug(msg string)
	Debugf(format string, args ...any)
	Info(msg string)
	Infof(format string, args ...any)
	Warn(msg string)
	Warnf(format string, args ...any)
	Error(msg string)
	Errorf(format string, args ...any)
}

var _ Logger = (*Zerolog)(nil)

// Zerolog is a Logger backed by zerolog.
type Zerolog struct {
	log zerolog.Logger
}

// NewZerolog writes to w at the given level ("debug", "info", "warn",
// "error"). Output is JSON when json is set, a console format otherwise.
func NewZerolog(w io.Writer, level string, json bool) *Zerolog {
	out := w
	if !json {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	}

	return &Zerolog{
		log: zerolog.New(out).Level(ParseLevel(level)).With().Timestamp().Logger(),
	}
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// With returns a logger that adds a string field to every entry.
func (z *Zerolog) With(key, value string) *Zerolog {
	return &Zerolog{log: z.log.With().Str(key, value).Logger()}
}

func (z *Zerolog) Debug(msg string) {
	z.log.Debug().Msg(msg)
}

func (z *Zerolog) Debugf(format string, args ...any) {
	z.log.Debug().Msg(fmt.Sprintf(format, args...))
}

func (z *Zerolog) Info(msg string) {
	z.log.Info().Msg(msg)
}

func (z *Zerolog) Infof(format string, args ...any) {
	z.log.Info().Msg(fmt.Sprintf(format, args...))
}

func (z *Zerolog) Warn(msg string) {
	z.log.Warn().Msg(msg)
}

func (z *Zerolog) Warnf(format string, args ...any) {
	z.log.Warn().Msg(fmt.Sprintf(format, args...))
}

func (z *Zerolog) Error(msg string) {
	z.log.Error().Msg(msg)
}

func (z *Zerolog) Errorf(format string, args ...any) {
	z.log.Error().Msg(fmt.Sprintf(format, args...))
}

// Nop returns a logger that discards everything.
func Nop() Logger {
	return &Zerolog{log: zerolog.Nop()}
}
