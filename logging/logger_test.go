package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/kndndrj/go-arango/logging"
)

func TestParseLevel(t *testing.T) {
	r := require.New(t)

	testCases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		" DEBUG ": zerolog.DebugLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"":        zerolog.InfoLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for in, expected := range testCases {
		r.Equal(expected, logging.ParseLevel(in), in)
	}
}

func TestZerolog_JSON(t *testing.T) {
	r := require.New(t)

	var buf bytes.Buffer
	log := logging.NewZerolog(&buf, "info", true).With("database", "shop")

	log.Debug("hidden")
	log.Infof("opened cursor %s", "42")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	r.Len(lines, 1)

	var entry map[string]any
	r.NoError(json.Unmarshal([]byte(lines[0]), &entry))
	r.Equal("info", entry["level"])
	r.Equal("opened cursor 42", entry["message"])
	r.Equal("shop", entry["database"])
}

func TestZerolog_Console(t *testing.T) {
	r := require.New(t)

	var buf bytes.Buffer
	log := logging.NewZerolog(&buf, "debug", false)
	log.Errorf("status %d", 500)

	r.Contains(buf.String(), "status 500")
	r.Contains(buf.String(), "ERR")
}

func TestNop(t *testing.T) {
	log := logging.Nop()
	log.Error("nothing happens")
	log.Debugf("%s", "nothing")
}
