package main

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func TestLogHandler(t *testing.T) {
	var buffer bytes.Buffer
	logger := slog.New(NewLogHandler(&buffer, &slog.HandlerOptions{Level: slog.LevelInfo}))

	logger.Debug("hidden")
	logger.Info("stored map", "routes", 2)
	logger.With("request", "/v0/map").Warn("no valid routes")

	lines := bytes.Split(bytes.TrimSpace(buffer.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	assert.Regexp(t, regexp.MustCompile(`^\d{4}/\d{2}/\d{2} \d{2}:\d{2}:\d{2} INFO stored map routes=2$`), string(lines[0]))
	assert.Contains(t, string(lines[1]), "WARN no valid routes")
}

func TestParseLogLevel(t *testing.T) {
	level, err := ParseLogLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	level, err = ParseLogLevel("")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)

	_, err = ParseLogLevel("verbose")
	assert.Error(t, err)
}
