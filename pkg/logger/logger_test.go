package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chirag807/pdf-annotation-frontend/pkg/logger"
)

func TestBufferOutputIsStructured(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New().FromBuffer(&buf).WithLevel("debug").Make()

	log.Info().Str("component", "test").Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["message"])
	assert.Equal(t, "test", entry["component"])
	assert.Equal(t, "info", entry["level"])
	assert.Contains(t, entry, "time")
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New().FromBuffer(&buf).WithLevel("warn").Make()

	log.Info().Msg("dropped")
	assert.Empty(t, buf.Bytes())

	log.Warn().Msg("kept")
	assert.NotEmpty(t, buf.Bytes())
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New().FromBuffer(&buf).WithLevel("shouting").Make()

	log.Debug().Msg("dropped")
	assert.Empty(t, buf.Bytes())

	log.Info().Msg("kept")
	assert.NotEmpty(t, buf.Bytes())
}

func TestConsoleOutputIsHumanReadable(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New().FromBuffer(&buf).Console().Make()

	log.Info().Msg("readable")

	assert.Contains(t, buf.String(), "readable")
	assert.False(t, json.Valid(buf.Bytes()))
}
