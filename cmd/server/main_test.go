package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supportchat-backend/internal/config"
)

func TestNewLogger_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&config.Config{Env: "production"}, &buf)

	logger.Info().Str("port", "8080").Msg("listening")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "listening", entry["message"])
	assert.Equal(t, "8080", entry["port"])
	assert.Contains(t, entry, "time")
}

func TestNewLogger_DevelopmentWritesConsole(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&config.Config{Env: "development"}, &buf)

	logger.Warn().Msg("caching disabled")

	assert.Contains(t, buf.String(), "caching disabled")
	assert.False(t, json.Valid(buf.Bytes()))
}
