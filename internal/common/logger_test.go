package common

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_WithContext(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "server", zerolog.InfoLevel).With("request_id", "abc")

	ctx := logger.WithContext(context.Background())
	LoggerFromContext(ctx, nil).Info().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "server", entry["role"])
	assert.Equal(t, "abc", entry["request_id"])
	assert.Equal(t, "hello", entry["message"])
}

func TestLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "server", zerolog.WarnLevel)

	logger.Info().Msg("dropped")
	assert.Zero(t, buf.Len())

	logger.Error().Msg("kept")
	assert.NotZero(t, buf.Len())
}

func TestLoggerFromContext_Fallback(t *testing.T) {
	var buf bytes.Buffer
	fallback := newLogger(&buf, "server", zerolog.InfoLevel)

	LoggerFromContext(context.Background(), fallback).Info().Msg("hello")
	assert.Contains(t, buf.String(), "hello")

	// no logger stored and no fallback: must not panic
	LoggerFromContext(context.Background(), nil).Info().Msg("discarded")
}
