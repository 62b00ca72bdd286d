package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := context.Background()

	_, ok := RequestIDFromContext(ctx)
	assert.False(t, ok, "empty context should have no request ID")

	id := GenerateRequestID()
	ctx = WithRequestID(ctx, id)

	got, ok := RequestIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, id, got)
}

func TestInitLoggerWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := NewConfig(LogLevelInfo, LogFormatJSON, "trove-api", "test", EnvironmentTest, false)
	InitLoggerWithWriter(cfg, &buf)

	ctx := WithRequestID(context.Background(), "req-123")
	FromContext(ctx).Info("hello", "key", "value")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "req-123", entry[AttrKeyRequestID])
	assert.Equal(t, "trove-api", entry[AttrKeyService])
	assert.Equal(t, EnvironmentTest, entry[AttrKeyEnvironment])
}

func TestLogLevelParsing(t *testing.T) {
	tests := []struct {
		level    string
		expected string
	}{
		{"debug", "DEBUG"},
		{"info", "INFO"},
		{"WARN", "WARN"},
		{"warning", "WARN"},
		{"error", "ERROR"},
		{"bogus", "INFO"},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := Config{Level: tt.level}
			assert.Equal(t, tt.expected, cfg.LogLevel().String())
		})
	}
}
