package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWritesStructuredRecord(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "pos", "debug")

	ctx := WithRequestID(context.Background(), "req-1")
	l.Error(ctx, "order_create", "failed", errors.New("boom"), slog.Int("order_id", 7))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "ERROR", rec["level"])
	assert.Equal(t, "failed", rec["msg"])
	assert.Equal(t, "pos", rec["service"])
	assert.Equal(t, "order_create", rec["action"])
	assert.Equal(t, "req-1", rec["request_id"])
	assert.Equal(t, "boom", rec["error"])
	assert.EqualValues(t, 7, rec["order_id"])
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "pos", "warn")

	l.Info(context.Background(), "noise", "dropped")
	assert.Zero(t, buf.Len())

	l.Warn(context.Background(), "kept", "kept")
	assert.NotZero(t, buf.Len())
}

func TestRequestIDMissing(t *testing.T) {
	assert.Equal(t, "", RequestID(context.Background()))
}
