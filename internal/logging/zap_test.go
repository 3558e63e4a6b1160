package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_LevelsAndFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapLogger(zap.New(core))
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", 2)
	log.Warn(ctx, "wrn", "c", 3)
	log.Error(ctx, "err", "d", 4)

	entries := logs.AllUntimed()
	require.Len(t, entries, 4)

	wantLevels := []zapcore.Level{zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel}
	wantKeys := []string{"a", "b", "c", "d"}
	for i, e := range entries {
		assert.Equal(t, wantLevels[i], e.Level)
		assert.Contains(t, e.ContextMap(), wantKeys[i])
	}
}

func TestZapLogger_With_AddsFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := NewZapLogger(zap.New(core)).With("component", "store")

	log.Info(context.Background(), "hello", "k", "v")

	entries := logs.FilterMessage("hello").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "store", fields["component"])
	assert.Equal(t, "v", fields["k"])
}

func TestNew_Backends(t *testing.T) {
	var buf bytes.Buffer

	l, err := New("slog", "debug", &buf)
	require.NoError(t, err)
	l.Debug(context.Background(), "slog-out")
	assert.Contains(t, buf.String(), "slog-out")

	buf.Reset()
	l, err = New("zap", "info", &buf)
	require.NoError(t, err)
	l.Info(context.Background(), "zap-out", "x", 1)
	assert.Contains(t, buf.String(), "zap-out")

	_, err = New("zerolog", "info", &buf)
	require.Error(t, err)

	_, err = New("slog", "loud", &buf)
	require.Error(t, err)
}

func TestNop_DoesNotPanic(t *testing.T) {
	l := Nop().With("k", "v")
	l.Info(context.Background(), "ignored")
	l.Error(context.Background(), "ignored")
}
