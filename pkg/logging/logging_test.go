package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "debug", Format: "json", Output: &buf})

	l.With(String("component", "autorange")).Info(context.Background(), "detail changed",
		Uint64("start", 88000000), Bool("fixed", true))

	var rec map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "detail changed", rec["msg"])
	assert.Equal(t, "autorange", rec["component"])
	assert.Equal(t, true, rec["fixed"])
	assert.Equal(t, float64(88000000), rec["start"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "warn", Output: &buf})

	l.Info(context.Background(), "hidden")
	assert.Empty(t, buf.String())
	l.Warn(context.Background(), "shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestDebugf(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "debug", Output: &buf})

	debug := Debugf(l, String("pkg", "spectrum"))
	require.NotNil(t, debug)
	debug("SetSampleRate: %d Hz", 2400000)
	assert.Contains(t, buf.String(), "SetSampleRate: 2400000 Hz")
	assert.Contains(t, buf.String(), "pkg=spectrum")

	assert.Nil(t, Debugf(nil))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}

func TestNoop(t *testing.T) {
	l := Noop().With(String("a", "b"))
	l.Error(context.Background(), "dropped")
}
