package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/mtcalc/malta-tax-engine/internal/calculation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ calculation.Logger = (*Adapter)(nil)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in    string
		level slog.Level
		ok    bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"", slog.LevelInfo, true},
		{"warning", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"loud", slog.LevelInfo, false},
	}
	for _, tt := range tests {
		level, ok := ParseLevel(tt.in)
		assert.Equal(t, tt.level, level, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}

func TestJSONLoggerThroughAdapter(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewAdapter(New("debug", "json", &buf), "run_id", "abc")

	adapter.Infof("finished %d calculation(s)", 3)

	var record map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &record))
	assert.Equal(t, "INFO", record["level"])
	assert.Equal(t, "finished 3 calculation(s)", record["msg"])
	assert.Equal(t, "abc", record["run_id"])
	_, isString := record["time"].(string)
	assert.True(t, isString)
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewAdapter(New("warn", "text", &buf))

	adapter.Debugf("hidden")
	adapter.Infof("hidden")
	adapter.Warnf("shown %s", "warning")
	adapter.Errorf("shown error")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown warning")
	assert.Contains(t, out, "shown error")
}

func TestInvalidLevelWarns(t *testing.T) {
	var buf bytes.Buffer
	New("loud", "text", &buf)
	assert.True(t, strings.Contains(buf.String(), "invalid log level"))
}
