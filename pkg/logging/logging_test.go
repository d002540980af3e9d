package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zerolog.Level
	}{
		{-1, zerolog.WarnLevel},
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{3, zerolog.TraceLevel},
		{7, zerolog.TraceLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Level(tt.verbosity), "verbosity %d", tt.verbosity)
	}
}

func TestGetTagsComponent(t *testing.T) {
	var buf bytes.Buffer
	Setup(Options{Verbosity: 1, Writer: &buf})
	t.Cleanup(func() { Setup(Options{}) })

	Get("style").Info().Str("selector", "m-flex[hidden]").Msg("rule inserted")
	Get("style").Debug().Msg("filtered out")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "style", entry["component"])
	assert.Equal(t, "m-flex[hidden]", entry["selector"])
	assert.Equal(t, "info", entry["level"])
}

func TestGetReturnsIndependentLoggers(t *testing.T) {
	var buf bytes.Buffer
	Setup(Options{Verbosity: 1, Writer: &buf})
	t.Cleanup(func() { Setup(Options{}) })

	styleLog := Get("style")
	coreLog := Get("core")
	require.NotNil(t, styleLog)
	assert.NotSame(t, styleLog, coreLog)

	styleLog.Info().Msg("first")
	coreLog.Info().Msg("second")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	var first, second map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &first))
	require.NoError(t, json.Unmarshal(lines[1], &second))
	assert.Equal(t, "style", first["component"])
	assert.Equal(t, "core", second["component"])
}

func TestSetupHumanFormat(t *testing.T) {
	var buf bytes.Buffer
	Setup(Options{Writer: &buf, Human: true})
	t.Cleanup(func() { Setup(Options{}) })

	Get("core").Warn().Msg("decode failed")
	assert.Contains(t, buf.String(), "decode failed")
	assert.NotContains(t, buf.String(), `"level"`)
}
