package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gookit/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flush(t *testing.T) {
	t.Helper()
	if lg, ok := Log.(*slog.Logger); ok {
		require.NoError(t, lg.Flush())
	}
}

func TestInfoWithFields_WritesJSONWithServiceName(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })
	t.Setenv("SERVICE_NAME", "")

	var buf bytes.Buffer
	Init("debug", &buf)
	SetServiceName("math-helper-test")

	InfoWithFields("history refreshed", Fields{"count": 3})
	flush(t)

	line := strings.TrimSpace(buf.String())
	require.NotEmpty(t, line)

	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &out))
	assert.Equal(t, "history refreshed", out["message"])
	assert.Equal(t, "math-helper-test", out["service_name"])
	assert.EqualValues(t, 3, out["count"])
}

func TestInit_LevelFiltersDebug(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	var buf bytes.Buffer
	Init("error", &buf)

	DebugWithFields("hidden", nil)
	InfoWithFields("hidden too", nil)
	ErrorWithFields("visible", Fields{"error": "boom"})
	flush(t)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "visible")
}

func TestInitFile_CreatesDirectory(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	path := filepath.Join(t.TempDir(), "nested", "client.log")
	closeFn, err := InitFile("info", path)
	require.NoError(t, err)

	WarnWithFields("written to file", nil)
	flush(t)
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}
