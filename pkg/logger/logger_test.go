package logger

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNew_JSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	log, closeFn, err := New(Options{Level: "warn", Format: "json", Output: path})
	require.NoError(t, err)

	log.Info("ignored")
	log.Warn("provider failed", "provider", "google")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &entry), "只应有一行warn日志")
	assert.Equal(t, "provider failed", entry["msg"])
	assert.Equal(t, "google", entry["provider"])
}

func TestNew_Console(t *testing.T) {
	log, closeFn, err := New(Options{Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, log)
	assert.NoError(t, closeFn())
}

func TestNew_BadPath(t *testing.T) {
	_, _, err := New(Options{Output: filepath.Join(t.TempDir(), "missing", "dir", "app.log")})
	assert.Error(t, err)
}
