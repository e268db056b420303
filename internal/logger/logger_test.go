package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// TestParseLevel checks the mapping of level names, including the fallback.
func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("verbose"))
}

// TestNewFileOutput expects JSON lines in the configured file.
func TestNewFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crm.log")
	log, err := New(Config{Level: "info", Format: "json", Output: path})
	require.NoError(t, err)
	log.Debug("hidden")
	log.Info("customer created")
	require.NoError(t, log.Sync())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"msg":"customer created"`)
	assert.NotContains(t, string(content), "hidden")
}

// TestNewInvalidOutput expects an error for a file that cannot be created.
func TestNewInvalidOutput(t *testing.T) {
	_, err := New(Config{Output: filepath.Join(t.TempDir(), "missing", "crm.log")})
	assert.Error(t, err)
}
