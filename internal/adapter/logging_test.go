package adapter

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "aisle.log")

	logger, closer, err := SetupLogger(&LoggingConfig{File: path, Level: "info"})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("catalog request", "url", "https://dummyjson.com/products?limit=0")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `"msg":"catalog request"`)
	assert.Contains(t, out, `"app":"aisle"`)
	assert.NotContains(t, out, "hidden")
}

func TestSetupLogger_Stderr(t *testing.T) {
	logger, closer, err := SetupLogger(&LoggingConfig{File: LogToStderr})

	require.NoError(t, err)
	assert.NotNil(t, logger)
	assert.NoError(t, closer.Close())
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"Error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLogLevel(in), in)
	}
}
