package logger

import (
	"os"
	"path/filepath"
	"testing"

	"ai-quizzer/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	require.NoError(t, Initialize(config.LoggerConfig{Env: "production", Level: "debug", File: path}))

	Get().Info("hello")
	_ = Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}

func TestInitialize_RejectsUnknownLevel(t *testing.T) {
	assert.Error(t, Initialize(config.LoggerConfig{Level: "chatty"}))
}
