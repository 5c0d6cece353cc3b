package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")

	log, err := New(Config{Level: "info", Encoding: "json", OutputPaths: []string{path}})
	require.NoError(t, err)
	require.True(t, log.Core().Enabled(zapcore.InfoLevel))
	require.False(t, log.Core().Enabled(zapcore.DebugLevel))

	log.Info("encoded block")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"message":"encoded block"`)
	require.Contains(t, string(data), `"level":"info"`)
}

func TestNew_DefaultConfig(t *testing.T) {
	log, err := New(DefaultConfig())
	require.NoError(t, err)
	require.True(t, log.Core().Enabled(zapcore.WarnLevel))
	require.False(t, log.Core().Enabled(zapcore.InfoLevel))
}

func TestNew_Invalid(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	require.ErrorContains(t, err, "invalid log level")

	_, err = New(Config{Level: "info", Encoding: "xml"})
	require.ErrorContains(t, err, "invalid log encoding")
}
