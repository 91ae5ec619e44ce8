package log

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	lvl, ok := ParseLevel("warn")
	assert.True(t, ok)
	assert.Equal(t, LevelWarn, lvl)

	lvl, ok = ParseLevel("")
	assert.True(t, ok)
	assert.Equal(t, LevelInfo, lvl)

	_, ok = ParseLevel("loud")
	assert.False(t, ok)
}

func TestWrapWritesTypedFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := Wrap(zap.New(core), LevelDebug)

	l.Named("interact").With(String("controller", "primary")).Warn("controller disconnected",
		Uint64("frame", 7),
		Float64("dt", 0.011),
		Error(errors.New("boom")),
	)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "controller disconnected", entry.Message)
	assert.Equal(t, "interact", entry.LoggerName)
	fields := entry.ContextMap()
	assert.Equal(t, "primary", fields["controller"])
	assert.Equal(t, uint64(7), fields["frame"])
	assert.Equal(t, "boom", fields["error"])
}

func TestLevelFiltering(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := Wrap(zap.New(core), LevelWarn)

	l.Log(LevelInfo, "dropped")
	l.Log(LevelError, "kept")
	assert.Equal(t, 1, logs.Len())
	assert.Equal(t, LevelWarn, l.GetLevel())

	l.SetLevel(LevelDebug)
	l.Log(LevelDebug, "now kept")
	assert.Equal(t, 2, logs.Len())
}

func TestNopDiscards(t *testing.T) {
	l := NewNop()
	assert.NotPanics(t, func() {
		l.Info("nothing", Int("n", 1))
		_ = l.Sync()
	})
}

func TestNewWritesToConfiguredOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vrscene.log")
	l, err := New(LevelInfo, Options{Encoding: "console", Outputs: []string{path}})
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("frame resolved", Uint64("frame", 3))
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "frame resolved")
	assert.NotContains(t, string(data), "hidden")
}

func TestNewRejectsUnknownEncoding(t *testing.T) {
	_, err := New(LevelInfo, Options{Encoding: "xml"})
	assert.Error(t, err)
}
