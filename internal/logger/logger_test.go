package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func logAll() {
	Debug("debug message")
	Info("info message")
	Warn("warn message")
	Error("error message")
	Sync()
}

func TestLevelsFilterFileOutput(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{"error", []string{"ERROR"}, []string{"WARN", "INFO", "DEBUG"}},
		{"warn", []string{"ERROR", "WARN"}, []string{"INFO", "DEBUG"}},
		{"info", []string{"ERROR", "WARN", "INFO"}, []string{"DEBUG"}},
		{"debug", []string{"ERROR", "WARN", "INFO", "DEBUG"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			path := filepath.Join(dir, tt.level+".log")
			cfg := DefaultFileConfig(path)
			cfg.Compress = false
			require.NoError(t, InitWith(Options{Level: tt.level, File: cfg}))

			logAll()

			content, err := os.ReadFile(path)
			require.NoError(t, err)
			for _, s := range tt.expected {
				assert.Contains(t, string(content), s)
			}
			for _, s := range tt.excluded {
				assert.NotContains(t, string(content), s)
			}
		})
	}
}

func TestConsoleOutputNamesComponent(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, InitWith(Options{Level: "debug", Console: &buf}))

	Named("viewer").Debug("context lost")
	Sync()

	out := buf.String()
	assert.Contains(t, out, "viewer")
	assert.Contains(t, out, "context lost")
}

func TestSetLevelAppliesToRunningLogger(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, InitWith(Options{Level: "info", Console: &buf}))
	l := Named("app")

	l.Debug("hidden")
	require.NoError(t, SetLevel("debug"))
	assert.Equal(t, zapcore.DebugLevel, Level())
	l.Debug("shown")
	Sync()

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	assert.Error(t, SetLevel("verbose"))
	assert.Equal(t, zapcore.DebugLevel, Level(), "a bad level leaves the current one")
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	assert.Error(t, InitWith(Options{Level: "loud"}))
}

func TestNoCoresIsUsable(t *testing.T) {
	require.NoError(t, InitWith(Options{}))

	Info("dropped")
	Named("viewer").Debug("dropped too")
	Sugar.Debugf("dropped %d", 3)
	Sync()
}

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"DEBUG":   zapcore.DebugLevel,
		"Warn":    zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"info":    zapcore.InfoLevel,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("/tmp/skinview.log")
	assert.Equal(t, FileConfig{
		Path:       "/tmp/skinview.log",
		MaxSizeMB:  20,
		MaxBackups: 3,
		MaxAgeDays: 14,
		Compress:   true,
	}, cfg)
}
