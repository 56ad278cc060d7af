package logger

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		name  string
		level string
		debug bool
		warn  bool
	}{
		{"trace level", "trace", true, true},
		{"debug level", "debug", true, true},
		{"uppercase level", "DEBUG", true, true},
		{"warn level", "warn", false, true},
		{"error level", "error", false, false},
		{"invalid level defaults to warn", "loud", false, true},
		{"empty level defaults to warn", "", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.level, &bytes.Buffer{})
			require.NotNil(t, l)
			assert.Equal(t, tt.debug, l.Enabled("debug"))
			assert.Equal(t, tt.warn, l.Enabled("warn"))
		})
	}
}

func TestNew_NilOutput(t *testing.T) {
	l := New("info", nil)
	require.NotNil(t, l)
	assert.Equal(t, os.Stderr, l.log.Out)
}

func TestLogger_LevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	l := New("warn", buf)

	l.Trace().Msg("suggestion")
	l.Debug().Msg("querying goals")
	assert.Empty(t, buf.String())

	l.Error().Msg("query failed")
	assert.Contains(t, buf.String(), "query failed")
}

func TestEntry_Fields(t *testing.T) {
	buf := &bytes.Buffer{}
	l := New("debug", buf)

	l.Debug().
		Str("bin", "/repo/pants").
		Strs("argv", []string{"pants", "peek", "src:"}).
		Int("rc", 1).
		Bool("goals", true).
		Dur("duration", 1500*time.Microsecond).
		Err(errors.New("peek returned rc 1")).
		Msg("query done")

	output := buf.String()
	for _, want := range []string{"query done", "/repo/pants", "pants peek src:", "rc", "goals", "1.5", "peek returned rc 1"} {
		assert.Contains(t, output, want)
	}
}

func TestEntry_Err_Nil(t *testing.T) {
	buf := &bytes.Buffer{}
	l := New("error", buf)

	l.Error().Err(nil).Msg("no error")

	assert.Contains(t, buf.String(), "no error")
	assert.NotContains(t, buf.String(), "error=")
}

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "complete.log")

	l, closeFn, err := Open("debug", path)
	require.NoError(t, err)
	l.Debug().Str("word", "src:").Msg("completing")
	require.NoError(t, closeFn())

	// Appends on reopen
	l, closeFn, err = Open("debug", path)
	require.NoError(t, err)
	l.Error().Msg("second run")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "completing")
	assert.Contains(t, string(data), "word=")
	assert.Contains(t, string(data), "second run")
	assert.NotContains(t, string(data), "\x1b[")
}

func TestOpen_EmptyPathDiscards(t *testing.T) {
	l, closeFn, err := Open("debug", "")
	require.NoError(t, err)
	assert.False(t, l.Enabled("error"))
	l.Error().Msg("dropped")
	assert.NoError(t, closeFn())
}

func TestOpen_BadPath(t *testing.T) {
	_, _, err := Open("debug", filepath.Join(t.TempDir(), "missing", "complete.log"))
	assert.Error(t, err)
}

func TestLogger_Writer(t *testing.T) {
	buf := &bytes.Buffer{}
	assert.Equal(t, buf, New("warn", buf).Writer())
	assert.Equal(t, io.Discard, Discard().Writer())
}
