package iologger

import (
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/taxlookup/pkg/config"
	"github.com/gnames/taxlookup/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestInitFile(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	dir := t.TempDir()
	cfg := config.LogConfig{Format: "json", Level: "warn", Destination: "file"}

	require.NoError(t, Init(dir, cfg, false))
	slog.Info("hidden")
	slog.Warn("first")

	require.NoError(t, Init(dir, cfg, true))
	slog.Warn("second")

	bs, err := os.ReadFile(LogPath(dir))
	require.NoError(t, err)
	log := string(bs)
	assert.NotContains(t, log, "hidden")
	assert.Contains(t, log, `"msg":"first"`)
	assert.Contains(t, log, `"msg":"second"`)

	require.NoError(t, Init(dir, cfg, false))
	slog.Warn("third")

	bs, err = os.ReadFile(LogPath(dir))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(bs), "\n"), "log is truncated")
}

func TestInitBadDir(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	cfg := config.LogConfig{Destination: "file"}
	err := Init("/nonexistent/taxlookup/logs", cfg, false)
	assert.Equal(t, errcode.CreateLogFileError, errcode.Code(err))

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")
	assert.Equal(t, []any{LogPath("/nonexistent/taxlookup/logs")}, gnErr.Vars)
	assert.Contains(t, gnErr.Msg, "log.destination")
	assert.Contains(t, gnErr.Err.Error(), "cannot open log file")
}
