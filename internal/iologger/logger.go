// Package iologger sets up the global slog logger of taxlookup.
package iologger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gnames/taxlookup/pkg/config"
)

// LogFile is the name of the log file inside the log directory.
const LogFile = "taxlookup.log"

// Init replaces the default slog logger according to cfg. With the
// "file" destination the log goes to LogFile in logDir, truncated unless
// append is true. Long builds append, so a log of a build survives the
// lookups that follow it.
func Init(logDir string, cfg config.LogConfig, append bool) error {
	w, err := writer(logDir, cfg.Destination, append)
	if err != nil {
		return err
	}

	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	slog.SetDefault(slog.New(handler(w, cfg.Format, opts)))
	return nil
}

// LogPath returns the location of the log file.
func LogPath(logDir string) string {
	return filepath.Join(logDir, LogFile)
}

func writer(logDir, dest string, append bool) (io.Writer, error) {
	switch strings.ToLower(dest) {
	case "stdout":
		return os.Stdout, nil
	case "stderr":
		return os.Stderr, nil
	case "file":
		path := LogPath(logDir)
		flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
		if append {
			flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
		}
		f, err := os.OpenFile(path, flags, 0644)
		if err != nil {
			return nil, CreateLogFileError(path, err)
		}
		return f, nil
	default:
		return os.Stderr, nil
	}
}

func handler(w io.Writer, format string, opts *slog.HandlerOptions) slog.Handler {
	switch format {
	case "text", "tint":
		// tint output is rendered as plain text
		return slog.NewTextHandler(w, opts)
	default:
		return slog.NewJSONHandler(w, opts)
	}
}

func parseLevel(level string) slog.Level {
	var res slog.Level
	if err := res.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return res
}
