// Package logging builds the slog loggers used across the commands.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// New returns a text logger writing to w. An unknown level falls back to info.
func New(w io.Writer, level string) *slog.Logger {
	lvl, _ := ParseLevel(level)
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// ToFile sends logs to path while a bubbletea program owns the terminal. The
// returned closer must be called when the program exits.
func ToFile(path, level string) (*slog.Logger, io.Closer, error) {
	f, err := tea.LogToFile(path, "carnot")
	if err != nil {
		return nil, nil, err
	}
	return New(f, level), f, nil
}

func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
