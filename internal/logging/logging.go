// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the logging context threaded through every
// component: a colored console handler and an append-mode error log,
// fanned out from a single *slog.Logger.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	slogmulti "github.com/samber/slog-multi"

	"github.com/pdiddy/pdfrename/pkg/types"
)

// LevelSuccess sits between INFO and WARN so silent mode hides it along
// with ordinary progress chatter.
const LevelSuccess = slog.Level(2)

var levelStyles = map[slog.Level]lipgloss.Style{
	slog.LevelDebug: lipgloss.NewStyle().Foreground(lipgloss.Color("#6C6C6C")),
	slog.LevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("#5FAFD7")),
	LevelSuccess:    lipgloss.NewStyle().Foreground(lipgloss.Color("#00D787")).Bold(true),
	slog.LevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAF00")).Bold(true),
	slog.LevelError: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF005F")).Bold(true),
}

// Setup creates the logger described by cfg: text to stderr at the console
// level, JSON lines appended to cfg.File at ERROR. Returns the logger and a
// cleanup function that closes the file.
func Setup(cfg types.LogConfig) (*slog.Logger, func() error, error) {
	path := cfg.File
	if path == "" {
		path = types.DefaultLogFile
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating log directory %s: %w", dir, err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening error log %s: %w", path, err)
	}

	logger := New(os.Stderr, file, cfg, colorEnabled(os.Stderr))
	return logger, file.Close, nil
}

// New builds the fan-out logger over arbitrary writers. Tests use it with
// buffers.
func New(console, errorLog io.Writer, cfg types.LogConfig, color bool) *slog.Logger {
	consoleHandler := slog.NewTextHandler(console, &slog.HandlerOptions{
		Level:       ConsoleLevel(cfg),
		ReplaceAttr: replaceLevel(color),
	})
	fileHandler := slog.NewJSONHandler(errorLog, &slog.HandlerOptions{
		Level:       slog.LevelError,
		ReplaceAttr: replaceLevel(false),
	})
	return slog.New(slogmulti.Fanout(consoleHandler, fileHandler))
}

// ConsoleLevel resolves the effective console level. Silent wins over any
// configured level below WARN.
func ConsoleLevel(cfg types.LogConfig) slog.Level {
	if cfg.Silent && cfg.Level < slog.LevelWarn {
		return slog.LevelWarn
	}
	return cfg.Level
}

// Success logs at LevelSuccess.
func Success(ctx context.Context, logger *slog.Logger, msg string, args ...any) {
	logger.Log(ctx, LevelSuccess, msg, args...)
}

// ParseLevel maps a level name to a slog.Level, defaulting to INFO.
func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func levelName(l slog.Level) string {
	if l == LevelSuccess {
		return "SUCCESS"
	}
	return l.String()
}

func replaceLevel(color bool) func([]string, slog.Attr) slog.Attr {
	return func(groups []string, a slog.Attr) slog.Attr {
		if len(groups) > 0 || a.Key != slog.LevelKey {
			return a
		}
		level, ok := a.Value.Any().(slog.Level)
		if !ok {
			return a
		}
		name := levelName(level)
		if style, found := levelStyles[level]; found && color {
			name = style.Render(name)
		}
		return slog.String(slog.LevelKey, name)
	}
}

// colorEnabled follows https://no-color.org and skips dumb terminals and
// redirected output.
func colorEnabled(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" || strings.EqualFold(os.Getenv("TERM"), "dumb") {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
