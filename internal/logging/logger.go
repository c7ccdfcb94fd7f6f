// Package logging builds per-component logrus loggers. The TUI owns the
// terminal, so output goes to a file sink unless a writer is supplied.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/jask/tripboard/internal/config"
)

var (
	loggers   = make(map[string]*logrus.Entry)
	loggersMu sync.Mutex

	base   *logrus.Logger
	closer io.Closer
)

// Setup configures the shared logger from cfg. Calling it again replaces the
// previous sink; loggers handed out earlier keep working.
func Setup(cfg config.LogConfig) error {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	var out io.Writer = io.Discard
	var c io.Closer
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return err
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		out, c = f, f
	}
	configure(logger(), cfg, out)
	if closer != nil {
		_ = closer.Close()
	}
	closer = c
	return nil
}

// SetupWriter configures the shared logger to write to w instead of a file.
func SetupWriter(cfg config.LogConfig, w io.Writer) {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	configure(logger(), cfg, w)
}

// Close releases the file sink, if any.
func Close() error {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	if closer == nil {
		return nil
	}
	err := closer.Close()
	closer = nil
	logger().SetOutput(io.Discard)
	return err
}

// NewLogger returns the logger for a component, creating it on first use.
func NewLogger(component string) *logrus.Entry {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if entry, ok := loggers[component]; ok {
		return entry
	}
	entry := logger().WithField("component", component)
	loggers[component] = entry
	return entry
}

// Discard returns an entry that drops everything.
func Discard() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func logger() *logrus.Logger {
	if base == nil {
		base = logrus.New()
		base.SetOutput(io.Discard)
	}
	return base
}

func configure(l *logrus.Logger, cfg config.LogConfig, out io.Writer) {
	levelStr := cfg.Level
	if env := os.Getenv("TRIPBOARD_LOG_LEVEL"); env != "" {
		levelStr = env
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	switch cfg.Format {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	}
	l.SetOutput(out)
}
