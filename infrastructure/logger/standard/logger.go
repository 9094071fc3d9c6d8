// ABOUTME: Structured logger backed by logrus with optional rotated file output
// ABOUTME: Adapts the map-of-fields Logger interface onto logrus entries

package standard

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"oddly-enough-api/pkg/config"
)

// StandardLogger implements the Logger interface using logrus
type StandardLogger struct {
	entry *logrus.Entry
	file  *lumberjack.Logger
}

// NewStandardLogger creates a JSON info-level logger writing to stderr
func NewStandardLogger() *StandardLogger {
	l, _ := New(config.LogConfig{Level: "info", Format: "json"})
	return l
}

// New builds a logger from configuration. An unknown level falls back to
// info and is reported in the returned error so callers can warn about it.
func New(cfg config.LogConfig) (*StandardLogger, error) {
	base := logrus.New()

	var out io.Writer = os.Stderr
	var file *lumberjack.Logger
	if cfg.File != "" {
		file = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    500, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		out = io.MultiWriter(os.Stderr, file)
	}

	return newWithWriter(base, out, file, cfg)
}

func newWithWriter(base *logrus.Logger, out io.Writer, file *lumberjack.Logger, cfg config.LogConfig) (*StandardLogger, error) {
	base.SetOutput(out)

	if strings.EqualFold(cfg.Format, "text") {
		base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		base.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	base.SetLevel(level)

	return &StandardLogger{entry: logrus.NewEntry(base), file: file}, err
}

// With returns a child logger that always carries fields
func (l *StandardLogger) With(fields map[string]interface{}) *StandardLogger {
	return &StandardLogger{entry: l.entry.WithFields(fields), file: l.file}
}

// Debug logs a debug message
func (l *StandardLogger) Debug(msg string, fields map[string]interface{}) {
	l.withFields(fields).Debug(msg)
}

// Info logs an info message
func (l *StandardLogger) Info(msg string, fields map[string]interface{}) {
	l.withFields(fields).Info(msg)
}

// Warn logs a warning message
func (l *StandardLogger) Warn(msg string, fields map[string]interface{}) {
	l.withFields(fields).Warn(msg)
}

// Error logs an error message
func (l *StandardLogger) Error(msg string, fields map[string]interface{}) {
	l.withFields(fields).Error(msg)
}

func (l *StandardLogger) withFields(fields map[string]interface{}) *logrus.Entry {
	if len(fields) == 0 {
		return l.entry
	}
	return l.entry.WithFields(logrus.Fields(fields))
}

// Close flushes and closes the rotated log file, if any
func (l *StandardLogger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
