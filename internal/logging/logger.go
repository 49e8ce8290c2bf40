// Package logging provides structured logging for the reminder application.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// timeFormat is the timestamp layout used in the log file.
const timeFormat = "2006-01-02 15:04:05"

// Logger wraps zerolog and owns the append-only log file.
type Logger struct {
	zlog zerolog.Logger
	file *os.File
}

// NewLogger creates a logger writing to stderr and, if logPath is non-empty,
// appending to the log file as well. A log file that cannot be opened is not
// fatal: the logger falls back to console-only output and reports the error.
func NewLogger(logPath string) (*Logger, error) {
	console := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: timeFormat,
	}

	var (
		file    *os.File
		writer  io.Writer = console
		openErr error
	)
	if logPath != "" {
		file, openErr = os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if openErr != nil {
			openErr = fmt.Errorf("failed to open log file: %w", openErr)
		} else {
			writer = zerolog.MultiLevelWriter(console, zerolog.ConsoleWriter{
				Out:        file,
				TimeFormat: timeFormat,
				NoColor:    true,
			})
		}
	}

	logger := zerolog.New(writer).
		With().
		Timestamp().
		Logger()

	return &Logger{zlog: logger, file: file}, openErr
}

// NewConsoleLogger creates a console-only logger, used by CLI subcommands
// that do not touch the reminder log file.
func NewConsoleLogger() *Logger {
	l, _ := NewLogger("")
	return l
}

// Close flushes and closes the log file, if one is open.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Info returns an info level event.
func (l *Logger) Info() *zerolog.Event {
	return l.zlog.Info()
}

// Error returns an error level event.
func (l *Logger) Error() *zerolog.Event {
	return l.zlog.Error()
}

// Debug returns a debug level event.
func (l *Logger) Debug() *zerolog.Event {
	return l.zlog.Debug()
}

// Warn returns a warn level event.
func (l *Logger) Warn() *zerolog.Event {
	return l.zlog.Warn()
}

// With creates a child logger context with additional fields.
func (l *Logger) With() zerolog.Context {
	return l.zlog.With()
}

// SetGlobalLevel sets the global log level.
func SetGlobalLevel(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
}

func init() {
	// Default to info; --verbose lowers this to debug.
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: timeFormat,
	})
}
