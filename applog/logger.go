// Package applog writes the application log to a rotating file. The terminal
// belongs to the UI, so nothing is printed.
package applog

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is a file logger.
type Logger struct {
	logger *log.Logger
	closer io.Closer
}

// New opens a rotating log at path, creating its directory.
func New(path string) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	file := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}
	return &Logger{
		logger: log.New(file, "", log.LstdFlags),
		closer: file,
	}, nil
}

// Discard returns a Logger that drops everything.
func Discard() *Logger {
	return &Logger{logger: log.New(io.Discard, "", 0)}
}

// Log writes message.
func (l *Logger) Log(message string) {
	if l == nil {
		return
	}
	l.logger.Print(message)
}

// Logf writes a formatted message.
func (l *Logger) Logf(format string, v ...any) {
	if l == nil {
		return
	}
	l.logger.Printf(format, v...)
}

// LogError writes err.
func (l *Logger) LogError(err error) {
	if l == nil || err == nil {
		return
	}
	l.logger.Printf("Error: %s", err)
}

// Close flushes and closes the log file.
func (l *Logger) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
