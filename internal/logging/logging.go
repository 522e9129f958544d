// Package logging writes leveled "LEVEL: message" lines through the
// standard logger, optionally teeing them to a file.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
)

// Log level constants
type LogLevel string

const (
	LogLevelDEBUG LogLevel = "DEBUG"
	LogLevelINFO  LogLevel = "INFO"
	LogLevelWARN  LogLevel = "WARN"
	LogLevelERROR LogLevel = "ERROR"
)

var severity = map[LogLevel]int32{
	LogLevelDEBUG: 0,
	LogLevelINFO:  1,
	LogLevelWARN:  2,
	LogLevelERROR: 3,
}

var minSeverity atomic.Int32

func init() {
	minSeverity.Store(severity[LogLevelINFO])
}

// ParseLevel accepts debug, info, warn or error in any case.
func ParseLevel(s string) (LogLevel, error) {
	level := LogLevel(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := severity[level]; !ok {
		return "", fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", s)
	}
	return level, nil
}

// SetLevel drops messages below level.
func SetLevel(level LogLevel) {
	if s, ok := severity[level]; ok {
		minSeverity.Store(s)
	}
}

// SetOutput redirects the standard logger.
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

// EnableFile tees log output to the file at path, appending to it. The
// returned function closes the file.
func EnableFile(path string, console io.Writer) (func() error, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	log.SetOutput(io.MultiWriter(console, f))
	return f.Close, nil
}

// logWithLevel logs a message with severity level
func logWithLevel(level LogLevel, format string, args ...interface{}) {
	if severity[level] < minSeverity.Load() {
		return
	}
	msg := fmt.Sprintf(format, args...)
	log.Printf("%s: %s", level, msg)
}

// Debug logs a diagnostic message
func Debug(format string, args ...interface{}) {
	logWithLevel(LogLevelDEBUG, format, args...)
}

// Info logs an informational message
func Info(format string, args ...interface{}) {
	logWithLevel(LogLevelINFO, format, args...)
}

// Warn logs a warning message
func Warn(format string, args ...interface{}) {
	logWithLevel(LogLevelWARN, format, args...)
}

// Error logs an error message
func Error(format string, args ...interface{}) {
	logWithLevel(LogLevelERROR, format, args...)
}
