// Package logger is the service's levelled logger. Errors go to stderr,
// everything else to stdout, each line tagged with its level and caller.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
)

type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	default:
		return "ERROR"
	}
}

const flags = log.Ldate | log.Ltime | log.Lshortfile

var (
	minLevel atomic.Int32
	stdout   = log.New(os.Stdout, "", flags)
	stderr   = log.New(os.Stderr, "", flags)
)

func init() {
	minLevel.Store(int32(LevelInfo))
}

// ParseLevel accepts debug, info, warn or error in any case.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

func SetLevel(l Level) {
	minLevel.Store(int32(l))
}

// SetOutput sends every level to w.
func SetOutput(w io.Writer) {
	stdout.SetOutput(w)
	stderr.SetOutput(w)
}

func Enabled(l Level) bool {
	return int32(l) >= minLevel.Load()
}

func logf(l Level, format string, v ...interface{}) {
	if !Enabled(l) {
		return
	}
	dst := stdout
	if l == LevelError {
		dst = stderr
	}
	// Skip logf and the exported wrapper so Lshortfile names the caller.
	dst.Output(3, l.String()+": "+fmt.Sprintf(format, v...))
}

func Debug(format string, v ...interface{}) { logf(LevelDebug, format, v...) }

func Info(format string, v ...interface{}) { logf(LevelInfo, format, v...) }

func Warn(format string, v ...interface{}) { logf(LevelWarn, format, v...) }

func Error(format string, v ...interface{}) { logf(LevelError, format, v...) }

// LogEventError records a domain event that could not be delivered.
func LogEventError(eventType, subjectID string, err error) {
	logf(LevelWarn, "Event publish failed: type=%s, subject=%s, error=%v", eventType, subjectID, err)
}
