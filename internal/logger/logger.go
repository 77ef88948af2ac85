// Package logger is the logging seam shared by the dashboard core, the
// storage backends and the CLI.
//
// Messages go through the standard log package. While the terminal UI owns
// the screen, the CLI points that package at a debug file or discards it,
// so nothing here writes to the terminal directly.
package logger

import (
	"fmt"
	"log"
	"os"
	"sync"
)

// DebugEnv is the environment variable that enables debug output.
const DebugEnv = "XMDASH_DEBUG"

// Level names used by BufferLogger entries.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Logger takes printf-style messages at four levels.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// DebugEnabled reports whether XMDASH_DEBUG is set to anything.
func DebugEnabled() bool {
	return os.Getenv(DebugEnv) != ""
}

// stdLogger writes through the log package. The debug check happens per
// call, so a test or the CLI can flip XMDASH_DEBUG after construction.
type stdLogger struct {
	prefix string
}

// NewEnvLogger returns a Logger whose lines start with prefix, for example
// "[xmdash]" or "[status]". Debug lines are dropped unless XMDASH_DEBUG is set.
func NewEnvLogger(prefix string) Logger {
	return &stdLogger{prefix: prefix}
}

func (l *stdLogger) emit(tag, format string, args []interface{}) {
	log.Print(l.prefix + " " + tag + fmt.Sprintf(format, args...))
}

func (l *stdLogger) Debug(format string, args ...interface{}) {
	if DebugEnabled() {
		l.emit("", format, args)
	}
}

func (l *stdLogger) Info(format string, args ...interface{}) {
	l.emit("", format, args)
}

func (l *stdLogger) Warn(format string, args ...interface{}) {
	l.emit("WARN: ", format, args)
}

func (l *stdLogger) Error(format string, args ...interface{}) {
	l.emit("ERROR: ", format, args)
}

type discard struct{}

// Noop returns a Logger that drops everything. Components given a nil
// Logger fall back to it.
func Noop() Logger {
	return discard{}
}

func (discard) Debug(string, ...interface{}) {}
func (discard) Info(string, ...interface{})  {}
func (discard) Warn(string, ...interface{})  {}
func (discard) Error(string, ...interface{}) {}

// Entry is one message recorded by BufferLogger.
type Entry struct {
	Level string
	Text  string
}

// BufferLogger records messages in memory so tests can assert on what a
// component logged. Poll results are applied on the event loop but fetches
// log from their own goroutines, so access is locked.
type BufferLogger struct {
	mu      sync.Mutex
	entries []Entry
}

// NewBufferLogger returns an empty BufferLogger.
func NewBufferLogger() *BufferLogger {
	return &BufferLogger{}
}

func (l *BufferLogger) record(level, format string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, Entry{Level: level, Text: fmt.Sprintf(format, args...)})
}

func (l *BufferLogger) Debug(format string, args ...interface{}) {
	l.record(LevelDebug, format, args)
}

func (l *BufferLogger) Info(format string, args ...interface{}) {
	l.record(LevelInfo, format, args)
}

func (l *BufferLogger) Warn(format string, args ...interface{}) {
	l.record(LevelWarn, format, args)
}

func (l *BufferLogger) Error(format string, args ...interface{}) {
	l.record(LevelError, format, args)
}

// Entries returns a copy of everything recorded so far.
func (l *BufferLogger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Entry(nil), l.entries...)
}

// HasLevel reports whether anything was recorded at level.
func (l *BufferLogger) HasLevel(level string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if e.Level == level {
			return true
		}
	}
	return false
}

// Reset forgets every recorded entry.
func (l *BufferLogger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}
