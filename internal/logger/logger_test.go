package logger

import (
	"bytes"
	"log"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLog redirects the log package into a buffer for one test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	flags := log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetFlags(flags)
	})
	return &buf
}

func TestEnvLogger_Levels(t *testing.T) {
	tests := []struct {
		name     string
		debug    string
		write    func(Logger)
		expected string
	}{
		{
			name:     "fetch failure traced when debugging",
			debug:    "1",
			write:    func(l Logger) { l.Debug("fetch error: %s", "connection refused") },
			expected: "[fetch] fetch error: connection refused\n",
		},
		{
			name:     "debug dropped without XMDASH_DEBUG",
			write:    func(l Logger) { l.Debug("history persisted %d entries", 12) },
			expected: "",
		},
		{
			name:     "info always written",
			write:    func(l Logger) { l.Info("polling %s every %ds", "http://127.0.0.1:8080/1/summary", 10) },
			expected: "[fetch] polling http://127.0.0.1:8080/1/summary every 10s\n",
		},
		{
			name:     "warn tagged",
			write:    func(l Logger) { l.Warn("stored refresh rate %q ignored", "fast") },
			expected: "[fetch] WARN: stored refresh rate \"fast\" ignored\n",
		},
		{
			name:     "error tagged",
			write:    func(l Logger) { l.Error("store closed: %v", os.ErrClosed) },
			expected: "[fetch] ERROR: store closed: file already closed\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLog(t)
			t.Setenv(DebugEnv, tt.debug)

			tt.write(NewEnvLogger("[fetch]"))
			assert.Equal(t, tt.expected, buf.String())
		})
	}
}

func TestEnvLogger_DebugCheckedPerCall(t *testing.T) {
	buf := captureLog(t)
	l := NewEnvLogger("[xmdash]")

	t.Setenv(DebugEnv, "")
	l.Debug("hidden")
	t.Setenv(DebugEnv, "true")
	l.Debug("shown")

	assert.Equal(t, "[xmdash] shown\n", buf.String())
}

func TestDebugEnabled(t *testing.T) {
	t.Setenv(DebugEnv, "yes")
	assert.True(t, DebugEnabled())

	t.Setenv(DebugEnv, "")
	assert.False(t, DebugEnabled())
}

func TestNoop_WritesNothing(t *testing.T) {
	buf := captureLog(t)
	t.Setenv(DebugEnv, "1")

	l := Noop()
	l.Debug("a")
	l.Info("b")
	l.Warn("c")
	l.Error("d")

	assert.Empty(t, buf.String())
}

func TestBufferLogger_Records(t *testing.T) {
	l := NewBufferLogger()
	assert.False(t, l.HasLevel(LevelDebug))

	l.Debug("endpoint read failed: %v", os.ErrNotExist)
	l.Error("giving up after %d polls", 3)

	assert.Equal(t, []Entry{
		{Level: LevelDebug, Text: "endpoint read failed: file does not exist"},
		{Level: LevelError, Text: "giving up after 3 polls"},
	}, l.Entries())
	assert.True(t, l.HasLevel(LevelDebug))
	assert.True(t, l.HasLevel(LevelError))
	assert.False(t, l.HasLevel(LevelWarn))

	l.Reset()
	assert.Empty(t, l.Entries())
	assert.False(t, l.HasLevel(LevelError))
}

func TestBufferLogger_EntriesIsCopy(t *testing.T) {
	l := NewBufferLogger()
	l.Info("one")

	got := l.Entries()
	got[0].Text = "changed"
	assert.Equal(t, "one", l.Entries()[0].Text)
}

func TestBufferLogger_ConcurrentWriters(t *testing.T) {
	l := NewBufferLogger()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				l.Debug("poll %d", j)
			}
		}()
	}
	wg.Wait()

	require.Len(t, l.Entries(), 400)
}

func TestLoggersSatisfyInterface(t *testing.T) {
	for _, l := range []Logger{NewEnvLogger(""), Noop(), NewBufferLogger()} {
		assert.NotNil(t, l)
	}
}
