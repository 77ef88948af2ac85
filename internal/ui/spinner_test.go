package ui

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// syncBuffer is safe to write from the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestNewSpinner(t *testing.T) {
	s := NewSpinner("Fetching", &syncBuffer{})
	assert.Equal(t, "Fetching", s.Label())
	assert.Equal(t, SpinnerPending, s.State())
}

func TestSpinnerStartStop(t *testing.T) {
	out := &syncBuffer{}
	s := NewSpinner("Fetching", out)

	s.Start()
	s.Start()
	assert.Equal(t, SpinnerInProgress, s.State())
	time.Sleep(20 * time.Millisecond)

	s.Stop()
	s.Stop()
	assert.Equal(t, SpinnerInProgress, s.State(), "Stop keeps the state")
	assert.Contains(t, out.String(), "Fetching...")
}

func TestSpinnerFinish(t *testing.T) {
	tests := []struct {
		name   string
		finish func(*Spinner)
		state  SpinnerState
		symbol string
	}{
		{name: "success", finish: (*Spinner).Success, state: SpinnerSuccess, symbol: SymbolComplete},
		{name: "fail", finish: (*Spinner).Fail, state: SpinnerFailed, symbol: SymbolFail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &syncBuffer{}
			s := NewSpinner("Fetching", out)
			s.Start()
			tt.finish(s)

			assert.Equal(t, tt.state, s.State())
			assert.Contains(t, out.String(), tt.symbol+" Fetching")
			assert.Contains(t, out.String(), "\n")
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{50 * time.Millisecond, "0.05s"},
		{300 * time.Millisecond, "0.3s"},
		{1200 * time.Millisecond, "1.2s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, formatDuration(tt.d))
	}
}
