package dashboard

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatHashrate(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{0, "0 H/s"},
		{math.NaN(), "0 H/s"},
		{12.5, "12.50 KH/s"},
		{999, "999.00 KH/s"},
		{1234.5, "1.23 MH/s"},
		{2_500_000, "2.50 GH/s"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatHashrate(tt.input))
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{0, "0 B"},
		{512.4, "512 B"},
		{1536, "1.50 KB"},
		{1 << 20, "1.00 MB"},
		{3 * (1 << 30), "3.00 GB"},
		{-1e20, "-100000000000000000000 B"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatBytes(tt.input))
		})
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "0", FormatNumber(0))
	assert.Equal(t, "999", FormatNumber(999))
	assert.Equal(t, "1,000", FormatNumber(999.5))
	assert.Equal(t, "1,234,567", FormatNumber(1234567.4))
	assert.Equal(t, "-1,234", FormatNumber(-1234))
	assert.Equal(t, "0", FormatNumber(math.Inf(1)))
	assert.Equal(t, "100,000,000,000,000,000,000", FormatNumber(1e20))
	assert.Equal(t, "-100,000,000,000,000,000,000", FormatNumber(-1e20))
	assert.Equal(t, "9,223,372,036,854,775,808", FormatNumber(1<<63))
}

func TestFormatPlain(t *testing.T) {
	assert.Equal(t, "45", FormatPlain(45))
	assert.Equal(t, "0.5", FormatPlain(0.5))
	assert.Equal(t, "0", FormatPlain(math.NaN()))
}

func TestFormatUptime(t *testing.T) {
	assert.Equal(t, "0 seconds", FormatUptime(0))
	assert.Equal(t, "59 seconds", FormatUptime(59))
	assert.Equal(t, "1 day 1 hour", FormatUptime(90061))

	for _, huge := range []float64{1e10, 1e300} {
		out := FormatUptime(huge)
		assert.True(t, strings.HasPrefix(out, "292 years"), out)
		assert.NotContains(t, out, "-")
	}
}

func TestFormatClock(t *testing.T) {
	ts := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "15:04:05", FormatClock(ts))
}
