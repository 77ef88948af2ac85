package cli

import (
	"bytes"
	"runtime"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func setTestVersion(t *testing.T, v, c, d string) {
	t.Helper()
	origVersion, origCommit, origDate := version, commit, date
	t.Cleanup(func() { SetVersionInfo(origVersion, origCommit, origDate) })
	SetVersionInfo(v, c, d)
}

func TestVersionOutput(t *testing.T) {
	setTestVersion(t, "1.2.3", "abc1234", "2026-01-08T12:00:00Z")

	cmd := &cobra.Command{}
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	printVersion(cmd, false)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		"xmdash v1.2.3",
		"commit: abc1234",
		"built: 2026-01-08T12:00:00Z",
		"go: " + runtime.Version(),
		"os/arch: " + runtime.GOOS + "/" + runtime.GOARCH,
	}, lines)
}

func TestVersionShort(t *testing.T) {
	setTestVersion(t, "1.2.3", "abc1234", "2026-01-08")

	cmd := &cobra.Command{}
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	printVersion(cmd, true)

	assert.Equal(t, "1.2.3\n", buf.String())
}

func TestFormatVersion(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1.0.0", "v1.0.0"},
		{"v1.0.0", "v1.0.0"},
		{"dev", "dev"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatVersion(tt.input))
		})
	}
}

func TestGetVersion(t *testing.T) {
	setTestVersion(t, "2.0.0", "none", "unknown")
	assert.Equal(t, "2.0.0", GetVersion())
}
