package cli

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rileyhilliard/xmdash/internal/config"
	"github.com/rileyhilliard/xmdash/internal/dashboard"
	"github.com/rileyhilliard/xmdash/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPrompts replaces the interactive prompts for one test.
func stubPrompts(t *testing.T, overwrite bool, settings func(*config.Config) error) {
	t.Helper()
	origConfirm, origPrompt := confirmOverwrite, promptSettings
	t.Cleanup(func() {
		confirmOverwrite, promptSettings = origConfirm, origPrompt
	})
	confirmOverwrite = func(string) (bool, error) { return overwrite, nil }
	promptSettings = settings
}

func initConfig(url string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.URL = url
	return cfg
}

func TestRunInit_NonInteractive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xmdash", "config.yaml")
	cfg := initConfig("  " + testURL + " ")
	cfg.Interval = 30 * time.Second

	var buf bytes.Buffer
	require.NoError(t, runInit(initOptions{Path: path, Config: cfg, Out: &buf}))
	assert.Contains(t, buf.String(), "✓ Wrote "+path)

	loaded, err := config.Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, testURL, loaded.URL)
	assert.Equal(t, 30*time.Second, loaded.Interval)
}

func TestRunInit_RequiresURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	err := runInit(initOptions{Path: path, Config: initConfig(""), Out: &bytes.Buffer{}})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfigMissing))
	assert.NoFileExists(t, path)
}

func TestRunInit_RejectsInvalidURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	err := runInit(initOptions{Path: path, Config: initConfig("ftp://proxy/1/summary"), Out: &bytes.Buffer{}})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfigInvalid))
}

func TestRunInit_ExistingFile(t *testing.T) {
	setup := func(t *testing.T) string {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("url: http://old:8080/1/summary\n"), 0o644))
		return path
	}

	t.Run("non-interactive refuses", func(t *testing.T) {
		path := setup(t)
		err := runInit(initOptions{Path: path, Config: initConfig(testURL), Out: &bytes.Buffer{}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("force overwrites", func(t *testing.T) {
		path := setup(t)
		require.NoError(t, runInit(initOptions{Path: path, Config: initConfig(testURL), Force: true, Out: &bytes.Buffer{}}))
		loaded, err := config.Load(path, nil)
		require.NoError(t, err)
		assert.Equal(t, testURL, loaded.URL)
	})

	t.Run("declined overwrite", func(t *testing.T) {
		stubPrompts(t, false, func(*config.Config) error {
			t.Fatal("settings prompt should not run")
			return nil
		})
		path := setup(t)

		var buf bytes.Buffer
		require.NoError(t, runInit(initOptions{Path: path, Config: initConfig(testURL), Interactive: true, Out: &buf}))
		assert.Equal(t, "Cancelled.\n", buf.String())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "http://old:8080")
	})
}

func TestRunInit_Interactive(t *testing.T) {
	stubPrompts(t, true, func(cfg *config.Config) error {
		cfg.URL = "https://proxy.example.com/1/summary"
		cfg.Interval = time.Minute
		return nil
	})
	path := filepath.Join(t.TempDir(), "config.yaml")

	require.NoError(t, runInit(initOptions{Path: path, Config: initConfig(""), Interactive: true, Out: &bytes.Buffer{}}))

	loaded, err := config.Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://proxy.example.com/1/summary", loaded.URL)
	assert.Equal(t, time.Minute, loaded.Interval)
}

func TestRunInit_PromptFailure(t *testing.T) {
	stubPrompts(t, true, func(*config.Config) error { return stderrors.New("user aborted") })

	err := runInit(initOptions{Path: filepath.Join(t.TempDir(), "config.yaml"), Config: initConfig(""), Interactive: true, Out: &bytes.Buffer{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to get user input")
}

func TestValidateEndpointInput(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: testURL},
		{input: "   ", want: dashboard.MsgEmptyURL},
		{input: "javascript:alert(1)", want: dashboard.MsgInvalidURL},
		{input: "127.0.0.1:8080", want: dashboard.MsgInvalidURL},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := validateEndpointInput(tt.input)
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}
