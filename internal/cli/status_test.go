package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rileyhilliard/xmdash/internal/dashboard"
	dtesting "github.com/rileyhilliard/xmdash/internal/dashboard/testing"
	"github.com/rileyhilliard/xmdash/internal/errors"
	"github.com/rileyhilliard/xmdash/internal/jsonx"
	"github.com/rileyhilliard/xmdash/internal/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testURL = "http://127.0.0.1:8080/1/summary"

var testNow = time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)

func statusRun(t *testing.T, format string, results ...dtesting.FetchResult) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	err := runStatus(context.Background(), statusOptions{
		URL:     testURL,
		Format:  format,
		Version: "v1.0.0",
		Fetcher: dtesting.NewFakeFetcher(results...),
		Out:     &buf,
		Clock:   func() time.Time { return testNow },
	})
	return buf.String(), err
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "text", want: FormatText},
		{input: "JSON", want: FormatJSON},
		{input: " html ", want: FormatHTML},
		{input: "yaml", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrConfig))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassTone(t *testing.T) {
	tests := []struct {
		class    string
		expected ui.Tone
	}{
		{dashboard.ClassHighlightGreen, ui.ToneGood},
		{dashboard.ClassHighlightRed, ui.ToneBad},
		{dashboard.ClassHighlightAmber, ui.ToneWarn},
		{dashboard.ClassHighlightBlue, ui.ToneInfo},
		{"", ui.ToneNormal},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, classTone(tt.class), "class %q", tt.class)
	}
}

func TestRunStatus_Text(t *testing.T) {
	out, err := statusRun(t, FormatText, dtesting.FetchResult{Data: samplePayload()})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "xmdash v1.0.0\n"+testURL+"\n"))
	for _, pattern := range []string{
		`Status\s+Online`,
		`Worker\s+proxy-1`,
		`Uptime\s+1 hour`,
		`Current Hashrate\s+1\.23 MH/s`,
		`Active Miners\s+8`,
		`24 Hours\s+800\.00 KH/s`,
		`Acceptance Rate\s+80\.00%`,
		`Total Hashes\s+123,456,789`,
		`Algorithm\s+rx/0`,
		`Connections\s+1,500`,
		`RAM\s+3\.00 GB/4\.00 GB \(75\.0%\)`,
	} {
		assert.Regexp(t, pattern, out)
	}
	for _, title := range []string{"Proxy", "Overview", "Hashrate Performance", "Mining Results", "Pools", "Resources"} {
		assert.Contains(t, out, "\n"+title+"\n")
	}
	assert.True(t, strings.HasSuffix(out, "Updated 15:04:05\n"))
}

func TestRunStatus_JSON(t *testing.T) {
	out, err := statusRun(t, FormatJSON, dtesting.FetchResult{Data: samplePayload()})
	require.NoError(t, err)

	var env struct {
		Success bool         `json:"success"`
		Data    StatusReport `json:"data"`
	}
	require.NoError(t, jsonx.Unmarshal([]byte(out), &env))

	assert.True(t, env.Success)
	report := env.Data
	assert.Equal(t, testURL, report.Endpoint)
	assert.True(t, testNow.Equal(report.FetchedAt))
	assert.Equal(t, "Online", report.Status)
	assert.Equal(t, "proxy-1", report.WorkerID)
	require.Len(t, report.Hashrate, 6)
	assert.Equal(t, HashrateWindow{Window: "10 Seconds", KHs: 1234.5}, report.Hashrate[0])
	assert.Equal(t, MinersReport{Now: 8, Max: 10, Percent: 80}, report.Miners)
	assert.Equal(t, 80.0, report.Results.AcceptanceRate)
	assert.Equal(t, 75.0, report.Memory.UsedPercent)
	assert.Equal(t, 1500.0, report.Connections)
}

func TestRunStatus_HTML(t *testing.T) {
	payload := samplePayload()
	payload["worker_id"] = `<script>alert("x")</script>`

	out, err := statusRun(t, FormatHTML, dtesting.FetchResult{Data: payload})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, `<span class="status-online">Online</span>`)
	assert.Contains(t, out, "&lt;script&gt;alert(&#34;x&#34;)&lt;/script&gt;")
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "<tr><th>Current Hashrate</th><td>1.23 MH/s</td></tr>")
	assert.Contains(t, out, `<time datetime="2026-01-02T15:04:05Z">15:04:05</time>`)
}

func TestRunStatus_Errors(t *testing.T) {
	t.Run("no endpoint", func(t *testing.T) {
		err := runStatus(context.Background(), statusOptions{Format: FormatText, Out: &bytes.Buffer{}})
		assert.True(t, errors.IsCode(err, errors.ErrConfigMissing))
	})

	t.Run("invalid endpoint", func(t *testing.T) {
		fetcher := dtesting.NewFakeFetcher()
		err := runStatus(context.Background(), statusOptions{URL: "javascript:alert(1)", Fetcher: fetcher, Out: &bytes.Buffer{}})
		assert.True(t, errors.IsCode(err, errors.ErrConfigInvalid))
		assert.Zero(t, fetcher.CallCount())
	})

	t.Run("fetch failure", func(t *testing.T) {
		out, err := statusRun(t, FormatText, dtesting.FetchResult{Err: errors.NewHTTP(http.StatusServiceUnavailable)})
		assert.Equal(t, http.StatusServiceUnavailable, errors.StatusCode(err))
		assert.Empty(t, out)
	})

	t.Run("empty payload", func(t *testing.T) {
		_, err := statusRun(t, FormatText, dtesting.FetchResult{})
		assert.True(t, errors.IsCode(err, errors.ErrFormat))
	})
}

func TestRunStatus_Progress(t *testing.T) {
	var progress, out bytes.Buffer
	err := runStatus(context.Background(), statusOptions{
		URL:      testURL,
		Format:   FormatText,
		Fetcher:  dtesting.NewFakeFetcher(dtesting.FetchResult{Data: samplePayload()}),
		Out:      &out,
		Progress: &progress,
		Clock:    func() time.Time { return testNow },
	})
	require.NoError(t, err)
	assert.Contains(t, progress.String(), "● Fetching "+testURL)
	assert.NotContains(t, out.String(), "Fetching", "spinner stays off stdout")
}

func TestStatusCommand_EndToEnd(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	healthy := true
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !healthy {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		data, _ := jsonx.Marshal(samplePayload())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(data)
	}))
	t.Cleanup(srv.Close)

	run := func(args ...string) (string, error) {
		var buf bytes.Buffer
		rootCmd.SetOut(&buf)
		rootCmd.SetArgs(args)
		err := rootCmd.Execute()
		return buf.String(), err
	}
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		statusFormat = FormatText
	})

	out, err := run("status", "--format", "json", "--url", srv.URL+"/1/summary")
	require.NoError(t, err)
	assert.Contains(t, out, `"success": true`)
	assert.Contains(t, out, `"worker_id": "proxy-1"`)

	healthy = false
	out, err = run("status", "--format", "json", "--url", srv.URL+"/1/summary")
	require.Error(t, err)
	assert.Contains(t, out, `"success": false`)
	assert.Contains(t, out, `"code": "HTTP_ERROR"`)
	assert.Contains(t, out, `"status": 502`)
}
