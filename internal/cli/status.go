package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rileyhilliard/xmdash/internal/dashboard"
	"github.com/rileyhilliard/xmdash/internal/errors"
	"github.com/rileyhilliard/xmdash/internal/logger"
	"github.com/rileyhilliard/xmdash/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Output formats accepted by --format.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatHTML = "html"
)

var statusFormat string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Poll the proxy once and print a summary",
	Long: `Fetch the summary endpoint once and print the same figures the dashboard
shows. Works without a terminal, so it is suitable for scripts, cron jobs
and status pages.

The endpoint comes from --url, the config file, XMDASH_URL or the URL saved
by the dashboard, in that order.

Examples:
  xmdash status
  xmdash status --format json | jq .data.hashrate
  xmdash status --format html > status.html`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return statusCommand(cmd)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().StringVarP(&statusFormat, "format", "f", FormatText, "output format: text, json or html")
}

// statusOptions holds everything one status poll needs.
type statusOptions struct {
	URL     string
	Format  string
	Version string
	Fetcher dashboard.Fetcher
	Out     io.Writer
	// Progress receives the spinner; nil disables it.
	Progress io.Writer
	Clock    func() time.Time
}

func statusCommand(cmd *cobra.Command) error {
	format, err := parseFormat(statusFormat)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	lg := logger.NewEnvLogger("[status]")
	url := cfg.URL
	if url == "" {
		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		url = dashboard.NewEndpoint(store, lg).URL()
		_ = store.Close()
	}

	opts := statusOptions{
		URL:     url,
		Format:  format,
		Version: formatVersion(version),
		Fetcher: dashboard.NewHTTPFetcher(cfg.Timeout, lg),
		Out:     cmd.OutOrStdout(),
	}
	if format == FormatText && term.IsTerminal(int(os.Stderr.Fd())) {
		opts.Progress = os.Stderr
	}

	err = runStatus(cmd.Context(), opts)
	if err != nil && format == FormatJSON {
		_ = WriteJSONFromError(opts.Out, err)
	}
	return err
}

func parseFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case FormatText, FormatJSON, FormatHTML:
		return f, nil
	default:
		return "", errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown output format %q", s),
			"Use --format text, json or html")
	}
}

// runStatus polls opts.URL once and writes the summary in opts.Format.
func runStatus(ctx context.Context, opts statusOptions) error {
	if opts.URL == "" {
		return errors.New(errors.ErrConfigMissing,
			"No API endpoint configured",
			"Pass --url, run 'xmdash init', or set one in the dashboard")
	}
	if !dashboard.ValidateURL(opts.URL) {
		return errors.New(errors.ErrConfigInvalid,
			dashboard.MsgInvalidURL,
			"Use an http:// or https:// URL such as http://127.0.0.1:8080/1/summary")
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	var spin *ui.Spinner
	if opts.Progress != nil {
		spin = ui.NewSpinner("Fetching "+opts.URL, opts.Progress)
		spin.Start()
	}

	data, err := fetchSnapshotData(ctx, opts.Fetcher, opts.URL)
	if spin != nil {
		if err != nil {
			spin.Fail()
		} else {
			spin.Success()
		}
	}
	if err != nil {
		return err
	}

	snap := dashboard.NewSnapshot(data)
	fetchedAt := clock()

	switch opts.Format {
	case FormatJSON:
		return WriteJSONSuccess(opts.Out, newStatusReport(opts.URL, snap, fetchedAt))
	case FormatHTML:
		_, err := io.WriteString(opts.Out, renderStatusHTML(opts.URL, snap, fetchedAt))
		return err
	default:
		_, err := io.WriteString(opts.Out, renderStatusText(opts.URL, opts.Version, snap, fetchedAt))
		return err
	}
}

func fetchSnapshotData(ctx context.Context, f dashboard.Fetcher, url string) (map[string]any, error) {
	raw, err := f.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	data := dashboard.SanitizeData(raw)
	if data == nil {
		return nil, errors.New(errors.ErrFormat,
			"Invalid data format received from API",
			"Check that the URL points at the proxy's /1/summary endpoint")
	}
	return data, nil
}

// statusSections is the dashboard layout minus the parts that only make
// sense on screen: bars, captions and chart controls.
func statusSections(s dashboard.Snapshot) []ui.ReportSection {
	status := dashboard.DeriveStatus(s)
	proxy := ui.ReportSection{Title: "Proxy", Rows: []ui.ReportRow{
		{Label: "Status", Value: status.String(), Tone: statusTone(status)},
		{Label: "Worker", Value: dashboard.EscapeMarkup(s.WorkerID)},
		{Label: "Version", Value: dashboard.EscapeMarkup(s.Version)},
		{Label: "Uptime", Value: dashboard.FormatUptime(s.Uptime)},
	}}
	out := []ui.ReportSection{proxy}

	for _, sec := range dashboard.BuildSections(s, dashboard.RangeLifetime) {
		title := sec.Title
		switch sec.Kind {
		case dashboard.SectionCards:
			title = "Overview"
		case dashboard.SectionChart:
			title = "Resources"
		}
		rs := ui.ReportSection{Title: title}
		for _, item := range sec.Items {
			for _, f := range item.Fields {
				if f.Kind == dashboard.FieldText {
					rs.Rows = append(rs.Rows, ui.ReportRow{Label: item.Label, Value: f.Text, Tone: classTone(f.Class)})
					break
				}
			}
		}
		out = append(out, rs)
	}
	return out
}

func statusTone(s dashboard.Status) ui.Tone {
	switch s {
	case dashboard.StatusOnline:
		return ui.ToneGood
	case dashboard.StatusWarning:
		return ui.ToneWarn
	default:
		return ui.ToneBad
	}
}

func classTone(class string) ui.Tone {
	switch class {
	case dashboard.ClassHighlightGreen:
		return ui.ToneGood
	case dashboard.ClassHighlightRed:
		return ui.ToneBad
	case dashboard.ClassHighlightAmber:
		return ui.ToneWarn
	case dashboard.ClassHighlightBlue:
		return ui.ToneInfo
	default:
		return ui.ToneNormal
	}
}

func renderStatusText(url, version string, s dashboard.Snapshot, fetchedAt time.Time) string {
	var b strings.Builder
	b.WriteString(ui.RenderHeader(ui.HeaderInfo{Version: version, Endpoint: url}))
	b.WriteString("\n")
	b.WriteString(ui.RenderReport(ui.Report{Sections: statusSections(s)}))
	b.WriteString("\n")
	b.WriteString(ui.MutedStyle().Render("Updated " + dashboard.FormatClock(fetchedAt)))
	b.WriteString("\n")
	return b.String()
}

// renderStatusHTML renders a self-contained page. Every value from the
// payload passes through EscapeHTML.
func renderStatusHTML(url string, s dashboard.Snapshot, fetchedAt time.Time) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	b.WriteString("<title>xmdash status</title>\n</head>\n<body>\n")
	fmt.Fprintf(&b, "<h1>xmrig-proxy <span class=\"%s\">%s</span></h1>\n",
		dashboard.DeriveStatus(s).Class(), dashboard.EscapeHTML(dashboard.DeriveStatus(s).String()))
	fmt.Fprintf(&b, "<p class=\"endpoint\">%s</p>\n", dashboard.EscapeHTML(url))

	for _, sec := range statusSections(s) {
		fmt.Fprintf(&b, "<h2>%s</h2>\n<table>\n", dashboard.EscapeHTML(sec.Title))
		for _, row := range sec.Rows {
			fmt.Fprintf(&b, "<tr><th>%s</th><td>%s</td></tr>\n",
				dashboard.EscapeHTML(row.Label), dashboard.EscapeHTML(row.Value))
		}
		b.WriteString("</table>\n")
	}

	fmt.Fprintf(&b, "<footer>Updated <time datetime=\"%s\">%s</time></footer>\n",
		fetchedAt.UTC().Format(time.RFC3339), dashboard.FormatClock(fetchedAt))
	b.WriteString("</body>\n</html>\n")
	return b.String()
}
