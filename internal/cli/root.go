package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rileyhilliard/xmdash/internal/config"
	"github.com/rileyhilliard/xmdash/internal/errors"
	"github.com/rileyhilliard/xmdash/internal/storage"
	"github.com/rileyhilliard/xmdash/internal/ui"
	"github.com/spf13/cobra"
)

// Global flags
var (
	cfgFile string
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "xmdash",
	Short: "Terminal dashboard for xmrig-proxy",
	Long: `xmdash polls the HTTP summary API of an xmrig-proxy and shows hashrate,
miners, share results, pools and memory in a live terminal dashboard.

On first run it asks for the summary URL, e.g.
  http://127.0.0.1:8080/1/summary

Examples:
  xmdash
  xmdash --url http://10.0.0.5:8080/1/summary --interval 30s
  xmdash status --format json`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			ui.DisableColors()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardCommand(cmd)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default ~/.config/xmdash/config.yaml)")
	pf.String("url", "", "xmrig-proxy summary URL (overrides the saved endpoint)")
	pf.Duration("interval", 0, "refresh interval, e.g. 10s (default: last used rate)")
	pf.Duration("timeout", config.DefaultTimeout, "request timeout")
	pf.String("store", storage.BackendFile, "state backend: file or sqlite")
	pf.String("state-dir", "", "state directory (default $XDG_STATE_HOME/xmdash)")
	pf.BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// printError writes err in the structured error block layout.
func printError(w io.Writer, err error) {
	if isUnknownCommandError(err) {
		msg := err.Error()
		if name := extractUnknownCommand(err); name != "" {
			msg = fmt.Sprintf("Unknown command %q", name)
		}
		err = errors.New(errors.ErrConfig, msg, "Run 'xmdash --help' to see available commands")
	}

	var dashErr *errors.Error
	if !errors.As(err, &dashErr) {
		fmt.Fprintln(w, ui.ErrorStyle().Render(ui.SymbolFail+" "+err.Error()))
		return
	}
	// Only the headline is colored; the detail lines keep their indent.
	lines := strings.Split(strings.TrimSuffix(dashErr.Error(), "\n"), "\n")
	lines[0] = ui.ErrorStyle().Render(lines[0])
	fmt.Fprintln(w, strings.Join(lines, "\n"))
}

// isUnknownCommandError checks if the error is cobra's unknown command or flag error.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") || strings.HasPrefix(msg, "unknown flag")
}

// extractUnknownCommand extracts the command name from cobra's
// `unknown command "foo" for "xmdash"` message.
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.Index(msg, `"`)
	if start == -1 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end == -1 {
		return ""
	}
	return msg[start+1 : start+1+end]
}

// loadConfig resolves settings for cmd: defaults, then the config file,
// then XMDASH_* variables, then any flag set on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := config.Find(cfgFile)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path, cmd.Flags())
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openStore opens the configured state backend.
func openStore(cfg *config.Config) (storage.Store, error) {
	return storage.Open(cfg.Store, cfg.ResolvedStateDir())
}
