package cli

import (
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/xmdash/internal/dashboard"
	"github.com/rileyhilliard/xmdash/internal/errors"
	"github.com/rileyhilliard/xmdash/internal/logger"
	"github.com/rileyhilliard/xmdash/internal/monitor"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// debugLogFile is written inside the state directory when XMDASH_DEBUG is set.
const debugLogFile = "debug.log"

// dashboardCommand starts the full-screen dashboard.
func dashboardCommand(cmd *cobra.Command) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New(errors.ErrConfig,
			"The dashboard needs an interactive terminal",
			"Use 'xmdash status' for one-shot output in scripts and pipes")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	stateDir := cfg.ResolvedStateDir()
	closeLog, err := redirectLog(stateDir)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	lg := logger.NewEnvLogger("[xmdash]")
	lg.Debug("starting dashboard: store=%s dir=%s", cfg.Store, stateDir)

	model := monitor.NewModel(monitor.Options{
		Store:       store,
		Fetcher:     dashboard.NewHTTPFetcher(cfg.Timeout, lg),
		Logger:      lg,
		URL:         cfg.URL,
		RefreshRate: cfg.Interval,
	})
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// redirectLog keeps the standard logger off the alternate screen: output
// goes to the debug log when XMDASH_DEBUG is set and is discarded otherwise.
func redirectLog(stateDir string) (func(), error) {
	if !logger.DebugEnabled() {
		prev := log.Writer()
		log.SetOutput(io.Discard)
		return func() { log.SetOutput(prev) }, nil
	}

	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrStorage,
			"Cannot create state directory "+stateDir,
			"Check directory permissions or pass --state-dir")
	}
	f, err := tea.LogToFile(filepath.Join(stateDir, debugLogFile), "xmdash")
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrStorage,
			"Cannot open debug log", "Unset "+logger.DebugEnv+" or check --state-dir")
	}
	return func() { _ = f.Close() }, nil
}
