package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/rileyhilliard/xmdash/internal/config"
	"github.com/rileyhilliard/xmdash/internal/dashboard"
	"github.com/rileyhilliard/xmdash/internal/errors"
	"github.com/rileyhilliard/xmdash/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the xmdash config file",
	Long: `Write ~/.config/xmdash/config.yaml (or the file given with --config).

In a terminal you are asked for the summary URL and refresh interval.
Otherwise the values come from --url and --interval.

Examples:
  xmdash init
  xmdash init --url http://10.0.0.5:8080/1/summary --interval 30s
  xmdash init --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initCommand(cmd)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")
}

// initOptions holds options for writing a config file.
type initOptions struct {
	Path        string
	Config      *config.Config
	Force       bool
	Interactive bool
	Out         io.Writer
}

// Prompts are variables so tests can answer them.
var (
	confirmOverwrite = huhConfirmOverwrite
	promptSettings   = huhPromptSettings
)

func initCommand(cmd *cobra.Command) error {
	path := config.ExpandTilde(cfgFile)
	if path == "" {
		path = config.DefaultPath()
	}
	if path == "" {
		return errors.New(errors.ErrConfig,
			"Cannot locate your home directory",
			"Pass --config with the path to write")
	}

	// The existing file is being replaced, so only env and flags apply.
	cfg, err := config.Load("", cmd.Flags())
	if err != nil {
		return err
	}

	return runInit(initOptions{
		Path:        path,
		Config:      cfg,
		Force:       initForce,
		Interactive: term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())),
		Out:         cmd.OutOrStdout(),
	})
}

func runInit(opts initOptions) error {
	cfg := opts.Config

	if _, err := os.Stat(opts.Path); err == nil && !opts.Force {
		if !opts.Interactive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", opts.Path),
				"Use --force to overwrite")
		}
		overwrite, err := confirmOverwrite(opts.Path)
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Fprintln(opts.Out, "Cancelled.")
			return nil
		}
	}

	if opts.Interactive {
		if err := promptSettings(cfg); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Pass --url and --interval to skip the prompts")
		}
	}

	cfg.URL = strings.TrimSpace(cfg.URL)
	if cfg.URL == "" {
		return errors.New(errors.ErrConfigMissing,
			"An API URL is required",
			"Pass --url http://<proxy>:<port>/1/summary")
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}
	if err := config.Write(opts.Path, cfg); err != nil {
		return err
	}

	fmt.Fprintf(opts.Out, "%s Wrote %s\n", ui.SuccessStyle().Render(ui.SymbolSuccess), opts.Path)
	fmt.Fprintln(opts.Out, ui.MutedStyle().Render("Run 'xmdash' to open the dashboard."))
	return nil
}

func huhConfirmOverwrite(path string) (bool, error) {
	var overwrite bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", path)).
				Value(&overwrite),
		),
	)
	if err := form.Run(); err != nil {
		return false, err
	}
	return overwrite, nil
}

func huhPromptSettings(cfg *config.Config) error {
	if cfg.Interval == 0 {
		cfg.Interval = dashboard.DefaultRefreshRate
	}

	options := make([]huh.Option[time.Duration], 0, len(dashboard.RefreshOptions))
	for _, opt := range dashboard.RefreshOptions {
		options = append(options, huh.NewOption("Every "+opt.Label, opt.Rate))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("xmrig-proxy summary URL").
				Description("The proxy's HTTP API, usually ending in /1/summary").
				Placeholder("http://127.0.0.1:8080/1/summary").
				Value(&cfg.URL).
				Validate(validateEndpointInput),
			huh.NewSelect[time.Duration]().
				Title("Refresh interval").
				Options(options...).
				Value(&cfg.Interval),
		),
	)
	return form.Run()
}

func validateEndpointInput(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%s", dashboard.MsgEmptyURL)
	}
	if !dashboard.ValidateURL(s) {
		return fmt.Errorf("%s", dashboard.MsgInvalidURL)
	}
	return nil
}
